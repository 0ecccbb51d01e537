// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim runs a scene at a fixed time step: moving its platforms,
// feeding the scripted inputs to its bodies and stepping them.
package sim

import (
	"context"
	"log/slog"

	"github.com/horrorps1/dread/scene"
	"github.com/horrorps1/dread/trace"
)

// DefaultDT is the default fixed time step, in seconds.
const DefaultDT = float32(1) / 60

// Recorder receives the state of the simulation on each frame.
type Recorder interface {
	Record(s trace.Sample) error
	Event(frame int, ev scene.Event) error
}

// Runner steps a scene runtime. It is not safe for concurrent use.
type Runner struct {
	Runtime *scene.Runtime

	// DT is the fixed time step, in seconds.
	DT float32

	// Recorder, if set, records every frame.
	Recorder Recorder

	// Logger receives the progress records.
	Logger *slog.Logger

	frame int
	err   error
}

// New returns a runner for rt with the default time step,
// recording with rec if not nil.
func New(rt *scene.Runtime, rec Recorder) *Runner {
	r := &Runner{Runtime: rt, DT: DefaultDT, Recorder: rec, Logger: slog.Default()}
	rt.Listen(r.onEvent)
	return r
}

// Frame returns the number of frames stepped.
func (r *Runner) Frame() int {
	return r.frame
}

func (r *Runner) onEvent(ev scene.Event) {
	if r.Recorder == nil || r.err != nil {
		return
	}
	r.err = r.Recorder.Event(r.frame, ev)
}

// Step simulates one frame.
func (r *Runner) Step() error {
	rt := r.Runtime
	for _, pf := range rt.Platforms {
		pf.Step(r.DT)
	}
	for _, ac := range rt.Actors {
		ac.Apply(r.frame)
		ac.Body.Step(r.DT)
	}
	if r.Recorder != nil {
		for _, ac := range rt.Actors {
			if err := r.Recorder.Record(trace.SampleOf(r.frame, ac.Body)); err != nil {
				return err
			}
		}
	}
	r.frame++
	err := r.err
	r.err = nil
	return err
}

// Run simulates the given number of frames, stopping early
// when ctx is done or on the first recording error.
func (r *Runner) Run(ctx context.Context, frames int) error {
	for range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Step(); err != nil {
			return err
		}
	}
	r.Logger.Debug("simulated", "scene", r.Runtime.Scene.Name, "frames", r.frame)
	return nil
}

// Report logs the final state of every body.
func (r *Runner) Report() {
	for _, ac := range r.Runtime.Actors {
		b := ac.Body
		r.Logger.Info("body", "name", b.Name, "position", b.Position(), "grounded", b.IsGrounded(), "speed", b.Speed(), "triggers", b.Triggers())
	}
}

// ExitAll exits every zone the bodies are in, as when the scene ends.
func (r *Runner) ExitAll() error {
	for _, ac := range r.Runtime.Actors {
		ac.Body.ExitTriggers()
	}
	err := r.err
	r.err = nil
	return err
}
