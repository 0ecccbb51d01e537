// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dread simulates kinematic bodies in a scene file,
// optionally recording the run into a trace database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"github.com/horrorps1/dread/scene"
	"github.com/horrorps1/dread/settings"
	"github.com/horrorps1/dread/sim"
	"github.com/horrorps1/dread/trace"
)

// Config is the configuration of the dread command.
type Config struct {

	// Scene is the YAML scene file to simulate.
	Scene string `posarg:"0" required:"-"`

	// Settings is the TOML settings file; the defaults are used if unset.
	Settings string `flag:"s,settings"`

	// Frames is the number of frames to simulate;
	// the scene frames are used if zero.
	Frames int `flag:"n,frames"`

	// FPS is the number of frames per second.
	FPS int `default:"60" flag:"fps"`

	// Trace is the SQLite database to record the run into, if set.
	Trace string `flag:"t,trace"`

	// Debug enables the debug records of the bodies.
	Debug bool `flag:"d,debug"`
}

// DefaultFrames is the number of frames simulated when neither
// the command nor the scene set it.
const DefaultFrames = 600

func main() {
	opts := cli.DefaultOptions("dread", "Dread simulates kinematic bodies moving and colliding in a scene.")
	cli.Run(opts, &Config{},
		&cli.Cmd[*Config]{Func: Run, Name: "run", Doc: "Run simulates the scene.", Root: true},
		&cli.Cmd[*Config]{Func: Check, Name: "check", Doc: "Check validates the settings and scene files."},
		&cli.Cmd[*Config]{Func: Defaults, Name: "defaults", Doc: "Defaults writes the default settings to the settings file."},
	)
}

func (c *Config) logger() *slog.Logger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// load reads the settings and scene of the config and builds the scene.
func (c *Config) load() (*scene.Runtime, error) {
	if c.Scene == "" {
		return nil, fmt.Errorf("dread: no scene file")
	}
	st := settings.Default()
	if c.Settings != "" {
		var err error
		if st, err = settings.Open(c.Settings); err != nil {
			return nil, err
		}
	}
	sc, err := scene.Load(c.Scene)
	if err != nil {
		return nil, err
	}
	return sc.Build(st)
}

// Run simulates the scene, recording it into the trace database if set.
func Run(c *Config) error {
	slog.SetDefault(c.logger())
	if c.FPS <= 0 {
		return fmt.Errorf("dread: fps = %d, must be > 0", c.FPS)
	}
	rt, err := c.load()
	if err != nil {
		return err
	}

	var rec sim.Recorder
	if c.Trace != "" {
		tr, err := trace.Open(c.Trace)
		if err != nil {
			return err
		}
		defer func() { errors.Log(tr.Close()) }()
		id, err := tr.Begin(rt.Scene.Name)
		if err != nil {
			return err
		}
		slog.Info("recording", "run", id, "trace", c.Trace)
		rec = tr
	}

	frames := c.Frames
	if frames == 0 {
		frames = rt.Scene.Frames
	}
	if frames == 0 {
		frames = DefaultFrames
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	r := sim.New(rt, rec)
	r.DT = 1 / float32(c.FPS)
	err = r.Run(ctx, frames)
	err = errors.Join(err, r.ExitAll())
	r.Report()
	slog.Info("done", "scene", rt.Scene.Name, "frames", r.Frame())
	return err
}

// Check validates the settings and scene files.
func Check(c *Config) error {
	if _, err := c.load(); err != nil {
		return err
	}
	fmt.Println(c.Scene, "ok")
	return nil
}

// Defaults writes the default settings to the settings file.
func Defaults(c *Config) error {
	if c.Settings == "" {
		return fmt.Errorf("dread: no settings file")
	}
	return settings.Default().Save(c.Settings)
}
