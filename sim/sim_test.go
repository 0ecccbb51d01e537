// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/horrorps1/dread/scene"
	"github.com/horrorps1/dread/settings"
	"github.com/horrorps1/dread/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridor = `
name: test
colliders:
  - {name: floor, shape: box, size: [20, 1, 20], position: [0, -0.5, 0]}
  - {name: door, shape: box, size: [2, 2, 2], position: [3, 1, 0], trigger: true}
  - {name: lift, shape: box, size: [2, 0.2, 2], position: [-5, 0.1, 0], velocity: [0, 0.5, 0]}
bodies:
  - name: ball
    shape: sphere
    radius: 0.5
    position: [0, 0.51, 0]
    inputs:
      - {from: 0, to: 120, movement: [1, 0, 0]}
  - name: crate
    shape: box
    size: [1, 1, 1]
    position: [-5, 0.71, 0]
    parent: lift
    gravity: false
`

type memory struct {
	samples []trace.Sample
	events  []trace.EventRecord
	fail    error
}

func (m *memory) Record(s trace.Sample) error {
	m.samples = append(m.samples, s)
	return m.fail
}

func (m *memory) Event(frame int, ev scene.Event) error {
	m.events = append(m.events, trace.EventRecord{Frame: frame, Event: ev})
	return nil
}

func build(t *testing.T) *scene.Runtime {
	sc, err := scene.Parse([]byte(corridor))
	require.NoError(t, err)
	rt, err := sc.Build(settings.Default())
	require.NoError(t, err)
	return rt
}

func TestRun(t *testing.T) {
	rt := build(t)
	mem := &memory{}
	r := New(rt, mem)
	require.NoError(t, r.Run(context.Background(), 120))
	assert.Equal(t, 120, r.Frame())
	assert.Len(t, mem.samples, 240)

	ball := rt.Actor("ball").Body
	assert.True(t, ball.IsGrounded())
	assert.Greater(t, ball.Position().X, float32(4))
	assert.InDelta(t, .5, ball.Position().Y, 2e-2)

	require.NotEmpty(t, mem.events)
	assert.Equal(t, scene.Event{Zone: "door", Body: "ball", Enter: true}, mem.events[0].Event)
	assert.Greater(t, mem.events[0].Frame, 0)

	crate := rt.Actor("crate").Body
	assert.InDelta(t, .71+1, crate.Position().Y, 1e-3)
	r.Report()
}

func TestDeterministic(t *testing.T) {
	var runs [2]*memory
	for i := range runs {
		runs[i] = &memory{}
		r := New(build(t), runs[i])
		require.NoError(t, r.Run(context.Background(), 90))
	}
	assert.Equal(t, runs[0].samples, runs[1].samples)
	assert.Equal(t, runs[0].events, runs[1].events)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New(build(t), nil)
	assert.ErrorIs(t, r.Run(ctx, 10), context.Canceled)
	assert.Equal(t, 0, r.Frame())
}

func TestRecordError(t *testing.T) {
	fail := errors.New("disk full")
	r := New(build(t), &memory{fail: fail})
	assert.ErrorIs(t, r.Run(context.Background(), 10), fail)
	assert.Equal(t, 0, r.Frame())
}

func TestExitAll(t *testing.T) {
	rt := build(t)
	mem := &memory{}
	r := New(rt, mem)
	rt.Actor("ball").Body.SetPosition(rt.Zone("door").Collider.Position())
	require.NoError(t, r.Step())
	require.Len(t, mem.events, 1)

	require.NoError(t, r.ExitAll())
	require.Len(t, mem.events, 2)
	assert.False(t, mem.events[1].Enter)
	assert.Equal(t, 0, rt.Zone("door").Inside)
}
