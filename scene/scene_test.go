// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/movable"
	"github.com/horrorps1/dread/physics"
	"github.com/horrorps1/dread/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T) *Scene {
	sc, err := Load("testdata/corridor.yaml")
	require.NoError(t, err)
	return sc
}

func TestLoad(t *testing.T) {
	sc := load(t)
	assert.Equal(t, "corridor", sc.Name)
	assert.Equal(t, 120, sc.Frames)
	assert.Len(t, sc.Colliders, 5)
	require.Len(t, sc.Bodies, 2)

	player := sc.Bodies[0]
	require.NotNil(t, player.Strategy)
	assert.Equal(t, movable.Creature, *player.Strategy)
	assert.Nil(t, player.Direction)
	assert.Len(t, player.Inputs, 2)
	assert.Equal(t, Vec3{0, .2, 0}, player.Inputs[1].InstantForce)

	crate := sc.Bodies[1]
	assert.Nil(t, crate.Strategy)
	require.NotNil(t, crate.Gravity)
	assert.False(t, *crate.Gravity)
	assert.Equal(t, "lift", crate.Parent)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"empty", "", "empty scene"},
		{"unknown field", "name: a\nfloors: 2\n", "floors"},
		{"unknown shape", "colliders:\n  - name: a\n    shape: cone\n", "unknown shape"},
		{"no name", "colliders:\n  - shape: box\n", "without name"},
		{"duplicate", "colliders:\n  - name: a\n    shape: box\nbodies:\n  - name: a\n    shape: sphere\n", "duplicate name"},
		{"parent", "bodies:\n  - name: a\n    shape: sphere\n    parent: b\n", "unknown parent"},
		{"trigger body", "bodies:\n  - name: a\n    shape: sphere\n    trigger: true\n", "cannot be triggers"},
		{"strategy", "bodies:\n  - name: a\n    shape: sphere\n    strategy: rocket\n", "rocket"},
		{"axis", "colliders:\n  - name: a\n    shape: capsule\n    direction: w\n", "axis"},
		{"layer", "colliders:\n  - name: a\n    shape: box\n    layer: 40\n", "layer"},
		{"input", "bodies:\n  - name: a\n    shape: sphere\n    inputs:\n      - from: -1\n", "negative frame"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuild(t *testing.T) {
	sc := load(t)
	rt, err := sc.Build(settings.Default())
	require.NoError(t, err)

	assert.Len(t, rt.World.Colliders(), 7)
	assert.Equal(t, float32(-9.81), rt.World.Gravity.Y)
	assert.False(t, rt.World.LayerCollisionMask(2).Has(3))

	require.Len(t, rt.Zones, 1)
	door := rt.Zone("door")
	require.NotNil(t, door)
	assert.Equal(t, door, door.Collider.Owner)
	assert.True(t, door.Collider.Trigger)

	require.Len(t, rt.Platforms, 1)
	assert.Equal(t, "lift", rt.Platforms[0].Collider.Name)

	player := rt.Actor("player")
	require.NotNil(t, player)
	assert.Equal(t, movable.Creature, player.Body.Kind())
	assert.Equal(t, float32(6), player.Body.MaxSpeed())
	assert.False(t, player.Body.Sweep.Mask.Has(3))
	assert.Equal(t, float32(4), rt.Settings.Movable.SpeedMax, "defaults are not overridden")
	_, ok := player.Body.Collider.Shape.(*physics.Capsule)
	assert.True(t, ok)

	crate := rt.Actor("crate")
	require.NotNil(t, crate)
	assert.Equal(t, movable.Complex, crate.Body.Kind())
	assert.False(t, crate.Body.UseGravity)
	assert.True(t, crate.Body.IsParented())

	assert.Nil(t, rt.Actor("ghost"))
	assert.Nil(t, rt.Zone("floor"))
}

func TestBuildInvalidBody(t *testing.T) {
	k := movable.Kind(8)
	sc := &Scene{Bodies: []Body{{Collider: Collider{Name: "a", Shape: Shape{Kind: "sphere", Radius: .5}}, Strategy: &k}}}
	_, err := sc.Build(settings.Default())
	assert.ErrorContains(t, err, `body "a"`)
}

func TestInputs(t *testing.T) {
	in := Input{From: 2, To: 4, Movement: Vec3{1, 0, 0}, Force: Vec3{0, 0, 3}}
	assert.False(t, in.Active(1))
	assert.True(t, in.Active(2))
	assert.True(t, in.Active(3))
	assert.False(t, in.Active(4))

	once := Input{From: 5}
	assert.True(t, once.Active(5))
	assert.False(t, once.Active(6))

	st := settings.Default()
	w := physics.NewWorld()
	b, err := movable.New(w, physics.NewCollider("b", &physics.Sphere{Radius: .5}, math32.Vector3{}), &st.Physics, &st.Movable)
	require.NoError(t, err)
	b.Flip()
	for frame := range 4 {
		in.Apply(b, frame)
	}
	assert.Equal(t, math32.Vec3(0, 0, 3), b.Force, "force added once")
	assert.Equal(t, float32(2), b.Movement.X)
	assert.Equal(t, 1, b.FacingSide())
}

func TestZoneEvents(t *testing.T) {
	sc := load(t)
	rt, err := sc.Build(settings.Default())
	require.NoError(t, err)
	var events []Event
	rt.Listen(func(ev Event) { events = append(events, ev) })

	player := rt.Actor("player").Body
	player.SetPosition(math32.Vec3(3, 1, 0))
	player.Step(1. / 60)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Zone: "door", Body: "player", Enter: true}, events[0])
	assert.Equal(t, "player entered door", events[0].String())
	assert.Equal(t, 1, rt.Zone("door").Inside)

	player.ExitTriggers()
	require.Len(t, events, 2)
	assert.False(t, events[1].Enter)
	assert.Equal(t, 0, rt.Zone("door").Inside)
}

func TestPlatform(t *testing.T) {
	pf := &Platform{Collider: physics.NewCollider("p", &physics.Box{Size: math32.Vec3(1, 1, 1)}, math32.Vector3{}), Velocity: math32.Vec3(0, 2, 0)}
	pf.Step(.5)
	assert.Equal(t, math32.Vec3(0, 1, 0), pf.Collider.Position())
}
