// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"errors"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cone is a shape no adapter supports.
type cone struct{}

func (cone) Validate() error { return nil }

func (cone) Volume(st *physics.State) physics.Volume { return physics.PointVolume(st.Pos, 1) }

func newWorld(t *testing.T, cs ...*physics.Collider) *physics.World {
	w := physics.NewWorld()
	require.NoError(t, w.Add(cs...))
	return w
}

func floor() *physics.Collider {
	return physics.NewCollider("floor", &physics.Box{Size: math32.Vec3(20, 1, 20)}, math32.Vec3(0, -.5, 0))
}

func newSphere(t *testing.T, w *physics.World, pos math32.Vector3) *Collider {
	c := physics.NewCollider("body", &physics.Sphere{Radius: .5}, pos)
	require.NoError(t, w.Add(c))
	sc, err := New(w, c, physics.AllLayers)
	require.NoError(t, err)
	return sc
}

func TestNewErrors(t *testing.T) {
	w := physics.NewWorld()
	_, err := New(w, &physics.Collider{Name: "cone", Shape: cone{}}, physics.AllLayers)
	var shapeErr *UnsupportedShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, cone{}, shapeErr.Shape)

	_, err = New(w, physics.NewCollider("capsule", &physics.Capsule{Radius: .5, Height: 2, Direction: physics.Axis(-1)}, math32.Vector3{}), physics.AllLayers)
	var axisErr *physics.InvalidAxisConfigurationError
	assert.True(t, errors.As(err, &axisErr))
}

func TestCastContactOffset(t *testing.T) {
	w := newWorld(t, floor())
	sc := newSphere(t, w, math32.Vec3(0, 2, 0))
	n, hit := sc.Cast(math32.Vec3(0, -10, 0), 5)
	require.Equal(t, 1, n)
	assert.Equal(t, "floor", hit.Collider.Name)
	// the cast sphere is shrunk by the offset, then the offset is removed again
	assert.InDelta(t, 1.5, hit.Distance, 1e-3)
	assert.InDelta(t, 1.51, sc.CastHit(0).Distance, 1e-3)
	assert.True(t, physics.ApproxEqual(physics.Up, hit.Normal, 1e-3))
}

func TestCastMissDistance(t *testing.T) {
	w := newWorld(t, floor())
	sc := newSphere(t, w, math32.Vec3(0, 2, 0))
	n, hit := sc.CastVelocity(math32.Vec3(0, 1, 0))
	assert.Equal(t, 0, n)
	assert.Nil(t, hit.Collider)
	assert.InDelta(t, 1.01, hit.Distance, 1e-5)

	_, ok := sc.DoCast(math32.Vec3(0, -.5, 0))
	assert.False(t, ok)
	_, ok = sc.DoCast(math32.Vec3(0, -3, 0))
	assert.True(t, ok)
}

func TestCastSimultaneousHits(t *testing.T) {
	left := physics.NewCollider("left", &physics.Box{Size: math32.Vec3(1, 1, 1)}, math32.Vec3(-.6, -.5, 0))
	right := physics.NewCollider("right", &physics.Box{Size: math32.Vec3(1, 1, 1)}, math32.Vec3(.6, -.5, 0))
	deep := physics.NewCollider("deep", &physics.Box{Size: math32.Vec3(4, 1, 4)}, math32.Vec3(0, -3, 0))
	w := newWorld(t, deep, left, right)
	sc := newSphere(t, w, math32.Vec3(0, 2, 0))
	n, hit := sc.Cast(math32.Vec3(0, -1, 0), 10)
	assert.Equal(t, 2, n)
	assert.NotEqual(t, "deep", hit.Collider.Name)
	assert.Equal(t, "deep", sc.CastHit(2).Collider.Name)
	assert.Less(t, sc.CastHit(0).Distance, sc.CastHit(2).Distance)
}

func TestCastIgnoresSelf(t *testing.T) {
	w := newWorld(t)
	sc := newSphere(t, w, math32.Vec3(0, 0, 0))
	n, _ := sc.Cast(math32.Vec3(1, 0, 0), 2)
	assert.Equal(t, 0, n)
	_, ok := sc.Raycast(math32.Vec3(1, 0, 0), 2)
	assert.False(t, ok)
	assert.Equal(t, 1, sc.Overlap(physics.CollideTriggers))
	assert.Equal(t, sc.Collider, sc.OverlapCollider(0))
}

func TestRaycastFromSurface(t *testing.T) {
	w := newWorld(t, floor())
	sc := newSphere(t, w, math32.Vec3(0, 1, 0))
	hit, ok := sc.Raycast(math32.Vec3(0, -1, 0), 1)
	require.True(t, ok)
	assert.InDelta(t, .5, hit.Distance, 1e-3)

	_, ok = sc.RaycastVelocity(math32.Vec3(0, -.4, 0))
	assert.False(t, ok)
}

func TestOverlapTriggers(t *testing.T) {
	zone := physics.NewCollider("zone", &physics.Box{Size: math32.Vec3(2, 2, 2)}, math32.Vector3{})
	zone.Trigger = true
	w := newWorld(t, zone)
	sc := newSphere(t, w, math32.Vec3(0, .5, 0))
	assert.Equal(t, 1, sc.Overlap(physics.IgnoreTriggers))
	n := sc.Overlap(physics.CollideTriggers)
	require.Equal(t, 2, n)
	sc.SortOverlaps(n, func(a, b *physics.Collider) int {
		if a.Name < b.Name {
			return -1
		}
		return 1
	})
	assert.Equal(t, "body", sc.OverlapCollider(0).Name)
	assert.Equal(t, "zone", sc.OverlapCollider(1).Name)
	assert.Equal(t, 0, sc.OverlapMask(physics.LayerMask(5), physics.CollideTriggers))
}

func TestExtents(t *testing.T) {
	w := physics.NewWorld()
	tests := []struct {
		shape physics.Shape
		want  math32.Vector3
	}{
		{&physics.Sphere{Radius: .5}, math32.Vec3(.5, .5, .5)},
		{&physics.Box{Size: math32.Vec3(1, 2, 4)}, math32.Vec3(.5, 1, 2)},
		{&physics.Capsule{Radius: .5, Height: 2, Direction: physics.Y}, math32.Vec3(.5, 1, .5)},
		{&physics.Capsule{Radius: .5, Height: 2, Direction: physics.X}, math32.Vec3(1, .5, .5)},
		{&physics.Capsule{Radius: .5, Height: 2, Direction: physics.Z}, math32.Vec3(.5, .5, 1)},
	}
	for _, tt := range tests {
		c := physics.NewCollider("c", tt.shape, math32.Vec3(1, 2, 3))
		sc, err := New(w, c, physics.AllLayers)
		require.NoError(t, err)
		assert.True(t, physics.ApproxEqual(tt.want, sc.Extents(), 1e-5), "%T: %v", tt.shape, sc.Extents())
		assert.Equal(t, math32.Vec3(1, 2, 3), sc.Center())
	}
}
