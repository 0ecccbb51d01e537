// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
)

// UnsupportedShapeError is returned when adapting a collider whose
// shape is not a box, a capsule or a sphere.
type UnsupportedShapeError struct {
	Shape physics.Shape
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("sweep: unsupported collider shape %T, must be a box, a capsule or a sphere", e.Shape)
}

// Adapter performs ray, shape-cast and overlap queries for one
// primitive collider through a uniform interface.
type Adapter interface {

	// Raycast casts a ray from the collider surface in the unit direction dir.
	Raycast(dir math32.Vector3, maxDist float32, mask physics.Mask, q physics.Triggers, buf []physics.Hit) int

	// Cast sweeps the collider shape, shrunk by the contact offset,
	// in the unit direction dir.
	Cast(dir math32.Vector3, maxDist float32, mask physics.Mask, q physics.Triggers, buf []physics.Hit) int

	// Overlap returns the colliders intersecting the collider shape.
	Overlap(mask physics.Mask, q physics.Triggers, buf []*physics.Collider) int

	// Center returns the world-space center of the shape.
	Center() math32.Vector3

	// Extents returns the world-space non-rotated half size of the shape.
	Extents() math32.Vector3
}

// NewAdapter returns the [Adapter] matching the collider shape.
func NewAdapter(w *physics.World, c *physics.Collider, contactOffset float32) (Adapter, error) {
	base := adapterBase{world: w, collider: c, offset: contactOffset}
	switch sh := c.Shape.(type) {
	case *physics.Box:
		return &boxAdapter{adapterBase: base, box: sh}, nil
	case *physics.Capsule:
		if err := sh.Validate(); err != nil {
			return nil, fmt.Errorf("sweep: collider %q: %w", c.Name, err)
		}
		return &capsuleAdapter{adapterBase: base, capsule: sh}, nil
	case *physics.Sphere:
		return &sphereAdapter{adapterBase: base, sphere: sh}, nil
	}
	return nil, &UnsupportedShapeError{Shape: c.Shape}
}

type adapterBase struct {
	world    *physics.World
	collider *physics.Collider
	offset   float32
}

// raycastFrom casts a ray from the point of the extents box in direction dir.
func (ab *adapterBase) raycastFrom(center, extents, dir math32.Vector3, maxDist float32, mask physics.Mask, q physics.Triggers, buf []physics.Hit) int {
	origin := center.Add(ab.collider.State.Rotate(physics.MulComponents(dir, extents)))
	return ab.world.Raycast(origin, dir, maxDist, mask, q, buf)
}

type boxAdapter struct {
	adapterBase
	box *physics.Box
}

func (ba *boxAdapter) Center() math32.Vector3 {
	return ba.collider.State.ToWorld(ba.box.Center)
}

func (ba *boxAdapter) Extents() math32.Vector3 {
	return ba.box.HalfExtents(&ba.collider.State)
}

func (ba *boxAdapter) Raycast(dir math32.Vector3, maxDist float32, mask physics.Mask, q physics.Triggers, buf []physics.Hit) int {
	return ba.raycastFrom(ba.Center(), ba.Extents(), dir, maxDist, mask, q, buf)
}

func (ba *boxAdapter) Cast(dir math32.Vector3, maxDist float32, mask physics.Mask, q physics.Triggers, buf []physics.Hit) int {
	ext := ba.Extents().Sub(math32.Vec3(ba.offset, ba.offset, ba.offset))
	return ba.world.Cast(physics.BoxVolume(ba.Center(), ext), dir, maxDist, mask, q, buf)
}

func (ba *boxAdapter) Overlap(mask physics.Mask, q physics.Triggers, buf []*physics.Collider) int {
	return ba.world.Overlap(physics.BoxVolume(ba.Center(), ba.Extents()), mask, q, buf)
}

type capsuleAdapter struct {
	adapterBase
	capsule *physics.Capsule
}

func (ca *capsuleAdapter) Center() math32.Vector3 {
	return ca.collider.State.ToWorld(ca.capsule.Center)
}

func (ca *capsuleAdapter) Extents() math32.Vector3 {
	cp := ca.capsule
	h, r := cp.Height*.5, cp.Radius
	switch cp.Direction {
	case physics.X:
		return math32.Vec3(h, r, r)
	case physics.Z:
		return math32.Vec3(r, r, h)
	}
	return math32.Vec3(r, h, r)
}

// segment returns the world-space hemisphere centers.
func (ca *capsuleAdapter) segment() (a, b math32.Vector3) {
	c := ca.Center()
	off := ca.collider.State.Rotate(ca.capsule.SegmentOffset())
	return c.Sub(off), c.Add(off)
}

func (ca *capsuleAdapter) Raycast(dir math32.Vector3, maxDist float32, mask physics.Mask, q physics.Triggers, buf []physics.Hit) int {
	return ca.raycastFrom(ca.Center(), ca.Extents(), dir, maxDist, mask, q, buf)
}

func (ca *capsuleAdapter) Cast(dir math32.Vector3, maxDist float32, mask physics.Mask, q physics.Triggers, buf []physics.Hit) int {
	a, b := ca.segment()
	vol := physics.SegmentVolume(a, b, ca.capsule.Radius-ca.offset)
	return ca.world.Cast(vol, dir, maxDist, mask, q, buf)
}

func (ca *capsuleAdapter) Overlap(mask physics.Mask, q physics.Triggers, buf []*physics.Collider) int {
	a, b := ca.segment()
	return ca.world.Overlap(physics.SegmentVolume(a, b, ca.capsule.Radius), mask, q, buf)
}

type sphereAdapter struct {
	adapterBase
	sphere *physics.Sphere
}

func (sa *sphereAdapter) Center() math32.Vector3 {
	return sa.collider.State.ToWorld(sa.sphere.Center)
}

func (sa *sphereAdapter) Extents() math32.Vector3 {
	r := sa.sphere.Radius
	return math32.Vec3(r, r, r)
}

func (sa *sphereAdapter) Raycast(dir math32.Vector3, maxDist float32, mask physics.Mask, q physics.Triggers, buf []physics.Hit) int {
	return sa.raycastFrom(sa.Center(), sa.Extents(), dir, maxDist, mask, q, buf)
}

func (sa *sphereAdapter) Cast(dir math32.Vector3, maxDist float32, mask physics.Mask, q physics.Triggers, buf []physics.Hit) int {
	vol := physics.PointVolume(sa.Center(), sa.sphere.Radius-sa.offset)
	return sa.world.Cast(vol, dir, maxDist, mask, q, buf)
}

func (sa *sphereAdapter) Overlap(mask physics.Mask, q physics.Triggers, buf []*physics.Collider) int {
	return sa.world.Overlap(physics.PointVolume(sa.Center(), sa.sphere.Radius), mask, q, buf)
}
