// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
)

// Axis is a local axis of a shape.
type Axis int32

const (
	// X is the local x axis.
	X Axis = iota

	// Y is the local y axis.
	Y

	// Z is the local z axis.
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int32(a))
}

// MarshalText encodes the axis as its lower-case name.
func (a Axis) MarshalText() ([]byte, error) {
	if a < X || a > Z {
		return nil, &InvalidAxisConfigurationError{Axis: a}
	}
	return []byte(strings.ToLower(a.String())), nil
}

// UnmarshalText decodes an axis name, case-insensitively.
func (a *Axis) UnmarshalText(text []byte) error {
	for _, v := range []Axis{X, Y, Z} {
		if strings.EqualFold(string(text), v.String()) {
			*a = v
			return nil
		}
	}
	return fmt.Errorf("physics: invalid shape axis %q, must be x, y or z", text)
}

// Vector returns the unit vector of the axis.
func (a Axis) Vector() math32.Vector3 {
	switch a {
	case X:
		return math32.Vec3(1, 0, 0)
	case Z:
		return math32.Vec3(0, 0, 1)
	}
	return math32.Vec3(0, 1, 0)
}

// InvalidAxisConfigurationError is returned when a shape is
// configured along an axis outside of {X, Y, Z}. It indicates
// malformed asset data and is not recoverable.
type InvalidAxisConfigurationError struct {
	Axis Axis
}

func (e *InvalidAxisConfigurationError) Error() string {
	return fmt.Sprintf("physics: invalid shape axis %v, must be X, Y or Z", e.Axis)
}

// Shape is the geometry of a [Collider], expressed in the collider local space.
type Shape interface {

	// Validate returns an error if the shape parameters cannot be used.
	Validate() error

	// Volume returns the world-space query volume of the shape at the given pose.
	Volume(st *State) Volume
}

// Box is an axis-aligned box shape. When rotated, its volume is the
// world axis-aligned bounds of the rotated box.
type Box struct {

	// local center offset
	Center math32.Vector3

	// full size along each local axis
	Size math32.Vector3
}

func (bx *Box) Validate() error {
	if bx.Size.X < 0 || bx.Size.Y < 0 || bx.Size.Z < 0 {
		return fmt.Errorf("physics: box size must be positive, got %v", bx.Size)
	}
	return nil
}

// HalfExtents returns the world-space non-rotated half size of the box
// at the given pose.
func (bx *Box) HalfExtents(st *State) math32.Vector3 {
	h := bx.Size.MulScalar(.5)
	if st.Quat.IsNil() || st.Quat.IsIdentity() {
		return h
	}
	// bounds of the rotated box
	ex := st.Rotate(math32.Vec3(h.X, 0, 0))
	ey := st.Rotate(math32.Vec3(0, h.Y, 0))
	ez := st.Rotate(math32.Vec3(0, 0, h.Z))
	return math32.Vec3(
		math32.Abs(ex.X)+math32.Abs(ey.X)+math32.Abs(ez.X),
		math32.Abs(ex.Y)+math32.Abs(ey.Y)+math32.Abs(ez.Y),
		math32.Abs(ex.Z)+math32.Abs(ey.Z)+math32.Abs(ez.Z))
}

func (bx *Box) Volume(st *State) Volume {
	return BoxVolume(st.ToWorld(bx.Center), bx.HalfExtents(st))
}

// Capsule is a cylinder with hemispheres at each end,
// oriented along one of its local axes.
type Capsule struct {

	// local center offset
	Center math32.Vector3

	// radius of the hemispheres and the cylinder
	Radius float32

	// total height, hemispheres included
	Height float32

	// local axis of the height
	Direction Axis
}

func (cp *Capsule) Validate() error {
	if cp.Direction < X || cp.Direction > Z {
		return &InvalidAxisConfigurationError{Axis: cp.Direction}
	}
	if cp.Radius <= 0 {
		return fmt.Errorf("physics: capsule radius must be positive, got %v", cp.Radius)
	}
	return nil
}

// SegmentOffset returns the local offset from the center to
// each hemisphere center.
func (cp *Capsule) SegmentOffset() math32.Vector3 {
	half := math32.Max(cp.Height*.5-cp.Radius, 0)
	return cp.Direction.Vector().MulScalar(half)
}

func (cp *Capsule) Volume(st *State) Volume {
	c := st.ToWorld(cp.Center)
	off := st.Rotate(cp.SegmentOffset())
	return SegmentVolume(c.Sub(off), c.Add(off), cp.Radius)
}

// Sphere is a sphere shape.
type Sphere struct {

	// local center offset
	Center math32.Vector3

	// radius of the sphere
	Radius float32
}

func (sp *Sphere) Validate() error {
	if sp.Radius <= 0 {
		return fmt.Errorf("physics: sphere radius must be positive, got %v", sp.Radius)
	}
	return nil
}

func (sp *Sphere) Volume(st *State) Volume {
	return PointVolume(st.ToWorld(sp.Center), sp.Radius)
}
