// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"cogentcore.org/core/math32"
)

// State contains the pose of a collider in world space:
// position and orientation. Velocities are not tracked here;
// kinematic bodies own their velocity decomposition.
type State struct {

	// position of the collider origin
	Pos math32.Vector3

	// rotation specified as a Quat
	Quat math32.Quat
}

// NewState returns a [State] at the given position with identity rotation.
func NewState(pos math32.Vector3) State {
	return State{Pos: pos, Quat: math32.Quat{W: 1}}
}

// Defaults sets defaults only if current values are nil
func (ps *State) Defaults() {
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// Rotate returns v rotated by the state orientation.
func (ps *State) Rotate(v math32.Vector3) math32.Vector3 {
	if ps.Quat.IsNil() {
		return v
	}
	return v.MulQuat(ps.Quat)
}

// ToWorld transforms a local point into world space.
func (ps *State) ToWorld(local math32.Vector3) math32.Vector3 {
	return ps.Pos.Add(ps.Rotate(local))
}

//////// 		Moving

// Move moves (translates) Pos by given amount.
func (ps *State) Move(delta math32.Vector3) {
	ps.Pos.SetAdd(delta)
}

//////// 		Rotating

// SetEulerRotation sets the rotation in Euler angles (degrees).
func (ps *State) SetEulerRotation(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
}
