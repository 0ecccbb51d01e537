// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"cogentcore.org/core/math32"
)

// Transform is a world pose a body can be parented to,
// such as a moving platform [physics.Collider] or another [Body].
type Transform interface {
	Position() math32.Vector3
	Rotation() math32.Quat
}

type parentLink struct {
	transform Transform
	position  math32.Vector3
	rotation  math32.Quat
}

// Parent makes the body follow the moves of the given transform.
func (b *Body) Parent(parent Transform) {
	b.parent = parentLink{transform: parent, position: parent.Position(), rotation: parent.Rotation()}
}

// Unparent stops following the parent transform.
func (b *Body) Unparent() {
	b.parent = parentLink{}
}

// IsParented returns whether the body follows a parent transform.
func (b *Body) IsParented() bool {
	return b.parent.transform != nil
}

// followParent applies the parent move since the last step, rotating
// the body around the parent by the parent rotation.
func (b *Body) followParent() {
	pl := &b.parent
	pos := pl.transform.Position()
	rot := pl.transform.Rotation()

	delta := pos.Sub(pl.position)
	pl.position = pos

	inv := pl.rotation.Inverse()
	turn := rot.Mul(inv)
	pl.rotation = rot

	offset := b.Position().Add(delta).Sub(pos)
	npos := pos.Add(offset.MulQuat(turn))
	nrot := b.transform.Quat.Mul(turn)
	b.SetPositionAndRotation(npos, nrot)
}
