// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"cogentcore.org/core/math32"
)

// Collider is a shape placed in a [World].
// Trigger colliders are reported by overlap queries that collide
// with triggers but never block casts that ignore them.
type Collider struct {

	// Name is used for logging and scene lookups.
	Name string

	// Shape is the local-space geometry.
	Shape Shape

	// State is the world pose. Kinematic bodies move it directly.
	State State

	// Layer is the collision layer, in [0, 31].
	Layer uint8

	// Trigger marks a volume that reports overlaps but does not block.
	Trigger bool

	// Owner is the gameplay object attached to this collider,
	// such as a trigger handler or a body.
	Owner any
}

// NewCollider returns a collider for the given shape at pos.
func NewCollider(name string, shape Shape, pos math32.Vector3) *Collider {
	return &Collider{Name: name, Shape: shape, State: NewState(pos)}
}

// Volume returns the world-space volume of the collider.
func (c *Collider) Volume() Volume {
	return c.Shape.Volume(&c.State)
}

// Position returns the world position of the collider.
func (c *Collider) Position() math32.Vector3 {
	return c.State.Pos
}

// Rotation returns the world rotation of the collider.
func (c *Collider) Rotation() math32.Quat {
	return c.State.Quat
}

func (c *Collider) String() string {
	return c.Name
}

// Mask is a set of collision layers.
type Mask uint32

// AllLayers matches every layer.
const AllLayers Mask = ^Mask(0)

// LayerMask returns the mask containing the given layers.
func LayerMask(layers ...uint8) Mask {
	var m Mask
	for _, l := range layers {
		m |= 1 << (l & 31)
	}
	return m
}

// Has returns whether the mask contains layer.
func (m Mask) Has(layer uint8) bool {
	return m&(1<<(layer&31)) != 0
}

// Triggers determines how queries interact with trigger colliders.
type Triggers int32

const (
	// IgnoreTriggers skips trigger colliders.
	IgnoreTriggers Triggers = iota

	// CollideTriggers reports trigger colliders.
	CollideTriggers
)

// Hit is the result of a ray or shape cast against one collider.
type Hit struct {

	// Collider that was hit; nil for an empty hit.
	Collider *Collider

	// Point is the contact point on the hit collider surface.
	Point math32.Vector3

	// Normal is the surface normal at the contact, pointing
	// towards the casting volume.
	Normal math32.Vector3

	// Distance travelled along the cast direction before contact.
	Distance float32
}
