// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
)

// Outcome is the result of a [Controller] hook: either the default
// behavior of the body, or an overridden value replacing it.
type Outcome[T any] struct {
	value      T
	overridden bool
}

// Default returns an outcome letting the body apply its default behavior.
func Default[T any]() Outcome[T] {
	return Outcome[T]{}
}

// Override returns an outcome replacing the default behavior with v.
func Override[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, overridden: true}
}

// Get returns the overridden value, and whether the outcome is overridden.
func (o Outcome[T]) Get() (T, bool) {
	return o.value, o.overridden
}

// Overridden returns whether the default behavior is replaced.
func (o Outcome[T]) Overridden() bool {
	return o.overridden
}

// Velocity is the decomposition of the velocity of a [Body].
type Velocity struct {

	// Force decays over time, like wind or knockback.
	Force math32.Vector3

	// InstantForce is applied for one step only, like recoil.
	InstantForce math32.Vector3

	// Movement is self-driven, like walking, and scaled by the speed.
	Movement math32.Vector3
}

// Obstacle is the axis of an obstacle reported while using root motion.
type Obstacle int32

const (
	// ObstacleHorizontal is an obstacle on the x axis.
	ObstacleHorizontal Obstacle = iota

	// ObstacleVertical is an obstacle on the y axis.
	ObstacleVertical
)

func (o Obstacle) String() string {
	if o == ObstacleVertical {
		return "Vertical"
	}
	return "Horizontal"
}

// Profile selects how a body resolves its collisions.
type Profile struct {

	// Kind of collision resolution strategy.
	Kind Kind

	// Mask of the layers the body collides with.
	Mask physics.Mask
}

// Controller drives a [Body] from the gameplay layer. Each hook returns
// an [Outcome]: [Default] keeps the body behavior, [Override] replaces it
// with the returned value. All hooks are called synchronously during [Body.Step].
type Controller interface {

	// CollisionProfile is queried once when creating the body.
	CollisionProfile() Profile

	// OnApplyGravity is called before applying gravity.
	// An overridden value is the force the body adopts instead.
	OnApplyGravity(b *Body) Outcome[math32.Vector3]

	// OnComputeVelocity is called before decaying the velocity.
	// An overridden value is the velocity the body adopts, without decay.
	OnComputeVelocity(b *Body, v Velocity) Outcome[Velocity]

	// OnAppliedVelocity is called after moving the body by velocity,
	// resulting in the given displacement.
	// An overridden value is the speed the body adopts, skipping the
	// speed reset and the obstacle feedback.
	OnAppliedVelocity(b *Body, velocity, displacement math32.Vector3) Outcome[float32]

	// OnSetGrounded is called when the ground state of the body changes.
	// An overridden value is the force the body adopts instead of
	// reducing its force on landing.
	OnSetGrounded(b *Body, grounded bool) Outcome[math32.Vector3]

	// OnPlayObstacle is called when the obstacle value on an axis changes
	// while using root motion.
	// An overridden value is the obstacle value the body records.
	OnPlayObstacle(b *Body, axis Obstacle, value int) Outcome[int]
}

// BaseController is a [Controller] keeping every default behavior.
// Embed it to only implement the hooks you need.
type BaseController struct {
	Profile Profile
}

func (bc *BaseController) CollisionProfile() Profile {
	return bc.Profile
}

func (bc *BaseController) OnApplyGravity(b *Body) Outcome[math32.Vector3] {
	return Default[math32.Vector3]()
}

func (bc *BaseController) OnComputeVelocity(b *Body, v Velocity) Outcome[Velocity] {
	return Default[Velocity]()
}

func (bc *BaseController) OnAppliedVelocity(b *Body, velocity, displacement math32.Vector3) Outcome[float32] {
	return Default[float32]()
}

func (bc *BaseController) OnSetGrounded(b *Body, grounded bool) Outcome[math32.Vector3] {
	return Default[math32.Vector3]()
}

func (bc *BaseController) OnPlayObstacle(b *Body, axis Obstacle, value int) Outcome[int] {
	return Default[int]()
}
