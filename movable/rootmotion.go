// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"cogentcore.org/core/math32"
)

// MotionSource is the authoritative motion of an animated body:
// its local position, relative to the body, sampled on each step.
type MotionSource interface {
	LocalPosition() math32.Vector3
}

// rootMotion is the state of a body driven by a [MotionSource].
type rootMotion struct {
	source MotionSource
	active bool

	// applyingForce skips the next sample, converted to force instead.
	applyingForce bool

	// position is the last sampled local position.
	position math32.Vector3

	// velocity is the last sampled displacement.
	velocity math32.Vector3
}

// UsingRootMotion returns whether the body follows its motion source.
func (b *Body) UsingRootMotion() bool {
	return b.root.active
}

// rootDelta returns the motion since the last sample, oriented by the facing side.
func (b *Body) rootDelta() math32.Vector3 {
	v := b.root.source.LocalPosition().Sub(b.root.position)
	v.X *= float32(b.facing)
	return v
}

func (b *Body) applyRootMotion() {
	if b.root.applyingForce {
		b.root.applyingForce = false
		return
	}
	v := b.rootDelta()
	b.AddInstantForce(v)
	b.root.velocity = v
	b.root.position = b.root.source.LocalPosition()
}

func (b *Body) hasMotionSource() bool {
	if b.root.source == nil {
		b.Logger.Warn("root motion requires a motion source")
		return false
	}
	return true
}

// StartRootMotion starts moving the body by the motion of its source.
func (b *Body) StartRootMotion() {
	if !b.hasMotionSource() {
		return
	}
	if !b.root.active {
		b.root.active = true
		b.root.applyingForce = false
		b.playObstacle(ObstacleHorizontal, 0)
		vertical := 0
		if b.grounded {
			vertical = 1
		}
		b.playObstacle(ObstacleVertical, vertical)
	}
	b.root.position = math32.Vector3{}
}

// StopRootMotion applies the motion left since the last sample,
// then stops following the motion source.
func (b *Body) StopRootMotion() {
	if !b.hasMotionSource() {
		return
	}
	b.AddInstantForce(b.rootDelta())
	b.StopRootMotionImmediately()
}

// StopRootMotionImmediately stops following the motion source.
func (b *Body) StopRootMotionImmediately() {
	b.root.active = false
}

// ApplyRootMotionForce converts the last sampled motion into a force,
// for a step of dt seconds, so the body keeps its momentum.
func (b *Body) ApplyRootMotionForce(dt float32) {
	if !b.hasMotionSource() || dt <= 0 {
		return
	}
	b.root.applyingForce = true
	force := b.root.velocity.MulScalar(1 / dt)
	if force.Y < 0 && force.X != 0 && b.grounded {
		force.X *= b.Settings.OnGroundedForceMultiplier
	}
	b.AddForce(force)
	b.root.position = b.root.source.LocalPosition()
}

// ResetRootMotion resets the sampled motion.
func (b *Body) ResetRootMotion() {
	b.root.position = math32.Vector3{}
	b.root.velocity = math32.Vector3{}
}
