// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"slices"

	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
)

//////// 	Velocity modifiers

// AddForce adds a force lasting over time.
func (b *Body) AddForce(force math32.Vector3) {
	b.Force.SetAdd(force)
}

// AddInstantForce adds a force applied during the next step only.
func (b *Body) AddInstantForce(force math32.Vector3) {
	b.InstantForce.SetAdd(force)
}

// AddMovement adds self-driven movement on all axes.
// With autoFlip, the body turns to face the x direction of the movement.
func (b *Body) AddMovement(movement math32.Vector3, autoFlip bool) {
	b.AddHorizontalMovement(movement.X, autoFlip)
	b.AddVerticalMovement(movement.Y)
	b.AddForwardMovement(movement.Z)
}

// AddHorizontalMovement adds self-driven movement on the x axis.
// With autoFlip, the body turns to face the movement direction.
func (b *Body) AddHorizontalMovement(movement float32, autoFlip bool) {
	if movement == 0 {
		return
	}
	if autoFlip && physics.Sign(movement) != b.facing {
		b.Flip()
	}
	b.Movement.X += movement
}

// AddVerticalMovement adds self-driven movement on the y axis.
func (b *Body) AddVerticalMovement(movement float32) {
	b.Movement.Y += movement
}

// AddForwardMovement adds self-driven movement on the z axis.
func (b *Body) AddForwardMovement(movement float32) {
	b.Movement.Z += movement
}

// ResetSpeed resets the speed ramp.
func (b *Body) ResetSpeed() {
	b.speed = 0
	b.speedTime = 0
}

// ResetVelocity resets the speed and all velocities.
func (b *Body) ResetVelocity() {
	b.ResetSpeed()
	b.Movement = math32.Vector3{}
	b.Force = math32.Vector3{}
	b.InstantForce = math32.Vector3{}
}

//////// 	Velocity coefficients

// AddVelocityCoef multiplies the body velocity by coef until removed.
// A zero coefficient is ignored.
func (b *Body) AddVelocityCoef(coef float32) {
	if coef == 0 {
		b.Logger.Warn("ignoring null velocity coefficient")
		return
	}
	b.coefs = append(b.coefs, coef)
	b.velocityCoef *= coef
}

// RemoveVelocityCoef removes a coefficient added with [Body.AddVelocityCoef].
// An unknown coefficient is ignored.
func (b *Body) RemoveVelocityCoef(coef float32) {
	i := slices.Index(b.coefs, coef)
	if coef == 0 || i < 0 {
		b.Logger.Warn("ignoring invalid velocity coefficient", "coef", coef)
		return
	}
	b.coefs = slices.Delete(b.coefs, i, i+1)
	b.velocityCoef /= coef
}

// ResetVelocityCoef removes all velocity coefficients.
func (b *Body) ResetVelocityCoef() {
	b.velocityCoef = 1
	b.coefs = b.coefs[:0]
}

//////// 	Derived velocities

// Velocity returns the displacement of the body for a step of dt seconds,
// before collisions.
func (b *Body) Velocity(dt float32) math32.Vector3 {
	movement := math32.Vec3(b.Movement.X*b.speed, b.Movement.Y, b.Movement.Z*b.speed)
	return b.Force.Add(movement).MulScalar(dt).Add(b.InstantForce).MulScalar(b.velocityCoef)
}

// RawVelocity returns the sum of all velocities, without speed nor coefficients.
func (b *Body) RawVelocity() math32.Vector3 {
	return b.Force.Add(b.Movement).Add(b.InstantForce)
}

// RawFlatVelocity returns the x and z components of [Body.RawVelocity].
func (b *Body) RawFlatVelocity() math32.Vector2 {
	return math32.Vec2(b.Force.X+b.InstantForce.X+b.Movement.X, b.Force.Z+b.InstantForce.Z+b.Movement.Z)
}

// SpeedVelocity returns the flat displacement due to movement
// for a step of dt seconds.
func (b *Body) SpeedVelocity(dt float32) math32.Vector3 {
	return physics.Flat(b.Movement).MulScalar(b.speed * dt * b.velocityCoef)
}

//////// 	Velocity computation

// updateSpeed advances the speed ramp while moving on the flat plane.
func (b *Body) updateSpeed(dt float32) {
	if b.Movement.X == 0 && b.Movement.Z == 0 {
		b.ResetSpeed()
		return
	}
	b.speedTime += dt
	b.speed = b.Attributes.EvaluateSpeed(b.speedTime)
}

// computeVelocity decays the force of the body.
func (b *Body) computeVelocity(dt float32) {
	if b.Controller != nil {
		if v, ok := b.Controller.OnComputeVelocity(b, Velocity{Force: b.Force, InstantForce: b.InstantForce, Movement: b.Movement}).Get(); ok {
			b.Force, b.InstantForce, b.Movement = v.Force, v.InstantForce, v.Movement
			return
		}
	}

	if b.Force.X != 0 {
		b.computeVelocityAxis(&b.Force.X, &b.Movement.X, b.InstantForce.X, b.previousFlatForce.X, b.previousFlatVelocity.X, dt)
	}
	if b.Force.Z != 0 {
		b.computeVelocityAxis(&b.Force.Z, &b.Movement.Z, b.InstantForce.Z, b.previousFlatForce.Y, b.previousFlatVelocity.Y, dt)
	}
	b.previousFlatForce = math32.Vec2(b.Force.X, b.Force.Z)
	b.previousFlatVelocity = b.RawFlatVelocity()

	// moving against the vertical force reduces both
	if physics.HaveDifferentSignAndNotNull(b.Force.Y, b.Movement.Y) {
		deceleration := math32.Abs(b.Movement.Y)
		b.Movement.Y = physics.MoveTowards(b.Movement.Y, 0, math32.Abs(b.Force.Y))
		b.Force.Y = physics.MoveTowards(b.Force.Y, 0, deceleration*dt)
	}
}

// computeVelocityAxis decays the force on one flat axis.
// Moving against the force reduces both the force and the movement;
// moving with it reduces the movement to its excess over the force.
func (b *Body) computeVelocityAxis(force, movement *float32, instantForce, previousForce, previousVelocity, dt float32) {
	ph := b.Settings
	deceleration := ph.AirDecelerationForce
	if b.grounded {
		deceleration = ph.GroundDecelerationForce
	}

	if *movement != 0 {
		movementDeceleration := math32.Abs(*force)
		if physics.HaveDifferentSign(*force, *movement) {
			movementDeceleration *= dt
			deceleration = math32.Max(deceleration, math32.Abs(*movement)*2)
		}
		*movement = physics.MoveTowards(*movement, 0, movementDeceleration)
	}

	// When an opposing instant velocity suddenly stops,
	// reduce the force to avoid resuming at full force.
	previousInstant := previousVelocity - previousForce
	if physics.HaveDifferentSignAndNotNull(previousInstant, previousForce) {
		instant := instantForce + *movement
		difference := math32.Abs(previousInstant)
		if !physics.HaveDifferentSign(previousInstant, instant) {
			difference -= math32.Abs(instant)
		}
		if difference > 0 {
			*force = physics.MoveTowards(*force, 0, difference)
		}
	}
	*force = physics.MoveTowards(*force, 0, deceleration*dt)
}
