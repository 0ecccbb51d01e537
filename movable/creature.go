// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
)

// creature slides along obstacles like [complexSlide], and classifies
// each obstacle as ground, climbable step, steep slope or plain obstacle.
type creature struct {
	resolver
}

func (cr *creature) PerformCollisions(velocity math32.Vector3) []physics.Hit {
	b := cr.body
	cr.hits = cr.hits[:0]

	// follow the ground the body stands on
	if b.grounded {
		velocity = projectOnNormal(velocity, b.GroundNormal)
	}
	if grounded, normal := cr.slide(velocity, b.GroundNormal); grounded {
		b.GroundNormal = normal
		cr.setGroundState(true)
	} else {
		cr.setGroundState(false)
	}
	return cr.finish()
}

// slide sweeps the body along velocity, starting on the surface of the
// given normal. It returns whether an obstacle was classified as ground,
// with the normal of the last one.
func (cr *creature) slide(velocity, normal math32.Vector3) (grounded bool, groundNormal math32.Vector3) {
	b := cr.body
	ph := b.Settings
	sc := b.Sweep
	offset := b.contactOffset()

	for depth := 0; ; depth++ {
		n, hit := sc.CastVelocity(velocity)
		if hit.Distance == 0 {
			return
		}
		if n == 0 {
			b.move(velocity)
			cr.groundSnap(velocity, normal)
			return
		}
		velocity = cr.advance(velocity, hit.Distance)
		cr.registerCasts(n)
		if depth == MaxRecursion {
			cr.groundSnap(velocity, normal)
			return
		}

		// velocity relative to the surface the body was moving on
		if normal.Y != 1 {
			velocity = velocity.MulQuat(physics.FromToRotation(normal, physics.Up))
		}

		onGround := false
		normal = sc.CastHit(0).Normal
		switch {
		case ph.IsGroundSurface(normal):
			velocity = physics.ParallelSurface(projectOnNormal(velocity, normal), normal)
			onGround = true

		case normal.Y >= 0 && (physics.HaveDifferentSignAndNotNull(velocity.X, normal.X) ||
			physics.HaveDifferentSignAndNotNull(velocity.Z, normal.Z)):
			// climb as high as possible along the obstacle
			climb := physics.Normalize(physics.ProjectOnPlane(physics.Up, normal)).MulScalar(ph.GroundClimbHeight)
			top, _ := sc.DoCast(climb)
			var lift math32.Vector3
			if d := top.Distance - offset; d > 0 {
				lift = physics.Normalize(climb).MulScalar(d)
				b.move(lift)
			}

			// the step is climbed if no more in the way
			if _, blocked := sc.DoCast(normal.MulScalar(offset * -.1)); blocked {
				flatMovement := b.Movement.X + b.Movement.Z
				flatForce := b.Force.X + b.Force.Z
				b.move(lift.MulScalar(-1))
				if flatMovement < ph.SteepSlopeRequiredMovement && flatForce < ph.SteepSlopeRequiredForce {
					// not enough momentum: a vertical wall
					xz := physics.ParallelSurface(physics.Flat(velocity), physics.Normalize(physics.Flat(normal)))
					velocity = math32.Vec3(xz.X, velocity.Y, xz.Z)
					normal = physics.Up
					b.debug("wall", "collider", hit.Collider)
				} else {
					velocity = physics.ParallelSurface(velocity, normal)
					onGround = true
					b.debug("steep slope", "collider", hit.Collider)
				}
			} else {
				velocity = velocity.Sub(math32.Vec3(
					physics.MoveTowards(lift.X, 0, math32.Abs(velocity.X)),
					lift.Y,
					physics.MoveTowards(lift.Z, 0, math32.Abs(velocity.Z))))
				normal = physics.Up
				onGround = true
				b.debug("climbed", "collider", hit.Collider)
			}

		default:
			// ceiling or down slope
			velocity = physics.ParallelSurface(velocity, normal)
		}

		if onGround {
			grounded, groundNormal = true, normal
		}
		if physics.IsZero(velocity) {
			return
		}
	}
}

// projectOnNormal orients the flat part of velocity along the surface of
// normal. The vertical part follows the surface only when going down.
func projectOnNormal(velocity, normal math32.Vector3) math32.Vector3 {
	xz := physics.ProjectOnPlane(physics.Flat(velocity), normal)
	up := physics.Up
	if velocity.Y < 0 {
		up = normal
	}
	return xz.Add(up.MulScalar(velocity.Y))
}

// groundSnap pulls a grounded body going down onto the ground below it,
// to follow slopes and small steps.
func (cr *creature) groundSnap(velocity, normal math32.Vector3) {
	b := cr.body
	velocity = normal.MulScalar(velocity.Dot(normal))
	if !b.grounded || velocity.Y > 0 {
		return
	}
	hit, ok := b.Sweep.DoCast(normal.MulScalar(-b.Settings.GroundSnapHeight))
	if !ok {
		return
	}
	if hit.Distance -= b.contactOffset(); hit.Distance > 0 {
		b.move(normal.MulScalar(-hit.Distance))
		cr.register(hit)
	}
}
