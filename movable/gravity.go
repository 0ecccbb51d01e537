// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"cogentcore.org/core/math32"
)

// applyGravity adds gravity for a step of dt seconds,
// unless root motion or the controller drive the vertical force.
func (b *Body) applyGravity(dt float32) {
	if b.root.active && b.root.position.Y != 0 {
		return
	}
	if b.Controller != nil {
		if force, ok := b.Controller.OnApplyGravity(b).Get(); ok {
			b.Force = force
			return
		}
	}
	b.AddGravity(dt)
}

// AddGravity adds the world gravity for a step of dt seconds
// to the force, down to the maximum gravity.
func (b *Body) AddGravity(dt float32) {
	b.AddGravityScaled(dt, 1, 1)
}

// AddGravityScaled adds the world gravity scaled by coef for a step of
// dt seconds to the force, down to the maximum gravity scaled by maxCoef.
func (b *Body) AddGravityScaled(dt, coef, maxCoef float32) {
	limit := b.Settings.MaxGravity * maxCoef
	if b.Force.Y <= limit {
		return
	}
	gravity := math32.Max(b.World.Gravity.Y*coef*dt, limit-b.Force.Y)
	b.AddForce(math32.Vec3(0, gravity, 0))
}
