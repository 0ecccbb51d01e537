// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
)

// complexSlide slides along obstacles: after each hit, the remaining
// velocity is made parallel to the main obstacle surface and swept again,
// up to [MaxRecursion] times.
type complexSlide struct {
	resolver
}

func (cs *complexSlide) PerformCollisions(velocity math32.Vector3) []physics.Hit {
	cs.hits = cs.hits[:0]
	cs.slide(velocity)
	cs.setGroundState(false)
	return cs.finish()
}

func (cs *complexSlide) slide(velocity math32.Vector3) {
	b := cs.body
	for depth := 0; ; depth++ {
		n, hit := b.Sweep.CastVelocity(velocity)
		if hit.Distance == 0 {
			return
		}
		if n == 0 {
			b.move(velocity)
			return
		}
		velocity = cs.advance(velocity, hit.Distance)
		cs.registerCasts(n)
		if depth == MaxRecursion {
			return
		}

		velocity = physics.ParallelSurface(velocity, b.Sweep.CastHit(0).Normal)
		if physics.IsZero(velocity) {
			return
		}
	}
}
