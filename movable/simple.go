// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
)

// simple stops at the first obstacle, without consuming the remaining velocity.
type simple struct {
	resolver
}

func (s *simple) PerformCollisions(velocity math32.Vector3) []physics.Hit {
	s.hits = s.hits[:0]
	s.sweep(velocity)
	s.setGroundState(false)
	return s.finish()
}

func (s *simple) sweep(velocity math32.Vector3) {
	b := s.body
	n, hit := b.Sweep.CastVelocity(velocity)

	// stuck into something
	if hit.Distance == 0 {
		return
	}
	if n == 0 {
		b.move(velocity)
		return
	}
	s.advance(velocity, hit.Distance)
	s.registerCasts(n)
}
