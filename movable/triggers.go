// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"slices"

	"github.com/horrorps1/dread/physics"
)

// Trigger receives the bodies entering and exiting a trigger collider.
// It is set as the [physics.Collider.Owner] of the trigger.
type Trigger interface {
	OnEnter(b *Body)
	OnExit(b *Body)
}

type triggerOverlap struct {
	collider *physics.Collider
	trigger  Trigger
}

// RefreshOverlaps pushes the body out of the solid colliders it overlaps,
// and calls the enter and exit hooks of the triggers it started or
// stopped overlapping since the last refresh.
func (b *Body) RefreshOverlaps() {
	n := b.Sweep.Overlap(physics.CollideTriggers)
	b.current = b.current[:0]
	for i := range n {
		c := b.Sweep.OverlapCollider(i)
		if c == b.Collider {
			continue
		}
		if !c.Trigger {
			if dir, depth, ok := physics.ComputePenetration(b.Collider.Volume(), c.Volume()); ok {
				b.move(dir.MulScalar(depth))
			}
			continue
		}
		tr, ok := c.Owner.(Trigger)
		if !ok {
			continue
		}
		b.current = append(b.current, c)
		if !slices.ContainsFunc(b.triggers, func(o triggerOverlap) bool { return o.collider == c }) {
			b.triggers = append(b.triggers, triggerOverlap{collider: c, trigger: tr})
			tr.OnEnter(b)
		}
	}

	for i := len(b.triggers) - 1; i >= 0; i-- {
		o := b.triggers[i]
		if !slices.Contains(b.current, o.collider) {
			b.triggers = slices.Delete(b.triggers, i, i+1)
			o.trigger.OnExit(b)
		}
	}
}

// ExitTriggers calls the exit hook of every trigger the body overlaps,
// as when the body is deactivated.
func (b *Body) ExitTriggers() {
	triggers := b.triggers
	b.triggers = nil
	for _, o := range triggers {
		o.trigger.OnExit(b)
	}
}

// Triggers returns the number of triggers the body overlaps.
func (b *Body) Triggers() int {
	return len(b.triggers)
}
