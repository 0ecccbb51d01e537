// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep provides precise cast and overlap queries for the
// primitive colliders of kinematic bodies: contact offset correction,
// self-collision filtering and grouping of simultaneous hits.
package sweep

import (
	"slices"

	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
)

const (
	// CastCapacity is the maximum number of hits returned by one cast.
	CastCapacity = 8

	// OverlapCapacity is the maximum number of colliders returned by one overlap.
	OverlapCapacity = 8

	// MaxCastDifference is the maximum distance past the nearest hit for
	// another hit to be reported as a simultaneous contact.
	MaxCastDifference = .001

	// MinCastLength is the minimum length used for probing casts.
	MinCastLength = .0001
)

// Collider wraps a primitive [physics.Collider] to perform sweep queries
// from it. Query results live in buffers owned by the Collider and are
// overwritten by the next query: a Collider must not be shared across
// goroutines, and results must be consumed before querying again.
type Collider struct {

	// Collider is the wrapped collider.
	Collider *physics.Collider

	// Mask is the default mask used for queries.
	Mask physics.Mask

	world   *physics.World
	adapter Adapter

	casts    [CastCapacity]physics.Hit
	overlaps [OverlapCapacity]*physics.Collider
}

// New returns a sweep collider for c in world w using the given collision mask.
func New(w *physics.World, c *physics.Collider, mask physics.Mask) (*Collider, error) {
	ad, err := NewAdapter(w, c, w.ContactOffset)
	if err != nil {
		return nil, err
	}
	return &Collider{Collider: c, Mask: mask, world: w, adapter: ad}, nil
}

// ContactOffset returns the skin width of the world.
func (sc *Collider) ContactOffset() float32 {
	return sc.world.ContactOffset
}

// Center returns the world-space center of the collider.
func (sc *Collider) Center() math32.Vector3 {
	return sc.adapter.Center()
}

// Extents returns the world-space non-rotated half size of the collider.
func (sc *Collider) Extents() math32.Vector3 {
	return sc.adapter.Extents()
}

//////// 	Raycasts

// RaycastVelocity casts a ray from the collider surface along v,
// for the length of v.
func (sc *Collider) RaycastVelocity(v math32.Vector3) (physics.Hit, bool) {
	return sc.Raycast(v, v.Length())
}

// Raycast casts a ray from the collider surface in direction dir,
// returning the nearest hit that is not the collider itself.
func (sc *Collider) Raycast(dir math32.Vector3, maxDist float32) (physics.Hit, bool) {
	dir = physics.Normalize(dir)
	n := sc.adapter.Raycast(dir, maxDist, sc.Mask, physics.IgnoreTriggers, sc.casts[:])
	best := -1
	for i := range n {
		if sc.casts[i].Collider == sc.Collider {
			continue
		}
		if best < 0 || sc.casts[i].Distance < sc.casts[best].Distance {
			best = i
		}
	}
	if best < 0 {
		return physics.Hit{}, false
	}
	return sc.casts[best], true
}

//////// 	Casts

// CastHit returns the hit at index i of the last cast, sorted by distance.
// Distances are the raw query distances, without contact offset correction.
func (sc *Collider) CastHit(i int) physics.Hit {
	return sc.casts[i]
}

// DoCast casts the collider along v and returns the main hit
// and whether anything was hit.
func (sc *Collider) DoCast(v math32.Vector3) (physics.Hit, bool) {
	n, hit := sc.Cast(v, v.Length())
	return hit, n > 0
}

// CastVelocity casts the collider along v, for the length of v.
func (sc *Collider) CastVelocity(v math32.Vector3) (int, physics.Hit) {
	return sc.Cast(v, v.Length())
}

// Cast casts the collider in direction dir, for at most maxDist.
// It returns the number of simultaneous hits along the trajectory, that
// is the nearest hit and every hit within [MaxCastDifference] of it,
// and the nearest hit with its distance reduced by the contact offset.
// When nothing is hit, the returned hit only carries the distance
// that could be travelled.
func (sc *Collider) Cast(dir math32.Vector3, maxDist float32) (int, physics.Hit) {
	offset := sc.world.ContactOffset
	dir = physics.Normalize(dir)
	maxDist += offset * 2
	n := sc.adapter.Cast(dir, maxDist, sc.Mask, physics.IgnoreTriggers, sc.casts[:])

	// remove this collider if detected
	k := 0
	for i := range n {
		if sc.casts[i].Collider != sc.Collider {
			sc.casts[k] = sc.casts[i]
			k++
		}
	}
	n = k
	if n == 0 {
		return 0, physics.Hit{Distance: maxDist - offset}
	}

	slices.SortStableFunc(sc.casts[:n], func(a, b physics.Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})

	nearest := sc.casts[0].Distance
	hit := sc.casts[0]
	hit.Distance = math32.Max(0, nearest-offset)
	for i := 1; i < n; i++ {
		if sc.casts[i].Distance > nearest+MaxCastDifference {
			return i, hit
		}
	}
	return n, hit
}

//////// 	Overlaps

// OverlapCollider returns the collider at index i of the last overlap.
func (sc *Collider) OverlapCollider(i int) *physics.Collider {
	return sc.overlaps[i]
}

// Overlap queries the colliders intersecting this one and returns their number.
func (sc *Collider) Overlap(q physics.Triggers) int {
	return sc.adapter.Overlap(sc.Mask, q, sc.overlaps[:])
}

// OverlapMask queries the colliders of the given mask intersecting this one.
func (sc *Collider) OverlapMask(mask physics.Mask, q physics.Triggers) int {
	return sc.adapter.Overlap(mask, q, sc.overlaps[:])
}

// SortOverlaps sorts the first n colliders of the last overlap.
func (sc *Collider) SortOverlaps(n int, cmp func(a, b *physics.Collider) int) {
	slices.SortFunc(sc.overlaps[:n], cmp)
}
