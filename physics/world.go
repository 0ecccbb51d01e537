// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"fmt"
	"slices"

	"cogentcore.org/core/math32"
)

const (
	// DefaultContactOffset is the skin width kept between casting
	// shapes and the surfaces they hit.
	DefaultContactOffset = .01

	// sweepTolerance is the separation at which a sweep is considered in contact.
	sweepTolerance = 1e-4

	// sweepIterations bounds the conservative advancement loop.
	sweepIterations = 64
)

// World is a flat collection of colliders answering ray, shape-cast
// and overlap queries. It has no integration step of its own:
// kinematic bodies move their colliders and query the world.
type World struct {

	// ContactOffset is the skin width used by sweep queries.
	ContactOffset float32

	// Gravity is the standard gravity acceleration.
	Gravity math32.Vector3

	colliders []*Collider

	// ignore[a] has bit b set when layers a and b do not collide.
	ignore [32]Mask
}

// NewWorld returns an empty world with default contact offset and gravity.
func NewWorld() *World {
	return &World{ContactOffset: DefaultContactOffset, Gravity: math32.Vec3(0, -9.81, 0)}
}

// Add validates and adds colliders to the world.
func (w *World) Add(cs ...*Collider) error {
	for _, c := range cs {
		if c.Shape == nil {
			return fmt.Errorf("physics: collider %q has no shape", c.Name)
		}
		if err := c.Shape.Validate(); err != nil {
			return fmt.Errorf("physics: collider %q: %w", c.Name, err)
		}
		c.State.Defaults()
		w.colliders = append(w.colliders, c)
	}
	return nil
}

// Remove removes the collider from the world, if present.
func (w *World) Remove(c *Collider) {
	w.colliders = slices.DeleteFunc(w.colliders, func(o *Collider) bool { return o == c })
}

// Colliders returns the colliders of the world, in insertion order.
func (w *World) Colliders() []*Collider {
	return w.colliders
}

// ColliderByName returns the first collider with the given name, or nil.
func (w *World) ColliderByName(name string) *Collider {
	for _, c := range w.colliders {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// IgnoreLayerCollision sets whether layers a and b collide.
func (w *World) IgnoreLayerCollision(a, b uint8, ignore bool) {
	a, b = a&31, b&31
	if ignore {
		w.ignore[a] |= 1 << b
		w.ignore[b] |= 1 << a
		return
	}
	w.ignore[a] &^= 1 << b
	w.ignore[b] &^= 1 << a
}

// LayerCollisionMask returns the mask of the layers the given layer collides with.
func (w *World) LayerCollisionMask(layer uint8) Mask {
	return AllLayers &^ w.ignore[layer&31]
}

func (w *World) accepts(c *Collider, mask Mask, q Triggers) bool {
	if !mask.Has(c.Layer) {
		return false
	}
	return !c.Trigger || q == CollideTriggers
}

// Raycast casts a ray and writes its hits into buf, returning their number.
// When there are more hits than buf holds, the nearest ones are kept.
// Colliders containing the origin are skipped. A ray starting on the
// surface of a collider and heading inside hits it at a zero distance.
func (w *World) Raycast(origin, dir math32.Vector3, maxDist float32, mask Mask, q Triggers, buf []Hit) int {
	dir = Normalize(dir)
	if IsZero(dir) {
		return 0
	}
	ray := PointVolume(origin, 0)
	n := 0
	for _, c := range w.colliders {
		if !w.accepts(c, mask, q) {
			continue
		}
		vol := c.Volume()
		if vol.Contains(origin) {
			continue
		}
		if d, _, _ := ray.Distance(vol); d <= 0 {
			if e, _, _ := ray.Translate(dir.MulScalar(sweepTolerance)).Distance(vol); e > 0 {
				continue
			}
		}
		if hit, ok := sweep(ray, dir, maxDist, vol); ok {
			hit.Collider = c
			n = keepNearest(buf, n, hit)
		}
	}
	return n
}

// Cast sweeps vol along dir for at most maxDist and writes its hits into
// buf, returning their number. When there are more hits than buf holds,
// the nearest ones are kept. Colliders overlapping vol at the start are
// reported with a zero distance and a normal opposite to dir.
func (w *World) Cast(vol Volume, dir math32.Vector3, maxDist float32, mask Mask, q Triggers, buf []Hit) int {
	dir = Normalize(dir)
	if IsZero(dir) {
		return 0
	}
	n := 0
	for _, c := range w.colliders {
		if !w.accepts(c, mask, q) {
			continue
		}
		if hit, ok := sweep(vol, dir, maxDist, c.Volume()); ok {
			hit.Collider = c
			n = keepNearest(buf, n, hit)
		}
	}
	return n
}

// keepNearest adds hit to the n hits of buf, replacing the farthest
// one when buf is full, and returns the new number of hits.
func keepNearest(buf []Hit, n int, hit Hit) int {
	if n < len(buf) {
		buf[n] = hit
		return n + 1
	}
	far := -1
	for i := range n {
		if far < 0 || buf[i].Distance > buf[far].Distance {
			far = i
		}
	}
	if far >= 0 && hit.Distance < buf[far].Distance {
		buf[far] = hit
	}
	return n
}

// Overlap writes every collider intersecting vol into buf and returns their number.
func (w *World) Overlap(vol Volume, mask Mask, q Triggers, buf []*Collider) int {
	n := 0
	for _, c := range w.colliders {
		if n == len(buf) {
			break
		}
		if !w.accepts(c, mask, q) {
			continue
		}
		if d, _, _ := vol.Distance(c.Volume()); d < 0 {
			buf[n] = c
			n++
		}
	}
	return n
}

// ComputePenetration returns the direction and distance a must be moved
// to separate from b, or ok = false if they do not overlap.
func ComputePenetration(a, b Volume) (dir math32.Vector3, depth float32, ok bool) {
	return a.Penetration(b)
}

// sweep moves m along the unit direction dir by conservative advancement:
// it can always travel the current separation without crossing o.
func sweep(m Volume, dir math32.Vector3, maxDist float32, o Volume) (Hit, bool) {
	t := float32(0)
	for i := range sweepIterations {
		d, pm, po := m.Translate(dir.MulScalar(t)).Distance(o)
		if i == 0 && d <= 0 {
			return Hit{Point: po, Normal: dir.MulScalar(-1)}, true
		}
		if d <= sweepTolerance || i == sweepIterations-1 {
			normal := Normalize(pm.Sub(po))
			if IsZero(normal) {
				normal = dir.MulScalar(-1)
			}
			if d > sweepTolerance && normal.Dot(dir) > -sweepTolerance {
				// ran out of iterations while grazing
				return Hit{}, false
			}
			return Hit{Point: po.Add(normal.MulScalar(o.Radius)), Normal: normal, Distance: t}, true
		}
		t += d
		if t > maxDist {
			return Hit{}, false
		}
	}
	return Hit{}, false
}
