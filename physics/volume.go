// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"cogentcore.org/core/math32"
)

// Core is the kind of convex core of a [Volume].
type Core int32

const (
	// PointCore is a single point: A.
	PointCore Core = iota

	// SegmentCore is the line segment from A to B.
	SegmentCore

	// BoxCore is the axis-aligned box from A (min) to B (max).
	BoxCore
)

// Volume is a convex world-space query volume: a point, segment or
// axis-aligned box core inflated by Radius. Spheres, capsules and boxes
// all map onto it.
type Volume struct {
	Core   Core
	A, B   math32.Vector3
	Radius float32
}

// PointVolume returns a sphere volume.
func PointVolume(center math32.Vector3, radius float32) Volume {
	return Volume{Core: PointCore, A: center, B: center, Radius: radius}
}

// SegmentVolume returns a capsule volume between hemisphere centers a and b.
func SegmentVolume(a, b math32.Vector3, radius float32) Volume {
	return Volume{Core: SegmentCore, A: a, B: b, Radius: radius}
}

// BoxVolume returns an axis-aligned box volume.
func BoxVolume(center, half math32.Vector3) Volume {
	return Volume{Core: BoxCore, A: center.Sub(half), B: center.Add(half)}
}

// Translate returns the volume moved by d.
func (v Volume) Translate(d math32.Vector3) Volume {
	v.A = v.A.Add(d)
	v.B = v.B.Add(d)
	return v
}

// Center returns the center of the volume.
func (v Volume) Center() math32.Vector3 {
	return v.A.Add(v.B).MulScalar(.5)
}

// Bounds returns the axis-aligned bounding box of the volume.
func (v Volume) Bounds() math32.Box3 {
	r := math32.Vec3(v.Radius, v.Radius, v.Radius)
	bb := math32.B3Empty()
	bb.ExpandByPoint(v.A)
	bb.ExpandByPoint(v.B)
	bb.Min = bb.Min.Sub(r)
	bb.Max = bb.Max.Add(r)
	return bb
}

// Distance returns the signed distance between the surfaces of v and o,
// negative when they overlap, together with the closest points of both
// cores. The core distance is the distance between those two points.
func (v Volume) Distance(o Volume) (dist float32, pv, po math32.Vector3) {
	pv, po = closestCores(v, o)
	if over, ok := boxOverlap(v, o); ok {
		return -over, pv, po
	}
	dist = pv.Sub(po).Length() - v.Radius - o.Radius
	return
}

// Contains reports whether p lies strictly inside v.
func (v Volume) Contains(p math32.Vector3) bool {
	d, _, _ := PointVolume(p, 0).Distance(v)
	if d != 0 || v.Core != BoxCore {
		return d < 0
	}
	return p.X > v.A.X && p.X < v.B.X &&
		p.Y > v.A.Y && p.Y < v.B.Y &&
		p.Z > v.A.Z && p.Z < v.B.Z
}

// Penetration returns the direction and depth v must be moved along
// to stop overlapping o. ok is false when they do not overlap.
func (v Volume) Penetration(o Volume) (dir math32.Vector3, depth float32, ok bool) {
	pv, po := closestCores(v, o)
	d := pv.Sub(po)
	cd := d.Length()
	depth = v.Radius + o.Radius - cd
	if cd > normalEpsilon {
		if depth <= 0 {
			return math32.Vector3{}, 0, false
		}
		return d.MulScalar(1 / cd), depth, true
	}
	// cores intersect: push out along the axis of least overlap
	// of the bounding boxes.
	vb, ob := v.Bounds(), o.Bounds()
	vc, oc := v.Center(), o.Center()
	best := float32(math32.Infinity)
	axes := [3]math32.Vector3{math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0), math32.Vec3(0, 0, 1)}
	for i, ax := range axes {
		over := math32.Min(vb.Max.Dot(ax), ob.Max.Dot(ax)) - math32.Max(vb.Min.Dot(ax), ob.Min.Dot(ax))
		if over < best {
			best = over
			s := float32(1)
			if vc.Dot(ax) < oc.Dot(ax) {
				s = -1
			}
			dir = axes[i].MulScalar(s)
		}
	}
	return dir, best, best > 0
}

// closestCores returns the closest points between the cores of a and b.
func closestCores(a, b Volume) (pa, pb math32.Vector3) {
	switch a.Core {
	case PointCore:
		switch b.Core {
		case PointCore:
			return a.A, b.A
		case SegmentCore:
			return a.A, closestOnSegment(a.A, b.A, b.B)
		default:
			return a.A, closestOnBox(a.A, b.A, b.B)
		}
	case SegmentCore:
		switch b.Core {
		case PointCore:
			return closestOnSegment(b.A, a.A, a.B), b.A
		case SegmentCore:
			return closestSegmentSegment(a.A, a.B, b.A, b.B)
		default:
			return closestSegmentBox(a.A, a.B, b.A, b.B)
		}
	default:
		switch b.Core {
		case PointCore:
			return closestOnBox(b.A, a.A, a.B), b.A
		case SegmentCore:
			pb, pa = closestSegmentBox(b.A, b.B, a.A, a.B)
			return pa, pb
		default:
			return closestBoxBox(a.A, a.B, b.A, b.B)
		}
	}
}

func closestOnSegment(p, a, b math32.Vector3) math32.Vector3 {
	ab := b.Sub(a)
	l := ab.Dot(ab)
	if l < normalEpsilon*normalEpsilon {
		return a
	}
	t := math32.Clamp(p.Sub(a).Dot(ab)/l, 0, 1)
	return a.Add(ab.MulScalar(t))
}

func closestOnBox(p, mn, mx math32.Vector3) math32.Vector3 {
	return math32.Vec3(
		math32.Clamp(p.X, mn.X, mx.X),
		math32.Clamp(p.Y, mn.Y, mx.Y),
		math32.Clamp(p.Z, mn.Z, mx.Z))
}

// closestSegmentSegment returns the closest points between segments
// p1-q1 and p2-q2.
func closestSegmentSegment(p1, q1, p2, q2 math32.Vector3) (c1, c2 math32.Vector3) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)
	const eps = normalEpsilon * normalEpsilon
	var s, t float32
	switch {
	case a <= eps && e <= eps:
		return p1, p2
	case a <= eps:
		t = math32.Clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= eps {
			s = math32.Clamp(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = math32.Clamp((b*f-c*e)/denom, 0, 1)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = math32.Clamp(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = math32.Clamp((b-c)/a, 0, 1)
			}
		}
	}
	return p1.Add(d1.MulScalar(s)), p2.Add(d2.MulScalar(t))
}

// segmentSearchSteps is the number of golden-section iterations used
// to find the point of a segment closest to a box.
const segmentSearchSteps = 48

// closestSegmentBox returns the closest points between segment a-b and
// the box mn-mx. The point-to-box distance is convex along the segment,
// so a golden-section search converges on the minimum.
func closestSegmentBox(a, b, mn, mx math32.Vector3) (ps, pb math32.Vector3) {
	ab := b.Sub(a)
	dist := func(t float32) float32 {
		p := a.Add(ab.MulScalar(t))
		return p.Sub(closestOnBox(p, mn, mx)).LengthSquared()
	}
	const phi = 0.618034
	lo, hi := float32(0), float32(1)
	x1 := hi - phi*(hi-lo)
	x2 := lo + phi*(hi-lo)
	f1, f2 := dist(x1), dist(x2)
	for range segmentSearchSteps {
		if f1 <= f2 {
			hi = x2
			x2, f2 = x1, f1
			x1 = hi - phi*(hi-lo)
			f1 = dist(x1)
		} else {
			lo = x1
			x1, f1 = x2, f2
			x2 = lo + phi*(hi-lo)
			f2 = dist(x2)
		}
	}
	t := (lo + hi) * .5
	// endpoints can beat the interior when the minimum is flat
	if dist(0) <= dist(t) {
		t = 0
	}
	if dist(1) < dist(t) {
		t = 1
	}
	ps = a.Add(ab.MulScalar(t))
	return ps, closestOnBox(ps, mn, mx)
}

// boxOverlap returns the smallest per-axis overlap of two box volumes
// without radius, with ok false unless they overlap on every axis.
func boxOverlap(a, b Volume) (over float32, ok bool) {
	if a.Core != BoxCore || b.Core != BoxCore || a.Radius != 0 || b.Radius != 0 {
		return 0, false
	}
	axis := func(amn, amx, bmn, bmx float32) float32 {
		return math32.Min(amx, bmx) - math32.Max(amn, bmn)
	}
	over = math32.Min(axis(a.A.X, a.B.X, b.A.X, b.B.X),
		math32.Min(axis(a.A.Y, a.B.Y, b.A.Y, b.B.Y), axis(a.A.Z, a.B.Z, b.A.Z, b.B.Z)))
	if over <= 0 {
		return 0, false
	}
	return over, true
}

// closestBoxBox returns closest points between two axis-aligned boxes,
// taking the middle of the overlap on axes where they overlap.
func closestBoxBox(amn, amx, bmn, bmx math32.Vector3) (pa, pb math32.Vector3) {
	axis := func(amn, amx, bmn, bmx float32) (float32, float32) {
		switch {
		case amx < bmn:
			return amx, bmn
		case bmx < amn:
			return amn, bmx
		}
		m := (math32.Max(amn, bmn) + math32.Min(amx, bmx)) * .5
		return m, m
	}
	pa.X, pb.X = axis(amn.X, amx.X, bmn.X, bmx.X)
	pa.Y, pb.Y = axis(amn.Y, amx.Y, bmn.Y, bmx.Y)
	pa.Z, pb.Z = axis(amn.Z, amx.Z, bmn.Z, bmx.Z)
	return
}
