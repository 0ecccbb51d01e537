// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"cogentcore.org/core/math32"
)

// Up is the world up direction.
var Up = math32.Vec3(0, 1, 0)

// normalEpsilon is the length under which a vector has no direction.
const normalEpsilon = 1e-6

// IsZero returns whether all components of v are exactly zero.
func IsZero(v math32.Vector3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Normalize returns v scaled to unit length, or the zero vector
// when v is too short to have a direction.
func Normalize(v math32.Vector3) math32.Vector3 {
	l := v.Length()
	if l < normalEpsilon {
		return math32.Vector3{}
	}
	return v.MulScalar(1 / l)
}

// ParallelSurface subtracts any part of v parallel to the given unit normal,
// leaving only the component along the surface.
func ParallelSurface(v, normal math32.Vector3) math32.Vector3 {
	return v.Sub(normal.MulScalar(v.Dot(normal)))
}

// ProjectOnPlane projects v on the plane defined by normal,
// which does not need to be normalized.
func ProjectOnPlane(v, normal math32.Vector3) math32.Vector3 {
	sq := normal.Dot(normal)
	if sq < normalEpsilon*normalEpsilon {
		return v
	}
	return v.Sub(normal.MulScalar(v.Dot(normal) / sq))
}

// FromToRotation returns the rotation taking unit vector from onto unit vector to.
func FromToRotation(from, to math32.Vector3) math32.Quat {
	var q math32.Quat
	q.SetFromUnitVectors(from, to)
	return q
}

// MulComponents returns the component-wise product of a and b.
func MulComponents(a, b math32.Vector3) math32.Vector3 {
	return math32.Vec3(a.X*b.X, a.Y*b.Y, a.Z*b.Z)
}

// Flat returns v with its vertical component removed.
func Flat(v math32.Vector3) math32.Vector3 {
	return math32.Vec3(v.X, 0, v.Z)
}

// MoveTowards moves current towards target by at most maxDelta.
func MoveTowards(current, target, maxDelta float32) float32 {
	if math32.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// Sign returns -1 if v is negative, 1 otherwise.
func Sign(v float32) int {
	if v < 0 {
		return -1
	}
	return 1
}

// HaveDifferentSign returns whether a and b have a different [Sign].
// Zero counts as positive.
func HaveDifferentSign(a, b float32) bool {
	return Sign(a) != Sign(b)
}

// HaveDifferentSignAndNotNull returns whether a and b are both non-zero
// and of opposite signs.
func HaveDifferentSignAndNotNull(a, b float32) bool {
	if a == 0 || b == 0 {
		return false
	}
	return HaveDifferentSign(a, b)
}

// ApproxEqual returns whether a and b are within eps on every component.
func ApproxEqual(a, b math32.Vector3, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps && math32.Abs(a.Y-b.Y) <= eps && math32.Abs(a.Z-b.Z) <= eps
}
