// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve provides keyframed curves evaluated with cubic
// Hermite interpolation, used to shape speed ramps.
package curve

import (
	"slices"

	"cogentcore.org/core/math32"
)

// Key is one keyframe of a [Curve].
type Key struct {

	// Time of the key.
	Time float32 `toml:"time" yaml:"time"`

	// Value of the curve at Time.
	Value float32 `toml:"value" yaml:"value"`

	// InTangent is the slope arriving at the key.
	InTangent float32 `toml:"in" yaml:"in"`

	// OutTangent is the slope leaving the key.
	OutTangent float32 `toml:"out" yaml:"out"`
}

// Curve is a sequence of keys sorted by time.
// Before the first key and after the last one, the curve is constant.
type Curve struct {
	Keys []Key `toml:"keys" yaml:"keys"`
}

// New returns a curve from the given keys, sorted by time.
func New(keys ...Key) Curve {
	keys = slices.Clone(keys)
	slices.SortStableFunc(keys, func(a, b Key) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return Curve{Keys: keys}
}

// EaseInOut returns a curve smoothly going from v0 at t0 to v1 at t1,
// with flat tangents at both ends.
func EaseInOut(t0, v0, t1, v1 float32) Curve {
	return New(Key{Time: t0, Value: v0}, Key{Time: t1, Value: v1})
}

// Linear returns a straight curve from v0 at t0 to v1 at t1.
func Linear(t0, v0, t1, v1 float32) Curve {
	if t0 == t1 {
		return Constant(t0, v1)
	}
	slope := (v1 - v0) / (t1 - t0)
	return New(Key{Time: t0, Value: v0, InTangent: slope, OutTangent: slope},
		Key{Time: t1, Value: v1, InTangent: slope, OutTangent: slope})
}

// Constant returns a curve with a single key.
func Constant(t, v float32) Curve {
	return Curve{Keys: []Key{{Time: t, Value: v}}}
}

// IsEmpty returns whether the curve has no keys.
func (c *Curve) IsEmpty() bool {
	return len(c.Keys) == 0
}

// Duration returns the time of the last key.
func (c *Curve) Duration() float32 {
	if c.IsEmpty() {
		return 0
	}
	return c.Keys[len(c.Keys)-1].Time
}

// First returns the value of the first key.
func (c *Curve) First() float32 {
	if c.IsEmpty() {
		return 0
	}
	return c.Keys[0].Value
}

// Last returns the value of the last key.
func (c *Curve) Last() float32 {
	if c.IsEmpty() {
		return 0
	}
	return c.Keys[len(c.Keys)-1].Value
}

// Evaluate returns the value of the curve at time t.
func (c *Curve) Evaluate(t float32) float32 {
	n := len(c.Keys)
	switch {
	case n == 0:
		return 0
	case t <= c.Keys[0].Time:
		return c.Keys[0].Value
	case t >= c.Keys[n-1].Time:
		return c.Keys[n-1].Value
	}
	i, _ := slices.BinarySearchFunc(c.Keys, t, func(k Key, t float32) int {
		switch {
		case k.Time < t:
			return -1
		case k.Time > t:
			return 1
		}
		return 0
	})
	if c.Keys[i].Time == t {
		return c.Keys[i].Value
	}
	return hermite(c.Keys[i-1], c.Keys[i], t)
}

// hermite interpolates between k0 and k1 at time t in [k0.Time, k1.Time].
func hermite(k0, k1 Key, t float32) float32 {
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}
	u := (t - k0.Time) / dt
	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2
	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}

// Lerp returns the value between from and to at the curve value for t,
// the curve being read as an easing factor.
func (c *Curve) Lerp(from, to, t float32) float32 {
	return from + (to-from)*c.Evaluate(math32.Clamp(t, 0, 1))
}
