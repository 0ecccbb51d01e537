// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseInOut(t *testing.T) {
	c := EaseInOut(0, 0, 1, 1)
	assert.Equal(t, float32(0), c.Evaluate(-1))
	assert.Equal(t, float32(0), c.Evaluate(0))
	assert.InDelta(t, .5, c.Evaluate(.5), 1e-6)
	assert.InDelta(t, .15625, c.Evaluate(.25), 1e-6)
	assert.Equal(t, float32(1), c.Evaluate(1))
	assert.Equal(t, float32(1), c.Evaluate(3))
}

func TestLinear(t *testing.T) {
	c := Linear(0, 2, 4, 10)
	tests := []struct {
		t, want float32
	}{
		{0, 2}, {1, 4}, {2, 6}, {3, 8}, {4, 10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, c.Evaluate(tt.t), 1e-5, "t=%g", tt.t)
	}
	assert.Equal(t, float32(4), c.Duration())
	assert.Equal(t, float32(2), c.First())
	assert.Equal(t, float32(10), c.Last())
}

func TestConstantAndEmpty(t *testing.T) {
	c := Constant(1, 3)
	assert.Equal(t, float32(3), c.Evaluate(0))
	assert.Equal(t, float32(3), c.Evaluate(10))

	var e Curve
	assert.True(t, e.IsEmpty())
	assert.Equal(t, float32(0), e.Evaluate(1))
	assert.Equal(t, float32(0), e.Duration())
}

func TestNewSortsKeys(t *testing.T) {
	c := New(Key{Time: 2, Value: 1}, Key{Time: 0, Value: 0}, Key{Time: 1, Value: .5})
	assert.Equal(t, float32(0), c.Keys[0].Time)
	assert.Equal(t, float32(2), c.Keys[2].Time)
	assert.Equal(t, float32(.5), c.Evaluate(1))
}

func TestLerp(t *testing.T) {
	c := Linear(0, 0, 1, 1)
	assert.InDelta(t, 5, c.Lerp(0, 10, .5), 1e-5)
	assert.InDelta(t, 10, c.Lerp(0, 10, 2), 1e-5)
}
