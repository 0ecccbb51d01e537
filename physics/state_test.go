// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestStateRotation(t *testing.T) {
	st := NewState(math32.Vec3(1, 0, 0))
	assert.Equal(t, math32.Vec3(0, 0, 2), st.ToWorld(math32.Vec3(-1, 0, 2)))

	st.SetEulerRotation(0, 90, 0)
	assert.True(t, ApproxEqual(math32.Vec3(0, 0, -1), st.Rotate(math32.Vec3(1, 0, 0)), 1e-5))
	assert.True(t, ApproxEqual(math32.Vec3(1, 0, -2), st.ToWorld(math32.Vec3(2, 0, 0)), 1e-5))

	st.Move(math32.Vec3(0, 1, 0))
	assert.Equal(t, math32.Vec3(1, 1, 0), st.Pos)
}

func TestStateDefaults(t *testing.T) {
	var st State
	assert.Equal(t, math32.Vec3(1, 2, 3), st.Rotate(math32.Vec3(1, 2, 3)))
	st.Defaults()
	assert.Equal(t, float32(1), st.Quat.W)
}
