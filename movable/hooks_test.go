// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zone struct {
	enters, exits []string
}

func (z *zone) OnEnter(b *Body) { z.enters = append(z.enters, b.Name) }
func (z *zone) OnExit(b *Body)  { z.exits = append(z.exits, b.Name) }

func TestTriggers(t *testing.T) {
	z := &zone{}
	tc := physics.NewCollider("zone", &physics.Sphere{Radius: 1}, math32.Vec3(5, 0, 0))
	tc.Trigger = true
	tc.Owner = z
	w := newWorld(t, tc)
	b := newBody(t, w, sphere(), math32.Vector3{}, WithoutGravity(), WithName("player"))

	b.Step(dt)
	assert.Empty(t, z.enters)

	b.SetPosition(math32.Vec3(5, 0, 0))
	b.Step(dt)
	b.Step(dt)
	assert.Equal(t, []string{"player"}, z.enters)
	assert.Equal(t, 1, b.Triggers())
	assert.Equal(t, math32.Vec3(5, 0, 0), b.Position(), "triggers never push")

	b.SetPosition(math32.Vector3{})
	b.Step(dt)
	assert.Equal(t, []string{"player"}, z.exits)
	assert.Equal(t, 0, b.Triggers())

	b.SetPosition(math32.Vec3(5, 0, 0))
	b.Step(dt)
	b.ExitTriggers()
	assert.Len(t, z.enters, 2)
	assert.Len(t, z.exits, 2)
	assert.Equal(t, 0, b.Triggers())
}

func TestTriggerWithoutHandler(t *testing.T) {
	tc := physics.NewCollider("zone", &physics.Sphere{Radius: 1}, math32.Vector3{})
	tc.Trigger = true
	w := newWorld(t, tc)
	b := newBody(t, w, sphere(), math32.Vector3{}, WithoutGravity())
	b.RefreshOverlaps()
	assert.Equal(t, 0, b.Triggers())
}

func TestDepenetration(t *testing.T) {
	w := newWorld(t, floor())
	b := newBody(t, w, sphere(), math32.Vec3(0, .3, 0), WithoutGravity())
	b.RefreshOverlaps()
	assert.InDelta(t, .5, b.Position().Y, 1e-4)
	assert.InDelta(t, 0, b.Position().X, 1e-4)
}

func TestBoxTriggers(t *testing.T) {
	z := &zone{}
	tc := physics.NewCollider("zone", &physics.Box{Size: math32.Vec3(2, 2, 2)}, math32.Vec3(5, 0, 0))
	tc.Trigger = true
	tc.Owner = z
	w := newWorld(t, tc)
	b := newBody(t, w, &physics.Box{Size: math32.Vec3(1, 1, 1)}, math32.Vector3{}, WithoutGravity(), WithName("crate"))

	b.SetPosition(math32.Vec3(5, 0, 0))
	b.Step(dt)
	assert.Equal(t, []string{"crate"}, z.enters)
	assert.Equal(t, 1, b.Triggers())
	b.Step(dt)
	assert.Len(t, z.enters, 1)

	b.SetPosition(math32.Vector3{})
	b.Step(dt)
	assert.Equal(t, []string{"crate"}, z.exits)
	assert.Equal(t, 0, b.Triggers())
}

func TestBoxDepenetration(t *testing.T) {
	w := newWorld(t, floor())
	b := newBody(t, w, &physics.Box{Size: math32.Vec3(1, 1, 1)}, math32.Vec3(0, .3, 0), WithoutGravity())
	b.RefreshOverlaps()
	assert.InDelta(t, .5, b.Position().Y, 1e-4)
	assert.InDelta(t, 0, b.Position().X, 1e-4)
}

type recorder struct {
	BaseController
	gravity   *math32.Vector3
	velocity  *Velocity
	speed     *float32
	grounded  []bool
	obstacles [][2]int
}

func newRecorder() *recorder {
	return &recorder{BaseController: BaseController{Profile: Profile{Kind: Complex, Mask: physics.AllLayers}}}
}

func (r *recorder) OnApplyGravity(b *Body) Outcome[math32.Vector3] {
	if r.gravity != nil {
		return Override(*r.gravity)
	}
	return Default[math32.Vector3]()
}

func (r *recorder) OnComputeVelocity(b *Body, v Velocity) Outcome[Velocity] {
	if r.velocity != nil {
		return Override(*r.velocity)
	}
	return Default[Velocity]()
}

func (r *recorder) OnAppliedVelocity(b *Body, velocity, displacement math32.Vector3) Outcome[float32] {
	if r.speed != nil {
		return Override(*r.speed)
	}
	return Default[float32]()
}

func (r *recorder) OnSetGrounded(b *Body, grounded bool) Outcome[math32.Vector3] {
	r.grounded = append(r.grounded, grounded)
	return Override(math32.Vector3{})
}

func (r *recorder) OnPlayObstacle(b *Body, axis Obstacle, value int) Outcome[int] {
	r.obstacles = append(r.obstacles, [2]int{int(axis), value})
	return Default[int]()
}

func TestOutcome(t *testing.T) {
	v, ok := Default[int]().Get()
	assert.False(t, ok)
	assert.Equal(t, 0, v)

	o := Override(0)
	assert.True(t, o.Overridden())
	v, ok = o.Get()
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestControllerGravity(t *testing.T) {
	rc := newRecorder()
	rc.gravity = &math32.Vector3{Y: -1}
	w := newWorld(t)
	b := newBody(t, w, sphere(), math32.Vector3{}, WithController(rc))
	b.Step(dt)
	assert.Equal(t, math32.Vec3(0, -1, 0), b.Force)
	assert.InDelta(t, -dt, b.Position().Y, 1e-5)
}

func TestControllerComputeVelocity(t *testing.T) {
	rc := newRecorder()
	rc.velocity = &Velocity{Force: math32.Vec3(2, 0, 0)}
	w := newWorld(t)
	b := newBody(t, w, sphere(), math32.Vector3{}, WithController(rc), WithoutGravity())
	b.Force = math32.Vec3(2, 0, 0)
	b.Step(.5)
	assert.Equal(t, math32.Vec3(2, 0, 0), b.Force, "no decay")
	assert.InDelta(t, 1, b.Position().X, 1e-5)
}

func TestControllerAppliedVelocity(t *testing.T) {
	rc := newRecorder()
	speed := float32(3)
	rc.speed = &speed
	w := newWorld(t)
	b := newBody(t, w, sphere(), math32.Vector3{}, WithController(rc), WithoutGravity())
	b.AddInstantForce(math32.Vec3(1, 0, 0))
	b.Step(dt)
	assert.Equal(t, float32(3), b.Speed())
}

func TestControllerSetGrounded(t *testing.T) {
	rc := newRecorder()
	w := newWorld(t, floor())
	b := newBody(t, w, sphere(), math32.Vec3(0, 1, 0), WithController(rc))
	b.Force = math32.Vec3(2, 0, 0)
	b.AddInstantForce(math32.Vec3(0, -5, 0))
	b.Step(dt)
	require.True(t, b.IsGrounded())
	assert.Equal(t, math32.Vector3{}, b.Force, "force replaced on landing")
	for range 10 {
		b.Step(dt)
	}
	assert.Equal(t, []bool{true}, rc.grounded)
}

func TestLandingReducesForce(t *testing.T) {
	w := newWorld(t, floor())
	b := newBody(t, w, sphere(), math32.Vec3(0, 1, 0))
	b.AddInstantForce(math32.Vec3(0, -5, 0))
	b.Force.X = 1
	b.Step(dt)
	require.True(t, b.IsGrounded())
	// air decay, then the landing multiplier
	want := (1 - b.Settings.AirDecelerationForce*dt) * b.Settings.OnGroundedForceMultiplier
	assert.InDelta(t, want, b.Force.X, 1e-4)
}

type motion struct {
	pos math32.Vector3
}

func (m *motion) LocalPosition() math32.Vector3 { return m.pos }

func TestRootMotionRequiresSource(t *testing.T) {
	w := newWorld(t)
	b := newBody(t, w, sphere(), math32.Vector3{})
	b.StartRootMotion()
	assert.False(t, b.UsingRootMotion())
	b.ApplyRootMotionForce(dt)
	assert.Equal(t, math32.Vector3{}, b.Force)
}

func TestRootMotion(t *testing.T) {
	src := &motion{}
	w := newWorld(t)
	b := newBody(t, w, sphere(), math32.Vector3{}, WithMotionSource(src), WithoutGravity())
	b.Flip()
	b.StartRootMotion()
	require.True(t, b.UsingRootMotion())

	src.pos = math32.Vec3(1, 0, 0)
	b.Step(dt)
	assert.InDelta(t, -1, b.Position().X, 1e-5, "oriented by the facing side")

	src.pos = math32.Vec3(1.5, 0, 0)
	b.Step(dt)
	assert.InDelta(t, -1.5, b.Position().X, 1e-5)

	b.ApplyRootMotionForce(.5)
	assert.InDelta(t, -1, b.Force.X, 1e-5)

	// the next sample is replaced by the force
	src.pos = math32.Vec3(3, 0, 0)
	b.Step(.1)
	assert.InDelta(t, -1.55, b.Position().X, 1e-4)

	b.StopRootMotion()
	assert.False(t, b.UsingRootMotion())
	assert.InDelta(t, -1.5, b.InstantForce.X, 1e-5, "motion left since the last sample")
}

func TestRootMotionSkipsGravity(t *testing.T) {
	src := &motion{}
	w := newWorld(t)
	b := newBody(t, w, sphere(), math32.Vector3{}, WithMotionSource(src))
	b.StartRootMotion()
	src.pos = math32.Vec3(0, 1, 0)
	b.Step(dt)
	assert.Equal(t, float32(0), b.Force.Y)
	assert.InDelta(t, 1, b.Position().Y, 1e-5)
}

func TestRootMotionObstacles(t *testing.T) {
	rc := newRecorder()
	src := &motion{}
	w := newWorld(t, wall(1))
	b := newBody(t, w, sphere(), math32.Vector3{}, WithMotionSource(src), WithController(rc), WithoutGravity())
	b.StartRootMotion()
	assert.Empty(t, rc.obstacles, "unchanged values are not played")

	src.pos = math32.Vec3(2, 0, 0)
	b.Step(dt)
	assert.InDelta(t, .5-w.ContactOffset, b.Position().X, 1e-3)
	assert.Equal(t, -1, b.Obstacle(ObstacleHorizontal))
	assert.Equal(t, 0, b.Obstacle(ObstacleVertical))
	assert.Equal(t, [][2]int{{int(ObstacleHorizontal), -1}}, rc.obstacles)
	assert.Equal(t, "Horizontal", ObstacleHorizontal.String())
}

func TestParent(t *testing.T) {
	platform := physics.NewCollider("platform", &physics.Box{Size: math32.Vec3(1, 1, 1)}, math32.Vector3{})
	w := newWorld(t)
	b := newBody(t, w, sphere(), math32.Vec3(2, 0, 0), WithoutGravity())
	b.Parent(platform)
	require.True(t, b.IsParented())

	platform.State.Pos = math32.Vec3(1, 0, 0)
	b.Step(dt)
	assert.True(t, physics.ApproxEqual(math32.Vec3(3, 0, 0), b.Position(), 1e-5))

	turn := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.Pi/2)
	platform.State.Quat = turn
	b.Step(dt)
	assert.True(t, physics.ApproxEqual(math32.Vec3(1, 0, -2), b.Position(), 1e-4), "%v", b.Position())
	rot := b.Rotation()
	assert.InDelta(t, turn.X, rot.X, 1e-5)
	assert.InDelta(t, turn.Y, rot.Y, 1e-5)
	assert.InDelta(t, turn.Z, rot.Z, 1e-5)
	assert.InDelta(t, turn.W, rot.W, 1e-5)

	b.Unparent()
	assert.False(t, b.IsParented())
	platform.State.Pos = math32.Vec3(5, 0, 0)
	b.Step(dt)
	assert.True(t, physics.ApproxEqual(math32.Vec3(1, 0, -2), b.Position(), 1e-4))
}
