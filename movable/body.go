// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package movable implements kinematic bodies: objects moved by a
// decomposition of velocities, resolving their collisions against a
// [physics.World] with a sweep-and-slide [Strategy].
package movable

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
	"github.com/horrorps1/dread/physics/sweep"
	"github.com/horrorps1/dread/settings"
)

// Body is a kinematic body. Its velocity is composed of a persistent
// [Body.Force] decaying over time, an [Body.InstantForce] applied for one
// step and a self-driven [Body.Movement] scaled by its speed.
// Bodies move their collider in the world they query, so all the bodies
// of a world must be stepped from a single goroutine.
type Body struct {

	// Name is used for logging.
	Name string

	// World the body moves in.
	World *physics.World

	// Collider is the rigid pose and shape of the body.
	Collider *physics.Collider

	// Sweep performs the body collision queries.
	Sweep *sweep.Collider

	// Settings are the shared physics parameters.
	Settings *settings.Physics

	// Attributes are the movement attributes of the body.
	Attributes *settings.Movable

	// Controller receives the body hooks; nil for default behavior.
	Controller Controller

	// UseGravity applies gravity on each step.
	UseGravity bool

	// Force is related to external forces lasting over time.
	Force math32.Vector3

	// InstantForce is related to external forces applied for one step.
	InstantForce math32.Vector3

	// Movement is the velocity applied by the body itself.
	Movement math32.Vector3

	// GroundNormal is the normal of the last ground surface.
	GroundNormal math32.Vector3

	// Logger receives the body records.
	Logger *slog.Logger

	kind     Kind
	strategy Strategy

	grounded  bool
	facing    int
	speed     float32
	speedTime float32

	velocityCoef float32
	coefs        []float32

	previousFlatForce    math32.Vector2
	previousFlatVelocity math32.Vector2

	// transform is the externally visible pose, updated after each step.
	transform physics.State

	// overlaps must be refreshed before the next collisions.
	dirty bool

	triggers []triggerOverlap
	current  []*physics.Collider

	root     rootMotion
	parent   parentLink
	obstacle [2]int
}

// Option configures a [Body] on creation.
type Option func(b *Body)

// WithName sets the body name.
func WithName(name string) Option {
	return func(b *Body) { b.Name = name }
}

// WithController sets the body controller, which also
// provides the collision profile of the body.
func WithController(c Controller) Option {
	return func(b *Body) { b.Controller = c }
}

// WithMotionSource sets the source of root motion.
func WithMotionSource(src MotionSource) Option {
	return func(b *Body) { b.root.source = src }
}

// WithLogger sets the body logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Body) { b.Logger = l }
}

// WithoutGravity disables gravity.
func WithoutGravity() Option {
	return func(b *Body) { b.UseGravity = false }
}

// New returns a body moving collider in world w, adding the collider to
// the world if needed. The collision profile is taken from the controller
// if any, else the body uses the [Complex] strategy against every layer
// its collider layer collides with.
func New(w *physics.World, collider *physics.Collider, ph *settings.Physics, attrs *settings.Movable, opts ...Option) (*Body, error) {
	b := &Body{
		Name:         collider.Name,
		World:        w,
		Collider:     collider,
		Settings:     ph,
		Attributes:   attrs,
		UseGravity:   true,
		GroundNormal: physics.Up,
		facing:       1,
		speed:        1,
		velocityCoef: 1,
		coefs:        make([]float32, 0, 1),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.Logger == nil {
		b.Logger = slog.Default()
	}
	b.Logger = b.Logger.With("body", b.Name)

	if !slices.Contains(w.Colliders(), collider) {
		if err := w.Add(collider); err != nil {
			return nil, err
		}
	}
	profile := Profile{Kind: Complex, Mask: w.LayerCollisionMask(collider.Layer)}
	if b.Controller != nil {
		profile = b.Controller.CollisionProfile()
	}
	sc, err := sweep.New(w, collider, profile.Mask)
	if err != nil {
		return nil, fmt.Errorf("movable: body %q: %w", b.Name, err)
	}
	b.Sweep = sc
	b.kind = profile.Kind
	b.strategy, err = NewStrategy(profile.Kind, b)
	if err != nil {
		return nil, fmt.Errorf("movable: body %q: %w", b.Name, err)
	}
	if collider.Owner == nil {
		collider.Owner = b
	}
	b.transform = collider.State
	return b, nil
}

// Kind returns the kind of collision strategy of the body.
func (b *Body) Kind() Kind {
	return b.kind
}

// IsGrounded returns whether the body stands on the ground.
func (b *Body) IsGrounded() bool {
	return b.grounded
}

// Speed returns the current movement speed.
func (b *Body) Speed() float32 {
	return b.speed
}

// MaxSpeed returns the maximum movement speed.
func (b *Body) MaxSpeed() float32 {
	return b.Attributes.SpeedMax
}

// VelocityCoef returns the product of the active velocity coefficients.
func (b *Body) VelocityCoef() float32 {
	return b.velocityCoef
}

// FacingSide returns 1 when facing the positive x axis, -1 otherwise.
func (b *Body) FacingSide() int {
	return b.facing
}

// Obstacle returns the last obstacle value on the given axis,
// reported while using root motion.
func (b *Body) Obstacle(axis Obstacle) int {
	return b.obstacle[axis]
}

func (b *Body) String() string {
	return b.Name
}

func (b *Body) contactOffset() float32 {
	return b.World.ContactOffset
}

// move translates the rigid pose of the body.
func (b *Body) move(delta math32.Vector3) {
	b.Collider.State.Move(delta)
}

func (b *Body) debug(msg string, args ...any) {
	if b.Logger.Enabled(context.Background(), slog.LevelDebug) {
		b.Logger.Debug(msg, args...)
	}
}

//////// 	Facing

// Flip turns the body to face the other side.
func (b *Body) Flip() {
	b.facing *= -1
}

// FlipTo turns the body to face the given side, if not already.
func (b *Body) FlipTo(side int) {
	if b.facing != side {
		b.Flip()
	}
}

//////// 	Transform

// Position returns the rigid position of the body.
func (b *Body) Position() math32.Vector3 {
	return b.Collider.State.Pos
}

// Rotation returns the rigid rotation of the body.
func (b *Body) Rotation() math32.Quat {
	return b.Collider.State.Quat
}

// Transform returns the externally visible pose of the body,
// updated at the end of each step.
func (b *Body) Transform() physics.State {
	return b.transform
}

// SetPosition teleports the body; overlaps are refreshed on the next step.
func (b *Body) SetPosition(pos math32.Vector3) {
	b.Collider.State.Pos = pos
	b.transform.Pos = pos
	b.dirty = true
}

// SetRotation rotates the body; overlaps are refreshed on the next step.
func (b *Body) SetRotation(rot math32.Quat) {
	b.Collider.State.Quat = rot
	b.transform.Quat = rot
	b.dirty = true
}

// SetPositionAndRotation sets both the position and rotation of the body.
func (b *Body) SetPositionAndRotation(pos math32.Vector3, rot math32.Quat) {
	b.SetPosition(pos)
	b.SetRotation(rot)
}

//////// 	Step

// Step moves the body for a time step of dt seconds.
func (b *Body) Step(dt float32) {
	if b.parent.transform != nil {
		b.followParent()
	}
	if b.dirty {
		b.RefreshOverlaps()
		b.dirty = false
	}
	if b.root.active {
		b.applyRootMotion()
	}
	if b.UseGravity {
		b.applyGravity(dt)
	}

	raw := b.RawVelocity()
	if physics.IsZero(raw) {
		b.onAppliedVelocity(raw, raw, raw, nil)
		return
	}
	b.computeVelocity(dt)
	b.strategy.ComputeVelocity()
	b.updateSpeed(dt)

	velocity := b.Velocity(dt)
	expected := b.SpeedVelocity(dt)
	last := b.Position()
	hits := b.strategy.PerformCollisions(velocity)
	b.updatePosition()
	b.onAppliedVelocity(velocity, b.Position().Sub(last), expected, hits)
}

func (b *Body) updatePosition() {
	b.RefreshOverlaps()
	b.transform.Pos = b.Collider.State.Pos
}

// setGrounded updates the ground state, calling the hooks on change.
func (b *Body) setGrounded(grounded bool) {
	if b.grounded == grounded {
		return
	}
	b.grounded = grounded
	if b.Controller != nil {
		if force, ok := b.Controller.OnSetGrounded(b, grounded).Get(); ok {
			b.Force = force
			return
		}
	}
	if grounded {
		b.Force = b.Force.MulScalar(b.Settings.OnGroundedForceMultiplier)
	}
}

// onAppliedVelocity post-processes a step that moved the body by
// displacement for the given velocity, of which expected was due to movement.
func (b *Body) onAppliedVelocity(velocity, displacement, expected math32.Vector3, hits []physics.Hit) {
	if b.Controller != nil {
		if speed, ok := b.Controller.OnAppliedVelocity(b, velocity, displacement).Get(); ok {
			b.speed = speed
			return
		}
	}

	// blocked
	if displacement.LengthSquared() < expected.LengthSquared()*.5 {
		b.ResetSpeed()
	}
	if b.root.active {
		b.feedObstacles(velocity, hits)
	}
}

// feedObstacles reports the direction of the obstacles met while using root motion.
func (b *Body) feedObstacles(velocity math32.Vector3, hits []physics.Hit) {
	ph := b.Settings
	horizontal, vertical := 0, 0
	for _, hit := range hits {
		if physics.HaveDifferentSignAndNotNull(velocity.X, hit.Normal.X) && !ph.IsGroundSurface(hit.Normal) {
			horizontal = physics.Sign(hit.Normal.X)
		}
		if hit.Normal.Y != 0 {
			vertical = physics.Sign(hit.Normal.Y)
		}
	}

	// against an obstacle without moving into it
	if horizontal == 0 && velocity.X != 0 {
		probe := math32.Vec3(sweep.MinCastLength*float32(physics.Sign(velocity.X)), 0, 0)
		if hit, ok := b.Sweep.DoCast(probe); ok && !ph.IsGroundSurface(hit.Normal) {
			horizontal = -physics.Sign(velocity.X)
		}
	}
	if vertical == 0 && velocity.Y != 0 {
		probe := math32.Vec3(0, sweep.MinCastLength*float32(physics.Sign(velocity.Y)), 0)
		if _, ok := b.Sweep.DoCast(probe); ok {
			vertical = -physics.Sign(velocity.Y)
		}
	}
	b.playObstacle(ObstacleHorizontal, horizontal)
	b.playObstacle(ObstacleVertical, vertical)
}

// playObstacle records the obstacle value of an axis, if changed.
func (b *Body) playObstacle(axis Obstacle, value int) {
	if b.obstacle[axis] == value {
		return
	}
	b.obstacle[axis] = value
	if b.Controller != nil {
		if v, ok := b.Controller.OnPlayObstacle(b, axis, value).Get(); ok {
			b.obstacle[axis] = v
		}
	}
}
