// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package movable

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/physics"
)

// MaxRecursion is the maximum number of additional sweeps performed
// to consume the remaining velocity after an obstacle.
const MaxRecursion = 3

// hitsCapacity is the initial capacity of the hits recorded per step.
const hitsCapacity = 3

// Kind is the kind of collision resolution [Strategy] of a body.
type Kind int32

const (
	// Simple performs a single sweep and stops at the first obstacle.
	Simple Kind = iota

	// Complex slides along obstacles with recursive sweeps.
	Complex

	// Creature slides along obstacles, follows slopes, climbs steps
	// and snaps to the ground.
	Creature

	kindN
)

var kindNames = [...]string{"simple", "complex", "creature"}

func (k Kind) String() string {
	if k < 0 || k >= kindN {
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
	return kindNames[k]
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || k >= kindN {
		return nil, &InvalidStrategyKindError{Kind: k}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for i, nm := range kindNames {
		if nm == s {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("movable: unknown strategy kind %q", text)
}

// InvalidStrategyKindError is returned for a [Kind] outside of the defined kinds.
type InvalidStrategyKindError struct {
	Kind Kind
}

func (e *InvalidStrategyKindError) Error() string {
	return fmt.Sprintf("movable: invalid strategy kind %d", int32(e.Kind))
}

// Strategy determines how a body reacts to collisions and moves in space.
// A strategy is bound to one body and is not safe for concurrent use.
type Strategy interface {

	// ComputeVelocity performs additional velocity computations before collisions.
	ComputeVelocity()

	// PerformCollisions moves the body by velocity, resolving its collisions,
	// then updates its ground state and reduces its force against the hit surfaces.
	// It returns the hits encountered, valid until the next call.
	PerformCollisions(velocity math32.Vector3) []physics.Hit
}

// NewStrategy returns a new [Strategy] of the given kind for b.
func NewStrategy(kind Kind, b *Body) (Strategy, error) {
	r := resolver{body: b, hits: make([]physics.Hit, 0, hitsCapacity)}
	switch kind {
	case Simple:
		return &simple{r}, nil
	case Complex:
		return &complexSlide{r}, nil
	case Creature:
		return &creature{r}, nil
	}
	return nil, &InvalidStrategyKindError{Kind: kind}
}

// resolver has the state and steps shared by all strategies.
type resolver struct {
	body *Body
	hits []physics.Hit
}

func (r *resolver) ComputeVelocity() {}

func (r *resolver) register(hit physics.Hit) {
	r.hits = append(r.hits, hit)
}

// registerCasts records the first n hits of the last cast.
func (r *resolver) registerCasts(n int) {
	for i := range n {
		r.hits = append(r.hits, r.body.Sweep.CastHit(i))
	}
}

// advance moves the body along velocity up to the primary hit of a cast,
// keeping the contact offset, and returns the velocity left to travel.
func (r *resolver) advance(velocity math32.Vector3, distance float32) math32.Vector3 {
	if distance -= r.body.contactOffset(); distance > 0 {
		dir := physics.Normalize(velocity)
		r.body.move(dir.MulScalar(distance))
		velocity = dir.MulScalar(velocity.Length() - distance)
	}
	return velocity
}

// setGroundState completes the ground state of the body when the
// strategy could not determine it was grounded.
func (r *resolver) setGroundState(grounded bool) {
	b := r.body
	ph := b.Settings
	if b.UseGravity && !grounded {
		for _, hit := range r.hits {
			if ph.IsGroundSurface(hit.Normal) {
				b.GroundNormal = hit.Normal
				grounded = true
				break
			}
		}

		// Moves smaller than the contact offset may not reach the ground:
		// look for it from the bottom of the shape, then with the whole shape,
		// as a shape cast against a slope can return another obstacle.
		if !grounded {
			offset := b.contactOffset()
			hit, ok := b.Sweep.Raycast(b.GroundNormal.MulScalar(-1), offset*3)
			if !ok {
				hit, ok = b.Sweep.DoCast(math32.Vec3(0, -offset*2, 0))
			}
			if ok && ph.IsGroundSurface(hit.Normal) {
				b.GroundNormal = hit.Normal
				b.Force.Y = 0
				grounded = true
			} else if b.grounded {
				b.GroundNormal = physics.Up
			}
		}
	}
	b.setGrounded(grounded)
}

// finish reduces the force of the body against the hit surfaces
// and consumes its instant force and movement.
func (r *resolver) finish() []physics.Hit {
	b := r.body
	if b.grounded {
		b.Force.Y = 0
	}
	if !physics.IsZero(b.Force) {
		for _, hit := range r.hits {
			b.Force = physics.ParallelSurface(b.Force, hit.Normal)
		}
	}
	b.InstantForce = math32.Vector3{}
	b.Movement = math32.Vector3{}
	return r.hits
}
