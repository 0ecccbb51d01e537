// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/movable"
	"github.com/horrorps1/dread/physics"
	"github.com/horrorps1/dread/settings"
)

// Runtime is a scene built into a world.
type Runtime struct {
	Scene    *Scene
	Settings *settings.Settings
	World    *physics.World

	// Actors are the bodies, in scene order.
	Actors []*Actor

	// Zones are the trigger colliders, in scene order.
	Zones []*Zone

	// Platforms are the moving colliders, in scene order.
	Platforms []*Platform
}

// Actor is a body with its scripted inputs.
type Actor struct {
	Body   *movable.Body
	Inputs []Input
}

// Apply adds the inputs of the given frame to the body.
func (ac *Actor) Apply(frame int) {
	for i := range ac.Inputs {
		ac.Inputs[i].Apply(ac.Body, frame)
	}
}

// Platform is a collider moving at constant velocity.
type Platform struct {
	Collider *physics.Collider
	Velocity math32.Vector3
}

// Step moves the platform for a step of dt seconds.
func (pf *Platform) Step(dt float32) {
	pf.Collider.State.Move(pf.Velocity.MulScalar(dt))
}

// Build creates the world, zones, platforms and bodies of the scene
// using the given settings, which the bodies keep referencing.
func (sc *Scene) Build(st *settings.Settings) (*Runtime, error) {
	w := physics.NewWorld()
	w.Gravity = math32.Vec3(0, st.Physics.Gravity, 0)
	w.ContactOffset = st.Physics.ContactOffset
	for _, p := range sc.IgnoreLayers {
		w.IgnoreLayerCollision(p[0], p[1], true)
	}
	rt := &Runtime{Scene: sc, Settings: st, World: w}

	for i := range sc.Colliders {
		c := &sc.Colliders[i]
		pc, err := c.collider()
		if err != nil {
			return nil, fmt.Errorf("scene: collider %q: %w", c.Name, err)
		}
		if c.Trigger {
			z := NewZone(pc)
			pc.Owner = z
			rt.Zones = append(rt.Zones, z)
		} else if v := c.Velocity.Vector(); !physics.IsZero(v) {
			rt.Platforms = append(rt.Platforms, &Platform{Collider: pc, Velocity: v})
		}
		if err := w.Add(pc); err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
	}

	for i := range sc.Bodies {
		bd := &sc.Bodies[i]
		ac, err := rt.newActor(bd)
		if err != nil {
			return nil, fmt.Errorf("scene: body %q: %w", bd.Name, err)
		}
		rt.Actors = append(rt.Actors, ac)
	}
	return rt, nil
}

func (rt *Runtime) newActor(bd *Body) (*Actor, error) {
	attrs := rt.Settings.Movable
	if !bd.Movable.IsZero() {
		if err := bd.Movable.Decode(&attrs); err != nil {
			return nil, err
		}
		attrs.Defaults()
		if err := attrs.Validate(); err != nil {
			return nil, err
		}
	}
	pc, err := bd.collider()
	if err != nil {
		return nil, err
	}
	opts := []movable.Option{movable.WithName(bd.Name)}
	if bd.Strategy != nil {
		profile := movable.Profile{Kind: *bd.Strategy, Mask: rt.World.LayerCollisionMask(bd.Layer)}
		opts = append(opts, movable.WithController(&movable.BaseController{Profile: profile}))
	}
	if bd.Gravity != nil && !*bd.Gravity {
		opts = append(opts, movable.WithoutGravity())
	}
	b, err := movable.New(rt.World, pc, &rt.Settings.Physics, &attrs, opts...)
	if err != nil {
		return nil, err
	}
	if bd.Parent != "" {
		parent := rt.World.ColliderByName(bd.Parent)
		if parent == nil {
			return nil, fmt.Errorf("unknown parent collider %q", bd.Parent)
		}
		b.Parent(parent)
	}
	return &Actor{Body: b, Inputs: bd.Inputs}, nil
}

// Actor returns the actor of the body with the given name, or nil.
func (rt *Runtime) Actor(name string) *Actor {
	for _, ac := range rt.Actors {
		if ac.Body.Name == name {
			return ac
		}
	}
	return nil
}

// Zone returns the zone with the given name, or nil.
func (rt *Runtime) Zone(name string) *Zone {
	for _, z := range rt.Zones {
		if z.Name == name {
			return z
		}
	}
	return nil
}

// Listen sets the listener of every zone.
func (rt *Runtime) Listen(fn func(ev Event)) {
	for _, z := range rt.Zones {
		z.Listener = fn
	}
}

// Event is a body entering or exiting a zone.
type Event struct {
	Zone  string
	Body  string
	Enter bool
}

func (ev Event) String() string {
	if ev.Enter {
		return ev.Body + " entered " + ev.Zone
	}
	return ev.Body + " exited " + ev.Zone
}

// Zone is a trigger collider logging the bodies entering and exiting it.
type Zone struct {
	Name     string
	Collider *physics.Collider

	// Logger receives the enter and exit records.
	Logger *slog.Logger

	// Listener is called on each event, if set.
	Listener func(ev Event)

	// Inside is the number of bodies in the zone.
	Inside int
}

// NewZone returns a zone for the trigger collider c.
func NewZone(c *physics.Collider) *Zone {
	return &Zone{Name: c.Name, Collider: c, Logger: slog.Default().With("zone", c.Name)}
}

func (z *Zone) OnEnter(b *movable.Body) {
	z.Inside++
	z.Logger.Info("enter", "body", b.Name, "inside", z.Inside)
	z.notify(Event{Zone: z.Name, Body: b.Name, Enter: true})
}

func (z *Zone) OnExit(b *movable.Body) {
	z.Inside--
	z.Logger.Info("exit", "body", b.Name, "inside", z.Inside)
	z.notify(Event{Zone: z.Name, Body: b.Name})
}

func (z *Zone) notify(ev Event) {
	if z.Listener != nil {
		z.Listener(ev)
	}
}
