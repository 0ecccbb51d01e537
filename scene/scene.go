// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene loads YAML scene descriptions: static colliders,
// trigger zones, moving platforms and scripted kinematic bodies,
// and builds them into a runnable world.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/movable"
	"github.com/horrorps1/dread/physics"
	"gopkg.in/yaml.v3"
)

// Vec3 is a vector written as a three element sequence.
type Vec3 [3]float32

// Vector returns v as a [math32.Vector3].
func (v Vec3) Vector() math32.Vector3 {
	return math32.Vec3(v[0], v[1], v[2])
}

// Scene is the description of a world and the bodies moving in it.
type Scene struct {

	// Name of the scene, for logs and traces.
	Name string `yaml:"name"`

	// Frames is the default number of frames to simulate.
	Frames int `yaml:"frames"`

	// IgnoreLayers lists the pairs of layers that do not collide.
	IgnoreLayers [][2]uint8 `yaml:"ignore_layers"`

	// Colliders are the static, moving and trigger colliders.
	Colliders []Collider `yaml:"colliders"`

	// Bodies are the kinematic bodies.
	Bodies []Body `yaml:"bodies"`
}

// Shape describes the geometry of a collider.
type Shape struct {

	// Kind is box, capsule or sphere.
	Kind string `yaml:"shape"`

	// Center is the local center offset.
	Center Vec3 `yaml:"center"`

	// Size is the full size of a box.
	Size Vec3 `yaml:"size"`

	// Radius of a capsule or sphere.
	Radius float32 `yaml:"radius"`

	// Height of a capsule, hemispheres included.
	Height float32 `yaml:"height"`

	// Direction is the height axis of a capsule, y if unset.
	Direction *physics.Axis `yaml:"direction"`
}

// Collider describes a collider of the scene.
type Collider struct {
	Shape `yaml:",inline"`

	// Name must be unique among colliders and bodies.
	Name string `yaml:"name"`

	// Position is the world position.
	Position Vec3 `yaml:"position"`

	// Rotation is the world rotation in Euler angles (degrees).
	Rotation Vec3 `yaml:"rotation"`

	// Layer is the collision layer, in [0, 31].
	Layer uint8 `yaml:"layer"`

	// Trigger makes the collider a zone reporting the bodies entering it.
	Trigger bool `yaml:"trigger"`

	// Velocity moves the collider as a platform, in units per second.
	Velocity Vec3 `yaml:"velocity"`
}

// Body describes a kinematic body of the scene.
type Body struct {
	Collider `yaml:",inline"`

	// Strategy is the collision strategy kind; when unset the body
	// uses the complex strategy.
	Strategy *movable.Kind `yaml:"strategy"`

	// Gravity applies gravity to the body, true if unset.
	Gravity *bool `yaml:"gravity"`

	// Parent is the name of a collider the body moves with.
	Parent string `yaml:"parent"`

	// Movable overrides the default movement attributes.
	Movable yaml.Node `yaml:"movable"`

	// Inputs are the scripted inputs of the body.
	Inputs []Input `yaml:"inputs"`
}

// Input is a scripted input applied to a body over a range of frames.
type Input struct {

	// From is the first frame of the input.
	From int `yaml:"from"`

	// To is the frame after the last one; the input only lasts
	// frame From when To is not after it.
	To int `yaml:"to"`

	// Movement is added on each frame, turning the body to face it.
	Movement Vec3 `yaml:"movement"`

	// InstantForce is added on each frame.
	InstantForce Vec3 `yaml:"instant_force"`

	// Force is added once, on frame From.
	Force Vec3 `yaml:"force"`
}

// Active returns whether the input applies on the given frame.
func (in *Input) Active(frame int) bool {
	if in.To <= in.From {
		return frame == in.From
	}
	return frame >= in.From && frame < in.To
}

// Apply adds the input to b for the given frame.
func (in *Input) Apply(b *movable.Body, frame int) {
	if !in.Active(frame) {
		return
	}
	if frame == in.From {
		b.AddForce(in.Force.Vector())
	}
	b.AddMovement(in.Movement.Vector(), true)
	b.AddInstantForce(in.InstantForce.Vector())
}

// Load reads and validates the scene in the given YAML file.
func Load(filename string) (*Scene, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", filename, err)
	}
	return sc, nil
}

// Parse decodes and validates a YAML scene. Unknown fields are errors.
func Parse(b []byte) (*Scene, error) {
	sc := &Scene{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty scene")
		}
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate returns an error for each inconsistency of the scene.
func (sc *Scene) Validate() error {
	var errs []error
	names := map[string]bool{}
	colliders := map[string]bool{}
	check := func(c *Collider) {
		switch {
		case c.Name == "":
			errs = append(errs, errors.New("collider without name"))
		case names[c.Name]:
			errs = append(errs, fmt.Errorf("duplicate name %q", c.Name))
		}
		names[c.Name] = true
		if c.Layer > 31 {
			errs = append(errs, fmt.Errorf("%q: layer %d, must be in [0, 31]", c.Name, c.Layer))
		}
		if _, err := c.Shape.build(); err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", c.Name, err))
		}
	}
	for i := range sc.Colliders {
		c := &sc.Colliders[i]
		check(c)
		colliders[c.Name] = true
	}
	for i := range sc.Bodies {
		bd := &sc.Bodies[i]
		check(&bd.Collider)
		if bd.Trigger {
			errs = append(errs, fmt.Errorf("%q: bodies cannot be triggers", bd.Name))
		}
		if bd.Parent != "" && !colliders[bd.Parent] {
			errs = append(errs, fmt.Errorf("%q: unknown parent collider %q", bd.Name, bd.Parent))
		}
		for _, in := range bd.Inputs {
			if in.From < 0 {
				errs = append(errs, fmt.Errorf("%q: input starting at negative frame %d", bd.Name, in.From))
			}
		}
	}
	for _, p := range sc.IgnoreLayers {
		if p[0] > 31 || p[1] > 31 {
			errs = append(errs, fmt.Errorf("ignored layers %v, must be in [0, 31]", p))
		}
	}
	if sc.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames = %d, must be >= 0", sc.Frames))
	}
	return errors.Join(errs...)
}

// build returns the physics shape, without validating its dimensions.
func (sh *Shape) build() (physics.Shape, error) {
	switch strings.ToLower(sh.Kind) {
	case "box":
		return &physics.Box{Center: sh.Center.Vector(), Size: sh.Size.Vector()}, nil
	case "capsule":
		dir := physics.Y
		if sh.Direction != nil {
			dir = *sh.Direction
		}
		return &physics.Capsule{Center: sh.Center.Vector(), Radius: sh.Radius, Height: sh.Height, Direction: dir}, nil
	case "sphere":
		return &physics.Sphere{Center: sh.Center.Vector(), Radius: sh.Radius}, nil
	}
	return nil, fmt.Errorf("unknown shape %q, must be box, capsule or sphere", sh.Kind)
}

// collider returns the physics collider described by c.
func (c *Collider) collider() (*physics.Collider, error) {
	sh, err := c.Shape.build()
	if err != nil {
		return nil, err
	}
	pc := physics.NewCollider(c.Name, sh, c.Position.Vector())
	pc.State.SetEulerRotation(c.Rotation[0], c.Rotation[1], c.Rotation[2])
	pc.Layer = c.Layer
	pc.Trigger = c.Trigger
	return pc, nil
}
