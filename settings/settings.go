// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings contains the tunable physics and movement
// parameters of kinematic bodies, loaded from TOML files.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"cogentcore.org/core/base/reflectx"
	"cogentcore.org/core/math32"
	"github.com/horrorps1/dread/curve"
	"github.com/pelletier/go-toml/v2"
)

// Settings is the full set of parameters used by a simulation.
type Settings struct {

	// Physics are the world-wide collision and force parameters.
	Physics Physics `toml:"physics" yaml:"physics"`

	// Movable are the default per-body movement attributes.
	Movable Movable `toml:"movable" yaml:"movable"`
}

// Physics are the collision and force parameters shared by every body.
type Physics struct {

	// MaxGravity is the lowest vertical force gravity can accumulate to.
	MaxGravity float32 `default:"-25" toml:"max_gravity" yaml:"max_gravity"`

	// GroundMinNormal is the minimum normal y component of a surface
	// to be considered as ground.
	GroundMinNormal float32 `default:"0.85" toml:"ground_min_normal" yaml:"ground_min_normal"`

	// GroundClimbHeight is the maximum height of a step that can be climbed.
	GroundClimbHeight float32 `default:"0.2" toml:"ground_climb_height" yaml:"ground_climb_height"`

	// GroundSnapHeight is the maximum distance a grounded creature
	// is pulled down to stay on the ground.
	GroundSnapHeight float32 `default:"0.2" toml:"ground_snap_height" yaml:"ground_snap_height"`

	// SteepSlopeRequiredMovement is the flat movement needed to slide along a steep slope.
	SteepSlopeRequiredMovement float32 `default:"20" toml:"steep_slope_required_movement" yaml:"steep_slope_required_movement"`

	// SteepSlopeRequiredForce is the flat force needed to slide along a steep slope.
	SteepSlopeRequiredForce float32 `default:"10" toml:"steep_slope_required_force" yaml:"steep_slope_required_force"`

	// OnGroundedForceMultiplier scales force when getting grounded.
	OnGroundedForceMultiplier float32 `default:"0.55" toml:"on_grounded_force_multiplier" yaml:"on_grounded_force_multiplier"`

	// GroundDecelerationForce is the force decay per second on the ground.
	GroundDecelerationForce float32 `default:"17" toml:"ground_deceleration_force" yaml:"ground_deceleration_force"`

	// AirDecelerationForce is the force decay per second in the air.
	AirDecelerationForce float32 `default:"5" toml:"air_deceleration_force" yaml:"air_deceleration_force"`

	// Gravity is the vertical gravity acceleration.
	Gravity float32 `default:"-9.81" toml:"gravity" yaml:"gravity"`

	// ContactOffset is the skin width kept between bodies and surfaces.
	ContactOffset float32 `default:"0.01" toml:"contact_offset" yaml:"contact_offset"`
}

// IsGroundSurface returns whether a surface with the given normal is ground.
func (ph *Physics) IsGroundSurface(normal math32.Vector3) bool {
	return !(normal.Y < ph.GroundMinNormal)
}

// Validate returns an error for each parameter outside its range.
func (ph *Physics) Validate() error {
	var errs []error
	check := func(ok bool, name string, v float32, want string) {
		if !ok {
			errs = append(errs, fmt.Errorf("physics.%s = %g, must be %s", name, v, want))
		}
	}
	check(ph.MaxGravity <= 0, "max_gravity", ph.MaxGravity, "<= 0")
	check(ph.GroundMinNormal >= .1 && ph.GroundMinNormal <= 1, "ground_min_normal", ph.GroundMinNormal, "in [0.1, 1]")
	check(ph.GroundClimbHeight >= 0, "ground_climb_height", ph.GroundClimbHeight, ">= 0")
	check(ph.GroundSnapHeight >= 0, "ground_snap_height", ph.GroundSnapHeight, ">= 0")
	check(ph.SteepSlopeRequiredMovement >= 0, "steep_slope_required_movement", ph.SteepSlopeRequiredMovement, ">= 0")
	check(ph.SteepSlopeRequiredForce >= 0, "steep_slope_required_force", ph.SteepSlopeRequiredForce, ">= 0")
	check(ph.OnGroundedForceMultiplier >= 0 && ph.OnGroundedForceMultiplier <= 1, "on_grounded_force_multiplier", ph.OnGroundedForceMultiplier, "in [0, 1]")
	check(ph.GroundDecelerationForce >= 0, "ground_deceleration_force", ph.GroundDecelerationForce, ">= 0")
	check(ph.AirDecelerationForce >= 0, "air_deceleration_force", ph.AirDecelerationForce, ">= 0")
	check(ph.ContactOffset > 0, "contact_offset", ph.ContactOffset, "> 0")
	return errors.Join(errs...)
}

// Movable are the movement attributes of one body.
type Movable struct {

	// SpeedMin is the speed when starting to move.
	SpeedMin float32 `default:"0" toml:"speed_min" yaml:"speed_min"`

	// SpeedMax is the speed reached after SpeedDuration.
	SpeedMax float32 `default:"4" toml:"speed_max" yaml:"speed_max"`

	// SpeedDuration is the time in seconds to go from SpeedMin to SpeedMax.
	SpeedDuration float32 `default:"0.7" toml:"speed_duration" yaml:"speed_duration"`

	// SpeedCurve shapes the speed ramp, read in [0, 1] on both axes.
	SpeedCurve curve.Curve `toml:"speed_curve" yaml:"speed_curve"`
}

// Defaults sets the default speed curve if none is set.
func (mv *Movable) Defaults() {
	if mv.SpeedCurve.IsEmpty() {
		mv.SpeedCurve = curve.EaseInOut(0, 0, 1, 1)
	}
}

// EvaluateSpeed returns the speed after moving for the given time.
func (mv *Movable) EvaluateSpeed(time float32) float32 {
	time = math32.Min(time, mv.SpeedDuration)
	if time != 0 {
		time /= mv.SpeedDuration
	}
	return mv.SpeedCurve.Lerp(mv.SpeedMin, mv.SpeedMax, time)
}

// Validate returns an error for each attribute outside its range.
func (mv *Movable) Validate() error {
	var errs []error
	if mv.SpeedMin < 0 || mv.SpeedMax > 50 || mv.SpeedMin > mv.SpeedMax {
		errs = append(errs, fmt.Errorf("movable.speed range [%g, %g] must be ordered within [0, 50]", mv.SpeedMin, mv.SpeedMax))
	}
	if mv.SpeedDuration < 0 || mv.SpeedDuration > 10 {
		errs = append(errs, fmt.Errorf("movable.speed_duration = %g, must be in [0, 10]", mv.SpeedDuration))
	}
	return errors.Join(errs...)
}

// Default returns settings with all default values.
func Default() *Settings {
	s := &Settings{}
	s.Defaults()
	return s
}

// Defaults sets all values from their default tags.
func (s *Settings) Defaults() {
	// only fails on malformed tags
	if err := reflectx.SetFromDefaultTags(s); err != nil {
		panic(err)
	}
	s.Movable.Defaults()
}

// Validate validates all settings.
func (s *Settings) Validate() error {
	return errors.Join(s.Physics.Validate(), s.Movable.Validate())
}

// Open reads settings from the given TOML file, on top of the defaults,
// and validates them.
func Open(filename string) (*Settings, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s, err := Read(b)
	if err != nil {
		return nil, fmt.Errorf("settings: %s: %w", filename, err)
	}
	return s, nil
}

// Read decodes TOML settings on top of the defaults and validates them.
func Read(b []byte) (*Settings, error) {
	s := Default()
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return nil, err
	}
	s.Movable.Defaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the settings to the given TOML file.
func (s *Settings) Save(filename string) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}
