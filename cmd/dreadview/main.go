// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dreadview shows a scene from the side and lets you drive one of its bodies:
// the arrow keys move it, space jumps and R restarts the scene.
package main

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/cli"
	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/horrorps1/dread/movable"
	"github.com/horrorps1/dread/physics"
	"github.com/horrorps1/dread/scene"
	"github.com/horrorps1/dread/settings"
	"github.com/horrorps1/dread/sim"
)

// Config is the configuration of the dreadview command.
type Config struct {

	// Scene is the YAML scene file to show.
	Scene string `posarg:"0"`

	// Settings is the TOML settings file; the defaults are used if unset.
	Settings string `flag:"s,settings"`

	// Body is the name of the driven body; the first body if unset.
	Body string `flag:"b,body"`

	// Scale is the number of pixels per world unit.
	Scale float32 `default:"48"`

	// Jump is the upward force added when jumping.
	Jump float32 `default:"7"`

	// Width of the window, in pixels.
	Width int `default:"960"`

	// Height of the window, in pixels.
	Height int `default:"540"`
}

var (
	colorSolid    = color.RGBA{120, 120, 130, 255}
	colorTrigger  = color.RGBA{80, 200, 120, 255}
	colorPlatform = color.RGBA{90, 140, 220, 255}
	colorBody     = color.RGBA{230, 180, 60, 255}
	colorDriven   = color.RGBA{240, 90, 70, 255}
)

func main() {
	opts := cli.DefaultOptions("dreadview", "Dreadview shows a scene from the side and lets you drive one of its bodies.")
	cli.Run(opts, &Config{}, Run)
}

// Run opens the viewer window.
func Run(c *Config) error {
	g := &game{config: c}
	if err := g.reset(); err != nil {
		return err
	}
	ebiten.SetWindowSize(c.Width, c.Height)
	ebiten.SetWindowTitle("dreadview: " + g.runner.Runtime.Scene.Name)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(int(math32.Round(1 / sim.DefaultDT)))
	return ebiten.RunGame(g)
}

type game struct {
	config *Config
	runner *sim.Runner
	driven *movable.Body
	camera math32.Vector2
}

// reset loads the scene again.
func (g *game) reset() error {
	c := g.config
	st := settings.Default()
	if c.Settings != "" {
		var err error
		if st, err = settings.Open(c.Settings); err != nil {
			return err
		}
	}
	sc, err := scene.Load(c.Scene)
	if err != nil {
		return err
	}
	rt, err := sc.Build(st)
	if err != nil {
		return err
	}
	if len(rt.Actors) == 0 {
		return fmt.Errorf("dreadview: scene %q has no body", sc.Name)
	}
	driven := rt.Actors[0]
	if c.Body != "" {
		if driven = rt.Actor(c.Body); driven == nil {
			return fmt.Errorf("dreadview: unknown body %q", c.Body)
		}
	}
	g.runner = sim.New(rt, nil)
	g.driven = driven.Body
	return nil
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.reset()
	}
	b := g.driven
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		b.AddHorizontalMovement(-1, true)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		b.AddHorizontalMovement(1, true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && b.IsGrounded() {
		b.AddForce(math32.Vec3(0, g.config.Jump, 0))
	}
	if err := g.runner.Step(); err != nil {
		return err
	}
	pos := b.Position()
	g.camera = g.camera.Lerp(math32.Vec2(pos.X, pos.Y), .1)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 28, 255})
	rt := g.runner.Runtime
	for _, c := range rt.World.Colliders() {
		g.drawCollider(screen, c, g.colorOf(c))
	}

	b := g.driven
	pos := b.Position()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("frame %d  %s  pos (%.2f, %.2f, %.2f)  grounded %v  speed %.2f  triggers %d",
		g.runner.Frame(), b.Name, pos.X, pos.Y, pos.Z, b.IsGrounded(), b.Speed(), b.Triggers()))
	for i, z := range rt.Zones {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: %d inside", z.Name, z.Inside), 4, 20+16*i)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *game) colorOf(c *physics.Collider) color.Color {
	switch owner := c.Owner.(type) {
	case *movable.Body:
		if owner == g.driven {
			return colorDriven
		}
		return colorBody
	case *scene.Zone:
		return colorTrigger
	}
	for _, pf := range g.runner.Runtime.Platforms {
		if pf.Collider == c {
			return colorPlatform
		}
	}
	return colorSolid
}

// drawCollider draws the bounds of c projected on the XY plane.
func (g *game) drawCollider(screen *ebiten.Image, c *physics.Collider, clr color.Color) {
	bb := c.Volume().Bounds()
	x0, y0 := g.toScreen(screen, bb.Min.X, bb.Max.Y)
	x1, y1 := g.toScreen(screen, bb.Max.X, bb.Min.Y)
	if c.Trigger {
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, clr, true)
		return
	}
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, clr, true)
}

func (g *game) toScreen(screen *ebiten.Image, x, y float32) (float32, float32) {
	sz := screen.Bounds().Size()
	s := g.config.Scale
	return (x-g.camera.X)*s + float32(sz.X)/2, float32(sz.Y)/2 - (y-g.camera.Y)*s
}
