package main

import (
	"math"

	"github.com/jakecoffman/cp"
)

const hudHeight = 48

// camera maps arena units to screen pixels, fitting the whole arena below
// the HUD strip.
type camera struct {
	bounds cp.BB
	scale  float64
	ox, oy float64

	// focus is the player position, used as the mouse joystick origin
	focus cp.Vector
}

func newCamera(bounds cp.BB) *camera {
	c := &camera{}
	c.fit(bounds)
	return c
}

func (c *camera) fit(bounds cp.BB) {
	c.bounds = bounds
	w := bounds.R - bounds.L
	h := bounds.T - bounds.B
	if w <= 0 || h <= 0 {
		w, h = 40, 30
		c.bounds = cp.BB{L: -20, B: -15, R: 20, T: 15}
	}
	const margin = 24.0
	availW := float64(baseWidth) - 2*margin
	availH := float64(baseHeight-hudHeight) - 2*margin
	c.scale = math.Min(availW/w, availH/h)
	c.ox = (float64(baseWidth) - w*c.scale) / 2
	c.oy = hudHeight + (float64(baseHeight-hudHeight)-h*c.scale)/2
}

func (c *camera) toScreen(v cp.Vector) (float32, float32) {
	return float32(c.ox + (v.X-c.bounds.L)*c.scale), float32(c.oy + (v.Y-c.bounds.B)*c.scale)
}

func (c *camera) toWorld(x, y float64) cp.Vector {
	return cp.Vector{X: (x-c.ox)/c.scale + c.bounds.L, Y: (y-c.oy)/c.scale + c.bounds.B}
}

func (c *camera) length(units float64) float32 {
	return float32(units * c.scale)
}

func (c *camera) overHUD(_, y int) bool {
	return y < hudHeight
}
