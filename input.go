package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs/component"
)

const stickDeadzone = 0.2

// Controls polls keyboard, gamepad and mouse into one input frame. Holding the
// left mouse button steers toward the cursor like a virtual joystick.
type Controls struct {
	cam *camera

	// queued by HUD buttons, consumed on the next poll
	toggleAuto   bool
	toggleGlobal bool
}

func NewControls(cam *camera) *Controls {
	return &Controls{cam: cam}
}

func (c *Controls) QueueToggleAuto()   { c.toggleAuto = true }
func (c *Controls) QueueToggleGlobal() { c.toggleGlobal = true }

func (c *Controls) Poll() component.Input {
	var move cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move.Y += 1
	}

	attack := inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyJ)
	toggleAuto := inpututil.IsKeyJustPressed(ebiten.KeyT) || c.toggleAuto
	toggleGlobal := inpututil.IsKeyJustPressed(ebiten.KeyG) || c.toggleGlobal
	c.toggleAuto, c.toggleGlobal = false, false

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			move = cp.Vector{X: lx, Y: ly}
		}
		attack = attack || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		toggleAuto = toggleAuto || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		toggleGlobal = toggleGlobal || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
	}

	if c.cam != nil && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !c.cam.overHUD(ebiten.CursorPosition()) {
		mx, my := ebiten.CursorPosition()
		target := c.cam.toWorld(float64(mx), float64(my))
		if d := target.Sub(c.cam.focus); d.Length() > 0.25 {
			move = d.Normalize()
		}
	}

	return component.Input{
		Move:          move,
		AttackPressed: attack,
		ToggleAuto:    toggleAuto,
		ToggleGlobal:  toggleGlobal,
	}
}
