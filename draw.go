package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/arena"
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var labelFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

var stateColors = map[combat.State]color.Color{
	combat.StateIdle:    colornames.Gray,
	combat.StateChase:   colornames.Gold,
	combat.StateAttack:  colornames.Orangered,
	combat.StateStunned: colornames.Mediumpurple,
}

// palette is the fill colour per role, taken from the prefabs.
type palette struct {
	player color.Color
	enemy  color.Color
}

func drawArena(screen *ebiten.Image, cam *camera, a *arena.Arena, pal palette, overlay bool) {
	x0, y0 := cam.toScreen(cp.Vector{X: cam.bounds.L, Y: cam.bounds.B})
	x1, y1 := cam.toScreen(cp.Vector{X: cam.bounds.R, Y: cam.bounds.T})
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, color.RGBA{R: 24, G: 26, B: 30, A: 255}, false)
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 2, colornames.Slategray, false)

	actors := a.Actors()
	byEntity := make(map[ecs.Entity]arena.Actor, len(actors))
	for _, act := range actors {
		byEntity[act.Entity] = act
	}

	if overlay {
		for _, act := range actors {
			if act.Active {
				drawRings(screen, cam, act, byEntity)
			}
		}
	}
	for _, act := range actors {
		fill := pal.enemy
		if act.Player {
			fill = pal.player
		}
		drawActor(screen, cam, act, fill, overlay)
	}
}

func drawRings(screen *ebiten.Image, cam *camera, act arena.Actor, byEntity map[ecs.Entity]arena.Actor) {
	cx, cy := cam.toScreen(act.Position)
	if act.DetectionRadius > 0 {
		vector.StrokeCircle(screen, cx, cy, cam.length(act.DetectionRadius), 1, withAlpha(colornames.Gold, 70), true)
	}
	if act.AttackRadius > 0 {
		vector.StrokeCircle(screen, cx, cy, cam.length(act.AttackRadius), 1, withAlpha(colornames.Orangered, 110), true)
	}
	if target, ok := byEntity[act.Target]; ok && act.Target.Valid() {
		tx, ty := cam.toScreen(target.Position)
		lineColor := colornames.Limegreen
		if !act.Player {
			lineColor = colornames.Indianred
		}
		vector.StrokeLine(screen, cx, cy, tx, ty, 1.5, lineColor, true)
	}
}

func drawActor(screen *ebiten.Image, cam *camera, act arena.Actor, fill color.Color, overlay bool) {
	cx, cy := cam.toScreen(act.Position)
	r := cam.length(act.Radius)
	if !act.Active {
		vector.StrokeCircle(screen, cx, cy, r, 1, colornames.Dimgray, true)
		return
	}
	vector.DrawFilledCircle(screen, cx, cy, r, fill, true)
	vector.StrokeCircle(screen, cx, cy, r, 2, stateColor(act.State), true)

	// facing tick
	dir := float32(1)
	if act.FacingLeft {
		dir = -1
	}
	vector.StrokeLine(screen, cx, cy, cx+dir*r, cy, 2, colornames.White, true)

	if act.MaxHealth > 0 {
		w := r * 2
		frac := float32(act.Health / act.MaxHealth)
		vector.DrawFilledRect(screen, cx-r, cy-r-8, w, 4, colornames.Darkred, false)
		vector.DrawFilledRect(screen, cx-r, cy-r-8, w*frac, 4, colornames.Lime, false)
	}

	if overlay {
		label := string(act.State)
		if len(act.Animation) > 0 {
			label = fmt.Sprintf("%s %v", label, act.Animation)
		}
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(cx+r+4), float64(cy-6))
		op.ColorScale.ScaleWithColor(stateColor(act.State))
		ebtext.Draw(screen, label, labelFace, op)
	}
}

func drawJournal(screen *ebiten.Image, lines []string) {
	y := float64(baseHeight) - 16*float64(len(lines)) - 8
	for _, line := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(12, y)
		op.ColorScale.ScaleWithColor(colornames.Lightgray)
		ebtext.Draw(screen, line, labelFace, op)
		y += 16
	}
}

func drawBanner(screen *ebiten.Image, msg string, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(3, 3)
	op.GeoM.Translate(float64(baseWidth)/2-float64(len(msg))*10.5, float64(baseHeight)/2-20)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, msg, labelFace, op)
}

func stateColor(s combat.State) color.Color {
	if c, ok := stateColors[s]; ok {
		return c
	}
	return colornames.White
}

func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
