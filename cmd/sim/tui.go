package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/mattn/go-runewidth"
	"github.com/milk9111/autocombat/arena"
	"github.com/milk9111/autocombat/combat"
)

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleWall    = styleDefault.Foreground(tcell.ColorSlateGray)
	styleRing    = styleDefault.Foreground(tcell.ColorOlive)
	stylePlayer  = styleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	styleStatus  = styleDefault.Foreground(tcell.ColorSilver)

	stateStyles = map[combat.State]tcell.Style{
		combat.StateIdle:    styleDefault.Foreground(tcell.ColorGray),
		combat.StateChase:   styleDefault.Foreground(tcell.ColorGold),
		combat.StateAttack:  styleDefault.Foreground(tcell.ColorOrangeRed),
		combat.StateStunned: styleDefault.Foreground(tcell.ColorMediumPurple),
	}
	stateGlyphs = map[combat.State]rune{
		combat.StateIdle:    'e',
		combat.StateChase:   'c',
		combat.StateAttack:  'A',
		combat.StateStunned: 's',
	}
)

type cell struct {
	r     rune
	style tcell.Style
}

// canvas is an off-screen character grid so frames can be built and
// inspected without a terminal.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', style: styleDefault}
	}
	return c
}

func (c *canvas) put(x, y int, r rune, st tcell.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, style: st}
}

func (c *canvas) at(x, y int) cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return cell{}
	}
	return c.cells[y*c.w+x]
}

// text writes s from (x, y), truncated to the canvas width. Wide runes take
// two columns.
func (c *canvas) text(x, y int, s string, st tcell.Style) {
	s = runewidth.Truncate(s, c.w-x, "…")
	for _, r := range s {
		c.put(x, y, r, st)
		x += runewidth.RuneWidth(r)
	}
}

func (c *canvas) row(y int) string {
	out := make([]rune, 0, c.w)
	for x := 0; x < c.w; x++ {
		out = append(out, c.at(x, y).r)
	}
	return string(out)
}

func (c *canvas) blit(scr tcell.Screen) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			scr.SetContent(x, y, cl.r, nil, cl.style)
		}
	}
}

// grid maps arena units onto the character cells between the status lines.
type grid struct {
	bounds     cp.BB
	top        int
	cols, rows int
	sx, sy     float64
}

func newGrid(bounds cp.BB, w, h, top, bottom int) grid {
	g := grid{bounds: bounds, top: top, cols: w, rows: h - top - bottom}
	if g.rows < 1 {
		g.rows = 1
	}
	if g.cols < 1 {
		g.cols = 1
	}
	bw, bh := bounds.R-bounds.L, bounds.T-bounds.B
	if bw <= 0 {
		bw = 1
	}
	if bh <= 0 {
		bh = 1
	}
	g.sx = float64(g.cols-1) / bw
	g.sy = float64(g.rows-1) / bh
	return g
}

func (g grid) cell(v cp.Vector) (int, int) {
	x := int(math.Round((v.X - g.bounds.L) * g.sx))
	y := int(math.Round((v.Y - g.bounds.B) * g.sy))
	return x, g.top + y
}

// renderFrame draws the arena, rings, actors, status and journal.
func renderFrame(c *canvas, a *arena.Arena, overlay bool, status string) {
	const top, bottom = 1, 4
	g := newGrid(a.Bounds(), c.w, c.h, top, bottom)

	c.text(0, 0, status, styleStatus)
	for x := 0; x < c.w; x++ {
		c.put(x, top, '─', styleWall)
		c.put(x, top+g.rows-1, '─', styleWall)
	}
	for y := top; y < top+g.rows; y++ {
		c.put(0, y, '│', styleWall)
		c.put(c.w-1, y, '│', styleWall)
	}

	actors := a.Actors()
	if overlay {
		for _, act := range actors {
			if act.Player && act.Active && act.DetectionRadius > 0 {
				ring(c, g, act.Position, act.DetectionRadius)
			}
		}
	}
	for _, act := range actors {
		x, y := g.cell(act.Position)
		switch {
		case act.Player:
			st := stylePlayer
			if !act.Active {
				st = styleWall
			}
			c.put(x, y, '@', st)
		case !act.Active:
			c.put(x, y, '·', styleWall)
		default:
			st, ok := stateStyles[act.State]
			if !ok {
				st = styleDefault
			}
			glyph, ok := stateGlyphs[act.State]
			if !ok {
				glyph = 'e'
			}
			c.put(x, y, glyph, st)
		}
	}

	journal := a.Journal()
	if len(journal) > bottom-1 {
		journal = journal[len(journal)-(bottom-1):]
	}
	for i, line := range journal {
		c.text(0, top+g.rows+i, line, styleStatus)
	}
}

func ring(c *canvas, g grid, center cp.Vector, radius float64) {
	steps := 64
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		p := cp.Vector{X: center.X + radius*math.Cos(theta), Y: center.Y + radius*math.Sin(theta)}
		if p.X < g.bounds.L || p.X > g.bounds.R || p.Y < g.bounds.B || p.Y > g.bounds.T {
			continue
		}
		x, y := g.cell(p)
		if c.at(x, y).r == ' ' {
			c.put(x, y, '.', styleRing)
		}
	}
}

// viewer is the live terminal front end.
type viewer struct {
	runner  *runner
	paused  bool
	overlay bool
	speed   int
	quit    bool
}

func newViewer(r *runner) *viewer {
	return &viewer{runner: r, overlay: true, speed: 1}
}

// handleKey applies one key press and reports whether the frame changed.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	a := v.runner.arena
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.quit = true
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch ev.Rune() {
	case 'q':
		v.quit = true
	case ' ', 'p':
		v.paused = !v.paused
	case 'a':
		a.SetAutoCombat(!a.AutoCombat())
	case 'g':
		a.SetGlobalSearch(!a.GlobalSearch())
	case 'o':
		v.overlay = !v.overlay
	case '+', '=':
		if v.speed < 16 {
			v.speed *= 2
		}
	case '-':
		if v.speed > 1 {
			v.speed /= 2
		}
	case '.':
		if v.paused {
			v.runner.tick()
		}
	default:
		return false
	}
	return true
}

func (v *viewer) advance() {
	if v.paused || v.runner.arena.Done() {
		return
	}
	for i := 0; i < v.speed; i++ {
		v.runner.tick()
	}
}

func (v *viewer) status() string {
	a := v.runner.arena
	stats := a.Stats()
	state := "running"
	switch {
	case !a.PlayerAlive():
		state = "DEFEATED"
	case a.EnemiesLeft() == 0:
		state = "CLEARED"
	case v.paused:
		state = "paused"
	}
	return fmt.Sprintf("%s t=%.1fs x%d | %s | auto %s global %s | kills %d left %d | [a]uto [g]lobal [o]verlay [p]ause [+/-] [q]uit",
		a.Spec().Name, a.Now(), v.speed, state, onOff(a.AutoCombat()), onOff(a.GlobalSearch()),
		stats.Kills, a.EnemiesLeft())
}

func (v *viewer) draw(scr tcell.Screen) {
	w, h := scr.Size()
	c := newCanvas(w, h)
	renderFrame(c, v.runner.arena, v.overlay, v.status())
	c.blit(scr)
	scr.Show()
}

func runTUI(r *runner) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	defer scr.Fini()
	scr.HideCursor()
	return newViewer(r).loop(scr)
}

func (v *viewer) loop(scr tcell.Screen) error {
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := scr.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	interval := time.Duration(v.runner.dt * float64(time.Second))
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	v.draw(scr)
	for !v.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if v.handleKey(ev) {
					v.draw(scr)
				}
			case *tcell.EventResize:
				scr.Sync()
				v.draw(scr)
			}
		case <-ticker.C:
			v.advance()
			v.draw(scr)
		}
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
