package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/arena"
	"github.com/milk9111/autocombat/logging"
	"github.com/milk9111/autocombat/prefabs"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	frames int

	scenario string
	debug    bool
	paused   bool

	arena    *arena.Arena
	cam      *camera
	controls *Controls
	hud      *HUD
	palette  palette
	watcher  *prefabs.Watcher

	log *logrus.Entry
}

// NewGame loads the scenario and, when watcher is non-nil, hot reloads
// prefab edits between ticks.
func NewGame(scenario string, debug bool, watcher *prefabs.Watcher) (*Game, error) {
	g := &Game{
		scenario: scenario,
		debug:    debug,
		watcher:  watcher,
		log:      logging.For("game"),
	}
	g.cam = newCamera(cp.BB{})
	g.controls = NewControls(g.cam)
	g.hud = NewHUD(g.controls)
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) restart() error {
	a, err := arena.Load(g.scenario, arena.Options{Input: g.controls})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.arena = a
	g.cam.fit(a.Bounds())
	g.palette = loadPalette()
	g.log.WithField("scenario", a.Spec().Name).Info("arena loaded")
	return nil
}

func loadPalette() palette {
	pal := palette{player: colornames.Dodgerblue, enemy: colornames.Crimson}
	if spec, err := prefabs.LoadPlayerSpec(); err == nil {
		pal.player = spec.Color.Or(pal.player)
	}
	if spec, err := prefabs.LoadEnemySpec(); err == nil {
		pal.enemy = spec.Color.Or(pal.enemy)
	}
	return pal
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			g.log.WithError(err).Warn("restart failed")
		}
	}

	g.hud.Update()
	g.reload()

	if !g.paused && !g.arena.Done() {
		g.arena.Step(1 / float64(ebiten.TPS()))
	}
	if p, ok := g.arena.World().Position(g.arena.Player()); ok {
		g.cam.focus = p
	}

	stats := g.arena.Stats()
	g.hud.Sync(g.arena.AutoCombat(), g.arena.GlobalSearch(),
		statusLine(string(g.arena.Agent().State()), stats.Kills, g.arena.EnemiesLeft(), g.arena.Now()))
	return nil
}

// reload applies prefab edits picked up by the watcher. Scenario edits
// rebuild the arena; combat tuning is applied in place.
func (g *Game) reload() {
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	for _, p := range changed {
		base := filepath.Base(p)
		// hooks and scripts are compiled into the state machines at spawn
		if base == g.scenario || filepath.Ext(base) == ".tengo" || strings.HasSuffix(base, "_hooks.yaml") {
			if err := g.restart(); err != nil {
				g.log.WithError(err).Warn("scenario reload failed")
			}
			return
		}
	}
	if _, err := g.arena.HandleChanges(changed); err != nil {
		g.log.WithError(err).Warn("tuning reload failed")
		return
	}
	g.palette = loadPalette()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	drawArena(screen, g.cam, g.arena, g.palette, g.debug)
	if g.debug {
		drawJournal(screen, g.arena.Journal())
	}

	switch {
	case !g.arena.PlayerAlive():
		drawBanner(screen, "DEFEATED", colornames.Orangered)
	case g.arena.EnemiesLeft() == 0:
		drawBanner(screen, "CLEARED", colornames.Limegreen)
	case g.paused:
		drawBanner(screen, "PAUSED", colornames.White)
	}

	g.hud.ui.Draw(screen)
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  physics steps: %d", ebiten.ActualFPS(), g.arena.PhysicsSteps()), baseWidth-220, baseHeight-20)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
