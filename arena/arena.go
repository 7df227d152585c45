// Package arena hosts the auto-combat core in a small ECS world: one player,
// a set of enemies, chipmunk bodies and the systems that tie them together.
// Both the ebiten viewer and the headless simulator drive an Arena.
package arena

import (
	"fmt"
	"path/filepath"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
	"github.com/milk9111/autocombat/ecs/entity"
	"github.com/milk9111/autocombat/ecs/system"
	"github.com/milk9111/autocombat/logging"
	"github.com/milk9111/autocombat/prefabs"
	"github.com/sirupsen/logrus"
)

// Options tweak how an arena is built.
type Options struct {
	// Input feeds the player's manual input. Nil leaves it at rest.
	Input system.InputSource
	// AutoCombat overrides the scenario's auto-combat flag when set.
	AutoCombat *bool
	// GlobalSearch overrides the scenario and player prefab when set.
	GlobalSearch *bool
}

// Arena is one running scenario.
type Arena struct {
	spec     *prefabs.ArenaSpec
	world    *ecs.World
	physics  *ecs.PhysicsWorld
	registry *combat.EnemyRegistry
	player   ecs.Entity

	input      *system.InputSystem
	physicsSys *system.PhysicsSystem
	journal    *journal

	log *logrus.Entry
}

// Load reads the named scenario from prefabs and builds it.
func Load(name string, opts Options) (*Arena, error) {
	spec, err := prefabs.LoadArenaSpec(name)
	if err != nil {
		return nil, err
	}
	return New(spec, opts)
}

func New(spec *prefabs.ArenaSpec, opts Options) (*Arena, error) {
	if spec == nil {
		return nil, fmt.Errorf("arena: nil spec")
	}

	world := ecs.NewWorld()
	physics := ecs.NewPhysicsWorld(spec.PhysicsStep)
	world.SetPhysicsWorld(physics)
	registry := combat.NewEnemyRegistry()
	entity.TrackEnemies(world, registry)

	a := &Arena{
		spec:       spec,
		world:      world,
		physics:    physics,
		registry:   registry,
		input:      system.NewInputSystem(opts.Input),
		physicsSys: system.NewPhysicsSystem(),
		log:        logging.For("arena").WithField("scenario", spec.Name),
	}
	a.journal = newJournal(a)
	a.physicsSys.SetBounds(cp.BB{L: spec.Bounds.MinX, B: spec.Bounds.MinY, R: spec.Bounds.MaxX, T: spec.Bounds.MaxY})

	// decide, then move, then record
	world.AddSystem(ecs.NewScheduler(
		a.input,
		system.NewAutoCombatSystem(),
		system.NewManualAttackSystem(),
		system.NewEnemyAISystem(),
	))
	world.AddSystem(ecs.NewScheduler(
		system.NewMotorSystem(),
		system.NewNavSystem(),
		a.physicsSys,
	))
	world.AddSystem(a.journal)

	for i, spawn := range spec.Enemies {
		if _, err := entity.NewEnemy(world, registry, spawn); err != nil {
			return nil, fmt.Errorf("arena: enemy %d: %w", i, err)
		}
	}
	player, err := entity.NewPlayer(world, registry, spec.Player.X, spec.Player.Y)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}
	a.player = player

	global := spec.GlobalSearch
	if opts.GlobalSearch != nil {
		global = opts.GlobalSearch
	}
	if global != nil {
		a.SetGlobalSearch(*global)
	}
	auto := spec.AutoCombat
	if opts.AutoCombat != nil {
		auto = *opts.AutoCombat
	}
	a.SetAutoCombat(auto)

	a.log.WithFields(logrus.Fields{
		"enemies": len(spec.Enemies),
		"auto":    auto,
	}).Info("arena ready")
	return a, nil
}

// Step advances the simulation by dt seconds.
func (a *Arena) Step(dt float64) {
	if a == nil {
		return
	}
	a.world.Step(dt)
}

func (a *Arena) World() *ecs.World                { return a.world }
func (a *Arena) Registry() *combat.EnemyRegistry { return a.registry }
func (a *Arena) Player() ecs.Entity              { return a.player }
func (a *Arena) Spec() *prefabs.ArenaSpec        { return a.spec }
func (a *Arena) Now() float64                    { return a.world.Now() }

func (a *Arena) Bounds() cp.BB {
	b := a.spec.Bounds
	return cp.BB{L: b.MinX, B: b.MinY, R: b.MaxX, T: b.MaxY}
}

// PhysicsSteps is the number of fixed physics steps run so far.
func (a *Arena) PhysicsSteps() int { return a.physicsSys.Steps() }

// SetInput swaps the manual input source.
func (a *Arena) SetInput(src system.InputSource) { a.input.SetSource(src) }

// Agent returns the player's auto-combat agent.
func (a *Arena) Agent() *combat.AutoCombat {
	agent, ok := ecs.Get(a.world, a.player, combat.AutoCombatComponent.Kind())
	if !ok {
		return nil
	}
	return agent
}

func (a *Arena) AutoCombat() bool { return a.Agent().Enabled() }

func (a *Arena) SetAutoCombat(on bool) {
	a.Agent().SetEnabled(on, a.world.Now())
}

func (a *Arena) GlobalSearch() bool { return a.Agent().GlobalSearch() }

func (a *Arena) SetGlobalSearch(on bool) {
	a.Agent().SetGlobalSearch(on, a.world.Now())
}

// Stun queues a stun on e, applied on its next combat update.
func (a *Arena) Stun(e ecs.Entity, duration float64) error {
	return ecs.Add(a.world, e, component.StunRequestComponent.Kind(), &component.StunRequest{Duration: duration})
}

// PlayerAlive reports whether the player is still standing.
func (a *Arena) PlayerAlive() bool { return a.world.IsActive(a.player) }

// EnemiesLeft counts registered enemies that are alive and active.
func (a *Arena) EnemiesLeft() int {
	n := 0
	a.registry.Each(func(e ecs.Entity) bool {
		if a.world.IsActive(e) {
			n++
		}
		return true
	})
	return n
}

// Done reports whether the scenario is over: the player fell or no active
// enemy remains.
func (a *Arena) Done() bool {
	return !a.PlayerAlive() || a.EnemiesLeft() == 0
}

// ReloadTuning re-reads the player and enemy prefabs and applies them to the
// live entities.
func (a *Arena) ReloadTuning() error {
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	enemy, err := prefabs.LoadEnemySpec()
	if err != nil {
		return err
	}
	entity.ApplyPlayerSpec(a.world, a.player, player)
	for _, e := range a.registry.Entities() {
		entity.ApplyEnemySpec(a.world, e, enemy)
	}
	a.log.Info("tuning reloaded")
	return nil
}

// HandleChanges reloads tuning if any of paths is a combat prefab. It
// reports whether anything was reapplied.
func (a *Arena) HandleChanges(paths []string) (bool, error) {
	for _, p := range paths {
		switch filepath.Base(p) {
		case "player.yaml", "enemy.yaml":
			return true, a.ReloadTuning()
		}
	}
	return false, nil
}
