package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
	"github.com/milk9111/autocombat/ecs/system"
	"github.com/milk9111/autocombat/logging"
	"github.com/milk9111/autocombat/prefabs"
)

// NewEnemy builds an enemy from the enemy prefab at the spawn point and
// registers it for global search.
func NewEnemy(w *ecs.World, registry *combat.EnemyRegistry, spawn prefabs.SpawnSpec) (ecs.Entity, error) {
	spec, err := prefabs.LoadEnemySpec()
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}
	return NewEnemyFromSpec(w, registry, spec, spawn)
}

func NewEnemyFromSpec(w *ecs.World, registry *combat.EnemyRegistry, spec *prefabs.EnemySpec, spawn prefabs.SpawnSpec) (_ ecs.Entity, err error) {
	if w == nil || spec == nil {
		return 0, fmt.Errorf("enemy: nil world or spec")
	}
	entity := w.CreateEntity()
	defer func() {
		if err != nil {
			discard(w, entity)
		}
	}()
	pos := cp.Vector{X: spawn.X, Y: spawn.Y}

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}
	if err := addBody(w, entity, pos, spec.Radius, component.TagEnemy); err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}

	anim := component.NewAnimator()
	if err := ecs.Add(w, entity, component.AnimatorComponent.Kind(), anim); err != nil {
		return 0, fmt.Errorf("enemy: add animator: %w", err)
	}
	hp := spec.Health
	if spawn.Health > 0 {
		hp = spawn.Health
	}
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), component.NewHealth(hp)); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}
	if err := ecs.Add(w, entity, component.AttackerComponent.Kind(), attackerFrom(spec.Attack)); err != nil {
		return 0, fmt.Errorf("enemy: add attacker: %w", err)
	}
	nav := &component.NavAgent{Speed: spec.RunSpeed, StoppingDistance: spec.StoppingDistance}
	if err := ecs.Add(w, entity, component.NavAgentComponent.Kind(), nav); err != nil {
		return 0, fmt.Errorf("enemy: add nav agent: %w", err)
	}
	if err := ecs.Add(w, entity, component.ThrottleComponent.Kind(), &component.Throttle{Bands: throttleBands(spec.UpdateFrequency)}); err != nil {
		return 0, fmt.Errorf("enemy: add throttle: %w", err)
	}

	hc := &system.HookContext{
		World:     w,
		Entity:    entity,
		Animation: anim,
		Mover:     nav,
		Log:       logging.For("hooks").WithField("owner", spec.Name),
	}
	hooks, err := loadHooks(spec.Hooks, "", hc)
	if err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}

	machine := combat.NewStateMachine(EnemyMachineConfig(spec), combat.DefaultHooks(anim, nav).Merge(hooks))
	system.PublishTransitions(w, entity, machine)
	brain := &combat.Brain{Machine: machine, DetectionRadius: pick(spec.DetectionRadius, 10)}
	if err := ecs.Add(w, entity, combat.BrainComponent.Kind(), brain); err != nil {
		return 0, fmt.Errorf("enemy: add brain: %w", err)
	}

	if spawn.Active != nil && !*spawn.Active {
		w.SetActive(entity, false)
	}
	registry.Register(entity)
	return entity, nil
}

// ApplyEnemySpec re-applies tuning to a live enemy.
func ApplyEnemySpec(w *ecs.World, e ecs.Entity, spec *prefabs.EnemySpec) bool {
	if spec == nil {
		return false
	}
	brain, ok := ecs.Get(w, e, combat.BrainComponent.Kind())
	if !ok || brain.Machine == nil {
		return false
	}
	brain.Machine.SetConfig(EnemyMachineConfig(spec))
	brain.DetectionRadius = pick(spec.DetectionRadius, 10)

	if nav, ok := ecs.Get(w, e, component.NavAgentComponent.Kind()); ok {
		nav.Speed = spec.RunSpeed
		nav.StoppingDistance = spec.StoppingDistance
	}
	if th, ok := ecs.Get(w, e, component.ThrottleComponent.Kind()); ok {
		th.Bands = throttleBands(spec.UpdateFrequency)
	}
	if atk, ok := ecs.Get(w, e, component.AttackerComponent.Kind()); ok {
		next := atk.NextStrikeAt
		strikes := atk.Strikes
		*atk = *attackerFrom(spec.Attack)
		atk.NextStrikeAt = next
		atk.Strikes = strikes
	}
	return true
}

// TrackEnemies keeps the registry and the physics space in step with entity
// destruction. Install once per world.
func TrackEnemies(w *ecs.World, registry *combat.EnemyRegistry) {
	w.OnDestroy(func(e ecs.Entity) {
		registry.Unregister(e)
		if pw := w.PhysicsWorld(); pw != nil {
			pw.RemoveBody(e)
		}
	})
}
