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

// NewPlayer builds the player from the player prefab at (x, y).
func NewPlayer(w *ecs.World, registry *combat.EnemyRegistry, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, registry, spec, x, y)
}

func NewPlayerFromSpec(w *ecs.World, registry *combat.EnemyRegistry, spec *prefabs.PlayerSpec, x, y float64) (_ ecs.Entity, err error) {
	if w == nil || spec == nil {
		return 0, fmt.Errorf("player: nil world or spec")
	}
	entity := w.CreateEntity()
	defer func() {
		if err != nil {
			discard(w, entity)
		}
	}()
	pos := cp.Vector{X: x, Y: y}

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := addBody(w, entity, pos, spec.Radius, component.TagPlayer); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	input := &component.Input{}
	if err := ecs.Add(w, entity, component.InputComponent.Kind(), input); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	motor := &component.Motor{Speed: spec.MoveSpeed}
	if err := ecs.Add(w, entity, component.MotorComponent.Kind(), motor); err != nil {
		return 0, fmt.Errorf("player: add motor: %w", err)
	}
	anim := component.NewAnimator()
	if err := ecs.Add(w, entity, component.AnimatorComponent.Kind(), anim); err != nil {
		return 0, fmt.Errorf("player: add animator: %w", err)
	}
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), component.NewHealth(spec.Health)); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}
	if err := ecs.Add(w, entity, component.AttackerComponent.Kind(), attackerFrom(spec.Attack)); err != nil {
		return 0, fmt.Errorf("player: add attacker: %w", err)
	}

	hc := &system.HookContext{
		World:     w,
		Entity:    entity,
		Animation: anim,
		Mover:     motor,
		Log:       logging.For("hooks").WithField("owner", "player"),
	}
	hooks, err := loadHooks(spec.Hooks, spec.Script, hc)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	cfg := PlayerConfig(spec)
	agent := combat.New(cfg, combat.Deps{
		Self:      entity,
		Spatial:   w,
		Resolver:  w,
		Registry:  registry,
		Animation: anim,
		Mover:     motor,
		Manual:    input,
		Hooks:     hooks,
		Strike: func(target ecs.Entity, _ float64) {
			system.ApplyStrike(w, entity, target)
		},
	})
	system.PublishTransitions(w, entity, agent.Machine())
	system.PublishTargetChanges(w, entity, agent.Targeter())

	if err := ecs.Add(w, entity, combat.AutoCombatComponent.Kind(), agent); err != nil {
		return 0, fmt.Errorf("player: add auto combat: %w", err)
	}
	if cfg.Enabled {
		agent.SetEnabled(true, w.Now())
	}
	return entity, nil
}

// ApplyPlayerSpec re-applies tuning to a live player without resetting its
// combat state.
func ApplyPlayerSpec(w *ecs.World, e ecs.Entity, spec *prefabs.PlayerSpec) bool {
	if spec == nil {
		return false
	}
	agent, ok := ecs.Get(w, e, combat.AutoCombatComponent.Kind())
	if !ok {
		return false
	}
	cfg := PlayerConfig(spec)
	cfg.Enabled = agent.Enabled()
	agent.SetConfig(cfg)

	if motor, ok := ecs.Get(w, e, component.MotorComponent.Kind()); ok {
		motor.Speed = spec.MoveSpeed
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

func addBody(w *ecs.World, e ecs.Entity, pos cp.Vector, radius float64, tag component.Tag) error {
	if radius <= 0 {
		radius = 0.5
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Radius: radius, Tag: tag}); err != nil {
		return fmt.Errorf("add body: %w", err)
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.AddBody(e, pos, radius, tag)
	}
	return nil
}

// discard removes a half-built entity and its physics body.
func discard(w *ecs.World, e ecs.Entity) {
	if pw := w.PhysicsWorld(); pw != nil {
		pw.RemoveBody(e)
	}
	w.DestroyEntity(e)
}
