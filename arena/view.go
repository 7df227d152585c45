package arena

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
)

// Actor is a read-only snapshot of one combatant for the viewers.
type Actor struct {
	Entity     ecs.Entity
	Player     bool
	Active     bool
	Position   cp.Vector
	Radius     float64
	FacingLeft bool
	State      combat.State
	Health     float64
	MaxHealth  float64
	Target     ecs.Entity
	Animation  []string

	// DetectionRadius and AttackRadius drive the debug rings.
	DetectionRadius float64
	AttackRadius    float64
}

// Actors snapshots the player first, then enemies in registry order.
func (a *Arena) Actors() []Actor {
	out := make([]Actor, 0, a.registry.Len()+1)
	if actor, ok := a.actor(a.player); ok {
		out = append(out, actor)
	}
	a.registry.Each(func(e ecs.Entity) bool {
		if actor, ok := a.actor(e); ok {
			out = append(out, actor)
		}
		return true
	})
	return out
}

func (a *Arena) actor(e ecs.Entity) (Actor, bool) {
	w := a.world
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return Actor{}, false
	}
	actor := Actor{
		Entity:     e,
		Player:     e == a.player,
		Active:     w.IsActive(e),
		Position:   t.Position,
		FacingLeft: t.FacingLeft,
		State:      combat.StateIdle,
	}
	if b, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		actor.Radius = b.Radius
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		actor.Health, actor.MaxHealth = h.Current, h.Max
	}
	if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
		actor.Animation = anim.Active()
	}
	if agent, ok := ecs.Get(w, e, combat.AutoCombatComponent.Kind()); ok {
		actor.State = agent.State()
		if info := agent.Target(); info.Ok {
			actor.Target = info.Entity
		}
		cfg := agent.Config()
		actor.DetectionRadius = cfg.Targeting.DetectionRadius
		actor.AttackRadius = agent.Machine().Config().AttackRadius
	}
	if brain, ok := ecs.Get(w, e, combat.BrainComponent.Kind()); ok && brain.Machine != nil {
		actor.State = brain.Machine.State()
		actor.Target = brain.Target
		actor.DetectionRadius = brain.DetectionRadius
		actor.AttackRadius = brain.Machine.Config().AttackRadius
	}
	return actor, true
}
