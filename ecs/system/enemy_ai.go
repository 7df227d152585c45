package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
)

// EnemyAISystem runs each enemy's combat state machine against the player.
// Evaluation is throttled by distance; stun recovery and strike timing are
// checked every frame.
type EnemyAISystem struct{}

func NewEnemyAISystem() *EnemyAISystem {
	return &EnemyAISystem{}
}

func (s *EnemyAISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()

	var playerPos cp.Vector
	player, playerFound := w.First(component.PlayerTagComponent.Kind())
	if playerFound && w.IsActive(player) {
		playerPos, playerFound = w.Position(player)
	} else {
		playerFound = false
	}

	ecs.ForEach2(w, combat.BrainComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, brain *combat.Brain, t *component.Transform) {
		if !w.IsActive(e) || brain.Machine == nil {
			return
		}
		m := brain.Machine

		if req, ok := ecs.Get(w, e, component.StunRequestComponent.Kind()); ok {
			m.Stun(now, req.Duration)
			ecs.Remove(w, e, component.StunRequestComponent.Kind())
		}

		dist := 0.0
		if playerFound {
			dist = t.Position.Distance(playerPos)
		}
		brain.LastDistance = dist

		if m.IsStunned() {
			m.Update(now, playerFound, dist)
			s.sync(w, e, brain)
			return
		}

		s.strike(w, e, brain, player, playerFound, now)

		if th, ok := ecs.Get(w, e, component.ThrottleComponent.Kind()); ok {
			th.Retune(dist)
			if !th.Ready() {
				return
			}
		}

		reach := brain.DetectionRadius
		if m.State() != combat.StateIdle {
			reach *= m.Config().Hysteresis
		}
		hasTarget := playerFound && dist <= reach
		m.Update(now, hasTarget, dist)
		s.sync(w, e, brain)

		brain.InRange = hasTarget
		if hasTarget {
			brain.Target = player
		} else {
			brain.Target = 0
		}

		if nav, ok := ecs.Get(w, e, component.NavAgentComponent.Kind()); ok {
			if m.State() == combat.StateChase && hasTarget {
				nav.SetDestination(playerPos)
			} else {
				nav.ClearDestination()
			}
		}
	})
}

// sync arms the first strike when the machine has just entered Attack.
func (s *EnemyAISystem) sync(w *ecs.World, e ecs.Entity, brain *combat.Brain) {
	gen := brain.Machine.Generation()
	if gen == brain.Generation {
		return
	}
	brain.Generation = gen
	if brain.Machine.State() != combat.StateAttack {
		return
	}
	if atk, ok := ecs.Get(w, e, component.AttackerComponent.Kind()); ok {
		atk.NextStrikeAt = brain.Machine.EnteredAt() + atk.Delay
	}
}

func (s *EnemyAISystem) strike(w *ecs.World, e ecs.Entity, brain *combat.Brain, player ecs.Entity, playerFound bool, now float64) {
	if !playerFound || brain.Machine.State() != combat.StateAttack {
		return
	}
	atk, ok := ecs.Get(w, e, component.AttackerComponent.Kind())
	if !ok || now < atk.NextStrikeAt {
		return
	}
	limit := brain.Machine.Config().AttackRadius * brain.Machine.Config().Hysteresis
	if brain.LastDistance > limit {
		return
	}
	if ApplyStrike(w, e, player) {
		atk.NextStrikeAt = now + atk.Cooldown
	}
}
