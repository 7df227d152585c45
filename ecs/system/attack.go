package system

import (
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
	"github.com/milk9111/autocombat/logging"
	"github.com/sirupsen/logrus"
)

// StrikeEvent is the payload of ecs.EventStrike.
type StrikeEvent struct {
	Attacker ecs.Entity
	Target   ecs.Entity
	Damage   float64
	Killed   bool
}

// DeathEvent is the payload of ecs.EventEntityDied.
type DeathEvent struct {
	Entity ecs.Entity
	Killer ecs.Entity
	Enemy  bool
}

// ApplyStrike lands attacker's blow on target: damage, an optional stun and
// the death handling. Dead enemies are destroyed; a dead player is only
// deactivated so its handle stays readable.
func ApplyStrike(w *ecs.World, attacker, target ecs.Entity) bool {
	if w == nil || !w.IsActive(attacker) || !w.IsActive(target) {
		return false
	}
	atk, ok := ecs.Get(w, attacker, component.AttackerComponent.Kind())
	if !ok {
		return false
	}
	atk.Strikes++

	killed := false
	if h, ok := ecs.Get(w, target, component.HealthComponent.Kind()); ok {
		killed = h.ApplyDamage(atk.Damage)
	}

	w.Events().Push(ecs.Event{Type: ecs.EventStrike, Data: StrikeEvent{
		Attacker: attacker,
		Target:   target,
		Damage:   atk.Damage,
		Killed:   killed,
	}})

	if !killed {
		if atk.StunDuration > 0 {
			_ = ecs.Add(w, target, component.StunRequestComponent.Kind(), &component.StunRequest{Duration: atk.StunDuration})
		}
		return true
	}

	enemy := ecs.Has(w, target, component.EnemyTagComponent.Kind())
	w.Events().Push(ecs.Event{Type: ecs.EventEntityDied, Data: DeathEvent{Entity: target, Killer: attacker, Enemy: enemy}})
	logging.For("combat").WithFields(logrus.Fields{
		"entity": target.String(),
		"killer": attacker.String(),
	}).Debug("entity died")

	if enemy {
		w.DestroyEntity(target)
	} else {
		w.SetActive(target, false)
	}
	return true
}

// ManualAttackSystem handles the attack button while auto-combat is off:
// strike the nearest enemy within reach, respecting the cooldown.
type ManualAttackSystem struct{}

func NewManualAttackSystem() *ManualAttackSystem {
	return &ManualAttackSystem{}
}

func (s *ManualAttackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()

	ecs.ForEach2(w, component.InputComponent.Kind(), component.AttackerComponent.Kind(), func(e ecs.Entity, input *component.Input, atk *component.Attacker) {
		if !input.AttackPressed || !w.IsActive(e) {
			return
		}
		if agent, ok := ecs.Get(w, e, combat.AutoCombatComponent.Kind()); ok && agent.Enabled() {
			return
		}
		if now < atk.NextStrikeAt {
			return
		}
		pos, ok := w.Position(e)
		if !ok {
			return
		}
		for _, target := range w.QueryNearby(pos, atk.Reach, component.TagEnemy) {
			if target == e {
				continue
			}
			if ApplyStrike(w, e, target) {
				atk.NextStrikeAt = now + atk.Cooldown
			}
			return
		}
	})
}
