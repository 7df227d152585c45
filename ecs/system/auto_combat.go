package system

import (
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
)

// AutoCombatSystem ticks every auto-combat agent. It applies the per-frame
// toggles from the agent's Input and consumes pending stun requests first.
type AutoCombatSystem struct{}

func NewAutoCombatSystem() *AutoCombatSystem {
	return &AutoCombatSystem{}
}

func (s *AutoCombatSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()

	ecs.ForEach(w, combat.AutoCombatComponent.Kind(), func(e ecs.Entity, agent *combat.AutoCombat) {
		if !w.IsActive(e) {
			if agent.Enabled() {
				agent.SetEnabled(false, now)
			}
			return
		}

		// enabling already runs this frame's pass
		justEnabled := false
		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			if input.ToggleAuto {
				agent.SetEnabled(!agent.Enabled(), now)
				justEnabled = agent.Enabled()
			}
			if input.ToggleGlobal {
				agent.SetGlobalSearch(!agent.GlobalSearch(), now)
			}
		}

		if req, ok := ecs.Get(w, e, component.StunRequestComponent.Kind()); ok {
			agent.Stun(now, req.Duration)
			ecs.Remove(w, e, component.StunRequestComponent.Kind())
		}

		if !justEnabled {
			agent.Tick(now)
		}
	})
}
