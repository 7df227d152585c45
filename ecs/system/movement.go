package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/common"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
)

// MotorSystem turns the effective movement input into body velocity. Agents
// with auto-combat read their arbiter; everything else reads raw input.
type MotorSystem struct{}

func NewMotorSystem() *MotorSystem {
	return &MotorSystem{}
}

func (s *MotorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()

	ecs.ForEach(w, component.MotorComponent.Kind(), func(e ecs.Entity, motor *component.Motor) {
		if !w.IsActive(e) || motor.Halted {
			pw.SetVelocity(e, cp.Vector{})
			if !autoEnabled(w, e) {
				setWalking(w, e, false)
			}
			return
		}

		var move cp.Vector
		if agent, ok := ecs.Get(w, e, combat.AutoCombatComponent.Kind()); ok {
			move = agent.Input().Effective().Vec
		} else if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			move = input.MovementInput()
		}
		move = common.ClampMagnitude(move, 1)

		pw.SetVelocity(e, move.Mult(motor.Speed))
		face(w, e, move)
		// auto-combat hooks own the walk flag while enabled
		if !autoEnabled(w, e) {
			setWalking(w, e, move.LengthSq() > 0)
		}
	})
}

// NavSystem steers nav agents straight at their destination and stops them
// inside their stopping distance.
type NavSystem struct{}

func NewNavSystem() *NavSystem {
	return &NavSystem{}
}

func (s *NavSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()

	ecs.ForEach2(w, component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, nav *component.NavAgent, t *component.Transform) {
		if !w.IsActive(e) || nav.Stopped || !nav.HasDestination {
			pw.SetVelocity(e, cp.Vector{})
			return
		}
		if t.Position.Distance(nav.Destination) <= nav.StoppingDistance {
			pw.SetVelocity(e, cp.Vector{})
			return
		}
		dir := common.Direction(t.Position, nav.Destination)
		pw.SetVelocity(e, dir.Mult(nav.Speed))
		face(w, e, dir)
	})
}

func face(w *ecs.World, e ecs.Entity, dir cp.Vector) {
	if dir.X == 0 {
		return
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.FacingLeft = dir.X < 0
	}
}

func setWalking(w *ecs.World, e ecs.Entity, walking bool) {
	if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
		anim.SetBool(component.AnimWalk, walking)
	}
}

func autoEnabled(w *ecs.World, e ecs.Entity) bool {
	agent, ok := ecs.Get(w, e, combat.AutoCombatComponent.Kind())
	return ok && agent.Enabled()
}
