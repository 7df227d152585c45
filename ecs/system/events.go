package system

import (
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
)

// StateChangeEvent is the payload of ecs.EventStateChanged.
type StateChangeEvent struct {
	Entity     ecs.Entity
	Transition combat.Transition
}

// TargetEvent is the payload of ecs.EventTargetChanged.
type TargetEvent struct {
	Entity ecs.Entity
	Change combat.TargetChange
}

// PublishTransitions forwards m's transitions to the world event queue.
func PublishTransitions(w *ecs.World, e ecs.Entity, m *combat.StateMachine) {
	if w == nil || m == nil {
		return
	}
	m.OnTransition(func(t combat.Transition) {
		w.Events().Push(ecs.Event{Type: ecs.EventStateChanged, Data: StateChangeEvent{Entity: e, Transition: t}})
	})
}

// PublishTargetChanges forwards t's target changes to the world event queue.
func PublishTargetChanges(w *ecs.World, e ecs.Entity, t *combat.Targeter) {
	if w == nil || t == nil {
		return
	}
	t.OnTargetChanged(func(c combat.TargetChange) {
		w.Events().Push(ecs.Event{Type: ecs.EventTargetChanged, Data: TargetEvent{Entity: e, Change: c}})
	})
}
