package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs/component"
)

// Position resolves an entity's ground-plane position from its Transform.
// Dead entities never resolve.
func (w *World) Position(e Entity) (cp.Vector, bool) {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return t.Position, true
}

// QueryNearby forwards to the attached physics world and drops anything that
// died or was deactivated since the last physics step.
func (w *World) QueryNearby(center cp.Vector, radius float64, tag component.Tag) []Entity {
	if w == nil || w.physicsWorld == nil {
		return nil
	}
	found := w.physicsWorld.QueryNearby(center, radius, tag)
	out := found[:0]
	for _, e := range found {
		if w.IsActive(e) {
			out = append(out, e)
		}
	}
	return out
}
