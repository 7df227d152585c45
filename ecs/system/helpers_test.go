package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

func newPhysicsWorld() *ecs.World {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(ecs.DefaultPhysicsStep))
	return w
}

// spawnBody creates an entity with a transform and a physics body.
func spawnBody(t *testing.T, w *ecs.World, x, y float64, tag component.Tag) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	pos := cp.Vector{X: x, Y: y}
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	require.NoError(t, ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Radius: 0.5, Tag: tag}))
	w.PhysicsWorld().AddBody(e, pos, 0.5, tag)
	switch tag {
	case component.TagPlayer:
		require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	case component.TagEnemy:
		require.NoError(t, ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}))
	}
	return e
}

func velocity(t *testing.T, w *ecs.World, e ecs.Entity) cp.Vector {
	t.Helper()
	body, ok := w.PhysicsWorld().Body(e)
	require.True(t, ok)
	return body.Velocity()
}

func eventTypes(w *ecs.World) []string {
	var out []string
	for _, evt := range w.Events().Peek() {
		out = append(out, evt.Type)
	}
	return out
}
