package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysicsSystemWritesTransforms(t *testing.T) {
	w := newPhysicsWorld()
	e := spawnBody(t, w, 0, 0, component.TagPlayer)
	w.PhysicsWorld().SetVelocity(e, cp.Vector{X: 6})

	ps := NewPhysicsSystem()
	w.AddSystem(ps)
	for i := 0; i < 30; i++ {
		w.Step(dt)
	}

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 3, tr.Position.X, 0.2)
	assert.InDelta(t, 30, ps.Steps(), 1)
}

func TestPhysicsSystemClampsToBounds(t *testing.T) {
	w := newPhysicsWorld()
	e := spawnBody(t, w, 0, 0, component.TagPlayer)
	body, ok := w.PhysicsWorld().Body(e)
	require.True(t, ok)
	body.SetPosition(cp.Vector{X: 10, Y: -10})
	body.SetVelocityVector(cp.Vector{X: 5})

	ps := NewPhysicsSystem()
	ps.SetBounds(cp.BB{L: -5, B: -5, R: 5, T: 5})
	w.AddSystem(ps)
	w.Step(dt)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 4.5, tr.Position.X, 1e-9)
	assert.InDelta(t, -4.5, tr.Position.Y, 1e-9)
	assert.Equal(t, cp.Vector{}, body.Velocity())
}

func TestPhysicsSystemEmptyBoundsDisableClamp(t *testing.T) {
	w := newPhysicsWorld()
	e := spawnBody(t, w, 50, 0, component.TagPlayer)

	ps := NewPhysicsSystem()
	ps.SetBounds(cp.BB{})
	w.AddSystem(ps)
	w.Step(dt)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 50, tr.Position.X, 1e-9)
}
