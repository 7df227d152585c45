package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/common"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
)

// PhysicsSystem steps the chipmunk space and copies body positions back into
// Transforms, keeping everything inside the arena bounds.
type PhysicsSystem struct {
	bounds    cp.BB
	hasBounds bool
	steps     int
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

// SetBounds limits bodies to bb. An empty box disables clamping.
func (p *PhysicsSystem) SetBounds(bb cp.BB) {
	if p == nil {
		return
	}
	p.bounds = bb
	p.hasBounds = bb.R > bb.L && bb.T > bb.B
}

// Steps is the number of fixed physics steps run so far.
func (p *PhysicsSystem) Steps() int {
	if p == nil {
		return 0
	}
	return p.steps
}

func (p *PhysicsSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	p.steps += pw.Advance(w.DeltaTime())

	ecs.ForEach2(w, component.BodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Body, t *component.Transform) {
		body, ok := pw.Body(e)
		if !ok {
			return
		}
		pos := body.Position()
		if p.hasBounds {
			clamped := cp.Vector{
				X: common.Clamp(pos.X, p.bounds.L+b.Radius, p.bounds.R-b.Radius),
				Y: common.Clamp(pos.Y, p.bounds.B+b.Radius, p.bounds.T-b.Radius),
			}
			if clamped != pos {
				body.SetPosition(clamped)
				body.SetVelocityVector(cp.Vector{})
				pos = clamped
			}
		}
		t.Position = pos
	})
}
