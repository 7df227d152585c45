package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeEnemy
	collisionTypeDynamic
)

const (
	categoryPlayer uint = 1 << iota
	categoryEnemy
	categoryOther
)

// DefaultPhysicsStep is the fixed physics step in seconds.
const DefaultPhysicsStep = 1.0 / 60.0

// PhysicsWorld owns the Chipmunk space. It resolves body overlap and answers
// radius queries filtered by tag.
type PhysicsWorld struct {
	space *cp.Space
	step  float64
	accum float64

	shapeToEntity map[*cp.Shape]Entity
	entityShape   map[Entity]*cp.Shape
}

// NewPhysicsWorld creates a gravity-free top-down space with a fixed step.
func NewPhysicsWorld(step float64) *PhysicsWorld {
	if step <= 0 {
		step = DefaultPhysicsStep
	}
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	return &PhysicsWorld{
		space:         space,
		step:          step,
		shapeToEntity: make(map[*cp.Shape]Entity),
		entityShape:   make(map[Entity]*cp.Shape),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddBody creates a circle body for e at pos. Calling it twice for the same
// entity moves the existing body instead; the spatial index catches up on
// the next step.
func (pw *PhysicsWorld) AddBody(e Entity, pos cp.Vector, radius float64, tag component.Tag) *cp.Body {
	if pw == nil || pw.space == nil || !e.Valid() {
		return nil
	}
	if shape, ok := pw.entityShape[e]; ok {
		body := shape.Body()
		body.SetPosition(pos)
		return body
	}
	if radius <= 0 {
		radius = 0.5
	}

	mass := 1.0
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(pos)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)

	switch tag {
	case component.TagEnemy:
		shape.SetCollisionType(collisionTypeEnemy)
		shape.SetFilter(cp.ShapeFilter{Group: 0, Categories: categoryEnemy, Mask: ^uint(0)})
	case component.TagPlayer:
		shape.SetCollisionType(collisionTypePlayer)
		shape.SetFilter(cp.ShapeFilter{Group: 0, Categories: categoryPlayer, Mask: ^uint(0)})
	default:
		shape.SetCollisionType(collisionTypeDynamic)
		shape.SetFilter(cp.ShapeFilter{Group: 0, Categories: categoryOther, Mask: ^uint(0)})
	}

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	pw.entityShape[e] = shape
	return body
}

// RemoveBody drops e's body and shape from the space.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	shape, ok := pw.entityShape[e]
	if !ok {
		return
	}
	body := shape.Body()
	pw.space.RemoveShape(shape)
	if body != nil {
		pw.space.RemoveBody(body)
	}
	delete(pw.shapeToEntity, shape)
	delete(pw.entityShape, e)
}

// Body returns the body owned by e.
func (pw *PhysicsWorld) Body(e Entity) (*cp.Body, bool) {
	if pw == nil {
		return nil, false
	}
	shape, ok := pw.entityShape[e]
	if !ok || shape.Body() == nil {
		return nil, false
	}
	return shape.Body(), true
}

// SetVelocity sets the linear velocity of e's body.
func (pw *PhysicsWorld) SetVelocity(e Entity, v cp.Vector) {
	if body, ok := pw.Body(e); ok {
		body.SetVelocityVector(v)
	}
}

// Position returns the current position of e's body.
func (pw *PhysicsWorld) Position(e Entity) (cp.Vector, bool) {
	body, ok := pw.Body(e)
	if !ok {
		return cp.Vector{}, false
	}
	return body.Position(), true
}

// Advance consumes dt in fixed steps and returns how many steps ran.
func (pw *PhysicsWorld) Advance(dt float64) int {
	if pw == nil || pw.space == nil || dt <= 0 {
		return 0
	}
	pw.accum += dt
	steps := 0
	for pw.accum >= pw.step {
		pw.space.Step(pw.step)
		pw.accum -= pw.step
		steps++
	}
	return steps
}

// QueryNearby returns entities tagged tag whose body centre lies within
// radius of center, nearest first.
func (pw *PhysicsWorld) QueryNearby(center cp.Vector, radius float64, tag component.Tag) []Entity {
	if pw == nil || pw.space == nil || radius <= 0 {
		return nil
	}
	type hit struct {
		e    Entity
		dist float64
	}
	var hits []hit
	filter := cp.ShapeFilter{Group: 0, Categories: ^uint(0), Mask: categoryFor(tag)}
	pw.space.BBQuery(cp.NewBBForCircle(center, radius), filter, func(shape *cp.Shape, _ interface{}) {
		e, ok := pw.shapeToEntity[shape]
		if !ok || shape.Body() == nil {
			return
		}
		d := shape.Body().Position().Distance(center)
		if d > radius {
			return
		}
		hits = append(hits, hit{e: e, dist: d})
	}, nil)

	// insertion sort; hit counts stay small
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].dist < hits[j-1].dist; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	out := make([]Entity, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.e)
	}
	return out
}

func categoryFor(tag component.Tag) uint {
	switch tag {
	case component.TagEnemy:
		return categoryEnemy
	case component.TagPlayer:
		return categoryPlayer
	case "":
		return ^uint(0)
	default:
		return categoryOther
	}
}
