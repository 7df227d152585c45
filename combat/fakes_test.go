package combat

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
)

// fakeWorld is a flat position table standing in for the arena.
type fakeWorld struct {
	next     uint64
	order    []ecs.Entity
	pos      map[ecs.Entity]cp.Vector
	inactive map[ecs.Entity]bool
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{pos: map[ecs.Entity]cp.Vector{}, inactive: map[ecs.Entity]bool{}}
}

func (f *fakeWorld) spawn(x, y float64) ecs.Entity {
	f.next++
	e := ecs.Entity(f.next)
	f.order = append(f.order, e)
	f.pos[e] = cp.Vector{X: x, Y: y}
	return e
}

func (f *fakeWorld) move(e ecs.Entity, x, y float64) {
	f.pos[e] = cp.Vector{X: x, Y: y}
}

func (f *fakeWorld) kill(e ecs.Entity) {
	delete(f.pos, e)
}

func (f *fakeWorld) IsActive(e ecs.Entity) bool {
	_, ok := f.pos[e]
	return ok && !f.inactive[e]
}

func (f *fakeWorld) Position(e ecs.Entity) (cp.Vector, bool) {
	p, ok := f.pos[e]
	return p, ok
}

func (f *fakeWorld) QueryNearby(center cp.Vector, radius float64, _ component.Tag) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range f.order {
		p, ok := f.pos[e]
		if ok && p.Distance(center) <= radius {
			out = append(out, e)
		}
	}
	return out
}

type fakeMover struct {
	halts, resumes int
}

func (m *fakeMover) Halt()   { m.halts++ }
func (m *fakeMover) Resume() { m.resumes++ }

type fakeStick struct{ v cp.Vector }

func (s *fakeStick) MovementInput() cp.Vector { return s.v }
