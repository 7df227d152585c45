package ecs

import (
	"github.com/milk9111/autocombat/ecs/component"
)

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, components, system order and simulation time.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System
	events   EventQueue

	onDestroy []func(Entity)

	now float64
	dt  float64

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new, active entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity runs destroy listeners, drops every component and kills the
// handle. Returns false if the entity was already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, fn := range w.onDestroy {
		if fn != nil {
			fn(e)
		}
	}
	for _, set := range w.stores {
		set.Remove(e)
	}
	return w.entities.destroy(e)
}

// OnDestroy registers a listener called before an entity's components go away.
func (w *World) OnDestroy(fn func(Entity)) {
	if w == nil || fn == nil {
		return
	}
	w.onDestroy = append(w.onDestroy, fn)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// SetActive toggles an entity without destroying it.
func (w *World) SetActive(e Entity, active bool) bool {
	return w != nil && w.entities.setActive(e, active)
}

// IsActive reports whether e is alive and active.
func (w *World) IsActive(e Entity) bool {
	return w != nil && w.entities.isActive(e)
}

// Entities returns every alive entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Step advances simulation time by dt and runs all systems once.
func (w *World) Step(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.dt = dt
	w.now += dt
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.events.flush()
}

// Now returns the simulation time in seconds.
func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.now
}

// DeltaTime returns the duration of the current tick in seconds.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

func (w *World) store(id component.ComponentID) *SparseSet {
	set := w.stores[id]
	if set == nil {
		set = &SparseSet{}
		w.stores[id] = set
	}
	return set
}

func (w *World) addComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(id).Set(e, value)
	return nil
}

func (w *World) getComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	set := w.stores[id]
	if set == nil || !set.Has(e) {
		return nil, false
	}
	return set.Get(e), true
}

func (w *World) hasComponent(e Entity, id component.ComponentID) bool {
	_, ok := w.getComponent(e, id)
	return ok
}

func (w *World) removeComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	set := w.stores[id]
	if set == nil {
		return false
	}
	return set.Remove(e)
}
