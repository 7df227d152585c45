package combat

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs"
)

// EnemyRegistry tracks live enemies for the global search fallback. The arena
// creates one per session; spawn registers and destruction unregisters.
type EnemyRegistry struct {
	order []ecs.Entity
	index map[ecs.Entity]int
}

func NewEnemyRegistry() *EnemyRegistry {
	return &EnemyRegistry{index: make(map[ecs.Entity]int)}
}

// Register adds e. Returns false if it was already present.
func (r *EnemyRegistry) Register(e ecs.Entity) bool {
	if r == nil || !e.Valid() {
		return false
	}
	if r.index == nil {
		r.index = make(map[ecs.Entity]int)
	}
	if _, ok := r.index[e]; ok {
		return false
	}
	r.index[e] = len(r.order)
	r.order = append(r.order, e)
	return true
}

// Unregister removes e, keeping the remaining insertion order.
func (r *EnemyRegistry) Unregister(e ecs.Entity) bool {
	if r == nil {
		return false
	}
	idx, ok := r.index[e]
	if !ok {
		return false
	}
	copy(r.order[idx:], r.order[idx+1:])
	r.order = r.order[:len(r.order)-1]
	delete(r.index, e)
	for i := idx; i < len(r.order); i++ {
		r.index[r.order[i]] = i
	}
	return true
}

func (r *EnemyRegistry) Contains(e ecs.Entity) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[e]
	return ok
}

func (r *EnemyRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Each visits registered entities in insertion order until fn returns false.
func (r *EnemyRegistry) Each(fn func(e ecs.Entity) bool) {
	if r == nil || fn == nil {
		return
	}
	for _, e := range append([]ecs.Entity(nil), r.order...) {
		if !fn(e) {
			return
		}
	}
}

func (r *EnemyRegistry) Entities() []ecs.Entity {
	if r == nil {
		return nil
	}
	return append([]ecs.Entity(nil), r.order...)
}

// Nearest returns the closest registered entity that is alive and active,
// skipping exclude. Weights play no part.
func (r *EnemyRegistry) Nearest(from cp.Vector, resolver EntityResolver, exclude ...ecs.Entity) (ecs.Entity, float64, bool) {
	if r == nil || resolver == nil {
		return 0, 0, false
	}
	var (
		best     ecs.Entity
		bestDist = math.MaxFloat64
		found    bool
	)
outer:
	for _, e := range r.order {
		for _, x := range exclude {
			if e == x {
				continue outer
			}
		}
		if !resolver.IsActive(e) {
			continue
		}
		pos, ok := resolver.Position(e)
		if !ok {
			continue
		}
		if d := pos.Distance(from); d < bestDist {
			best, bestDist, found = e, d, true
		}
	}
	if !found {
		return 0, 0, false
	}
	return best, bestDist, true
}
