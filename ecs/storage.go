package ecs

// entityStore tracks slot generations, active flags and free ids.
type entityStore struct {
	gen    []generation
	alive  []bool
	active []bool
	free   []entityID
	count  int
}

func (s *entityStore) create() Entity {
	if s == nil {
		return 0
	}
	var id entityID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
		s.active = append(s.active, false)
		id = entityID(len(s.gen))
	}
	idx := int(id) - 1
	s.alive[idx] = true
	s.active[idx] = true
	s.count++
	return makeEntity(id, s.gen[idx])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := int(e.id()) - 1
	s.gen[idx]++
	s.alive[idx] = false
	s.active[idx] = false
	s.free = append(s.free, e.id())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil || !e.Valid() || int(e.id()) > len(s.gen) {
		return false
	}
	idx := int(e.id()) - 1
	return s.alive[idx] && s.gen[idx] == e.generation()
}

func (s *entityStore) setActive(e Entity, active bool) bool {
	if !s.isAlive(e) {
		return false
	}
	s.active[int(e.id())-1] = active
	return true
}

func (s *entityStore) isActive(e Entity) bool {
	return s.isAlive(e) && s.active[int(e.id())-1]
}

func (s *entityStore) all() []Entity {
	if s == nil {
		return nil
	}
	out := make([]Entity, 0, s.count)
	for i := range s.gen {
		if s.alive[i] {
			out = append(out, makeEntity(entityID(i+1), s.gen[i]))
		}
	}
	return out
}
