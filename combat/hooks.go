package combat

import "github.com/milk9111/autocombat/ecs/component"

// Hook runs on a state boundary.
type Hook func(from, to State)

type HookSet struct {
	OnEnter []Hook
	OnExit  []Hook
}

// Hooks maps a state to the hooks run when entering and leaving it.
type Hooks map[State]*HookSet

func (h Hooks) set(s State) *HookSet {
	hs := h[s]
	if hs == nil {
		hs = &HookSet{}
		h[s] = hs
	}
	return hs
}

func (h Hooks) AddEnter(s State, fn Hook) Hooks {
	if h == nil || fn == nil {
		return h
	}
	hs := h.set(s)
	hs.OnEnter = append(hs.OnEnter, fn)
	return h
}

func (h Hooks) AddExit(s State, fn Hook) Hooks {
	if h == nil || fn == nil {
		return h
	}
	hs := h.set(s)
	hs.OnExit = append(hs.OnExit, fn)
	return h
}

// Merge appends other's hooks after h's, state by state.
func (h Hooks) Merge(other Hooks) Hooks {
	if h == nil {
		h = Hooks{}
	}
	for s, hs := range other {
		if hs == nil {
			continue
		}
		for _, fn := range hs.OnEnter {
			h.AddEnter(s, fn)
		}
		for _, fn := range hs.OnExit {
			h.AddExit(s, fn)
		}
	}
	return h
}

func (h Hooks) runEnter(from, to State) {
	if hs := h[to]; hs != nil {
		for _, fn := range hs.OnEnter {
			fn(from, to)
		}
	}
}

func (h Hooks) runExit(from, to State) {
	if hs := h[from]; hs != nil {
		for _, fn := range hs.OnExit {
			fn(from, to)
		}
	}
}

// DefaultHooks wires the standard animation flags and stun movement halt.
// Either collaborator may be nil.
func DefaultHooks(anim AnimationSink, mover Mover) Hooks {
	setFlags := func(attack, walk bool) Hook {
		return func(State, State) {
			if anim == nil {
				return
			}
			anim.SetBool(component.AnimAttack, attack)
			anim.SetBool(component.AnimWalk, walk)
		}
	}
	h := Hooks{}
	h.AddEnter(StateAttack, setFlags(true, false))
	h.AddEnter(StateChase, setFlags(false, true))
	h.AddEnter(StateIdle, setFlags(false, false))
	h.AddEnter(StateStunned, func(State, State) {
		if mover != nil {
			mover.Halt()
		}
	})
	h.AddExit(StateStunned, func(State, State) {
		if mover != nil {
			mover.Resume()
		}
	})
	return h
}
