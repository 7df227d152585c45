package combat

import (
	"context"

	"github.com/looplab/fsm"
)

// State is one combat state. Exactly one is active per agent.
type State string

const (
	StateIdle    State = "idle"
	StateChase   State = "chase"
	StateAttack  State = "attack"
	StateStunned State = "stunned"
)

// ParseState maps a state name from config to a State.
func ParseState(name string) (State, bool) {
	switch s := State(name); s {
	case StateIdle, StateChase, StateAttack, StateStunned:
		return s, true
	}
	return "", false
}

const (
	eventAcquire       = "acquire"
	eventEngage        = "engage"
	eventDisengage     = "disengage"
	eventLose          = "lose"
	eventStun          = "stun"
	eventReset         = "reset"
	eventRecoverPrefix = "recover_"
)

// MachineConfig holds the distance thresholds driving Chase and Attack.
type MachineConfig struct {
	AttackRadius float64
	Hysteresis   float64
}

func DefaultMachineConfig() MachineConfig {
	return MachineConfig{AttackRadius: 2, Hysteresis: 1.2}
}

func (c MachineConfig) normalized() MachineConfig {
	if c.AttackRadius <= 0 {
		c.AttackRadius = DefaultMachineConfig().AttackRadius
	}
	if c.Hysteresis < 1 {
		c.Hysteresis = 1
	}
	return c
}

// Transition describes one state change.
type Transition struct {
	From State
	To   State
	At   float64
}

// StateMachine is the per-agent combat state machine. The transition table
// lives in a looplab/fsm; entry and exit hooks run from its callbacks so side
// effects follow state and nothing else.
type StateMachine struct {
	cfg   MachineConfig
	fsm   *fsm.FSM
	hooks Hooks

	listeners []func(Transition)

	preStun      State
	stunStart    float64
	stunDuration float64

	generation uint64
	enteredAt  float64
	now        float64
}

func NewStateMachine(cfg MachineConfig, hooks Hooks) *StateMachine {
	m := &StateMachine{cfg: cfg.normalized(), hooks: hooks, preStun: StateIdle}
	m.fsm = fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: eventAcquire, Src: []string{string(StateIdle)}, Dst: string(StateChase)},
			{Name: eventEngage, Src: []string{string(StateChase)}, Dst: string(StateAttack)},
			{Name: eventDisengage, Src: []string{string(StateAttack)}, Dst: string(StateChase)},
			{Name: eventLose, Src: []string{string(StateChase), string(StateAttack)}, Dst: string(StateIdle)},
			{Name: eventStun, Src: []string{string(StateIdle), string(StateChase), string(StateAttack)}, Dst: string(StateStunned)},
			{Name: eventRecoverPrefix + string(StateIdle), Src: []string{string(StateStunned)}, Dst: string(StateIdle)},
			{Name: eventRecoverPrefix + string(StateChase), Src: []string{string(StateStunned)}, Dst: string(StateChase)},
			{Name: eventRecoverPrefix + string(StateAttack), Src: []string{string(StateStunned)}, Dst: string(StateAttack)},
			{Name: eventReset, Src: []string{string(StateChase), string(StateAttack)}, Dst: string(StateIdle)},
		},
		fsm.Callbacks{
			"leave_state": func(_ context.Context, e *fsm.Event) {
				m.hooks.runExit(State(e.Src), State(e.Dst))
			},
			"enter_state": func(_ context.Context, e *fsm.Event) {
				m.generation++
				m.enteredAt = m.now
				from, to := State(e.Src), State(e.Dst)
				m.hooks.runEnter(from, to)
				t := Transition{From: from, To: to, At: m.now}
				for _, fn := range m.listeners {
					fn(t)
				}
			},
		},
	)
	return m
}

// State returns the active state.
func (m *StateMachine) State() State {
	if m == nil || m.fsm == nil {
		return StateIdle
	}
	return State(m.fsm.Current())
}

func (m *StateMachine) Config() MachineConfig {
	if m == nil {
		return DefaultMachineConfig()
	}
	return m.cfg
}

func (m *StateMachine) SetConfig(cfg MachineConfig) {
	if m != nil {
		m.cfg = cfg.normalized()
	}
}

// SetHooks replaces the hook table. Hooks already fired are not replayed.
func (m *StateMachine) SetHooks(h Hooks) {
	if m != nil {
		m.hooks = h
	}
}

// OnTransition registers a listener called after every state change.
func (m *StateMachine) OnTransition(fn func(Transition)) {
	if m == nil || fn == nil {
		return
	}
	m.listeners = append(m.listeners, fn)
}

// Generation increases by one on every transition. Deadlines scheduled under
// an older generation never fire.
func (m *StateMachine) Generation() uint64 {
	if m == nil {
		return 0
	}
	return m.generation
}

// EnteredAt is the time the current state was entered.
func (m *StateMachine) EnteredAt() float64 {
	if m == nil {
		return 0
	}
	return m.enteredAt
}

func (m *StateMachine) IsStunned() bool {
	return m.State() == StateStunned
}

// StunRemaining returns the seconds left on the active stun.
func (m *StateMachine) StunRemaining(now float64) float64 {
	if !m.IsStunned() {
		return 0
	}
	left := m.stunStart + m.stunDuration - now
	if left < 0 {
		return 0
	}
	return left
}

// Update performs at most one transition for this tick. hasTarget says
// whether a committed target exists after the targeting pass and distance is
// the agent-to-target distance.
func (m *StateMachine) Update(now float64, hasTarget bool, distance float64) bool {
	if m == nil || m.fsm == nil {
		return false
	}
	m.now = now

	switch m.State() {
	case StateStunned:
		if now >= m.stunStart+m.stunDuration {
			return m.fire(eventRecoverPrefix + string(m.preStun))
		}
		return false
	case StateIdle:
		if hasTarget {
			return m.fire(eventAcquire)
		}
	case StateChase:
		if !hasTarget {
			return m.fire(eventLose)
		}
		if distance <= m.cfg.AttackRadius {
			return m.fire(eventEngage)
		}
	case StateAttack:
		if !hasTarget {
			return m.fire(eventLose)
		}
		if distance > m.cfg.AttackRadius*m.cfg.Hysteresis {
			return m.fire(eventDisengage)
		}
	}
	return false
}

// Stun enters Stunned for duration seconds. A stun that arrives while already
// stunned, or with a non-positive duration, is ignored.
func (m *StateMachine) Stun(now, duration float64) bool {
	if m == nil || m.fsm == nil || duration <= 0 || m.IsStunned() {
		return false
	}
	m.now = now
	prev := m.State()
	m.preStun = prev
	m.stunStart = now
	m.stunDuration = duration
	if !m.fire(eventStun) {
		m.preStun = StateIdle
		return false
	}
	return true
}

// Reset forces Idle, running exit and entry hooks when the state changes. A
// running stun is left alone but will recover into Idle.
func (m *StateMachine) Reset(now float64) bool {
	if m == nil || m.fsm == nil {
		return false
	}
	m.now = now
	m.preStun = StateIdle
	if m.IsStunned() {
		return false
	}
	return m.fire(eventReset)
}

func (m *StateMachine) fire(event string) bool {
	if !m.fsm.Can(event) {
		return false
	}
	return m.fsm.Event(context.Background(), event) == nil
}
