package combat

import (
	"testing"

	"github.com/milk9111/autocombat/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine() *StateMachine {
	return NewStateMachine(MachineConfig{AttackRadius: 3, Hysteresis: 1.2}, nil)
}

func TestStateMachineTransitions(t *testing.T) {
	cases := []struct {
		name      string
		start     []float64 // distances fed to reach the start state; -1 = no target
		hasTarget bool
		distance  float64
		want      State
	}{
		{"idle_stays_without_target", nil, false, 0, StateIdle},
		{"idle_to_chase_one_step", nil, true, 1, StateChase},
		{"chase_to_attack_at_radius", []float64{5}, true, 3, StateAttack},
		{"chase_stays_outside", []float64{5}, true, 3.01, StateChase},
		{"chase_to_idle", []float64{5}, false, 0, StateIdle},
		{"attack_holds_inside_band", []float64{5, 2}, true, 3.5, StateAttack},
		{"attack_to_chase_past_band", []float64{5, 2}, true, 3.7, StateChase},
		{"attack_to_idle", []float64{5, 2}, false, 0, StateIdle},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := newMachine()
			now := 0.0
			for _, d := range c.start {
				now += 0.1
				m.Update(now, true, d)
			}
			m.Update(now+0.1, c.hasTarget, c.distance)
			assert.Equal(t, c.want, m.State())
		})
	}
}

func TestStateMachineStunRoundTrip(t *testing.T) {
	for _, prev := range []State{StateIdle, StateChase, StateAttack} {
		t.Run(string(prev), func(t *testing.T) {
			m := newMachine()
			switch prev {
			case StateChase:
				m.Update(0, true, 5)
			case StateAttack:
				m.Update(0, true, 5)
				m.Update(0, true, 1)
			}
			require.Equal(t, prev, m.State())

			require.True(t, m.Stun(1.0, 0.5))
			assert.Equal(t, StateStunned, m.State())

			m.Update(1.4999, false, 0)
			assert.Equal(t, StateStunned, m.State())

			// restored even though no target is available anymore
			m.Update(1.5, false, 0)
			assert.Equal(t, prev, m.State())
		})
	}
}

func TestStateMachineStunIgnoredWhileStunned(t *testing.T) {
	m := newMachine()
	require.True(t, m.Stun(0, 1))
	assert.False(t, m.Stun(0.5, 10))
	assert.False(t, newMachine().Stun(0, 0))

	m.Update(1, false, 0)
	assert.Equal(t, StateIdle, m.State())
}

func TestStateMachineGenerationAndListeners(t *testing.T) {
	m := newMachine()
	var seen []Transition
	m.OnTransition(func(tr Transition) { seen = append(seen, tr) })

	g0 := m.Generation()
	m.Update(1, true, 5)
	m.Update(2, true, 1)
	m.Update(3, true, 1)

	assert.Equal(t, g0+2, m.Generation())
	require.Len(t, seen, 2)
	assert.Equal(t, Transition{From: StateIdle, To: StateChase, At: 1}, seen[0])
	assert.Equal(t, Transition{From: StateChase, To: StateAttack, At: 2}, seen[1])
	assert.Equal(t, 2.0, m.EnteredAt())
}

func TestDefaultHooksDriveAnimationAndMovement(t *testing.T) {
	anim := component.NewAnimator()
	mover := &fakeMover{}
	m := NewStateMachine(MachineConfig{AttackRadius: 3, Hysteresis: 1.2}, DefaultHooks(anim, mover))

	m.Update(0, true, 5)
	assert.True(t, anim.Bool(component.AnimWalk))
	assert.False(t, anim.Bool(component.AnimAttack))

	m.Update(0.1, true, 1)
	assert.True(t, anim.Bool(component.AnimAttack))
	assert.False(t, anim.Bool(component.AnimWalk))

	m.Stun(0.25, 1)
	assert.Equal(t, 1, mover.halts)
	assert.Zero(t, mover.resumes)

	m.Update(1.25, true, 1)
	assert.Equal(t, 1, mover.resumes)
	assert.True(t, anim.Bool(component.AnimAttack), "re-entering Attack re-applies its flags")

	m.Update(1.5, false, 0)
	assert.Empty(t, anim.Active())
}

func TestStateMachineReset(t *testing.T) {
	m := newMachine()
	m.Update(0, true, 5)
	require.True(t, m.Reset(1))
	assert.Equal(t, StateIdle, m.State())
	assert.False(t, m.Reset(2), "already idle")

	m.Update(3, true, 5)
	m.Stun(4, 1)
	assert.False(t, m.Reset(4.5))
	assert.Equal(t, StateStunned, m.State())
	m.Update(5, true, 5)
	assert.Equal(t, StateIdle, m.State(), "a reset during stun recovers into Idle")
}

func TestHooksMergeOrder(t *testing.T) {
	var order []string
	base := Hooks{}.AddEnter(StateChase, func(State, State) { order = append(order, "base") })
	extra := Hooks{}.AddEnter(StateChase, func(State, State) { order = append(order, "extra") })
	m := NewStateMachine(DefaultMachineConfig(), base.Merge(extra))

	m.Update(0, true, 10)
	assert.Equal(t, []string{"base", "extra"}, order)
}
