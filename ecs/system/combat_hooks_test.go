package system

import (
	"testing"

	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
	"github.com/milk9111/autocombat/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileHooksRunsActions(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	anim := component.NewAnimator()
	anim.SetBool("Dodge", true)
	motor := &component.Motor{}

	spec := &prefabs.HookSpec{States: map[string]prefabs.HookStateSpec{
		"chase": {
			OnEnter: []map[string]any{
				{"set_bool": map[string]any{"name": "Hunting", "value": true}},
				{"clear_bools": []any{"Dodge"}},
				{"emit": "chase_started"},
			},
			OnExit: []map[string]any{
				{"halt_movement": true},
				{"log": "left chase"},
			},
		},
	}}
	hooks, err := CompileHooks(spec, &HookContext{World: w, Entity: e, Animation: anim, Mover: motor})
	require.NoError(t, err)

	m := combat.NewStateMachine(combat.DefaultMachineConfig(), hooks)
	require.True(t, m.Update(0, true, 5))

	assert.True(t, anim.Bool("Hunting"))
	assert.False(t, anim.Bool("Dodge"))
	require.Len(t, w.Events().Peek(), 1)
	evt := w.Events().Peek()[0]
	assert.Equal(t, "chase_started", evt.Type)
	assert.Equal(t, HookEvent{Entity: e, From: combat.StateIdle, To: combat.StateChase}, evt.Data)
	assert.False(t, motor.Halted)

	require.True(t, m.Update(1, false, 0))
	assert.True(t, motor.Halted)
}

func TestCompileHooksErrors(t *testing.T) {
	tests := []struct {
		name string
		spec *prefabs.HookSpec
		want string
	}{
		{
			name: "unknown action",
			spec: &prefabs.HookSpec{States: map[string]prefabs.HookStateSpec{
				"idle": {OnEnter: []map[string]any{{"explode": true}}},
			}},
			want: `unknown action "explode"`,
		},
		{
			name: "unknown state",
			spec: &prefabs.HookSpec{States: map[string]prefabs.HookStateSpec{
				"dancing": {},
			}},
			want: `unknown state "dancing"`,
		},
		{
			name: "bad set_bool",
			spec: &prefabs.HookSpec{States: map[string]prefabs.HookStateSpec{
				"attack": {OnEnter: []map[string]any{{"set_bool": "Attack"}}},
			}},
			want: "set_bool",
		},
		{
			name: "emit without name",
			spec: &prefabs.HookSpec{States: map[string]prefabs.HookStateSpec{
				"attack": {OnExit: []map[string]any{{"emit": ""}}},
			}},
			want: "emit: missing event name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileHooks(tt.spec, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompileHooksNilSpec(t *testing.T) {
	hooks, err := CompileHooks(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, hooks)
}

func TestHookActionNames(t *testing.T) {
	assert.Equal(t, []string{"clear_bools", "emit", "halt_movement", "log", "resume_movement", "set_bool"}, HookActionNames())
}

func TestCompileHooksFromPrefab(t *testing.T) {
	prev := prefabs.Dir
	prefabs.Dir = t.TempDir()
	t.Cleanup(func() { prefabs.Dir = prev })

	spec, err := prefabs.LoadHookSpec("enemy_hooks.yaml")
	require.NoError(t, err)
	nav := &component.NavAgent{}
	hooks, err := CompileHooks(spec, &HookContext{Mover: nav})
	require.NoError(t, err)

	m := combat.NewStateMachine(combat.MachineConfig{AttackRadius: 3, Hysteresis: 1.2}, hooks)
	m.Update(0, true, 2)
	m.Update(0.1, true, 2)
	require.Equal(t, combat.StateAttack, m.State())
	assert.True(t, nav.Stopped)

	m.Update(0.2, true, 10)
	require.Equal(t, combat.StateChase, m.State())
	assert.False(t, nav.Stopped)
}
