package arena

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
	"github.com/milk9111/autocombat/ecs/system"
	"github.com/milk9111/autocombat/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

func useEmbeddedPrefabs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })
	return dir
}

func scenario(auto bool, enemies ...prefabs.SpawnSpec) *prefabs.ArenaSpec {
	return &prefabs.ArenaSpec{
		Name:       "test",
		Bounds:     prefabs.BoundsSpec{MinX: -50, MinY: -50, MaxX: 50, MaxY: 50},
		AutoCombat: auto,
		Enemies:    enemies,
	}
}

func runUntilDone(a *Arena, seconds float64) {
	for i := 0; i < int(seconds/dt) && !a.Done(); i++ {
		a.Step(dt)
	}
}

func boolPtr(v bool) *bool { return &v }

func TestNewBuildsScenario(t *testing.T) {
	useEmbeddedPrefabs(t)

	a, err := Load("arena", Options{})
	require.NoError(t, err)

	assert.Equal(t, 4, a.Registry().Len())
	assert.Equal(t, 4, a.EnemiesLeft())
	assert.True(t, a.PlayerAlive())
	assert.True(t, a.AutoCombat())
	assert.True(t, a.GlobalSearch())
	assert.False(t, a.Done())

	actors := a.Actors()
	require.Len(t, actors, 5)
	assert.True(t, actors[0].Player)
	assert.Equal(t, 10.0, actors[0].DetectionRadius)
	assert.Equal(t, 2.0, actors[0].AttackRadius)
	assert.Equal(t, 3.0, actors[1].AttackRadius)
}

func TestNewRejectsNilSpec(t *testing.T) {
	_, err := New(nil, Options{})
	require.Error(t, err)
}

func TestAutoCombatKillsNearbyEnemy(t *testing.T) {
	useEmbeddedPrefabs(t)

	a, err := New(scenario(true, prefabs.SpawnSpec{X: 3, Y: 0, Health: 10}), Options{})
	require.NoError(t, err)

	runUntilDone(a, 20)

	stats := a.Stats()
	assert.Equal(t, 1, stats.Kills)
	assert.GreaterOrEqual(t, stats.PlayerStrikes, 1)
	assert.True(t, a.PlayerAlive())
	assert.Equal(t, 0, a.EnemiesLeft())
	assert.Equal(t, 0, a.Registry().Len())
	assert.Positive(t, stats.Transitions)
	assert.Positive(t, stats.TargetChanges)
	assert.NotEmpty(t, a.Journal())
}

func TestGlobalSearchCommitsFarEnemy(t *testing.T) {
	useEmbeddedPrefabs(t)

	a, err := New(scenario(true, prefabs.SpawnSpec{X: 30, Y: 0, Health: 10}), Options{})
	require.NoError(t, err)

	info := a.Agent().Target()
	require.True(t, info.Ok)
	assert.Equal(t, combat.OriginGlobal, info.Origin)
	assert.Equal(t, combat.StateChase, a.Agent().State())

	runUntilDone(a, 30)
	assert.Equal(t, 1, a.Stats().Kills)
}

func TestGlobalSearchDisabledStaysIdle(t *testing.T) {
	useEmbeddedPrefabs(t)

	a, err := New(scenario(true, prefabs.SpawnSpec{X: 30, Y: 0}), Options{GlobalSearch: boolPtr(false)})
	require.NoError(t, err)

	for i := 0; i < 180; i++ {
		a.Step(dt)
	}
	assert.Equal(t, combat.StateIdle, a.Agent().State())
	assert.False(t, a.Agent().Target().Ok)

	pos, ok := a.World().Position(a.Player())
	require.True(t, ok)
	assert.InDelta(t, 0, pos.X, 1e-6)
	assert.InDelta(t, 0, pos.Y, 1e-6)
}

func TestDisablingAutoCombatReturnsControl(t *testing.T) {
	useEmbeddedPrefabs(t)

	a, err := New(scenario(true, prefabs.SpawnSpec{X: 30, Y: 0}), Options{})
	require.NoError(t, err)
	a.Step(dt)
	require.Equal(t, combat.StateChase, a.Agent().State())
	assert.Equal(t, combat.PrioritySynthetic, a.Agent().Input().Priority())

	a.SetAutoCombat(false)
	assert.Equal(t, combat.StateIdle, a.Agent().State())
	assert.False(t, a.Agent().Target().Ok)
	assert.Equal(t, combat.PriorityManual, a.Agent().Input().Priority())
	eff := a.Agent().Input().Effective()
	assert.Equal(t, combat.SourceManual, eff.Source)
	assert.Equal(t, cp.Vector{}, eff.Vec)
}

func TestToggleInputFlipsAutoCombat(t *testing.T) {
	useEmbeddedPrefabs(t)

	frames := []component.Input{{ToggleAuto: true}, {}, {ToggleGlobal: true}}
	i := 0
	src := system.InputFunc(func() component.Input {
		if i >= len(frames) {
			return component.Input{}
		}
		in := frames[i]
		i++
		return in
	})

	a, err := New(scenario(false, prefabs.SpawnSpec{X: 30, Y: 0}), Options{Input: src})
	require.NoError(t, err)
	require.False(t, a.AutoCombat())

	a.Step(dt)
	assert.True(t, a.AutoCombat())
	a.Step(dt)
	assert.True(t, a.GlobalSearch())
	a.Step(dt)
	assert.False(t, a.GlobalSearch())
}

func TestManualAttackOnlyWhenAutoIsOff(t *testing.T) {
	useEmbeddedPrefabs(t)

	attack := system.InputFunc(func() component.Input { return component.Input{AttackPressed: true} })
	a, err := New(scenario(false, prefabs.SpawnSpec{X: 1.5, Y: 0, Health: 20}), Options{Input: attack})
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		a.Step(dt)
	}
	stats := a.Stats()
	assert.Equal(t, 2, stats.PlayerStrikes)
	assert.Equal(t, 1, stats.Kills)
}

func TestManualMovementDrivesPlayer(t *testing.T) {
	useEmbeddedPrefabs(t)

	right := system.InputFunc(func() component.Input { return component.Input{Move: cp.Vector{X: 1}} })
	a, err := New(scenario(false, prefabs.SpawnSpec{X: -40, Y: 40}), Options{Input: right})
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		a.Step(dt)
	}
	pos, ok := a.World().Position(a.Player())
	require.True(t, ok)
	// one second at move_speed 5
	assert.InDelta(t, 5, pos.X, 0.2)
	assert.InDelta(t, 0, pos.Y, 1e-6)
}

func TestStunRecovers(t *testing.T) {
	useEmbeddedPrefabs(t)

	a, err := New(scenario(true, prefabs.SpawnSpec{X: 30, Y: 0}), Options{})
	require.NoError(t, err)
	require.NoError(t, a.Stun(a.Player(), 0.5))

	a.Step(dt)
	assert.Equal(t, combat.StateStunned, a.Agent().State())
	motor, ok := ecs.Get(a.World(), a.Player(), component.MotorComponent.Kind())
	require.True(t, ok)
	assert.True(t, motor.Halted)

	for i := 0; i < 40; i++ {
		a.Step(dt)
	}
	assert.Equal(t, combat.StateChase, a.Agent().State())
	assert.False(t, motor.Halted)
}

func TestHandleChangesReloadsTuning(t *testing.T) {
	dir := useEmbeddedPrefabs(t)

	a, err := New(scenario(false, prefabs.SpawnSpec{X: 30, Y: 0}), Options{})
	require.NoError(t, err)

	changed, err := a.HandleChanges([]string{filepath.Join(dir, "arena.yaml")})
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("move_speed: 9\n"), 0o644))
	changed, err = a.HandleChanges([]string{filepath.Join(dir, "player.yaml")})
	require.NoError(t, err)
	assert.True(t, changed)

	motor, ok := ecs.Get(a.World(), a.Player(), component.MotorComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 9.0, motor.Speed)
	assert.False(t, a.AutoCombat())
}
