package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func withDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestLoadPlayerSpecEmbedded(t *testing.T) {
	withDir(t, t.TempDir())

	spec, err := LoadPlayerSpec()
	require.NoError(t, err)

	assert.Equal(t, 5.0, spec.MoveSpeed)
	assert.Equal(t, 100.0, spec.Health)
	assert.Equal(t, 10.0, spec.Attack.Damage)
	assert.Equal(t, 0.5, spec.Attack.Cooldown)
	assert.Equal(t, 0.1, spec.Attack.Delay)
	assert.True(t, spec.AutoCombat.GlobalSearch)
	assert.Equal(t, 10.0, spec.AutoCombat.DetectionRadius)
	assert.Equal(t, 1.5, spec.AutoCombat.DetectionInterval)
	assert.Equal(t, 1.2, spec.AutoCombat.Hysteresis)
	assert.Equal(t, 3.0, spec.AutoCombat.Weights.CommittedMax)
	assert.Equal(t, 5.0, spec.AutoCombat.Cache.MaxAge)
	assert.Equal(t, "combat_hooks.yaml", spec.Hooks)
	assert.Equal(t, "auto_combat.tengo", spec.Script)
	require.NotNil(t, spec.Color.Color)
}

func TestLoadEnemySpecBands(t *testing.T) {
	withDir(t, t.TempDir())

	spec, err := LoadEnemySpec()
	require.NoError(t, err)

	assert.Equal(t, 3.0, spec.RunSpeed)
	assert.Equal(t, 2.5, spec.StoppingDistance)
	assert.Equal(t, 1.5, spec.Attack.Cooldown)
	require.Len(t, spec.UpdateFrequency, 5)
	assert.Equal(t, FrequencyBand{MaxDistance: 5, Every: 3}, spec.UpdateFrequency[0])
	assert.Equal(t, FrequencyBand{MaxDistance: 0, Every: 30}, spec.UpdateFrequency[4])
}

func TestLoadHookSpec(t *testing.T) {
	withDir(t, t.TempDir())

	spec, err := LoadHookSpec("combat_hooks.yaml")
	require.NoError(t, err)

	stunned, ok := spec.States["stunned"]
	require.True(t, ok)
	require.Len(t, stunned.OnEnter, 2)
	require.Len(t, stunned.OnExit, 1)
	assert.Contains(t, stunned.OnEnter[0], "set_bool")
}

func TestLoadArenaSpec(t *testing.T) {
	withDir(t, t.TempDir())

	t.Run("default", func(t *testing.T) {
		spec, err := LoadArenaSpec("")
		require.NoError(t, err)
		assert.Equal(t, "skirmish", spec.Name)
		assert.True(t, spec.AutoCombat)
		assert.Nil(t, spec.GlobalSearch)
		assert.Len(t, spec.Enemies, 4)
	})

	t.Run("extension optional", func(t *testing.T) {
		spec, err := LoadArenaSpec("ambush")
		require.NoError(t, err)
		require.NotNil(t, spec.GlobalSearch)
		assert.True(t, *spec.GlobalSearch)
		require.NotNil(t, spec.Enemies[2].Active)
		assert.False(t, *spec.Enemies[2].Active)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadArenaSpec("nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prefabs: load nope.yaml")
	})

	t.Run("no enemies", func(t *testing.T) {
		dir := t.TempDir()
		withDir(t, dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.yaml"), []byte("name: empty\n"), 0o644))
		_, err := LoadArenaSpec("empty.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no enemies")
	})
}

func TestDiskOverrideWins(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("move_speed: 9\n"), 0o644))

	spec, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Equal(t, 9.0, spec.MoveSpeed)

	_, ok := ModTime("prefabs/player.yaml")
	assert.True(t, ok)
	_, ok = ModTime("enemy.yaml")
	assert.False(t, ok)
}

func TestLoadScript(t *testing.T) {
	withDir(t, t.TempDir())

	for _, name := range []string{"auto_combat.tengo", "scripts/auto_combat.tengo", "prefabs/scripts/auto_combat.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "on_enter")
	}
}

func TestNamesListsEmbeddedPrefabs(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "player.yaml")
	assert.Contains(t, names, "arena.yaml")
	assert.NotContains(t, names, "scripts")
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.Color
		wantErr bool
	}{
		{name: "rgb", in: `"#ff8000"`, want: color.NRGBA{R: 255, G: 128, B: 0, A: 255}},
		{name: "rgba", in: `"10203040"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{name: "short", in: `"#fff"`, wantErr: true},
		{name: "not hex", in: `"#gggggg"`, wantErr: true},
		{name: "not scalar", in: `[1, 2]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Color)
		})
	}

	var empty YAMLColor
	assert.Equal(t, color.White, empty.Or(color.White))
}

func TestWatcherReportsPrefabEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "arena.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: x\n"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload event")
	}
}
