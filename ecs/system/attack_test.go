package system

import (
	"testing"

	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addFighter(t *testing.T, w *ecs.World, e ecs.Entity, health float64, atk component.Attacker) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(health)))
	require.NoError(t, ecs.Add(w, e, component.AttackerComponent.Kind(), &atk))
}

func TestApplyStrike(t *testing.T) {
	t.Run("wounds and stuns", func(t *testing.T) {
		w := newPhysicsWorld()
		a := spawnBody(t, w, 0, 0, component.TagPlayer)
		b := spawnBody(t, w, 1, 0, component.TagEnemy)
		addFighter(t, w, a, 100, component.Attacker{Damage: 10, StunDuration: 0.5})
		addFighter(t, w, b, 30, component.Attacker{})

		require.True(t, ApplyStrike(w, a, b))

		h, _ := ecs.Get(w, b, component.HealthComponent.Kind())
		assert.Equal(t, 20.0, h.Current)
		req, ok := ecs.Get(w, b, component.StunRequestComponent.Kind())
		require.True(t, ok)
		assert.Equal(t, 0.5, req.Duration)
		atk, _ := ecs.Get(w, a, component.AttackerComponent.Kind())
		assert.Equal(t, 1, atk.Strikes)

		require.Len(t, w.Events().Peek(), 1)
		assert.Equal(t, StrikeEvent{Attacker: a, Target: b, Damage: 10}, w.Events().Peek()[0].Data)
	})

	t.Run("kills enemy", func(t *testing.T) {
		w := newPhysicsWorld()
		a := spawnBody(t, w, 0, 0, component.TagPlayer)
		b := spawnBody(t, w, 1, 0, component.TagEnemy)
		addFighter(t, w, a, 100, component.Attacker{Damage: 10})
		addFighter(t, w, b, 5, component.Attacker{})

		require.True(t, ApplyStrike(w, a, b))
		assert.False(t, w.IsAlive(b))
		assert.Equal(t, []string{ecs.EventStrike, ecs.EventEntityDied}, eventTypes(w))
		assert.Equal(t, DeathEvent{Entity: b, Killer: a, Enemy: true}, w.Events().Peek()[1].Data)
	})

	t.Run("dead player stays readable", func(t *testing.T) {
		w := newPhysicsWorld()
		p := spawnBody(t, w, 0, 0, component.TagPlayer)
		b := spawnBody(t, w, 1, 0, component.TagEnemy)
		addFighter(t, w, p, 5, component.Attacker{})
		addFighter(t, w, b, 30, component.Attacker{Damage: 10})

		require.True(t, ApplyStrike(w, b, p))
		assert.True(t, w.IsAlive(p))
		assert.False(t, w.IsActive(p))
		h, _ := ecs.Get(w, p, component.HealthComponent.Kind())
		assert.True(t, h.Dead)
	})

	t.Run("inactive target", func(t *testing.T) {
		w := newPhysicsWorld()
		a := spawnBody(t, w, 0, 0, component.TagPlayer)
		b := spawnBody(t, w, 1, 0, component.TagEnemy)
		addFighter(t, w, a, 100, component.Attacker{Damage: 10})
		addFighter(t, w, b, 30, component.Attacker{})
		w.SetActive(b, false)

		assert.False(t, ApplyStrike(w, a, b))
		assert.Empty(t, w.Events().Peek())
	})
}

func TestManualAttackSystem(t *testing.T) {
	w := newPhysicsWorld()
	p := spawnBody(t, w, 0, 0, component.TagPlayer)
	near := spawnBody(t, w, 1.5, 0, component.TagEnemy)
	far := spawnBody(t, w, 5, 0, component.TagEnemy)
	addFighter(t, w, p, 100, component.Attacker{Damage: 10, Cooldown: 0.5, Reach: 2})
	addFighter(t, w, near, 100, component.Attacker{})
	addFighter(t, w, far, 100, component.Attacker{})
	require.NoError(t, ecs.Add(w, p, component.InputComponent.Kind(), &component.Input{AttackPressed: true}))

	w.AddSystem(NewManualAttackSystem())
	for i := 0; i < 20; i++ {
		w.Step(dt)
	}
	atk, _ := ecs.Get(w, p, component.AttackerComponent.Kind())
	assert.Equal(t, 1, atk.Strikes)

	for i := 0; i < 40; i++ {
		w.Step(dt)
	}
	assert.Equal(t, 2, atk.Strikes)

	h, _ := ecs.Get(w, near, component.HealthComponent.Kind())
	assert.Equal(t, 80.0, h.Current)
	h, _ = ecs.Get(w, far, component.HealthComponent.Kind())
	assert.Equal(t, 100.0, h.Current)
}

func TestManualAttackSkippedWhileAutoEnabled(t *testing.T) {
	w := newPhysicsWorld()
	p := spawnBody(t, w, 0, 0, component.TagPlayer)
	near := spawnBody(t, w, 1, 0, component.TagEnemy)
	addFighter(t, w, p, 100, component.Attacker{Damage: 10, Reach: 2})
	addFighter(t, w, near, 100, component.Attacker{})
	require.NoError(t, ecs.Add(w, p, component.InputComponent.Kind(), &component.Input{AttackPressed: true}))

	agent := combat.New(combat.DefaultConfig(), combat.Deps{Self: p})
	agent.SetEnabled(true, 0)
	require.NoError(t, ecs.Add(w, p, combat.AutoCombatComponent.Kind(), agent))

	NewManualAttackSystem().Update(w)
	atk, _ := ecs.Get(w, p, component.AttackerComponent.Kind())
	assert.Zero(t, atk.Strikes)
}
