package entity

import (
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs/component"
	"github.com/milk9111/autocombat/prefabs"
)

// PlayerConfig converts the player prefab into auto-combat tuning. Fields the
// prefab leaves at zero keep their defaults.
func PlayerConfig(spec *prefabs.PlayerSpec) combat.Config {
	cfg := combat.DefaultConfig()
	if spec == nil {
		return cfg
	}
	ac := spec.AutoCombat

	cfg.Enabled = ac.Enabled
	cfg.Targeting.GlobalSearch = ac.GlobalSearch
	cfg.Targeting.DetectionRadius = pick(ac.DetectionRadius, cfg.Targeting.DetectionRadius)
	cfg.Targeting.DetectionInterval = pick(ac.DetectionInterval, cfg.Targeting.DetectionInterval)
	cfg.Targeting.GlobalSearchInterval = pick(ac.GlobalSearchInterval, cfg.Targeting.GlobalSearchInterval)
	cfg.Targeting.Tag = component.TagEnemy

	cfg.Machine.AttackRadius = pick(ac.AttackRadius, cfg.Machine.AttackRadius)
	cfg.Machine.Hysteresis = pick(ac.Hysteresis, cfg.Machine.Hysteresis)
	cfg.MinDistance = pick(ac.MinDistance, cfg.MinDistance)

	w := ac.Weights
	cfg.Weights.Increase = pick(w.Increase, cfg.Weights.Increase)
	cfg.Weights.Decrease = pick(w.Decrease, cfg.Weights.Decrease)
	cfg.Weights.Threshold = pick(w.Threshold, cfg.Weights.Threshold)
	cfg.Weights.Max = pick(w.Max, cfg.Weights.Max)
	cfg.Weights.CommittedMax = pick(w.CommittedMax, cfg.Weights.CommittedMax)
	cfg.Weights.Initial = pick(w.Initial, cfg.Weights.Initial)
	cfg.Weights.ScoreScale = pick(w.ScoreScale, cfg.Weights.ScoreScale)

	cfg.Cache.ValidityRadius = pick(ac.Cache.ValidityRadius, cfg.Cache.ValidityRadius)
	cfg.Cache.MaxAge = pick(ac.Cache.MaxAge, cfg.Cache.MaxAge)

	cfg.AttackDelay = pick(spec.Attack.Delay, cfg.AttackDelay)
	cfg.AttackCooldown = pick(spec.Attack.Cooldown, cfg.AttackCooldown)
	return cfg
}

// EnemyMachineConfig converts the enemy prefab into state machine tuning.
func EnemyMachineConfig(spec *prefabs.EnemySpec) combat.MachineConfig {
	cfg := combat.MachineConfig{AttackRadius: 3, Hysteresis: 1.2}
	if spec == nil {
		return cfg
	}
	cfg.AttackRadius = pick(spec.AttackRadius, cfg.AttackRadius)
	cfg.Hysteresis = pick(spec.Hysteresis, cfg.Hysteresis)
	return cfg
}

func attackerFrom(spec prefabs.AttackSpec) *component.Attacker {
	return &component.Attacker{
		Damage:       spec.Damage,
		Cooldown:     spec.Cooldown,
		Delay:        spec.Delay,
		StunDuration: spec.StunDuration,
		Reach:        spec.Reach,
	}
}

func throttleBands(bands []prefabs.FrequencyBand) []component.ThrottleBand {
	out := make([]component.ThrottleBand, 0, len(bands))
	for _, b := range bands {
		out = append(out, component.ThrottleBand{MaxDistance: b.MaxDistance, Every: b.Every})
	}
	return out
}

func pick(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
