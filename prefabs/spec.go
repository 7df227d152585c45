package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type AttackSpec struct {
	Damage       float64 `yaml:"damage"`
	Cooldown     float64 `yaml:"cooldown"`
	Delay        float64 `yaml:"delay"`
	StunDuration float64 `yaml:"stun_duration"`
	Reach        float64 `yaml:"reach"`
}

type WeightSpec struct {
	Increase     float64 `yaml:"increase"`
	Decrease     float64 `yaml:"decrease"`
	Threshold    float64 `yaml:"threshold"`
	Max          float64 `yaml:"max"`
	CommittedMax float64 `yaml:"committed_max"`
	Initial      float64 `yaml:"initial"`
	ScoreScale   float64 `yaml:"score_scale"`
}

type CacheSpec struct {
	ValidityRadius float64 `yaml:"validity_radius"`
	MaxAge         float64 `yaml:"max_age"`
}

// AutoCombatSpec is the player's auto-combat tuning block.
type AutoCombatSpec struct {
	Enabled              bool       `yaml:"enabled"`
	GlobalSearch         bool       `yaml:"global_search"`
	DetectionRadius      float64    `yaml:"detection_radius"`
	DetectionInterval    float64    `yaml:"detection_interval"`
	GlobalSearchInterval float64    `yaml:"global_search_interval"`
	AttackRadius         float64    `yaml:"attack_radius"`
	Hysteresis           float64    `yaml:"hysteresis"`
	MinDistance          float64    `yaml:"min_distance"`
	Weights              WeightSpec `yaml:"weights"`
	Cache                CacheSpec  `yaml:"cache"`
}

type PlayerSpec struct {
	Name       string         `yaml:"name"`
	MoveSpeed  float64        `yaml:"move_speed"`
	Radius     float64        `yaml:"radius"`
	Health     float64        `yaml:"health"`
	Color      YAMLColor      `yaml:"color"`
	Attack     AttackSpec     `yaml:"attack"`
	AutoCombat AutoCombatSpec `yaml:"auto_combat"`
	Hooks      string         `yaml:"hooks"`
	Script     string         `yaml:"script"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// FrequencyBand throttles enemy evaluation to once every Every frames while
// the player is at most MaxDistance away. A zero MaxDistance matches anything.
type FrequencyBand struct {
	MaxDistance float64 `yaml:"max_distance"`
	Every       int     `yaml:"every"`
}

type EnemySpec struct {
	Name             string          `yaml:"name"`
	RunSpeed         float64         `yaml:"run_speed"`
	StoppingDistance float64         `yaml:"stopping_distance"`
	DetectionRadius  float64         `yaml:"detection_radius"`
	AttackRadius     float64         `yaml:"attack_radius"`
	Hysteresis       float64         `yaml:"hysteresis"`
	Radius           float64         `yaml:"radius"`
	Health           float64         `yaml:"health"`
	Color            YAMLColor       `yaml:"color"`
	Attack           AttackSpec      `yaml:"attack"`
	UpdateFrequency  []FrequencyBand `yaml:"update_frequency"`
	Hooks            string          `yaml:"hooks"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type HookStateSpec struct {
	OnEnter []map[string]any `yaml:"on_enter"`
	OnExit  []map[string]any `yaml:"on_exit"`
}

// HookSpec maps combat state names to action lists.
type HookSpec struct {
	States map[string]HookStateSpec `yaml:"states"`
}

func LoadHookSpec(name string) (*HookSpec, error) {
	spec, err := LoadSpec[HookSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type BoundsSpec struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

type SpawnSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Health float64 `yaml:"health"`
	Active *bool   `yaml:"active"`
}

// ArenaSpec is one scenario: where everything starts and which toggles are on.
type ArenaSpec struct {
	Name         string        `yaml:"name"`
	Bounds       BoundsSpec    `yaml:"bounds"`
	PhysicsStep  float64       `yaml:"physics_step"`
	Player       TransformSpec `yaml:"player"`
	Enemies      []SpawnSpec   `yaml:"enemies"`
	AutoCombat   bool          `yaml:"auto_combat"`
	GlobalSearch *bool         `yaml:"global_search"`
}

func LoadArenaSpec(name string) (*ArenaSpec, error) {
	if name == "" {
		name = "arena.yaml"
	}
	if !isSpecFile(name) {
		name += ".yaml"
	}
	spec, err := LoadSpec[ArenaSpec](name)
	if err != nil {
		return nil, err
	}
	if len(spec.Enemies) == 0 {
		return nil, fmt.Errorf("prefabs: arena %s: no enemies", name)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return err
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// Or returns the colour, or fallback when none was configured.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
