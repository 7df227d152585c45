package component

// Attacker describes how an entity strikes its committed target.
type Attacker struct {
	Damage       float64
	Cooldown     float64
	Delay        float64
	StunDuration float64
	Reach        float64

	NextStrikeAt float64
	Strikes      int
}

var AttackerComponent = NewComponent[Attacker]()
