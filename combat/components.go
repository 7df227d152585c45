package combat

import (
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
)

// AutoCombatComponent holds the player's auto-combat agent.
var AutoCombatComponent = component.NewComponent[AutoCombat]()

// Brain is an enemy's combat state against the player.
type Brain struct {
	Machine *StateMachine
	Target  ecs.Entity

	DetectionRadius float64
	LastDistance    float64
	InRange         bool
	// Generation is the machine generation last seen by the enemy system.
	Generation uint64
}

var BrainComponent = component.NewComponent[Brain]()
