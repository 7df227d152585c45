// Package combat is the auto-combat decision core: target weighting, the
// committed-target cache, the combat state machine and input arbitration.
// Nothing here talks to the renderer or the physics engine directly; the
// arena injects those as the collaborators declared below.
package combat

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
)

// SpatialQuery returns entities carrying tag within radius of center.
type SpatialQuery interface {
	QueryNearby(center cp.Vector, radius float64, tag component.Tag) []ecs.Entity
}

// EntityResolver answers liveness and position questions about entity handles.
// Position must fail for destroyed entities.
type EntityResolver interface {
	IsActive(e ecs.Entity) bool
	Position(e ecs.Entity) (cp.Vector, bool)
}

// AnimationSink receives boolean animation parameters.
type AnimationSink interface {
	SetBool(name string, value bool)
}

// Mover is the movement command issuer halted while stunned.
type Mover interface {
	Halt()
	Resume()
}

// ManualSource is the raw joystick/keyboard vector.
type ManualSource interface {
	MovementInput() cp.Vector
}
