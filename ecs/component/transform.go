package component

import "github.com/jakecoffman/cp"

// Transform is a position on the ground plane. X maps to world X, Y maps to
// world Z; height is pinned and never stored.
type Transform struct {
	Position   cp.Vector
	FacingLeft bool
}

var TransformComponent = NewComponent[Transform]()
