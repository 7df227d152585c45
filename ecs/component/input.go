package component

import "github.com/jakecoffman/cp"

// Input stores per-frame manual input for an entity.
type Input struct {
	Move          cp.Vector
	AttackPressed bool
	ToggleAuto    bool
	ToggleGlobal  bool
}

// MovementInput returns the raw stick vector.
func (i *Input) MovementInput() cp.Vector {
	if i == nil {
		return cp.Vector{}
	}
	return i.Move
}

var InputComponent = NewComponent[Input]()
