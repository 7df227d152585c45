package combat

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/common"
)

// Priority selects which input source drives movement.
type Priority int

const (
	PriorityManual Priority = iota
	PrioritySynthetic
)

func (p Priority) String() string {
	if p == PrioritySynthetic {
		return "synthetic"
	}
	return "manual"
}

// Source tags where an InputVector came from.
type Source int

const (
	SourceNone Source = iota
	SourceManual
	SourceSynthetic
)

func (s Source) String() string {
	switch s {
	case SourceManual:
		return "manual"
	case SourceSynthetic:
		return "synthetic"
	default:
		return "none"
	}
}

// InputVector is a movement vector tagged with its source.
type InputVector struct {
	Vec    cp.Vector
	Source Source
}

// InputArbiter merges the manual stick with the auto-combat vector.
type InputArbiter struct {
	manual    ManualSource
	priority  Priority
	synthetic cp.Vector
	populated bool
}

func NewInputArbiter(manual ManualSource) *InputArbiter {
	return &InputArbiter{manual: manual}
}

func (a *InputArbiter) SetManualSource(src ManualSource) {
	if a != nil {
		a.manual = src
	}
}

// SetSynthetic stores the auto-combat vector, clamped to unit length.
func (a *InputArbiter) SetSynthetic(v cp.Vector) {
	if a == nil {
		return
	}
	a.synthetic = common.ClampMagnitude(v, 1)
	a.populated = true
}

// SetPriority switches the active source. Any change wipes synthetic state so
// a stale auto-combat vector never leaks into the next frame.
func (a *InputArbiter) SetPriority(p Priority) {
	if a == nil || a.priority == p {
		return
	}
	a.priority = p
	a.ClearSynthetic()
}

func (a *InputArbiter) ClearSynthetic() {
	if a == nil {
		return
	}
	a.synthetic = cp.Vector{}
	a.populated = false
}

func (a *InputArbiter) Priority() Priority {
	if a == nil {
		return PriorityManual
	}
	return a.priority
}

// Effective returns the vector movement should use this tick.
func (a *InputArbiter) Effective() InputVector {
	if a == nil {
		return InputVector{}
	}
	if a.priority == PrioritySynthetic && a.populated {
		return InputVector{Vec: a.synthetic, Source: SourceSynthetic}
	}
	if a.manual != nil {
		return InputVector{Vec: a.manual.MovementInput(), Source: SourceManual}
	}
	return InputVector{}
}

// MovementInput is the input sink polled by movement.
func (a *InputArbiter) MovementInput() cp.Vector {
	return a.Effective().Vec
}
