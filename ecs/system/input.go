package system

import (
	"github.com/milk9111/autocombat/common"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
)

// InputSource produces one frame of manual input.
type InputSource interface {
	Poll() component.Input
}

type InputFunc func() component.Input

func (f InputFunc) Poll() component.Input { return f() }

// InputSystem copies the polled frame into every Input component. The move
// stick is clamped to unit length.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) SetSource(source InputSource) {
	if i != nil {
		i.source = source
	}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.source == nil {
		return
	}

	frame := i.source.Poll()
	frame.Move = common.ClampMagnitude(frame.Move, 1)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = frame
	})
}
