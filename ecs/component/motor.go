package component

// Motor drives a player-controlled body from the effective movement input.
type Motor struct {
	Speed  float64
	Halted bool
}

func (m *Motor) Halt() {
	if m != nil {
		m.Halted = true
	}
}

func (m *Motor) Resume() {
	if m != nil {
		m.Halted = false
	}
}

var MotorComponent = NewComponent[Motor]()
