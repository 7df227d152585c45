package component

import "github.com/jakecoffman/cp"

// NavAgent steers a body toward a destination and stops inside
// StoppingDistance. Route planning is not modelled; the agent heads straight
// for the point.
type NavAgent struct {
	Speed            float64
	StoppingDistance float64
	Destination      cp.Vector
	HasDestination   bool
	Stopped          bool
}

func (n *NavAgent) SetDestination(p cp.Vector) {
	if n == nil {
		return
	}
	n.Destination = p
	n.HasDestination = true
}

func (n *NavAgent) ClearDestination() {
	if n == nil {
		return
	}
	n.HasDestination = false
}

func (n *NavAgent) Halt() {
	if n != nil {
		n.Stopped = true
	}
}

func (n *NavAgent) Resume() {
	if n != nil {
		n.Stopped = false
	}
}

var NavAgentComponent = NewComponent[NavAgent]()
