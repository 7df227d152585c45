package component

// StunRequest is a one-shot signal. Systems add it to an entity and the
// combat systems consume it on their next update.
type StunRequest struct {
	Duration float64
}

var StunRequestComponent = NewComponent[StunRequest]()
