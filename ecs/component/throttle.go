package component

// ThrottleBand applies while the watched distance is at most MaxDistance.
// A zero MaxDistance matches any distance.
type ThrottleBand struct {
	MaxDistance float64
	Every       int
}

// Throttle gates an expensive per-entity update to once every Every frames.
type Throttle struct {
	Every   int
	Counter int
	Bands   []ThrottleBand
}

// Retune picks Every from the first band covering distance.
func (t *Throttle) Retune(distance float64) {
	if t == nil {
		return
	}
	for _, b := range t.Bands {
		if b.MaxDistance <= 0 || distance <= b.MaxDistance {
			t.Every = b.Every
			return
		}
	}
}

// Ready advances the counter and reports whether this frame should run.
func (t *Throttle) Ready() bool {
	if t == nil || t.Every <= 1 {
		return true
	}
	t.Counter++
	if t.Counter >= t.Every {
		t.Counter = 0
		return true
	}
	return false
}

var ThrottleComponent = NewComponent[Throttle]()
