package combat

import (
	"math"

	"github.com/milk9111/autocombat/ecs"
)

// WeightConfig tunes target persistence.
type WeightConfig struct {
	Increase  float64
	Decrease  float64
	Threshold float64
	// Max caps plain detection; CommittedMax caps the boost a committed target
	// gets on each detection pass.
	Max          float64
	CommittedMax float64
	Initial      float64
	ScoreScale   float64
}

func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		Increase:     0.5,
		Decrease:     0.2,
		Threshold:    1.0,
		Max:          2.0,
		CommittedMax: 3.0,
		Initial:      0,
		ScoreScale:   2,
	}
}

func (c WeightConfig) normalized() WeightConfig {
	def := DefaultWeightConfig()
	if c.Increase <= 0 {
		c.Increase = def.Increase
	}
	if c.Decrease < 0 {
		c.Decrease = 0
	}
	if c.Threshold <= 0 {
		c.Threshold = def.Threshold
	}
	if c.Max <= 0 {
		c.Max = def.Max
	}
	if c.CommittedMax < c.Max {
		c.CommittedMax = c.Max
	}
	if c.ScoreScale <= 0 {
		c.ScoreScale = def.ScoreScale
	}
	if c.Initial < 0 {
		c.Initial = 0
	}
	if c.Initial > c.Max {
		c.Initial = c.Max
	}
	return c
}

// Candidate is one local detection result.
type Candidate struct {
	Entity   ecs.Entity
	Distance float64
}

// TargetWeights holds per-entity weight and last-seen distance. Entries keep
// first-detection order so selection ties resolve the same way every tick.
type TargetWeights struct {
	cfg       WeightConfig
	order     []ecs.Entity
	weights   map[ecs.Entity]float64
	distances map[ecs.Entity]float64
}

func NewTargetWeights(cfg WeightConfig) *TargetWeights {
	return &TargetWeights{
		cfg:       cfg.normalized(),
		weights:   make(map[ecs.Entity]float64),
		distances: make(map[ecs.Entity]float64),
	}
}

func (w *TargetWeights) Config() WeightConfig {
	if w == nil {
		return DefaultWeightConfig()
	}
	return w.cfg
}

// SetConfig swaps tuning in place. Stored weights are clamped to the new caps.
func (w *TargetWeights) SetConfig(cfg WeightConfig) {
	if w == nil {
		return
	}
	w.cfg = cfg.normalized()
	for e, v := range w.weights {
		w.weights[e] = math.Min(v, w.cfg.CommittedMax)
	}
}

// Update applies one detection pass. valid decides whether a tracked entity
// is still a legal target (alive, active, inside the search radius); a nil
// valid keeps everything.
func (w *TargetWeights) Update(detected []Candidate, valid func(ecs.Entity) bool) {
	if w == nil {
		return
	}
	w.ensure()

	kept := w.order[:0]
	for _, e := range w.order {
		if valid != nil && !valid(e) {
			delete(w.weights, e)
			delete(w.distances, e)
			continue
		}
		w.weights[e] = math.Max(0, w.weights[e]-w.cfg.Decrease)
		kept = append(kept, e)
	}
	w.order = kept

	seen := make(map[ecs.Entity]struct{}, len(detected))
	for _, c := range detected {
		if !c.Entity.Valid() {
			continue
		}
		if _, dup := seen[c.Entity]; dup {
			continue
		}
		seen[c.Entity] = struct{}{}

		current, tracked := w.weights[c.Entity]
		if !tracked {
			current = w.cfg.Initial
			w.order = append(w.order, c.Entity)
		}
		w.distances[c.Entity] = math.Max(0, c.Distance)
		w.weights[c.Entity] = math.Min(current+w.cfg.Increase, w.cfg.Max)
	}

	kept = w.order[:0]
	for _, e := range w.order {
		if _, ok := seen[e]; !ok && w.weights[e] <= 0 {
			delete(w.weights, e)
			delete(w.distances, e)
			continue
		}
		kept = append(kept, e)
	}
	w.order = kept
}

// Boost reinforces an already-tracked committed target.
func (w *TargetWeights) Boost(e ecs.Entity) {
	if w == nil {
		return
	}
	v, ok := w.weights[e]
	if !ok {
		return
	}
	w.weights[e] = math.Min(v+w.cfg.Increase, w.cfg.CommittedMax)
}

// Select returns the tracked entity with the lowest distance/(weight*scale)
// among those at or above the threshold.
func (w *TargetWeights) Select() (ecs.Entity, bool) {
	if w == nil {
		return 0, false
	}
	var (
		best      ecs.Entity
		bestScore = math.MaxFloat64
		found     bool
	)
	for _, e := range w.order {
		weight := w.weights[e]
		if weight < w.cfg.Threshold {
			continue
		}
		score := w.distances[e] / (weight * w.cfg.ScoreScale)
		if score < bestScore {
			best, bestScore, found = e, score, true
		}
	}
	return best, found
}

func (w *TargetWeights) Weight(e ecs.Entity) (float64, bool) {
	if w == nil {
		return 0, false
	}
	v, ok := w.weights[e]
	return v, ok
}

func (w *TargetWeights) Distance(e ecs.Entity) (float64, bool) {
	if w == nil {
		return 0, false
	}
	v, ok := w.distances[e]
	return v, ok
}

// Tracked returns entities in first-detection order.
func (w *TargetWeights) Tracked() []ecs.Entity {
	if w == nil {
		return nil
	}
	return append([]ecs.Entity(nil), w.order...)
}

func (w *TargetWeights) Len() int {
	if w == nil {
		return 0
	}
	return len(w.order)
}

func (w *TargetWeights) Reset() {
	if w == nil {
		return
	}
	w.order = nil
	w.weights = make(map[ecs.Entity]float64)
	w.distances = make(map[ecs.Entity]float64)
}

func (w *TargetWeights) ensure() {
	if w.weights == nil {
		w.weights = make(map[ecs.Entity]float64)
	}
	if w.distances == nil {
		w.distances = make(map[ecs.Entity]float64)
	}
}
