package combat

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/component"
	"github.com/milk9111/autocombat/logging"
	"github.com/sirupsen/logrus"
)

// TargetingConfig sets the local detection and global search cadence.
type TargetingConfig struct {
	DetectionRadius      float64
	DetectionInterval    float64
	GlobalSearch         bool
	GlobalSearchInterval float64
	Tag                  component.Tag
}

func DefaultTargetingConfig() TargetingConfig {
	return TargetingConfig{
		DetectionRadius:      10,
		DetectionInterval:    1.5,
		GlobalSearch:         true,
		GlobalSearchInterval: 2,
		Tag:                  component.TagEnemy,
	}
}

func (c TargetingConfig) normalized() TargetingConfig {
	def := DefaultTargetingConfig()
	if c.DetectionRadius <= 0 {
		c.DetectionRadius = def.DetectionRadius
	}
	if c.DetectionInterval < 0 {
		c.DetectionInterval = 0
	}
	if c.GlobalSearchInterval < 0 {
		c.GlobalSearchInterval = 0
	}
	if c.Tag == "" {
		c.Tag = def.Tag
	}
	return c
}

// TargetInfo is the committed target as seen after a targeting pass.
type TargetInfo struct {
	Entity   ecs.Entity
	Position cp.Vector
	Distance float64
	Origin   Origin
	Ok       bool
}

// TargetChange is reported whenever the committed entity changes.
type TargetChange struct {
	Previous ecs.Entity
	Next     ecs.Entity
	Origin   Origin
	At       float64
}

// TargeterDeps are the collaborators a Targeter reads from.
type TargeterDeps struct {
	Self     ecs.Entity
	Spatial  SpatialQuery
	Resolver EntityResolver
	Registry *EnemyRegistry
}

// Targeter runs the per-tick targeting pass: revalidate the committed target,
// run weighted local detection on its interval, and fall back to a registry
// scan when local detection comes back empty.
type Targeter struct {
	cfg     TargetingConfig
	weights *TargetWeights
	cache   *TargetCache
	deps    TargeterDeps

	nextDetection float64
	nextGlobal    float64
	globalActive  bool

	listeners []func(TargetChange)
	log       *logrus.Entry
}

func NewTargeter(cfg TargetingConfig, weights WeightConfig, cache CacheConfig, deps TargeterDeps) *Targeter {
	return &Targeter{
		cfg:     cfg.normalized(),
		weights: NewTargetWeights(weights),
		cache:   NewTargetCache(cache),
		deps:    deps,
		log:     logging.For("targeting"),
	}
}

func (t *Targeter) Config() TargetingConfig {
	if t == nil {
		return DefaultTargetingConfig()
	}
	return t.cfg
}

func (t *Targeter) SetConfig(cfg TargetingConfig) {
	if t != nil {
		t.cfg = cfg.normalized()
	}
}

func (t *Targeter) Weights() *TargetWeights {
	if t == nil {
		return nil
	}
	return t.weights
}

func (t *Targeter) Cache() *TargetCache {
	if t == nil {
		return nil
	}
	return t.cache
}

// GlobalActive reports whether the registry fallback is currently polling.
func (t *Targeter) GlobalActive() bool {
	return t != nil && t.globalActive
}

func (t *Targeter) OnTargetChanged(fn func(TargetChange)) {
	if t == nil || fn == nil {
		return
	}
	t.listeners = append(t.listeners, fn)
}

// ForceDetection makes the next Tick run local detection regardless of the
// interval timer.
func (t *Targeter) ForceDetection(now float64) {
	if t != nil {
		t.nextDetection = now
	}
}

// SetGlobalSearch toggles the registry fallback. Enabling it with nothing
// committed re-arms detection so the fallback gets a chance on the next tick.
func (t *Targeter) SetGlobalSearch(enabled bool, now float64) {
	if t == nil {
		return
	}
	t.cfg.GlobalSearch = enabled
	if !enabled {
		t.globalActive = false
		return
	}
	if !t.cache.Has() {
		t.nextDetection = now
	}
}

// SetTarget commits e as an explicit target, replacing whatever was held.
func (t *Targeter) SetTarget(e ecs.Entity, agentPos cp.Vector, now float64) bool {
	if t == nil || t.deps.Resolver == nil || !t.deps.Resolver.IsActive(e) {
		return false
	}
	pos, ok := t.deps.Resolver.Position(e)
	if !ok {
		return false
	}
	prev, _ := t.cache.Target()
	t.cache.Reset()
	t.cache.Commit(e, pos, pos.Distance(agentPos), now, OriginExplicit)
	t.globalActive = false
	if prev != e {
		t.notify(prev, e, OriginExplicit, now)
	}
	return true
}

// Reset drops the committed target, all weights and global search state.
func (t *Targeter) Reset() {
	if t == nil {
		return
	}
	prev, had := t.cache.Target()
	t.cache.Reset()
	t.weights.Reset()
	t.globalActive = false
	t.nextDetection = 0
	t.nextGlobal = 0
	if had {
		t.notify(prev, 0, OriginNone, 0)
	}
}

// Target returns the committed target without running a pass.
func (t *Targeter) Target() TargetInfo {
	if t == nil || !t.cache.Has() {
		return TargetInfo{}
	}
	e, _ := t.cache.Target()
	return TargetInfo{
		Entity:   e,
		Position: t.cache.Position(),
		Distance: t.cache.Distance(),
		Origin:   t.cache.Origin(),
		Ok:       true,
	}
}

// Tick runs one targeting pass for an agent at agentPos.
func (t *Targeter) Tick(now float64, agentPos cp.Vector) TargetInfo {
	if t == nil || t.deps.Resolver == nil {
		return TargetInfo{}
	}

	if e, ok := t.cache.Target(); ok {
		if t.cache.Validate(agentPos, now, t.deps.Resolver) {
			pos, _ := t.deps.Resolver.Position(e)
			t.cache.Refresh(pos, pos.Distance(agentPos), now)
		} else {
			t.log.WithFields(logrus.Fields{
				"target": e.String(),
				"origin": t.cache.Origin().String(),
			}).Debug("committed target invalidated")
			t.cache.Reset()
			t.notify(e, 0, OriginNone, now)
			t.nextDetection = now
			t.nextGlobal = now
		}
	}

	if now >= t.nextDetection {
		t.detect(now, agentPos)
		t.nextDetection = now + t.cfg.DetectionInterval
	}

	if t.globalActive && t.cfg.GlobalSearch && now >= t.nextGlobal {
		origin := t.cache.Origin()
		if origin == OriginNone || origin == OriginGlobal {
			t.globalSearch(now, agentPos)
		}
		t.nextGlobal = now + t.cfg.GlobalSearchInterval
	}

	return t.Target()
}

func (t *Targeter) detect(now float64, agentPos cp.Vector) {
	resolver := t.deps.Resolver
	radius := t.cfg.DetectionRadius

	var candidates []Candidate
	if t.deps.Spatial != nil {
		for _, e := range t.deps.Spatial.QueryNearby(agentPos, radius, t.cfg.Tag) {
			if e == t.deps.Self || !resolver.IsActive(e) {
				continue
			}
			pos, ok := resolver.Position(e)
			if !ok {
				continue
			}
			d := pos.Distance(agentPos)
			if d > radius {
				continue
			}
			candidates = append(candidates, Candidate{Entity: e, Distance: d})
		}
	}

	t.weights.Update(candidates, func(e ecs.Entity) bool {
		if !resolver.IsActive(e) {
			return false
		}
		pos, ok := resolver.Position(e)
		return ok && pos.Distance(agentPos) <= radius
	})
	if e, ok := t.cache.Target(); ok {
		t.weights.Boost(e)
	}

	if len(candidates) == 0 {
		if t.cfg.GlobalSearch && !t.globalActive {
			t.log.WithFields(logrus.Fields{"registered": t.deps.Registry.Len()}).Debug("local detection empty, starting global search")
			t.globalActive = true
			t.nextGlobal = now
		}
		return
	}
	t.globalActive = false

	best, ok := t.weights.Select()
	if !ok {
		return
	}
	if t.cache.Origin() == OriginExplicit {
		return
	}
	pos, ok := resolver.Position(best)
	if !ok {
		return
	}
	prev, _ := t.cache.Target()
	if t.cache.Commit(best, pos, pos.Distance(agentPos), now, OriginLocal) {
		weight, _ := t.weights.Weight(best)
		t.log.WithFields(logrus.Fields{
			"target":   best.String(),
			"distance": pos.Distance(agentPos),
			"weight":   weight,
		}).Debug("committed local target")
		t.notify(prev, best, OriginLocal, now)
	}
}

func (t *Targeter) globalSearch(now float64, agentPos cp.Vector) {
	e, d, ok := t.deps.Registry.Nearest(agentPos, t.deps.Resolver, t.deps.Self)
	if !ok {
		return
	}
	pos, _ := t.deps.Resolver.Position(e)
	prev, _ := t.cache.Target()
	if prev != e {
		t.cache.Reset()
	}
	if t.cache.Commit(e, pos, d, now, OriginGlobal) {
		t.log.WithFields(logrus.Fields{"target": e.String(), "distance": d}).Debug("committed global target")
		t.notify(prev, e, OriginGlobal, now)
	}
}

func (t *Targeter) notify(prev, next ecs.Entity, origin Origin, now float64) {
	change := TargetChange{Previous: prev, Next: next, Origin: origin, At: now}
	for _, fn := range t.listeners {
		fn(change)
	}
}
