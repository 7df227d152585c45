package combat

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs"
)

// Origin records how the committed target was found.
type Origin int

const (
	OriginNone Origin = iota
	OriginLocal
	OriginGlobal
	OriginExplicit
)

func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginGlobal:
		return "global"
	case OriginExplicit:
		return "explicit"
	default:
		return "none"
	}
}

// CacheConfig bounds how long and how far a committed target stays valid.
type CacheConfig struct {
	ValidityRadius float64
	MaxAge         float64
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{ValidityRadius: 10, MaxAge: 5}
}

// TargetCache owns at most one committed target.
type TargetCache struct {
	cfg CacheConfig

	entity      ecs.Entity
	position    cp.Vector
	distance    float64
	refreshedAt float64
	origin      Origin
	has         bool
}

func NewTargetCache(cfg CacheConfig) *TargetCache {
	return &TargetCache{cfg: cfg}
}

func (c *TargetCache) Config() CacheConfig {
	if c == nil {
		return CacheConfig{}
	}
	return c.cfg
}

func (c *TargetCache) SetConfig(cfg CacheConfig) {
	if c != nil {
		c.cfg = cfg
	}
}

// Validate reports whether the committed target may still be used. Globally
// found and explicit targets are exempt from the validity radius.
func (c *TargetCache) Validate(agentPos cp.Vector, now float64, resolver EntityResolver) bool {
	if c == nil || !c.has || resolver == nil {
		return false
	}
	if !resolver.IsActive(c.entity) {
		return false
	}
	pos, ok := resolver.Position(c.entity)
	if !ok {
		return false
	}
	if c.origin == OriginLocal && c.cfg.ValidityRadius > 0 && pos.Distance(agentPos) > c.cfg.ValidityRadius {
		return false
	}
	if c.cfg.MaxAge > 0 && now-c.refreshedAt >= c.cfg.MaxAge {
		return false
	}
	return true
}

// Commit replaces the committed target. Committing the entity already held
// is a no-op and returns false.
func (c *TargetCache) Commit(e ecs.Entity, position cp.Vector, distance, now float64, origin Origin) bool {
	if c == nil || !e.Valid() {
		return false
	}
	if c.has && c.entity == e {
		return false
	}
	c.entity = e
	c.position = position
	c.distance = distance
	c.refreshedAt = now
	c.origin = origin
	c.has = true
	return true
}

// Refresh updates the cached position and distance of the committed target.
func (c *TargetCache) Refresh(position cp.Vector, distance, now float64) {
	if c == nil || !c.has {
		return
	}
	c.position = position
	c.distance = distance
	c.refreshedAt = now
}

func (c *TargetCache) Reset() {
	if c == nil {
		return
	}
	*c = TargetCache{cfg: c.cfg}
}

func (c *TargetCache) Target() (ecs.Entity, bool) {
	if c == nil || !c.has {
		return 0, false
	}
	return c.entity, true
}

func (c *TargetCache) Has() bool { return c != nil && c.has }

func (c *TargetCache) Position() cp.Vector {
	if c == nil {
		return cp.Vector{}
	}
	return c.position
}

func (c *TargetCache) Distance() float64 {
	if c == nil {
		return 0
	}
	return c.distance
}

func (c *TargetCache) RefreshedAt() float64 {
	if c == nil {
		return 0
	}
	return c.refreshedAt
}

func (c *TargetCache) Origin() Origin {
	if c == nil || !c.has {
		return OriginNone
	}
	return c.origin
}
