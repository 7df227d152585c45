package combat

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/common"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/logging"
	"github.com/sirupsen/logrus"
)

// Config is the full auto-combat tuning for one agent.
type Config struct {
	Targeting TargetingConfig
	Weights   WeightConfig
	Cache     CacheConfig
	Machine   MachineConfig

	// AttackDelay is the wait between entering Attack and the first strike.
	AttackDelay    float64
	AttackCooldown float64
	// MinDistance stops synthetic chase movement this close to the target.
	MinDistance float64
	Enabled     bool
}

func DefaultConfig() Config {
	return Config{
		Targeting:      DefaultTargetingConfig(),
		Weights:        DefaultWeightConfig(),
		Cache:          DefaultCacheConfig(),
		Machine:        DefaultMachineConfig(),
		AttackDelay:    0.1,
		AttackCooldown: 0.5,
		MinDistance:    2,
	}
}

// Deps are injected at construction. Any of them may be nil; the agent then
// does nothing that needs the missing piece.
type Deps struct {
	Self      ecs.Entity
	Spatial   SpatialQuery
	Resolver  EntityResolver
	Registry  *EnemyRegistry
	Animation AnimationSink
	Mover     Mover
	Manual    ManualSource
	// Hooks run after the default animation and movement hooks.
	Hooks Hooks
	// Strike is called each time an attack lands on the committed target.
	Strike func(target ecs.Entity, now float64)
}

// AutoCombat drives one agent: targeting, combat state and the synthetic
// movement vector fed to its InputArbiter.
type AutoCombat struct {
	cfg  Config
	deps Deps

	targeter  *Targeter
	machine   *StateMachine
	input     *InputArbiter
	deadlines Deadlines

	enabled bool
	now     float64
	strikes int

	log *logrus.Entry
}

func New(cfg Config, deps Deps) *AutoCombat {
	a := &AutoCombat{
		cfg:   cfg,
		deps:  deps,
		input: NewInputArbiter(deps.Manual),
		log:   logging.For("auto_combat").WithField("agent", deps.Self.String()),
	}
	a.targeter = NewTargeter(cfg.Targeting, cfg.Weights, cfg.Cache, TargeterDeps{
		Self:     deps.Self,
		Spatial:  deps.Spatial,
		Resolver: deps.Resolver,
		Registry: deps.Registry,
	})
	hooks := DefaultHooks(deps.Animation, deps.Mover).Merge(deps.Hooks)
	a.machine = NewStateMachine(cfg.Machine, hooks)
	a.machine.OnTransition(a.onTransition)
	return a
}

func (a *AutoCombat) Config() Config {
	if a == nil {
		return DefaultConfig()
	}
	return a.cfg
}

// SetConfig applies new tuning without resetting state.
func (a *AutoCombat) SetConfig(cfg Config) {
	if a == nil {
		return
	}
	global := a.targeter.Config().GlobalSearch
	a.cfg = cfg
	a.targeter.SetConfig(cfg.Targeting)
	a.targeter.SetGlobalSearch(global, a.now)
	a.targeter.Weights().SetConfig(cfg.Weights)
	a.targeter.Cache().SetConfig(cfg.Cache)
	a.machine.SetConfig(cfg.Machine)
}

func (a *AutoCombat) Enabled() bool { return a != nil && a.enabled }

// SetEnabled toggles auto-combat. Enabling hands movement to the synthetic
// source and runs a pass straight away; disabling drops the target, returns
// to Idle and gives control back to the manual source.
func (a *AutoCombat) SetEnabled(enabled bool, now float64) {
	if a == nil || a.enabled == enabled {
		return
	}
	a.enabled = enabled
	a.log.WithFields(logrus.Fields{"enabled": enabled}).Debug("auto combat toggled")
	if enabled {
		a.input.SetPriority(PrioritySynthetic)
		a.targeter.ForceDetection(now)
		a.Tick(now)
		return
	}
	a.targeter.Reset()
	a.machine.Reset(now)
	a.deadlines.Clear()
	a.input.SetPriority(PriorityManual)
}

func (a *AutoCombat) GlobalSearch() bool {
	return a != nil && a.targeter.Config().GlobalSearch
}

func (a *AutoCombat) SetGlobalSearch(enabled bool, now float64) {
	if a == nil {
		return
	}
	a.targeter.SetGlobalSearch(enabled, now)
}

// SetTarget commits e as an explicit target.
func (a *AutoCombat) SetTarget(e ecs.Entity, now float64) bool {
	if a == nil || a.deps.Resolver == nil {
		return false
	}
	pos, ok := a.deps.Resolver.Position(a.deps.Self)
	if !ok {
		return false
	}
	return a.targeter.SetTarget(e, pos, now)
}

// Stun forwards an external stun signal to the state machine.
func (a *AutoCombat) Stun(now, duration float64) bool {
	if a == nil {
		return false
	}
	a.now = now
	if !a.machine.Stun(now, duration) {
		return false
	}
	a.input.ClearSynthetic()
	a.log.WithFields(logrus.Fields{"duration": duration}).Debug("stunned")
	return true
}

// Tick advances the agent to now. Call once per simulation tick.
func (a *AutoCombat) Tick(now float64) {
	if a == nil {
		return
	}
	a.now = now
	a.deadlines.Poll(now, a.machine.Generation())

	if a.machine.IsStunned() {
		info := a.targeter.Target()
		a.machine.Update(now, info.Ok, info.Distance)
		return
	}
	if !a.enabled || a.deps.Resolver == nil {
		return
	}
	agentPos, ok := a.deps.Resolver.Position(a.deps.Self)
	if !ok {
		return
	}

	info := a.targeter.Tick(now, agentPos)
	a.machine.Update(now, info.Ok, info.Distance)
	a.steer(agentPos, info)
}

func (a *AutoCombat) steer(agentPos cp.Vector, info TargetInfo) {
	stop := math.Min(a.cfg.MinDistance, a.machine.Config().AttackRadius)
	if a.machine.State() != StateChase || !info.Ok || info.Distance <= stop {
		a.input.SetSynthetic(cp.Vector{})
		return
	}
	a.input.SetSynthetic(common.Direction(agentPos, info.Position))
}

func (a *AutoCombat) onTransition(t Transition) {
	a.log.WithFields(logrus.Fields{
		"from": string(t.From),
		"to":   string(t.To),
	}).Debug("combat state changed")

	if t.To == StateAttack {
		a.scheduleStrike(t.At+a.cfg.AttackDelay, a.machine.Generation())
	}
}

func (a *AutoCombat) scheduleStrike(at float64, gen uint64) {
	a.deadlines.Schedule(at, gen, func() {
		info := a.targeter.Target()
		if info.Ok && a.deps.Resolver != nil && a.deps.Resolver.IsActive(info.Entity) {
			a.strikes++
			if a.deps.Strike != nil {
				a.deps.Strike(info.Entity, a.now)
			}
		}
		if a.cfg.AttackCooldown > 0 {
			a.scheduleStrike(a.now+a.cfg.AttackCooldown, gen)
		}
	})
}

func (a *AutoCombat) State() State {
	if a == nil {
		return StateIdle
	}
	return a.machine.State()
}

func (a *AutoCombat) Target() TargetInfo {
	if a == nil {
		return TargetInfo{}
	}
	return a.targeter.Target()
}

// Strikes counts attacks landed since construction.
func (a *AutoCombat) Strikes() int {
	if a == nil {
		return 0
	}
	return a.strikes
}

func (a *AutoCombat) Input() *InputArbiter {
	if a == nil {
		return nil
	}
	return a.input
}

func (a *AutoCombat) Machine() *StateMachine {
	if a == nil {
		return nil
	}
	return a.machine
}

func (a *AutoCombat) Targeter() *Targeter {
	if a == nil {
		return nil
	}
	return a.targeter
}

func (a *AutoCombat) Deadlines() *Deadlines {
	if a == nil {
		return nil
	}
	return &a.deadlines
}
