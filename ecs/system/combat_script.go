package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/prefabs"
	"github.com/sirupsen/logrus"
)

const combatScriptDispatch = `
if __phase == "enter" {
	on_enter(__engine, __from, __to)
} else if __phase == "exit" {
	on_exit(__engine, __from, __to)
}
`

// CombatScript runs a tengo script's on_enter/on_exit functions on combat
// state boundaries. One instance per entity; __state survives between calls.
type CombatScript struct {
	path      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	hc        *HookContext
	engine    *tengo.ImmutableMap
}

// LoadCombatScript loads and compiles a script from prefabs/scripts.
func LoadCombatScript(path string, hc *HookContext) (*CombatScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("combat script %s: %w", path, err)
	}
	return CompileCombatScript(path, src, hc)
}

// CompileCombatScript compiles source. It must define on_enter and on_exit.
func CompileCombatScript(path string, src []byte, hc *HookContext) (*CombatScript, error) {
	if hc == nil {
		hc = &HookContext{}
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + combatScriptDispatch))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__from", "")
	_ = script.Add("__to", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("combat script %s: %w", path, err)
	}

	cs := &CombatScript{
		path:      path,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
		hc:        hc,
	}
	cs.engine = buildCombatScriptEngine(hc)
	return cs, nil
}

func (s *CombatScript) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// State returns a script-owned value from __state.
func (s *CombatScript) State(key string) any {
	if s == nil || s.stateData == nil {
		return nil
	}
	return objectToAny(s.stateData.Value[key])
}

// Hooks returns enter and exit hooks for every combat state. Script errors
// are logged and never stop the state change.
func (s *CombatScript) Hooks() combat.Hooks {
	hooks := combat.Hooks{}
	if s == nil {
		return hooks
	}
	for _, st := range []combat.State{combat.StateIdle, combat.StateChase, combat.StateAttack, combat.StateStunned} {
		hooks = hooks.AddEnter(st, func(from, to combat.State) { s.dispatch("enter", from, to) })
		hooks = hooks.AddExit(st, func(from, to combat.State) { s.dispatch("exit", from, to) })
	}
	return hooks
}

func (s *CombatScript) dispatch(phase string, from, to combat.State) {
	if err := s.Run(phase, from, to); err != nil && s.hc.Log != nil {
		s.hc.Log.WithError(err).WithFields(logrus.Fields{
			"script": s.path,
			"phase":  phase,
		}).Warn("combat script failed")
	}
}

// Run executes one phase ("enter" or "exit").
func (s *CombatScript) Run(phase string, from, to combat.State) error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("nil combat script")
	}
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", s.engine); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.stateData); err != nil {
		return err
	}
	if err := s.compiled.Set("__from", string(from)); err != nil {
		return err
	}
	if err := s.compiled.Set("__to", string(to)); err != nil {
		return err
	}
	return s.compiled.Run()
}

func buildCombatScriptEngine(hc *HookContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["set_bool"] = &tengo.UserFunction{Name: "set_bool", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if hc.Animation == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		value := true
		if len(args) > 1 {
			value = !args[1].IsFalsy()
		}
		hc.Animation.SetBool(name, value)
		return tengo.TrueValue, nil
	}}

	values["halt"] = &tengo.UserFunction{Name: "halt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if hc.Mover == nil {
			return tengo.FalseValue, nil
		}
		hc.Mover.Halt()
		return tengo.TrueValue, nil
	}}

	values["resume"] = &tengo.UserFunction{Name: "resume", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if hc.Mover == nil {
			return tengo.FalseValue, nil
		}
		hc.Mover.Resume()
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if hc.Log == nil || len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		hc.Log.WithField("entity", hc.Entity.String()).Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if hc.World == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		hc.World.Events().Push(ecs.Event{Type: name, Data: HookEvent{Entity: hc.Entity}})
		return tengo.TrueValue, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y := 0.0, 0.0
		if hc.World != nil {
			if p, ok := hc.World.Position(hc.Entity); ok {
				x, y = p.X, p.Y
			}
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
