package system

import (
	"fmt"
	"sort"

	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/prefabs"
	"github.com/sirupsen/logrus"
)

// HookContext is what a compiled hook action can touch.
type HookContext struct {
	World     *ecs.World
	Entity    ecs.Entity
	Animation combat.AnimationSink
	Mover     combat.Mover
	Log       *logrus.Entry
}

// HookEvent is the payload of events pushed by the emit action.
type HookEvent struct {
	Entity ecs.Entity
	From   combat.State
	To     combat.State
}

type HookAction func(hc *HookContext, from, to combat.State)

var hookRegistry = map[string]func(any) (HookAction, error){
	"set_bool": func(arg any) (HookAction, error) {
		m, ok := arg.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("set_bool: want {name, value}, got %T", arg)
		}
		name := asString(m["name"])
		if name == "" {
			return nil, fmt.Errorf("set_bool: missing name")
		}
		value, ok := asBool(m["value"])
		if !ok {
			value = true
		}
		return func(hc *HookContext, _, _ combat.State) {
			if hc.Animation != nil {
				hc.Animation.SetBool(name, value)
			}
		}, nil
	},
	"clear_bools": func(arg any) (HookAction, error) {
		list, ok := arg.([]any)
		if !ok {
			return nil, fmt.Errorf("clear_bools: want a list, got %T", arg)
		}
		names := make([]string, 0, len(list))
		for _, v := range list {
			if s := asString(v); s != "" {
				names = append(names, s)
			}
		}
		return func(hc *HookContext, _, _ combat.State) {
			if hc.Animation == nil {
				return
			}
			for _, n := range names {
				hc.Animation.SetBool(n, false)
			}
		}, nil
	},
	"halt_movement": func(any) (HookAction, error) {
		return func(hc *HookContext, _, _ combat.State) {
			if hc.Mover != nil {
				hc.Mover.Halt()
			}
		}, nil
	},
	"resume_movement": func(any) (HookAction, error) {
		return func(hc *HookContext, _, _ combat.State) {
			if hc.Mover != nil {
				hc.Mover.Resume()
			}
		}, nil
	},
	"log": func(arg any) (HookAction, error) {
		msg := asString(arg)
		return func(hc *HookContext, from, to combat.State) {
			if hc.Log == nil {
				return
			}
			hc.Log.WithFields(logrus.Fields{
				"entity": hc.Entity.String(),
				"from":   string(from),
				"to":     string(to),
			}).Info(msg)
		}, nil
	},
	"emit": func(arg any) (HookAction, error) {
		name := asString(arg)
		if name == "" {
			return nil, fmt.Errorf("emit: missing event name")
		}
		return func(hc *HookContext, from, to combat.State) {
			if hc.World == nil {
				return
			}
			hc.World.Events().Push(ecs.Event{Type: name, Data: HookEvent{Entity: hc.Entity, From: from, To: to}})
		}, nil
	},
}

// HookActionNames lists the actions a hook file may use.
func HookActionNames() []string {
	out := make([]string, 0, len(hookRegistry))
	for name := range hookRegistry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CompileHooks turns a hook file into state hooks bound to hc.
func CompileHooks(spec *prefabs.HookSpec, hc *HookContext) (combat.Hooks, error) {
	hooks := combat.Hooks{}
	if spec == nil {
		return hooks, nil
	}
	if hc == nil {
		hc = &HookContext{}
	}

	build := func(list []map[string]any) ([]HookAction, error) {
		out := make([]HookAction, 0, len(list))
		for _, entry := range list {
			// map order is random; keep each entry's keys stable
			keys := make([]string, 0, len(entry))
			for k := range entry {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				makeAction, ok := hookRegistry[k]
				if !ok {
					return nil, fmt.Errorf("hooks: unknown action %q", k)
				}
				action, err := makeAction(entry[k])
				if err != nil {
					return nil, fmt.Errorf("hooks: %w", err)
				}
				out = append(out, action)
			}
		}
		return out, nil
	}

	for name, s := range spec.States {
		state, ok := combat.ParseState(name)
		if !ok {
			return nil, fmt.Errorf("hooks: unknown state %q", name)
		}
		onEnter, err := build(s.OnEnter)
		if err != nil {
			return nil, err
		}
		onExit, err := build(s.OnExit)
		if err != nil {
			return nil, err
		}
		for _, a := range onEnter {
			action := a
			hooks = hooks.AddEnter(state, func(from, to combat.State) { action(hc, from, to) })
		}
		for _, a := range onExit {
			action := a
			hooks = hooks.AddExit(state, func(from, to combat.State) { action(hc, from, to) })
		}
	}
	return hooks, nil
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch b {
		case "true", "True", "TRUE":
			return true, true
		case "false", "False", "FALSE":
			return false, true
		}
	}
	return false, false
}
