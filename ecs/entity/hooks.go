package entity

import (
	"fmt"

	"github.com/milk9111/autocombat/combat"
	"github.com/milk9111/autocombat/ecs/system"
	"github.com/milk9111/autocombat/prefabs"
)

// loadHooks compiles the hook file and the optional script for one entity.
func loadHooks(hookFile, script string, hc *system.HookContext) (combat.Hooks, error) {
	hooks := combat.Hooks{}
	if hookFile != "" {
		spec, err := prefabs.LoadHookSpec(hookFile)
		if err != nil {
			return nil, fmt.Errorf("hooks: %w", err)
		}
		compiled, err := system.CompileHooks(spec, hc)
		if err != nil {
			return nil, fmt.Errorf("hooks %s: %w", hookFile, err)
		}
		hooks = hooks.Merge(compiled)
	}
	if script == "" {
		return hooks, nil
	}
	cs, err := system.LoadCombatScript(script, hc)
	if err != nil {
		return nil, err
	}
	return hooks.Merge(cs.Hooks()), nil
}
