package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/mattn/go-runewidth"
	"github.com/milk9111/autocombat/arena"
	"github.com/milk9111/autocombat/prefabs"
	"github.com/sirupsen/logrus"
)

// runner advances an arena at a fixed step, applying prefab edits between
// ticks.
type runner struct {
	arena   *arena.Arena
	dt      float64
	watcher *prefabs.Watcher
	log     *logrus.Entry
}

func (r *runner) tick() {
	if changed := r.watcher.Drain(); len(changed) > 0 {
		if ok, err := r.arena.HandleChanges(changed); err != nil {
			r.log.WithError(err).Warn("reload failed")
		} else if ok {
			r.log.WithField("files", changed).Info("tuning reloaded")
		}
	}
	r.arena.Step(r.dt)
}

// run steps up to ticks times and returns how many ran.
func (r *runner) run(ticks int, untilDone bool) int {
	n := 0
	for ; n < ticks; n++ {
		if untilDone && r.arena.Done() {
			break
		}
		r.tick()
	}
	r.log.WithFields(logrus.Fields{"ticks": n, "time": r.arena.Now()}).Info("run finished")
	return n
}

func writeSummary(w io.Writer, scenario string, a *arena.Arena) {
	stats := a.Stats()
	outcome := "running"
	switch {
	case !a.PlayerAlive():
		outcome = "player defeated"
	case a.EnemiesLeft() == 0:
		outcome = "arena cleared"
	}

	fmt.Fprintf(w, "scenario   %s\n", scenario)
	fmt.Fprintf(w, "outcome    %s after %.2fs (%d ticks, %d physics steps)\n", outcome, a.Now(), stats.Ticks, a.PhysicsSteps())
	fmt.Fprintf(w, "kills      %d\n", stats.Kills)
	fmt.Fprintf(w, "strikes    %d (player %d)\n", stats.Strikes, stats.PlayerStrikes)
	fmt.Fprintf(w, "changes    %d state, %d target\n", stats.Transitions, stats.TargetChanges)
	fmt.Fprintf(w, "auto       %v, global search %v\n", a.AutoCombat(), a.GlobalSearch())

	if len(stats.Events) > 0 {
		names := make([]string, 0, len(stats.Events))
		for name := range stats.Events {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(w, "events")
		for _, name := range names {
			fmt.Fprintf(w, "  %s %d\n", pad(name, 22), stats.Events[name])
		}
	}

	fmt.Fprintln(w, "actors")
	for _, act := range a.Actors() {
		role := "enemy"
		if act.Player {
			role = "player"
		}
		status := string(act.State)
		if !act.Active {
			status = "inactive"
		}
		fmt.Fprintf(w, "  %s %s %s hp %5.1f/%-5.1f at (%6.2f, %6.2f)\n",
			pad(act.Entity.String(), 10), pad(role, 7), pad(status, 9), act.Health, act.MaxHealth, act.Position.X, act.Position.Y)
	}
}

// pad right-fills s to width display columns.
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}

// listScenarios prints every loadable arena prefab. Disk overrides are
// marked with their modification time.
func listScenarios(w io.Writer) int {
	n := 0
	for _, name := range prefabs.Names() {
		spec, err := prefabs.LoadArenaSpec(name)
		if err != nil {
			continue
		}
		source := "embedded"
		if mod, ok := prefabs.ModTime(name); ok {
			source = "disk " + mod.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s %s %2d enemies  %s\n", pad(name, 18), pad(spec.Name, 16), len(spec.Enemies), source)
		n++
	}
	return n
}
