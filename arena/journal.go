package arena

import (
	"fmt"

	"github.com/milk9111/autocombat/ecs"
	"github.com/milk9111/autocombat/ecs/system"
	"github.com/sirupsen/logrus"
)

const journalLines = 8

// Stats summarises what happened in a run.
type Stats struct {
	Ticks         int
	Strikes       int
	PlayerStrikes int
	Kills         int
	PlayerDied    bool
	Transitions   int
	TargetChanges int
	// Events counts every event type seen, hook emits included.
	Events map[string]int
}

// journal is the last system in the world. It drains the tick's events into
// Stats and a short human-readable log.
type journal struct {
	arena *Arena
	stats Stats
	lines []string
}

func newJournal(a *Arena) *journal {
	return &journal{arena: a, stats: Stats{Events: map[string]int{}}}
}

func (j *journal) Update(w *ecs.World) {
	j.stats.Ticks++
	for _, evt := range w.Events().Drain() {
		j.stats.Events[evt.Type]++
		switch data := evt.Data.(type) {
		case system.StrikeEvent:
			j.stats.Strikes++
			if data.Attacker == j.arena.player {
				j.stats.PlayerStrikes++
			}
		case system.DeathEvent:
			if data.Enemy {
				j.stats.Kills++
			} else if data.Entity == j.arena.player {
				j.stats.PlayerDied = true
			}
			j.add(w.Now(), fmt.Sprintf("%s died", j.name(data.Entity)))
		case system.StateChangeEvent:
			j.stats.Transitions++
			if data.Entity == j.arena.player {
				j.add(w.Now(), fmt.Sprintf("player %s -> %s", data.Transition.From, data.Transition.To))
			}
		case system.TargetEvent:
			j.stats.TargetChanges++
			j.add(w.Now(), fmt.Sprintf("target %s (%s)", j.name(data.Change.Next), data.Change.Origin))
		}
		j.arena.log.WithFields(logrus.Fields{"event": evt.Type, "t": w.Now()}).Trace("event")
	}
}

func (j *journal) name(e ecs.Entity) string {
	if e == j.arena.player {
		return "player"
	}
	if !e.Valid() {
		return "none"
	}
	return "enemy " + e.String()
}

func (j *journal) add(now float64, line string) {
	j.lines = append(j.lines, fmt.Sprintf("%6.2fs %s", now, line))
	if len(j.lines) > journalLines {
		j.lines = j.lines[len(j.lines)-journalLines:]
	}
}

// Stats returns a copy of the run statistics.
func (a *Arena) Stats() Stats {
	s := a.journal.stats
	s.Events = make(map[string]int, len(a.journal.stats.Events))
	for k, v := range a.journal.stats.Events {
		s.Events[k] = v
	}
	return s
}

// Journal returns the most recent log lines, oldest first.
func (a *Arena) Journal() []string {
	return append([]string(nil), a.journal.lines...)
}
