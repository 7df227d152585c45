package combat

// Deadlines replaces coroutine waits. Each entry fires once when polled at or
// after its time, but only if the caller's generation still matches the one it
// was scheduled under.
type Deadlines struct {
	pending []deadline
}

type deadline struct {
	fireAt     float64
	generation uint64
	action     func()
}

// Schedule queues action for fireAt under generation.
func (d *Deadlines) Schedule(fireAt float64, generation uint64, action func()) {
	if d == nil || action == nil {
		return
	}
	d.pending = append(d.pending, deadline{fireAt: fireAt, generation: generation, action: action})
}

// Poll runs every due entry scheduled under generation and drops due entries
// from older generations. Returns the number of actions run.
func (d *Deadlines) Poll(now float64, generation uint64) int {
	if d == nil || len(d.pending) == 0 {
		return 0
	}
	var due []deadline
	kept := d.pending[:0]
	for _, p := range d.pending {
		switch {
		case p.generation != generation:
			// stale, drop
		case now >= p.fireAt:
			due = append(due, p)
		default:
			kept = append(kept, p)
		}
	}
	d.pending = kept

	for _, p := range due {
		p.action()
	}
	return len(due)
}

func (d *Deadlines) Len() int {
	if d == nil {
		return 0
	}
	return len(d.pending)
}

func (d *Deadlines) Clear() {
	if d != nil {
		d.pending = nil
	}
}
