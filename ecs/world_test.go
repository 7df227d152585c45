package ecs

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/autocombat/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
			}
		})
	}
}

func TestWorldStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity()
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if w.IsAlive(old) {
		t.Fatalf("stale handle %v should not resolve after slot reuse", old)
	}
	if !w.IsAlive(fresh) {
		t.Fatalf("fresh handle %v should be alive", fresh)
	}
}

func TestWorldActiveFlag(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()

	if !w.IsActive(e) {
		t.Fatalf("new entities start active")
	}
	w.SetActive(e, false)
	if w.IsActive(e) || !w.IsAlive(e) {
		t.Fatalf("inactive entity should stay alive but report inactive")
	}
	w.DestroyEntity(e)
	if w.SetActive(e, true) {
		t.Fatalf("SetActive on a dead entity should fail")
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldComponentsAndQueries(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, ints.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, strs.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, strs.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				got := toSet(w.Query(ints.Kind(), strs.Kind()))
				if _, ok := got[e1]; !ok || len(got) != 1 {
					t.Fatalf("expected only e1 to match both kinds, got %v", got)
				}
			},
		},
		{
			name:  "nil_value_rejected",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				var nilInt *int
				if err := Add(w, e3, ints.Kind(), nilInt); err != component.ErrNilComponent {
					t.Fatalf("expected ErrNilComponent, got %v", err)
				}
			},
		},
		{
			name:  "mutation_through_pointer",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				v, _ := Get(w, e1, ints.Kind())
				*v = 42
				again, _ := Get(w, e1, ints.Kind())
				if *again != 42 {
					t.Fatalf("expected in-place mutation, got %d", *again)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}

	t.Run("destroy_drops_components", func(t *testing.T) {
		w.DestroyEntity(e1)
		if Has(w, e1, ints.Kind()) {
			t.Fatalf("dead entity should not report components")
		}
		if _, ok := w.First(ints.Kind()); ok {
			t.Fatalf("no alive entity carries an int anymore")
		}
	})

	t.Run("add_to_dead_entity", func(t *testing.T) {
		if err := Add(w, e1, ints.Kind(), intPtr(1)); err != component.ErrEntityNotAlive {
			t.Fatalf("expected ErrEntityNotAlive, got %v", err)
		}
	})
}

func TestWorldOnDestroyListener(t *testing.T) {
	w := NewWorld()
	handle := component.NewComponent[int]()
	e := w.CreateEntity()
	_ = Add(w, e, handle.Kind(), intPtr(7))

	var seen []int
	w.OnDestroy(func(dead Entity) {
		// components are still readable inside the listener
		if v, ok := Get(w, dead, handle.Kind()); ok {
			seen = append(seen, *v)
		}
	})
	w.DestroyEntity(e)

	if len(seen) != 1 || seen[0] != 7 {
		t.Fatalf("expected listener to observe value 7, got %v", seen)
	}
}

type recordingSystem struct {
	name string
	log  *[]string
}

func (s recordingSystem) Update(*World) { *s.log = append(*s.log, s.name) }

func TestWorldStepAndScheduler(t *testing.T) {
	var order []string
	w := NewWorld()
	w.AddSystem(recordingSystem{name: "a", log: &order})
	w.AddSystem(NewScheduler(
		recordingSystem{name: "b", log: &order},
		nil,
		recordingSystem{name: "c", log: &order},
	))
	w.AddSystem(recordingSystem{name: "d", log: &order})

	w.Step(0.5)
	w.Step(0.25)

	want := []string{"a", "b", "c", "d", "a", "b", "c", "d"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
	if w.Now() != 0.75 || w.DeltaTime() != 0.25 {
		t.Fatalf("unexpected clock now=%v dt=%v", w.Now(), w.DeltaTime())
	}
}

func TestWorldEventsFlushEachTick(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: EventStrike})
	if len(w.Events().Peek()) != 1 {
		t.Fatalf("expected pending event")
	}
	w.Step(0.1)
	if len(w.Events().Peek()) != 0 {
		t.Fatalf("expected queue flushed after step")
	}
}

func TestPhysicsWorldQueryNearby(t *testing.T) {
	cases := []struct {
		name   string
		radius float64
		tag    component.Tag
		want   int
	}{
		{"enemies_in_range", 10, component.TagEnemy, 2},
		{"tight_radius", 3, component.TagEnemy, 1},
		{"players_only", 10, component.TagPlayer, 1},
		{"zero_radius", 0, component.TagEnemy, 0},
	}

	w := NewWorld()
	pw := NewPhysicsWorld(DefaultPhysicsStep)
	w.SetPhysicsWorld(pw)

	player := w.CreateEntity()
	near := w.CreateEntity()
	far := w.CreateEntity()
	outside := w.CreateEntity()
	pw.AddBody(player, cp.Vector{}, 0.5, component.TagPlayer)
	pw.AddBody(near, cp.Vector{X: 2}, 0.5, component.TagEnemy)
	pw.AddBody(far, cp.Vector{Y: 8}, 0.5, component.TagEnemy)
	pw.AddBody(outside, cp.Vector{X: 30}, 0.5, component.TagEnemy)

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := w.QueryNearby(cp.Vector{}, c.radius, c.tag)
			if len(got) != c.want {
				t.Fatalf("expected %d hits, got %d (%v)", c.want, len(got), got)
			}
		})
	}

	t.Run("nearest_first", func(t *testing.T) {
		got := pw.QueryNearby(cp.Vector{}, 10, component.TagEnemy)
		if len(got) != 2 || got[0] != near || got[1] != far {
			t.Fatalf("expected [near far], got %v", got)
		}
	})

	t.Run("inactive_filtered", func(t *testing.T) {
		w.SetActive(near, false)
		defer w.SetActive(near, true)
		got := w.QueryNearby(cp.Vector{}, 10, component.TagEnemy)
		if len(got) != 1 || got[0] != far {
			t.Fatalf("expected only far, got %v", got)
		}
	})

	t.Run("removed_body", func(t *testing.T) {
		pw.RemoveBody(far)
		got := pw.QueryNearby(cp.Vector{}, 10, component.TagEnemy)
		if len(got) != 1 || got[0] != near {
			t.Fatalf("expected only near, got %v", got)
		}
	})
}

func TestPhysicsWorldAdvanceFixedSteps(t *testing.T) {
	pw := NewPhysicsWorld(0.1)
	e := makeEntity(1, 0)
	pw.AddBody(e, cp.Vector{}, 0.5, component.TagPlayer)
	pw.SetVelocity(e, cp.Vector{X: 1})

	if steps := pw.Advance(0.25); steps != 2 {
		t.Fatalf("expected 2 fixed steps, got %d", steps)
	}
	if steps := pw.Advance(0.06); steps != 1 {
		t.Fatalf("expected carried remainder to produce 1 step, got %d", steps)
	}
	pos, ok := pw.Position(e)
	if !ok || pos.X <= 0 {
		t.Fatalf("expected body to move along +X, got %v ok=%v", pos, ok)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}
