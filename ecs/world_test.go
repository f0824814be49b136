package ecs

import (
	"testing"

	"github.com/milk9111/corridor/ecs/component"
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
			for _, e := range ents {
				if !w.IsAlive(e) {
					t.Fatalf("entity %v should be alive after create", e)
				}
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for dead entity")
				}
			}
		})
	}
}

func TestWorldStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	first := w.CreateEntity()
	if !w.DestroyEntity(first) {
		t.Fatalf("destroy failed")
	}
	second := w.CreateEntity()
	if second == first {
		t.Fatalf("reused slot must carry a new generation")
	}
	if w.IsAlive(first) {
		t.Fatalf("stale handle must not resolve after id reuse")
	}
	if !w.IsAlive(second) {
		t.Fatalf("new handle must resolve")
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	t.Run("add_get_mutate", func(t *testing.T) {
		if err := Add(w, e1, h1.Kind(), intPtr(10)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		v, ok := Get(w, e1, h1.Kind())
		if !ok || *v != 10 {
			t.Fatalf("expected 10, got %v ok=%v", v, ok)
		}
		*v = 20
		v2, _ := Get(w, e1, h1.Kind())
		if *v2 != 20 {
			t.Fatalf("Get must return a pointer into the store, got %d", *v2)
		}
	})

	t.Run("add_nil_rejected", func(t *testing.T) {
		if err := Add[int](w, e2, h1.Kind(), nil); err == nil {
			t.Fatalf("expected error for nil component")
		}
	})

	t.Run("add_to_dead_rejected", func(t *testing.T) {
		dead := w.CreateEntity()
		w.DestroyEntity(dead)
		if err := Add(w, dead, h1.Kind(), intPtr(1)); err == nil {
			t.Fatalf("expected error for dead entity")
		}
	})

	t.Run("remove", func(t *testing.T) {
		if err := Add(w, e2, h2.Kind(), stringPtr("a")); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if !Remove(w, e2, h2.Kind()) {
			t.Fatalf("Remove should report true for present component")
		}
		if Has(w, e2, h2.Kind()) {
			t.Fatalf("component should be gone after Remove")
		}
		if Remove(w, e2, h2.Kind()) {
			t.Fatalf("Remove should report false when absent")
		}
	})

	t.Run("destroy_drops_components", func(t *testing.T) {
		e := w.CreateEntity()
		if err := Add(w, e, h1.Kind(), intPtr(5)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		w.DestroyEntity(e)
		if _, ok := Get(w, e, h1.Kind()); ok {
			t.Fatalf("dead entity must not resolve components")
		}
	})
}

func TestWorldQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ha := component.NewComponent[int]()
	hb := component.NewComponent[string]()

	both := w.CreateEntity()
	onlyA := w.CreateEntity()

	if err := Add(w, both, ha.Kind(), intPtr(1)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := Add(w, both, hb.Kind(), stringPtr("x")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := Add(w, onlyA, ha.Kind(), intPtr(2)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got := w.Query(ha.ID(), hb.ID())
	if len(got) != 1 || got[0] != both {
		t.Fatalf("Query should return only the entity with both components, got %v", got)
	}

	e, ok := w.First(hb.ID())
	if !ok || e != both {
		t.Fatalf("First should find the only holder, got %v ok=%v", e, ok)
	}

	w.DestroyEntity(both)
	if _, ok := w.First(hb.ID()); ok {
		t.Fatalf("First must skip dead entities")
	}
}

func TestForEachAllowsDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	for i := 0; i < 4; i++ {
		e := w.CreateEntity()
		if err := Add(w, e, h.Kind(), intPtr(i)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	visited := 0
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		visited++
		w.DestroyEntity(e)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
	if left := w.Query(h.ID()); len(left) != 0 {
		t.Fatalf("expected no live holders, got %v", left)
	}
}

func TestEventQueueDrainAndFlush(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: EventShotFired})
	w.Events().Push(Event{Type: EventEnemyKilled})

	got := w.Events().Drain()
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if len(w.Events().Drain()) != 0 {
		t.Fatalf("Drain must clear the queue")
	}

	w.Events().Push(Event{Type: EventPlayerDamaged})
	w.Update() // no systems; flush only
	if len(w.Events().Drain()) != 0 {
		t.Fatalf("unread events must not leak across ticks")
	}
}
