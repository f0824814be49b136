package ecs

import "github.com/milk9111/corridor/ecs/component"

// System updates a world once per simulation tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, and system order. All mutation
// happens on the single simulation goroutine; nothing here is synchronized.
type World struct {
	entities entityStore
	systems  []System
	events   EventQueue
	stores   map[component.ComponentID]*SparseSet
	step     float64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*SparseSet{}}
}

// CreateEntity allocates a new entity handle.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity kills an entity and drops all of its components. Returns
// false for handles that are already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return true
}

// IsAlive reports whether an entity handle is still valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once in registration order, then flushes any
// unread events so they never leak across ticks.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		s.Update(w)
	}
	w.events.flush()
}

// SetStep sets the fixed simulation timestep in seconds.
func (w *World) SetStep(dt float64) {
	if w == nil {
		return
	}
	w.step = dt
}

// Step returns the fixed simulation timestep in seconds.
func (w *World) Step() float64 {
	if w == nil {
		return 0
	}
	return w.step
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Store returns the sparse set for a component id, creating it on first use.
func (w *World) Store(id component.ComponentID) *SparseSet {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = map[component.ComponentID]*SparseSet{}
	}
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// store returns the sparse set for a component id without creating it.
func (w *World) store(id component.ComponentID) *SparseSet {
	if w == nil || w.stores == nil {
		return nil
	}
	return w.stores[id]
}

// First returns any one live entity holding the component, typically used
// for singletons like the player.
func (w *World) First(id component.ComponentID) (Entity, bool) {
	s := w.store(id)
	if s == nil {
		return 0, false
	}
	for _, e := range s.Entities() {
		if w.IsAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Query returns all live entities holding every listed component. Iterates
// the smallest store and probes the rest.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	smallest := w.store(ids[0])
	for _, id := range ids[1:] {
		s := w.store(id)
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	if smallest == nil {
		return nil
	}
	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.Entities() {
		if !w.IsAlive(e) {
			continue
		}
		ok := true
		for _, id := range ids {
			if !w.store(id).Has(e) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}
