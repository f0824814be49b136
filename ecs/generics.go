package ecs

import "github.com/milk9111/corridor/ecs/component"

// Add attaches a component to a live entity, replacing any existing value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if value == nil {
		return component.ErrNilComponent
	}
	if !kind.Valid() {
		return component.ErrInvalidKind
	}
	if w == nil || !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.Store(kind.ID()).Set(e, value)
	return nil
}

// Remove detaches a component from an entity. Returns true if it was present.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID()).Remove(e)
}

// Has reports whether a live entity holds the component.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	return w.store(kind.ID()).Has(e)
}

// Get returns a pointer to the entity's component so callers mutate in place.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.IsAlive(e) {
		return nil, false
	}
	v := w.store(kind.ID()).Get(e)
	cast, ok := v.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// ForEach visits every live entity holding the component.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(e Entity, v *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(kind.ID())
	if s == nil {
		return
	}
	// iterate a snapshot so fn may add or destroy entities
	ents := append([]Entity(nil), s.Entities()...)
	for _, e := range ents {
		if !w.IsAlive(e) {
			continue
		}
		if v, ok := s.Get(e).(*T); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits every live entity holding both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(e Entity, a *A, b *B)) {
	if w == nil || fn == nil {
		return
	}
	sa, sb := w.store(ka.ID()), w.store(kb.ID())
	if sa == nil || sb == nil {
		return
	}
	ents := append([]Entity(nil), sa.Entities()...)
	for _, e := range ents {
		if !w.IsAlive(e) || !sb.Has(e) {
			continue
		}
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// ForEach3 visits every live entity holding all three components.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(e Entity, a *A, b *B, c *C)) {
	if w == nil || fn == nil {
		return
	}
	sa, sb, sc := w.store(ka.ID()), w.store(kb.ID()), w.store(kc.ID())
	if sa == nil || sb == nil || sc == nil {
		return
	}
	ents := append([]Entity(nil), sa.Entities()...)
	for _, e := range ents {
		if !w.IsAlive(e) || !sb.Has(e) || !sc.Has(e) {
			continue
		}
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		c, okC := sc.Get(e).(*C)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}
