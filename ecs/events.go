package ecs

// Event is a frame-scoped simulation event. Events pushed during a tick are
// readable until the end of that tick, then dropped.
type Event struct {
	Type string
	Data any
}

const (
	EventEnemyKilled   = "enemy_killed"
	EventPlayerDamaged = "player_damaged"
	EventShotFired     = "shot_fired"
)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
