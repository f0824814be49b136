package component

import "github.com/jakecoffman/cp"

// StateKind is the tagged AI state variant. New enemy behavior is new data
// on these variants, not new enemy types.
type StateKind uint8

const (
	StateIdle StateKind = iota
	StatePatrol
	StateChase
	StateAttack
	StateDead
)

func (s StateKind) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateAttack:
		return "attack"
	case StateDead:
		return "dead"
	}
	return "unknown"
}

// StateKindFromString maps a state name back to its variant; unknown names
// return StateIdle and false.
func StateKindFromString(name string) (StateKind, bool) {
	switch name {
	case "idle":
		return StateIdle, true
	case "patrol":
		return StatePatrol, true
	case "chase":
		return StateChase, true
	case "attack":
		return StateAttack, true
	case "dead":
		return StateDead, true
	}
	return StateIdle, false
}

// AIState is the per-enemy FSM runtime state.
type AIState struct {
	Current  StateKind
	Waypoint int

	IdleTimer   float64
	GraceTimer  float64
	AttackTimer float64

	LastSeen  cp.Vector
	HasTarget bool
}

var AIStateComponent = NewComponent[AIState]()
