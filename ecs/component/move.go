package component

import "github.com/jakecoffman/cp"

// Move holds the velocity requested for this tick, in map units per second.
// The movement system feeds it through the collision resolver; Vel is the
// request, not the result.
type Move struct {
	Vel       cp.Vector
	Speed     float64
	TurnSpeed float64
}

var MoveComponent = NewComponent[Move]()
