package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
)

// PlayerControllerSystem turns the frame's Intent into a facing change and a
// requested velocity. The movement system applies the velocity against the
// map, so walking into a wall slides rather than stops.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	player, ok := w.First(component.PlayerTagComponent.ID())
	if !ok {
		return
	}
	intent, okI := ecs.Get(w, player, component.IntentComponent.Kind())
	pose, okP := ecs.Get(w, player, component.PoseComponent.Kind())
	move, okM := ecs.Get(w, player, component.MoveComponent.Kind())
	if !okI || !okP || !okM {
		return
	}

	if health, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok && health.Dead() {
		move.Vel = cp.Vector{}
		return
	}

	dt := w.Step()
	pose.Angle = wrapAngle(pose.Angle + intent.Turn*move.TurnSpeed*dt)

	forward := cp.ForAngle(pose.Angle)
	right := cp.ForAngle(pose.Angle - math.Pi/2)
	vel := forward.Mult(intent.Forward).Add(right.Mult(intent.Strafe))
	// diagonal input must not outrun straight input
	if vel.Length() > 1 {
		vel = vel.Normalize()
	}
	move.Vel = vel.Mult(move.Speed)
}

func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
