package system

import (
	"github.com/milk9111/corridor/collision"
	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
)

// MovementSystem applies each entity's requested velocity through the
// collision resolver. Projectiles do not carry a Body and fly through a
// separate path so walls stop them instead of sliding them.
type MovementSystem struct {
	resolver *collision.Resolver
}

func NewMovementSystem(resolver *collision.Resolver) *MovementSystem {
	return &MovementSystem{resolver: resolver}
}

func (s *MovementSystem) Update(w *ecs.World) {
	dt := w.Step()
	ecs.ForEach3(w, component.PoseComponent.Kind(), component.MoveComponent.Kind(), component.BodyComponent.Kind(),
		func(e ecs.Entity, pose *component.Pose, move *component.Move, body *component.Body) {
			if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && health.Dead() {
				return
			}
			delta := move.Vel.Mult(dt)
			if delta.X == 0 && delta.Y == 0 {
				return
			}
			pose.Pos = pose.Pos.Add(s.resolver.Resolve(pose.Pos, body.Radius, delta))
		})
}
