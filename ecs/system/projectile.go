package system

import (
	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
	"github.com/milk9111/corridor/tilemap"
)

// ProjectileSystem advances enemy shots. A projectile dies on its first wall
// contact, on hitting the player, or when it outruns its range; it never
// slides along geometry.
type ProjectileSystem struct {
	level      *tilemap.Map
	hurtWindow float64
}

func NewProjectileSystem(level *tilemap.Map, hurtWindow float64) *ProjectileSystem {
	return &ProjectileSystem{level: level, hurtWindow: hurtWindow}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	dt := w.Step()

	player, hasPlayer := w.First(component.PlayerTagComponent.ID())
	var playerPose *component.Pose
	var playerBody *component.Body
	if hasPlayer {
		playerPose, _ = ecs.Get(w, player, component.PoseComponent.Kind())
		playerBody, _ = ecs.Get(w, player, component.BodyComponent.Kind())
	}

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.PoseComponent.Kind(),
		func(e ecs.Entity, proj *component.Projectile, pose *component.Pose) {
			step := proj.Vel.Mult(dt)
			next := pose.Pos.Add(step)
			proj.Traveled += step.Length()

			if s.level.IsWallAt(next.X, next.Y) || proj.Traveled > proj.MaxRange {
				w.DestroyEntity(e)
				return
			}
			pose.Pos = next

			if playerPose == nil || playerBody == nil {
				return
			}
			if next.Distance(playerPose.Pos) <= playerBody.Radius {
				damagePlayer(w, player, proj.Damage, s.hurtWindow)
				w.DestroyEntity(e)
			}
		})
}
