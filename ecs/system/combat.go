package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
	"github.com/milk9111/corridor/raycast"
)

// CombatSystem resolves the player's hitscan shot and turns fatal damage
// into the dead state plus a corpse timer.
type CombatSystem struct {
	caster        *raycast.Caster
	shootRange    float64
	shootDamage   int
	shootCooldown float64
	// aimSlack widens the hitscan ray so near-misses at range still land.
	aimSlack float64
}

func NewCombatSystem(caster *raycast.Caster, shootRange float64, shootDamage int, shootCooldown float64) *CombatSystem {
	return &CombatSystem{
		caster:        caster,
		shootRange:    shootRange,
		shootDamage:   shootDamage,
		shootCooldown: shootCooldown,
		aimSlack:      0.1,
	}
}

func (s *CombatSystem) Update(w *ecs.World) {
	s.playerShoot(w)
	s.processDeaths(w)
}

// playerShoot fires a single ray down the player's facing. The nearest live
// enemy inside range takes the hit; walls block it first.
func (s *CombatSystem) playerShoot(w *ecs.World) {
	player, ok := w.First(component.PlayerTagComponent.ID())
	if !ok {
		return
	}
	intent, okI := ecs.Get(w, player, component.IntentComponent.Kind())
	pose, okP := ecs.Get(w, player, component.PoseComponent.Kind())
	if !okI || !okP || !intent.Shoot {
		return
	}
	if health, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok && health.Dead() {
		return
	}
	if ecs.Has(w, player, component.CooldownComponent.Kind()) {
		return
	}

	cd := component.Cooldown{Seconds: s.shootCooldown}
	_ = ecs.Add(w, player, component.CooldownComponent.Kind(), &cd)
	w.Events().Push(ecs.Event{Type: ecs.EventShotFired, Data: player})

	dir := cp.ForAngle(pose.Angle)
	reach := s.shootRange
	if hit, ok := s.caster.CastSingle(pose.Pos, dir); ok && hit.Dist < reach {
		reach = hit.Dist
	}

	var best ecs.Entity
	bestDist := math.Inf(1)
	ecs.ForEach3(w, component.EnemyTagComponent.Kind(), component.PoseComponent.Kind(), component.BodyComponent.Kind(),
		func(e ecs.Entity, _ *component.EnemyTag, enemyPose *component.Pose, body *component.Body) {
			if st, ok := ecs.Get(w, e, component.AIStateComponent.Kind()); ok && st.Current == component.StateDead {
				return
			}
			rel := enemyPose.Pos.Sub(pose.Pos)
			along := rel.Dot(dir)
			if along <= 0 || along > reach {
				return
			}
			perp := rel.Sub(dir.Mult(along)).Length()
			if perp > body.Radius+s.aimSlack {
				return
			}
			if along < bestDist {
				bestDist = along
				best = e
			}
		})

	if best == 0 {
		return
	}
	if health, ok := ecs.Get(w, best, component.HealthComponent.Kind()); ok {
		health.Current -= s.shootDamage
		if health.Current < 0 {
			health.Current = 0
		}
	}
}

// processDeaths moves freshly dead enemies into the dead state: they stop
// being solid and shootable, play their death clip, and despawn after the
// corpse timer.
func (s *CombatSystem) processDeaths(w *ecs.World) {
	ecs.ForEach3(w, component.EnemyTagComponent.Kind(), component.HealthComponent.Kind(), component.AIStateComponent.Kind(),
		func(e ecs.Entity, _ *component.EnemyTag, health *component.Health, st *component.AIState) {
			if !health.Dead() || st.Current == component.StateDead {
				return
			}
			st.Current = component.StateDead
			st.HasTarget = false
			if move, ok := ecs.Get(w, e, component.MoveComponent.Kind()); ok {
				move.Vel = cp.Vector{}
			}
			ecs.Remove(w, e, component.BodyComponent.Kind())

			despawn := 3.0
			if ai, ok := ecs.Get(w, e, component.AIComponent.Kind()); ok && ai.DespawnTime > 0 {
				despawn = ai.DespawnTime
			}
			ttl := component.TTL{Seconds: despawn}
			_ = ecs.Add(w, e, component.TTLComponent.Kind(), &ttl)
			w.Events().Push(ecs.Event{Type: ecs.EventEnemyKilled, Data: e})
		})
}

// damagePlayer applies damage to the player unless an immunity window is
// open, then opens one.
func damagePlayer(w *ecs.World, player ecs.Entity, amount int, window float64) {
	if amount <= 0 {
		return
	}
	if ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
		return
	}
	health, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok || health.Dead() {
		return
	}
	health.Current -= amount
	if health.Current < 0 {
		health.Current = 0
	}
	inv := component.Invulnerable{Seconds: window}
	_ = ecs.Add(w, player, component.InvulnerableComponent.Kind(), &inv)
	w.Events().Push(ecs.Event{Type: ecs.EventPlayerDamaged, Data: amount})
}
