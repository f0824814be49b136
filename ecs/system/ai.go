package system

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
	"github.com/milk9111/corridor/raycast"
)

// AISystem drives enemy state machines. Transitions run through a single
// pure function per enemy (or a tengo behavior when the enemy kind names
// one), so a tick is: sense, transition, act.
type AISystem struct {
	caster     *raycast.Caster
	hurtWindow float64
	scripts    map[ecs.Entity]*behaviorRuntime
}

func NewAISystem(caster *raycast.Caster, hurtWindow float64) *AISystem {
	return &AISystem{
		caster:     caster,
		hurtWindow: hurtWindow,
		scripts:    map[ecs.Entity]*behaviorRuntime{},
	}
}

// aiContext is everything one enemy's tick reads and writes.
type aiContext struct {
	world  *ecs.World
	entity ecs.Entity
	ai     *component.AI
	state  *component.AIState
	pose   *component.Pose
	move   *component.Move

	player    ecs.Entity
	playerPos cp.Vector
	dist      float64
	seen      bool
}

func (s *AISystem) Update(w *ecs.World) {
	dt := w.Step()

	for e := range s.scripts {
		if !w.IsAlive(e) {
			delete(s.scripts, e)
		}
	}

	player, ok := w.First(component.PlayerTagComponent.ID())
	if !ok {
		return
	}
	playerPose, ok := ecs.Get(w, player, component.PoseComponent.Kind())
	if !ok {
		return
	}
	playerDead := false
	if health, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
		playerDead = health.Dead()
	}

	ecs.ForEach3(w, component.AIComponent.Kind(), component.AIStateComponent.Kind(), component.PoseComponent.Kind(),
		func(e ecs.Entity, ai *component.AI, st *component.AIState, pose *component.Pose) {
			move, _ := ecs.Get(w, e, component.MoveComponent.Kind())
			if st.Current == component.StateDead {
				if move != nil {
					move.Vel = cp.Vector{}
				}
				return
			}

			if st.AttackTimer > 0 {
				st.AttackTimer -= dt
			}

			// sense
			dist := pose.Pos.Distance(playerPose.Pos)
			seen := !playerDead && dist <= ai.DetectRadius && s.caster.LineOfSight(pose.Pos, playerPose.Pos)
			if seen {
				st.LastSeen = playerPose.Pos
				st.HasTarget = true
				st.GraceTimer = ai.GraceTime
			} else if st.HasTarget {
				st.GraceTimer -= dt
				if st.GraceTimer <= 0 {
					st.HasTarget = false
				}
			}
			if playerDead {
				st.HasTarget = false
			}

			ctx := &aiContext{
				world:     w,
				entity:    e,
				ai:        ai,
				state:     st,
				pose:      pose,
				move:      move,
				player:    player,
				playerPos: playerPose.Pos,
				dist:      dist,
				seen:      seen,
			}

			// transition
			next := st.Current
			if ai.Script != "" {
				next = s.scriptedNext(ctx)
			} else {
				next = nextState(ai, st, dist)
			}
			if next != st.Current {
				enterState(ai, st, next)
			}

			// act
			s.act(ctx, dt)
		})
}

// nextState is the built-in transition function. Attack outranks chase,
// chase outranks patrol, patrol outranks idle. Attack range is checked
// against distance alone: a held target inside the radius is attacked even
// while line of sight is briefly lost, for as long as the grace window holds.
func nextState(ai *component.AI, st *component.AIState, dist float64) component.StateKind {
	switch {
	case st.HasTarget && dist <= ai.AttackRadius:
		return component.StateAttack
	case st.HasTarget:
		return component.StateChase
	case st.Current == component.StateChase || st.Current == component.StateAttack:
		// target lost: pick the route back up, or settle down
		if len(ai.Waypoints) > 0 {
			return component.StatePatrol
		}
		return component.StateIdle
	case st.Current == component.StatePatrol:
		return component.StatePatrol
	case st.IdleTimer <= 0 && len(ai.Waypoints) > 0:
		return component.StatePatrol
	default:
		return component.StateIdle
	}
}

// enterState applies one-time entry effects for the new state.
func enterState(ai *component.AI, st *component.AIState, next component.StateKind) {
	st.Current = next
	if next == component.StateIdle {
		st.IdleTimer = ai.IdleTime
	}
}

func (s *AISystem) act(ctx *aiContext, dt float64) {
	ai, st := ctx.ai, ctx.state
	switch st.Current {
	case component.StateIdle:
		st.IdleTimer -= dt
		stop(ctx.move)
	case component.StatePatrol:
		if len(ai.Waypoints) == 0 {
			enterState(ai, st, component.StateIdle)
			stop(ctx.move)
			return
		}
		target := ai.Waypoints[st.Waypoint]
		if ctx.pose.Pos.Distance(target) <= ai.ArriveRadius {
			st.Waypoint = (st.Waypoint + 1) % len(ai.Waypoints)
			enterState(ai, st, component.StateIdle)
			stop(ctx.move)
			return
		}
		steer(ctx.move, ctx.pose, target, ai.MoveSpeed)
	case component.StateChase:
		if ctx.pose.Pos.Distance(st.LastSeen) <= ai.ArriveRadius {
			// reached the last known position with nothing there
			st.HasTarget = false
			enterState(ai, st, component.StateIdle)
			stop(ctx.move)
			return
		}
		steer(ctx.move, ctx.pose, st.LastSeen, ai.MoveSpeed)
	case component.StateAttack:
		stop(ctx.move)
		ctx.pose.Angle = ctx.playerPos.Sub(ctx.pose.Pos).ToAngle()
		if st.AttackTimer <= 0 {
			s.fire(ctx)
			st.AttackTimer = ai.AttackCooldown
		}
	}
}

// fire performs one attack: ranged kinds spawn a projectile, melee kinds
// damage the player directly when still in reach.
func (s *AISystem) fire(ctx *aiContext) {
	ai := ctx.ai
	if ai.ProjectileSpeed > 0 {
		dir := ctx.playerPos.Sub(ctx.pose.Pos)
		if dir.Length() < 1e-9 {
			return
		}
		dir = dir.Normalize()

		proj := ctx.world.CreateEntity()
		pose := component.Pose{Pos: ctx.pose.Pos.Add(dir.Mult(0.3)), Angle: dir.ToAngle()}
		p := component.Projectile{
			Vel:      dir.Mult(ai.ProjectileSpeed),
			MaxRange: ai.ProjectileRange,
			Damage:   ai.ProjectileDamage,
		}
		bill := component.Billboard{Texture: projectileTexture, Scale: 0.15}
		if err := ecs.Add(ctx.world, proj, component.PoseComponent.Kind(), &pose); err != nil {
			fmt.Printf("ai: entity=%s spawn projectile: %v\n", ctx.entity, err)
			return
		}
		_ = ecs.Add(ctx.world, proj, component.ProjectileComponent.Kind(), &p)
		_ = ecs.Add(ctx.world, proj, component.BillboardComponent.Kind(), &bill)
		ctx.world.Events().Push(ecs.Event{Type: ecs.EventShotFired, Data: ctx.entity})
		return
	}

	if ai.ContactDamage > 0 && ctx.dist <= ai.AttackRadius {
		damagePlayer(ctx.world, ctx.player, ai.ContactDamage, s.hurtWindow)
	}
}

func steer(move *component.Move, pose *component.Pose, target cp.Vector, speed float64) {
	if move == nil {
		return
	}
	d := target.Sub(pose.Pos)
	if d.Length() < 1e-9 {
		move.Vel = cp.Vector{}
		return
	}
	dir := d.Normalize()
	move.Vel = dir.Mult(speed)
	pose.Angle = dir.ToAngle()
}

func stop(move *component.Move) {
	if move != nil {
		move.Vel = cp.Vector{}
	}
}

// projectileTexture is the atlas slot the rasterizer uses for enemy shots.
const projectileTexture = 7
