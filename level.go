package main

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
	"github.com/milk9111/corridor/prefabs"
	"github.com/milk9111/corridor/tilemap"
)

type level struct {
	grid  *tilemap.Map
	spawn cp.Vector
	spec  *prefabs.LevelSpec
}

func loadLevel(name string) (*level, error) {
	spec, err := prefabs.LoadLevelSpec(name)
	if err != nil {
		return nil, err
	}
	grid, spawn, err := tilemap.Parse(spec.Rows, spec.Legend)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", spec.Name, err)
	}
	return &level{grid: grid, spawn: spawn, spec: spec}, nil
}

func spawnPlayer(w *ecs.World, cfg *prefabs.ConfigSpec, pos cp.Vector) (ecs.Entity, error) {
	e := w.CreateEntity()

	pose := component.Pose{Pos: pos}
	move := component.Move{Speed: cfg.MoveSpeed, TurnSpeed: cfg.TurnSpeed}
	body := component.Body{Radius: cfg.PlayerRadius}
	health := component.Health{Current: cfg.PlayerHealth, Max: cfg.PlayerHealth}
	intent := component.Intent{}
	tag := component.PlayerTag{}

	if err := ecs.Add(w, e, component.PoseComponent.Kind(), &pose); err != nil {
		return 0, fmt.Errorf("spawn player: %w", err)
	}
	if err := ecs.Add(w, e, component.MoveComponent.Kind(), &move); err != nil {
		return 0, fmt.Errorf("spawn player: %w", err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &body); err != nil {
		return 0, fmt.Errorf("spawn player: %w", err)
	}
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &health); err != nil {
		return 0, fmt.Errorf("spawn player: %w", err)
	}
	if err := ecs.Add(w, e, component.IntentComponent.Kind(), &intent); err != nil {
		return 0, fmt.Errorf("spawn player: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &tag); err != nil {
		return 0, fmt.Errorf("spawn player: %w", err)
	}

	return e, nil
}

func spawnEnemy(w *ecs.World, spawn prefabs.EnemySpawnSpec) (ecs.Entity, error) {
	spec, err := prefabs.LoadEnemySpec(spawn.Kind)
	if err != nil {
		return 0, err
	}

	waypoints := make([]cp.Vector, 0, len(spawn.Waypoints))
	for i, wp := range spawn.Waypoints {
		if len(wp) != 2 {
			return 0, fmt.Errorf("spawn %s: waypoint %d has %d coordinates", spawn.Kind, i, len(wp))
		}
		waypoints = append(waypoints, cp.Vector{X: wp[0], Y: wp[1]})
	}

	clips := make(map[string]component.Clip, len(spec.Animations))
	for name, c := range spec.Animations {
		clips[name] = component.Clip{Name: name, Row: c.Row, Frames: c.FrameCount, FPS: c.FPS, Loop: c.Loop}
	}

	e := w.CreateEntity()

	pose := component.Pose{Pos: cp.Vector{X: spawn.X, Y: spawn.Y}}
	move := component.Move{Speed: spec.MoveSpeed}
	body := component.Body{Radius: spec.Radius}
	health := component.Health{Current: spec.Health, Max: spec.Health}
	ai := component.AI{
		MoveSpeed:        spec.MoveSpeed,
		DetectRadius:     spec.DetectRadius,
		AttackRadius:     spec.AttackRadius,
		ArriveRadius:     spec.ArriveRadius,
		IdleTime:         spec.IdleTime,
		GraceTime:        spec.GraceTime,
		AttackCooldown:   spec.AttackCooldown,
		DespawnTime:      spec.DespawnTime,
		ContactDamage:    spec.ContactDamage,
		ProjectileSpeed:  spec.ProjectileSpeed,
		ProjectileDamage: spec.ProjectileDamage,
		ProjectileRange:  spec.ProjectileRange,
		Script:           spec.Script,
		Waypoints:        waypoints,
	}
	state := component.AIState{Current: component.StateIdle, IdleTimer: spec.IdleTime}
	bill := component.Billboard{Texture: spec.Texture, Scale: spec.Scale}
	anim := component.Animator{Clips: clips, Current: "idle", Playing: true}
	tag := component.EnemyTag{}

	if err := ecs.Add(w, e, component.PoseComponent.Kind(), &pose); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", spawn.Kind, err)
	}
	if err := ecs.Add(w, e, component.MoveComponent.Kind(), &move); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", spawn.Kind, err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &body); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", spawn.Kind, err)
	}
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &health); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", spawn.Kind, err)
	}
	if err := ecs.Add(w, e, component.AIComponent.Kind(), &ai); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", spawn.Kind, err)
	}
	if err := ecs.Add(w, e, component.AIStateComponent.Kind(), &state); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", spawn.Kind, err)
	}
	if err := ecs.Add(w, e, component.BillboardComponent.Kind(), &bill); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", spawn.Kind, err)
	}
	if err := ecs.Add(w, e, component.AnimatorComponent.Kind(), &anim); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", spawn.Kind, err)
	}
	if err := ecs.Add(w, e, component.EnemyTagComponent.Kind(), &tag); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", spawn.Kind, err)
	}

	return e, nil
}
