package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
	"github.com/milk9111/corridor/raycast"
	"github.com/milk9111/corridor/tilemap"
)

const testStep = 1.0 / 60

func gridFromRows(t *testing.T, rows []string) *tilemap.Map {
	t.Helper()
	cells := make([]tilemap.Cell, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		for _, r := range row {
			if r == '#' {
				cells = append(cells, tilemap.Cell{Wall: true, Material: 1})
			} else {
				cells = append(cells, tilemap.Cell{})
			}
		}
	}
	m, err := tilemap.New(len(rows[0]), len(rows), cells)
	if err != nil {
		t.Fatalf("tilemap.New failed: %v", err)
	}
	return m
}

func testRoom(t *testing.T) *tilemap.Map {
	t.Helper()
	return gridFromRows(t, []string{
		"#########",
		"#.......#",
		"#.......#",
		"#.......#",
		"#.......#",
		"#.......#",
		"#.......#",
		"#.......#",
		"#########",
	})
}

func testCaster(t *testing.T, m *tilemap.Map) *raycast.Caster {
	t.Helper()
	return raycast.NewCaster(m, math.Pi/3)
}

func newTestWorld() *ecs.World {
	w := ecs.NewWorld()
	w.SetStep(testStep)
	return w
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
}

func addTestPlayer(t *testing.T, w *ecs.World, pos cp.Vector) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.PoseComponent.Kind(), &component.Pose{Pos: pos})
	mustAdd(t, w, e, component.MoveComponent.Kind(), &component.Move{Speed: 3, TurnSpeed: 2.5})
	mustAdd(t, w, e, component.BodyComponent.Kind(), &component.Body{Radius: 0.25})
	mustAdd(t, w, e, component.HealthComponent.Kind(), &component.Health{Current: 100, Max: 100})
	mustAdd(t, w, e, component.IntentComponent.Kind(), &component.Intent{})
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	return e
}

func meleeAI() component.AI {
	return component.AI{
		MoveSpeed:      1.5,
		DetectRadius:   5,
		AttackRadius:   1.5,
		ArriveRadius:   0.2,
		IdleTime:       1.5,
		GraceTime:      2,
		AttackCooldown: 1,
		DespawnTime:    3,
		ContactDamage:  10,
	}
}

func rangedAI() component.AI {
	ai := meleeAI()
	ai.ContactDamage = 0
	ai.AttackRadius = 6
	ai.DetectRadius = 7
	ai.ProjectileSpeed = 4
	ai.ProjectileDamage = 15
	ai.ProjectileRange = 8
	return ai
}

func addTestEnemy(t *testing.T, w *ecs.World, pos cp.Vector, ai component.AI) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	aiCopy := ai
	mustAdd(t, w, e, component.PoseComponent.Kind(), &component.Pose{Pos: pos})
	mustAdd(t, w, e, component.MoveComponent.Kind(), &component.Move{Speed: ai.MoveSpeed})
	mustAdd(t, w, e, component.BodyComponent.Kind(), &component.Body{Radius: 0.3})
	mustAdd(t, w, e, component.HealthComponent.Kind(), &component.Health{Current: 50, Max: 50})
	mustAdd(t, w, e, component.AIComponent.Kind(), &aiCopy)
	mustAdd(t, w, e, component.AIStateComponent.Kind(), &component.AIState{Current: component.StateIdle, IdleTimer: ai.IdleTime})
	mustAdd(t, w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
	mustAdd(t, w, e, component.BillboardComponent.Kind(), &component.Billboard{Scale: 0.8})
	mustAdd(t, w, e, component.AnimatorComponent.Kind(), &component.Animator{
		Clips: map[string]component.Clip{
			"idle":   {Name: "idle", Row: 0, Frames: 2, FPS: 2, Loop: true},
			"walk":   {Name: "walk", Row: 1, Frames: 4, FPS: 6, Loop: true},
			"attack": {Name: "attack", Row: 2, Frames: 3, FPS: 8, Loop: true},
			"death":  {Name: "death", Row: 3, Frames: 4, FPS: 8, Loop: false},
		},
		Current: "idle",
		Playing: true,
	})
	return e
}

func enemyState(t *testing.T, w *ecs.World, e ecs.Entity) *component.AIState {
	t.Helper()
	st, ok := ecs.Get(w, e, component.AIStateComponent.Kind())
	if !ok {
		t.Fatalf("enemy has no AI state")
	}
	return st
}

func entityHealth(t *testing.T, w *ecs.World, e ecs.Entity) *component.Health {
	t.Helper()
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatalf("entity has no health")
	}
	return h
}
