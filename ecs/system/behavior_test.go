package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/ecs/component"
)

func TestScriptedBehaviorTransitions(t *testing.T) {
	cases := []struct {
		name      string
		enemyPos  cp.Vector
		playerPos cp.Vector
		want      component.StateKind
	}{
		{"attacks_visible_player_in_radius", cp.Vector{X: 2.5, Y: 3.5}, cp.Vector{X: 4.5, Y: 3.5}, component.StateAttack},
		{"chases_visible_player_out_of_attack_range", cp.Vector{X: 1.5, Y: 1.5}, cp.Vector{X: 7.5, Y: 3.5}, component.StateChase},
		{"idles_when_player_out_of_reach", cp.Vector{X: 1.5, Y: 1.5}, cp.Vector{X: 7.5, Y: 7.5}, component.StateIdle},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			room := testRoom(t)
			w := newTestWorld()
			addTestPlayer(t, w, c.playerPos)

			ai := rangedAI()
			ai.Script = "sentry.tengo"
			enemy := addTestEnemy(t, w, c.enemyPos, ai)

			NewAISystem(testCaster(t, room), 0.5).Update(w)

			if st := enemyState(t, w, enemy); st.Current != c.want {
				t.Fatalf("want %v, got %v", c.want, st.Current)
			}
		})
	}
}

func TestScriptedBehaviorChasesOnGrace(t *testing.T) {
	room := testRoom(t)
	w := newTestWorld()
	addTestPlayer(t, w, cp.Vector{X: 7.5, Y: 7.5})

	ai := rangedAI()
	ai.DetectRadius = 3 // player is out of detection
	ai.Script = "sentry.tengo"
	enemy := addTestEnemy(t, w, cp.Vector{X: 2.5, Y: 3.5}, ai)
	st := enemyState(t, w, enemy)
	st.HasTarget = true
	st.GraceTimer = 2
	st.LastSeen = cp.Vector{X: 5.5, Y: 3.5}

	NewAISystem(testCaster(t, room), 0.5).Update(w)

	if st.Current != component.StateChase {
		t.Fatalf("script should chase while the grace window holds, got %v", st.Current)
	}
}

func TestScriptedBehaviorRuntimeEvictedOnDeath(t *testing.T) {
	room := testRoom(t)
	w := newTestWorld()
	addTestPlayer(t, w, cp.Vector{X: 3.5, Y: 3.5})

	ai := rangedAI()
	ai.Script = "sentry.tengo"
	enemy := addTestEnemy(t, w, cp.Vector{X: 2.5, Y: 3.5}, ai)

	sys := NewAISystem(testCaster(t, room), 0.5)
	sys.Update(w)
	if len(sys.scripts) != 1 {
		t.Fatalf("want 1 cached runtime after a scripted tick, got %d", len(sys.scripts))
	}

	w.DestroyEntity(enemy)
	sys.Update(w)
	if len(sys.scripts) != 0 {
		t.Fatalf("destroyed entity must drop its runtime, got %d", len(sys.scripts))
	}
}

func TestScriptedBehaviorBadScriptKeepsState(t *testing.T) {
	room := testRoom(t)
	w := newTestWorld()
	addTestPlayer(t, w, cp.Vector{X: 3.5, Y: 3.5})

	ai := rangedAI()
	ai.Script = "does_not_exist.tengo"
	enemy := addTestEnemy(t, w, cp.Vector{X: 2.5, Y: 3.5}, ai)

	NewAISystem(testCaster(t, room), 0.5).Update(w)

	if st := enemyState(t, w, enemy); st.Current != component.StateIdle {
		t.Fatalf("missing script must leave the state untouched, got %v", st.Current)
	}
	if !w.IsAlive(enemy) {
		t.Fatalf("script failure must not harm the entity")
	}
}
