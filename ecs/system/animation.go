package system

import (
	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
)

// AnimationSystem derives the playing clip from AI state, advances it, and
// publishes the resulting atlas row/frame onto the billboard. Presentation
// only: nothing downstream of it feeds back into the simulation.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	dt := w.Step()
	ecs.ForEach2(w, component.AnimatorComponent.Kind(), component.BillboardComponent.Kind(),
		func(e ecs.Entity, anim *component.Animator, bill *component.Billboard) {
			if st, ok := ecs.Get(w, e, component.AIStateComponent.Kind()); ok {
				anim.Play(clipForState(st.Current))
			}

			clip, ok := anim.Clips[anim.Current]
			if !ok {
				return
			}

			if anim.Playing && clip.FPS > 0 {
				anim.Timer += dt
				frameDur := 1 / clip.FPS
				for anim.Timer >= frameDur {
					anim.Timer -= frameDur
					anim.Frame++
					if anim.Frame < clip.Frames {
						continue
					}
					if clip.Loop {
						anim.Frame = 0
					} else {
						// hold the final frame; death poses stay put
						anim.Frame = clip.Frames - 1
						anim.Playing = false
					}
				}
			}

			bill.Row = clip.Row
			bill.Frame = anim.Frame
		})
}

// clipForState maps an AI state to a clip name. Missing clips are fine:
// Play ignores names the sheet does not define, so a stationary kind without
// a walk strip just keeps its idle.
func clipForState(kind component.StateKind) string {
	switch kind {
	case component.StateDead:
		return "death"
	case component.StateAttack:
		return "attack"
	case component.StateChase, component.StatePatrol:
		return "walk"
	default:
		return "idle"
	}
}
