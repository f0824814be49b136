package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
)

// InputSystem samples the keyboard and mouse into the player's Intent. It is
// the only system that touches device state; everything downstream reads the
// Intent component.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (s *InputSystem) Update(w *ecs.World) {
	player, ok := w.First(component.PlayerTagComponent.ID())
	if !ok {
		return
	}
	intent, ok := ecs.Get(w, player, component.IntentComponent.Kind())
	if !ok {
		return
	}

	*intent = component.Intent{}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		intent.Forward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		intent.Forward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		intent.Strafe++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		intent.Strafe--
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		intent.Turn++
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		intent.Turn--
	}
	intent.Shoot = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	intent.Interact = inpututil.IsKeyJustPressed(ebiten.KeyE)
}
