package system

import (
	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
)

// CooldownSystem counts down trigger cooldowns and damage-immunity windows,
// removing the component when it expires.
type CooldownSystem struct{}

func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

func (s *CooldownSystem) Update(w *ecs.World) {
	dt := w.Step()
	ecs.ForEach(w, component.CooldownComponent.Kind(), func(e ecs.Entity, c *component.Cooldown) {
		c.Seconds -= dt
		if c.Seconds <= 0 {
			ecs.Remove(w, e, component.CooldownComponent.Kind())
		}
	})
	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		inv.Seconds -= dt
		if inv.Seconds <= 0 {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})
}
