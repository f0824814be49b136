package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
	"github.com/milk9111/corridor/raycast"
	"github.com/milk9111/corridor/render"
	"github.com/milk9111/corridor/tilemap"
)

// RenderSystem rasterizes the compositor's draw list. It runs from the game's
// Draw callback, not the simulation tick: it reads world state and never
// writes it.
type RenderSystem struct {
	level   *tilemap.Map
	caster  *raycast.Caster
	comp    *render.Compositor
	screenW int
	screenH int
	debug   bool
}

func NewRenderSystem(level *tilemap.Map, caster *raycast.Caster, comp *render.Compositor, screenW, screenH int, debug bool) *RenderSystem {
	return &RenderSystem{
		level:   level,
		caster:  caster,
		comp:    comp,
		screenW: screenW,
		screenH: screenH,
		debug:   debug,
	}
}

func (s *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	player, ok := w.First(component.PlayerTagComponent.ID())
	if !ok {
		return
	}
	pose, ok := ecs.Get(w, player, component.PoseComponent.Kind())
	if !ok {
		return
	}

	hits := s.caster.CastColumns(pose.Pos, pose.Angle, s.screenW)

	var bills []render.Billboard
	ecs.ForEach2(w, component.BillboardComponent.Kind(), component.PoseComponent.Kind(),
		func(e ecs.Entity, b *component.Billboard, p *component.Pose) {
			if e == player {
				return
			}
			bills = append(bills, render.Billboard{
				Pos:     p.Pos,
				Texture: b.Texture,
				Row:     b.Row,
				Frame:   b.Frame,
				Scale:   b.Scale,
			})
		})

	dl := s.comp.Compose(hits, bills, pose.Pos, pose.Angle)

	s.drawBackground(screen)
	for _, q := range dl.Walls {
		clr := shaded(materialColor(q.Material), q.Shade)
		vector.DrawFilledRect(screen, float32(q.Column), float32(q.Top), 1, float32(q.Height), clr, false)
	}
	for _, sp := range dl.Sprites {
		clr := shaded(textureColor(sp.Texture, sp.Row), sp.Shade)
		vector.DrawFilledRect(screen, float32(sp.X0), float32(sp.Top), float32(sp.X1-sp.X0+1), float32(sp.Height), clr, false)
	}

	s.drawHUD(w, player, screen)
	if s.debug {
		s.drawMinimap(w, screen, pose.Pos, hits)
	}
}

func (s *RenderSystem) drawBackground(screen *ebiten.Image) {
	half := float32(s.screenH) / 2
	vector.DrawFilledRect(screen, 0, 0, float32(s.screenW), half, color.RGBA{R: 0x28, G: 0x28, B: 0x30, A: 0xff}, false)
	vector.DrawFilledRect(screen, 0, half, float32(s.screenW), half, color.RGBA{R: 0x1a, G: 0x18, B: 0x16, A: 0xff}, false)
}

func (s *RenderSystem) drawHUD(w *ecs.World, player ecs.Entity, screen *ebiten.Image) {
	health, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok || health.Max <= 0 {
		return
	}
	const barW, barH = 60.0, 5.0
	x := float32(4)
	y := float32(s.screenH) - barH - 4
	vector.DrawFilledRect(screen, x, y, barW, barH, color.RGBA{R: 0x40, A: 0xff}, false)
	frac := float32(health.Current) / float32(health.Max)
	if frac > 0 {
		vector.DrawFilledRect(screen, x, y, barW*frac, barH, color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}, false)
	}
	if s.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("hp %d/%d", health.Current, health.Max), 4, s.screenH-22)
	}
}

func (s *RenderSystem) drawMinimap(w *ecs.World, screen *ebiten.Image, camPos cp.Vector, hits []raycast.Hit) {
	marks := []render.MinimapMark{{Pos: camPos, Kind: render.MarkPlayer}}
	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.PoseComponent.Kind(),
		func(e ecs.Entity, _ *component.EnemyTag, p *component.Pose) {
			marks = append(marks, render.MinimapMark{Pos: p.Pos, Kind: render.MarkEnemy})
		})
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.PoseComponent.Kind(),
		func(e ecs.Entity, _ *component.Projectile, p *component.Pose) {
			marks = append(marks, render.MinimapMark{Pos: p.Pos, Kind: render.MarkProjectile})
		})

	mm := render.BuildMinimap(s.level, marks, camPos, hits)

	const cell = 4.0
	for _, c := range mm.Cells {
		vector.DrawFilledRect(screen, float32(c.X)*cell, float32(c.Y)*cell, cell, cell,
			shaded(materialColor(c.Material), 0.6), false)
	}
	ox := float32(mm.Origin.X * cell)
	oy := float32(mm.Origin.Y * cell)
	for _, ray := range mm.Rays {
		vector.StrokeLine(screen, ox, oy, float32(ray.X*cell), float32(ray.Y*cell), 1,
			color.RGBA{R: 0x60, G: 0x60, B: 0x20, A: 0x80}, false)
	}
	for _, m := range mm.Marks {
		vector.DrawFilledRect(screen, float32(m.Pos.X*cell)-1, float32(m.Pos.Y*cell)-1, 3, 3, markColor(m.Kind), false)
	}
}

func markColor(kind render.MarkKind) color.Color {
	switch kind {
	case render.MarkPlayer:
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	case render.MarkProjectile:
		return color.RGBA{R: 0xff, G: 0xe0, B: 0x40, A: 0xff}
	default:
		return color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}
	}
}

// materialColor is a flat palette until wall textures land.
func materialColor(m tilemap.Material) color.RGBA {
	switch m {
	case 1:
		return color.RGBA{R: 0xa0, G: 0x98, B: 0x90, A: 0xff}
	case 2:
		return color.RGBA{R: 0x50, G: 0x68, B: 0xb0, A: 0xff}
	case 3:
		return color.RGBA{R: 0x48, G: 0x90, B: 0x58, A: 0xff}
	default:
		return color.RGBA{R: 0x58, G: 0x50, B: 0x48, A: 0xff}
	}
}

func textureColor(texture, row int) color.RGBA {
	switch texture {
	case projectileTexture:
		return color.RGBA{R: 0xff, G: 0xd0, B: 0x40, A: 0xff}
	case 1:
		base := color.RGBA{R: 0x80, G: 0x50, B: 0xc0, A: 0xff}
		if row >= 2 {
			base = color.RGBA{R: 0x48, G: 0x30, B: 0x68, A: 0xff}
		}
		return base
	default:
		base := color.RGBA{R: 0xc0, G: 0x48, B: 0x40, A: 0xff}
		if row >= 3 {
			base = color.RGBA{R: 0x68, G: 0x30, B: 0x2c, A: 0xff}
		}
		return base
	}
}

func shaded(base color.RGBA, shade float64) color.RGBA {
	if shade < 0 {
		shade = 0
	}
	if shade > 1 {
		shade = 1
	}
	return color.RGBA{
		R: uint8(float64(base.R) * shade),
		G: uint8(float64(base.G) * shade),
		B: uint8(float64(base.B) * shade),
		A: base.A,
	}
}
