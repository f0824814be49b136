package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/corridor/collision"
	"github.com/milk9111/corridor/ecs"
	"github.com/milk9111/corridor/ecs/component"
	"github.com/milk9111/corridor/ecs/system"
	"github.com/milk9111/corridor/prefabs"
	"github.com/milk9111/corridor/raycast"
	"github.com/milk9111/corridor/render"
)

// simTPS is the fixed simulation rate. Ebiten's Update callback is the
// fixed-step loop: it runs exactly this often regardless of display rate.
const simTPS = 60

type Game struct {
	cfg       *prefabs.ConfigSpec
	world     *ecs.World
	renderer  *system.RenderSystem
	watcher   *prefabs.Watcher
	levelName string
	debug     bool

	player   ecs.Entity
	kills    int
	gameOver bool
}

func NewGame(levelName string, debug, watch bool) (*Game, error) {
	cfg, err := prefabs.LoadConfigSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg, levelName: levelName, debug: debug}
	if watch {
		watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("game: prefab watching disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	if err := g.reload(); err != nil {
		return nil, err
	}
	return g, nil
}

// reload rebuilds the whole world from specs. Used at startup, on restart,
// and when the prefab watcher reports a change.
func (g *Game) reload() error {
	lvl, err := loadLevel(g.levelName)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	world.SetStep(1.0 / float64(simTPS))

	caster := raycast.NewCaster(lvl.grid, g.cfg.FOV())
	resolver := collision.NewResolver(lvl.grid)
	comp := render.NewCompositor(g.cfg.ScreenWidth, g.cfg.ScreenHeight, g.cfg.FOV(), lvl.grid)

	player, err := spawnPlayer(world, g.cfg, lvl.spawn)
	if err != nil {
		return err
	}
	for _, spawn := range lvl.spec.Enemies {
		if _, err := spawnEnemy(world, spawn); err != nil {
			return err
		}
	}

	world.AddSystem(system.NewInputSystem())
	world.AddSystem(system.NewPlayerControllerSystem())
	world.AddSystem(system.NewAISystem(caster, g.cfg.HurtCooldown))
	world.AddSystem(system.NewMovementSystem(resolver))
	world.AddSystem(system.NewProjectileSystem(lvl.grid, g.cfg.HurtCooldown))
	world.AddSystem(system.NewCombatSystem(caster, g.cfg.ShootRange, g.cfg.ShootDamage, g.cfg.ShootCooldown))
	world.AddSystem(system.NewCooldownSystem())
	world.AddSystem(system.NewAnimationSystem())
	world.AddSystem(system.NewTTLSystem())
	world.AddSystem(&eventSink{game: g})

	g.world = world
	g.player = player
	g.renderer = system.NewRenderSystem(lvl.grid, caster, comp, g.cfg.ScreenWidth, g.cfg.ScreenHeight, g.debug)
	g.kills = 0
	g.gameOver = false
	return nil
}

func (g *Game) Update() error {
	g.drainWatcher()

	if g.gameOver {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			return g.reload()
		}
		return nil
	}

	g.world.Update()

	if health, ok := ecs.Get(g.world, g.player, component.HealthComponent.Kind()); ok && health.Dead() {
		g.gameOver = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tps %.0f kills %d", ebiten.ActualTPS(), g.kills), 4, 4)
	}
	if g.gameOver {
		ebitenutil.DebugPrintAt(screen, "you died - press R to restart", g.cfg.ScreenWidth/2-84, g.cfg.ScreenHeight/2-4)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.ScreenWidth, g.cfg.ScreenHeight
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

// drainWatcher applies pending spec changes between ticks. Multiple changes
// in one frame collapse into a single reload.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: prefab changed: %s", path)
			changed = true
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("game: prefab watch error: %v", err)
			}
		default:
			if changed {
				if err := g.reload(); err != nil {
					log.Printf("game: reload failed, keeping old world: %v", err)
				}
			}
			return
		}
	}
}

// eventSink tallies tick events before the world flushes them.
type eventSink struct {
	game *Game
}

func (s *eventSink) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		if evt.Type == ecs.EventEnemyKilled {
			s.game.kills++
		}
	}
}
