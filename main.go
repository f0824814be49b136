package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelName := flag.String("level", "level", "level spec name under prefabs/")
	debug := flag.Bool("debug", false, "draw the minimap and debug overlay")
	watch := flag.Bool("watch", false, "hot-reload specs and scripts on change")
	flag.Parse()

	game, err := NewGame(*levelName, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = game.Close()
	}()

	scale := game.cfg.WindowScale
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(game.cfg.ScreenWidth*scale, game.cfg.ScreenHeight*scale)
	ebiten.SetWindowTitle("corridor")
	ebiten.SetTPS(simTPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
