package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	sandboxName := flag.String("sandbox", "sandbox.yaml", "sandbox preset in prefabs/")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	configName := flag.String("config", "", "motion preset in prefabs/")
	scriptName := flag.String("script", "", "drive the character from a script in prefabs/scripts/ instead of the keyboard")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	game, err := NewGame(*sandboxName, *levelName, *configName, *scriptName, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.screenSize())
	ebiten.SetWindowTitle("motion sandbox")
	ebiten.SetTPS(game.spec.TickRate)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
