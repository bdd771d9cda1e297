package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/motion/input"
	"github.com/milk9111/motion/levels"
	"github.com/milk9111/motion/motion"
	"github.com/milk9111/motion/prefabs"
	"github.com/milk9111/motion/sim"
)

type Game struct {
	frames int

	spec    prefabs.SandboxSpec
	cfg     motion.Config
	level   *levels.Level
	sim     *sim.Sim
	view    *levelView
	watcher *prefabs.Watcher

	keyboard *input.Keyboard
	script   *input.Script

	debug      bool
	paused     bool
	pauseUI    *ebitenui.UI
	lastSignal motion.Signal
}

func NewGame(sandboxName, levelName, configName, scriptName string, debug bool) (*Game, error) {
	spec, err := prefabs.LoadSandboxSpec(sandboxName)
	if err != nil {
		return nil, err
	}
	if levelName != "" {
		if filepath.Ext(levelName) == "" {
			levelName += ".json"
		}
		spec.Level = levelName
	}
	if configName != "" {
		spec.Motion = configName
	}

	lvl, err := levels.Load(spec.Level)
	if err != nil {
		return nil, err
	}
	cfg, err := prefabs.LoadMotionConfig(spec.Motion)
	if err != nil {
		return nil, err
	}

	g := &Game{
		spec:     spec,
		cfg:      cfg,
		level:    lvl,
		view:     newLevelView(lvl, spec.PixelsPerUnit),
		keyboard: input.NewKeyboard(),
		debug:    debug || spec.Debug,
	}
	if scriptName != "" {
		script, err := input.LoadScript(scriptName)
		if err != nil {
			return nil, err
		}
		log.Printf("sandbox: driving input from %s", script.Path())
		g.script = script
	}
	if err := g.rebuild(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if w, err := prefabs.NewWatcher("prefabs"); err != nil {
		log.Printf("sandbox: hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}
	return g, nil
}

// rebuild recreates the simulation from the current level and config.
func (g *Game) rebuild() error {
	var opts []motion.Option
	if g.debug {
		opts = append(opts, motion.WithDebugf(log.Printf))
	}
	s, err := sim.New(g.level, g.cfg, g.spec.Character.Width, g.spec.Character.Height, opts...)
	if err != nil {
		return err
	}
	g.sim = s
	g.lastSignal = motion.Signal{}
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Respawn()
	}

	intent := g.keyboard.Intent()
	if g.script != nil {
		next, err := g.script.Next(g.sim.Controller.State())
		if err != nil {
			log.Printf("sandbox: %v", err)
			g.script = nil
		} else {
			intent = next
		}
	}
	g.sim.Step(1/float64(ebiten.TPS()), intent)
	for _, sig := range g.sim.Drain() {
		g.lastSignal = sig
		if g.debug {
			log.Printf("sandbox: %s active=%t t=%.3f", sig.Kind, sig.Active, sig.Time)
		}
	}
	return nil
}

// pollReload applies motion preset edits without blocking the frame.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if change.Kind != prefabs.ChangeSpec || !strings.EqualFold(filepath.Base(change.Path), filepath.Base(g.spec.Motion)) {
				continue
			}
			g.reloadConfig()
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("sandbox: watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reloadConfig() {
	cfg, err := prefabs.LoadMotionConfig(g.spec.Motion)
	if err != nil {
		log.Printf("sandbox: reload %s: %v", g.spec.Motion, err)
		return
	}
	g.cfg = cfg
	if err := g.rebuild(); err != nil {
		log.Printf("sandbox: rebuild: %v", err)
		return
	}
	log.Printf("sandbox: reloaded %s", g.spec.Motion)
}

func (g *Game) toggleDoubleJump() {
	g.cfg.EnableDoubleJump = !g.cfg.EnableDoubleJump
	if err := g.rebuild(); err != nil {
		log.Printf("sandbox: rebuild: %v", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.view.Draw(screen, g.sim)

	st := g.sim.Controller.State()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  grounded=%t sliding=%t grabbing=%t dashing=%t deaths=%d\nlast signal: %s",
		ebiten.ActualFPS(), st.Grounded, st.Sliding, st.Grabbing, st.Dashing, g.sim.Deaths(), g.lastSignal.Kind))
	if g.debug {
		g.view.DrawDebug(screen, g.sim)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) screenSize() (int, int) {
	return g.view.Size()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenSize()
}
