package main

import (
	"flag"
	"log"

	"github.com/milk9111/motion/input"
	"github.com/milk9111/motion/levels"
	"github.com/milk9111/motion/motion"
	"github.com/milk9111/motion/prefabs"
	"github.com/milk9111/motion/sim"
)

func main() {
	sandboxName := flag.String("sandbox", "sandbox.yaml", "sandbox preset in prefabs/")
	levelName := flag.String("level", "", "level in levels/, overrides the sandbox preset")
	scriptName := flag.String("script", "", "input script in prefabs/scripts/, overrides the sandbox preset")
	configName := flag.String("config", "", "motion preset in prefabs/, overrides the sandbox preset")
	ticks := flag.Int("ticks", 300, "number of ticks to simulate")
	dt := flag.Float64("dt", 0, "seconds per tick (defaults to 1/tick_rate)")
	verbose := flag.Bool("v", false, "trace controller state transitions")
	states := flag.Bool("states", true, "log a state line every tick")
	flag.Parse()

	spec, err := prefabs.LoadSandboxSpec(*sandboxName)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		spec.Level = *levelName
	}
	if *scriptName != "" {
		spec.Script = *scriptName
	}
	if *configName != "" {
		spec.Motion = *configName
	}
	if spec.Script == "" {
		log.Fatal("replay: no input script, pass -script")
	}
	step := *dt
	if step <= 0 {
		step = 1 / float64(spec.TickRate)
	}

	lvl, err := levels.Load(spec.Level)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := prefabs.LoadMotionConfig(spec.Motion)
	if err != nil {
		log.Fatal(err)
	}
	script, err := input.LoadScript(spec.Script)
	if err != nil {
		log.Fatal(err)
	}

	var opts []motion.Option
	if *verbose || spec.Debug {
		opts = append(opts, motion.WithDebugf(log.Printf))
	}
	s, err := sim.New(lvl, cfg, spec.Character.Width, spec.Character.Height, opts...)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("replay: level=%s motion=%s script=%s ticks=%d dt=%.4f", spec.Level, spec.Motion, script.Path(), *ticks, step)
	for i := 0; i < *ticks; i++ {
		intent, err := script.Next(s.Controller.State())
		if err != nil {
			log.Fatal(err)
		}
		s.Step(step, intent)
		for _, sig := range s.Drain() {
			log.Printf("tick %4d t=%.3f %-12s active=%t", i, sig.Time, sig.Kind, sig.Active)
		}
		if *states {
			st := s.Controller.State()
			pos := s.Character.Position()
			log.Printf("tick %4d pos=(%.2f, %.2f) vel=(%.2f, %.2f) grounded=%t slide=%t grab=%t dash=%t",
				i, pos.X(), pos.Y(), st.Velocity.X(), st.Velocity.Y(), st.Grounded, st.Sliding, st.Grabbing, st.Dashing)
		}
	}

	st := s.Controller.State()
	pos := s.Character.Position()
	log.Printf("replay: done at t=%.3f pos=(%.2f, %.2f) vel=(%.2f, %.2f) grounded=%t deaths=%d",
		st.Time, pos.X(), pos.Y(), st.Velocity.X(), st.Velocity.Y(), st.Grounded, s.Deaths())
}
