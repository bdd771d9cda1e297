package sim

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/motion/levels"
	"github.com/milk9111/motion/motion"
	"github.com/milk9111/motion/physics"
)

// Sim is one character moving through one level. Step drives the controller and then
// the physics world with the same delta time.
type Sim struct {
	Level      *levels.Level
	World      *physics.World
	Character  *physics.Character
	Controller *motion.Controller

	cfg    motion.Config
	spawn  mgl64.Vec3
	width  float64
	height float64

	died   bool
	deaths int
}

func New(lvl *levels.Level, cfg motion.Config, width, height float64, opts ...motion.Option) (*Sim, error) {
	if lvl == nil {
		return nil, fmt.Errorf("sim: nil level")
	}
	if cfg.Plane.IsVolumetric() {
		return nil, fmt.Errorf("sim: levels are planar, got a volumetric config")
	}

	world := physics.NewWorld(cfg.Gravity)
	spawn := world.BuildLevel(lvl, height)
	character := world.NewCharacter(spawn, width, height)

	s := &Sim{
		Level:     lvl,
		World:     world,
		Character: character,
		cfg:       cfg,
		spawn:     spawn,
		width:     width,
		height:    height,
	}

	opts = append(opts, motion.WithListener(s.watchDeath))
	ctrl, err := motion.New(cfg, character, world, opts...)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	s.Controller = ctrl

	world.OnTrigger(ctrl.Trigger)
	world.OnCollide(ctrl.Collide)
	return s, nil
}

func (s *Sim) Config() motion.Config { return s.cfg }

func (s *Sim) Spawn() mgl64.Vec3 { return s.spawn }

func (s *Sim) Size() (width, height float64) { return s.width, s.height }

func (s *Sim) Deaths() int { return s.deaths }

// Step advances the controller and the world by dt, clamped to the configured
// MaxDeltaTime. A non-positive dt does nothing. A death respawns the character at the
// end of the step.
func (s *Sim) Step(dt float64, intent motion.Intent) {
	if !(dt > 0) {
		return
	}
	if dt > s.cfg.MaxDeltaTime {
		dt = s.cfg.MaxDeltaTime
	}

	s.Controller.Tick(dt, intent)
	s.World.Step(dt)

	if s.died {
		s.died = false
		s.deaths++
		log.Printf("sim: death #%d at t=%.3f, respawning", s.deaths, s.Controller.Now())
		s.Respawn()
	}
}

// Respawn moves the character back to the level spawn at rest and clears any jump,
// dash, grab or platform attachment the controller was holding.
func (s *Sim) Respawn() {
	s.Controller.Reset()
	s.Character.SetPosition(s.spawn)
	s.Character.SetVelocity(mgl64.Vec3{})
}

// Drain returns the signals emitted since the last call.
func (s *Sim) Drain() []motion.Signal {
	return s.Controller.Signals().Drain()
}

func (s *Sim) watchDeath(sig motion.Signal) {
	if sig.Kind == motion.SignalDeath {
		s.died = true
	}
}
