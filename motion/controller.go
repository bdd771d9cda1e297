package motion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Controller is the per-character motion state machine. It is driven by one Tick per
// frame from a single goroutine.
type Controller struct {
	cfg        Config
	body       Body
	world      SpatialQuery
	positioner Positioner
	attacher   Attacher
	debug      func(format string, args ...any)

	now      float64
	sampler  sampler
	input    FrameInput
	contact  ContactState
	loco     LocomotionState
	jump     JumpState
	wall     WallState
	dash     DashState
	facing   mgl64.Vec3
	climbing bool
	attached SurfaceID

	signals   SignalQueue
	listeners []func(Signal)
}

type Option func(*Controller)

// WithDebugf traces state transitions through f.
func WithDebugf(f func(format string, args ...any)) Option {
	return func(c *Controller) {
		c.debug = f
	}
}

// WithListener registers a listener before the first tick.
func WithListener(f func(Signal)) Option {
	return func(c *Controller) {
		c.Listen(f)
	}
}

// New validates cfg and builds a controller for body. Optional capabilities of body
// (Positioner, Attacher) are detected by type assertion.
func New(cfg Config, body Body, world SpatialQuery, opts ...Option) (*Controller, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	if world == nil {
		return nil, ErrNilWorld
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("motion: new controller: %w", err)
	}

	c := &Controller{
		cfg:     cfg,
		body:    body,
		world:   world,
		sampler: newSampler(cfg.Plane),
		loco:    LocomotionState{ControlLerp: cfg.DefaultControlLerp},
		jump:    newJumpState(),
		facing:  cfg.Plane.Side,
		contact: ContactState{Walls: make([]WallContact, 0, 2)},
	}
	c.positioner, _ = body.(Positioner)
	c.attacher, _ = body.(Attacher)
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Tick advances the state machine by dt seconds. dt is clamped to MaxDeltaTime and a
// non-positive dt does nothing.
func (c *Controller) Tick(dt float64, intent Intent) {
	if !(dt > 0) {
		return
	}
	if dt > c.cfg.MaxDeltaTime {
		dt = c.cfg.MaxDeltaTime
	}
	c.now += dt

	c.input = c.sampler.sample(intent, c.cfg, dt)
	if !c.wall.Sliding && !c.wall.Grabbing {
		c.facing = c.input.Heading
	}
	c.detect()

	vel := c.body.Velocity()
	vel = c.walk(vel, dt)
	vel = c.jumping(vel, dt)
	vel = c.wallSlide(vel)
	vel = c.wallGrab(vel)
	vel = c.dashing(vel)

	c.body.SetVelocity(vel)
	c.body.SetGravityEnabled(!c.dash.Dashing && !c.wall.Grabbing)

	if climbing := c.wall.Sliding || c.wall.Grabbing; climbing != c.climbing {
		c.climbing = climbing
		c.emit(Signal{Kind: SignalClimbing, Active: climbing})
	}
}

// Reset drops every transient state so the character starts over where it stands, as
// after a respawn. The clock, listeners and queued signals are kept.
func (c *Controller) Reset() {
	c.sampler = newSampler(c.cfg.Plane)
	c.input = FrameInput{}
	c.contact = ContactState{Walls: c.contact.Walls[:0]}
	c.loco = LocomotionState{ControlLerp: c.cfg.DefaultControlLerp}
	c.jump = newJumpState()
	c.wall = WallState{}
	c.dash = DashState{}
	c.facing = c.cfg.Plane.Side
	c.detach()
	c.body.SetGravityEnabled(true)

	if c.climbing {
		c.climbing = false
		c.emit(Signal{Kind: SignalClimbing, Active: false})
	}
	c.debugf("motion: reset at t=%.3f", c.now)
}

// Now returns the controller clock in seconds.
func (c *Controller) Now() float64 { return c.now }

func (c *Controller) Config() Config { return c.cfg }

// Signals returns the controller's queue. The host drains it after each tick.
func (c *Controller) Signals() *SignalQueue { return &c.signals }

// Listen registers f to be called synchronously for every emitted signal.
func (c *Controller) Listen(f func(Signal)) {
	if f == nil {
		return
	}
	c.listeners = append(c.listeners, f)
}

func (c *Controller) emit(s Signal) {
	s.Time = c.now
	c.signals.Push(s)
	for _, l := range c.listeners {
		l(s)
	}
}

func (c *Controller) attach(s SurfaceID) {
	if c.attacher == nil || s == 0 || s == c.attached {
		return
	}
	c.attacher.Attach(s)
	c.attached = s
}

func (c *Controller) detach() {
	if c.attacher == nil || c.attached == 0 {
		return
	}
	c.attacher.Detach()
	c.attached = 0
}

func (c *Controller) debugf(format string, args ...any) {
	if c.debug != nil {
		c.debug(format, args...)
	}
}

// State is a read-only snapshot for animation and gameplay collaborators.
type State struct {
	Time       float64
	Grounded   bool
	Facing     mgl64.Vec3
	FacingLeft bool
	Walking    bool
	Sliding    bool
	Grabbing   bool
	Climbing   bool
	Dashing    bool
	RawY       int
	Velocity   mgl64.Vec3

	HasJumped       bool
	HasDoubleJumped bool
	HasDashed       bool
	ControlLerp     float64
}

func (c *Controller) State() State {
	return State{
		Time:            c.now,
		Grounded:        c.contact.Grounded,
		Facing:          c.facing,
		FacingLeft:      c.facing.Dot(c.cfg.Plane.Side) < 0,
		Walking:         c.contact.Grounded && c.input.RawX != 0,
		Sliding:         c.wall.Sliding,
		Grabbing:        c.wall.Grabbing,
		Climbing:        c.climbing,
		Dashing:         c.dash.Dashing,
		RawY:            c.input.RawY,
		Velocity:        c.body.Velocity(),
		HasJumped:       c.jump.HasJumped,
		HasDoubleJumped: c.jump.HasDoubleJumped,
		HasDashed:       c.dash.HasDashed,
		ControlLerp:     c.loco.ControlLerp,
	}
}

// Contacts returns the contact state of the last tick.
func (c *Controller) Contacts() ContactState { return c.contact }
