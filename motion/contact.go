package motion

import (
	"github.com/go-gl/mathgl/mgl64"
)

// WallContact is the result of one wall probe. Normal points away from the wall.
type WallContact struct {
	Against  bool
	Pushing  bool
	Normal   mgl64.Vec3
	Point    mgl64.Vec3
	Distance float64
	Surface  SurfaceID
}

// ContactState is what the detector learned this tick.
type ContactState struct {
	Grounded bool
	Ground   SurfaceID

	// Walls holds one entry per probe: left and right on a planar plane, front on a
	// volumetric one.
	Walls []WallContact
	// Wall is the nearest probe that is against a wall.
	Wall WallContact

	// Hit is the wall ray result on a volumetric plane.
	Hit    Hit
	HasHit bool
}

func (c ContactState) AgainstWall() bool { return c.Wall.Against }

func (c ContactState) PushingWall() bool {
	for _, w := range c.Walls {
		if w.Pushing {
			return true
		}
	}
	return false
}

// pushingContact returns the nearest probe that is being pushed into.
func (c ContactState) pushingContact() (WallContact, bool) {
	var (
		best WallContact
		ok   bool
	)
	for _, w := range c.Walls {
		if w.Pushing && (!ok || w.Distance < best.Distance) {
			best, ok = w, true
		}
	}
	return best, ok
}

func nearestContact(contacts []Contact) (Contact, bool) {
	if len(contacts) == 0 {
		return Contact{}, false
	}
	best := contacts[0]
	for _, c := range contacts[1:] {
		if c.Distance < best.Distance {
			best = c
		}
	}
	return best, true
}

// detect runs the grounder and wall probes and applies the grounded/airborne
// transitions.
func (c *Controller) detect() {
	cfg := &c.cfg
	pos := c.body.Position()
	plane := cfg.Plane

	ground, grounded := nearestContact(c.world.Overlap(pos.Add(plane.Up.Mul(cfg.GrounderOffset)), cfg.GrounderRadius, cfg.GroundMask))

	probeOrigin := pos.Add(plane.Up.Mul(cfg.WallProbeHeight))
	walls := c.contact.Walls[:0]
	c.contact.HasHit = false
	c.contact.Hit = Hit{}
	if plane.IsVolumetric() {
		normal := c.facing.Mul(-1)
		if hit, ok := c.world.Raycast(probeOrigin, c.facing, cfg.WallRayDistance, cfg.GroundMask); ok {
			c.contact.Hit, c.contact.HasHit = hit, true
			normal = hit.Normal
		}
		walls = append(walls, c.probeWall(probeOrigin.Add(c.facing.Mul(cfg.WallCheckOffset)), normal))
	} else {
		walls = append(walls,
			c.probeWall(probeOrigin.Sub(plane.Side.Mul(cfg.WallCheckOffset)), plane.Side),
			c.probeWall(probeOrigin.Add(plane.Side.Mul(cfg.WallCheckOffset)), plane.Side.Mul(-1)),
		)
	}
	c.contact.Walls = walls

	c.contact.Wall = WallContact{}
	for _, w := range walls {
		if w.Against && (!c.contact.Wall.Against || w.Distance < c.contact.Wall.Distance) {
			c.contact.Wall = w
		}
	}

	switch {
	case grounded && !c.contact.Grounded:
		c.land(ground.Surface)
	case !grounded && c.contact.Grounded:
		c.leaveGround()
	}
	c.contact.Grounded = grounded
	if grounded {
		c.contact.Ground = ground.Surface
	} else {
		c.contact.Ground = 0
	}
}

func (c *Controller) probeWall(center, normal mgl64.Vec3) WallContact {
	contact, ok := nearestContact(c.world.Overlap(center, c.cfg.WallCheckRadius, c.cfg.GroundMask))
	if !ok {
		return WallContact{Normal: normal}
	}
	return WallContact{
		Against:  true,
		Pushing:  c.input.Smoothed(c.cfg.Plane).Dot(normal.Mul(-1)) > 0,
		Normal:   normal,
		Point:    contact.Point,
		Distance: contact.Distance,
		Surface:  contact.Surface,
	}
}

func (c *Controller) land(surface SurfaceID) {
	c.jump.HasJumped = false
	c.jump.HasDoubleJumped = false
	c.dash.HasDashed = false
	c.loco.ControlLerp = c.cfg.DefaultControlLerp
	if c.wall.Sliding {
		c.wall.Sliding = false
		c.emit(Signal{Kind: SignalWallSlide, Active: false})
	}
	if c.wall.Grabbing {
		c.wall.Grabbing = false
		c.emit(Signal{Kind: SignalWallGrab, Active: false})
	}
	c.attach(surface)
	c.debugf("motion: landed at t=%.3f on surface %d", c.now, surface)
	c.emit(Signal{Kind: SignalGrounded, Active: true})
}

func (c *Controller) leaveGround() {
	c.jump.TimeLeftGrounded = c.now
	c.detach()
	c.debugf("motion: left ground at t=%.3f", c.now)
	c.emit(Signal{Kind: SignalGrounded, Active: false})
}
