package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/motion/common"
)

type WallState struct {
	Sliding  bool
	Grabbing bool
}

func (c *Controller) wallSlide(vel mgl64.Vec3) mgl64.Vec3 {
	cfg := &c.cfg
	plane := cfg.Plane

	pushing, isPushing := c.contact.pushingContact()
	switch {
	case !c.wall.Sliding && isPushing && !c.contact.Grounded:
		c.wall.Sliding = true
		c.attach(pushing.Surface)
		c.faceWall(pushing.Normal)
		if plane.IsVolumetric() {
			c.snapToWall()
		}
		c.debugf("motion: wall slide start at t=%.3f", c.now)
		c.emit(Signal{Kind: SignalWallSlide, Active: true, Direction: pushing.Normal.Mul(-1)})
	case c.wall.Sliding && ((!isPushing && !c.wall.Grabbing) || c.contact.Grounded):
		c.wall.Sliding = false
		if !c.contact.Grounded {
			c.detach()
		}
		c.emit(Signal{Kind: SignalWallSlide, Active: false})
	}

	if c.wall.Sliding && plane.UpOf(vel) < 0 {
		vel = plane.Up.Mul(-cfg.SlideSpeed)
	}
	return vel
}

func (c *Controller) wallGrab(vel mgl64.Vec3) mgl64.Vec3 {
	cfg := &c.cfg
	// The wall jump lockout also blocks grabbing so a held grab does not cancel the launch.
	grabbing := !c.contact.Grounded &&
		c.contact.AgainstWall() &&
		c.input.Grab &&
		c.now > c.jump.TimeLastWallJumped+cfg.WallJumpLock

	if grabbing != c.wall.Grabbing {
		c.wall.Grabbing = grabbing
		if grabbing {
			c.faceWall(c.contact.Wall.Normal)
			c.debugf("motion: wall grab start at t=%.3f", c.now)
		}
		c.emit(Signal{Kind: SignalWallGrab, Active: grabbing})
	}

	if c.wall.Grabbing {
		climb := float64(c.input.RawY)
		factor := cfg.ClimbUpFactor
		if climb < 0 {
			factor = 1
		}
		vel = cfg.Plane.Up.Mul(climb * cfg.SlideSpeed * factor)
	}
	return vel
}

// faceWall turns the character toward a wall given the wall's outward normal.
func (c *Controller) faceWall(normal mgl64.Vec3) {
	facing := common.NormalizeOrZero(c.cfg.Plane.Horizontal(normal.Mul(-1)))
	if facing.LenSqr() > 0 {
		c.facing = facing
	}
}

func (c *Controller) snapToWall() {
	if c.positioner == nil || !c.contact.HasHit {
		return
	}
	plane := c.cfg.Plane
	pos := c.body.Position()
	offset := plane.Horizontal(c.contact.Hit.Point.Sub(pos))
	if offset.Len() <= c.cfg.WallSnapDistance {
		return
	}
	c.positioner.SetPosition(common.MoveTowardsVec3(pos, pos.Add(offset), c.cfg.WallSnapStep))
}
