package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/motion/common"
)

// JumpState tracks jump availability for the current air-cycle.
type JumpState struct {
	HasJumped          bool
	HasDoubleJumped    bool
	TimeLeftGrounded   float64
	TimeLastWallJumped float64
}

func newJumpState() JumpState {
	return JumpState{TimeLeftGrounded: -10, TimeLastWallJumped: -10}
}

func (c *Controller) jumping(vel mgl64.Vec3, dt float64) mgl64.Vec3 {
	if c.dash.Dashing {
		return vel
	}
	cfg := &c.cfg
	plane := cfg.Plane

	if c.input.JumpPressed {
		switch {
		case c.wall.Grabbing || (!c.contact.Grounded && c.contact.AgainstWall()):
			c.jump.TimeLastWallJumped = c.now
			c.loco.ControlLerp = cfg.WallJumpControlLerp
			if normal, ok := c.wallJumpNormal(); ok {
				vel = normal.Mul(cfg.JumpForce).Add(plane.Up.Mul(cfg.JumpForce))
				c.jump.HasJumped = true
				c.debugf("motion: wall jump at t=%.3f normal=%v", c.now, normal)
				c.emit(Signal{Kind: SignalWallJump, Direction: common.NormalizeOrZero(vel)})
			}
		case c.contact.Grounded || c.now < c.jump.TimeLeftGrounded+cfg.CoyoteTime || (cfg.EnableDoubleJump && !c.jump.HasDoubleJumped):
			// Inside the coyote window a second jump is accepted even with double jump off.
			second := c.jump.HasJumped
			if second && c.jump.HasDoubleJumped {
				break
			}
			vel = plane.WithUp(vel, cfg.JumpForce)
			c.jump.HasJumped = true
			c.jump.HasDoubleJumped = second
			kind := SignalJump
			if second {
				kind = SignalDoubleJump
			}
			c.debugf("motion: %s at t=%.3f", kind, c.now)
			c.emit(Signal{Kind: kind, Direction: plane.Up})
		}
	}

	if c.wall.Grabbing {
		return vel
	}
	up := plane.UpOf(vel)
	if up < cfg.JumpVelocityFalloff || (up > 0 && !c.input.JumpHeld) {
		vel = vel.Sub(plane.Up.Mul(cfg.FallMultiplier * cfg.Gravity * dt))
	}
	return vel
}

// wallJumpNormal returns the horizontal launch direction away from the wall. A
// volumetric plane needs a wall ray hit to launch.
func (c *Controller) wallJumpNormal() (mgl64.Vec3, bool) {
	plane := c.cfg.Plane
	if plane.IsVolumetric() {
		if !c.contact.HasHit {
			return mgl64.Vec3{}, false
		}
		return plane.Horizontal(c.contact.Hit.Normal), true
	}
	if !c.contact.Wall.Against {
		return mgl64.Vec3{}, false
	}
	return c.contact.Wall.Normal, true
}
