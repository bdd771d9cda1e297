package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/motion/common"
)

type DashState struct {
	HasDashed   bool
	Dashing     bool
	Direction   mgl64.Vec3
	TimeStarted float64
	// ToTarget holds the dash open past its length until a dash target is reached.
	ToTarget bool
}

func (c *Controller) dashing(vel mgl64.Vec3) mgl64.Vec3 {
	cfg := &c.cfg
	plane := cfg.Plane

	if c.input.DashPressed && !c.dash.HasDashed && !c.dash.Dashing {
		dir := common.NormalizeOrZero(c.input.Raw(plane))
		if dir.LenSqr() == 0 {
			dir = c.input.Heading
		}
		toTarget := false
		if cfg.UseDashTargets {
			if target, ok := c.nearestDashTarget(); ok {
				dir, toTarget = target, true
			}
		}
		c.dash = DashState{
			HasDashed:   true,
			Dashing:     true,
			Direction:   dir,
			TimeStarted: c.now,
			ToTarget:    toTarget,
		}
		c.debugf("motion: dash start at t=%.3f dir=%v to_target=%v", c.now, dir, toTarget)
		c.emit(Signal{Kind: SignalDashStarted, Direction: dir})
	}

	if !c.dash.Dashing {
		return vel
	}
	vel = c.dash.Direction.Mul(cfg.DashSpeed)
	if c.now >= c.dash.TimeStarted+cfg.DashLength && !c.dash.ToTarget {
		c.dash.Dashing = false
		if up := plane.UpOf(vel); up > cfg.PostDashUpCap {
			vel = plane.WithUp(vel, cfg.PostDashUpCap)
		}
		if c.contact.Grounded {
			c.dash.HasDashed = false
		}
		c.debugf("motion: dash stop at t=%.3f", c.now)
		c.emit(Signal{Kind: SignalDashStopped, Direction: c.dash.Direction})
	}
	return vel
}

// nearestDashTarget sweeps a capsule ahead of the character and returns the direction
// to the closest target.
func (c *Controller) nearestDashTarget() (mgl64.Vec3, bool) {
	cfg := &c.cfg
	pos := c.body.Position()
	ahead := pos.Add(c.facing)
	extent := cfg.Plane.Up.Mul(cfg.DashTargetCastExtent)
	hits := c.world.CapsuleCast(ahead.Add(extent), ahead.Sub(extent), cfg.DashTargetCastRadius, c.facing, cfg.DashTargetCastDistance, cfg.DashTargetMask)

	var (
		best    mgl64.Vec3
		bestLen float64
		found   bool
	)
	for _, h := range hits {
		to := h.Origin.Sub(pos)
		d := to.Len()
		if d == 0 {
			continue
		}
		if !found || d < bestLen {
			best, bestLen, found = to.Mul(1/d), d, true
		}
	}
	return best, found
}
