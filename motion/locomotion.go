package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/motion/common"
)

// LocomotionState is the walking state. Axis holds the ramped input per horizontal
// plane axis (side, forward) and Penalty the volumetric speed fraction.
type LocomotionState struct {
	Axis        mgl64.Vec2
	Penalty     float64
	ControlLerp float64
}

func (c *Controller) walk(vel mgl64.Vec3, dt float64) mgl64.Vec3 {
	cfg := &c.cfg
	c.loco.ControlLerp = common.MoveTowards(c.loco.ControlLerp, cfg.DefaultControlLerp, cfg.WallJumpControlLerp*dt)
	if c.dash.Dashing {
		return vel
	}

	var horizontal mgl64.Vec3
	if cfg.Plane.IsVolumetric() {
		horizontal = c.walkPenalized(dt)
	} else {
		horizontal = c.walkRamped(vel, dt)
	}

	ideal := horizontal.Add(cfg.Plane.Up.Mul(cfg.Plane.UpOf(vel)))
	return common.MoveTowardsVec3(vel, ideal, c.loco.ControlLerp*dt)
}

// walkRamped ramps each axis from the smoothed input toward the raw input.
func (c *Controller) walkRamped(vel mgl64.Vec3, dt float64) mgl64.Vec3 {
	cfg := &c.cfg
	accel := cfg.Acceleration
	if !c.contact.Grounded {
		accel *= 0.5
	}

	raw := [2]int{c.input.RawX, c.input.RawY}
	smoothed := [2]float64{c.input.X, c.input.Y}
	var horizontal mgl64.Vec3
	for i, axis := range cfg.Plane.Axes() {
		a := smoothed[i]
		if r := float64(raw[i]); r != 0 {
			// Pressing against the current motion stops dead before ramping the other way.
			if vel.Dot(axis)*r < 0 {
				a = 0
			}
			a = common.MoveTowards(a, r, accel*dt)
		} else {
			a = common.MoveTowards(a, 0, 2*accel*dt)
		}
		c.loco.Axis[i] = a
		horizontal = horizontal.Add(axis.Mul(a * cfg.WalkSpeed))
	}
	if l := horizontal.Len(); l > cfg.WalkSpeed && l > 0 {
		horizontal = horizontal.Mul(cfg.WalkSpeed / l)
	}
	return horizontal
}

// walkPenalized moves along the smoothed input direction at a speed fraction that
// grows from MaxWalkingPenalty to 1 while there is input and shrinks back without it.
func (c *Controller) walkPenalized(dt float64) mgl64.Vec3 {
	cfg := &c.cfg
	c.loco.Axis = mgl64.Vec2{c.input.X, c.input.Y}
	dir := cfg.Plane.Compose(c.input.X, c.input.Y)

	if dir.LenSqr() > 0 {
		c.loco.Penalty += cfg.Acceleration * dt
	} else {
		c.loco.Penalty -= cfg.Acceleration * dt
	}
	c.loco.Penalty = mgl64.Clamp(c.loco.Penalty, cfg.MaxWalkingPenalty, 1)

	return common.NormalizeOrZero(dir).Mul(c.loco.Penalty * cfg.WalkSpeed)
}
