package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/motion/common"
)

// Intent is what the host supplies every tick. Move.X drives the side axis and Move.Y
// the second axis of the plane. JumpPressed and DashPressed are edges; Jump and Grab are
// held states.
type Intent struct {
	Move        mgl64.Vec2
	Jump        bool
	JumpPressed bool
	Grab        bool
	DashPressed bool
}

// FrameInput is the sampled input of a single tick.
type FrameInput struct {
	X, Y       float64
	RawX, RawY int
	// Heading is the unit direction of the last non-neutral horizontal input.
	Heading mgl64.Vec3

	JumpHeld    bool
	JumpPressed bool
	Grab        bool
	DashPressed bool
}

// Raw returns the raw input as a world direction on the plane, not normalised.
func (in FrameInput) Raw(p Plane) mgl64.Vec3 {
	return p.Compose(float64(in.RawX), float64(in.RawY))
}

// Smoothed returns the smoothed input as a world direction on the plane.
func (in FrameInput) Smoothed(p Plane) mgl64.Vec3 {
	return p.Compose(in.X, in.Y)
}

type sampler struct {
	x, y    float64
	heading mgl64.Vec3
}

func newSampler(p Plane) sampler {
	return sampler{heading: p.Side}
}

func (s *sampler) sample(in Intent, cfg Config, dt float64) FrameInput {
	tx := sanitizeAxis(in.Move.X())
	ty := sanitizeAxis(in.Move.Y())

	step := cfg.InputSensitivity * dt
	s.x = smoothAxis(s.x, tx, step)
	s.y = smoothAxis(s.y, ty, step)

	out := FrameInput{
		X:           s.x,
		Y:           s.y,
		RawX:        common.RawAxis(tx, cfg.InputDeadzone),
		RawY:        common.RawAxis(ty, cfg.InputDeadzone),
		JumpHeld:    in.Jump || in.JumpPressed,
		JumpPressed: in.JumpPressed,
		Grab:        in.Grab,
		DashPressed: in.DashPressed,
	}

	var heading mgl64.Vec3
	if cfg.Plane.IsVolumetric() {
		heading = common.NormalizeOrZero(out.Raw(cfg.Plane))
	} else if out.RawX != 0 {
		heading = cfg.Plane.Side.Mul(float64(out.RawX))
	}
	if heading.LenSqr() > 0 {
		s.heading = heading
	}
	out.Heading = s.heading
	return out
}

// smoothAxis ramps toward target and snaps through zero on reversal.
func smoothAxis(current, target, step float64) float64 {
	if target != 0 && current != 0 && common.Sign(target) != common.Sign(current) {
		current = 0
	}
	return common.MoveTowards(current, target, step)
}

func sanitizeAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return mgl64.Clamp(v, -1, 1)
}
