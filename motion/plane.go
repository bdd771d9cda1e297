package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane describes the axes a character moves on. A zero Forward axis makes the plane
// planar: the second input axis then drives Up (climbing, vertical dashes) instead of
// Forward.
type Plane struct {
	Side    mgl64.Vec3
	Forward mgl64.Vec3
	Up      mgl64.Vec3
}

var (
	// Planar is a side-scrolling plane: X is the side axis and Y points up.
	Planar = Plane{
		Side: mgl64.Vec3{1, 0, 0},
		Up:   mgl64.Vec3{0, 1, 0},
	}
	// Volumetric moves on the XZ ground plane with Y up.
	Volumetric = Plane{
		Side:    mgl64.Vec3{1, 0, 0},
		Forward: mgl64.Vec3{0, 0, 1},
		Up:      mgl64.Vec3{0, 1, 0},
	}
)

func (p Plane) IsVolumetric() bool {
	return p.Forward.LenSqr() > 0
}

// Second returns the world axis driven by the second input axis.
func (p Plane) Second() mgl64.Vec3 {
	if p.IsVolumetric() {
		return p.Forward
	}
	return p.Up
}

// UpOf returns the component of v along Up.
func (p Plane) UpOf(v mgl64.Vec3) float64 {
	return v.Dot(p.Up)
}

// WithUp replaces the Up component of v.
func (p Plane) WithUp(v mgl64.Vec3, up float64) mgl64.Vec3 {
	return v.Sub(p.Up.Mul(p.UpOf(v))).Add(p.Up.Mul(up))
}

// Horizontal strips the Up component of v.
func (p Plane) Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(p.Up.Mul(p.UpOf(v)))
}

// Axes returns the horizontal axes the character walks along.
func (p Plane) Axes() []mgl64.Vec3 {
	if p.IsVolumetric() {
		return []mgl64.Vec3{p.Side, p.Forward}
	}
	return []mgl64.Vec3{p.Side}
}

// Compose builds a world vector from input-space side and second-axis components.
func (p Plane) Compose(side, second float64) mgl64.Vec3 {
	return p.Side.Mul(side).Add(p.Second().Mul(second))
}

func (p Plane) valid() bool {
	const eps = 1e-6
	for _, axis := range []mgl64.Vec3{p.Side, p.Up, p.Forward} {
		for _, v := range axis {
			if !finite(v) {
				return false
			}
		}
	}
	if math.Abs(p.Side.Len()-1) > eps || math.Abs(p.Up.Len()-1) > eps {
		return false
	}
	if math.Abs(p.Side.Dot(p.Up)) > eps {
		return false
	}
	if p.IsVolumetric() {
		if math.Abs(p.Forward.Len()-1) > eps {
			return false
		}
		if math.Abs(p.Forward.Dot(p.Up)) > eps || math.Abs(p.Forward.Dot(p.Side)) > eps {
			return false
		}
	}
	return true
}
