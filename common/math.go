package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MoveTowards moves current toward target by at most maxDelta without overshooting.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// MoveTowardsVec3 moves current toward target by at most maxDelta units of distance.
func MoveTowardsVec3(current, target mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(delta.Mul(maxDelta / dist))
}

// NormalizeOrZero returns the unit vector of v, or the zero vector when v has no length.
func NormalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// RawAxis discretises an analog axis into {-1, 0, 1} using a deadzone.
func RawAxis(v, deadzone float64) int {
	if math.Abs(v) <= deadzone {
		return 0
	}
	return Sign(v)
}
