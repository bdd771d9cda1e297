package motion

import "github.com/go-gl/mathgl/mgl64"

// LayerMask selects which collision layers a query considers.
type LayerMask uint32

const (
	LayerGround LayerMask = 1 << iota
	LayerDashTarget
	LayerCharacter
	LayerTrigger
)

// SurfaceID identifies a contacted surface in the host physics world. Zero means none.
type SurfaceID uint64

// Contact is one overlap query result.
type Contact struct {
	Point    mgl64.Vec3
	Distance float64
	Surface  SurfaceID
}

// Hit is one cast query result. Origin is the reference position of the hit object,
// which dash homing steers toward.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Origin   mgl64.Vec3
	Distance float64
	Surface  SurfaceID
}

// SpatialQuery is the physics world as seen by the contact detector and the dash
// controller. Returning no contacts is a normal result.
type SpatialQuery interface {
	Overlap(center mgl64.Vec3, radius float64, mask LayerMask) []Contact
	Raycast(origin, dir mgl64.Vec3, distance float64, mask LayerMask) (Hit, bool)
	CapsuleCast(a, b mgl64.Vec3, radius float64, dir mgl64.Vec3, distance float64, mask LayerMask) []Hit
}

// Body is the rigid body the controller drives.
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	SetGravityEnabled(enabled bool)
}

// Positioner is implemented by bodies that allow the controller to nudge their position.
type Positioner interface {
	SetPosition(p mgl64.Vec3)
}

// Attacher is implemented by bodies that can ride a contacted surface, such as a
// moving platform.
type Attacher interface {
	Attach(s SurfaceID)
	Detach()
}

// TriggerKind classifies trigger volumes reported by the host.
type TriggerKind uint8

const (
	TriggerHazard TriggerKind = iota + 1
	TriggerDashRefill
	TriggerDashTarget
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerHazard:
		return "hazard"
	case TriggerDashRefill:
		return "dash_refill"
	case TriggerDashTarget:
		return "dash_target"
	default:
		return "unknown"
	}
}

// Collision is a solid contact reported by the host physics step.
type Collision struct {
	RelativeSpeed float64
	Hazard        bool
}
