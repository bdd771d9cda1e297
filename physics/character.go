package physics

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/motion/motion"
)

var (
	_ motion.Body       = (*Character)(nil)
	_ motion.Positioner = (*Character)(nil)
	_ motion.Attacher   = (*Character)(nil)
)

// Character is the rigid body a motion controller drives: a box with fixed rotation
// and no friction so walls do not hold it up.
type Character struct {
	world   *World
	body    *cp.Body
	shape   *cp.Shape
	gravity bool
	// carrier is the platform body the character rides, if any.
	carrier *cp.Body
}

// NewCharacter adds a character centred on pos.
func (w *World) NewCharacter(pos mgl64.Vec3, width, height float64) *Character {
	body := cp.NewBody(1, math.Inf(1))
	body.SetAngle(0)
	body.SetAngularVelocity(0)
	body.SetPosition(toVector(pos))

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(motion.LayerCharacter), cp.ALL_CATEGORIES))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	c := &Character{world: w, body: body, shape: shape, gravity: true}
	body.SetPositionUpdateFunc(c.updatePosition)
	log.Printf("physics: character %.1fx%.1f at (%.2f, %.2f)", width, height, pos.X(), pos.Y())
	return c
}

func (c *Character) Position() mgl64.Vec3 { return fromVector(c.body.Position()) }

func (c *Character) Velocity() mgl64.Vec3 { return fromVector(c.body.Velocity()) }

func (c *Character) SetVelocity(v mgl64.Vec3) {
	if !finite(v.X()) || !finite(v.Y()) {
		return
	}
	c.body.SetVelocity(v.X(), v.Y())
}

func (c *Character) SetPosition(p mgl64.Vec3) {
	c.body.SetPosition(toVector(p))
}

// GravityEnabled reports whether world gravity currently acts on the character.
func (c *Character) GravityEnabled() bool { return c.gravity }

func (c *Character) SetGravityEnabled(enabled bool) {
	if enabled == c.gravity {
		return
	}
	c.gravity = enabled
	if enabled {
		c.body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
		return
	}
	c.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})
}

// Attach makes the character ride s when it is a moving platform.
func (c *Character) Attach(s motion.SurfaceID) {
	surf, ok := c.world.surfaces[s]
	if !ok || surf.body == nil {
		c.carrier = nil
		return
	}
	c.carrier = surf.body
}

func (c *Character) Detach() { c.carrier = nil }

// Carrier returns the surface the character rides, or zero.
func (c *Character) Carrier() motion.SurfaceID {
	if c.carrier == nil {
		return 0
	}
	for id, s := range c.world.surfaces {
		if s.body == c.carrier {
			return id
		}
	}
	return 0
}

// Bounds returns the character's box in world space.
func (c *Character) Bounds() cp.BB { return c.shape.BB() }

func (c *Character) updatePosition(body *cp.Body, dt float64) {
	cp.BodyUpdatePosition(body, dt)
	if c.carrier != nil {
		body.SetPosition(body.Position().Add(c.carrier.Velocity().Mult(dt)))
	}
}
