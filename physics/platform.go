package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/motion/motion"
)

// platform is a kinematic box that moves back and forth between two points.
type platform struct {
	body     *cp.Body
	shape    *cp.Shape
	from, to cp.Vector
	speed    float64
	forward  bool
}

// AddPlatform adds a ground platform that travels from bb by travel and back at speed
// units per second.
func (w *World) AddPlatform(bb cp.BB, travel mgl64.Vec3, speed float64) motion.SurfaceID {
	body := cp.NewKinematicBody()
	center := bb.Center()
	body.SetPosition(center)
	w.space.AddBody(body)

	hw, hh := (bb.R-bb.L)/2, (bb.T-bb.B)/2
	shape := cp.NewBox2(body, cp.BB{L: -hw, B: -hh, R: hw, T: hh}, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(motion.LayerGround), cp.ALL_CATEGORIES))
	w.space.AddShape(shape)

	p := &platform{
		body:    body,
		shape:   shape,
		from:    center,
		to:      center.Add(toVector(travel)),
		speed:   speed,
		forward: true,
	}
	w.platforms = append(w.platforms, p)
	return w.register(&surface{shape: shape, body: body})
}

// PlatformBounds returns the current bounds of every moving platform.
func (w *World) PlatformBounds() []cp.BB {
	out := make([]cp.BB, 0, len(w.platforms))
	for _, p := range w.platforms {
		out = append(out, p.shape.BB())
	}
	return out
}

// update turns the platform around at either end of its path.
func (p *platform) update() {
	if p.speed <= 0 || p.from.Equal(p.to) {
		p.body.SetVelocity(0, 0)
		return
	}
	target := p.to
	if !p.forward {
		target = p.from
	}
	pos := p.body.Position()
	path := p.to.Sub(p.from)
	if toTarget := target.Sub(pos); toTarget.Dot(path.Mult(boolSign(p.forward))) <= 0 {
		p.forward = !p.forward
		target = p.to
		if !p.forward {
			target = p.from
		}
	}
	v := target.Sub(pos)
	if v.LengthSq() == 0 {
		p.body.SetVelocity(0, 0)
		return
	}
	v = v.Normalize().Mult(p.speed)
	p.body.SetVelocityVector(v)
}

func boolSign(b bool) float64 {
	if b {
		return 1
	}
	return -1
}
