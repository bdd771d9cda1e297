package physics

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/motion/levels"
	"github.com/milk9111/motion/motion"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeTrigger
	collisionTypeCharacter
)

type surface struct {
	id    motion.SurfaceID
	shape *cp.Shape
	// body is set for moving platforms.
	body    *cp.Body
	trigger motion.TriggerKind
}

// World owns the Chipmunk space and answers the controller's spatial queries.
// Positions are in world units with Y up.
type World struct {
	space         *cp.Space
	handlersReady bool

	nextID    motion.SurfaceID
	surfaces  map[motion.SurfaceID]*surface
	shapeToID map[*cp.Shape]motion.SurfaceID
	platforms []*platform

	onTrigger func(motion.TriggerKind)
	onCollide func(motion.Collision)
}

// NewWorld creates an empty world pulling bodies down with gravity.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})

	w := &World{
		space:     space,
		surfaces:  make(map[motion.SurfaceID]*surface),
		shapeToID: make(map[*cp.Shape]motion.SurfaceID),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// OnTrigger registers the callback fired when a character enters a trigger.
func (w *World) OnTrigger(f func(motion.TriggerKind)) { w.onTrigger = f }

// OnCollide registers the callback fired when a character starts touching a solid.
func (w *World) OnCollide(f func(motion.Collision)) { w.onCollide = f }

// Step moves platforms and advances the simulation. Callbacks fire during the call.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	for _, p := range w.platforms {
		p.update()
	}
	w.space.Step(dt)
}

func (w *World) register(s *surface) motion.SurfaceID {
	w.nextID++
	s.id = w.nextID
	w.surfaces[s.id] = s
	w.shapeToID[s.shape] = s.id
	s.shape.UserData = s
	return s.id
}

// AddSolid adds a static box on the given layer.
func (w *World) AddSolid(bb cp.BB, layer motion.LayerMask) motion.SurfaceID {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	w.space.AddShape(shape)
	return w.register(&surface{shape: shape})
}

// AddTrigger adds a static sensor. Dash targets sit on LayerDashTarget so the dash
// cast can find them; the other kinds sit on LayerTrigger.
func (w *World) AddTrigger(bb cp.BB, kind motion.TriggerKind) motion.SurfaceID {
	layer := motion.LayerTrigger
	if kind == motion.TriggerDashTarget {
		layer = motion.LayerDashTarget
	}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeTrigger)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	w.space.AddShape(shape)
	return w.register(&surface{shape: shape, trigger: kind})
}

// BuildLevel adds the level's tiles, entities and bounds, and returns the spawn point
// for a character of the given height.
func (w *World) BuildLevel(lvl *levels.Level, characterHeight float64) mgl64.Vec3 {
	if w == nil || lvl == nil {
		return mgl64.Vec3{}
	}
	for idx, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height || !lvl.HasPhysics(idx) {
			continue
		}
		w.processLayerTiles(lvl, layer)
	}

	for _, e := range lvl.Entities {
		bb := tileBB(lvl, e.X, e.Y, int(e.Prop("w", 1)), int(e.Prop("h", 1)))
		switch e.Type {
		case levels.EntityDashRefill:
			w.AddTrigger(bb, motion.TriggerDashRefill)
		case levels.EntityDashTarget:
			w.AddTrigger(bb, motion.TriggerDashTarget)
		case levels.EntityPlatform:
			travel := mgl64.Vec3{e.Prop("travel_x", 0), -e.Prop("travel_y", 0), 0}
			w.AddPlatform(bb, travel, e.Prop("speed", 1))
		default:
			log.Printf("physics: unknown level entity %q at (%d, %d)", e.Type, e.X, e.Y)
		}
	}

	worldW := float64(lvl.Width)
	worldH := float64(lvl.Height)
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // bottom
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // top
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, 0.05)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(motion.LayerGround), cp.ALL_CATEGORIES))
		w.space.AddShape(shape)
		w.register(&surface{shape: shape})
	}

	return mgl64.Vec3{float64(lvl.SpawnX) + 0.5, float64(lvl.Height-lvl.SpawnY-1) + characterHeight/2, 0}
}

// tileBB converts a tile rectangle with its top-left tile at (x, y) to world space.
func tileBB(lvl *levels.Level, x, y, w, h int) cp.BB {
	top := float64(lvl.Height - y)
	return cp.BB{L: float64(x), B: top - float64(h), R: float64(x + w), T: top}
}

// processLayerTiles merges contiguous solid tiles into larger boxes, width first then
// height. Hazard tiles stay individual sensors.
func (w *World) processLayerTiles(lvl *levels.Level, layer []int) {
	processed := make([]bool, lvl.Width*lvl.Height)
	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			idx := y*lvl.Width + x
			if processed[idx] {
				continue
			}
			tileVal := layer[idx]
			if tileVal == levels.TileEmpty {
				processed[idx] = true
				continue
			}

			if tileVal == levels.TileHazard {
				bb := tileBB(lvl, x, y, 1, 1)
				bb.T -= 0.5
				w.AddTrigger(bb, motion.TriggerHazard)
				processed[idx] = true
				continue
			}

			width := 1
			for x+width < lvl.Width {
				idx2 := y*lvl.Width + (x + width)
				if processed[idx2] || layer[idx2] != levels.TileSolid {
					break
				}
				width++
			}

			height := 1
		heightLoop:
			for y+height < lvl.Height {
				for xi := x; xi < x+width; xi++ {
					idx2 := (y+height)*lvl.Width + xi
					if processed[idx2] || layer[idx2] != levels.TileSolid {
						break heightLoop
					}
				}
				height++
			}

			w.AddSolid(tileBB(lvl, x, y, width, height), motion.LayerGround)

			for yy := y; yy < y+height; yy++ {
				for xx := x; xx < x+width; xx++ {
					processed[yy*lvl.Width+xx] = true
				}
			}
		}
	}
}

func (w *World) setupHandlers() {
	if w == nil || w.handlersReady || w.space == nil {
		return
	}

	triggerHandler := w.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeTrigger)
	triggerHandler.UserData = w
	triggerHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil || world.onTrigger == nil {
			return true
		}
		a, b := arb.Shapes()
		for _, shape := range []*cp.Shape{a, b} {
			if s, ok := shape.UserData.(*surface); ok && s.trigger != 0 {
				world.onTrigger(s.trigger)
			}
		}
		return true
	}

	solidHandler := w.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeSolid)
	solidHandler.UserData = w
	solidHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil || world.onCollide == nil {
			return true
		}
		a, b := arb.Bodies()
		rel := a.Velocity().Sub(b.Velocity())
		world.onCollide(motion.Collision{RelativeSpeed: rel.Length()})
		return true
	}

	w.handlersReady = true
}

func toVector(v mgl64.Vec3) cp.Vector { return cp.Vector{X: v.X(), Y: v.Y()} }

func fromVector(v cp.Vector) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, 0} }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
