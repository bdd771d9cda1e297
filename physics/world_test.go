package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/motion/levels"
	"github.com/milk9111/motion/motion"
)

func TestOverlap(t *testing.T) {
	w := NewWorld(9.81)
	floor := w.AddSolid(cp.BB{L: -5, B: -1, R: 5, T: 0}, motion.LayerGround)
	near := w.AddSolid(cp.BB{L: 0.1, B: 0, R: 1, T: 1}, motion.LayerGround)
	w.AddTrigger(cp.BB{L: -1, B: 0, R: 1, T: 1}, motion.TriggerDashRefill)

	cases := []struct {
		name   string
		center mgl64.Vec3
		radius float64
		mask   motion.LayerMask
		want   []motion.SurfaceID
	}{
		{"touching_floor", mgl64.Vec3{-2, 0.1, 0}, 0.2, motion.LayerGround, []motion.SurfaceID{floor}},
		{"nothing", mgl64.Vec3{-2, 3, 0}, 0.2, motion.LayerGround, nil},
		{"nearest_first", mgl64.Vec3{0, 0.05, 0}, 0.2, motion.LayerGround, []motion.SurfaceID{floor, near}},
		{"trigger_layer_only", mgl64.Vec3{0, 0.5, 0}, 0.2, motion.LayerTrigger, []motion.SurfaceID{3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := w.Overlap(c.center, c.radius, c.mask)
			if len(got) != len(c.want) {
				t.Fatalf("expected %d contacts, got %d (%+v)", len(c.want), len(got), got)
			}
			for i, id := range c.want {
				if got[i].Surface != id {
					t.Fatalf("contact %d: expected surface %d, got %d", i, id, got[i].Surface)
				}
			}
		})
	}
}

func TestRaycast(t *testing.T) {
	w := NewWorld(9.81)
	wall := w.AddSolid(cp.BB{L: 2, B: -2, R: 3, T: 2}, motion.LayerGround)

	hit, ok := w.Raycast(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, 5, motion.LayerGround)
	if !ok {
		t.Fatalf("expected a wall hit")
	}
	if hit.Surface != wall {
		t.Fatalf("expected surface %d, got %d", wall, hit.Surface)
	}
	if !hit.Normal.ApproxEqualThreshold(mgl64.Vec3{-1, 0, 0}, 1e-6) {
		t.Fatalf("expected normal facing the ray, got %v", hit.Normal)
	}
	if math.Abs(hit.Distance-2) > 1e-6 {
		t.Fatalf("expected distance 2, got %v", hit.Distance)
	}

	if _, ok := w.Raycast(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{-1, 0, 0}, 5, motion.LayerGround); ok {
		t.Fatalf("expected no hit behind the ray")
	}
	if _, ok := w.Raycast(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, 1, motion.LayerGround); ok {
		t.Fatalf("expected no hit past the ray length")
	}
}

func TestCapsuleCastFindsTargets(t *testing.T) {
	w := NewWorld(9.81)
	far := w.AddTrigger(cp.BB{L: 9, B: 0, R: 10, T: 1}, motion.TriggerDashTarget)
	nearTarget := w.AddTrigger(cp.BB{L: 4, B: 0, R: 5, T: 1}, motion.TriggerDashTarget)
	w.AddTrigger(cp.BB{L: 6, B: 0, R: 7, T: 1}, motion.TriggerDashRefill)
	w.AddTrigger(cp.BB{L: -9, B: 0, R: -8, T: 1}, motion.TriggerDashTarget)

	hits := w.CapsuleCast(mgl64.Vec3{1, 3, 0}, mgl64.Vec3{1, -3, 0}, 1, mgl64.Vec3{1, 0, 0}, 10, motion.LayerDashTarget)
	if len(hits) != 2 {
		t.Fatalf("expected two dash targets ahead, got %d", len(hits))
	}
	if hits[0].Surface != nearTarget || hits[1].Surface != far {
		t.Fatalf("expected nearest target first, got %d then %d", hits[0].Surface, hits[1].Surface)
	}
	if !hits[0].Origin.ApproxEqual(mgl64.Vec3{4.5, 0.5, 0}) {
		t.Fatalf("expected target origin at its centre, got %v", hits[0].Origin)
	}
}

func TestCharacterGravityToggle(t *testing.T) {
	w := NewWorld(10)
	c := w.NewCharacter(mgl64.Vec3{0, 10, 0}, 1, 2)

	w.Step(0.1)
	if vy := c.Velocity().Y(); math.Abs(vy+1) > 1e-9 {
		t.Fatalf("expected gravity to pull at 10/s^2, got vy=%v", vy)
	}

	c.SetGravityEnabled(false)
	c.SetVelocity(mgl64.Vec3{2, 0, 0})
	w.Step(0.1)
	if v := c.Velocity(); !v.ApproxEqual(mgl64.Vec3{2, 0, 0}) {
		t.Fatalf("expected velocity unchanged without gravity, got %v", v)
	}
	if p := c.Position(); math.Abs(p.X()-0.2) > 1e-9 {
		t.Fatalf("expected position to integrate velocity, got %v", p)
	}

	c.SetGravityEnabled(true)
	if !c.GravityEnabled() {
		t.Fatalf("expected gravity re-enabled")
	}
}

func TestCharacterRidesPlatform(t *testing.T) {
	w := NewWorld(0)
	id := w.AddPlatform(cp.BB{L: -1, B: -1, R: 1, T: 0}, mgl64.Vec3{10, 0, 0}, 2)
	c := w.NewCharacter(mgl64.Vec3{0, 1.5, 0}, 1, 2)

	c.Attach(id)
	if c.Carrier() != id {
		t.Fatalf("expected carrier %d, got %d", id, c.Carrier())
	}
	w.Step(0.5)
	if x := c.Position().X(); math.Abs(x-1) > 1e-6 {
		t.Fatalf("expected to ride one unit with the platform, got x=%v", x)
	}

	c.Detach()
	w.Step(0.5)
	if x := c.Position().X(); math.Abs(x-1) > 1e-6 {
		t.Fatalf("expected no carry after detach, got x=%v", x)
	}
}

func TestTriggerCallback(t *testing.T) {
	w := NewWorld(0)
	w.AddTrigger(cp.BB{L: -1, B: -1, R: 1, T: 1}, motion.TriggerDashRefill)
	var got []motion.TriggerKind
	w.OnTrigger(func(k motion.TriggerKind) { got = append(got, k) })

	w.NewCharacter(mgl64.Vec3{0, 0, 0}, 1, 2)
	w.Step(1.0 / 60)
	if len(got) != 1 || got[0] != motion.TriggerDashRefill {
		t.Fatalf("expected one dash refill trigger, got %v", got)
	}
}

func TestBuildLevel(t *testing.T) {
	lvl := &levels.Level{
		Width:  4,
		Height: 3,
		Layers: [][]int{{
			0, 0, 0, 0,
			0, 0, 0, 2,
			1, 1, 1, 1,
		}},
		SpawnX: 1,
		SpawnY: 1,
		Entities: []levels.Entity{
			{Type: levels.EntityDashTarget, X: 2, Y: 0},
		},
	}
	w := NewWorld(9.81)
	spawn := w.BuildLevel(lvl, 2)

	if !spawn.ApproxEqual(mgl64.Vec3{1.5, 2, 0}) {
		t.Fatalf("expected spawn feet on the floor, got %v", spawn)
	}
	ground := w.Overlap(mgl64.Vec3{1.5, 1, 0}, 0.2, motion.LayerGround)
	if len(ground) == 0 {
		t.Fatalf("expected ground under the spawn")
	}
	// The floor row merges into one box.
	if len(w.Overlap(mgl64.Vec3{0.5, 0.5, 0}, 0.1, motion.LayerGround)) != 1 ||
		w.Overlap(mgl64.Vec3{0.5, 0.5, 0}, 0.1, motion.LayerGround)[0].Surface != w.Overlap(mgl64.Vec3{3.5, 0.5, 0}, 0.1, motion.LayerGround)[0].Surface {
		t.Fatalf("expected contiguous floor tiles to share one shape")
	}
	if len(w.Overlap(mgl64.Vec3{3.5, 1.2, 0}, 0.1, motion.LayerTrigger)) != 1 {
		t.Fatalf("expected hazard tile as trigger")
	}
	if len(w.Overlap(mgl64.Vec3{2.5, 2.5, 0}, 0.1, motion.LayerDashTarget)) != 1 {
		t.Fatalf("expected dash target entity")
	}
}

func TestPlatformBounds(t *testing.T) {
	w := NewWorld(0)
	w.AddPlatform(cp.BB{L: 0, B: 0, R: 3, T: 1}, mgl64.Vec3{0, 4, 0}, 2)
	w.Step(0.5)

	bounds := w.PlatformBounds()
	if len(bounds) != 1 {
		t.Fatalf("expected one platform, got %d", len(bounds))
	}
	if math.Abs(bounds[0].B-1) > 1e-6 || math.Abs(bounds[0].L) > 1e-6 {
		t.Fatalf("expected platform raised by one unit, got %+v", bounds[0])
	}
}
