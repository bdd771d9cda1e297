package motion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type mockBody struct {
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	gravity  bool
	attached SurfaceID
	attaches int
	detaches int
}

func (b *mockBody) Position() mgl64.Vec3 { return b.pos }
func (b *mockBody) Velocity() mgl64.Vec3 { return b.vel }
func (b *mockBody) SetVelocity(v mgl64.Vec3) { b.vel = v }
func (b *mockBody) SetGravityEnabled(enabled bool) { b.gravity = enabled }
func (b *mockBody) SetPosition(p mgl64.Vec3) { b.pos = p }

func (b *mockBody) Attach(s SurfaceID) {
	b.attached = s
	b.attaches++
}

func (b *mockBody) Detach() {
	b.attached = 0
	b.detaches++
}

const (
	groundSurface SurfaceID = 1
	leftSurface   SurfaceID = 2
	rightSurface  SurfaceID = 3
	frontSurface  SurfaceID = 4
)

// mockWorld answers probes by their position relative to the body: anything well below
// it is the grounder, anything else is a wall probe.
type mockWorld struct {
	body    *mockBody
	ground  bool
	left    bool
	right   bool
	front   bool
	ray     *Hit
	targets []Hit
}

func (w *mockWorld) Overlap(center mgl64.Vec3, radius float64, mask LayerMask) []Contact {
	if mask&LayerGround == 0 {
		return nil
	}
	pos := w.body.pos
	if center.Y() < pos.Y()-0.5 {
		if w.ground {
			return []Contact{{Point: center, Surface: groundSurface}}
		}
		return nil
	}
	switch {
	case w.front:
		return []Contact{{Point: center, Distance: 0.1, Surface: frontSurface}}
	case w.left && center.X() < pos.X():
		return []Contact{{Point: center, Distance: 0.1, Surface: leftSurface}}
	case w.right && center.X() > pos.X():
		return []Contact{{Point: center, Distance: 0.1, Surface: rightSurface}}
	}
	return nil
}

func (w *mockWorld) Raycast(origin, dir mgl64.Vec3, distance float64, mask LayerMask) (Hit, bool) {
	if w.ray == nil {
		return Hit{}, false
	}
	return *w.ray, true
}

func (w *mockWorld) CapsuleCast(a, b mgl64.Vec3, radius float64, dir mgl64.Vec3, distance float64, mask LayerMask) []Hit {
	if mask&LayerDashTarget == 0 {
		return nil
	}
	return w.targets
}

type harness struct {
	c     *Controller
	body  *mockBody
	world *mockWorld
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	body := &mockBody{gravity: true}
	world := &mockWorld{body: body}
	c, err := New(cfg, body, world)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &harness{c: c, body: body, world: world}
}

func (h *harness) tick(dt float64, in Intent) {
	h.c.Tick(dt, in)
}

func (h *harness) ticks(n int, dt float64, in Intent) {
	for i := 0; i < n; i++ {
		h.c.Tick(dt, in)
	}
}

// drain returns the kinds emitted since the last drain.
func (h *harness) drain() []SignalKind {
	var kinds []SignalKind
	for _, s := range h.c.Signals().Drain() {
		kinds = append(kinds, s.Kind)
	}
	return kinds
}

func countKind(kinds []SignalKind, k SignalKind) int {
	n := 0
	for _, kind := range kinds {
		if kind == k {
			n++
		}
	}
	return n
}

var (
	noInput   = Intent{}
	moveRight = Intent{Move: mgl64.Vec2{1, 0}}
	jumpPress = Intent{Jump: true, JumpPressed: true}
)
