package motion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSamplerRawAxes(t *testing.T) {
	cases := []struct {
		name       string
		move       mgl64.Vec2
		rawX, rawY int
	}{
		{"neutral", mgl64.Vec2{0, 0}, 0, 0},
		{"inside_deadzone", mgl64.Vec2{0.15, -0.1}, 0, 0},
		{"right_down", mgl64.Vec2{0.5, -0.8}, 1, -1},
		{"clamped", mgl64.Vec2{-7, 3}, -1, 1},
		{"nan", mgl64.Vec2{math.NaN(), 1}, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newSampler(Planar)
			in := s.sample(Intent{Move: c.move}, DefaultPlanar(), 0.01)
			if in.RawX != c.rawX || in.RawY != c.rawY {
				t.Fatalf("expected raw (%d, %d), got (%d, %d)", c.rawX, c.rawY, in.RawX, in.RawY)
			}
		})
	}
}

func TestSamplerSmoothing(t *testing.T) {
	cfg := DefaultPlanar()
	s := newSampler(Planar)

	in := s.sample(Intent{Move: mgl64.Vec2{1, 0}}, cfg, 0.1)
	if math.Abs(in.X-0.3) > 1e-12 {
		t.Fatalf("expected smoothed x 0.3, got %v", in.X)
	}
	for i := 0; i < 5; i++ {
		in = s.sample(Intent{Move: mgl64.Vec2{1, 0}}, cfg, 0.1)
	}
	if in.X != 1 {
		t.Fatalf("expected smoothed x to settle at 1, got %v", in.X)
	}

	in = s.sample(Intent{Move: mgl64.Vec2{-1, 0}}, cfg, 0.1)
	if math.Abs(in.X+0.3) > 1e-12 {
		t.Fatalf("expected reversal to snap through zero, got %v", in.X)
	}
}

func TestSamplerHeading(t *testing.T) {
	t.Run("planar", func(t *testing.T) {
		s := newSampler(Planar)
		cfg := DefaultPlanar()
		if in := s.sample(Intent{}, cfg, 0.01); !in.Heading.ApproxEqual(Planar.Side) {
			t.Fatalf("expected default heading along side, got %v", in.Heading)
		}
		s.sample(Intent{Move: mgl64.Vec2{-1, 1}}, cfg, 0.01)
		if in := s.sample(Intent{}, cfg, 0.01); !in.Heading.ApproxEqual(mgl64.Vec3{-1, 0, 0}) {
			t.Fatalf("expected heading to keep the last side input, got %v", in.Heading)
		}
	})

	t.Run("volumetric", func(t *testing.T) {
		s := newSampler(Volumetric)
		cfg := DefaultVolumetric()
		in := s.sample(Intent{Move: mgl64.Vec2{1, 1}}, cfg, 0.01)
		want := mgl64.Vec3{1, 0, 1}.Normalize()
		if !in.Heading.ApproxEqual(want) {
			t.Fatalf("expected diagonal heading %v, got %v", want, in.Heading)
		}
	})
}

func TestJumpPressedImpliesHeld(t *testing.T) {
	s := newSampler(Planar)
	in := s.sample(Intent{JumpPressed: true}, DefaultPlanar(), 0.01)
	if !in.JumpHeld {
		t.Fatalf("a press should count as held on the same tick")
	}
}
