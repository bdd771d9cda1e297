package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/motion/levels"
	"github.com/milk9111/motion/motion"
)

const dt = 1.0 / 60

func newBoxSim(t *testing.T) *Sim {
	t.Helper()
	lvl, err := levels.Load("box.json")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	s, err := New(lvl, motion.DefaultPlanar(), 1, 2)
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	return s
}

func hasSignal(signals []motion.Signal, kind motion.SignalKind, active bool) bool {
	for _, sig := range signals {
		if sig.Kind == kind && sig.Active == active {
			return true
		}
	}
	return false
}

func TestSimLandsAndJumps(t *testing.T) {
	s := newBoxSim(t)

	var signals []motion.Signal
	for i := 0; i < 120; i++ {
		s.Step(dt, motion.Intent{})
		signals = append(signals, s.Drain()...)
	}
	if !s.Controller.State().Grounded {
		t.Fatalf("expected the character to settle on the floor, at %v", s.Character.Position())
	}
	if !hasSignal(signals, motion.SignalGrounded, true) {
		t.Fatalf("expected a grounded signal, got %v", signals)
	}

	s.Step(dt, motion.Intent{Jump: true, JumpPressed: true})
	if vy := s.Character.Velocity().Y(); vy <= 0 {
		t.Fatalf("expected upward velocity after the jump, got %v", vy)
	}
	if got := s.Drain(); !hasSignal(got, motion.SignalJump, false) {
		t.Fatalf("expected a jump signal, got %v", got)
	}
}

func TestSimRespawnsOnDeath(t *testing.T) {
	s := newBoxSim(t)
	s.Character.SetPosition(mgl64.Vec3{5, 4, 0})

	s.Controller.Trigger(motion.TriggerHazard)
	s.Step(dt, motion.Intent{})

	if s.Deaths() != 1 {
		t.Fatalf("expected one death, got %d", s.Deaths())
	}
	if p := s.Character.Position(); !p.ApproxEqual(s.Spawn()) {
		t.Fatalf("expected respawn at %v, got %v", s.Spawn(), p)
	}
}

func TestNewRejectsVolumetric(t *testing.T) {
	lvl, err := levels.Load("box.json")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	if _, err := New(lvl, motion.DefaultVolumetric(), 1, 2); err == nil {
		t.Fatalf("expected volumetric config to be rejected")
	}
	if _, err := New(nil, motion.DefaultPlanar(), 1, 2); err == nil {
		t.Fatalf("expected nil level to be rejected")
	}
}

func TestSimClampsDeltaTime(t *testing.T) {
	clamped, exact := newBoxSim(t), newBoxSim(t)
	for _, s := range []*Sim{clamped, exact} {
		s.Character.SetPosition(mgl64.Vec3{5, 4, 0})
	}

	clamped.Step(1, motion.Intent{})
	exact.Step(clamped.Config().MaxDeltaTime, motion.Intent{})

	if clamped.Controller.Now() != clamped.Config().MaxDeltaTime {
		t.Fatalf("expected the controller clock clamped to %v, got %v", clamped.Config().MaxDeltaTime, clamped.Controller.Now())
	}
	if p, want := clamped.Character.Position(), exact.Character.Position(); !p.ApproxEqual(want) {
		t.Fatalf("expected the world stepped by the clamped delta to %v, got %v", want, p)
	}

	clamped.Step(0, motion.Intent{})
	clamped.Step(-1, motion.Intent{})
	if clamped.Controller.Now() != clamped.Config().MaxDeltaTime {
		t.Fatalf("expected non-positive deltas to be ignored, clock at %v", clamped.Controller.Now())
	}
}

func TestSimRespawnClearsDash(t *testing.T) {
	s := newBoxSim(t)
	s.Character.SetPosition(mgl64.Vec3{5, 4, 0})

	s.Step(dt, motion.Intent{Move: mgl64.Vec2{1, 0}, DashPressed: true})
	if !s.Controller.State().Dashing {
		t.Fatalf("expected an active dash")
	}

	s.Controller.Trigger(motion.TriggerHazard)
	s.Step(dt, motion.Intent{})

	state := s.Controller.State()
	if state.Dashing || state.HasDashed {
		t.Fatalf("expected respawn to clear the dash, got %+v", state)
	}
	if !s.Character.GravityEnabled() {
		t.Fatalf("expected gravity restored after respawn")
	}
	if v := s.Character.Velocity(); v.Len() != 0 {
		t.Fatalf("expected respawn at rest, got %v", v)
	}
}
