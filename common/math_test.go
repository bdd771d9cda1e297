package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		name                     string
		current, target, maxStep float64
		want                     float64
	}{
		{"step_up", 0, 10, 3, 3},
		{"step_down", 0, -10, 3, -3},
		{"no_overshoot", 9, 10, 3, 10},
		{"already_there", 5, 5, 1, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MoveTowards(c.current, c.target, c.maxStep); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestMoveTowardsVec3(t *testing.T) {
	got := MoveTowardsVec3(mgl64.Vec3{}, mgl64.Vec3{3, 4, 0}, 2.5)
	if !got.ApproxEqual(mgl64.Vec3{1.5, 2, 0}) {
		t.Fatalf("expected half way along the segment, got %v", got)
	}
	if got := MoveTowardsVec3(mgl64.Vec3{}, mgl64.Vec3{3, 4, 0}, 10); got != (mgl64.Vec3{3, 4, 0}) {
		t.Fatalf("expected to snap to the target, got %v", got)
	}
}

func TestNormalizeOrZero(t *testing.T) {
	if got := NormalizeOrZero(mgl64.Vec3{}); got != (mgl64.Vec3{}) {
		t.Fatalf("expected zero vector, got %v", got)
	}
	if got := NormalizeOrZero(mgl64.Vec3{0, 5, 0}); !got.ApproxEqual(mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("expected unit up, got %v", got)
	}
	if Sign(-0.1) != -1 || Sign(0) != 0 || Sign(2) != 1 {
		t.Fatalf("unexpected sign results")
	}
}
