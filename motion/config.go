package motion

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidConfig = errors.New("motion: invalid config")
	ErrNilBody       = errors.New("motion: body is nil")
	ErrNilWorld      = errors.New("motion: spatial query is nil")
)

// Config holds the tunables of one character. It is copied into the controller at
// construction and never mutated afterwards.
type Config struct {
	Plane Plane

	// Walking
	WalkSpeed          float64
	Acceleration       float64
	DefaultControlLerp float64
	// MaxWalkingPenalty is the speed fraction a volumetric walk starts from before it
	// ramps to full speed at Acceleration.
	MaxWalkingPenalty float64

	// Jumping
	JumpForce           float64
	FallMultiplier      float64
	JumpVelocityFalloff float64
	Gravity             float64
	WallJumpLock        float64
	WallJumpControlLerp float64
	CoyoteTime          float64
	EnableDoubleJump    bool

	// Walls
	SlideSpeed       float64
	ClimbUpFactor    float64
	WallSnapDistance float64
	WallSnapStep     float64

	// Dash
	DashSpeed              float64
	DashLength             float64
	PostDashUpCap          float64
	UseDashTargets         bool
	DashTargetCastRadius   float64
	DashTargetCastExtent   float64
	DashTargetCastDistance float64
	DashTargetMask         LayerMask

	// Detection
	GroundMask      LayerMask
	GrounderOffset  float64
	GrounderRadius  float64
	WallCheckOffset float64
	WallCheckRadius float64
	WallProbeHeight float64
	WallRayDistance float64

	// Impacts
	MinImpactForce float64

	// Input
	InputSensitivity float64
	InputDeadzone    float64

	MaxDeltaTime float64
}

// DefaultPlanar returns the side-scroller tuning.
func DefaultPlanar() Config {
	return Config{
		Plane:                  Planar,
		WalkSpeed:              4,
		Acceleration:           2,
		DefaultControlLerp:     100,
		MaxWalkingPenalty:      1,
		JumpForce:              15,
		FallMultiplier:         7,
		JumpVelocityFalloff:    8,
		Gravity:                9.81,
		WallJumpLock:           0.25,
		WallJumpControlLerp:    5,
		CoyoteTime:             0.2,
		EnableDoubleJump:       true,
		SlideSpeed:             1,
		ClimbUpFactor:          0.8,
		WallSnapDistance:       0.5,
		WallSnapStep:           0.4,
		DashSpeed:              15,
		DashLength:             1,
		PostDashUpCap:          3,
		UseDashTargets:         false,
		DashTargetCastRadius:   4,
		DashTargetCastExtent:   6,
		DashTargetCastDistance: 15,
		DashTargetMask:         LayerDashTarget,
		GroundMask:             LayerGround,
		GrounderOffset:         -1,
		GrounderRadius:         0.2,
		WallCheckOffset:        0.5,
		WallCheckRadius:        0.05,
		WallProbeHeight:        0,
		WallRayDistance:        0.5,
		MinImpactForce:         2,
		InputSensitivity:       3,
		InputDeadzone:          0.19,
		MaxDeltaTime:           0.1,
	}
}

// DefaultVolumetric returns the third-person tuning.
func DefaultVolumetric() Config {
	cfg := DefaultPlanar()
	cfg.Plane = Volumetric
	cfg.WalkSpeed = 8
	cfg.MaxWalkingPenalty = 0.5
	cfg.WallJumpControlLerp = 20
	cfg.CoyoteTime = 0.3
	cfg.SlideSpeed = 2
	cfg.DashSpeed = 30
	cfg.DashLength = 0.2
	cfg.UseDashTargets = true
	cfg.WallCheckRadius = 0.38
	cfg.WallProbeHeight = 1
	cfg.WallRayDistance = 2
	return cfg
}

// Validate rejects tunables that would make the state machine misbehave at run time.
func (c Config) Validate() error {
	var errs []error
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"walk_speed", c.WalkSpeed},
		{"acceleration", c.Acceleration},
		{"default_control_lerp", c.DefaultControlLerp},
		{"jump_force", c.JumpForce},
		{"fall_multiplier", c.FallMultiplier},
		{"gravity", c.Gravity},
		{"wall_jump_lock", c.WallJumpLock},
		{"wall_jump_control_lerp", c.WallJumpControlLerp},
		{"coyote_time", c.CoyoteTime},
		{"slide_speed", c.SlideSpeed},
		{"climb_up_factor", c.ClimbUpFactor},
		{"wall_snap_distance", c.WallSnapDistance},
		{"wall_snap_step", c.WallSnapStep},
		{"dash_speed", c.DashSpeed},
		{"dash_length", c.DashLength},
		{"post_dash_up_cap", c.PostDashUpCap},
		{"dash_target_cast_radius", c.DashTargetCastRadius},
		{"dash_target_cast_extent", c.DashTargetCastExtent},
		{"dash_target_cast_distance", c.DashTargetCastDistance},
		{"grounder_radius", c.GrounderRadius},
		{"wall_check_offset", c.WallCheckOffset},
		{"wall_check_radius", c.WallCheckRadius},
		{"wall_ray_distance", c.WallRayDistance},
		{"min_impact_force", c.MinImpactForce},
		{"input_sensitivity", c.InputSensitivity},
		{"input_deadzone", c.InputDeadzone},
	}
	for _, f := range nonNegative {
		if !(f.value >= 0) || math.IsInf(f.value, 0) {
			errs = append(errs, fmt.Errorf("%w: %s must be finite and not negative, got %v", ErrInvalidConfig, f.name, f.value))
		}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"grounder_offset", c.GrounderOffset},
		{"wall_probe_height", c.WallProbeHeight},
	} {
		if !finite(f.value) {
			errs = append(errs, fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, f.name, f.value))
		}
	}
	if !(c.MaxWalkingPenalty >= 0 && c.MaxWalkingPenalty <= 1) {
		errs = append(errs, fmt.Errorf("%w: max_walking_penalty must be within [0, 1], got %v", ErrInvalidConfig, c.MaxWalkingPenalty))
	}
	if c.InputDeadzone >= 1 {
		errs = append(errs, fmt.Errorf("%w: input_deadzone must be below 1, got %v", ErrInvalidConfig, c.InputDeadzone))
	}
	if !(c.MaxDeltaTime > 0) || math.IsInf(c.MaxDeltaTime, 0) {
		errs = append(errs, fmt.Errorf("%w: max_delta_time must be positive and finite, got %v", ErrInvalidConfig, c.MaxDeltaTime))
	}
	if !c.Plane.valid() {
		errs = append(errs, fmt.Errorf("%w: plane axes must be orthonormal", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
