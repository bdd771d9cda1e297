package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/motion/motion"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// MotionSpec is a tuning preset. Missing fields keep the default of the chosen plane.
type MotionSpec struct {
	Name           string        `yaml:"name"`
	Plane          string        `yaml:"plane"`
	Walk           WalkSpec      `yaml:"walk"`
	Jump           JumpSpec      `yaml:"jump"`
	Wall           WallSpec      `yaml:"wall"`
	Dash           DashSpec      `yaml:"dash"`
	Detection      DetectionSpec `yaml:"detection"`
	Input          InputSpec     `yaml:"input"`
	MinImpactForce *float64      `yaml:"min_impact_force"`
	MaxDeltaTime   *float64      `yaml:"max_delta_time"`
}

type WalkSpec struct {
	Speed             *float64 `yaml:"speed"`
	Acceleration      *float64 `yaml:"acceleration"`
	ControlLerp       *float64 `yaml:"control_lerp"`
	MaxWalkingPenalty *float64 `yaml:"max_walking_penalty"`
}

type JumpSpec struct {
	Force               *float64 `yaml:"force"`
	FallMultiplier      *float64 `yaml:"fall_multiplier"`
	VelocityFalloff     *float64 `yaml:"velocity_falloff"`
	Gravity             *float64 `yaml:"gravity"`
	WallJumpLock        *float64 `yaml:"wall_jump_lock"`
	WallJumpControlLerp *float64 `yaml:"wall_jump_control_lerp"`
	CoyoteTime          *float64 `yaml:"coyote_time"`
	DoubleJump          *bool    `yaml:"double_jump"`
}

type WallSpec struct {
	SlideSpeed    *float64 `yaml:"slide_speed"`
	ClimbUpFactor *float64 `yaml:"climb_up_factor"`
	SnapDistance  *float64 `yaml:"snap_distance"`
	SnapStep      *float64 `yaml:"snap_step"`
}

type DashSpec struct {
	Speed          *float64 `yaml:"speed"`
	Length         *float64 `yaml:"length"`
	PostDashUpCap  *float64 `yaml:"post_dash_up_cap"`
	UseTargets     *bool    `yaml:"use_targets"`
	TargetRadius   *float64 `yaml:"target_radius"`
	TargetExtent   *float64 `yaml:"target_extent"`
	TargetDistance *float64 `yaml:"target_distance"`
}

type DetectionSpec struct {
	GrounderOffset  *float64 `yaml:"grounder_offset"`
	GrounderRadius  *float64 `yaml:"grounder_radius"`
	WallCheckOffset *float64 `yaml:"wall_check_offset"`
	WallCheckRadius *float64 `yaml:"wall_check_radius"`
	WallProbeHeight *float64 `yaml:"wall_probe_height"`
	WallRayDistance *float64 `yaml:"wall_ray_distance"`
}

type InputSpec struct {
	Sensitivity *float64 `yaml:"sensitivity"`
	Deadzone    *float64 `yaml:"deadzone"`
}

func LoadMotionSpec(filename string) (MotionSpec, error) {
	return LoadSpec[MotionSpec](filename)
}

// Config resolves the preset against the defaults of its plane and validates it.
func (s MotionSpec) Config() (motion.Config, error) {
	var cfg motion.Config
	switch s.Plane {
	case "", "planar":
		cfg = motion.DefaultPlanar()
	case "volumetric":
		cfg = motion.DefaultVolumetric()
	default:
		return motion.Config{}, fmt.Errorf("prefabs: motion spec %q: unknown plane %q", s.Name, s.Plane)
	}

	override(&cfg.WalkSpeed, s.Walk.Speed)
	override(&cfg.Acceleration, s.Walk.Acceleration)
	override(&cfg.DefaultControlLerp, s.Walk.ControlLerp)
	override(&cfg.MaxWalkingPenalty, s.Walk.MaxWalkingPenalty)

	override(&cfg.JumpForce, s.Jump.Force)
	override(&cfg.FallMultiplier, s.Jump.FallMultiplier)
	override(&cfg.JumpVelocityFalloff, s.Jump.VelocityFalloff)
	override(&cfg.Gravity, s.Jump.Gravity)
	override(&cfg.WallJumpLock, s.Jump.WallJumpLock)
	override(&cfg.WallJumpControlLerp, s.Jump.WallJumpControlLerp)
	override(&cfg.CoyoteTime, s.Jump.CoyoteTime)
	override(&cfg.EnableDoubleJump, s.Jump.DoubleJump)

	override(&cfg.SlideSpeed, s.Wall.SlideSpeed)
	override(&cfg.ClimbUpFactor, s.Wall.ClimbUpFactor)
	override(&cfg.WallSnapDistance, s.Wall.SnapDistance)
	override(&cfg.WallSnapStep, s.Wall.SnapStep)

	override(&cfg.DashSpeed, s.Dash.Speed)
	override(&cfg.DashLength, s.Dash.Length)
	override(&cfg.PostDashUpCap, s.Dash.PostDashUpCap)
	override(&cfg.UseDashTargets, s.Dash.UseTargets)
	override(&cfg.DashTargetCastRadius, s.Dash.TargetRadius)
	override(&cfg.DashTargetCastExtent, s.Dash.TargetExtent)
	override(&cfg.DashTargetCastDistance, s.Dash.TargetDistance)

	override(&cfg.GrounderOffset, s.Detection.GrounderOffset)
	override(&cfg.GrounderRadius, s.Detection.GrounderRadius)
	override(&cfg.WallCheckOffset, s.Detection.WallCheckOffset)
	override(&cfg.WallCheckRadius, s.Detection.WallCheckRadius)
	override(&cfg.WallProbeHeight, s.Detection.WallProbeHeight)
	override(&cfg.WallRayDistance, s.Detection.WallRayDistance)

	override(&cfg.InputSensitivity, s.Input.Sensitivity)
	override(&cfg.InputDeadzone, s.Input.Deadzone)

	override(&cfg.MinImpactForce, s.MinImpactForce)
	override(&cfg.MaxDeltaTime, s.MaxDeltaTime)

	if err := cfg.Validate(); err != nil {
		return motion.Config{}, fmt.Errorf("prefabs: motion spec %q: %w", s.Name, err)
	}
	return cfg, nil
}

// LoadMotionConfig loads and resolves a motion preset in one step.
func LoadMotionConfig(filename string) (motion.Config, error) {
	spec, err := LoadMotionSpec(filename)
	if err != nil {
		return motion.Config{}, err
	}
	return spec.Config()
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// SandboxSpec configures the interactive sandbox and the replay tool.
type SandboxSpec struct {
	Level         string        `yaml:"level"`
	Motion        string        `yaml:"motion"`
	Script        string        `yaml:"script"`
	Character     CharacterSpec `yaml:"character"`
	PixelsPerUnit float64       `yaml:"pixels_per_unit"`
	TickRate      int           `yaml:"tick_rate"`
	Debug         bool          `yaml:"debug"`
}

type CharacterSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func LoadSandboxSpec(filename string) (SandboxSpec, error) {
	spec, err := LoadSpec[SandboxSpec](filename)
	if err != nil {
		return SandboxSpec{}, err
	}
	if spec.Level == "" {
		spec.Level = "sandbox.json"
	}
	if spec.Motion == "" {
		spec.Motion = "motion_planar.yaml"
	}
	if spec.Character.Width <= 0 {
		spec.Character.Width = 1
	}
	if spec.Character.Height <= 0 {
		spec.Character.Height = 2
	}
	if spec.PixelsPerUnit <= 0 {
		spec.PixelsPerUnit = 32
	}
	if spec.TickRate <= 0 {
		spec.TickRate = 60
	}
	return spec, nil
}
