package input

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/motion/motion"
	"github.com/milk9111/motion/prefabs"
)

const scriptDispatch = `
update(__engine)
`

// Script drives a controller from a tengo script. The script defines update(engine)
// and is run once per tick; the engine exposes the controller state and the actions
// for that tick.
type Script struct {
	path     string
	compiled *tengo.Compiled
	tick     int
	intent   motion.Intent
}

// LoadScript compiles a script from prefabs/scripts.
func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("input: load script %s: %w", name, err)
	}
	s, err := NewScript(src)
	if err != nil {
		return nil, fmt.Errorf("input: compile script %s: %w", name, err)
	}
	s.path = name
	return s, nil
}

func NewScript(src []byte) (*Script, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), scriptDispatch...))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &Script{compiled: compiled}, nil
}

func (s *Script) Path() string { return s.path }

func (s *Script) Tick() int { return s.tick }

// Next runs update for the current tick and returns the resulting intent.
func (s *Script) Next(state motion.State) (motion.Intent, error) {
	if s == nil || s.compiled == nil {
		return motion.Intent{}, fmt.Errorf("input: nil script")
	}
	s.intent = motion.Intent{}
	if err := s.compiled.Set("__engine", s.engine(state)); err != nil {
		return motion.Intent{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return motion.Intent{}, fmt.Errorf("input: script tick %d: %w", s.tick, err)
	}
	s.tick++
	return s.intent, nil
}

func (s *Script) engine(state motion.State) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"tick":        &tengo.Int{Value: int64(s.tick)},
		"time":        &tengo.Float{Value: state.Time},
		"grounded":    boolObject(state.Grounded),
		"sliding":     boolObject(state.Sliding),
		"grabbing":    boolObject(state.Grabbing),
		"dashing":     boolObject(state.Dashing),
		"facing_left": boolObject(state.FacingLeft),
		"velocity": &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: state.Velocity.X()},
			&tengo.Float{Value: state.Velocity.Y()},
			&tengo.Float{Value: state.Velocity.Z()},
		}},
	}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[1].TypeName()}
		}
		s.intent.Move = mgl64.Vec2{x, y}
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.intent.JumpPressed = true
		s.intent.Jump = true
		return tengo.TrueValue, nil
	}}

	values["hold_jump"] = &tengo.UserFunction{Name: "hold_jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.intent.Jump = true
		return tengo.TrueValue, nil
	}}

	values["dash"] = &tengo.UserFunction{Name: "dash", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.intent.DashPressed = true
		return tengo.TrueValue, nil
	}}

	values["grab"] = &tengo.UserFunction{Name: "grab", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.intent.Grab = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
