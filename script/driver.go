// Package script drives a character from a tengo program. A script defines
//
//	update := func(engine, state, tick) { ... }
//
// which runs once per tick. engine exposes the character's state and the
// input actions; state is a map that persists between ticks. engine.move sets
// a held lateral axis that is re-sent every tick until the script changes it.
package script

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/ghostrun/ecs/component"
	"github.com/milk9111/ghostrun/mathx"
	"github.com/milk9111/ghostrun/movement"
	"github.com/milk9111/ghostrun/prefabs"
)

var ErrNoUpdate = errors.New("script: update function not defined")

const dispatchScript = `
if __run {
	update(__engine, __state, __tick)
}
`

// State is the character snapshot a script can read.
type State struct {
	Grounded      bool
	WallSliding   bool
	Dashing       bool
	DashReady     bool
	WallJumpArmed bool
	Position      mathx.Vec3
	Velocity      mathx.Vec3
	Yaw           float64
}

// StateFunc is called once per tick before the script runs.
type StateFunc func() State

// Driver runs a compiled script and turns its actions into input events. It
// implements the ECS input source.
type Driver struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	observe  StateFunc
	log      *slog.Logger

	pending []component.InputEvent
	axis    float64
	moved   bool
	done    bool
	err     error
}

type Option func(*Driver)

func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// Load compiles a script from the prefabs script directory.
func Load(name string, observe StateFunc, opts ...Option) (*Driver, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src, observe, opts...)
}

func Compile(name string, src []byte, observe StateFunc, opts ...Option) (*Driver, error) {
	d := &Driver{
		name:    name,
		state:   &tengo.Map{Value: map[string]tengo.Object{}},
		observe: observe,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := checkUpdate(name, src); err != nil {
		return nil, err
	}

	full := string(src) + "\n" + dispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__run", false)
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__tick", 0)
	s.SetImports(stdlib.GetModuleMap("math", "text", "fmt"))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	// Run the top level once so globals are defined before the first tick.
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", name, err)
	}
	d.compiled = compiled
	return d, nil
}

// checkUpdate runs the source without the dispatch wrapper, which would fail
// to compile on a missing update, and checks that update is a function.
func checkUpdate(name string, src []byte) error {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap("math", "text", "fmt"))
	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("script: run %s: %w", name, err)
	}
	if !compiled.IsDefined("update") {
		return fmt.Errorf("script: %s: %w", name, ErrNoUpdate)
	}
	if _, ok := compiled.Get("update").Object().(*tengo.CompiledFunction); !ok {
		return fmt.Errorf("script: %s: update is not a function: %w", name, ErrNoUpdate)
	}
	return nil
}

func (d *Driver) Name() string { return d.name }

// Done reports whether the script called engine.finish() or failed.
func (d *Driver) Done() bool { return d.done }

// Err returns the runtime error that stopped the script, if any.
func (d *Driver) Err() error { return d.err }

// Poll runs update for one tick and returns the input it produced. A script
// that errors is stopped and produces no further input.
func (d *Driver) Poll(tick uint64) []component.InputEvent {
	if d == nil || d.done {
		return nil
	}

	var st State
	if d.observe != nil {
		st = d.observe()
	}
	d.pending = d.pending[:0]
	d.moved = false

	engine := d.buildEngine(st, tick)
	if err := d.run(engine, tick); err != nil {
		d.err = err
		d.done = true
		d.log.Error("input script stopped", "script", d.name, "tick", tick, "err", err)
		return nil
	}

	out := make([]component.InputEvent, 0, len(d.pending)+1)
	if !d.moved && d.axis != 0 {
		out = append(out, component.InputEvent{Kind: component.InputMove, Move: mathx.Vec2{X: d.axis}})
	}
	return append(out, d.pending...)
}

// StateValue reads a key of the script's persistent state map.
func (d *Driver) StateValue(key string) (any, bool) {
	obj, ok := d.state.Value[key]
	if !ok {
		return nil, false
	}
	return tengo.ToInterface(obj), true
}

func (d *Driver) run(engine *tengo.ImmutableMap, tick uint64) error {
	if err := d.compiled.Set("__run", true); err != nil {
		return err
	}
	if err := d.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := d.compiled.Set("__state", d.state); err != nil {
		return err
	}
	if err := d.compiled.Set("__tick", int64(tick)); err != nil {
		return err
	}
	return d.compiled.Run()
}

func (d *Driver) buildEngine(st State, tick uint64) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		d.axis = mathx.Clamp(x, -1, 1)
		d.moved = true
		d.push(component.InputEvent{Kind: component.InputMove, Move: mathx.Vec2{X: d.axis}})
		return tengo.UndefinedValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d.push(component.InputEvent{Kind: component.InputJumpPressed})
		return tengo.UndefinedValue, nil
	}}

	values["release_jump"] = &tengo.UserFunction{Name: "release_jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d.push(component.InputEvent{Kind: component.InputJumpReleased})
		return tengo.UndefinedValue, nil
	}}

	values["dash"] = &tengo.UserFunction{Name: "dash", Value: func(args ...tengo.Object) (tengo.Object, error) {
		variant := movement.DashStationary
		if len(args) > 0 {
			name, _ := tengo.ToString(args[0])
			v, ok := movement.ParseDashVariant(strings.TrimSpace(name))
			if !ok {
				return nil, fmt.Errorf("dash: unknown variant %q", name)
			}
			variant = v
		}
		d.push(component.InputEvent{Kind: component.InputDashPressed, Dash: variant})
		return tengo.UndefinedValue, nil
	}}

	values["finish"] = &tengo.UserFunction{Name: "finish", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d.done = true
		return tengo.UndefinedValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			s, _ := tengo.ToString(a)
			parts = append(parts, s)
		}
		d.log.Info(strings.Join(parts, " "), "script", d.name, "tick", tick)
		return tengo.UndefinedValue, nil
	}}

	values["grounded"] = boolGetter("grounded", st.Grounded)
	values["wall_sliding"] = boolGetter("wall_sliding", st.WallSliding)
	values["dashing"] = boolGetter("dashing", st.Dashing)
	values["dash_ready"] = boolGetter("dash_ready", st.DashReady)
	values["wall_jump_armed"] = boolGetter("wall_jump_armed", st.WallJumpArmed)

	values["position"] = vecGetter("position", st.Position)
	values["velocity"] = vecGetter("velocity", st.Velocity)
	values["yaw"] = &tengo.UserFunction{Name: "yaw", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: st.Yaw}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (d *Driver) push(evt component.InputEvent) {
	d.pending = append(d.pending, evt)
}

func boolGetter(name string, v bool) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if v {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}
}

// vecGetter returns [lateral, up]; the depth axis is not simulated.
func vecGetter(name string, v mathx.Vec3) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.Y}, &tengo.Float{Value: v.Z}}}, nil
	}}
}
