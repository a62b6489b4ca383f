package component

import (
	"github.com/milk9111/ghostrun/mathx"
	"github.com/milk9111/ghostrun/movement"
)

type InputEventKind uint8

const (
	InputMove InputEventKind = iota + 1
	InputJumpPressed
	InputJumpReleased
	InputDashPressed
)

func (k InputEventKind) String() string {
	switch k {
	case InputMove:
		return "move"
	case InputJumpPressed:
		return "jump_pressed"
	case InputJumpReleased:
		return "jump_released"
	case InputDashPressed:
		return "dash_pressed"
	}
	return "unknown"
}

// InputEvent is one discrete player input. Move is only read for InputMove,
// Dash only for InputDashPressed.
type InputEvent struct {
	Kind InputEventKind
	Move mathx.Vec2
	Dash movement.DashVariant
}

// InputQueue is a one-tick queue of input events. InputSystem appends and
// MovementSystem drains it in arrival order.
type InputQueue struct {
	Events []InputEvent
}

var InputQueueComponent = NewComponent[InputQueue]()

// InputFrame is one tick of device state. The lateral axis is reported while
// held; buttons on their press/release edges.
type InputFrame struct {
	MoveX           float64
	JumpPressed     bool
	JumpReleased    bool
	DashPressed     bool
	DirectionalDash bool
}

// Events turns the frame into input events. No move event is sent for a
// released axis, so the controller keeps the last direction for dashes and
// springboards.
func (f InputFrame) Events(dash movement.DashVariant) []InputEvent {
	var events []InputEvent
	if f.MoveX != 0 {
		events = append(events, InputEvent{Kind: InputMove, Move: mathx.Vec2{X: f.MoveX}})
	}
	if f.JumpPressed {
		events = append(events, InputEvent{Kind: InputJumpPressed})
	}
	if f.JumpReleased {
		events = append(events, InputEvent{Kind: InputJumpReleased})
	}
	if f.DashPressed {
		events = append(events, InputEvent{Kind: InputDashPressed, Dash: dash})
	}
	if f.DirectionalDash {
		events = append(events, InputEvent{Kind: InputDashPressed, Dash: movement.DashDirectional})
	}
	return events
}
