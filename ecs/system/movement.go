package system

import (
	"log/slog"

	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/ecs/component"
	"github.com/milk9111/ghostrun/movement"
)

// Event types published by MovementSystem when a character's observable
// state changes.
const (
	EventDashStatus   = "dash_status"
	EventWallSlide    = "wall_slide"
	EventGrounded     = "grounded"
	EventWallJumpLock = "wall_jump_latch"
)

// MovementSystem feeds queued input to each ability controller in arrival
// order and then runs the controller's tick.
type MovementSystem struct {
	log *slog.Logger
}

func NewMovementSystem(log *slog.Logger) *MovementSystem {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &MovementSystem{log: log}
}

func (s *MovementSystem) Update(w *ecs.World) {
	dt, ok := tickDT(w)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.InputQueueComponent.Kind(), component.AbilitiesComponent.Kind(), func(e ecs.Entity, queue *component.InputQueue, abilities *component.Abilities) {
		ctrl := abilities.Controller
		if ctrl == nil {
			queue.Events = queue.Events[:0]
			return
		}

		for _, evt := range queue.Events {
			dispatch(ctrl, evt)
		}
		queue.Events = queue.Events[:0]

		ctrl.Tick(dt)
		s.publishContact(w, e, ctrl)
	})
}

func dispatch(ctrl *movement.Controller, evt component.InputEvent) {
	switch evt.Kind {
	case component.InputMove:
		ctrl.OnMove(evt.Move)
	case component.InputJumpPressed:
		ctrl.OnJumpPressed()
	case component.InputJumpReleased:
		ctrl.OnJumpReleased()
	case component.InputDashPressed:
		ctrl.OnDashPressed(evt.Dash)
	}
}

func (s *MovementSystem) publishContact(w *ecs.World, e ecs.Entity, ctrl *movement.Controller) {
	contact := ctrl.Contact()
	abilities := ctrl.Abilities()
	next := component.ContactState{
		Grounded:    contact.Grounded,
		WallSliding: contact.WallSliding,
		WallNormal:  contact.WallNormal,
		Dash:        abilities.Dash.Status(),
		WallJump:    abilities.WallJump,
	}

	prev, ok := ecs.Get(w, e, component.ContactStateComponent.Kind())
	if !ok {
		if err := ecs.Add(w, e, component.ContactStateComponent.Kind(), &next); err != nil {
			s.log.Debug("contact state not stored", "entity", e.String(), "err", err)
		}
		return
	}

	events := w.Events()
	if prev.Dash != next.Dash {
		events.Push(ecs.Event{Type: EventDashStatus, Entity: e, Data: next.Dash})
	}
	if prev.WallSliding != next.WallSliding {
		events.Push(ecs.Event{Type: EventWallSlide, Entity: e, Data: next.WallSliding})
	}
	if prev.Grounded != next.Grounded {
		events.Push(ecs.Event{Type: EventGrounded, Entity: e, Data: next.Grounded})
	}
	if prev.WallJump != next.WallJump {
		events.Push(ecs.Event{Type: EventWallJumpLock, Entity: e, Data: next.WallJump})
	}
	*prev = next
}
