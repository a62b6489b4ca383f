package system

import (
	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/ecs/component"
)

// InputSource produces the input events of one tick. The keyboard layer and
// scripted drivers both implement it.
type InputSource interface {
	Poll(tick uint64) []component.InputEvent
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

// SetSource swaps the input source, e.g. when a script is reloaded.
func (s *InputSystem) SetSource(source InputSource) {
	s.source = source
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil || s.source == nil {
		return
	}

	var tick uint64
	if clock, ok := clockOf(w); ok {
		tick = clock.Tick
	}
	events := s.source.Poll(tick)
	if len(events) == 0 {
		return
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.InputQueueComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, queue *component.InputQueue) {
		queue.Events = append(queue.Events, events...)
	})
}
