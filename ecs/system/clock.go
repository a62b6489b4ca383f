package system

import (
	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/ecs/component"
)

// ClockSystem advances the clock singleton. It must run first so every other
// system sees the tick it is processing.
type ClockSystem struct{}

func NewClockSystem() *ClockSystem {
	return &ClockSystem{}
}

func (s *ClockSystem) Update(w *ecs.World) {
	clock, ok := clockOf(w)
	if !ok {
		return
	}
	clock.Tick++
	clock.Elapsed += clock.DT
}

// NewClock creates the clock singleton with a fixed tick length.
func NewClock(w *ecs.World, dt float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ClockComponent.Kind(), &component.Clock{DT: dt}); err != nil {
		return 0, err
	}
	return e, nil
}

func clockOf(w *ecs.World) (*component.Clock, bool) {
	e, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.ClockComponent.Kind())
}

// tickDT returns the fixed tick length, or false when there is no usable clock.
func tickDT(w *ecs.World) (float64, bool) {
	clock, ok := clockOf(w)
	if !ok || clock.DT <= 0 {
		return 0, false
	}
	return clock.DT, true
}
