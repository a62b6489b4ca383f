package system

import (
	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/timer"
)

// TimerSystem advances the shared timer queue by one tick, firing due ability
// timers before input is dispatched.
type TimerSystem struct {
	queue *timer.Queue
}

func NewTimerSystem(queue *timer.Queue) *TimerSystem {
	return &TimerSystem{queue: queue}
}

func (s *TimerSystem) Update(w *ecs.World) {
	dt, ok := tickDT(w)
	if !ok || s.queue == nil {
		return
	}
	s.queue.Advance(dt)
}
