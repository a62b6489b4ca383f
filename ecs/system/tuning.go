package system

import (
	"log/slog"

	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/ecs/component"
)

const EventTuningApplied = "tuning_applied"

// TuningSystem applies pending tuning reloads. Invalid tunings are logged and
// dropped; the controller keeps its current values.
type TuningSystem struct {
	log *slog.Logger
}

func NewTuningSystem(log *slog.Logger) *TuningSystem {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &TuningSystem{log: log}
}

func (s *TuningSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.TuningReloadComponent.Kind(), component.AbilitiesComponent.Kind(), func(e ecs.Entity, reload *component.TuningReload, abilities *component.Abilities) {
		defer ecs.Remove(w, e, component.TuningReloadComponent.Kind())
		if abilities.Controller == nil {
			return
		}
		if err := abilities.Controller.SetTuning(reload.Tuning); err != nil {
			s.log.Warn("tuning reload rejected", "entity", e.String(), "err", err)
			return
		}
		w.Events().Push(ecs.Event{Type: EventTuningApplied, Entity: e})
		s.log.Info("tuning reloaded", "entity", e.String())
	})
}
