package system

import (
	"log/slog"

	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/ecs/component"
)

const EventRespawned = "respawned"

// RespawnSystem flags players that fell below the level's kill plane and
// performs pending respawn requests. It runs after PhysicsSystem so it sees
// this tick's positions.
type RespawnSystem struct {
	log *slog.Logger
}

func NewRespawnSystem(log *slog.Logger) *RespawnSystem {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &RespawnSystem{log: log}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
		ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, body *component.PhysicsBody) {
			if body.Character == nil || body.Character.Position().Z >= bounds.KillZ {
				return
			}
			s.request(w, e)
		})
	}

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		defer ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		spawn, ok := ecs.Get(w, e, component.SpawnPointComponent.Kind())
		if !ok {
			return
		}
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Character != nil {
			body.Character.Teleport(spawn.Position, spawn.Yaw)
		}
		if abilities, ok := ecs.Get(w, e, component.AbilitiesComponent.Kind()); ok && abilities.Controller != nil {
			abilities.Controller.Reset()
		}
		if queue, ok := ecs.Get(w, e, component.InputQueueComponent.Kind()); ok {
			queue.Events = queue.Events[:0]
		}
		if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			transform.Position = spawn.Position
			transform.Yaw = spawn.Yaw
		}

		w.Events().Push(ecs.Event{Type: EventRespawned, Entity: e})
		s.log.Info("player respawned", "entity", e.String(), "z", spawn.Position.Z)
	})
}

func (s *RespawnSystem) request(w *ecs.World, e ecs.Entity) {
	if err := ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{}); err != nil {
		s.log.Debug("respawn request dropped", "entity", e.String(), "err", err)
	}
}
