package entity

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/ecs/component"
	"github.com/milk9111/ghostrun/locomotion"
	"github.com/milk9111/ghostrun/movement"
	"github.com/milk9111/ghostrun/prefabs"
)

// NewPlayer spawns the player's character body and ability controller and
// attaches everything the systems need to drive it.
func NewPlayer(w *ecs.World, phys *locomotion.World, sched movement.Scheduler, spec prefabs.PlayerSpec, log *slog.Logger) (ecs.Entity, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	pos := spec.Spawn.Position()
	character, err := phys.SpawnCharacter(spec.Locomotion.Config(), pos, spec.Spawn.Yaw)
	if err != nil {
		return 0, fmt.Errorf("player %q: %w", spec.Name, err)
	}

	e := ecs.CreateEntity(w)
	ctrl, err := movement.NewController(character, sched, spec.Tuning.Tuning(),
		movement.WithLogger(log.With("entity", e.String())))
	if err != nil {
		character.Remove()
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player %q: %w", spec.Name, err)
	}

	if err := addPlayerComponents(w, e, character, ctrl, spec); err != nil {
		character.Remove()
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player %q: %w", spec.Name, err)
	}
	return e, nil
}

func addPlayerComponents(w *ecs.World, e ecs.Entity, character *locomotion.Character, ctrl *movement.Controller, spec prefabs.PlayerSpec) error {
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Character: character}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.AbilitiesComponent.Kind(), &component.Abilities{Controller: ctrl}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.InputQueueComponent.Kind(), &component.InputQueue{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: character.Position(),
		Yaw:      character.Yaw(),
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpawnPointComponent.Kind(), &component.SpawnPoint{
		Position: spec.Spawn.Position(),
		Yaw:      spec.Spawn.Yaw,
	})
}
