package entity

import (
	"fmt"

	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/ecs/component"
	"github.com/milk9111/ghostrun/locomotion"
	"github.com/milk9111/ghostrun/prefabs"
)

// LoadLevelToWorld adds the level's solids and bounds to the physics world
// and mirrors them as entities. It returns the LevelBounds entity.
func LoadLevelToWorld(world *ecs.World, phys *locomotion.World, lvl prefabs.LevelSpec) (ecs.Entity, error) {
	if err := lvl.Validate(); err != nil {
		return 0, err
	}

	for _, s := range lvl.Solids {
		solid := s.Solid()
		if err := phys.AddSolid(solid); err != nil {
			return 0, fmt.Errorf("level %q: %w", lvl.Name, err)
		}
		e := ecs.CreateEntity(world)
		if err := ecs.Add(world, e, component.SolidComponent.Kind(), &component.Solid{Box: solid}); err != nil {
			return 0, err
		}
	}
	if err := phys.AddBounds(lvl.Width, lvl.Height); err != nil {
		return 0, fmt.Errorf("level %q: %w", lvl.Name, err)
	}

	boundsEntity := ecs.CreateEntity(world)
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  lvl.Width,
		Height: lvl.Height,
		KillZ:  lvl.KillZ,
	}); err != nil {
		return 0, err
	}
	return boundsEntity, nil
}
