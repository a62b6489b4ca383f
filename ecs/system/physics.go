package system

import (
	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/ecs/component"
	"github.com/milk9111/ghostrun/locomotion"
)

// PhysicsSystem steps the chipmunk world and copies body poses into
// transforms.
type PhysicsSystem struct {
	world *locomotion.World
}

func NewPhysicsSystem(world *locomotion.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil {
		return
	}
	dt, ok := tickDT(w)
	if !ok {
		return
	}

	ps.world.Step(dt)
	syncTransforms(w)
}

func syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
		if body.Character == nil {
			return
		}
		transform.Position = body.Character.Position()
		transform.Yaw = body.Character.Yaw()
	})
}
