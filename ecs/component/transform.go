package component

import "github.com/milk9111/ghostrun/mathx"

// Transform is the rendered pose of an entity, copied from its body after
// every physics step.
type Transform struct {
	Position mathx.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()
