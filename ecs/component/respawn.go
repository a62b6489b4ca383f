package component

import "github.com/milk9111/ghostrun/mathx"

// SpawnPoint is where a character respawns.
type SpawnPoint struct {
	Position mathx.Vec3
	Yaw      float64
}

var SpawnPointComponent = NewComponent[SpawnPoint]()

// RespawnRequest is a marker component asking RespawnSystem to put the
// entity back on its spawn point and reset its abilities.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
