package component

// LevelBounds stores the world-space bounds of the current level. A character
// whose center falls below KillZ is respawned.
type LevelBounds struct {
	Width  float64
	Height float64
	KillZ  float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
