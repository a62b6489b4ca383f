package component

import "github.com/milk9111/ghostrun/movement"

// TuningReload is a transient request to swap an entity's ability tuning.
// The game loop adds it when the tuning file changes on disk.
type TuningReload struct {
	Tuning movement.Tuning
}

var TuningReloadComponent = NewComponent[TuningReload]()
