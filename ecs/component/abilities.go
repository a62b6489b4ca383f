package component

import "github.com/milk9111/ghostrun/movement"

// Abilities hosts the movement ability controller driving a character.
type Abilities struct {
	Controller *movement.Controller
}

var AbilitiesComponent = NewComponent[Abilities]()
