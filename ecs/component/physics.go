package component

import "github.com/milk9111/ghostrun/locomotion"

// PhysicsBody links an entity to its simulated character body.
type PhysicsBody struct {
	Character *locomotion.Character
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Solid marks a static level box.
type Solid struct {
	Box locomotion.Solid
}

var SolidComponent = NewComponent[Solid]()
