package component

import (
	"github.com/milk9111/ghostrun/mathx"
	"github.com/milk9111/ghostrun/movement"
)

// ContactState mirrors the controller's last classification and dash status
// for observers; it is rewritten every tick.
type ContactState struct {
	Grounded    bool
	WallSliding bool
	WallNormal  mathx.Vec3
	Dash        movement.DashStatus
	WallJump    movement.Latch
}

var ContactStateComponent = NewComponent[ContactState]()
