package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ghostrun/ecs/component"
	"github.com/milk9111/ghostrun/movement"
)

const stickDeadzone = 0.3

// Input reads the keyboard and the first gamepad. It implements the ECS input
// source; see component.InputFrame for how a tick is reported.
type Input struct {
	// DashVariant is what the dash key does; the alternate dash key always
	// dashes along the held direction.
	DashVariant movement.DashVariant
}

func NewInput(variant movement.DashVariant) *Input {
	return &Input{DashVariant: variant}
}

func (i *Input) Poll(tick uint64) []component.InputEvent {
	return i.frame().Events(i.DashVariant)
}

func (i *Input) frame() component.InputFrame {
	gid, hasPad := firstGamepad()
	padPressed := func(b ebiten.StandardGamepadButton) bool {
		return hasPad && inpututil.IsStandardGamepadButtonJustPressed(gid, b)
	}

	return component.InputFrame{
		MoveX: i.moveAxis(),
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) ||
			padPressed(ebiten.StandardGamepadButtonRightBottom),
		JumpReleased: inpututil.IsKeyJustReleased(ebiten.KeySpace) || inpututil.IsKeyJustReleased(ebiten.KeyW) ||
			(hasPad && inpututil.IsStandardGamepadButtonJustReleased(gid, ebiten.StandardGamepadButtonRightBottom)),
		DashPressed: inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight) ||
			padPressed(ebiten.StandardGamepadButtonFrontTopRight),
		DirectionalDash: inpututil.IsKeyJustPressed(ebiten.KeyControlLeft) ||
			padPressed(ebiten.StandardGamepadButtonFrontBottomRight),
	}
}

func (i *Input) moveAxis() float64 {
	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	if gid, ok := firstGamepad(); ok {
		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -stickDeadzone {
			moveX = -1
		} else if leftX > stickDeadzone {
			moveX = 1
		}
	}
	return moveX
}

func firstGamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}
