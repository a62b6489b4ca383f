package movement

import (
	"github.com/milk9111/ghostrun/mathx"
	"github.com/milk9111/ghostrun/timer"
)

// HitResult is the outcome of a terrain probe.
type HitResult struct {
	Blocked      bool
	ActorValid   bool
	ImpactNormal mathx.Vec3
}

// Contact reports a usable blocking hit.
func (h HitResult) Contact() bool {
	return h.Blocked && h.ActorValid
}

// Locomotion is the character movement integrator the controller drives.
// It owns position, gravity and collision response; the controller only
// requests velocity changes. CastRay must ignore the character itself.
type Locomotion interface {
	CastRay(origin, dir mathx.Vec3, maxDistance float64) HitResult

	Position() mathx.Vec3
	Velocity() mathx.Vec3
	SetVelocity(v mathx.Vec3)
	// Launch replaces the horizontal and/or vertical velocity when the
	// matching override flag is set, and adds to it otherwise.
	Launch(v mathx.Vec3, overrideXY, overrideZ bool)

	// Yaw is the facing in degrees.
	Yaw() float64
	SetYaw(deg float64)

	FrictionScale() float64
	SetFrictionScale(scale float64)
	GravityScale() float64
	SetGravityScale(scale float64)

	IsAirborne() bool
	Jump()
	StopJumping()
	AddMovementInput(dir mathx.Vec3, scale float64)
}

// Scheduler arms one-shot callbacks that fire on a later tick of the same
// simulation loop.
type Scheduler interface {
	After(seconds float64, fn func()) *timer.Handle
}
