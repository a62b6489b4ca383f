package movement

import "github.com/milk9111/ghostrun/mathx"

type launch struct {
	v          mathx.Vec3
	overrideXY bool
	overrideZ  bool
}

// fakeEngine answers floor probes (pointing down) and wall probes (pointing
// horizontally) from flags instead of real geometry.
type fakeEngine struct {
	pos      mathx.Vec3
	vel      mathx.Vec3
	yaw      float64
	friction float64
	gravity  float64
	airborne bool

	floor      bool
	wall       bool
	wallNormal mathx.Vec3
	invalidHit bool

	jumps     int
	stopJumps int
	launches  []launch
	inputs    []float64
	rays      int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{yaw: 90, floor: true, friction: -1, gravity: -1}
}

func (f *fakeEngine) CastRay(origin, dir mathx.Vec3, maxDistance float64) HitResult {
	f.rays++
	switch {
	case dir.Z < 0 && f.floor:
		return HitResult{Blocked: true, ActorValid: !f.invalidHit, ImpactNormal: mathx.Up}
	case dir.Z == 0 && f.wall:
		return HitResult{Blocked: true, ActorValid: !f.invalidHit, ImpactNormal: f.wallNormal}
	}
	return HitResult{}
}

func (f *fakeEngine) Position() mathx.Vec3 { return f.pos }
func (f *fakeEngine) Velocity() mathx.Vec3 { return f.vel }
func (f *fakeEngine) SetVelocity(v mathx.Vec3) { f.vel = v }

func (f *fakeEngine) Launch(v mathx.Vec3, overrideXY, overrideZ bool) {
	f.launches = append(f.launches, launch{v: v, overrideXY: overrideXY, overrideZ: overrideZ})
	if overrideXY {
		f.vel.X, f.vel.Y = v.X, v.Y
	} else {
		f.vel.X += v.X
		f.vel.Y += v.Y
	}
	if overrideZ {
		f.vel.Z = v.Z
	} else {
		f.vel.Z += v.Z
	}
}

func (f *fakeEngine) Yaw() float64 { return f.yaw }
func (f *fakeEngine) SetYaw(deg float64) { f.yaw = deg }
func (f *fakeEngine) FrictionScale() float64 { return f.friction }
func (f *fakeEngine) SetFrictionScale(s float64) { f.friction = s }
func (f *fakeEngine) GravityScale() float64 { return f.gravity }
func (f *fakeEngine) SetGravityScale(s float64) { f.gravity = s }
func (f *fakeEngine) IsAirborne() bool { return f.airborne }
func (f *fakeEngine) Jump() { f.jumps++ }
func (f *fakeEngine) StopJumping() { f.stopJumps++ }
func (f *fakeEngine) AddMovementInput(dir mathx.Vec3, scale float64) {
	f.inputs = append(f.inputs, dir.Y*scale)
}

// takeOff puts the character in the air with nothing around it.
func (f *fakeEngine) takeOff() {
	f.floor = false
	f.airborne = true
}

// land puts the character back on the floor.
func (f *fakeEngine) land() {
	f.floor = true
	f.airborne = false
	f.wall = false
}
