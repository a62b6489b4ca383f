package locomotion

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ghostrun/mathx"
	"github.com/milk9111/ghostrun/movement"
)

// Character is a box body driven by a walking model. It implements
// movement.Locomotion; its terrain probe never reports its own shapes.
type Character struct {
	world  *World
	cfg    Config
	body   *cp.Body
	shape  *cp.Shape
	ground *cp.Shape
	filter cp.ShapeFilter

	yaw          float64
	friction     float64
	gravityScale float64
	pendingInput float64

	touchingGround bool
	grounded       bool
	jumpHeld       bool
	jumpHoldLeft   float64
}

var _ movement.Locomotion = (*Character)(nil)

// SpawnCharacter adds a character centered at pos (only Y and Z are used).
func (w *World) SpawnCharacter(cfg Config, pos mathx.Vec3, yaw float64) (*Character, error) {
	if w == nil || w.space == nil {
		return nil, ErrNilWorld
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Character{
		world:        w,
		cfg:          cfg,
		yaw:          mathx.NormalizeYaw(yaw),
		friction:     1,
		gravityScale: 1,
		filter:       cp.NewShapeFilter(w.nextGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES),
	}
	w.nextGroup++

	body := cp.NewBody(cfg.Mass, cp.INFINITY)
	body.SetPosition(toPlane(pos))
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(c.gravityScale), damping, dt)
	})

	shape := cp.NewBox(body, cfg.Width, cfg.Height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypePlayer)
	shape.SetFilter(c.filter)

	w.space.AddBody(body)
	w.space.AddShape(shape)

	c.body = body
	c.shape = shape
	c.ground = c.createGroundSensor()
	w.space.AddShape(c.ground)
	w.groundShapes[c.ground] = c
	w.characters = append(w.characters, c)
	return c, nil
}

func (c *Character) createGroundSensor() *cp.Shape {
	groundBB := cp.BB{
		L: -c.cfg.Width * 0.45,
		B: -c.cfg.Height/2.0 - 2,
		R: c.cfg.Width * 0.45,
		T: -c.cfg.Height / 2.0,
	}

	groundShape := cp.NewBox2(c.body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	groundShape.SetFilter(c.filter)
	return groundShape
}

// Remove takes the character out of its world.
func (c *Character) Remove() {
	if c == nil || c.world == nil {
		return
	}
	c.world.removeCharacter(c)
	c.world = nil
}

func (c *Character) Config() Config { return c.cfg }

func (c *Character) Body() *cp.Body { return c.body }

// Teleport moves the character and zeroes its velocity.
func (c *Character) Teleport(pos mathx.Vec3, yaw float64) {
	c.body.SetPosition(toPlane(pos))
	c.body.SetVelocityVector(cp.Vector{})
	c.yaw = mathx.NormalizeYaw(yaw)
	c.pendingInput = 0
	c.jumpHeld = false
	c.jumpHoldLeft = 0
	c.grounded = false
}

func (c *Character) CastRay(origin, dir mathx.Vec3, maxDistance float64) movement.HitResult {
	if c == nil || c.world == nil || !origin.Finite() || !dir.Finite() || !mathx.Finite(maxDistance) || maxDistance <= 0 {
		return movement.HitResult{}
	}
	planar := toPlane(dir.Normalize())
	if planar.Length() < mathx.Small {
		return movement.HitResult{}
	}

	start := toPlane(origin)
	end := start.Add(planar.Mult(maxDistance))
	info := c.world.space.SegmentQueryFirst(start, end, 0, c.filter)
	if info.Shape == nil {
		return movement.HitResult{}
	}
	return movement.HitResult{
		Blocked:      true,
		ActorValid:   info.Shape.UserData != nil,
		ImpactNormal: fromPlane(info.Normal),
	}
}

func (c *Character) Position() mathx.Vec3 { return fromPlane(c.body.Position()) }

func (c *Character) Velocity() mathx.Vec3 { return fromPlane(c.body.Velocity()) }

func (c *Character) SetVelocity(v mathx.Vec3) {
	if !v.Finite() {
		return
	}
	c.body.SetVelocityVector(toPlane(v))
}

func (c *Character) Launch(v mathx.Vec3, overrideXY, overrideZ bool) {
	if !v.Finite() {
		return
	}
	cur := c.body.Velocity()
	next := toPlane(v)
	if !overrideXY {
		next.X += cur.X
	}
	if !overrideZ {
		next.Y += cur.Y
	}
	c.body.SetVelocityVector(next)
	c.grounded = false
}

func (c *Character) Yaw() float64 { return c.yaw }

func (c *Character) SetYaw(deg float64) {
	if !mathx.Finite(deg) {
		return
	}
	c.yaw = mathx.NormalizeYaw(deg)
}

func (c *Character) FrictionScale() float64 { return c.friction }

func (c *Character) SetFrictionScale(f float64) {
	if !mathx.Finite(f) || f < 0 {
		return
	}
	c.friction = f
}

func (c *Character) GravityScale() float64 { return c.gravityScale }

func (c *Character) SetGravityScale(g float64) {
	if !mathx.Finite(g) {
		return
	}
	c.gravityScale = g
}

func (c *Character) IsAirborne() bool { return !c.grounded }

func (c *Character) Jump() {
	if !c.grounded || c.jumpHeld {
		return
	}
	v := c.body.Velocity()
	v.Y = c.cfg.JumpZVelocity
	c.body.SetVelocityVector(v)
	c.grounded = false
	c.jumpHeld = true
	c.jumpHoldLeft = c.cfg.JumpMaxHoldTime
}

func (c *Character) StopJumping() {
	c.jumpHeld = false
	c.jumpHoldLeft = 0
}

// AddMovementInput accumulates lateral input until the next step.
func (c *Character) AddMovementInput(dir mathx.Vec3, scale float64) {
	if !dir.Finite() || !mathx.Finite(scale) {
		return
	}
	c.pendingInput += dir.Y * scale
}

func (c *Character) preStep(dt float64) {
	input := mathx.Clamp(c.pendingInput, -1, 1)
	c.pendingInput = 0

	v := c.body.Velocity()
	v.X = c.walk(v.X, input, dt)
	if c.jumpHeld && c.jumpHoldLeft > 0 {
		v.Y = math.Max(v.Y, c.cfg.JumpZVelocity)
		c.jumpHoldLeft -= dt
	}
	c.body.SetVelocityVector(v)

	if input != 0 && c.cfg.OrientToMovement {
		target := 90.0
		if input < 0 {
			target = -90
		}
		c.yaw = mathx.ApproachYaw(c.yaw, target, c.cfg.RotationRate*dt)
	}
}

// walk returns the next lateral speed. Braking is scaled by the friction knob,
// so a zero friction scale keeps momentum.
func (c *Character) walk(vx, input, dt float64) float64 {
	accel := c.cfg.MaxAcceleration
	brake := c.cfg.BrakingDecelerationWalking * c.friction
	if !c.grounded {
		accel *= c.cfg.AirControl
		brake = c.cfg.BrakingDecelerationFalling * c.friction
	}

	switch {
	case input == 0:
		return mathx.Approach(vx, 0, brake*dt)
	case math.Abs(vx) > c.cfg.MaxWalkSpeed && mathx.Sign(vx) == mathx.Sign(input):
		return mathx.Approach(vx, input*c.cfg.MaxWalkSpeed, brake*dt)
	default:
		return mathx.Approach(vx, input*c.cfg.MaxWalkSpeed, accel*dt)
	}
}

func (c *Character) postStep() {
	c.grounded = c.touchingGround
	if c.grounded {
		v := c.body.Velocity()
		if v.Y <= 0 {
			c.jumpHeld = false
		}
	}
}

func toPlane(v mathx.Vec3) cp.Vector { return cp.Vector{X: v.Y, Y: v.Z} }

func fromPlane(v cp.Vector) mathx.Vec3 { return mathx.Vec3{Y: v.X, Z: v.Y} }
