package movement

import "github.com/milk9111/ghostrun/mathx"

// Contact is the per-tick terrain classification. At most one of Grounded
// and WallSliding is set; neither means free fall.
type Contact struct {
	Grounded    bool
	WallSliding bool
	WallNormal  mathx.Vec3
}

// Classifier derives Contact from two terrain probes.
type Classifier struct {
	engine Locomotion
}

func (c Classifier) probe(dir mathx.Vec3, distance float64) HitResult {
	if c.engine == nil || !dir.Finite() || dir.IsZero() || !mathx.Finite(distance) || distance <= 0 {
		return HitResult{}
	}
	origin := c.engine.Position()
	if !origin.Finite() {
		return HitResult{}
	}
	return c.engine.CastRay(origin, dir.Normalize(), distance)
}

func (c Classifier) OnGround(t Tuning) bool {
	return c.probe(mathx.Up.Neg(), t.MaxFloorDistance).Contact()
}

// Classify has no side effects.
func (c Classifier) Classify(t Tuning) Contact {
	if c.OnGround(t) {
		return Contact{Grounded: true}
	}
	if !c.engine.IsAirborne() {
		return Contact{}
	}
	forward := mathx.ForwardFromYaw(c.engine.Yaw())
	hit := c.probe(forward, t.MaxWallClingDistance)
	if !hit.Contact() {
		return Contact{}
	}
	return Contact{WallSliding: true, WallNormal: hit.ImpactNormal}
}

// ApplyWallSlide turns the character to face the wall and eases its descent
// toward the wall-slide speed. Rising characters are left alone.
func (c Classifier) ApplyWallSlide(contact Contact, t Tuning, dt float64) {
	if !contact.WallSliding || dt <= 0 {
		return
	}
	v := c.engine.Velocity()
	if v.Z > 0 {
		return
	}
	target := mathx.Vec3{X: v.X, Y: v.Y, Z: t.WallSlideSpeed}
	next := mathx.InterpConstantTo(v, target, dt, t.WallSlideInterpSpeed)
	if !next.Finite() || !contact.WallNormal.Finite() {
		return
	}
	c.engine.SetYaw(mathx.NormalizeYaw(contact.WallNormal.Yaw() + 180))
	c.engine.SetVelocity(next)
}
