package mathx

import "math"

// Vec2 is a 2-D input axis pair: X is lateral, Y is forward.
type Vec2 struct {
	X float64
	Y float64
}

// Vec3 uses X as depth (forward into the screen), Y as lateral and Z as up.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

var (
	Up    = Vec3{Z: 1}
	Right = Vec3{Y: 1}
)

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector, or the zero vector when v is too short.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < Small || !Finite(l) {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func (v Vec3) IsZero() bool { return v.Length() < Small }

func (v Vec3) Finite() bool { return Finite(v.X) && Finite(v.Y) && Finite(v.Z) }

// Yaw returns the heading of v in the horizontal plane, in degrees.
func (v Vec3) Yaw() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// ForwardFromYaw returns the horizontal unit vector for a heading in degrees.
func ForwardFromYaw(deg float64) Vec3 {
	rad := deg * math.Pi / 180
	return Vec3{X: math.Cos(rad), Y: math.Sin(rad)}
}

// InterpConstantTo steps current toward target at a constant rate of
// speed units per second and never overshoots.
func InterpConstantTo(current, target Vec3, dt, speed float64) Vec3 {
	delta := target.Sub(current)
	dist := delta.Length()
	maxStep := speed * dt
	if dist > maxStep {
		if maxStep > 0 {
			return current.Add(delta.Scale(maxStep / dist))
		}
		return current
	}
	return target
}
