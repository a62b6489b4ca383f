// Package locomotion simulates characters on a chipmunk space laid out in the
// lateral/up plane. Vec3 Y maps to the space's X axis and Vec3 Z to its Y
// axis; the depth axis is not simulated.
package locomotion

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ghostrun/mathx"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
)

const DefaultGravity = 980.0

var ErrNilWorld = errors.New("nil locomotion world")

// Solid is a static axis-aligned box. X and Y are the lower-left corner.
type Solid struct {
	Name string
	X    float64
	Y    float64
	W    float64
	H    float64
}

type World struct {
	space         *cp.Space
	gravity       float64
	handlersReady bool

	characters   []*Character
	groundShapes map[*cp.Shape]*Character
	solids       map[*cp.Shape]Solid
	nextGroup    uint
}

func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})

	w := &World{
		space:        space,
		gravity:      gravity,
		groundShapes: make(map[*cp.Shape]*Character),
		solids:       make(map[*cp.Shape]Solid),
		nextGroup:    1,
	}
	w.ensureHandlers()
	return w
}

func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) Gravity() float64 {
	if w == nil {
		return 0
	}
	return w.gravity
}

func (w *World) SetGravity(gravity float64) {
	if w == nil || w.space == nil {
		return
	}
	w.gravity = gravity
	w.space.SetGravity(cp.Vector{X: 0, Y: -gravity})
}

func (w *World) AddSolid(s Solid) error {
	if w == nil || w.space == nil {
		return ErrNilWorld
	}
	if s.W <= 0 || s.H <= 0 || !mathx.Finite(s.X) || !mathx.Finite(s.Y) || !mathx.Finite(s.W) || !mathx.Finite(s.H) {
		return fmt.Errorf("locomotion: solid %q has invalid extents %vx%v", s.Name, s.W, s.H)
	}

	bb := cp.BB{L: s.X, B: s.Y, R: s.X + s.W, T: s.Y + s.H}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.UserData = s.Name
	w.space.AddShape(shape)
	w.solids[shape] = s
	return nil
}

// AddBounds walls in the sides and ceiling of [0,width]x[0,height]. The
// bottom stays open so characters can fall out of the level.
func (w *World) AddBounds(width, height float64) error {
	if w == nil || w.space == nil {
		return ErrNilWorld
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("locomotion: bounds must be positive, got %vx%v", width, height)
	}

	thickness := 1.0
	segments := []struct {
		name string
		a    cp.Vector
		b    cp.Vector
	}{
		{name: "bounds_top", a: cp.Vector{X: 0, Y: height}, b: cp.Vector{X: width, Y: height}},
		{name: "bounds_left", a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},
		{name: "bounds_right", a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.UserData = seg.name
		w.space.AddShape(shape)
	}
	return nil
}

func (w *World) Solids() []Solid {
	if w == nil {
		return nil
	}
	out := make([]Solid, 0, len(w.solids))
	for _, s := range w.solids {
		out = append(out, s)
	}
	return out
}

// Step advances every character's walking model and then the space.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 || !mathx.Finite(dt) {
		return
	}

	for _, c := range w.characters {
		c.preStep(dt)
	}
	for _, c := range w.characters {
		c.touchingGround = false
	}

	w.space.Step(dt)

	for _, c := range w.characters {
		c.postStep()
	}
}

func (w *World) ensureHandlers() {
	if w.handlersReady || w.space == nil {
		return
	}

	groundHandler := w.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = w
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		ch, okA := world.groundShapes[shapeA]
		if !okA {
			var okB bool
			ch, okB = world.groundShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// The normal points from the sensor into the ground, so a floor
		// below the feet has a downward normal.
		if n.Y >= -0.5 {
			return true
		}
		ch.touchingGround = true
		return true
	}

	w.handlersReady = true
}

func (w *World) removeCharacter(c *Character) {
	for i, other := range w.characters {
		if other == c {
			w.characters = append(w.characters[:i], w.characters[i+1:]...)
			break
		}
	}
	delete(w.groundShapes, c.ground)
	w.space.RemoveShape(c.ground)
	w.space.RemoveShape(c.shape)
	w.space.RemoveBody(c.body)
}
