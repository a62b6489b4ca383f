package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ghostrun/sim"
)

// camera maps the Y-up physics plane onto the screen.
type camera struct {
	centerX, centerY float64
	zoom             float64
	screenW, screenH float64
}

func (c camera) toScreen(v cp.Vector) (float64, float64) {
	x := (v.X-c.centerX)*c.zoom + c.screenW/2
	y := c.screenH/2 - (v.Y-c.centerY)*c.zoom
	return x, y
}

// follow eases the camera toward target and keeps it inside the level.
func (c *camera) follow(target cp.Vector, levelW, levelH float64) {
	c.centerX += (target.X - c.centerX) * 0.15
	c.centerY += (target.Y - c.centerY) * 0.15

	halfW := c.screenW / 2 / c.zoom
	halfH := c.screenH / 2 / c.zoom
	if levelW > 2*halfW {
		c.centerX = math.Max(halfW, math.Min(levelW-halfW, c.centerX))
	}
	if levelH > 2*halfH {
		c.centerY = math.Max(halfH, math.Min(levelH-halfH, c.centerY))
	}
}

func drawSpace(screen *ebiten.Image, space *cp.Space, cam camera) {
	if space == nil || screen == nil {
		return
	}
	cp.DrawSpace(space, &chipmunkDrawer{screen: screen, cam: cam})
}

type chipmunkDrawer struct {
	screen *ebiten.Image
	cam    camera
}

func (d *chipmunkDrawer) line(a, b cp.Vector, c color.Color) {
	ax, ay := d.cam.toScreen(a)
	bx, by := d.cam.toScreen(b)
	ebitenutil.DrawLine(d.screen, ax, ay, bx, by, c)
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	steps := 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
	d.line(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, c)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(fill)
	l := size / 2 / d.cam.zoom
	d.line(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	d.line(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if shape.Sensor() {
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	}
	if shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(math.Max(0, math.Min(1, float64(v))) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// drawProbes draws the floor and wall probe rays from the character center.
func drawProbes(screen *ebiten.Image, world *sim.World, cam camera) {
	ctrl, ch := world.Controller(), world.Character()
	if ctrl == nil || ch == nil {
		return
	}
	t := ctrl.Tuning()
	pos := ch.Position()
	origin := cp.Vector{X: pos.Y, Y: pos.Z}
	facing := 1.0
	if math.Sin(ch.Yaw()*math.Pi/180) < 0 {
		facing = -1
	}

	d := &chipmunkDrawer{screen: screen, cam: cam}
	contact := ctrl.Contact()
	floorColor := color.RGBA{R: 120, G: 120, B: 120, A: 255}
	if contact.Grounded {
		floorColor = color.RGBA{R: 80, G: 255, B: 80, A: 255}
	}
	wallColor := color.RGBA{R: 120, G: 120, B: 120, A: 255}
	if contact.WallSliding {
		wallColor = color.RGBA{R: 255, G: 160, B: 40, A: 255}
	}
	d.line(origin, cp.Vector{X: origin.X, Y: origin.Y - t.MaxFloorDistance}, floorColor)
	d.line(origin, cp.Vector{X: origin.X + facing*t.MaxWallClingDistance, Y: origin.Y}, wallColor)
}

func debugText(world *sim.World, fps float64) string {
	var b strings.Builder
	clock := world.Clock()
	fmt.Fprintf(&b, "tick %d  t=%.2fs  fps %.0f\n", clock.Tick, clock.Elapsed, fps)

	st := world.State()
	fmt.Fprintf(&b, "pos y=%.0f z=%.0f  vel y=%.0f z=%.0f  yaw=%.0f\n", st.Position.Y, st.Position.Z, st.Velocity.Y, st.Velocity.Z, st.Yaw)

	if ctrl := world.Controller(); ctrl != nil {
		a := ctrl.Abilities()
		fmt.Fprintf(&b, "grounded=%t wall_slide=%t\n", st.Grounded, st.WallSliding)
		fmt.Fprintf(&b, "dash=%s grounded_since_dash=%t wall_jump=%s\n", a.Dash.Status(), a.GroundedSinceLastDash(), a.WallJump)
	}
	if ch := world.Character(); ch != nil {
		fmt.Fprintf(&b, "gravity_scale=%.1f friction=%.1f airborne=%t\n", ch.GravityScale(), ch.FrictionScale(), ch.IsAirborne())
	}
	b.WriteString("move A/D  jump Space  dash Shift  directional dash Ctrl  respawn R  overlay F3")
	return b.String()
}
