// Package movement decides, every tick, how ground and wall contact combine
// with jump and dash input into velocity changes for a platforming character.
package movement

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/milk9111/ghostrun/mathx"
	"github.com/milk9111/ghostrun/timer"
)

var (
	ErrNilEngine     = errors.New("movement: locomotion engine is nil")
	ErrNilScheduler  = errors.New("movement: scheduler is nil")
	ErrInvalidTuning = errors.New("movement: invalid tuning")
)

// DashVariant selects how the dash direction is derived.
type DashVariant uint8

const (
	DashStationary DashVariant = iota
	DashDirectional
)

func (v DashVariant) String() string {
	switch v {
	case DashStationary:
		return "stationary"
	case DashDirectional:
		return "directional"
	}
	return fmt.Sprintf("DashVariant(%d)", uint8(v))
}

// ParseDashVariant accepts the names produced by String.
func ParseDashVariant(s string) (DashVariant, bool) {
	switch s {
	case "stationary":
		return DashStationary, true
	case "directional":
		return DashDirectional, true
	}
	return 0, false
}

// Controller is the movement ability controller of one character. It is not
// safe for concurrent use; all calls and timer callbacks must come from the
// simulation loop.
type Controller struct {
	engine     Locomotion
	sched      Scheduler
	tuning     Tuning
	log        *slog.Logger
	classifier Classifier

	abilities Abilities
	contact   Contact
	move      mathx.Vec2

	dashWindow   *timer.Handle
	dashCooldown *timer.Handle
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func NewController(engine Locomotion, sched Scheduler, tuning Tuning, opts ...Option) (*Controller, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if sched == nil {
		return nil, ErrNilScheduler
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		engine:     engine,
		sched:      sched,
		tuning:     tuning,
		log:        slog.New(slog.DiscardHandler),
		classifier: Classifier{engine: engine},
		abilities:  SpawnAbilities(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.restoreEngineDefaults()
	return c, nil
}

func (c *Controller) Tuning() Tuning { return c.tuning }
func (c *Controller) Abilities() Abilities { return c.abilities }
func (c *Controller) MoveInput() mathx.Vec2 { return c.move }

// Contact returns the classification from the last tick.
func (c *Controller) Contact() Contact { return c.contact }

// SetTuning swaps the tuning in place. Running timers keep the lengths they
// were armed with.
func (c *Controller) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.tuning = t
	if !c.abilities.IsDashing() {
		c.restoreEngineDefaults()
	}
	c.log.Debug("tuning updated", "dash_speed", t.DashSpeed, "dash_delay", t.DashDelay, "dash_duration", t.DashDuration)
	return nil
}

// Tick classifies terrain contact, re-arms the floor latches on landing and
// applies the wall-slide effect.
func (c *Controller) Tick(dt float64) {
	contact := c.classifier.Classify(c.tuning)
	if contact.Grounded {
		c.abilities = c.abilities.Land()
	}
	c.classifier.ApplyWallSlide(contact, c.tuning, dt)
	c.contact = contact
}

func (c *Controller) OnMove(v mathx.Vec2) {
	if !mathx.Finite(v.X) || !mathx.Finite(v.Y) {
		return
	}
	c.move = v
	c.engine.AddMovementInput(mathx.Right, v.X)
}

// OnJumpPressed arbitrates wall-jump, springboard and the plain engine jump,
// strictly in that order.
func (c *Controller) OnJumpPressed() {
	contact := c.classifier.Classify(c.tuning)
	switch {
	case contact.WallSliding:
		if !c.abilities.CanWallJump() {
			c.log.Debug("wall jump absorbed", "ability", "wall_jump", "reason", "not grounded since last wall jump")
			return
		}
		c.wallJump()
	case c.abilities.IsDashing() && contact.Grounded:
		c.springboard()
	default:
		c.engine.Jump()
	}
}

func (c *Controller) OnJumpReleased() {
	c.engine.StopJumping()
}

func (c *Controller) OnDashPressed(variant DashVariant) {
	if !c.abilities.Dash.CanStart() {
		c.log.Debug("dash denied", "ability", "dash", "ready", c.abilities.DashReady(), "grounded_since_dash", c.abilities.GroundedSinceLastDash())
		return
	}

	var dir mathx.Vec3
	switch variant {
	case DashStationary:
		dir = StationaryDashDirection(mathx.ForwardFromYaw(c.engine.Yaw()))
	case DashDirectional:
		dir = DirectionalDashDirection(c.move)
	default:
		return
	}

	c.engine.SetFrictionScale(0)
	c.engine.SetGravityScale(0)
	c.engine.Launch(DashVelocity(dir, c.tuning), true, true)
	c.abilities.Dash = c.abilities.Dash.Start()

	// Re-arming replaces a timer that is somehow still pending.
	c.dashWindow.Cancel()
	c.dashCooldown.Cancel()
	c.dashWindow = c.sched.After(c.tuning.DashDuration, c.onDashWindowElapsed)
	c.dashCooldown = c.sched.After(c.tuning.DashDelay, c.onDashCooldownElapsed)

	c.log.Debug("dash started", "ability", "dash", "variant", variant.String(), "dir_y", dir.Y)
}

// Reset returns the controller to its spawn state, e.g. on respawn.
func (c *Controller) Reset() {
	c.dashWindow.Cancel()
	c.dashCooldown.Cancel()
	c.dashWindow = nil
	c.dashCooldown = nil
	c.abilities = SpawnAbilities()
	c.contact = Contact{}
	c.move = mathx.Vec2{}
	c.restoreEngineDefaults()
}

func (c *Controller) wallJump() {
	c.engine.SetYaw(mathx.NormalizeYaw(c.engine.Yaw() + 180))
	forward := mathx.ForwardFromYaw(c.engine.Yaw())
	c.engine.Launch(WallJumpVelocity(forward, c.tuning), true, true)
	c.abilities.WallJump = Disarmed
	c.log.Debug("wall jump", "ability", "wall_jump", "yaw", c.engine.Yaw())
}

func (c *Controller) springboard() {
	c.dashWindow.Cancel()
	c.dashWindow = nil
	c.endDash()
	c.engine.Launch(SpringboardVelocity(c.move, c.tuning), true, true)
	c.log.Debug("springboard jump", "ability", "springboard", "move_x", c.move.X)
}

func (c *Controller) onDashWindowElapsed() {
	c.dashWindow = nil
	c.endDash()
	c.log.Debug("dash ended", "ability", "dash")
}

func (c *Controller) onDashCooldownElapsed() {
	c.dashCooldown = nil
	c.abilities.Dash = c.abilities.Dash.Recharge()
	c.log.Debug("dash recharged", "ability", "dash")
}

func (c *Controller) endDash() {
	c.restoreEngineDefaults()
	c.abilities.Dash = c.abilities.Dash.End()
}

func (c *Controller) restoreEngineDefaults() {
	c.engine.SetFrictionScale(c.tuning.Friction)
	c.engine.SetGravityScale(c.tuning.GravityScale)
}
