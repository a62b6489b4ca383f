// Package sim assembles the ECS world, the physics space, the timer queue and
// the system pipeline for one player in one level. The windowed game and the
// headless simulator both run on it.
package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/ecs/component"
	"github.com/milk9111/ghostrun/ecs/entity"
	"github.com/milk9111/ghostrun/ecs/system"
	"github.com/milk9111/ghostrun/locomotion"
	"github.com/milk9111/ghostrun/mathx"
	"github.com/milk9111/ghostrun/movement"
	"github.com/milk9111/ghostrun/prefabs"
	"github.com/milk9111/ghostrun/script"
	"github.com/milk9111/ghostrun/timer"
)

const DefaultDT = 1.0 / 60.0

var ErrNoPlayer = errors.New("sim: player entity is gone")

type Options struct {
	Player prefabs.PlayerSpec
	Level  prefabs.LevelSpec
	DT     float64
	Input  system.InputSource
	Logger *slog.Logger
}

// World owns level loading, the system pipeline and the player entity.
type World struct {
	ECS       *ecs.World
	Physics   *locomotion.World
	Timers    *timer.Queue
	Scheduler *ecs.Scheduler

	input  *system.InputSystem
	player ecs.Entity
	bounds ecs.Entity
	spec   prefabs.PlayerSpec
	log    *slog.Logger
}

// NewWorld loads the level, spawns the player and registers the systems in
// tick order.
func NewWorld(opts Options) (*World, error) {
	if opts.DT <= 0 || !mathx.Finite(opts.DT) {
		opts.DT = DefaultDT
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	spec := opts.Player
	if opts.Level.Spawn != nil {
		spec.Spawn = *opts.Level.Spawn
	}

	w := &World{
		ECS:     ecs.NewWorld(),
		Physics: locomotion.NewWorld(spec.Locomotion.Gravity),
		Timers:  timer.NewQueue(),
		spec:    spec,
		log:     opts.Logger,
	}

	if _, err := system.NewClock(w.ECS, opts.DT); err != nil {
		return nil, fmt.Errorf("sim: clock: %w", err)
	}

	bounds, err := entity.LoadLevelToWorld(w.ECS, w.Physics, opts.Level)
	if err != nil {
		return nil, fmt.Errorf("sim: load level: %w", err)
	}
	w.bounds = bounds

	player, err := entity.NewPlayer(w.ECS, w.Physics, w.Timers, spec, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("sim: spawn player: %w", err)
	}
	w.player = player

	w.input = system.NewInputSystem(opts.Input)
	w.Scheduler = ecs.NewScheduler(
		system.NewClockSystem(),
		system.NewTuningSystem(opts.Logger),
		w.input,
		system.NewTimerSystem(w.Timers),
		system.NewMovementSystem(opts.Logger),
		system.NewPhysicsSystem(w.Physics),
		system.NewRespawnSystem(opts.Logger),
	)

	opts.Logger.Info("level loaded", "level", opts.Level.Name, "solids", len(opts.Level.Solids), "player", spec.Name)
	return w, nil
}

// Step runs one fixed tick.
func (w *World) Step() {
	w.Scheduler.Update(w.ECS)
}

func (w *World) SetInput(source system.InputSource) {
	w.input.SetSource(source)
}

func (w *World) Player() ecs.Entity { return w.player }

func (w *World) PlayerSpec() prefabs.PlayerSpec { return w.spec }

// DashVariant is the variant bound to the player's dash button.
func (w *World) DashVariant() movement.DashVariant {
	v, _ := movement.ParseDashVariant(w.spec.DashVariant)
	return v
}

func (w *World) Clock() component.Clock {
	e, ok := ecs.First(w.ECS, component.ClockComponent.Kind())
	if !ok {
		return component.Clock{}
	}
	clock, _ := ecs.Get(w.ECS, e, component.ClockComponent.Kind())
	return *clock
}

func (w *World) Bounds() component.LevelBounds {
	bounds, ok := ecs.Get(w.ECS, w.bounds, component.LevelBoundsComponent.Kind())
	if !ok {
		return component.LevelBounds{}
	}
	return *bounds
}

func (w *World) Controller() *movement.Controller {
	abilities, ok := ecs.Get(w.ECS, w.player, component.AbilitiesComponent.Kind())
	if !ok {
		return nil
	}
	return abilities.Controller
}

func (w *World) Character() *locomotion.Character {
	body, ok := ecs.Get(w.ECS, w.player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil
	}
	return body.Character
}

// ReloadTuning queues a tuning swap; TuningSystem applies it on the next tick.
func (w *World) ReloadTuning(t movement.Tuning) error {
	if !ecs.IsAlive(w.ECS, w.player) {
		return ErrNoPlayer
	}
	if t.Validate() == nil {
		w.spec.Tuning = prefabs.TuningSpecFrom(t)
	}
	return ecs.Add(w.ECS, w.player, component.TuningReloadComponent.Kind(), &component.TuningReload{Tuning: t})
}

// Respawn queues a respawn of the player at its spawn point.
func (w *World) Respawn() error {
	if !ecs.IsAlive(w.ECS, w.player) {
		return ErrNoPlayer
	}
	return ecs.Add(w.ECS, w.player, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
}

// State is the observable player state handed to input scripts.
func (w *World) State() script.State {
	ctrl := w.Controller()
	character := w.Character()
	if ctrl == nil || character == nil {
		return script.State{}
	}
	contact := ctrl.Contact()
	abilities := ctrl.Abilities()
	return script.State{
		Grounded:      contact.Grounded,
		WallSliding:   contact.WallSliding,
		Dashing:       abilities.IsDashing(),
		DashReady:     abilities.DashReady(),
		WallJumpArmed: abilities.CanWallJump(),
		Position:      character.Position(),
		Velocity:      character.Velocity(),
		Yaw:           character.Yaw(),
	}
}
