package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/ghostrun/locomotion"
	"github.com/milk9111/ghostrun/mathx"
	"github.com/milk9111/ghostrun/movement"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("invalid prefab spec")

// LoadSpec decodes a prefab into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes a prefab over the values already in dst, so keys
// missing from the file keep their defaults.
func LoadSpecInto[T any](filename string, dst *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type TuningSpec struct {
	DashSpeed                float64 `yaml:"dash_speed"`
	DashDelay                float64 `yaml:"dash_delay"`
	DashDuration             float64 `yaml:"dash_duration"`
	MaxFloorDistance         float64 `yaml:"max_floor_distance"`
	MaxWallClingDistance     float64 `yaml:"max_wall_cling_distance"`
	WallSlideSpeed           float64 `yaml:"wall_slide_speed"`
	WallSlideInterpSpeed     float64 `yaml:"wall_slide_interp_speed"`
	WallJumpLateralSpeed     float64 `yaml:"wall_jump_lateral_speed"`
	WallJumpVerticalSpeed    float64 `yaml:"wall_jump_vertical_speed"`
	SpringboardLateralSpeed  float64 `yaml:"springboard_lateral_speed"`
	SpringboardVerticalSpeed float64 `yaml:"springboard_vertical_speed"`
	GravityScale             float64 `yaml:"gravity_scale"`
	Friction                 float64 `yaml:"friction"`
}

func TuningSpecFrom(t movement.Tuning) TuningSpec {
	return TuningSpec{
		DashSpeed:                t.DashSpeed,
		DashDelay:                t.DashDelay,
		DashDuration:             t.DashDuration,
		MaxFloorDistance:         t.MaxFloorDistance,
		MaxWallClingDistance:     t.MaxWallClingDistance,
		WallSlideSpeed:           t.WallSlideSpeed,
		WallSlideInterpSpeed:     t.WallSlideInterpSpeed,
		WallJumpLateralSpeed:     t.WallJumpLateralSpeed,
		WallJumpVerticalSpeed:    t.WallJumpVerticalSpeed,
		SpringboardLateralSpeed:  t.SpringboardLateralSpeed,
		SpringboardVerticalSpeed: t.SpringboardVerticalSpeed,
		GravityScale:             t.GravityScale,
		Friction:                 t.Friction,
	}
}

func (s TuningSpec) Tuning() movement.Tuning {
	return movement.Tuning{
		DashSpeed:                s.DashSpeed,
		DashDelay:                s.DashDelay,
		DashDuration:             s.DashDuration,
		MaxFloorDistance:         s.MaxFloorDistance,
		MaxWallClingDistance:     s.MaxWallClingDistance,
		WallSlideSpeed:           s.WallSlideSpeed,
		WallSlideInterpSpeed:     s.WallSlideInterpSpeed,
		WallJumpLateralSpeed:     s.WallJumpLateralSpeed,
		WallJumpVerticalSpeed:    s.WallJumpVerticalSpeed,
		SpringboardLateralSpeed:  s.SpringboardLateralSpeed,
		SpringboardVerticalSpeed: s.SpringboardVerticalSpeed,
		GravityScale:             s.GravityScale,
		Friction:                 s.Friction,
	}
}

type LocomotionSpec struct {
	Gravity                    float64 `yaml:"gravity"`
	MaxWalkSpeed               float64 `yaml:"max_walk_speed"`
	MaxAcceleration            float64 `yaml:"max_acceleration"`
	BrakingDecelerationWalking float64 `yaml:"braking_deceleration_walking"`
	BrakingDecelerationFalling float64 `yaml:"braking_deceleration_falling"`
	AirControl                 float64 `yaml:"air_control"`
	JumpZVelocity              float64 `yaml:"jump_z_velocity"`
	JumpMaxHoldTime            float64 `yaml:"jump_max_hold_time"`
	RotationRate               float64 `yaml:"rotation_rate"`
	OrientToMovement           bool    `yaml:"orient_to_movement"`
	Width                      float64 `yaml:"width"`
	Height                     float64 `yaml:"height"`
	Mass                       float64 `yaml:"mass"`
}

func (s LocomotionSpec) Config() locomotion.Config {
	return locomotion.Config{
		MaxWalkSpeed:               s.MaxWalkSpeed,
		MaxAcceleration:            s.MaxAcceleration,
		BrakingDecelerationWalking: s.BrakingDecelerationWalking,
		BrakingDecelerationFalling: s.BrakingDecelerationFalling,
		AirControl:                 s.AirControl,
		JumpZVelocity:              s.JumpZVelocity,
		JumpMaxHoldTime:            s.JumpMaxHoldTime,
		RotationRate:               s.RotationRate,
		OrientToMovement:           s.OrientToMovement,
		Width:                      s.Width,
		Height:                     s.Height,
		Mass:                       s.Mass,
	}
}

// SpawnSpec places a character in the lateral/up plane.
type SpawnSpec struct {
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

func (s SpawnSpec) Position() mathx.Vec3 {
	return mathx.Vec3{Y: s.Y, Z: s.Z}
}

type PlayerSpec struct {
	Name        string         `yaml:"name"`
	DashVariant string         `yaml:"dash_variant"`
	Tuning      TuningSpec     `yaml:"tuning"`
	Locomotion  LocomotionSpec `yaml:"locomotion"`
	Spawn       SpawnSpec      `yaml:"spawn"`
}

func DefaultPlayerSpec() PlayerSpec {
	cfg := locomotion.DefaultConfig()
	return PlayerSpec{
		Name:        "player",
		DashVariant: movement.DashStationary.String(),
		Tuning:      TuningSpecFrom(movement.DefaultTuning()),
		Locomotion: LocomotionSpec{
			Gravity:                    locomotion.DefaultGravity,
			MaxWalkSpeed:               cfg.MaxWalkSpeed,
			MaxAcceleration:            cfg.MaxAcceleration,
			BrakingDecelerationWalking: cfg.BrakingDecelerationWalking,
			BrakingDecelerationFalling: cfg.BrakingDecelerationFalling,
			AirControl:                 cfg.AirControl,
			JumpZVelocity:              cfg.JumpZVelocity,
			JumpMaxHoldTime:            cfg.JumpMaxHoldTime,
			RotationRate:               cfg.RotationRate,
			OrientToMovement:           cfg.OrientToMovement,
			Width:                      cfg.Width,
			Height:                     cfg.Height,
			Mass:                       cfg.Mass,
		},
		Spawn: SpawnSpec{Y: 200, Z: 96, Yaw: 90},
	}
}

// Validate checks the tuning, the locomotion block and the dash variant.
func (s PlayerSpec) Validate() error {
	if _, ok := movement.ParseDashVariant(s.DashVariant); !ok {
		return fmt.Errorf("prefabs: player %q: unknown dash variant %q: %w", s.Name, s.DashVariant, ErrInvalidSpec)
	}
	if err := s.Tuning.Tuning().Validate(); err != nil {
		return fmt.Errorf("prefabs: player %q: %w", s.Name, err)
	}
	if err := s.Locomotion.Config().Validate(); err != nil {
		return fmt.Errorf("prefabs: player %q: %w", s.Name, err)
	}
	if !mathx.Finite(s.Locomotion.Gravity) || s.Locomotion.Gravity < 0 {
		return fmt.Errorf("prefabs: player %q: gravity must be non-negative: %w", s.Name, ErrInvalidSpec)
	}
	return nil
}

// LoadPlayerSpec decodes a player prefab over DefaultPlayerSpec and validates it.
func LoadPlayerSpec(filename string) (PlayerSpec, error) {
	spec := DefaultPlayerSpec()
	if err := LoadSpecInto(filename, &spec); err != nil {
		return PlayerSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return PlayerSpec{}, err
	}
	return spec, nil
}

type SolidSpec struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"w"`
	H    float64 `yaml:"h"`
}

func (s SolidSpec) Solid() locomotion.Solid {
	return locomotion.Solid{Name: s.Name, X: s.X, Y: s.Y, W: s.W, H: s.H}
}

type LevelSpec struct {
	Name   string      `yaml:"name"`
	Width  float64     `yaml:"width"`
	Height float64     `yaml:"height"`
	KillZ  float64     `yaml:"kill_z"`
	Spawn  *SpawnSpec  `yaml:"spawn"`
	Solids []SolidSpec `yaml:"solids"`
}

func (s LevelSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("prefabs: level %q: bounds must be positive, got %vx%v: %w", s.Name, s.Width, s.Height, ErrInvalidSpec)
	}
	for i, solid := range s.Solids {
		if solid.W <= 0 || solid.H <= 0 {
			return fmt.Errorf("prefabs: level %q: solid %d (%q) has invalid size %vx%v: %w", s.Name, i, solid.Name, solid.W, solid.H, ErrInvalidSpec)
		}
	}
	return nil
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return LevelSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return LevelSpec{}, err
	}
	return spec, nil
}
