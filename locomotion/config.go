package locomotion

import (
	"errors"
	"fmt"

	"github.com/milk9111/ghostrun/mathx"
)

var ErrInvalidConfig = errors.New("invalid locomotion config")

// Config holds the walking model of a character. Speeds are world units per
// second, rates are per second squared, RotationRate is degrees per second.
type Config struct {
	MaxWalkSpeed               float64
	MaxAcceleration            float64
	BrakingDecelerationWalking float64
	BrakingDecelerationFalling float64
	AirControl                 float64
	JumpZVelocity              float64
	JumpMaxHoldTime            float64
	RotationRate               float64
	OrientToMovement           bool

	Width  float64
	Height float64
	Mass   float64
}

func DefaultConfig() Config {
	return Config{
		MaxWalkSpeed:               500,
		MaxAcceleration:            2048,
		BrakingDecelerationWalking: 2000,
		BrakingDecelerationFalling: 1500,
		AirControl:                 0.35,
		JumpZVelocity:              1000,
		RotationRate:               500,
		OrientToMovement:           true,
		Width:                      84,
		Height:                     192,
		Mass:                       1,
	}
}

func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"mass", c.Mass},
	}
	for _, p := range positive {
		if !mathx.Finite(p.v) || p.v <= 0 {
			return fmt.Errorf("locomotion: %s must be positive, got %v: %w", p.name, p.v, ErrInvalidConfig)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"max walk speed", c.MaxWalkSpeed},
		{"max acceleration", c.MaxAcceleration},
		{"braking deceleration walking", c.BrakingDecelerationWalking},
		{"braking deceleration falling", c.BrakingDecelerationFalling},
		{"air control", c.AirControl},
		{"jump z velocity", c.JumpZVelocity},
		{"jump max hold time", c.JumpMaxHoldTime},
		{"rotation rate", c.RotationRate},
	}
	for _, p := range nonNegative {
		if !mathx.Finite(p.v) || p.v < 0 {
			return fmt.Errorf("locomotion: %s must be non-negative, got %v: %w", p.name, p.v, ErrInvalidConfig)
		}
	}
	return nil
}
