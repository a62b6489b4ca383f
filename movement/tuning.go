package movement

import (
	"fmt"

	"github.com/milk9111/ghostrun/mathx"
)

// Tuning holds every magnitude the ability controller reads.
type Tuning struct {
	DashSpeed    float64
	DashDelay    float64 // seconds until the dash re-arms
	DashDuration float64 // seconds of friction/gravity override

	MaxFloorDistance     float64
	MaxWallClingDistance float64

	WallSlideSpeed       float64
	WallSlideInterpSpeed float64

	WallJumpLateralSpeed  float64
	WallJumpVerticalSpeed float64

	SpringboardLateralSpeed  float64
	SpringboardVerticalSpeed float64

	GravityScale float64
	Friction     float64
}

func DefaultTuning() Tuning {
	return Tuning{
		DashSpeed:                2000,
		DashDelay:                1,
		DashDuration:             0.25,
		MaxFloorDistance:         100,
		MaxWallClingDistance:     50,
		WallSlideSpeed:           0,
		WallSlideInterpSpeed:     1500,
		WallJumpLateralSpeed:     1200,
		WallJumpVerticalSpeed:    1000,
		SpringboardLateralSpeed:  2000,
		SpringboardVerticalSpeed: 1000,
		GravityScale:             2,
		Friction:                 2,
	}
}

// Validate rejects values the controller cannot run with.
func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"dash_delay", t.DashDelay},
		{"dash_duration", t.DashDuration},
		{"max_floor_distance", t.MaxFloorDistance},
		{"max_wall_cling_distance", t.MaxWallClingDistance},
	}
	for _, f := range positive {
		if !mathx.Finite(f.v) || f.v <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidTuning, f.name, f.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"dash_speed", t.DashSpeed},
		{"wall_slide_interp_speed", t.WallSlideInterpSpeed},
		{"wall_jump_lateral_speed", t.WallJumpLateralSpeed},
		{"wall_jump_vertical_speed", t.WallJumpVerticalSpeed},
		{"springboard_lateral_speed", t.SpringboardLateralSpeed},
		{"springboard_vertical_speed", t.SpringboardVerticalSpeed},
		{"gravity_scale", t.GravityScale},
		{"friction", t.Friction},
	}
	for _, f := range nonNegative {
		if !mathx.Finite(f.v) || f.v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidTuning, f.name, f.v)
		}
	}

	// wall slide speed is a signed vertical target
	if !mathx.Finite(t.WallSlideSpeed) {
		return fmt.Errorf("%w: wall_slide_speed must be finite", ErrInvalidTuning)
	}
	return nil
}
