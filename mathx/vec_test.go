package mathx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpConstantTo(t *testing.T) {
	tests := []struct {
		name    string
		current Vec3
		target  Vec3
		dt      float64
		speed   float64
		want    Vec3
	}{
		{"rate_bounded_step", Vec3{Z: -50}, Vec3{}, 1.0 / 60, 1500, Vec3{Z: -25}},
		{"snaps_when_within_step", Vec3{Z: -10}, Vec3{}, 1.0 / 60, 1500, Vec3{}},
		{"zero_speed_holds", Vec3{Z: -10}, Vec3{}, 1.0 / 60, 0, Vec3{Z: -10}},
		{"preserves_direction", Vec3{Y: 3, Z: -40}, Vec3{Y: 3}, 0.01, 1000, Vec3{Y: 3, Z: -30}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := InterpConstantTo(tc.current, tc.target, tc.dt, tc.speed)
			assert.InDelta(t, tc.want.X, got.X, 1e-9)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tc.want.Z, got.Z, 1e-9)
		})
	}
}

func TestYawHelpers(t *testing.T) {
	assert.InDelta(t, 90.0, Vec3{Y: 1}.Yaw(), 1e-9)
	assert.InDelta(t, -90.0, Vec3{Y: -1}.Yaw(), 1e-9)
	assert.InDelta(t, 1.0, ForwardFromYaw(90).Y, 1e-9)
	assert.InDelta(t, 0.0, ForwardFromYaw(90).X, 1e-9)

	assert.Equal(t, 180.0, NormalizeYaw(-180))
	assert.Equal(t, -90.0, NormalizeYaw(270))
	assert.Equal(t, 90.0, NormalizeYaw(450))
}

func TestNormalizeDegenerate(t *testing.T) {
	assert.True(t, Vec3{}.Normalize().IsZero())
	assert.True(t, Vec3{Y: math.NaN()}.Normalize().IsZero())
	assert.False(t, Vec3{Y: math.Inf(1)}.Finite())
}

func TestApproach(t *testing.T) {
	assert.Equal(t, 5.0, Approach(0, 10, 5))
	assert.Equal(t, 10.0, Approach(8, 10, 5))
	assert.Equal(t, -3.0, Approach(0, -3, 5))
	assert.Equal(t, 4.0, Approach(4, 0, 0))
}

func TestApproachYaw(t *testing.T) {
	assert.InDelta(t, 10.0, ApproachYaw(0, 90, 10), 1e-9)
	assert.InDelta(t, 90.0, ApproachYaw(85, 90, 10), 1e-9)
	// shorter arc across the wrap point
	assert.InDelta(t, 175.0, ApproachYaw(-175, 170, 10), 1e-9)
	assert.InDelta(t, -90.0, ApproachYaw(90, -90, 180), 1e-9)
}
