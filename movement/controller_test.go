package movement

import (
	"math/rand"
	"testing"

	"github.com/milk9111/ghostrun/mathx"
	"github.com/milk9111/ghostrun/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tickDT = 1.0 / 60

func newTestController(t *testing.T, tuning Tuning) (*Controller, *fakeEngine, *timer.Queue) {
	t.Helper()
	eng := newFakeEngine()
	q := timer.NewQueue()
	c, err := NewController(eng, q, tuning)
	require.NoError(t, err)
	return c, eng, q
}

// step advances the simulated clock, then ticks the controller, the same
// order the ECS systems run in.
func step(c *Controller, q *timer.Queue, dt float64) {
	q.Advance(dt)
	c.Tick(dt)
}

func TestNewController(t *testing.T) {
	bad := DefaultTuning()
	bad.DashDuration = 0

	tests := []struct {
		name    string
		engine  Locomotion
		sched   Scheduler
		tuning  Tuning
		wantErr error
	}{
		{"ok", newFakeEngine(), timer.NewQueue(), DefaultTuning(), nil},
		{"nil_engine", nil, timer.NewQueue(), DefaultTuning(), ErrNilEngine},
		{"nil_scheduler", newFakeEngine(), nil, DefaultTuning(), ErrNilScheduler},
		{"invalid_tuning", newFakeEngine(), timer.NewQueue(), bad, ErrInvalidTuning},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewController(tc.engine, tc.sched, tc.tuning)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, SpawnAbilities(), c.Abilities())
		})
	}
}

func TestSpawnState(t *testing.T) {
	c, eng, _ := newTestController(t, DefaultTuning())

	a := c.Abilities()
	assert.True(t, a.DashReady())
	assert.True(t, a.GroundedSinceLastDash())
	assert.True(t, a.GroundedSinceLastWallJump())
	assert.False(t, a.IsDashing())
	assert.Equal(t, DashStatusReady, a.Dash.Status())

	assert.Equal(t, 2.0, eng.friction)
	assert.Equal(t, 2.0, eng.gravity)
}

func TestDashDirection(t *testing.T) {
	tests := []struct {
		name    string
		variant DashVariant
		yaw     float64
		move    *mathx.Vec2
		wantY   float64
	}{
		{"stationary_facing_right", DashStationary, 90, nil, 2000},
		{"stationary_facing_left", DashStationary, -90, nil, -2000},
		{"stationary_diagonal_snaps", DashStationary, 150, nil, 2000},
		{"stationary_facing_depth_snaps_positive", DashStationary, 0, nil, 2000},
		{"stationary_back_left_snaps", DashStationary, -30, nil, -2000},
		{"directional_left", DashDirectional, 90, &mathx.Vec2{X: -1}, -2000},
		{"directional_ignores_forward_axis", DashDirectional, 90, &mathx.Vec2{X: 0.3, Y: 1}, 2000},
		{"directional_forward_only", DashDirectional, 90, &mathx.Vec2{Y: 1}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, eng, q := newTestController(t, DefaultTuning())
			eng.yaw = tc.yaw
			if tc.move != nil {
				c.OnMove(*tc.move)
			}

			c.OnDashPressed(tc.variant)

			require.Len(t, eng.launches, 1)
			l := eng.launches[0]
			assert.True(t, l.overrideXY)
			assert.True(t, l.overrideZ)
			assert.Equal(t, 0.0, l.v.X)
			assert.Equal(t, 0.0, l.v.Z)
			assert.InDelta(t, tc.wantY, l.v.Y, 1e-9)

			a := c.Abilities()
			assert.True(t, a.IsDashing())
			assert.False(t, a.DashReady())
			assert.False(t, a.GroundedSinceLastDash())
			assert.Equal(t, 0.0, eng.friction)
			assert.Equal(t, 0.0, eng.gravity)
			assert.Equal(t, 2, q.Len())
		})
	}
}

func TestDashDenied(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller, eng *fakeEngine, q *timer.Queue)
	}{
		{
			name: "cooldown_pending",
			setup: func(c *Controller, eng *fakeEngine, q *timer.Queue) {
				c.OnDashPressed(DashStationary)
				step(c, q, 0.5)
			},
		},
		{
			name: "not_grounded_since_dash",
			setup: func(c *Controller, eng *fakeEngine, q *timer.Queue) {
				eng.takeOff()
				c.OnDashPressed(DashStationary)
				for i := 0; i < 90; i++ {
					step(c, q, tickDT)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, eng, q := newTestController(t, DefaultTuning())
			tc.setup(c, eng, q)

			before := c.Abilities()
			vel := eng.vel
			launches := len(eng.launches)
			friction, gravity := eng.friction, eng.gravity
			pending := q.Len()

			c.OnDashPressed(DashStationary)
			c.OnDashPressed(DashDirectional)

			assert.Equal(t, before, c.Abilities())
			assert.Equal(t, vel, eng.vel)
			assert.Len(t, eng.launches, launches)
			assert.Equal(t, friction, eng.friction)
			assert.Equal(t, gravity, eng.gravity)
			assert.Equal(t, pending, q.Len())
		})
	}
}

func TestDashTimeline(t *testing.T) {
	c, eng, q := newTestController(t, DefaultTuning())
	eng.takeOff()

	c.OnDashPressed(DashStationary)
	require.True(t, c.Abilities().IsDashing())

	checkpoints := []struct {
		at        float64
		dashing   bool
		dashReady bool
	}{
		{0.2, true, false},
		{0.3, false, false},
		{0.9, false, false},
		{1.1, false, true},
	}

	elapsed := 0.0
	for _, cp := range checkpoints {
		for elapsed < cp.at-1e-9 {
			step(c, q, 0.05)
			elapsed += 0.05
		}
		a := c.Abilities()
		assert.Equal(t, cp.dashing, a.IsDashing(), "dashing at t=%.2f", cp.at)
		assert.Equal(t, cp.dashReady, a.DashReady(), "dash ready at t=%.2f", cp.at)
		if !cp.dashing {
			assert.Equal(t, 2.0, eng.friction, "friction at t=%.2f", cp.at)
			assert.Equal(t, 2.0, eng.gravity, "gravity at t=%.2f", cp.at)
		}
	}

	// Cooldown re-armed the charge but the floor latch is still disarmed.
	assert.Equal(t, DashStatusCoolingDown, c.Abilities().Dash.Status())
	c.OnDashPressed(DashStationary)
	assert.Len(t, eng.launches, 1)

	eng.land()
	step(c, q, tickDT)
	assert.Equal(t, DashStatusReady, c.Abilities().Dash.Status())
	c.OnDashPressed(DashStationary)
	assert.Len(t, eng.launches, 2)
}

func TestDashTimersIndependent(t *testing.T) {
	tuning := DefaultTuning()
	tuning.DashDuration = 1.5
	tuning.DashDelay = 0.5
	c, eng, q := newTestController(t, tuning)

	c.OnDashPressed(DashStationary)

	step(c, q, 0.6)
	a := c.Abilities()
	assert.True(t, a.DashReady(), "cooldown fires while the dash is still active")
	assert.True(t, a.IsDashing())
	assert.Equal(t, 0.0, eng.friction)

	step(c, q, 1.0)
	a = c.Abilities()
	assert.False(t, a.IsDashing())
	assert.True(t, a.DashReady())
	assert.Equal(t, 2.0, eng.friction)
	assert.Equal(t, 2.0, eng.gravity)
}

func TestRedashReplacesStaleWindow(t *testing.T) {
	tuning := DefaultTuning()
	tuning.DashDuration = 1.5
	tuning.DashDelay = 0.5
	c, _, q := newTestController(t, tuning)

	c.OnDashPressed(DashStationary)
	step(c, q, 0.6) // grounded: latch re-armed, cooldown elapsed
	c.OnDashPressed(DashStationary)
	require.True(t, c.Abilities().IsDashing())

	// The first dash's window would have elapsed at 1.5.
	step(c, q, 1.0)
	assert.True(t, c.Abilities().IsDashing())
	step(c, q, 0.6)
	assert.False(t, c.Abilities().IsDashing())
}

func TestLandingRearmsLatches(t *testing.T) {
	c, eng, q := newTestController(t, DefaultTuning())
	c.OnDashPressed(DashStationary)

	eng.takeOff()
	eng.wall = true
	eng.wallNormal = mathx.Vec3{Y: -1}
	step(c, q, tickDT)
	c.OnJumpPressed()
	require.False(t, c.Abilities().GroundedSinceLastDash())
	require.False(t, c.Abilities().GroundedSinceLastWallJump())

	step(c, q, tickDT)
	assert.False(t, c.Abilities().GroundedSinceLastDash(), "airborne ticks never re-arm")

	eng.land()
	step(c, q, tickDT)
	assert.True(t, c.Abilities().GroundedSinceLastDash())
	assert.True(t, c.Abilities().GroundedSinceLastWallJump())
	assert.True(t, c.Contact().Grounded)
}

func TestWallJump(t *testing.T) {
	c, eng, q := newTestController(t, DefaultTuning())
	eng.takeOff()
	eng.wall = true
	eng.wallNormal = mathx.Vec3{Y: -1}
	eng.vel = mathx.Vec3{Z: -10}
	step(c, q, tickDT)
	require.True(t, c.Contact().WallSliding)
	require.InDelta(t, 90.0, eng.yaw, 1e-9)

	c.OnJumpPressed()

	assert.InDelta(t, -90.0, eng.yaw, 1e-9, "turned away from the wall")
	require.Len(t, eng.launches, 1)
	l := eng.launches[0]
	assert.True(t, l.overrideXY && l.overrideZ)
	assert.InDelta(t, 0.0, l.v.X, 1e-9)
	assert.InDelta(t, -1200.0, l.v.Y, 1e-9)
	assert.InDelta(t, 1000.0, l.v.Z, 1e-9)
	assert.False(t, c.Abilities().GroundedSinceLastWallJump())

	// Still touching a wall: a second press is absorbed, no fallback jump.
	eng.yaw = 90
	yaw := eng.yaw
	vel := eng.vel
	c.OnJumpPressed()
	assert.Len(t, eng.launches, 1)
	assert.Equal(t, 0, eng.jumps)
	assert.Equal(t, yaw, eng.yaw)
	assert.Equal(t, vel, eng.vel)
}

func TestJumpPriority(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(c *Controller, eng *fakeEngine)
		wantJumps      int
		wantLaunches   int
		wantDashing    bool
		wantLastLaunch *mathx.Vec3
	}{
		{
			name:      "plain_jump_on_ground",
			setup:     func(c *Controller, eng *fakeEngine) {},
			wantJumps: 1,
		},
		{
			name: "plain_jump_in_free_fall",
			setup: func(c *Controller, eng *fakeEngine) {
				eng.takeOff()
			},
			wantJumps: 1,
		},
		{
			name: "springboard_when_dashing_on_ground",
			setup: func(c *Controller, eng *fakeEngine) {
				c.OnMove(mathx.Vec2{X: -0.5})
				c.OnDashPressed(DashDirectional)
			},
			wantLaunches:   2,
			wantLastLaunch: &mathx.Vec3{Y: -1000, Z: 1000},
		},
		{
			name: "dashing_in_air_plain_jump",
			setup: func(c *Controller, eng *fakeEngine) {
				c.OnDashPressed(DashStationary)
				eng.takeOff()
			},
			wantJumps:    1,
			wantLaunches: 1,
			wantDashing:  true,
		},
		{
			name: "wall_jump_beats_springboard",
			setup: func(c *Controller, eng *fakeEngine) {
				c.OnDashPressed(DashStationary)
				eng.takeOff()
				eng.wall = true
				eng.wallNormal = mathx.Vec3{Y: -1}
			},
			wantLaunches:   2,
			wantDashing:    true,
			wantLastLaunch: &mathx.Vec3{Y: -1200, Z: 1000},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, eng, _ := newTestController(t, DefaultTuning())
			tc.setup(c, eng)

			c.OnJumpPressed()

			assert.Equal(t, tc.wantJumps, eng.jumps)
			assert.Len(t, eng.launches, tc.wantLaunches)
			assert.Equal(t, tc.wantDashing, c.Abilities().IsDashing())
			if tc.wantLastLaunch != nil {
				got := eng.launches[len(eng.launches)-1].v
				assert.InDelta(t, tc.wantLastLaunch.Y, got.Y, 1e-9)
				assert.InDelta(t, tc.wantLastLaunch.Z, got.Z, 1e-9)
			}
		})
	}
}

func TestSpringboardEndsDash(t *testing.T) {
	c, eng, q := newTestController(t, DefaultTuning())
	c.OnMove(mathx.Vec2{X: 1})
	c.OnDashPressed(DashDirectional)
	require.Equal(t, 2, q.Len())

	c.OnJumpPressed()

	a := c.Abilities()
	assert.False(t, a.IsDashing())
	assert.False(t, a.DashReady(), "springboard does not refund the cooldown")
	assert.Equal(t, 2.0, eng.friction)
	assert.Equal(t, 2.0, eng.gravity)
	assert.Equal(t, mathx.Vec3{Y: 2000, Z: 1000}, eng.vel)
	assert.Equal(t, 1, q.Len(), "stale dash window is canceled")

	step(c, q, 1.0)
	assert.True(t, c.Abilities().DashReady())
}

func TestWallSlideEffect(t *testing.T) {
	tests := []struct {
		name    string
		vel     mathx.Vec3
		wantVel mathx.Vec3
		wantYaw float64
	}{
		{"descending_eases_toward_slide_speed", mathx.Vec3{Y: 30, Z: -50}, mathx.Vec3{Y: 30, Z: -25}, 90},
		{"slow_descent_snaps_to_target", mathx.Vec3{Z: -10}, mathx.Vec3{}, 90},
		{"stationary_counts_as_descending", mathx.Vec3{}, mathx.Vec3{}, 90},
		{"rising_is_untouched", mathx.Vec3{Z: 100}, mathx.Vec3{Z: 100}, 80},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, eng, q := newTestController(t, DefaultTuning())
			eng.takeOff()
			eng.wall = true
			eng.wallNormal = mathx.Vec3{Y: -1}
			eng.yaw = 80
			eng.vel = tc.vel

			step(c, q, tickDT)

			assert.True(t, c.Contact().WallSliding, "classification does not depend on the velocity branch")
			assert.InDelta(t, tc.wantVel.Y, eng.vel.Y, 1e-9)
			assert.InDelta(t, tc.wantVel.Z, eng.vel.Z, 1e-9)
			assert.InDelta(t, tc.wantYaw, eng.yaw, 1e-9)
		})
	}
}

func TestWallSlideNeverOvershoots(t *testing.T) {
	c, eng, q := newTestController(t, DefaultTuning())
	eng.takeOff()
	eng.wall = true
	eng.wallNormal = mathx.Vec3{Y: 1}
	eng.yaw = -90
	eng.vel = mathx.Vec3{Z: -600}

	maxStep := c.Tuning().WallSlideInterpSpeed * tickDT
	prev := eng.vel.Z
	for i := 0; i < 40; i++ {
		step(c, q, tickDT)
		assert.LessOrEqual(t, eng.vel.Z-prev, maxStep+1e-9)
		assert.LessOrEqual(t, eng.vel.Z, c.Tuning().WallSlideSpeed)
		prev = eng.vel.Z
	}
	assert.Equal(t, 0.0, eng.vel.Z)
	assert.InDelta(t, -90.0, eng.yaw, 1e-9, "faces a wall on the left")
}

func TestWallSlideReorientsWhenDescending(t *testing.T) {
	c, eng, q := newTestController(t, DefaultTuning())
	eng.takeOff()
	eng.wall = true
	// wall hit slightly off-axis: facing snaps to the normal, not the probe
	eng.wallNormal = mathx.Vec3{X: 0.2, Y: -0.98}
	eng.vel = mathx.Vec3{Z: -5}

	step(c, q, tickDT)

	want := mathx.NormalizeYaw(eng.wallNormal.Yaw() + 180)
	assert.InDelta(t, want, eng.yaw, 1e-9)

	eng.yaw = 90
	eng.vel = mathx.Vec3{Z: 50}
	step(c, q, tickDT)
	assert.Equal(t, 90.0, eng.yaw, "rising characters keep their facing")
	assert.True(t, c.Contact().WallSliding)
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name  string
		setup func(eng *fakeEngine)
		want  Contact
	}{
		{"grounded", func(eng *fakeEngine) {}, Contact{Grounded: true}},
		{"grounded_beats_wall", func(eng *fakeEngine) { eng.wall = true; eng.airborne = true }, Contact{Grounded: true}},
		{"free_fall", func(eng *fakeEngine) { eng.takeOff() }, Contact{}},
		{"wall_needs_airborne", func(eng *fakeEngine) { eng.floor = false; eng.wall = true }, Contact{}},
		{"invalid_actor_is_no_contact", func(eng *fakeEngine) { eng.invalidHit = true }, Contact{}},
		{"degenerate_origin_is_no_contact", func(eng *fakeEngine) { eng.pos.Z = nan() }, Contact{}},
		{
			"wall_slide",
			func(eng *fakeEngine) {
				eng.takeOff()
				eng.wall = true
				eng.wallNormal = mathx.Vec3{Y: -1}
			},
			Contact{WallSliding: true, WallNormal: mathx.Vec3{Y: -1}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eng := newFakeEngine()
			tc.setup(eng)
			got := Classifier{engine: eng}.Classify(DefaultTuning())
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDegenerateWallNormalLeavesStateAlone(t *testing.T) {
	c, eng, q := newTestController(t, DefaultTuning())
	eng.takeOff()
	eng.wall = true
	eng.wallNormal = mathx.Vec3{Y: nan()}
	eng.vel = mathx.Vec3{Z: -100}

	step(c, q, tickDT)

	assert.Equal(t, 90.0, eng.yaw)
	assert.Equal(t, -100.0, eng.vel.Z)
}

func TestJumpPressHasNoSlideSideEffect(t *testing.T) {
	c, eng, _ := newTestController(t, DefaultTuning())
	eng.takeOff()
	eng.wall = true
	eng.wallNormal = mathx.Vec3{Y: -1}
	c.abilities.WallJump = Disarmed
	eng.vel = mathx.Vec3{Z: -300}

	c.OnJumpPressed()

	assert.Equal(t, -300.0, eng.vel.Z)
	assert.Equal(t, 0, eng.jumps)
}

func TestMoveAndJumpRelease(t *testing.T) {
	c, eng, _ := newTestController(t, DefaultTuning())

	c.OnMove(mathx.Vec2{X: -0.75, Y: 1})
	c.OnJumpReleased()

	assert.Equal(t, mathx.Vec2{X: -0.75, Y: 1}, c.MoveInput())
	assert.Equal(t, []float64{-0.75}, eng.inputs, "only the lateral axis reaches the engine")
	assert.Equal(t, 1, eng.stopJumps)

	c.OnMove(mathx.Vec2{X: nan()})
	assert.Equal(t, mathx.Vec2{X: -0.75, Y: 1}, c.MoveInput())
}

func TestReset(t *testing.T) {
	c, eng, q := newTestController(t, DefaultTuning())
	c.OnMove(mathx.Vec2{X: 1})
	c.OnDashPressed(DashDirectional)

	c.Reset()

	assert.Equal(t, SpawnAbilities(), c.Abilities())
	assert.Equal(t, mathx.Vec2{}, c.MoveInput())
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 2.0, eng.friction)
	assert.Equal(t, 2.0, eng.gravity)

	q.Advance(2)
	assert.Equal(t, SpawnAbilities(), c.Abilities())
}

func TestSetTuning(t *testing.T) {
	c, eng, q := newTestController(t, DefaultTuning())

	bad := DefaultTuning()
	bad.Friction = -1
	require.ErrorIs(t, c.SetTuning(bad), ErrInvalidTuning)

	c.OnDashPressed(DashStationary)
	next := DefaultTuning()
	next.Friction = 4
	next.GravityScale = 3
	require.NoError(t, c.SetTuning(next))
	assert.Equal(t, 0.0, eng.friction, "dash override survives a reload")

	step(c, q, 0.3)
	assert.Equal(t, 4.0, eng.friction)
	assert.Equal(t, 3.0, eng.gravity)

	next.GravityScale = 1
	require.NoError(t, c.SetTuning(next))
	assert.Equal(t, 1.0, eng.gravity)
}

// TestOverrideInvariant drives random input against random terrain and checks
// that the friction/gravity override always matches the dash window.
func TestOverrideInvariant(t *testing.T) {
	c, eng, q := newTestController(t, DefaultTuning())
	rng := rand.New(rand.NewSource(7))
	tuning := c.Tuning()

	for i := 0; i < 5000; i++ {
		switch rng.Intn(8) {
		case 0:
			c.OnDashPressed(DashVariant(rng.Intn(2)))
		case 1:
			c.OnJumpPressed()
		case 2:
			c.OnMove(mathx.Vec2{X: rng.Float64()*2 - 1})
		case 3:
			eng.floor = rng.Intn(2) == 0
			eng.airborne = !eng.floor
			eng.wall = rng.Intn(3) == 0
			eng.wallNormal = mathx.Vec3{Y: -mathx.Sign(rng.Float64() - 0.5)}
		case 4:
			c.OnJumpReleased()
		}
		step(c, q, tickDT)

		a := c.Abilities()
		if a.IsDashing() {
			require.Equal(t, 0.0, eng.friction, "iteration %d", i)
			require.Equal(t, 0.0, eng.gravity, "iteration %d", i)
		} else {
			require.Equal(t, tuning.Friction, eng.friction, "iteration %d", i)
			require.Equal(t, tuning.GravityScale, eng.gravity, "iteration %d", i)
		}
		require.False(t, c.Contact().Grounded && c.Contact().WallSliding)
	}
}
