package movement

import "github.com/milk9111/ghostrun/mathx"

// StationaryDashDirection dashes along the facing, snapped to due left or
// due right on the lateral axis.
func StationaryDashDirection(forward mathx.Vec3) mathx.Vec3 {
	if forward.Y >= 0 {
		return mathx.Vec3{Y: 1}
	}
	return mathx.Vec3{Y: -1}
}

// DirectionalDashDirection keeps only the lateral input axis. The forward
// axis is always dropped: the camera is fixed and movement is lateral only.
func DirectionalDashDirection(move mathx.Vec2) mathx.Vec3 {
	return mathx.Vec3{Y: mathx.Sign(move.X)}
}

func DashVelocity(dir mathx.Vec3, t Tuning) mathx.Vec3 {
	return dir.Scale(t.DashSpeed)
}

// WallJumpVelocity expects forward to already point away from the wall.
func WallJumpVelocity(forward mathx.Vec3, t Tuning) mathx.Vec3 {
	f := forward.Normalize()
	return mathx.Vec3{Y: f.Y * t.WallJumpLateralSpeed, Z: t.WallJumpVerticalSpeed}
}

// SpringboardVelocity depends only on the retained input, not on the
// current dash velocity.
func SpringboardVelocity(move mathx.Vec2, t Tuning) mathx.Vec3 {
	return mathx.Vec3{Y: move.X * t.SpringboardLateralSpeed, Z: t.SpringboardVerticalSpeed}
}
