package agent

import (
	"racing-line-mapper/internal/common"
	"racing-line-mapper/internal/track"
)

// Throttle commands.
const (
	ThrottleBrake      = -1.0
	ThrottleAccelerate = 1.0
)

// StoppingDistance is how far the car travels while braking from v to 0 at
// deceleration a (a < 0).
func StoppingDistance(v, a float64) float64 {
	return BrakingDistance(v, 0, a)
}

// BrakingDistance is how far the car travels while changing speed from v to
// target at deceleration a. Negative when target is above v.
func BrakingDistance(v, target, a float64) float64 {
	t := (target - v) / a
	return 0.5*a*t*t + v*t
}

// Throttle decides whether to brake now. It walks the racing line from next
// onward while the stopping distance still reaches past the walked distance,
// and brakes as soon as some waypoint's speed limit can no longer be met.
// brakeIdx is that waypoint, or -1 when accelerating. The walk covers at
// most one lap.
func Throttle(line *track.Geometry, limits track.SpeedLimits, cfg Config, next int, pose common.Pose, velocity common.Vec2) (throttle float64, brakeIdx int) {
	a := cfg.EffectiveDeceleration
	v := velocity.Len()
	md := StoppingDistance(v, a)

	wp := line.Wrap(next)
	d := pose.Position.Dist(line.Point(wp))

	for range line.Len() {
		if md <= d {
			break
		}
		if BrakingDistance(v, limits.At(wp), a) > d {
			return ThrottleBrake, wp
		}
		d += line.DistToNext(wp)
		wp = line.Nxt(wp)
	}

	return ThrottleAccelerate, -1
}
