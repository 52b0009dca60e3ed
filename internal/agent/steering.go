package agent

import (
	"math"

	"racing-line-mapper/internal/common"
	"racing-line-mapper/internal/track"
)

// AimTarget picks the racing-line waypoint to steer at and returns the
// heading error to it in degrees (positive = target is to the left).
// When the car is already within SteerDistanceLimit of next and pointing at
// it within SteerAngleLimit, it aims at the waypoint after next instead.
func AimTarget(line *track.Geometry, cfg Config, next int, pose common.Pose) (aim int, headingError float64) {
	aim = line.Wrap(next)
	target := line.Point(aim)
	headingError = pose.HeadingTo(target)

	if pose.Position.Dist(target) < cfg.SteerDistanceLimit && math.Abs(headingError) < cfg.SteerAngleLimit {
		aim = line.Nxt(aim)
		headingError = pose.HeadingTo(line.Point(aim))
	}
	return aim, headingError
}

// Steering scales the heading error of AimTarget by SteeringFactor.
// velocity is part of the per-tick interface but not used yet.
func Steering(line *track.Geometry, cfg Config, next int, pose common.Pose, _ common.Vec2) (steering float64, aim int) {
	aim, headingError := AimTarget(line, cfg, next, pose)
	return headingError * cfg.SteeringFactor / 100, aim
}
