package common

import "math"

// Pose is a position plus an orientation on the track plane.
type Pose struct {
	Position Vec2
	Heading  float64 // Radians, counter-clockwise from +X
}

// Forward returns the unit vector the pose is facing.
func (p Pose) Forward() Vec2 {
	return Vec2{math.Cos(p.Heading), math.Sin(p.Heading)}
}

// ToLocal expresses a world point in the pose's reference frame
// (+X ahead, +Y to the left).
func (p Pose) ToLocal(world Vec2) Vec2 {
	return world.Sub(p.Position).Rotate(-p.Heading)
}

// ToWorld is the inverse of ToLocal.
func (p Pose) ToWorld(local Vec2) Vec2 {
	return local.Rotate(p.Heading).Add(p.Position)
}

// HeadingTo returns the polar angle in degrees of target as seen from the pose.
func (p Pose) HeadingTo(target Vec2) float64 {
	return p.ToLocal(target).Polar()
}

// Deg converts radians to degrees.
func Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Rad converts degrees to radians.
func Rad(deg float64) float64 {
	return deg * math.Pi / 180
}
