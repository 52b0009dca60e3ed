package common

import "math"

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Add adds two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts other from v.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale multiplies the vector by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the length (magnitude) of the vector.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Dot returns the dot product of v and other.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product of v and other.
// Positive when other lies counter-clockwise of v.
func (v Vec2) Cross(other Vec2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Rotate rotates the vector counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Dist returns the distance between two points.
func (v Vec2) Dist(other Vec2) float64 {
	return v.Sub(other).Len()
}

// Polar returns the angle of the vector in degrees, in (-180, 180].
func (v Vec2) Polar() float64 {
	return Deg(math.Atan2(v.Y, v.X))
}

// AngleTo returns the signed angle in degrees needed to rotate v onto other,
// in (-180, 180]. Zero if either vector has zero length.
func (v Vec2) AngleTo(other Vec2) float64 {
	if v == (Vec2{}) || other == (Vec2{}) {
		return 0
	}
	a := math.Atan2(v.Cross(other), v.Dot(other))
	// A reversal with a -0 cross product lands on -pi.
	if a == -math.Pi {
		a = math.Pi
	}
	return Deg(a)
}
