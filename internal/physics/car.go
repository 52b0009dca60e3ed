package physics

import (
	"math"

	"racing-line-mapper/internal/common"
)

const (
	Acceleration     = 100.0 // Throttle acceleration/deceleration at |throttle| = 1, px/s²
	SideDeceleration = 200.0 // Sideways (drift) deceleration, px/s²
	TurnRate         = 180.0 // Heading change at |steering| = 1, deg/s
)

// Car is a point-mass car with arcade drift: heading turns immediately,
// velocity follows it only as fast as the sideways deceleration allows.
type Car struct {
	Position common.Vec2
	Velocity common.Vec2
	Heading  float64 // Radians

	// Dimensions (in pixels), used only for drawing
	Width  float64
	Length float64
}

func NewCar(pose common.Pose) *Car {
	return &Car{
		Position: pose.Position,
		Heading:  pose.Heading,
		Width:    10,
		Length:   22.5,
	}
}

// Pose returns the car's position and heading.
func (c *Car) Pose() common.Pose {
	return common.Pose{Position: c.Position, Heading: c.Heading}
}

// Speed returns the magnitude of the velocity.
func (c *Car) Speed() float64 {
	return c.Velocity.Len()
}

// Update advances the car by dt seconds.
// throttle: -1.0 (full brake) to 1.0 (full throttle)
// steering: -1.0 (right) to 1.0 (left), larger values are clamped
func (c *Car) Update(dt, throttle, steering float64) {
	throttle = clamp(throttle, -1, 1)
	steering = clamp(steering, -1, 1)

	// 1. Steering
	c.Heading = math.Mod(c.Heading+common.Rad(steering*TurnRate*dt), 2*math.Pi)

	// 2. Split velocity into heading-aligned and sideways parts
	fwd := c.Pose().Forward()
	side := fwd.Rotate(math.Pi / 2)
	vf := c.Velocity.Dot(fwd)
	vs := c.Velocity.Dot(side)

	// 3. Throttle / brake; braking stops at rest, it never reverses
	vf += throttle * Acceleration * dt
	if vf < 0 {
		vf = 0
	}

	// 4. Drift decays toward zero
	decay := SideDeceleration * dt
	if math.Abs(vs) <= decay {
		vs = 0
	} else {
		vs -= math.Copysign(decay, vs)
	}

	// 5. Integrate
	c.Velocity = fwd.Scale(vf).Add(side.Scale(vs))
	c.Position = c.Position.Add(c.Velocity.Scale(dt))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
