package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"racing-line-mapper/internal/common"
)

const dt = 1.0 / FrameRate

func TestCarAccelerates(t *testing.T) {
	c := NewCar(common.Pose{})
	for range FrameRate {
		c.Update(dt, 1, 0)
	}
	assert.InDelta(t, Acceleration, c.Speed(), 1e-9)
	assert.InDelta(t, 0, c.Position.Y, 1e-9)
	// Sum of k*a*dt*dt for k = 1..60.
	assert.InDelta(t, Acceleration*dt*dt*FrameRate*(FrameRate+1)/2, c.Position.X, 1e-9)
}

func TestCarBrakingStopsAtRest(t *testing.T) {
	c := NewCar(common.Pose{})
	c.Velocity = common.Vec2{X: 10}
	for range FrameRate {
		c.Update(dt, -1, 0)
	}
	assert.Equal(t, 0.0, c.Speed())
}

func TestCarThrottleIsClamped(t *testing.T) {
	c := NewCar(common.Pose{})
	c.Update(dt, 5, 0)
	assert.InDelta(t, Acceleration*dt, c.Speed(), 1e-9)
}

func TestCarSteering(t *testing.T) {
	c := NewCar(common.Pose{})
	c.Update(0.25, 0, 1)
	assert.InDelta(t, math.Pi/4, c.Heading, 1e-9)

	// Clamped to full lock.
	c = NewCar(common.Pose{})
	c.Update(0.25, 0, -10)
	assert.InDelta(t, -math.Pi/4, c.Heading, 1e-9)
}

func TestCarDriftDecays(t *testing.T) {
	// Moving +X while pointing +Y: all velocity is sideways.
	c := NewCar(common.Pose{Heading: math.Pi / 2})
	c.Velocity = common.Vec2{X: 100}

	c.Update(dt, 0, 0)
	assert.InDelta(t, 100-SideDeceleration*dt, c.Speed(), 1e-9)

	for range FrameRate {
		c.Update(dt, 0, 0)
	}
	assert.InDelta(t, 0, c.Speed(), 1e-9)
}

func TestCarPose(t *testing.T) {
	pose := common.Pose{Position: common.Vec2{X: 3, Y: 4}, Heading: 1}
	assert.Equal(t, pose, NewCar(pose).Pose())
}
