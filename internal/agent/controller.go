package agent

import (
	"fmt"

	"github.com/pkg/errors"

	"racing-line-mapper/internal/common"
	"racing-line-mapper/internal/track"
)

// Agent is anything that can drive a car one tick at a time.
type Agent interface {
	ComputeCommands(next int, pose common.Pose, velocity common.Vec2) (throttle, steering float64)
	Name() string
	DebugInfoStr() string
}

// Diagnostics is what the controller did on its last tick. It is only
// reported, never read back into control decisions.
type Diagnostics struct {
	Throttle float64
	Steering float64
	Pose     common.Pose
	Velocity common.Vec2
	Next     int // Waypoint index supplied by the simulation
	Aim      int // Racing-line waypoint steered at
	Brake    int // Waypoint that triggered braking, -1 if none
}

// Controller is the racing-line agent: lookahead braking plus pursuit
// steering along a corner-cutting racing line. One controller drives one car
// for one race; it shares nothing with other controllers.
type Controller struct {
	cfg    Config
	center *track.Geometry
	line   *track.RacingLine
	limits track.SpeedLimits

	last Diagnostics
}

var _ Agent = (*Controller)(nil)

// NewController builds the centerline geometry, racing line and speed
// limits for a track of the given width.
func NewController(waypoints []common.Vec2, width float64, cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	center, err := track.NewGeometry(waypoints)
	if err != nil {
		return nil, errors.Wrap(err, "building centerline")
	}

	line, err := track.BuildRacingLine(center, width, track.CutOptions{
		Factor:   cfg.CornerCutFactor,
		Distance: cfg.CornerCutDistance,
	})
	if err != nil {
		return nil, errors.Wrap(err, "building racing line")
	}

	return &Controller{
		cfg:    cfg,
		center: center,
		line:   line,
		limits: track.ComputeSpeedLimits(line.Geometry, cfg.SpeedLimitFactor, cfg.SpeedLimitOffset),
		last:   Diagnostics{Aim: -1, Brake: -1},
	}, nil
}

// ComputeCommands returns throttle in {-1, +1} and a steering value for
// this tick.
func (c *Controller) ComputeCommands(next int, pose common.Pose, velocity common.Vec2) (float64, float64) {
	throttle, brake := Throttle(c.line.Geometry, c.limits, c.cfg, next, pose, velocity)
	steering, aim := Steering(c.line.Geometry, c.cfg, next, pose, velocity)

	c.last = Diagnostics{
		Throttle: throttle,
		Steering: steering,
		Pose:     pose,
		Velocity: velocity,
		Next:     next,
		Aim:      aim,
		Brake:    brake,
	}
	return throttle, steering
}

// Name identifies the agent in logs and result tables.
func (c *Controller) Name() string {
	return "racing-line"
}

// Config returns the tuning the controller was built with.
func (c *Controller) Config() Config {
	return c.cfg
}

// Centerline returns the unshifted track geometry.
func (c *Controller) Centerline() *track.Geometry {
	return c.center
}

// RacingLine returns the line the controller steers along.
func (c *Controller) RacingLine() *track.RacingLine {
	return c.line
}

// SpeedLimits returns the per-waypoint cornering speeds.
func (c *Controller) SpeedLimits() track.SpeedLimits {
	return c.limits
}

// Diagnostics returns a copy of the last tick's values.
func (c *Controller) Diagnostics() Diagnostics {
	return c.last
}

func (c *Controller) DebugInfoStr() string {
	d := c.last
	mode := "ACCEL"
	if d.Throttle < 0 {
		mode = fmt.Sprintf("BRAKE@%d", d.Brake)
	}
	return fmt.Sprintf("Agent: %s\nSpeed:  %.1f\nLimit:  %.1f\nMode:   %s\nAim:    %d\nSteer:  %.2f",
		c.Name(), d.Velocity.Len(), c.limits.At(d.Next), mode, d.Aim, d.Steering)
}
