package agent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"racing-line-mapper/internal/common"
)

func TestAimTargetHandOff(t *testing.T) {
	cfg := DefaultConfig() // 49 px, 36°
	line, _ := lineAndLimits(t, squareTrack(), cfg)

	for _, tc := range []struct {
		name    string
		pose    common.Pose
		wantAim int
	}{
		{"far away", common.Pose{Position: common.Vec2{X: 300}}, 1},
		{"close and aimed", common.Pose{Position: common.Vec2{X: 370}}, 2},
		{"close but pointing away", common.Pose{Position: common.Vec2{X: 370}, Heading: math.Pi / 2}, 1},
		{"close, within angle", common.Pose{Position: common.Vec2{X: 370}, Heading: common.Rad(-30)}, 2},
		{"just outside distance", common.Pose{Position: common.Vec2{X: 351}}, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			aim, _ := AimTarget(line, cfg, 1, tc.pose)
			assert.Equal(t, tc.wantAim, aim)
		})
	}
}

func TestAimTargetWraps(t *testing.T) {
	cfg := DefaultConfig()
	line, _ := lineAndLimits(t, squareTrack(), cfg)

	// Close to waypoint 3 (0,400) heading -X: hand-off goes to waypoint 0.
	pose := common.Pose{Position: common.Vec2{X: 20, Y: 400}, Heading: math.Pi}
	aim, headingError := AimTarget(line, cfg, 3, pose)
	assert.Equal(t, 0, aim)
	// Waypoint 0 is straight below, a left turn when facing -X in a y-up frame.
	assert.InDelta(t, common.Deg(math.Atan2(400, 20)), headingError, 1e-9)

	aim, _ = AimTarget(line, cfg, 7, common.Pose{})
	assert.Equal(t, 3, aim, "index wraps")
}

func TestSteeringScalesHeadingError(t *testing.T) {
	cfg := DefaultConfig()
	line, _ := lineAndLimits(t, squareTrack(), cfg)

	// Target (400,0) is 45° to the left of a car at (300,-100) facing +X.
	pose := common.Pose{Position: common.Vec2{X: 300, Y: -100}}
	steering, aim := Steering(line, cfg, 1, pose, common.Vec2{})
	assert.Equal(t, 1, aim)
	assert.InDelta(t, 45*cfg.SteeringFactor/100, steering, 1e-9)

	// Mirror image steers the other way.
	pose = common.Pose{Position: common.Vec2{X: 300, Y: 100}}
	steering, _ = Steering(line, cfg, 1, pose, common.Vec2{})
	assert.InDelta(t, -45*cfg.SteeringFactor/100, steering, 1e-9)

	cfg.SteeringFactor = 0
	steering, _ = Steering(line, cfg, 1, pose, common.Vec2{})
	assert.Equal(t, 0.0, steering)
}

func TestHandOffHeadingError(t *testing.T) {
	cfg := DefaultConfig()
	line, _ := lineAndLimits(t, squareTrack(), cfg)

	_, headingError := AimTarget(line, cfg, 1, common.Pose{Position: common.Vec2{X: 370}})
	// (400,400) seen from (370,0) facing +X.
	assert.InDelta(t, common.Deg(math.Atan2(400, 30)), headingError, 1e-9)
}
