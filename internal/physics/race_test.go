package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"racing-line-mapper/internal/agent"
	"racing-line-mapper/internal/common"
	"racing-line-mapper/internal/track"
)

func squareGeometry(t *testing.T) *track.Geometry {
	t.Helper()
	g, err := track.NewGeometry([]common.Vec2{{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 400, Y: 400}, {X: 0, Y: 400}})
	require.NoError(t, err)
	return g
}

// teleporter puts the car on the waypoint it is asked to reach.
type teleporter struct {
	race  *Race
	calls int
}

func (d *teleporter) ComputeCommands(next int, _ common.Pose, _ common.Vec2) (float64, float64) {
	d.calls++
	d.race.Car.Position = d.race.Track.Point(next)
	d.race.Car.Velocity = common.Vec2{}
	return 0, 0
}

func TestNewRaceStart(t *testing.T) {
	g := squareGeometry(t)
	r := NewRace(g, 40, &teleporter{}, RaceOptions{})

	assert.Equal(t, common.Vec2{}, r.Car.Position)
	assert.InDelta(t, 0, r.Car.Heading, 1e-12)
	assert.Equal(t, 1, r.Next)
	assert.Equal(t, 0, r.Round)
	assert.False(t, r.Done())
}

func TestNewRaceOffStart(t *testing.T) {
	g := squareGeometry(t)
	start := common.Pose{Position: common.Vec2{X: 390, Y: 30}, Heading: math.Pi / 2}
	r := NewRace(g, 40, &teleporter{}, RaceOptions{Start: &start})

	assert.Equal(t, start, r.Car.Pose())
	assert.Equal(t, 2, r.Next, "nearest is waypoint 1, so the target is 2")

	start.Position = common.Vec2{X: 10, Y: 390}
	r = NewRace(g, 40, &teleporter{}, RaceOptions{Start: &start})
	assert.Equal(t, 0, r.Next, "wraps past the last waypoint")
}

func TestRaceCountsRounds(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	g := squareGeometry(t)
	d := &teleporter{}
	r := NewRace(g, 40, d, RaceOptions{Rounds: 2, Logger: zap.New(core)})
	d.race = r

	res := r.Run()
	require.True(t, res.Finished)
	assert.Equal(t, 8, res.Frames, "one frame per waypoint")
	assert.Equal(t, 8, d.calls)
	assert.InDelta(t, 8.0/FrameRate, res.Time, 1e-12)
	assert.Equal(t, []float64{4.0 / FrameRate, 4.0 / FrameRate}, res.LapTimes)
	assert.Equal(t, 4, r.BestLapTime)
	assert.Equal(t, 1, r.Next)
	assert.Equal(t, 2, logs.FilterMessage("lap complete").Len())

	assert.False(t, r.Step(), "a finished race does not advance")
	assert.Equal(t, 8, r.Frame)
}

func TestRaceFrameBudget(t *testing.T) {
	g := squareGeometry(t)
	ctrl, err := agent.NewController(g.Points(), 40, agent.DefaultConfig())
	require.NoError(t, err)

	res := NewRace(g, 40, ctrl, RaceOptions{MaxFrames: 10}).Run()
	assert.False(t, res.Finished)
	assert.Equal(t, 10, res.Frames)
	assert.Equal(t, 0.0, res.Time, "not finished scores the sentinel")
	assert.Empty(t, res.LapTimes)
}

func TestControllerMakesProgress(t *testing.T) {
	pts := track.Oval(common.Vec2{X: 600, Y: 400}, 500, 300, 32)
	g, err := track.NewGeometry(pts)
	require.NoError(t, err)
	ctrl, err := agent.NewController(pts, 60, agent.DefaultConfig())
	require.NoError(t, err)

	r := NewRace(g, 60, ctrl, RaceOptions{MaxFrames: 5 * FrameRate})
	r.Run()

	assert.Greater(t, r.Next, 1, "car reached waypoint 1 within five seconds")
	assert.Greater(t, r.Car.Speed(), 0.0)
	assert.False(t, math.IsNaN(r.Car.Position.X))
}
