package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racing-line-mapper/internal/common"
)

func TestRacingLineRejectsBadWidth(t *testing.T) {
	g := mustGeometry(t, square())
	_, err := BuildRacingLine(g, 0, CutOptions{Factor: 50})
	require.Error(t, err)
}

func TestRacingLineShiftBoundedByHalfWidth(t *testing.T) {
	spline, err := Spline([]common.Vec2{
		{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 500, Y: 200}, {X: 300, Y: 250}, {X: 200, Y: 450}, {X: -50, Y: 300},
	}, 60)
	require.NoError(t, err)

	tracks := map[string][]common.Vec2{
		"square":    square(),
		"rectangle": Rectangle(common.Vec2{}, 600, 300, 5),
		"oval":      Oval(common.Vec2{}, 500, 200, 40),
		"bumpy":     bumpy(),
		"spline":    spline,
	}

	for name, pts := range tracks {
		g := mustGeometry(t, pts)
		for _, width := range []float64{10, 60, 200} {
			for factor := 0.0; factor <= 100; factor += 25 {
				for _, dist := range []float64{0, 100, 1000} {
					line, err := BuildRacingLine(g, width, CutOptions{Factor: factor, Distance: dist})
					require.NoError(t, err)
					require.Equal(t, g.Len(), line.Len())

					for i := range g.Len() {
						shift := line.Point(i).Sub(g.Point(i)).Len()
						assert.LessOrEqual(t, shift, width/2+1e-9, "%s w=%v f=%v d=%v i=%d", name, width, factor, dist, i)
						assert.InDelta(t, line.Shift[i].Len(), shift, 1e-9)
						assert.GreaterOrEqual(t, line.Intensity[i], 0.0)
						assert.LessOrEqual(t, line.Intensity[i], factor)
					}
				}
			}
		}
	}
}

func TestRacingLineOnNearlyStraightLoop(t *testing.T) {
	g := mustGeometry(t, Oval(common.Vec2{}, 10000, 10000, 720))
	line, err := BuildRacingLine(g, 60, CutOptions{Factor: 100, Distance: 500})
	require.NoError(t, err)

	for i := range g.Len() {
		assert.Less(t, line.Point(i).Dist(g.Point(i)), 1.0, "waypoint %d", i)
	}
}

func TestRacingLineCutsRectangleCorners(t *testing.T) {
	// Sides of 600 with a waypoint every 150.
	g := mustGeometry(t, Rectangle(common.Vec2{X: 100, Y: 100}, 600, 600, 4))
	line, err := BuildRacingLine(g, 60, CutOptions{Factor: 53, Distance: 100})
	require.NoError(t, err)

	inside := common.Vec2{X: 400, Y: 400}
	limit := 30 * 0.53

	for i := range g.Len() {
		switch i % 4 {
		case 0:
			// Corner: full cut toward the inside, room to the chord is ~106 px.
			assert.Equal(t, 53.0, line.Intensity[i])
			assert.InDelta(t, limit, line.Shift[i].Len(), 1e-9)
			assert.Greater(t, line.Shift[i].Dot(inside.Sub(g.Point(i))), 0.0)
			assert.InDelta(t, math.Abs(line.Shift[i].X), math.Abs(line.Shift[i].Y), 1e-9, "cut along the diagonal")
		case 1, 3:
			// Next to a corner: ramped intensity, but a straight has no room to cut.
			assert.Equal(t, 26.5, line.Intensity[i])
			assert.InDelta(t, 0, line.Shift[i].Len(), 1e-9)
		default:
			assert.Equal(t, 0.0, line.Intensity[i])
			assert.Equal(t, common.Vec2{}, line.Shift[i])
		}
	}
}

func TestRacingLineCutDistanceSpreadsIntensity(t *testing.T) {
	g := mustGeometry(t, Rectangle(common.Vec2{}, 600, 600, 4))
	line, err := BuildRacingLine(g, 60, CutOptions{Factor: 40, Distance: 300})
	require.NoError(t, err)

	// Every waypoint is within 300 of a corner.
	for i := range g.Len() {
		assert.Equal(t, 40.0, line.Intensity[i], "waypoint %d", i)
	}
}

func TestRacingLineWithoutApexKeepsCenterline(t *testing.T) {
	g := mustGeometry(t, square())
	line, err := BuildRacingLine(g, 60, CutOptions{Factor: 100, Distance: 1000})
	require.NoError(t, err)

	for i := range g.Len() {
		assert.Equal(t, g.Point(i), line.Point(i))
		assert.Equal(t, 0.0, line.Intensity[i])
	}
}

func TestRacingLineClampsFactor(t *testing.T) {
	g := mustGeometry(t, Rectangle(common.Vec2{}, 600, 600, 4))
	line, err := BuildRacingLine(g, 60, CutOptions{Factor: 250})
	require.NoError(t, err)
	assert.Equal(t, 100.0, line.Intensity[0])
	assert.InDelta(t, 30, line.Shift[0].Len(), 1e-9)
}
