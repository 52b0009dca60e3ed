package track

import (
	"math"

	"github.com/pkg/errors"

	"racing-line-mapper/internal/common"
)

// CutOptions controls how far the racing line cuts toward the inside of bends.
type CutOptions struct {
	Factor   float64 // Percent of the half width usable at an apex, 0..100
	Distance float64 // Track distance around an apex that gets the full cut
}

// RacingLine is the shifted copy of a centerline the controllers steer along.
type RacingLine struct {
	*Geometry

	Intensity []float64     // Cut intensity per waypoint, 0..Factor
	Shift     []common.Vec2 // Offset applied to each centerline waypoint
}

// BuildRacingLine shifts every waypoint of center toward the inside of its
// bend. The shift is bounded by width/2 * intensity/100 and by the distance
// to the chord through the neighbours, so it never leaves the road.
func BuildRacingLine(center *Geometry, width float64, opts CutOptions) (*RacingLine, error) {
	if width <= 0 {
		return nil, errors.Errorf("track width must be positive, got %v", width)
	}

	intensity := cutIntensity(center, opts)
	halfWidth := width / 2

	n := center.Len()
	shifted := make([]common.Vec2, n)
	shift := make([]common.Vec2, n)
	for i := range n {
		shift[i] = cutShift(center, i, halfWidth*intensity[i]/100)
		shifted[i] = center.Point(i).Add(shift[i])
	}

	g, err := NewGeometry(shifted)
	if err != nil {
		return nil, err
	}

	return &RacingLine{Geometry: g, Intensity: intensity, Shift: shift}, nil
}

// cutIntensity assigns the full factor around apexes and ramps it down over
// one waypoint on either side.
func cutIntensity(g *Geometry, opts CutOptions) []float64 {
	factor := math.Max(0, math.Min(100, opts.Factor))
	n := g.Len()

	raw := make([]float64, n)
	for i := range n {
		if nearApex(g, i, opts.Distance) {
			raw[i] = factor
		}
	}

	out := make([]float64, n)
	for i := range n {
		if raw[i] > 0 {
			out[i] = raw[i]
			continue
		}
		out[i] = 0.5 * math.Max(raw[g.Prv(i)], raw[g.Nxt(i)])
	}
	return out
}

func nearApex(g *Geometry, i int, span float64) bool {
	if g.IsApex(i) {
		return true
	}
	if prev, ok := g.PrevApex(i); ok && g.DistTo(prev, i) <= span {
		return true
	}
	if next, ok := g.NextApex(i); ok && g.DistTo(i, next) <= span {
		return true
	}
	return false
}

// cutShift projects waypoint i onto the chord through its neighbours and
// returns the move toward that chord, capped at limit.
func cutShift(g *Geometry, i int, limit float64) common.Vec2 {
	if limit <= 0 {
		return common.Vec2{}
	}

	prev := g.Point(i - 1)
	p := g.Point(i)
	in := g.VectorToNext(i - 1)
	dir := in.Add(g.VectorToNext(i))

	dd := dir.Dot(dir)
	if dd == 0 {
		return common.Vec2{}
	}

	projected := prev.Add(dir.Scale(in.Dot(dir) / dd))
	residual := projected.Sub(p)
	room := residual.Len()
	if room == 0 {
		return common.Vec2{}
	}

	return residual.Normalize().Scale(math.Min(limit, room))
}
