package track

import (
	"math"

	"github.com/pkg/errors"

	"racing-line-mapper/internal/common"
)

// MinWaypoints is the smallest track for which turn angles are defined.
const MinWaypoints = 3

// ErrTooFewWaypoints is returned when a track has fewer than MinWaypoints points.
var ErrTooFewWaypoints = errors.New("track needs at least 3 waypoints")

// Geometry is a closed loop of waypoints with its per-point derived values.
// All index arguments wrap around, negative ones included.
// A Geometry is never mutated after NewGeometry returns.
type Geometry struct {
	points  []common.Vec2
	vectors []common.Vec2 // points[i+1] - points[i]
	dists   []float64     // |vectors[i]|
	angles  []float64     // Degrees, (-180, 180]
	apex    []bool
}

// NewGeometry copies points and precomputes vectors, distances, turn angles
// and apex flags.
func NewGeometry(points []common.Vec2) (*Geometry, error) {
	n := len(points)
	if n < MinWaypoints {
		return nil, errors.Wrapf(ErrTooFewWaypoints, "got %d", n)
	}

	g := &Geometry{
		points:  make([]common.Vec2, n),
		vectors: make([]common.Vec2, n),
		dists:   make([]float64, n),
		angles:  make([]float64, n),
		apex:    make([]bool, n),
	}
	copy(g.points, points)

	for i := range n {
		g.vectors[i] = g.points[(i+1)%n].Sub(g.points[i])
		g.dists[i] = g.vectors[i].Len()
	}
	for i := range n {
		g.angles[i] = g.vectors[g.Prv(i)].AngleTo(g.vectors[i])
	}
	for i := range n {
		g.apex[i] = g.detectApex(i)
	}

	return g, nil
}

// detectApex reports whether |turn(i)| is strictly sharper than every
// neighbor bending the same way.
func (g *Geometry) detectApex(i int) bool {
	a := g.angles[i]
	if a == 0 {
		return false
	}
	for _, j := range [2]int{g.Prv(i), g.Nxt(i)} {
		b := g.angles[j]
		if sameSign(a, b) && math.Abs(b) >= math.Abs(a) {
			return false
		}
	}
	return true
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

// Len returns the number of waypoints.
func (g *Geometry) Len() int {
	return len(g.points)
}

// Wrap maps any integer onto [0, Len).
func (g *Geometry) Wrap(i int) int {
	n := len(g.points)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Nxt returns the index after i.
func (g *Geometry) Nxt(i int) int {
	return g.Wrap(i + 1)
}

// Prv returns the index before i.
func (g *Geometry) Prv(i int) int {
	return g.Wrap(i - 1)
}

// Point returns waypoint i.
func (g *Geometry) Point(i int) common.Vec2 {
	return g.points[g.Wrap(i)]
}

// Points returns a copy of all waypoints.
func (g *Geometry) Points() []common.Vec2 {
	out := make([]common.Vec2, len(g.points))
	copy(out, g.points)
	return out
}

// VectorToNext returns Point(i+1) - Point(i).
func (g *Geometry) VectorToNext(i int) common.Vec2 {
	return g.vectors[g.Wrap(i)]
}

// DistToNext returns the length of VectorToNext(i).
func (g *Geometry) DistToNext(i int) float64 {
	return g.dists[g.Wrap(i)]
}

// DistClosest returns the shorter of the two segments touching waypoint i.
func (g *Geometry) DistClosest(i int) float64 {
	return math.Min(g.DistToNext(i-1), g.DistToNext(i))
}

// TurnAngle returns the signed angle in degrees from the incoming to the
// outgoing segment at waypoint i. Positive turns left.
func (g *Geometry) TurnAngle(i int) float64 {
	return g.angles[g.Wrap(i)]
}

// IsApex reports whether waypoint i is the sharpest point of its bend.
func (g *Geometry) IsApex(i int) bool {
	return g.apex[g.Wrap(i)]
}

// NextApex scans forward from i (exclusive) for the first apex.
// The scan stops after one full circle; ok is false if none exists.
func (g *Geometry) NextApex(i int) (int, bool) {
	n := len(g.points)
	for step := 1; step <= n; step++ {
		j := g.Wrap(i + step)
		if g.apex[j] {
			return j, true
		}
	}
	return -1, false
}

// PrevApex scans backward from i (exclusive) for the first apex.
func (g *Geometry) PrevApex(i int) (int, bool) {
	n := len(g.points)
	for step := 1; step <= n; step++ {
		j := g.Wrap(i - step)
		if g.apex[j] {
			return j, true
		}
	}
	return -1, false
}

// DistTo accumulates segment lengths walking forward from i to j.
func (g *Geometry) DistTo(i, j int) float64 {
	i, j = g.Wrap(i), g.Wrap(j)
	d := 0.0
	for k := i; k != j; k = g.Nxt(k) {
		d += g.dists[k]
	}
	return d
}

// TotalLen returns the length of one full lap.
func (g *Geometry) TotalLen() float64 {
	total := 0.0
	for _, d := range g.dists {
		total += d
	}
	return total
}

// Closest returns the index of the waypoint nearest to pos and its distance.
func (g *Geometry) Closest(pos common.Vec2) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for i, p := range g.points {
		if d := p.Dist(pos); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// Offset returns the signed lateral distance of pos from the segment leaving
// waypoint i, positive to the left of the driving direction.
func (g *Geometry) Offset(i int, pos common.Vec2) float64 {
	dir := g.VectorToNext(i).Normalize()
	return dir.Cross(pos.Sub(g.Point(i)))
}
