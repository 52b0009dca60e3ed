package track

import (
	"math"

	"github.com/cnkei/gospline"
	"github.com/pkg/errors"

	"racing-line-mapper/internal/common"
)

// Oval returns n points on an ellipse centred on c, counter-clockwise.
func Oval(c common.Vec2, rx, ry float64, n int) []common.Vec2 {
	points := make([]common.Vec2, n)
	for i := range n {
		t := 2 * math.Pi * float64(i) / float64(n)
		points[i] = common.Vec2{X: c.X + rx*math.Cos(t), Y: c.Y + ry*math.Sin(t)}
	}
	return points
}

// Rectangle returns the corners of an axis-aligned rectangle starting at
// origin, with perEdge points per side, counter-clockwise.
func Rectangle(origin common.Vec2, w, h float64, perEdge int) []common.Vec2 {
	if perEdge < 1 {
		perEdge = 1
	}
	corners := []common.Vec2{
		origin,
		origin.Add(common.Vec2{X: w}),
		origin.Add(common.Vec2{X: w, Y: h}),
		origin.Add(common.Vec2{Y: h}),
	}

	points := make([]common.Vec2, 0, 4*perEdge)
	for k, a := range corners {
		b := corners[(k+1)%len(corners)]
		for s := range perEdge {
			f := float64(s) / float64(perEdge)
			points = append(points, a.Add(b.Sub(a).Scale(f)))
		}
	}
	return points
}

// splinePad is how many control points are repeated on each side so the
// closed spline has matching tangents at the seam.
const splinePad = 3

// Spline fits a closed cubic spline through control and samples it at
// n evenly spaced parameter values.
func Spline(control []common.Vec2, n int) ([]common.Vec2, error) {
	k := len(control)
	if k < MinWaypoints {
		return nil, errors.Wrapf(ErrTooFewWaypoints, "spline has %d control points", k)
	}
	if n < MinWaypoints {
		return nil, errors.Wrapf(ErrTooFewWaypoints, "spline sampled at %d points", n)
	}

	// Parameter t runs over control indices, padded on both ends.
	ts := make([]float64, 0, k+2*splinePad)
	xs := make([]float64, 0, k+2*splinePad)
	ys := make([]float64, 0, k+2*splinePad)
	for i := -splinePad; i < k+splinePad; i++ {
		p := control[((i%k)+k)%k]
		ts = append(ts, float64(i))
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}

	sx := gospline.NewCubicSpline(ts, xs)
	sy := gospline.NewCubicSpline(ts, ys)

	points := make([]common.Vec2, n)
	for i := range n {
		t := float64(k) * float64(i) / float64(n)
		points[i] = common.Vec2{X: sx.At(t), Y: sy.At(t)}
	}
	return points, nil
}
