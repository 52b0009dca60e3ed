package track

import (
	"github.com/pkg/errors"

	"racing-line-mapper/internal/common"
)

// Track is a static track definition as stored on disk.
type Track struct {
	Name      string       `toml:"name"`
	Width     float64      `toml:"width"`     // Road width in pixels
	Waypoints [][2]float64 `toml:"waypoints"` // Centerline, in driving order
}

// Validate checks that the track can be turned into a Geometry.
func (t *Track) Validate() error {
	if t.Width <= 0 {
		return errors.Errorf("track %q: width must be positive, got %v", t.Name, t.Width)
	}
	if len(t.Waypoints) < MinWaypoints {
		return errors.Wrapf(ErrTooFewWaypoints, "track %q has %d", t.Name, len(t.Waypoints))
	}
	return nil
}

// Points converts the stored waypoints to vectors.
func (t *Track) Points() []common.Vec2 {
	out := make([]common.Vec2, len(t.Waypoints))
	for i, wp := range t.Waypoints {
		out[i] = common.Vec2{X: wp[0], Y: wp[1]}
	}
	return out
}

// Geometry builds the centerline geometry of the track.
func (t *Track) Geometry() (*Geometry, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return NewGeometry(t.Points())
}

// Clone returns a deep copy, so concurrent races never share waypoint storage.
func (t *Track) Clone() *Track {
	c := *t
	c.Waypoints = make([][2]float64, len(t.Waypoints))
	copy(c.Waypoints, t.Waypoints)
	return &c
}

// FromPoints builds a Track from vectors.
func FromPoints(name string, width float64, points []common.Vec2) *Track {
	wps := make([][2]float64, len(points))
	for i, p := range points {
		wps[i] = [2]float64{p.X, p.Y}
	}
	return &Track{Name: name, Width: width, Waypoints: wps}
}
