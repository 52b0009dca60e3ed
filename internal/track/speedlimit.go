package track

import "math"

// MinTurnAngle is the smallest turn angle, in degrees, used when deriving
// speed limits. Flatter waypoints are treated as this angle.
const MinTurnAngle = 1.0

// SpeedLimits holds the safe cornering speed for each racing-line waypoint.
type SpeedLimits []float64

// ComputeSpeedLimits derives offset + factor * DistClosest(i) / |TurnAngle(i)|
// for every waypoint of line.
func ComputeSpeedLimits(line *Geometry, factor, offset float64) SpeedLimits {
	limits := make(SpeedLimits, line.Len())
	for i := range limits {
		angle := math.Max(math.Abs(line.TurnAngle(i)), MinTurnAngle)
		limits[i] = offset + factor*line.DistClosest(i)/angle
	}
	return limits
}

// At returns the limit of waypoint i, wrapping around.
func (s SpeedLimits) At(i int) float64 {
	n := len(s)
	i %= n
	if i < 0 {
		i += n
	}
	return s[i]
}

// Range returns the lowest and highest limit.
func (s SpeedLimits) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range s {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
