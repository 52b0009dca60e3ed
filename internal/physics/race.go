package physics

import (
	"math"

	"go.uber.org/zap"

	"racing-line-mapper/internal/common"
	"racing-line-mapper/internal/track"
)

const (
	FrameRate       = 60     // Simulation ticks per second
	DefaultRounds   = 3      // Laps to finish a race
	DefaultMaxFrame = 25_000 // Frame budget before a race counts as not finished
)

// Driver is the per-tick control interface the race calls into.
type Driver interface {
	ComputeCommands(next int, pose common.Pose, velocity common.Vec2) (throttle, steering float64)
}

// RaceOptions configures a Race. Zero values fall back to defaults.
type RaceOptions struct {
	Rounds         int
	MaxFrames      int
	WaypointRadius float64 // Default: half the track width
	Logger         *zap.Logger

	// Start places the car somewhere other than waypoint 0. The first
	// target is the waypoint after the one nearest to the start.
	Start *common.Pose
}

// Result of a finished or abandoned race.
type Result struct {
	Finished bool
	Frames   int
	Time     float64 // Seconds; 0 when not finished
	LapTimes []float64
}

// Race drives one car around one track. It is not safe for concurrent use;
// run independent races in independent goroutines.
type Race struct {
	Track  *track.Geometry
	Car    *Car
	Driver Driver

	Next  int // Index of the waypoint to reach
	Round int // Completed rounds
	Frame int

	// Lap timing, in frames
	CurrentLapTime int
	LastLapTime    int
	BestLapTime    int

	opts     RaceOptions
	lapTimes []float64
	log      *zap.Logger
}

// NewRace places the car on waypoint 0 facing waypoint 1, or at opts.Start.
func NewRace(center *track.Geometry, width float64, driver Driver, opts RaceOptions) *Race {
	if opts.Rounds <= 0 {
		opts.Rounds = DefaultRounds
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = DefaultMaxFrame
	}
	if opts.WaypointRadius <= 0 {
		opts.WaypointRadius = width / 2
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	dir := center.VectorToNext(0)
	pose := common.Pose{Position: center.Point(0), Heading: math.Atan2(dir.Y, dir.X)}
	next := 1
	if opts.Start != nil {
		pose = *opts.Start
		nearest, _ := center.Closest(pose.Position)
		next = center.Nxt(nearest)
	}

	return &Race{
		Track:  center,
		Car:    NewCar(pose),
		Driver: driver,
		Next:   next,
		opts:   opts,
		log:    log,
	}
}

// Done reports whether all rounds are complete.
func (r *Race) Done() bool {
	return r.Round >= r.opts.Rounds
}

// Step advances the race by one frame. It returns false once the race is
// done or the frame budget is used up.
func (r *Race) Step() bool {
	if r.Done() || r.Frame >= r.opts.MaxFrames {
		return false
	}

	throttle, steering := r.Driver.ComputeCommands(r.Next, r.Car.Pose(), r.Car.Velocity)
	r.Car.Update(1.0/FrameRate, throttle, steering)
	r.Frame++
	r.CurrentLapTime++

	if r.Car.Position.Dist(r.Track.Point(r.Next)) <= r.opts.WaypointRadius {
		r.advance()
	}
	return !r.Done()
}

func (r *Race) advance() {
	reached := r.Next
	r.Next = r.Track.Nxt(reached)
	if reached != 0 {
		return
	}

	// Check for Lap Completion
	r.Round++
	r.LastLapTime = r.CurrentLapTime
	if r.BestLapTime == 0 || r.LastLapTime < r.BestLapTime {
		r.BestLapTime = r.LastLapTime
	}
	r.lapTimes = append(r.lapTimes, float64(r.LastLapTime)/FrameRate)
	r.CurrentLapTime = 0

	r.log.Debug("lap complete",
		zap.Int("round", r.Round),
		zap.Float64("lap_time", float64(r.LastLapTime)/FrameRate),
		zap.Int("frame", r.Frame))
}

// Run steps the race until it finishes or runs out of frames.
func (r *Race) Run() Result {
	for r.Step() {
	}

	res := Result{
		Finished: r.Done(),
		Frames:   r.Frame,
		LapTimes: append([]float64(nil), r.lapTimes...),
	}
	if res.Finished {
		res.Time = float64(r.Frame) / FrameRate
	} else {
		r.log.Debug("race not finished",
			zap.Int("frames", r.Frame),
			zap.Int("round", r.Round),
			zap.Int("next", r.Next))
	}
	return res
}
