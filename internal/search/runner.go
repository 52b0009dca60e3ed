package search

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"racing-line-mapper/internal/agent"
	"racing-line-mapper/internal/physics"
	"racing-line-mapper/internal/track"
)

// Options for a search run.
type Options struct {
	Workers   int // Default: runtime.NumCPU()
	Rounds    int
	MaxFrames int
	Logger    *zap.Logger
}

// Run is the outcome of one configuration over every track.
// A zero time means the race on that track did not finish.
type Run struct {
	Index  int
	Config agent.Config
	Times  []float64
}

// Finished reports whether every race of the run finished.
func (r Run) Finished() bool {
	for _, t := range r.Times {
		if t == 0 {
			return false
		}
	}
	return true
}

// RaceAll runs one full race per track with cfg. Each race gets its own
// track copy, controller and car.
func RaceAll(tracks []*track.Track, cfg agent.Config, opts Options) ([]float64, error) {
	times := make([]float64, len(tracks))
	for i, t := range tracks {
		t = t.Clone()
		center, err := t.Geometry()
		if err != nil {
			return nil, err
		}
		ctrl, err := agent.NewController(t.Points(), t.Width, cfg)
		if err != nil {
			return nil, err
		}
		race := physics.NewRace(center, t.Width, ctrl, physics.RaceOptions{
			Rounds:    opts.Rounds,
			MaxFrames: opts.MaxFrames,
			Logger:    opts.Logger,
		})
		times[i] = race.Run().Time
	}
	return times, nil
}

// RunAll races every configuration on a bounded worker pool and returns the
// runs in configuration order once all of them are done. Cancelling ctx
// stops scheduling new runs; runs already started still complete.
func RunAll(ctx context.Context, tracks []*track.Track, configs []agent.Config, opts Options) ([]Run, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	runs := make([]Run, len(configs))
	total := len(configs)
	var count atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, cfg := range configs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			times, err := RaceAll(tracks, cfg, Options{Rounds: opts.Rounds, MaxFrames: opts.MaxFrames})
			if err != nil {
				return err
			}
			runs[i] = Run{Index: i, Config: cfg, Times: times}

			done := count.Add(1)
			log.Info("run complete",
				zap.String("progress", progress(done, total)),
				zap.Int("run", i),
				zap.Float64s("times", times))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Runs never scheduled because ctx was cancelled have no times.
	return lo.Filter(runs, func(r Run, _ int) bool {
		return r.Times != nil
	}), nil
}
