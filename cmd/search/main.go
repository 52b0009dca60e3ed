package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"racing-line-mapper/internal/agent"
	"racing-line-mapper/internal/logging"
	"racing-line-mapper/internal/search"
	"racing-line-mapper/internal/track"
)

func main() {
	app := &cli.App{
		Name:  "search",
		Usage: "race every combination of tuning constants and rank the results",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "grid", Value: "assets/search.toml", Usage: "grid file with tracks and parameter ranges"},
			&cli.StringFlag{Name: "config", Usage: "base controller config; parameters without a range keep its values"},
			&cli.IntFlag{Name: "workers", Usage: "parallel races (overrides the grid file)"},
			&cli.BoolFlag{Name: "debug", Usage: "log every lap"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := logging.New("search", c.Bool("debug"))
	defer log.Sync() //nolint:errcheck

	grid, err := search.LoadGrid(c.String("grid"))
	if err != nil {
		return err
	}
	tracks, err := track.LoadAll(grid.Tracks)
	if err != nil {
		return err
	}

	base := agent.DefaultConfig()
	if path := c.String("config"); path != "" {
		if base, err = agent.LoadConfig(path); err != nil {
			return err
		}
	}

	configs, err := grid.Expand(base)
	if err != nil {
		return err
	}

	workers := grid.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}
	log.Info("starting search", zap.Int("games", len(configs)), zap.Int("tracks", len(tracks)), zap.Int("workers", workers))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runs, err := search.RunAll(ctx, tracks, configs, search.Options{
		Workers:   workers,
		Rounds:    grid.Rounds,
		MaxFrames: grid.MaxFrames,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		log.Warn("search interrupted, results are partial")
	}

	finished := search.Finished(runs)
	log.Info("all done", zap.Int("finished", len(finished)), zap.Int("total", len(runs)))

	params := grid.Params()
	out := c.App.Writer
	for i, t := range tracks {
		search.WriteTrackTable(out, fmt.Sprintf("TRACK %d: %s", i, t.Name), params, search.TopForTrack(finished, i, grid.Top))
	}
	if len(grid.BenchmarkTimes) > 0 {
		search.WriteRelativeTable(out, "RELATIVE RESULTS", params, search.TopRelative(finished, grid.BenchmarkTimes, 2*grid.Top))
	}
	return nil
}
