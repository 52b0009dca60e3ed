package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"racing-line-mapper/internal/common"
	"racing-line-mapper/internal/logging"
	"racing-line-mapper/internal/track"
)

// Sample track layout
const (
	TrackWidth    = 60.0
	OvalPoints    = 32
	SquareSide    = 600.0
	SquarePerSide = 4
	SplinePoints  = 48
)

// splineControl is a twisty circuit with a hairpin and an S-bend.
var splineControl = []common.Vec2{
	{X: 150, Y: 150}, {X: 600, Y: 120}, {X: 1000, Y: 180}, {X: 1050, Y: 420},
	{X: 800, Y: 480}, {X: 700, Y: 650}, {X: 950, Y: 720}, {X: 900, Y: 820},
	{X: 450, Y: 780}, {X: 380, Y: 560}, {X: 180, Y: 520}, {X: 100, Y: 330},
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "gen-track",
		Usage: "write the sample oval, square and spline tracks",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "assets/tracks", Usage: "output directory"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	log := logging.New("gen-track", false)
	defer log.Sync() //nolint:errcheck

	tracks, err := sampleTracks()
	if err != nil {
		return err
	}

	dir := c.String("dir")
	for _, t := range tracks {
		path := filepath.Join(dir, t.Name+".toml")
		if err := track.Save(path, t); err != nil {
			return err
		}
		log.Info("track written", zap.String("path", path), zap.Int("waypoints", len(t.Waypoints)))
	}
	return nil
}

// sampleTracks builds the tracks checked in under assets/tracks.
func sampleTracks() ([]*track.Track, error) {
	spline, err := track.Spline(splineControl, SplinePoints)
	if err != nil {
		return nil, err
	}

	return []*track.Track{
		track.FromPoints("oval", TrackWidth, track.Oval(common.Vec2{X: 600, Y: 400}, 500, 300, OvalPoints)),
		track.FromPoints("square", TrackWidth, track.Rectangle(common.Vec2{X: 100, Y: 100}, SquareSide, SquareSide, SquarePerSide)),
		track.FromPoints("spline", TrackWidth, spline),
	}, nil
}
