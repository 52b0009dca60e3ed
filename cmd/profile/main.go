package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"racing-line-mapper/internal/agent"
	"racing-line-mapper/internal/logging"
	"racing-line-mapper/internal/track"
)

var (
	ColorLimit = color.RGBA{200, 30, 30, 255}
	ColorShift = color.RGBA{30, 90, 200, 255}
	ColorApex  = color.RGBA{20, 20, 20, 255}
)

func main() {
	app := &cli.App{
		Name:  "profile",
		Usage: "plot speed limits and corner cuts along a track's racing line",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "track", Value: "assets/tracks/oval.toml", Usage: "track file"},
			&cli.StringFlag{Name: "config", Usage: "controller config (defaults if empty)"},
			&cli.StringFlag{Name: "out", Value: "profile.png", Usage: "output image (.png, .svg, .pdf)"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := logging.New("profile", false)
	defer log.Sync() //nolint:errcheck

	t, err := track.Load(c.String("track"))
	if err != nil {
		return err
	}
	cfg := agent.DefaultConfig()
	if path := c.String("config"); path != "" {
		if cfg, err = agent.LoadConfig(path); err != nil {
			return err
		}
	}

	ctrl, err := agent.NewController(t.Points(), t.Width, cfg)
	if err != nil {
		return err
	}

	p, err := profilePlot(t.Name, ctrl)
	if err != nil {
		return err
	}
	out := c.String("out")
	if err := p.Save(10*vg.Inch, 4*vg.Inch, out); err != nil {
		return err
	}

	lo, hi := ctrl.SpeedLimits().Range()
	log.Info("profile written",
		zap.String("out", out),
		zap.Int("waypoints", ctrl.RacingLine().Len()),
		zap.Float64("min_limit", lo),
		zap.Float64("max_limit", hi))
	return nil
}

// profilePlot draws speed limit and shift length against distance along the
// racing line, with apexes marked on the shift curve.
func profilePlot(name string, ctrl *agent.Controller) (*plot.Plot, error) {
	line := ctrl.RacingLine()
	limits := ctrl.SpeedLimits()

	n := line.Len()
	limitXY := make(plotter.XYs, n)
	shiftXY := make(plotter.XYs, n)
	var apexXY plotter.XYs

	s := 0.0
	for i := range n {
		limitXY[i] = plotter.XY{X: s, Y: limits[i]}
		shiftXY[i] = plotter.XY{X: s, Y: line.Shift[i].Len()}
		if ctrl.Centerline().IsApex(i) {
			apexXY = append(apexXY, shiftXY[i])
		}
		s += line.DistToNext(i)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: speed limits and corner cuts", name)
	p.X.Label.Text = "distance along racing line (px)"
	p.Y.Label.Text = "px/s | px"
	p.Add(plotter.NewGrid())

	limitLine, err := plotter.NewLine(limitXY)
	if err != nil {
		return nil, err
	}
	limitLine.Color = ColorLimit

	shiftLine, err := plotter.NewLine(shiftXY)
	if err != nil {
		return nil, err
	}
	shiftLine.Color = ColorShift

	p.Add(limitLine, shiftLine)
	p.Legend.Add("speed limit", limitLine)
	p.Legend.Add("shift", shiftLine)

	if len(apexXY) > 0 {
		apex, err := plotter.NewScatter(apexXY)
		if err != nil {
			return nil, err
		}
		apex.Color = ColorApex
		p.Add(apex)
		p.Legend.Add("apex", apex)
	}
	return p, nil
}
