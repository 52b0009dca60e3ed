package main

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"racing-line-mapper/internal/agent"
	"racing-line-mapper/internal/common"
	"racing-line-mapper/internal/logging"
	"racing-line-mapper/internal/physics"
	"racing-line-mapper/internal/track"
)

// ============================================================================
// CONFIGURATION - Adjust these values to customize the viewer
// ============================================================================

// Render window dimensions
const (
	WindowWidth  = 1200
	WindowHeight = 800
)

// Simulation settings
const (
	FastForwardMultiplier = 20   // Ticks per frame in fast mode (1 = real-time)
	ViewScaleMargin       = 0.95 // Margin for fitting track in window (0.95 = 5% padding)
	TraceSampleTicks      = 5    // Record the car position every N ticks
	LapHistoryLen         = 4
)

// Track colors
var (
	ColorBackground = color.RGBA{20, 20, 20, 255}
	ColorRoad       = color.RGBA{80, 80, 80, 255}
	ColorCenterline = color.RGBA{200, 200, 200, 90}
	ColorRacingLine = color.RGBA{50, 155, 255, 200}
	ColorApex       = color.RGBA{255, 140, 0, 255}
)

// Visualization colors
var (
	ColorCar         = color.RGBA{255, 0, 0, 255}   // Red
	ColorCarHeading  = color.RGBA{255, 255, 0, 255} // Yellow
	ColorAim         = color.RGBA{0, 255, 0, 200}   // Green
	ColorBrake       = color.RGBA{255, 0, 0, 200}   // Red
	ColorBestLap     = color.RGBA{50, 255, 50, 150} // Light Green
	ColorCurrentLap  = color.RGBA{255, 255, 0, 200} // Yellow
	ColorLapHistory1 = color.RGBA{255, 0, 255, 255} // Magenta (most recent)
	ColorLapHistory2 = color.RGBA{190, 0, 190, 150} // Faded Magenta
	ColorLapHistory3 = color.RGBA{130, 0, 130, 70}  // More Faded
	ColorLapHistory4 = color.RGBA{70, 0, 70, 20}    // Most Faded
)

// ============================================================================

type Game struct {
	Track      *track.Track
	Controller *agent.Controller
	Race       *physics.Race
	FastMode   bool
	Log        *zap.Logger

	// Analytics & Visuals
	BestLapPath    []common.Vec2   // Path of the best lap
	CurrentLapPath []common.Vec2   // Path of current lap
	LapHistory     [][]common.Vec2 // Paths of last laps
	PreviousRound  int             // To detect lap change

	// Rendering Scale
	ViewScale   float32
	ViewOffsetX float32
	ViewOffsetY float32
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.FastMode = !g.FastMode
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}

	ticks := 1
	if g.FastMode {
		ticks = FastForwardMultiplier
	}

	for range ticks {
		if !g.step() {
			break
		}
	}
	return nil
}

func (g *Game) step() bool {
	running := g.Race.Step()

	if g.Race.Frame%TraceSampleTicks == 0 {
		g.CurrentLapPath = append(g.CurrentLapPath, g.Race.Car.Position)
	}

	if g.Race.Round > g.PreviousRound {
		// Completed a lap!
		if g.Race.LastLapTime == g.Race.BestLapTime {
			g.BestLapPath = append([]common.Vec2(nil), g.CurrentLapPath...)
		}

		g.LapHistory = append([][]common.Vec2{g.CurrentLapPath}, g.LapHistory...)
		if len(g.LapHistory) > LapHistoryLen {
			g.LapHistory = g.LapHistory[:LapHistoryLen]
		}

		g.CurrentLapPath = nil
		g.PreviousRound = g.Race.Round
		g.Log.Info("lap", zap.Int("round", g.Race.Round), zap.Float64("seconds", seconds(g.Race.LastLapTime)))
	}
	return running
}

func (g *Game) reset() {
	g.Race = physics.NewRace(g.Controller.Centerline(), g.Track.Width, g.Controller, physics.RaceOptions{
		Rounds:    math.MaxInt32,
		MaxFrames: math.MaxInt32,
		Logger:    g.Log,
	})
	g.CurrentLapPath = nil
	g.PreviousRound = 0
}

// toScreen transforms world coordinates to screen coordinates.
func (g *Game) toScreen(p common.Vec2) (float32, float32) {
	return float32(p.X)*g.ViewScale + g.ViewOffsetX, float32(p.Y)*g.ViewScale + g.ViewOffsetY
}

func (g *Game) strokeLoop(screen *ebiten.Image, geo *track.Geometry, width float32, clr color.Color) {
	for i := range geo.Len() {
		x1, y1 := g.toScreen(geo.Point(i))
		x2, y2 := g.toScreen(geo.Point(i + 1))
		vector.StrokeLine(screen, x1, y1, x2, y2, width, clr, true)
	}
}

func (g *Game) strokePath(screen *ebiten.Image, path []common.Vec2, width float32, clr color.Color) {
	for j := 0; j+1 < len(path); j++ {
		x1, y1 := g.toScreen(path[j])
		x2, y2 := g.toScreen(path[j+1])
		vector.StrokeLine(screen, x1, y1, x2, y2, width, clr, true)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)

	center := g.Controller.Centerline()
	line := g.Controller.RacingLine()

	// Road: thick stroke along the centerline plus round joints
	roadWidth := float32(g.Track.Width) * g.ViewScale
	g.strokeLoop(screen, center, roadWidth, ColorRoad)
	for i := range center.Len() {
		x, y := g.toScreen(center.Point(i))
		vector.FillCircle(screen, x, y, roadWidth/2, ColorRoad, true)
	}
	g.strokeLoop(screen, center, 1, ColorCenterline)
	g.strokeLoop(screen, line.Geometry, 2, ColorRacingLine)

	// Waypoints colored by speed limit, apexes highlighted
	lo, hi := g.Controller.SpeedLimits().Range()
	for i := range line.Len() {
		x, y := g.toScreen(line.Point(i))
		clr := limitColor(g.Controller.SpeedLimits()[i], lo, hi)
		if center.IsApex(i) {
			clr = ColorApex
		}
		vector.FillCircle(screen, x, y, 3, clr, true)
	}

	// Lap traces
	g.strokePath(screen, g.BestLapPath, 3, ColorBestLap)
	traceColors := []color.RGBA{ColorLapHistory1, ColorLapHistory2, ColorLapHistory3, ColorLapHistory4}
	for i, path := range g.LapHistory {
		g.strokePath(screen, path, 2, traceColors[i])
	}
	g.strokePath(screen, g.CurrentLapPath, 2, ColorCurrentLap)

	g.drawCar(screen)
	g.drawHUD(screen)
}

func (g *Game) drawCar(screen *ebiten.Image) {
	car := g.Race.Car
	diag := g.Controller.Diagnostics()

	// Aim and brake targets
	cx, cy := g.toScreen(car.Position)
	if diag.Aim >= 0 {
		ax, ay := g.toScreen(g.Controller.RacingLine().Point(diag.Aim))
		vector.StrokeLine(screen, cx, cy, ax, ay, 1, ColorAim, true)
	}
	if diag.Brake >= 0 {
		bx, by := g.toScreen(g.Controller.RacingLine().Point(diag.Brake))
		vector.StrokeCircle(screen, bx, by, 8, 2, ColorBrake, true)
	}

	// Draw Car as Rotated Rectangle
	pose := car.Pose()
	halfW := car.Width / 2
	halfL := car.Length / 2
	corners := [4]common.Vec2{
		{X: halfL, Y: halfW},
		{X: halfL, Y: -halfW},
		{X: -halfL, Y: -halfW},
		{X: -halfL, Y: halfW},
	}

	var path vector.Path
	for i, local := range corners {
		sx, sy := g.toScreen(pose.ToWorld(local))
		if i == 0 {
			path.MoveTo(sx, sy)
		} else {
			path.LineTo(sx, sy)
		}
	}
	path.Close()

	var cs ebiten.ColorScale
	cs.ScaleWithColor(ColorCar)
	vector.FillPath(screen, &path, nil, &vector.DrawPathOptions{
		AntiAlias:  true,
		ColorScale: cs,
	})

	// Draw Heading (Slightly longer than car)
	tipX, tipY := g.toScreen(pose.Position.Add(pose.Forward().Scale(halfL + 5)))
	vector.StrokeLine(screen, cx, cy, tipX, tipY, 2, ColorCarHeading, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, 160, 200, color.RGBA{0, 0, 0, 180}, true)

	car := g.Race.Car
	center := g.Controller.Centerline()
	nearest, _ := center.Closest(car.Position)

	msg := "STATUS MONITOR\n"
	msg += "----------------\n"
	msg += fmt.Sprintf("Track:   %s\n", g.Track.Name)
	msg += fmt.Sprintf("Laps:    %d\n", g.Race.Round)
	msg += fmt.Sprintf("Next WP: %d\n", g.Race.Next)
	msg += fmt.Sprintf("Current: %.2fs\n", seconds(g.Race.CurrentLapTime))
	msg += fmt.Sprintf("Last:    %.2fs\n", seconds(g.Race.LastLapTime))
	msg += fmt.Sprintf("Best:    %.2fs\n", seconds(g.Race.BestLapTime))
	msg += fmt.Sprintf("Speed:   %.1f\n", car.Speed())
	msg += fmt.Sprintf("Heading: %.0f deg\n", common.Deg(car.Heading))
	msg += fmt.Sprintf("Nearest: %d\n", nearest)
	msg += fmt.Sprintf("Offset:  %+.1f\n", center.Offset(nearest, car.Position))
	if g.FastMode {
		msg += "[Fast]"
	} else {
		msg += "[Real-time]"
	}
	msg += "\nS = speed, R = reset"
	ebitenutil.DebugPrint(screen, msg)

	// Agent panel (Top Right)
	panelW := float32(160)
	targetX := float32(WindowWidth) - panelW - 10
	vector.FillRect(screen, targetX, 0, panelW, 110, color.RGBA{0, 0, 0, 180}, true)

	specs := "AGENT\n"
	specs += "------------\n"
	specs += g.Controller.DebugInfoStr()
	ebitenutil.DebugPrintAt(screen, specs, int(targetX)+10, 0)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return WindowWidth, WindowHeight
}

func seconds(frames int) float64 {
	return float64(frames) / physics.FrameRate
}

// limitColor shades from red (slowest limit) to green (fastest).
func limitColor(v, lo, hi float64) color.RGBA {
	f := 0.0
	if hi > lo {
		// Log scale: straight waypoints have limits orders of magnitude above corners.
		f = math.Log1p(v-lo) / math.Log1p(hi-lo)
	}
	return color.RGBA{uint8(255 * (1 - f)), uint8(255 * f), 0, 255}
}

// fitView computes the scale and offset that fit all points in the window.
func fitView(points []common.Vec2, margin float64) (scale, offX, offY float32) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X-margin), math.Max(maxX, p.X+margin)
		minY, maxY = math.Min(minY, p.Y-margin), math.Max(maxY, p.Y+margin)
	}

	// 1. Calculate Scale to fit
	winW, winH := float64(WindowWidth), float64(WindowHeight)
	s := math.Min(winW/(maxX-minX), winH/(maxY-minY)) * ViewScaleMargin

	// 2. Center the track
	offX = float32((winW-(maxX-minX)*s)/2 - minX*s)
	offY = float32((winH-(maxY-minY)*s)/2 - minY*s)
	return float32(s), offX, offY
}

func main() {
	app := &cli.App{
		Name:  "app",
		Usage: "watch the racing-line agent drive a track",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "track", Value: "assets/tracks/oval.toml", Usage: "track file"},
			&cli.StringFlag{Name: "config", Usage: "controller config (defaults if empty)"},
			&cli.BoolFlag{Name: "debug", Usage: "debug logging"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := logging.New("app", c.Bool("debug"))
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
	lo, hi := ctrl.SpeedLimits().Range()
	log.Info("track loaded",
		zap.String("name", t.Name),
		zap.Int("waypoints", len(t.Waypoints)),
		zap.Float64("lap_length", ctrl.Centerline().TotalLen()),
		zap.Float64("min_limit", lo),
		zap.Float64("max_limit", hi))

	scale, offX, offY := fitView(t.Points(), t.Width)

	game := &Game{
		Track:       t,
		Controller:  ctrl,
		Log:         log,
		ViewScale:   scale,
		ViewOffsetX: offX,
		ViewOffsetY: offY,
	}
	game.reset()

	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowTitle("Racing Line Mapper")
	return ebiten.RunGame(game)
}
