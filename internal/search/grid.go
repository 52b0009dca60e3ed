package search

import (
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"racing-line-mapper/internal/agent"
)

// Range is a half-open integer range, like Python's range(start, stop, step).
type Range struct {
	Start int `toml:"start"`
	Stop  int `toml:"stop"`
	Step  int `toml:"step"`
}

// Values lists the range's values.
func (r Range) Values() ([]float64, error) {
	step := r.Step
	if step == 0 {
		step = 1
		if r.Stop < r.Start {
			step = -1
		}
	}
	var out []float64
	for v := r.Start; (step > 0 && v < r.Stop) || (step < 0 && v > r.Stop); v += step {
		out = append(out, float64(v))
	}
	if len(out) == 0 {
		return nil, errors.Errorf("range %d..%d step %d is empty", r.Start, r.Stop, step)
	}
	return out, nil
}

// Grid describes one parameter search.
type Grid struct {
	Workers        int              `toml:"workers"`
	Rounds         int              `toml:"rounds"`
	MaxFrames      int              `toml:"max_frames"`
	Top            int              `toml:"top"`
	Tracks         []string         `toml:"tracks"`
	BenchmarkTimes []float64        `toml:"benchmark_times"`
	Ranges         map[string]Range `toml:"ranges"`
}

// setters maps TOML parameter names to Config fields.
var setters = map[string]func(*agent.Config, float64){
	"effective_deceleration": func(c *agent.Config, v float64) { c.EffectiveDeceleration = v },
	"steer_distance_limit":   func(c *agent.Config, v float64) { c.SteerDistanceLimit = v },
	"steer_angle_limit":      func(c *agent.Config, v float64) { c.SteerAngleLimit = v },
	"speed_limit_factor":     func(c *agent.Config, v float64) { c.SpeedLimitFactor = v },
	"speed_limit_offset":     func(c *agent.Config, v float64) { c.SpeedLimitOffset = v },
	"corner_cut_factor":      func(c *agent.Config, v float64) { c.CornerCutFactor = v },
	"corner_cut_distance":    func(c *agent.Config, v float64) { c.CornerCutDistance = v },
	"steering_factor":        func(c *agent.Config, v float64) { c.SteeringFactor = v },
}

// ConfigValues returns every searchable parameter of c by name.
func ConfigValues(c agent.Config) map[string]float64 {
	return map[string]float64{
		"effective_deceleration": c.EffectiveDeceleration,
		"steer_distance_limit":   c.SteerDistanceLimit,
		"steer_angle_limit":      c.SteerAngleLimit,
		"speed_limit_factor":     c.SpeedLimitFactor,
		"speed_limit_offset":     c.SpeedLimitOffset,
		"corner_cut_factor":      c.CornerCutFactor,
		"corner_cut_distance":    c.CornerCutDistance,
		"steering_factor":        c.SteeringFactor,
	}
}

// LoadGrid decodes a grid file.
func LoadGrid(path string) (*Grid, error) {
	var g Grid
	if _, err := toml.DecodeFile(path, &g); err != nil {
		return nil, errors.Wrapf(err, "decoding grid %s", path)
	}
	if len(g.Tracks) == 0 {
		return nil, errors.Errorf("grid %s lists no tracks", path)
	}
	if len(g.BenchmarkTimes) > 0 && len(g.BenchmarkTimes) != len(g.Tracks) {
		return nil, errors.Errorf("grid %s: %d benchmark times for %d tracks", path, len(g.BenchmarkTimes), len(g.Tracks))
	}
	return &g, nil
}

// Params returns the searched parameter names in a stable order.
func (g *Grid) Params() []string {
	names := lo.Keys(g.Ranges)
	sort.Strings(names)
	return names
}

// Expand returns the cartesian product of all ranges applied over base.
// Parameters without a range keep base's value.
func (g *Grid) Expand(base agent.Config) ([]agent.Config, error) {
	configs := []agent.Config{base}
	for _, name := range g.Params() {
		set, ok := setters[name]
		if !ok {
			return nil, errors.Errorf("unknown parameter %q", name)
		}
		values, err := g.Ranges[name].Values()
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %q", name)
		}

		next := make([]agent.Config, 0, len(configs)*len(values))
		for _, c := range configs {
			for _, v := range values {
				set(&c, v)
				next = append(next, c)
			}
		}
		configs = next
	}
	return configs, nil
}
