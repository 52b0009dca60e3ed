package agent

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid controller config")

// Config is the tuning bundle of the controller. It is copied into the
// controller at construction and never changed afterwards.
type Config struct {
	// Braking plus drift loss assumed by the lookahead, px/s². Must be negative.
	EffectiveDeceleration float64 `toml:"effective_deceleration"`
	// Hand-off to the following waypoint happens closer than this, px.
	SteerDistanceLimit float64 `toml:"steer_distance_limit"`
	// ... and only when the heading error is below this, degrees.
	SteerAngleLimit float64 `toml:"steer_angle_limit"`
	// Scales DistClosest/|TurnAngle| into a cornering speed.
	SpeedLimitFactor float64 `toml:"speed_limit_factor"`
	// Added to every speed limit, px/s.
	SpeedLimitOffset float64 `toml:"speed_limit_offset"`
	// Percent of the half width the racing line may use at an apex.
	CornerCutFactor float64 `toml:"corner_cut_factor"`
	// Track distance around an apex that gets the full cut, px.
	CornerCutDistance float64 `toml:"corner_cut_distance"`
	// Percent of the heading error sent as steering.
	SteeringFactor float64 `toml:"steering_factor"`
}

// Defaults, taken from the best run of the parameter search.
const (
	DefaultEffectiveDeceleration = -108.0
	DefaultSteerDistanceLimit    = 49.0
	DefaultSteerAngleLimit       = 36.0
	DefaultSpeedLimitFactor      = 67.0
	DefaultSpeedLimitOffset      = 0.0
	DefaultCornerCutFactor       = 53.0
	DefaultCornerCutDistance     = 100.0
	DefaultSteeringFactor        = 55.0
)

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		EffectiveDeceleration: DefaultEffectiveDeceleration,
		SteerDistanceLimit:    DefaultSteerDistanceLimit,
		SteerAngleLimit:       DefaultSteerAngleLimit,
		SpeedLimitFactor:      DefaultSpeedLimitFactor,
		SpeedLimitOffset:      DefaultSpeedLimitOffset,
		CornerCutFactor:       DefaultCornerCutFactor,
		CornerCutDistance:     DefaultCornerCutDistance,
		SteeringFactor:        DefaultSteeringFactor,
	}
}

// Validate rejects configurations the controller cannot run with.
func (c Config) Validate() error {
	switch {
	case c.EffectiveDeceleration >= 0:
		return errors.Wrapf(ErrInvalidConfig, "effective_deceleration must be negative, got %v", c.EffectiveDeceleration)
	case c.SteerDistanceLimit < 0:
		return errors.Wrapf(ErrInvalidConfig, "steer_distance_limit must not be negative, got %v", c.SteerDistanceLimit)
	case c.SteerAngleLimit < 0:
		return errors.Wrapf(ErrInvalidConfig, "steer_angle_limit must not be negative, got %v", c.SteerAngleLimit)
	case c.SpeedLimitFactor <= 0:
		return errors.Wrapf(ErrInvalidConfig, "speed_limit_factor must be positive, got %v", c.SpeedLimitFactor)
	case c.SpeedLimitOffset < 0:
		return errors.Wrapf(ErrInvalidConfig, "speed_limit_offset must not be negative, got %v", c.SpeedLimitOffset)
	case c.CornerCutFactor < 0 || c.CornerCutFactor > 100:
		return errors.Wrapf(ErrInvalidConfig, "corner_cut_factor must be within [0, 100], got %v", c.CornerCutFactor)
	case c.CornerCutDistance < 0:
		return errors.Wrapf(ErrInvalidConfig, "corner_cut_distance must not be negative, got %v", c.CornerCutDistance)
	}
	return nil
}

// LoadConfig decodes a TOML file over DefaultConfig, so omitted keys keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "decoding config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "%s: unknown keys %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
