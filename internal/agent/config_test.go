package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*Config)
	}{
		{"zero deceleration", func(c *Config) { c.EffectiveDeceleration = 0 }},
		{"positive deceleration", func(c *Config) { c.EffectiveDeceleration = 10 }},
		{"negative steer distance", func(c *Config) { c.SteerDistanceLimit = -1 }},
		{"negative steer angle", func(c *Config) { c.SteerAngleLimit = -1 }},
		{"zero speed factor", func(c *Config) { c.SpeedLimitFactor = 0 }},
		{"negative offset", func(c *Config) { c.SpeedLimitOffset = -5 }},
		{"cut above 100", func(c *Config) { c.CornerCutFactor = 101 }},
		{"negative cut", func(c *Config) { c.CornerCutFactor = -1 }},
		{"negative cut distance", func(c *Config) { c.CornerCutDistance = -1 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "partial.toml")
	require.NoError(t, os.WriteFile(path, []byte("steering_factor = 33\ncorner_cut_factor = 0\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := DefaultConfig()
	want.SteeringFactor = 33
	want.CornerCutFactor = 0
	assert.Equal(t, want, cfg)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("effective_deceleration = 5\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("steer_limit = 5\n"), 0o644))
	_, err = LoadConfig(unknown)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
