package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 12.0, cfg.Tank.Speed)
	assert.Equal(t, 180.0, cfg.Tank.TurnSpeed)
	assert.Equal(t, 100.0, cfg.Tank.MaxHealth)
	assert.Equal(t, 15.0, cfg.Tank.MinLaunchForce)
	assert.Equal(t, 30.0, cfg.Tank.MaxLaunchForce)
	assert.Equal(t, 750*time.Millisecond, cfg.Tank.MaxChargeTime)
	assert.Equal(t, 0.5, cfg.Pickup.HealFraction)
	assert.Equal(t, 10*time.Second, cfg.Pickup.SpeedDuration)
	assert.Equal(t, 10*time.Second, cfg.Pickup.BarrierDuration)
	assert.Equal(t, 99999999.0, cfg.Pickup.DynamiteDamage)
	assert.Equal(t, 8*time.Second, cfg.Pickup.Interval)
	assert.Equal(t, 1200*time.Millisecond, cfg.Shell.Lifetime)
	assert.Equal(t, 3*time.Second, cfg.Round.RestartDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.Input.HoldTimeout)
	assert.True(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.False(t, cfg.Record.Enabled)
	assert.Equal(t, 2, cfg.Arena.Players)
	require.NoError(t, cfg.Validate())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tank-arena.toml")
	content := `
logLevel = "debug"
tickInterval = "10ms"

[tank]
speed = 20
maxChargeTime = "1.5s"

[record]
enabled = true
path = "matches.db"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 20.0, cfg.Tank.Speed)
	assert.Equal(t, 1500*time.Millisecond, cfg.Tank.MaxChargeTime)
	assert.True(t, cfg.Record.Enabled)
	assert.Equal(t, "matches.db", cfg.Record.Path)

	// Untouched keys keep defaults
	assert.Equal(t, 180.0, cfg.Tank.TurnSpeed)
	assert.Equal(t, 8*time.Second, cfg.Pickup.Interval)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("/nonexistent/path/tank-arena.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_MissingImplicitFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.Tank.Speed)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TANKARENA_TANK_SPEED", "7.5")
	t.Setenv("TANKARENA_LOGLEVEL", "warn")

	cfg := Default()
	assert.Equal(t, 7.5, cfg.Tank.Speed)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := "tank:\n  minLaunchForce: 40\n  maxLaunchForce: 30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minLaunchForce")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero tick", func(c *Config) { c.TickInterval = 0 }, "tickInterval"},
		{"negative speed", func(c *Config) { c.Tank.Speed = -1 }, "tank.speed"},
		{"zero charge time", func(c *Config) { c.Tank.MaxChargeTime = 0 }, "tank.maxChargeTime"},
		{"zero shell lifetime", func(c *Config) { c.Shell.Lifetime = 0 }, "shell.lifetime"},
		{"negative restart delay", func(c *Config) { c.Round.RestartDelay = -time.Second }, "round.restartDelay"},
		{"no players", func(c *Config) { c.Arena.Players = 0 }, "arena.players"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
