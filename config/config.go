package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/tank-arena/parameter"
)

// ConfigName is the file looked up in the working directory when no explicit path is given
const ConfigName = "tank-arena"

// EnvPrefix prefixes environment overrides, e.g. TANKARENA_TANK_SPEED
const EnvPrefix = "TANKARENA"

// TankConfig holds per-tank tunables
type TankConfig struct {
	Speed          float64       `mapstructure:"speed"`
	TurnSpeed      float64       `mapstructure:"turnSpeed"`
	MaxHealth      float64       `mapstructure:"maxHealth"`
	MinLaunchForce float64       `mapstructure:"minLaunchForce"`
	MaxLaunchForce float64       `mapstructure:"maxLaunchForce"`
	MaxChargeTime  time.Duration `mapstructure:"maxChargeTime"`
	MuzzleOffset   float64       `mapstructure:"muzzleOffset"`
	Radius         float64       `mapstructure:"radius"`
}

// PickupConfig holds item magnitudes and the pad respawn interval
type PickupConfig struct {
	HealFraction    float64       `mapstructure:"healFraction"`
	SpeedDuration   time.Duration `mapstructure:"speedDuration"`
	BarrierDuration time.Duration `mapstructure:"barrierDuration"`
	DynamiteDamage  float64       `mapstructure:"dynamiteDamage"`
	Interval        time.Duration `mapstructure:"interval"`
	Radius          float64       `mapstructure:"radius"`
}

// ShellConfig holds projectile and explosion tunables
type ShellConfig struct {
	Lifetime        time.Duration `mapstructure:"lifetime"`
	Radius          float64       `mapstructure:"radius"`
	ExplosionRadius float64       `mapstructure:"explosionRadius"`
	MaxDamage       float64       `mapstructure:"maxDamage"`
}

type RoundConfig struct {
	RestartDelay time.Duration `mapstructure:"restartDelay"`
}

type InputConfig struct {
	HoldTimeout time.Duration `mapstructure:"holdTimeout"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RecordConfig controls the SQLite match recorder
type RecordConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type ScoreboardConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// TelemetryConfig controls the in-process metric reader summarised at exit
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ArenaConfig selects the layout file and player count
// An empty layout uses DefaultLayout
type ArenaConfig struct {
	Layout  string `mapstructure:"layout"`
	Players int    `mapstructure:"players"`
}

// Config is the fully resolved runtime configuration
type Config struct {
	LogLevel     string        `mapstructure:"logLevel"`
	LogsDir      string        `mapstructure:"logsDir"`
	TickInterval time.Duration `mapstructure:"tickInterval"`

	Tank       TankConfig       `mapstructure:"tank"`
	Pickup     PickupConfig     `mapstructure:"pickup"`
	Shell      ShellConfig      `mapstructure:"shell"`
	Round      RoundConfig      `mapstructure:"round"`
	Input      InputConfig      `mapstructure:"input"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Record     RecordConfig     `mapstructure:"record"`
	Scoreboard ScoreboardConfig `mapstructure:"scoreboard"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Arena      ArenaConfig      `mapstructure:"arena"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logsDir", "./logs")
	v.SetDefault("tickInterval", parameter.GameUpdateInterval)

	v.SetDefault("tank.speed", parameter.TankSpeed)
	v.SetDefault("tank.turnSpeed", parameter.TankTurnSpeed)
	v.SetDefault("tank.maxHealth", parameter.TankMaxHealth)
	v.SetDefault("tank.minLaunchForce", parameter.MinLaunchForce)
	v.SetDefault("tank.maxLaunchForce", parameter.MaxLaunchForce)
	v.SetDefault("tank.maxChargeTime", parameter.MaxChargeTime)
	v.SetDefault("tank.muzzleOffset", parameter.MuzzleOffset)
	v.SetDefault("tank.radius", parameter.TankRadius)

	v.SetDefault("pickup.healFraction", parameter.PickupHealFraction)
	v.SetDefault("pickup.speedDuration", parameter.PickupSpeedDuration)
	v.SetDefault("pickup.barrierDuration", parameter.PickupBarrierDuration)
	v.SetDefault("pickup.dynamiteDamage", parameter.PickupDynamiteDamage)
	v.SetDefault("pickup.interval", parameter.PickupSpawnInterval)
	v.SetDefault("pickup.radius", parameter.PickupRadius)

	v.SetDefault("shell.lifetime", parameter.ShellLifetime)
	v.SetDefault("shell.radius", parameter.ShellRadius)
	v.SetDefault("shell.explosionRadius", parameter.ShellExplosionRadius)
	v.SetDefault("shell.maxDamage", parameter.ShellMaxDamage)

	v.SetDefault("round.restartDelay", parameter.RoundRestartDelay)
	v.SetDefault("input.holdTimeout", parameter.InputHoldTimeout)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("record.enabled", false)
	v.SetDefault("record.path", "./tank-arena.db")
	v.SetDefault("scoreboard.enabled", true)
	v.SetDefault("telemetry.enabled", true)

	v.SetDefault("arena.layout", "")
	v.SetDefault("arena.players", parameter.DefaultPlayerCount)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the built-in configuration with environment overrides applied
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// Only reachable through a malformed TANKARENA_* variable
		panic(fmt.Errorf("failed to decode default config: %w", err))
	}
	return cfg
}

// Load reads configuration from path, or from ./tank-arena.* when path is empty
// A missing implicit file is not an error; a missing explicit file is
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tickInterval must be positive, got %v", c.TickInterval)
	}

	positives := []struct {
		key   string
		value float64
	}{
		{"tank.speed", c.Tank.Speed},
		{"tank.turnSpeed", c.Tank.TurnSpeed},
		{"tank.maxHealth", c.Tank.MaxHealth},
		{"tank.minLaunchForce", c.Tank.MinLaunchForce},
		{"tank.maxLaunchForce", c.Tank.MaxLaunchForce},
		{"tank.radius", c.Tank.Radius},
		{"pickup.radius", c.Pickup.Radius},
		{"shell.radius", c.Shell.Radius},
		{"shell.explosionRadius", c.Shell.ExplosionRadius},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.key, p.value)
		}
	}

	durations := []struct {
		key   string
		value time.Duration
	}{
		{"tank.maxChargeTime", c.Tank.MaxChargeTime},
		{"pickup.interval", c.Pickup.Interval},
		{"shell.lifetime", c.Shell.Lifetime},
		{"input.holdTimeout", c.Input.HoldTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", d.key, d.value)
		}
	}

	if c.Tank.MinLaunchForce > c.Tank.MaxLaunchForce {
		return fmt.Errorf("tank.minLaunchForce (%v) exceeds tank.maxLaunchForce (%v)",
			c.Tank.MinLaunchForce, c.Tank.MaxLaunchForce)
	}
	if c.Round.RestartDelay < 0 {
		return fmt.Errorf("round.restartDelay must not be negative, got %v", c.Round.RestartDelay)
	}
	if c.Arena.Players < 1 {
		return fmt.Errorf("arena.players must be at least 1, got %d", c.Arena.Players)
	}
	return nil
}
