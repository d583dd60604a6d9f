package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/nbody"
	"github.com/san-kum/gravsim/internal/timescale"
)

const (
	DefaultTick     = 1.0 / 64.0
	DefaultDuration = 10.0
	DefaultScheme   = "verlet"
	DefaultPolicy   = "zero"
	DefaultWorkers  = 1

	DefaultSpawnRadius  = 300.0
	DefaultSpawnDensity = 100.0
	DefaultSpawnExtent  = 400.0
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name      string          `yaml:"name"`
	Tick      float64         `yaml:"tick"`
	Duration  float64         `yaml:"duration"`
	Seed      int64           `yaml:"seed"`
	Scheme    string          `yaml:"scheme"`
	Collision string          `yaml:"collision"`
	Workers   int             `yaml:"workers"`
	Prime     bool            `yaml:"prime"`
	AutoOrbit bool            `yaml:"auto_orbit"`
	Scales    ScalesConfig    `yaml:"scales"`
	Timescale TimescaleConfig `yaml:"timescale"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Random    RandomConfig    `yaml:"random"`
	Bodies    []BodyConfig    `yaml:"bodies"`
}

type ScalesConfig struct {
	Size      float64 `yaml:"size"`
	Distance  float64 `yaml:"distance"`
	TimeSpeed float64 `yaml:"time_speed"`
	G         float64 `yaml:"g"`
}

type TimescaleConfig struct {
	Speed          float64 `yaml:"speed"`
	Rate           float64 `yaml:"rate"`
	FastMultiplier float64 `yaml:"fast_multiplier"`
	AllowReverse   bool    `yaml:"allow_reverse"`
}

// SpawnConfig describes bodies added at runtime by the spawn action.
type SpawnConfig struct {
	Radius  float64 `yaml:"radius"`
	Density float64 `yaml:"density"`
	Extent  float64 `yaml:"extent"`
}

// RandomConfig adds Count identical bodies scattered uniformly in a cube.
type RandomConfig struct {
	Count   int     `yaml:"count"`
	Radius  float64 `yaml:"radius"`
	Density float64 `yaml:"density"`
	Extent  float64 `yaml:"extent"`
	Color   string  `yaml:"color"`
}

type BodyConfig struct {
	Radius   float64    `yaml:"radius"`
	Density  float64    `yaml:"density"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
	Color    string     `yaml:"color"`
}

func DefaultConfig() *Config {
	opts := timescale.DefaultOptions()
	return &Config{
		Name:      "custom",
		Tick:      DefaultTick,
		Duration:  DefaultDuration,
		Scheme:    DefaultScheme,
		Collision: DefaultPolicy,
		Workers:   DefaultWorkers,
		Scales: ScalesConfig{
			Size:      nbody.DefaultSizeScale,
			Distance:  nbody.DefaultDistanceScale,
			TimeSpeed: timescale.DefaultTimeSpeed,
			G:         nbody.GravitationalConstant,
		},
		Timescale: TimescaleConfig{
			Speed:          opts.Speed,
			Rate:           opts.Rate,
			FastMultiplier: opts.FastMultiplier,
		},
		Spawn: SpawnConfig{
			Radius:  DefaultSpawnRadius,
			Density: DefaultSpawnDensity,
			Extent:  DefaultSpawnExtent,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything that can be checked without building bodies.
func (c *Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive, got %f", ErrInvalidConfig, c.Tick)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative, got %f", ErrInvalidConfig, c.Duration)
	}
	if _, err := nbody.ParseScheme(c.Scheme); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := nbody.ParsePolicy(c.Collision); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Scales.Size <= 0 || c.Scales.Distance <= 0 {
		return fmt.Errorf("%w: scales must be positive", ErrInvalidConfig)
	}
	if c.Scales.TimeSpeed <= 0 {
		return fmt.Errorf("%w: time_speed must be positive", ErrInvalidConfig)
	}
	if c.Random.Count < 0 {
		return fmt.Errorf("%w: random.count must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Params converts the physics section to world constants.
func (c *Config) Params() (nbody.Params, error) {
	scheme, err := nbody.ParseScheme(c.Scheme)
	if err != nil {
		return nbody.Params{}, err
	}
	policy, err := nbody.ParsePolicy(c.Collision)
	if err != nil {
		return nbody.Params{}, err
	}
	return nbody.Params{
		G:             c.Scales.G,
		SizeScale:     c.Scales.Size,
		DistanceScale: c.Scales.Distance,
		Policy:        policy,
		Scheme:        scheme,
		Workers:       c.Workers,
	}, nil
}

// ClockOptions converts the timescale section.
func (c *Config) ClockOptions() timescale.Options {
	return timescale.Options{
		TimeSpeed:      c.Scales.TimeSpeed,
		Speed:          c.Timescale.Speed,
		Rate:           c.Timescale.Rate,
		FastMultiplier: c.Timescale.FastMultiplier,
		AllowReverse:   c.Timescale.AllowReverse,
	}
}

// Clone returns a deep copy, so presets can be modified by callers.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &out
}
