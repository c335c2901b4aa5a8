package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = 800.0
	DefaultHeight   = 600.0
	DefaultRadius   = 20.0
	DefaultSpeed    = 1.0
	DefaultTicks    = 600
	DefaultFPS      = 60
	DefaultGap      = 4.0
	DefaultNoise    = 0.005
	DefaultBodies   = 1
	DefaultSeed     = 1
	DefaultPairMode = "ordered"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	World         dynamo.Bounds `yaml:"world"`
	Seed          int64         `yaml:"seed"`
	Ticks         int           `yaml:"ticks"`
	SampleEvery   int           `yaml:"sample_every"`
	PairMode      string        `yaml:"pair_mode"`
	ValidateState bool          `yaml:"validate_state"`
	FPS           int           `yaml:"fps"`
	Layout        LayoutConfig  `yaml:"layout"`
}

type LayoutConfig struct {
	Kind       string       `yaml:"kind"`
	Count      int          `yaml:"count"`
	Radius     float32      `yaml:"radius"`
	MaxSpeed   float32      `yaml:"max_speed"`
	Gap        float32      `yaml:"gap"`
	NoiseScale float64      `yaml:"noise_scale"`
	Bodies     []BodyConfig `yaml:"bodies,omitempty"`
}

type BodyConfig struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	VX     float32 `yaml:"vx"`
	VY     float32 `yaml:"vy"`
	Radius float32 `yaml:"radius"`
}

// DefaultConfig is a single radius-20 ball drifting diagonally in an 800x600 world.
func DefaultConfig() *Config {
	return &Config{
		World:         dynamo.Bounds{Width: DefaultWidth, Height: DefaultHeight},
		Seed:          DefaultSeed,
		Ticks:         DefaultTicks,
		SampleEvery:   1,
		PairMode:      DefaultPairMode,
		ValidateState: true,
		FPS:           DefaultFPS,
		Layout: LayoutConfig{
			Kind:       "random",
			Count:      DefaultBodies,
			Radius:     DefaultRadius,
			MaxSpeed:   DefaultSpeed,
			Gap:        DefaultGap,
			NoiseScale: DefaultNoise,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultConfig())
}

// LoadWith reads a YAML file over base, so keys missing from the file keep
// base's values. base is modified in place.
func LoadWith(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func (c *Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidConfig, c.Ticks)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("%w: sample_every must be positive, got %d", ErrInvalidConfig, c.SampleEvery)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if _, err := physics.ParseMode(c.PairMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Layout.Kind != "explicit" && c.Layout.Count < 0 {
		return fmt.Errorf("%w: layout count must not be negative, got %d", ErrInvalidConfig, c.Layout.Count)
	}
	return nil
}

// Mode returns the parsed pair mode.
func (c *Config) Mode() (physics.Mode, error) {
	m, err := physics.ParseMode(c.PairMode)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return m, nil
}

func (c *Config) SimOptions() ([]sim.Option, error) {
	m, err := c.Mode()
	if err != nil {
		return nil, err
	}
	return []sim.Option{sim.WithPairMode(m)}, nil
}

func (c *Config) RunConfig() sim.RunConfig {
	return sim.RunConfig{
		Ticks:         c.Ticks,
		SampleEvery:   c.SampleEvery,
		ValidateState: c.ValidateState,
	}
}
