package app

import (
	"flag"
	"fmt"

	"blue-noise/internal/noise"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Dims       string
	Channels   int
	Radius     int
	Iterations int
	Method     string
	Passes     int
	Seed       int64

	Scale int
	TPS   int
	Steps int
	HUD   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := noise.DefaultConfig()
	return &Config{
		Dims:       "64x64",
		Channels:   def.Channels,
		Radius:     def.Radius,
		Iterations: def.Iterations,
		Method:     def.Method.String(),
		Passes:     def.Passes,
		Seed:       def.Seed,
		Scale:      8,
		TPS:        60,
		Steps:      256,
		HUD:        220,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Dims, "dims", c.Dims, "grid extents, e.g. 64x64")
	fs.IntVar(&c.Channels, "channels", c.Channels, "values per grid item")
	fs.IntVar(&c.Radius, "radius", c.Radius, "energy kernel radius")
	fs.IntVar(&c.Iterations, "iterations", c.Iterations, "optimisation iterations")
	fs.StringVar(&c.Method, "method", c.Method, "solid-angle or high-pass")
	fs.IntVar(&c.Passes, "passes", c.Passes, "high-pass filter passes")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for pattern reset")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Steps, "steps", c.Steps, "iterations per tick")
	fs.IntVar(&c.HUD, "hud", c.HUD, "HUD panel width in pixels, 0 hides it")
}

// Noise converts the flag values into a validated generator config.
func (c *Config) Noise() (noise.Config, error) {
	dims, err := noise.ParseDims(c.Dims)
	if err != nil {
		return noise.Config{}, err
	}
	method, err := noise.ParseMethod(c.Method)
	if err != nil {
		return noise.Config{}, err
	}
	cfg := noise.DefaultConfig()
	cfg.Dims = dims
	cfg.Channels = c.Channels
	cfg.Radius = c.Radius
	cfg.Iterations = c.Iterations
	cfg.Method = method
	cfg.Passes = c.Passes
	cfg.Seed = c.Seed
	if err := cfg.Validate(); err != nil {
		return noise.Config{}, err
	}
	if c.Scale < 1 {
		return noise.Config{}, fmt.Errorf("%w: scale must be >= 1, got %d", noise.ErrInvalidConfig, c.Scale)
	}
	return cfg, nil
}
