package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("config: invalid")

// Config holds the render settings.
type Config struct {
	// Scene and output
	Scene      string `json:"scene"`
	Output     string `json:"output"`
	RateOutput string `json:"rate_output"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Scale      int    `json:"scale"`

	// Acceleration
	MaxLeafSize int `json:"max_leaf_size"`

	// Estimator
	SamplesPerPixel        int     `json:"samples_per_pixel"`
	SamplesPerAreaLight    int     `json:"samples_per_area_light"`
	SamplesPerBatch        int     `json:"samples_per_batch"`
	MaxTolerance           float64 `json:"max_tolerance"`
	MaxRayDepth            int     `json:"max_ray_depth"`
	DirectHemisphereSample bool    `json:"direct_hemisphere_sample"`

	// Scheduling
	Workers  int   `json:"workers"`
	TileSize int   `json:"tile_size"`
	Seed     int64 `json:"seed"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		Scene:               "cornell",
		Output:              "render.png",
		Width:               320,
		Height:              240,
		Scale:               1,
		MaxLeafSize:         geometry.DefaultMaxLeafSize,
		SamplesPerPixel:     64,
		SamplesPerAreaLight: 4,
		SamplesPerBatch:     32,
		MaxTolerance:        0.05,
		MaxRayDepth:         5,
		TileSize:            32,
	}
}

// Load reads a JSON config file on top of the defaults.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene                  string
	Output                 string
	RateOutput             string
	Width                  int
	Height                 int
	Scale                  int
	MaxLeafSize            int
	SamplesPerPixel        int
	SamplesPerAreaLight    int
	SamplesPerBatch        int
	MaxTolerance           float64
	MaxRayDepth            int
	DirectHemisphereSample bool
	Workers                int
	TileSize               int
	Seed                   int64
}

// Resolve applies CLI flags. Flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.RateOutput != "" {
		c.RateOutput = flags.RateOutput
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.MaxLeafSize > 0 {
		c.MaxLeafSize = flags.MaxLeafSize
	}
	if flags.SamplesPerPixel > 0 {
		c.SamplesPerPixel = flags.SamplesPerPixel
	}
	if flags.SamplesPerAreaLight > 0 {
		c.SamplesPerAreaLight = flags.SamplesPerAreaLight
	}
	if flags.SamplesPerBatch > 0 {
		c.SamplesPerBatch = flags.SamplesPerBatch
	}
	if flags.MaxTolerance > 0 {
		c.MaxTolerance = flags.MaxTolerance
	}
	if flags.MaxRayDepth > 0 {
		c.MaxRayDepth = flags.MaxRayDepth
	}
	if flags.DirectHemisphereSample {
		c.DirectHemisphereSample = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.TileSize > 0 {
		c.TileSize = flags.TileSize
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
}

// Validate reports the first setting that cannot be rendered.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"scale", c.Scale},
		{"max_leaf_size", c.MaxLeafSize},
		{"samples_per_pixel", c.SamplesPerPixel},
		{"samples_per_area_light", c.SamplesPerAreaLight},
		{"samples_per_batch", c.SamplesPerBatch},
		{"tile_size", c.TileSize},
	}
	for _, field := range positive {
		if field.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, field.name, field.value)
		}
	}

	if c.MaxTolerance < 0 {
		return fmt.Errorf("%w: max_tolerance must not be negative, got %g", ErrInvalid, c.MaxTolerance)
	}
	if c.MaxRayDepth < 0 {
		return fmt.Errorf("%w: max_ray_depth must not be negative, got %d", ErrInvalid, c.MaxRayDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if c.Scene == "" {
		return fmt.Errorf("%w: scene is empty", ErrInvalid)
	}
	return nil
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Integrator returns the estimator settings
func (c Config) Integrator() integrator.Config {
	return integrator.Config{
		MaxRayDepth:            c.MaxRayDepth,
		SamplesPerAreaLight:    c.SamplesPerAreaLight,
		DirectHemisphereSample: c.DirectHemisphereSample,
	}
}

// Renderer returns the sampling and scheduling settings
func (c Config) Renderer() renderer.Config {
	return renderer.Config{
		SamplesPerPixel: c.SamplesPerPixel,
		SamplesPerBatch: c.SamplesPerBatch,
		MaxTolerance:    c.MaxTolerance,
		MaxRayDepth:     c.MaxRayDepth,
		TileSize:        c.TileSize,
		NumWorkers:      c.Workers,
		Seed:            c.Seed,
	}
}
