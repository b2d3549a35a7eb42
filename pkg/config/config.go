// Package config loads render settings from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/df07/go-light-transport/pkg/scene"
)

// ErrInvalidConfig is returned when a configuration fails validation
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete description of one render
type Config struct {
	Scene      string `yaml:"scene"`
	Integrator string `yaml:"integrator"` // Empty selects the scene's default estimator
	Output     string `yaml:"output"`

	Image      ImageConfig      `yaml:"image"`
	Render     RenderConfig     `yaml:"render"`
	Estimator  EstimatorConfig  `yaml:"estimator"`
	PointLight PointLightConfig `yaml:"point_light"`
}

// ImageConfig sets the film size and sample count
type ImageConfig struct {
	Width           int `yaml:"width"`
	Height          int `yaml:"height"`
	SamplesPerPixel int `yaml:"spp"`
}

// RenderConfig sets scheduling and seeding
type RenderConfig struct {
	TileSize int    `yaml:"tile_size"`
	Workers  int    `yaml:"workers"` // 0 = use CPU count
	Seed     uint64 `yaml:"seed"`
}

// EstimatorConfig holds the path termination settings
type EstimatorConfig struct {
	MaxDepth            int     `yaml:"max_depth"`
	RouletteStartDepth  int     `yaml:"roulette_start_depth"`
	RouletteMaxSurvival float64 `yaml:"roulette_max_survival"`
	WhittedContinuation float64 `yaml:"whitted_continuation"`
}

// PointLightConfig places the light of the "simple" estimator
type PointLightConfig struct {
	Position []float64 `yaml:"position"`
	Energy   []float64 `yaml:"energy"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	rc := renderer.DefaultConfig()
	opts := integrator.DefaultOptions()
	return Config{
		Scene:  "cornell",
		Output: "render.png",
		Image: ImageConfig{
			Width:           rc.Width,
			Height:          rc.Height,
			SamplesPerPixel: rc.SamplesPerPixel,
		},
		Render: RenderConfig{
			TileSize: rc.TileSize,
			Workers:  rc.NumWorkers,
			Seed:     rc.Seed,
		},
		Estimator: EstimatorConfig{
			MaxDepth:            opts.MaxDepth,
			RouletteStartDepth:  opts.RouletteStartDepth,
			RouletteMaxSurvival: opts.RouletteMaxSurvival,
			WhittedContinuation: opts.WhittedContinuation,
		},
		PointLight: PointLightConfig{
			Position: vec3ToSlice(opts.LightPosition),
			Energy:   vec3ToSlice(opts.LightEnergy),
		},
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a YAML configuration file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every setting
func (c Config) Validate() error {
	if _, err := scene.NewPresets().Lookup(c.Scene); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Integrator != "" && !slices.Contains(integrator.NewRegistry().Names(), c.Integrator) {
		return fmt.Errorf("%w: unknown integrator %q", ErrInvalidConfig, c.Integrator)
	}
	if err := c.RendererConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	e := c.Estimator
	if e.MaxDepth <= 0 {
		return fmt.Errorf("%w: max_depth must be positive, got %d", ErrInvalidConfig, e.MaxDepth)
	}
	if e.RouletteStartDepth < 0 {
		return fmt.Errorf("%w: roulette_start_depth must not be negative, got %d", ErrInvalidConfig, e.RouletteStartDepth)
	}
	if e.RouletteMaxSurvival <= 0 || e.RouletteMaxSurvival > 1 {
		return fmt.Errorf("%w: roulette_max_survival must be in (0, 1], got %g", ErrInvalidConfig, e.RouletteMaxSurvival)
	}
	if e.WhittedContinuation <= 0 || e.WhittedContinuation > 1 {
		return fmt.Errorf("%w: whitted_continuation must be in (0, 1], got %g", ErrInvalidConfig, e.WhittedContinuation)
	}

	if len(c.PointLight.Position) != 3 || len(c.PointLight.Energy) != 3 {
		return fmt.Errorf("%w: point_light position and energy need three components", ErrInvalidConfig)
	}
	return nil
}

// IntegratorName resolves the estimator to use, falling back to the scene default
func (c Config) IntegratorName() (string, error) {
	if c.Integrator != "" {
		return c.Integrator, nil
	}
	preset, err := scene.NewPresets().Lookup(c.Scene)
	if err != nil {
		return "", err
	}
	return preset.DefaultIntegrator, nil
}

// RendererConfig returns the image and scheduling settings
func (c Config) RendererConfig() renderer.Config {
	return renderer.Config{
		Width:           c.Image.Width,
		Height:          c.Image.Height,
		SamplesPerPixel: c.Image.SamplesPerPixel,
		TileSize:        c.Render.TileSize,
		NumWorkers:      c.Render.Workers,
		Seed:            c.Render.Seed,
	}
}

// Options returns the estimator settings
func (c Config) Options() integrator.Options {
	opts := integrator.DefaultOptions()
	opts.MaxDepth = c.Estimator.MaxDepth
	opts.RouletteStartDepth = c.Estimator.RouletteStartDepth
	opts.RouletteMaxSurvival = c.Estimator.RouletteMaxSurvival
	opts.WhittedContinuation = c.Estimator.WhittedContinuation
	if len(c.PointLight.Position) == 3 {
		opts.LightPosition = sliceToVec3(c.PointLight.Position)
	}
	if len(c.PointLight.Energy) == 3 {
		opts.LightEnergy = sliceToVec3(c.PointLight.Energy)
	}
	return opts
}

func vec3ToSlice(v core.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func sliceToVec3(s []float64) core.Vec3 {
	return core.NewVec3(s[0], s[1], s[2])
}
