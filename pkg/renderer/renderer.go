package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/scene"
)

// ErrInvalidConfig is returned when render settings cannot produce an image
var ErrInvalidConfig = errors.New("renderer: invalid config")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains the image and scheduling settings of a render
type Config struct {
	Width           int    // Image width in pixels
	Height          int    // Image height in pixels
	SamplesPerPixel int    // Radiance estimates per pixel
	TileSize        int    // Size of each square tile
	NumWorkers      int    // Number of parallel workers (0 = use CPU count)
	Seed            uint64 // Base seed of every per-pixel sample stream
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          300,
		SamplesPerPixel: 64,
		TileSize:        32,
		NumWorkers:      0, // Auto-detect CPU count
		Seed:            1,
	}
}

// Validate reports settings that cannot produce an image
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.TileSize < 0 || c.NumWorkers < 0 {
		return fmt.Errorf("%w: tile size %d, workers %d", ErrInvalidConfig, c.TileSize, c.NumWorkers)
	}
	return nil
}

// Renderer runs one integrator over every pixel of a scene
type Renderer struct {
	scene          *scene.Scene
	integrator     integrator.Integrator
	integratorName string
	camera         *Camera
	config         Config
	logger         core.Logger
	metrics        *Metrics
}

// NewRenderer creates a renderer for a preprocessed scene. name labels the
// integrator in logs and metrics; metrics may be nil.
func NewRenderer(s *scene.Scene, integ integrator.Integrator, name string, config Config, logger core.Logger, metrics *Metrics) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	aspectRatio := float64(config.Width) / float64(config.Height)
	return &Renderer{
		scene:          s,
		integrator:     integ,
		integratorName: name,
		camera:         NewCamera(s.CameraConfig, aspectRatio),
		config:         config,
		logger:         logger,
		metrics:        metrics,
	}, nil
}

// Render estimates every pixel and returns the film. Cancelling ctx stops
// scheduling tiles and returns ctx.Err() with a partially filled film.
func (r *Renderer) Render(ctx context.Context) (*Film, RenderStats, error) {
	film := NewFilm(r.config.Width, r.config.Height)
	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize)
	pool := NewWorkerPool(r.config.NumWorkers)

	r.logger.Printf("Rendering %dx%d with %s at %d spp (%d tiles, %d workers)...\n",
		r.config.Width, r.config.Height, r.integratorName, r.config.SamplesPerPixel, len(tiles), pool.NumWorkers())

	startTime := time.Now()
	err := pool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) error {
		return r.renderTile(ctx, tile, film)
	})
	duration := time.Since(startTime)
	r.metrics.observeRender(r.integratorName, duration, err)

	stats := film.Stats()
	stats.Duration = duration
	if err != nil {
		r.logger.Printf("Render stopped after %v: %v\n", duration, err)
		return film, stats, err
	}

	r.logger.Printf("Render completed in %v (%d samples, %d dropped)\n",
		duration, stats.TotalSamples, stats.DroppedSamples)
	return film, stats, nil
}

// samplePixel draws every sample of pixel (x, y) from its own deterministic stream
func (r *Renderer) samplePixel(x, y int, ps *PixelStats) {
	width, height := float64(r.config.Width), float64(r.config.Height)
	pixelIndex := y*r.config.Width + x

	for i := 0; i < r.config.SamplesPerPixel; i++ {
		sampler := core.NewPixelSampler(r.config.Seed, pixelIndex, i)
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / width
		t := 1 - (float64(y)+jitter.Y)/height

		color := r.integrator.RayColor(r.camera.GetRay(s, t), r.scene, sampler)
		if !color.IsValidRadiance() {
			ps.Dropped++
			continue
		}
		ps.AddSample(color)
	}
}
