package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-light-transport/pkg/config"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/df07/go-light-transport/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses the command line, renders and writes the image
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("lighttransport", flag.ContinueOnError)
	flags.SetOutput(stdout)

	configPath := flags.String("config", "", "YAML render configuration; flags override its values")
	sceneID := flags.String("scene", "", "Scene preset (see -list)")
	integratorName := flags.String("integrator", "", "Estimator (defaults to the scene's)")
	output := flags.String("output", "", "Output image, .png or .exr")
	width := flags.Int("width", 0, "Image width")
	height := flags.Int("height", 0, "Image height")
	spp := flags.Int("spp", 0, "Samples per pixel")
	workers := flags.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	seed := flags.Uint64("seed", 0, "Base random seed")
	list := flags.Bool("list", false, "List scenes and estimators")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *list {
		printCatalog(stdout)
		return nil
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Only explicitly given flags override the file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneID
		case "integrator":
			cfg.Integrator = *integratorName
		case "output":
			cfg.Output = *output
		case "width":
			cfg.Image.Width = *width
		case "height":
			cfg.Image.Height = *height
		case "spp":
			cfg.Image.SamplesPerPixel = *spp
		case "workers":
			cfg.Render.Workers = *workers
		case "seed":
			cfg.Render.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	return render(ctx, cfg, renderer.NewDefaultLogger())
}

// render builds the scene and estimator described by cfg and saves the image
func render(ctx context.Context, cfg config.Config, logger core.Logger) error {
	s, err := scene.NewPresets().Build(cfg.Scene)
	if err != nil {
		return err
	}

	name, err := cfg.IntegratorName()
	if err != nil {
		return err
	}
	integ, err := integrator.NewRegistry().New(name, cfg.Options())
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(s, integ, name, cfg.RendererConfig(), logger, nil)
	if err != nil {
		return err
	}

	film, stats, err := r.Render(ctx)
	if err != nil {
		return err
	}
	logger.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := renderer.SaveImage(cfg.Output, film); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", cfg.Output)
	return nil
}

// printCatalog lists the scene presets and estimators
func printCatalog(w io.Writer) {
	fmt.Fprintln(w, "Scenes:")
	for _, p := range scene.NewPresets().List() {
		fmt.Fprintf(w, "  %-12s %s (default: %s)\n", p.ID, p.Description, p.DefaultIntegrator)
	}
	fmt.Fprintln(w, "Integrators:")
	for _, name := range integrator.NewRegistry().Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
