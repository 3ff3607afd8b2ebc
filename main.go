package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-anytime-raytracer/pkg/core"
	"github.com/df07/go-anytime-raytracer/pkg/renderer"
	"github.com/df07/go-anytime-raytracer/pkg/scene"
)

// renderOptions collects the command line configuration of a render
type renderOptions struct {
	Width   int
	Height  int
	Passes  int
	Samples int
	Depth   int
	Seed    int64
	Scale   int
	Smooth  bool
	HUD     bool
}

// validate rejects options the renderer cannot work with
func (o renderOptions) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", o.Width, o.Height)
	case o.Passes < 0:
		return fmt.Errorf("passes must not be negative, got %d", o.Passes)
	case o.Samples < 0:
		return fmt.Errorf("samples must not be negative, got %d", o.Samples)
	case o.Depth < 0:
		return fmt.Errorf("depth must not be negative, got %d", o.Depth)
	case o.Scale < 1:
		return fmt.Errorf("scale must be at least 1, got %d", o.Scale)
	}
	return nil
}

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene name: "+strings.Join(scene.Names(), ", "))
	width := flag.Int("width", 400, "Image width in pixels")
	height := flag.Int("height", 225, "Image height in pixels")
	passes := flag.Int("passes", 8, "Full passes to render (0 = until every pixel converges)")
	samples := flag.Int("samples", 0, "Samples per pixel visit (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum bounce depth (0 = scene default)")
	seed := flag.Int64("seed", 42, "Seed for pixel order, path sampling and generated scenes")
	texture := flag.String("texture", "", "Image file for textured scenes (PNG, JPEG, GIF, BMP, TIFF, WebP)")
	scale := flag.Int("scale", 1, "Integer upscale factor for the saved image")
	smooth := flag.Bool("smooth", false, "Use bilinear filtering when upscaling")
	hud := flag.Bool("hud", false, "Draw the pass/progress overlay on the saved image")
	output := flag.String("output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	verbose := flag.Bool("verbose", false, "Log every invalidation and pass")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Anytime Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := core.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	options := renderOptions{
		Width:   *width,
		Height:  *height,
		Passes:  *passes,
		Samples: *samples,
		Depth:   *depth,
		Seed:    *seed,
		Scale:   *scale,
		Smooth:  *smooth,
		HUD:     *hud,
	}

	if err := options.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	selectedScene, err := createScene(*sceneType, scene.Options{Seed: *seed, TexturePath: *texture})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	filename := *output
	if filename == "" {
		outputDir := createOutputDir(selectedScene.Name)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printer := message.NewPrinter(language.English)
	printer.Printf("Rendering %s at %dx%d (%d pixels)...\n", selectedScene.Name, options.Width, options.Height, options.Width*options.Height)

	startTime := time.Now()
	img, stats, err := renderImage(ctx, selectedScene, options, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Render stopped early: %v\n", err)
	}
	renderTime := time.Since(startTime)

	printer.Printf("Render completed in %v: %d passes, %d samples\n", renderTime.Round(time.Millisecond), stats.Passes, stats.TotalSamples)
	printer.Printf("Samples per pixel: %.1f (range %d - %d), %d of %d pixels converged\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamples, stats.Final, stats.TotalPixels)

	if err := saveImage(img, filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene resolves a registered scene name
func createScene(sceneType string, options scene.Options) (*scene.Scene, error) {
	return scene.Lookup(sceneType, options)
}

// createOutputDir returns the output directory for a scene
func createOutputDir(sceneName string) string {
	base := filepath.Base(strings.TrimSpace(sceneName))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "render"
	}
	return filepath.Join("output", base)
}

// renderImage renders the scene progressively until options.Passes full passes complete,
// every pixel converges or ctx is cancelled. The partial image is returned on cancellation.
func renderImage(ctx context.Context, s *scene.Scene, options renderOptions, logger core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	if err := options.validate(); err != nil {
		return nil, renderer.RenderStats{}, err
	}

	sink := renderer.NewImageSink(options.Width, options.Height)

	sampling := renderer.MergeSamplingConfig(s.GetSamplingConfig(), renderer.SamplingConfig{
		SamplesPerPixel: options.Samples,
		MaxDepth:        options.Depth,
	})

	config := renderer.DefaultSessionConfig()
	config.MaxPasses = options.Passes
	config.Seed = options.Seed
	config.StepBudget = 0

	session := renderer.NewSession(s, options.Width, options.Height, sampling, config, sink, logger)

	passChan, errChan := session.RenderProgressive(ctx)
	for range passChan {
	}

	var renderErr error
	if err, ok := <-errChan; ok {
		renderErr = err
	}

	img := sink.Snapshot()
	if options.HUD {
		passes, fraction := session.Progress()
		renderer.DrawOverlay(img, passes, fraction)
	}
	if options.Scale > 1 {
		img = renderer.ScaleImage(img, options.Scale, options.Smooth)
	}

	return img, session.Stats(), renderErr
}

// saveImage encodes img as PNG at filename
func saveImage(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
