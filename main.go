package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/publish"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// thumbnailWidth is the maximum width of -thumbnail previews
const thumbnailWidth = 160

// Options holds the parsed command line
type Options struct {
	Scene     string
	SceneFile string
	ScenesDir string
	Output    string
	Strategy  string
	Samples   int // -1 = use the scene's setting
	MaxDepth  int // 0 = use the scene's setting
	Workers   int
	Seed      uint64
	Width     int // 0 = use the scene's width
	Thumbnail string
	Upload    bool
	List      bool
	Verbose   bool
	Help      bool
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := parseFlags(flag.CommandLine, os.Args[1:], cfg)
	if opts.Help {
		showHelp()
		return
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if opts.List {
		if err := listScenes(opts.ScenesDir); err != nil {
			logger.Error("failed to list scenes", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(context.Background(), opts, cfg, logger); err != nil {
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}
}

// parseFlags registers the CLI flags on fs, using cfg for defaults
func parseFlags(fs *flag.FlagSet, args []string, cfg config.Config) Options {
	var opts Options
	fs.StringVar(&opts.Scene, "scene", cfg.Scene, "Scene ID (built-in name or file:<name>)")
	fs.StringVar(&opts.SceneFile, "scene-file", "", "Path to a JSON scene file (overrides -scene)")
	fs.StringVar(&opts.ScenesDir, "scenes-dir", cfg.ScenesDir, "Directory containing JSON scene files")
	fs.StringVar(&opts.Output, "output", cfg.Output, "Output file; extension selects format (.ppm, .png, .bmp, .tif)")
	fs.StringVar(&opts.Strategy, "strategy", cfg.Strategy, "Render strategy: series, rows or all")
	fs.IntVar(&opts.Samples, "samples", cfg.Samples, "Samples per pixel (0 disables antialiasing, -1 uses the scene's setting)")
	fs.IntVar(&opts.MaxDepth, "max-depth", cfg.MaxDepth, "Maximum bounce depth (0 uses the scene's setting)")
	fs.IntVar(&opts.Workers, "workers", cfg.Workers, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.Uint64Var(&opts.Seed, "seed", cfg.Seed, "Random seed")
	fs.IntVar(&opts.Width, "width", 0, "Image width; height follows the scene's aspect ratio (0 uses the scene's width)")
	fs.StringVar(&opts.Thumbnail, "thumbnail", "", "Also write a PNG preview at most 160px wide to this path")
	fs.BoolVar(&opts.Upload, "upload", false, "Upload the result to the configured S3 bucket")
	fs.BoolVar(&opts.List, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.Verbose, "v", false, "Enable debug logging")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")
	_ = fs.Parse(args)
	return opts
}

func showHelp() {
	fmt.Println("Go Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-14s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Settings can also be provided through environment variables or a .env file")
	fmt.Println("(RAYTRACER_SCENE, RAYTRACER_OUTPUT, RAYTRACER_STRATEGY, S3_BUCKET, ...).")
}

func listScenes(dir string) error {
	response, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("  %-20s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

// createScene resolves the scene named by the options
func createScene(opts Options) (*scene.Scene, error) {
	if opts.SceneFile != "" {
		return loaders.LoadScene(opts.SceneFile)
	}
	if opts.Scene == "" {
		return nil, fmt.Errorf("%w: empty scene name", scene.ErrUnknownScene)
	}
	return loaders.ResolveScene(opts.Scene, opts.ScenesDir)
}

// newRenderer applies the command line overrides and builds the scene's renderer
func newRenderer(sc *scene.Scene, opts Options, logger *slog.Logger) (*renderer.Renderer, error) {
	strategy, err := renderer.ParseStrategy(opts.Strategy)
	if err != nil {
		return nil, err
	}

	imageOpts := sc.ImageWithWidth(opts.Width)
	if opts.Samples >= 0 {
		imageOpts = imageOpts.WithAntialias(opts.Samples)
	}
	if opts.MaxDepth > 0 {
		sc.SamplingConfig.MaxDepth = opts.MaxDepth
	}

	options := renderer.RenderOptions{
		Strategy:   strategy,
		NumWorkers: opts.Workers,
		Seed:       opts.Seed,
	}
	return sc.NewRenderer(imageOpts, options, logger)
}

func run(ctx context.Context, opts Options, cfg config.Config, logger *slog.Logger) error {
	format, err := imageio.FormatFromPath(opts.Output)
	if err != nil {
		return err
	}
	if opts.Thumbnail != "" {
		if thumbFormat, err := imageio.FormatFromPath(opts.Thumbnail); err != nil || thumbFormat != imageio.FormatPNG {
			return fmt.Errorf("%w: thumbnails are written as PNG, got %q", imageio.ErrUnsupportedFormat, opts.Thumbnail)
		}
	}

	var uploader *publish.Uploader
	if opts.Upload {
		if uploader, err = publish.NewS3Uploader(cfg.S3, logger); err != nil {
			return err
		}
	}

	sc, err := createScene(opts)
	if err != nil {
		return err
	}
	logger.Info("scene loaded", "scene", sc.Name, "objects", sc.GetPrimitiveCount())

	r, err := newRenderer(sc, opts, logger)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// PPM streams straight to disk unless the pixels are needed again
	var img image.Image
	var stats renderer.RenderStats
	if format == imageio.FormatPPM && opts.Thumbnail == "" {
		stats, err = renderPPM(r, opts.Output)
	} else {
		img, stats, err = renderImage(r)
		if err == nil {
			err = imageio.Save(opts.Output, img)
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("Render completed in %v (%d pixels, %.1f samples/pixel, %s, %d workers)\n",
		stats.Elapsed.Round(time.Millisecond), stats.TotalPixels, stats.AverageSamples, stats.Strategy, stats.Workers)
	fmt.Printf("Render saved as %s\n", opts.Output)

	if opts.Thumbnail != "" {
		if err := imageio.Save(opts.Thumbnail, imageio.Thumbnail(img, thumbnailWidth)); err != nil {
			return fmt.Errorf("failed to save thumbnail: %w", err)
		}
		fmt.Printf("Thumbnail saved as %s\n", opts.Thumbnail)
	}

	if uploader != nil {
		data, err := os.ReadFile(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to read render for upload: %w", err)
		}
		key, err := uploader.Upload(ctx, filepath.Base(opts.Output), data, format.ContentType())
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded to s3://%s/%s\n", cfg.S3.Bucket, key)
	}
	return nil
}

// renderPPM streams the render to a P3 file
func renderPPM(r *renderer.Renderer, path string) (renderer.RenderStats, error) {
	file, err := os.Create(path)
	if err != nil {
		return renderer.RenderStats{}, fmt.Errorf("failed to create output file: %w", err)
	}

	stats, err := r.Render(imageio.NewPPMWriter(file))
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close output file: %w", closeErr)
	}
	return stats, err
}

// renderImage collects the render into memory
func renderImage(r *renderer.Renderer) (*image.RGBA, renderer.RenderStats, error) {
	out := imageio.NewImageWriter()
	stats, err := r.Render(out)
	if err != nil {
		return nil, stats, err
	}
	return out.Image(), stats, nil
}
