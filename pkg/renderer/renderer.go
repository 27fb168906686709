package renderer

import (
	"fmt"
	"image/color"
	"log/slog"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// spansPerWorker controls how finely a row is split for ByRows
const spansPerWorker = 4

// PixelWriter receives the rendered image in row-major order, top row first
type PixelWriter interface {
	WriteHeader(width, height int) error
	WritePixel(c color.RGBA) error
	Flush() error
}

// Renderer drives a camera over a world and streams pixels to a PixelWriter
type Renderer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator integrator.Integrator
	options    RenderOptions
	logger     *slog.Logger
}

// NewRenderer creates a renderer. A nil logger discards all output.
func NewRenderer(camera *Camera, world geometry.Hittable, integ integrator.Integrator, options RenderOptions, logger *slog.Logger) *Renderer {
	return &Renderer{
		camera:     camera,
		world:      world,
		integrator: integ,
		options:    options,
		logger:     core.LoggerOrNop(logger),
	}
}

// Render computes every pixel with the configured strategy and writes them
// to out. Write errors abort the render and are returned wrapped.
func (r *Renderer) Render(out PixelWriter) (RenderStats, error) {
	image := r.camera.Image()
	stats := RenderStats{Strategy: r.options.Strategy}

	switch r.options.Strategy {
	case Series, ByRows, AllAtOnce:
	default:
		return stats, fmt.Errorf("%w: %v", ErrUnknownStrategy, r.options.Strategy)
	}

	start := time.Now()
	stats.Workers = r.numWorkers()
	r.logger.Info("render started",
		"width", image.Width,
		"height", image.Height,
		"strategy", r.options.Strategy.String(),
		"workers", stats.Workers,
		"samples_per_pixel", image.SamplesTaken(),
		"antialias", image.Antialiased())

	if err := out.WriteHeader(image.Width, image.Height); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	var err error
	switch r.options.Strategy {
	case Series:
		err = r.renderSeries(out, &stats)
	case ByRows:
		err = r.renderByRows(out, &stats)
	case AllAtOnce:
		err = r.renderAllAtOnce(out, &stats)
	}
	if err != nil {
		return stats, err
	}

	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	stats.finish(start)
	r.logger.Info("render finished",
		"pixels", stats.TotalPixels,
		"samples", stats.TotalSamples,
		"elapsed", stats.Elapsed)
	return stats, nil
}

func (r *Renderer) numWorkers() int {
	if r.options.Strategy == Series {
		return 1
	}
	if r.options.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return r.options.NumWorkers
}

// shadePixel computes the final color of pixel (x, y). Each pixel draws from
// its own random stream so the result does not depend on scheduling.
func (r *Renderer) shadePixel(x, y int) (color.RGBA, int) {
	image := r.camera.Image()
	sampler := core.NewPixelSampler(r.options.Seed, uint64(y*image.Width+x))

	var ps PixelStats
	if !image.Antialiased() {
		ps.AddSample(r.integrator.RayColor(r.camera.CenterRay(x, y), r.world, sampler))
	} else {
		for s := 0; s < image.SamplesPerPixel; s++ {
			ps.AddSample(r.integrator.RayColor(r.camera.GetRay(x, y, sampler), r.world, sampler))
		}
	}
	return core.ToRGBA(ps.GetColor()), ps.SampleCount
}

func (r *Renderer) renderSeries(out PixelWriter, stats *RenderStats) error {
	image := r.camera.Image()
	for y := 0; y < image.Height; y++ {
		r.logger.Debug("scanlines remaining", "remaining", image.Height-y)
		for x := 0; x < image.Width; x++ {
			c, samples := r.shadePixel(x, y)
			if err := out.WritePixel(c); err != nil {
				return fmt.Errorf("write pixel (%d, %d): %w", x, y, err)
			}
			stats.addPixel(samples)
		}
		stats.Rows++
	}
	return nil
}

func (r *Renderer) renderByRows(out PixelWriter, stats *RenderStats) error {
	image := r.camera.Image()
	parts := stats.Workers * spansPerWorker

	pool := NewWorkerPool(r.shadePixel, stats.Workers, parts)
	pool.Start()
	defer pool.Stop()

	row := make([]color.RGBA, image.Width)
	for y := 0; y < image.Height; y++ {
		r.logger.Debug("scanlines remaining", "remaining", image.Height-y)
		samples := pool.RunBatch(splitRow(y, image.Width, parts, row))

		if err := writePixels(out, row, y); err != nil {
			return err
		}
		stats.TotalPixels += image.Width
		stats.TotalSamples += samples
		stats.Rows++
	}
	return nil
}

func (r *Renderer) renderAllAtOnce(out PixelWriter, stats *RenderStats) error {
	image := r.camera.Image()
	frame := make([]color.RGBA, image.Width*image.Height)

	tasks := make([]SpanTask, image.Height)
	for y := range tasks {
		tasks[y] = SpanTask{
			TaskID: y,
			Y:      y,
			X0:     0,
			X1:     image.Width,
			Out:    frame[y*image.Width : (y+1)*image.Width],
		}
	}

	pool := NewWorkerPool(r.shadePixel, stats.Workers, len(tasks))
	pool.Start()
	stats.TotalSamples = pool.RunBatch(tasks)
	pool.Stop()
	r.logger.Debug("frame computed", "rows", image.Height)

	for y := 0; y < image.Height; y++ {
		if err := writePixels(out, frame[y*image.Width:(y+1)*image.Width], y); err != nil {
			return err
		}
		stats.TotalPixels += image.Width
		stats.Rows++
	}
	return nil
}

func writePixels(out PixelWriter, row []color.RGBA, y int) error {
	for x, c := range row {
		if err := out.WritePixel(c); err != nil {
			return fmt.Errorf("write pixel (%d, %d): %w", x, y, err)
		}
	}
	return nil
}
