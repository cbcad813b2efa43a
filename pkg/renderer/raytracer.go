package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
)

var (
	// ErrNoCamera is returned when a raytracer is created without a camera
	ErrNoCamera = errors.New("renderer: no camera")

	// ErrNoIntegrator is returned when a raytracer is created without an integrator
	ErrNoIntegrator = errors.New("renderer: no integrator")

	// ErrEmptyFrame is returned for a frame with no pixels
	ErrEmptyFrame = errors.New("renderer: frame has no pixels")
)

// confidenceZ is the normal quantile for a 95% confidence interval
const confidenceZ = 1.96

// Camera generates primary rays from normalized film coordinates
type Camera interface {
	GenerateRay(u, v float64) core.Ray
}

// Config controls sampling and scheduling
type Config struct {
	SamplesPerPixel int     // Maximum camera samples per pixel
	SamplesPerBatch int     // Convergence is checked every this many samples
	MaxTolerance    float64 // Stop once the 95% half-width is within this fraction of the mean
	MaxRayDepth     int     // Bounce budget given to camera rays
	TileSize        int     // Size of each square tile
	NumWorkers      int     // Number of parallel workers (0 = use CPU count)
	Seed            int64   // Base seed for the per-tile samplers
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 64,
		SamplesPerBatch: 32,
		MaxTolerance:    0.05,
		MaxRayDepth:     5,
		TileSize:        32,
		NumWorkers:      0,
	}
}

// Raytracer drives an integrator over every pixel of the film
type Raytracer struct {
	camera     Camera
	integrator integrator.Integrator
	buffer     *SampleBuffer
	config     Config
	logger     log.Logger
}

// NewRaytracer creates a raytracer rendering a width x height film
func NewRaytracer(camera Camera, integ integrator.Integrator, width, height int, config Config, logger log.Logger) (*Raytracer, error) {
	if camera == nil {
		return nil, ErrNoCamera
	}
	if integ == nil {
		return nil, ErrNoIntegrator
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyFrame, width, height)
	}

	if config.SamplesPerPixel < 1 {
		config.SamplesPerPixel = 1
	}
	if config.SamplesPerBatch < 1 {
		config.SamplesPerBatch = 1
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = log.New("renderer")
	}

	return &Raytracer{
		camera:     camera,
		integrator: integ,
		buffer:     NewSampleBuffer(width, height),
		config:     config,
		logger:     logger,
	}, nil
}

// Buffer returns the film written by RaytracePixel and Render
func (rt *Raytracer) Buffer() *SampleBuffer {
	return rt.buffer
}

// RaytracePixel estimates pixel (x, y) with adaptive sampling and stores the
// averaged radiance and the number of samples taken. Camera samples are
// jittered inside the pixel. Every SamplesPerBatch samples the 95% confidence
// half-width of the luminance is compared against MaxTolerance times its mean
// and sampling stops once it is within that bound.
func (rt *Raytracer) RaytracePixel(x, y int, sampler core.Sampler) int {
	width, height := float64(rt.buffer.Width), float64(rt.buffer.Height)

	var sum core.Spectrum
	var s1, s2 float64
	taken := 0
	for taken < rt.config.SamplesPerPixel {
		jitter := sampler.Get2D()
		ray := rt.camera.GenerateRay((float64(x)+jitter.X)/width, (float64(y)+jitter.Y)/height)
		ray.Depth = rt.config.MaxRayDepth

		radiance := rt.integrator.EstimateRadiance(ray, sampler)
		sum = sum.Add(radiance)
		illum := radiance.Luminance()
		s1 += illum
		s2 += illum * illum
		taken++

		if taken > 1 && taken%rt.config.SamplesPerBatch == 0 && rt.converged(s1, s2, taken) {
			break
		}
	}

	rt.buffer.Set(x, y, sum.Multiply(1.0/float64(taken)), taken)
	return taken
}

// converged applies the confidence interval test to n luminance samples with
// running sum s1 and sum of squares s2
func (rt *Raytracer) converged(s1, s2 float64, n int) bool {
	count := float64(n)
	mean := s1 / count
	// Rounding can push the sum of squares slightly below s1^2/n
	variance := math.Max(0, (s2-s1*s1/count)/(count-1))
	halfWidth := confidenceZ * math.Sqrt(variance) / math.Sqrt(count)
	return halfWidth <= rt.config.MaxTolerance*mean
}

// renderTile samples every pixel inside a tile
func (rt *Raytracer) renderTile(ctx context.Context, tile *Tile) (RenderStats, error) {
	stats := newRenderStats(tile.Bounds.Dx()*tile.Bounds.Dy(), rt.config.SamplesPerPixel)
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			stats.addPixel(rt.RaytracePixel(x, y, tile.Sampler))
		}
	}
	return stats, nil
}

// Render estimates every pixel. Tiles are rendered in parallel by up to
// NumWorkers goroutines; each tile owns its pixels and its sampler, so the
// result does not depend on scheduling.
func (rt *Raytracer) Render(ctx context.Context) (RenderStats, error) {
	start := time.Now()
	tiles := NewTileGrid(rt.buffer.Width, rt.buffer.Height, rt.config.TileSize, rt.config.Seed)

	rt.logger.Infof("rendering %dx%d in %d tiles with %d workers (spp=%d, batch=%d, tolerance=%g, depth=%d)",
		rt.buffer.Width, rt.buffer.Height, len(tiles), rt.config.NumWorkers,
		rt.config.SamplesPerPixel, rt.config.SamplesPerBatch, rt.config.MaxTolerance, rt.config.MaxRayDepth)

	var (
		mu        sync.Mutex
		stats     = newRenderStats(rt.buffer.Width*rt.buffer.Height, rt.config.SamplesPerPixel)
		completed int
	)

	eg, egCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(rt.config.NumWorkers))
	for _, tile := range tiles {
		if err := sem.Acquire(egCtx, 1); err != nil {
			break
		}

		eg.Go(func() error {
			defer sem.Release(1)

			tileStats, err := rt.renderTile(egCtx, tile)
			if err != nil {
				return err
			}

			mu.Lock()
			stats.merge(tileStats)
			completed++
			rt.logger.Debugf("tile %d done (%d/%d), avg %.1f spp", tile.ID, completed, len(tiles),
				float64(tileStats.TotalSamples)/float64(tileStats.TotalPixels))
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return RenderStats{}, fmt.Errorf("renderer: %w", err)
	}
	// Acquire only fails when the context is done
	if err := ctx.Err(); err != nil {
		return RenderStats{}, fmt.Errorf("renderer: %w", err)
	}

	stats.finalize()
	stats.Elapsed = time.Since(start)
	rt.logger.Infof("rendered %d pixels, %d samples (avg %.2f spp) in %s",
		stats.TotalPixels, stats.TotalSamples, stats.AverageSamples, stats.Elapsed)
	return stats, nil
}
