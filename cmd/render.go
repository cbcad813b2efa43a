package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Render a built-in scene and write the frame to disk.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, err := render(runCtx, cfg)
	if err != nil {
		return err
	}

	displayRenderStats(cfg, stats)
	return nil
}

// loadConfig merges the optional config file with the command flags.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	cfg.Resolve(config.Flags{
		Scene:                  ctx.String("scene"),
		Output:                 ctx.String("out"),
		RateOutput:             ctx.String("rate-out"),
		Width:                  ctx.Int("width"),
		Height:                 ctx.Int("height"),
		Scale:                  ctx.Int("scale"),
		MaxLeafSize:            ctx.Int("leaf-size"),
		SamplesPerPixel:        ctx.Int("spp"),
		SamplesPerAreaLight:    ctx.Int("light-samples"),
		SamplesPerBatch:        ctx.Int("batch"),
		MaxTolerance:           ctx.Float64("tolerance"),
		MaxRayDepth:            ctx.Int("depth"),
		DirectHemisphereSample: ctx.Bool("hemisphere"),
		Workers:                ctx.Int("workers"),
		TileSize:               ctx.Int("tile-size"),
		Seed:                   ctx.Int64("seed"),
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// render builds the scene, runs the path tracer and saves the outputs.
func render(ctx context.Context, cfg config.Config) (renderer.RenderStats, error) {
	sc, err := scene.Load(cfg.Scene, cfg.AspectRatio())
	if err != nil {
		return renderer.RenderStats{}, err
	}
	sc.Preprocess(cfg.MaxLeafSize)
	logger.Infof("scene %q: %d primitives, %d lights", sc.Name, sc.PrimitiveCount(), len(sc.Lights))

	tracer := integrator.NewPathTracer(sc.BVH, sc.Lights, cfg.Integrator())
	rt, err := renderer.NewRaytracer(sc.Camera, tracer, cfg.Width, cfg.Height, cfg.Renderer(), log.New("renderer"))
	if err != nil {
		return renderer.RenderStats{}, err
	}

	stats, err := rt.Render(ctx)
	if err != nil {
		return renderer.RenderStats{}, err
	}
	logger.Infof("%d intersection tests", sc.BVH.IntersectionTests())

	if err := imageio.Save(cfg.Output, imageio.Scale(imageio.ToImage(rt.Buffer()), cfg.Scale)); err != nil {
		return renderer.RenderStats{}, err
	}
	logger.Noticef("wrote frame to %s", cfg.Output)

	if cfg.RateOutput != "" {
		if err := imageio.Save(cfg.RateOutput, imageio.Scale(imageio.SampleRateImage(rt.Buffer()), cfg.Scale)); err != nil {
			return renderer.RenderStats{}, err
		}
		logger.Noticef("wrote sample rate image to %s", cfg.RateOutput)
	}

	return stats, nil
}

func displayRenderStats(cfg config.Config, stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Resolution", "Samples", "Avg spp", "Min spp", "Max spp", "Render time"})
	table.Append([]string{
		cfg.Scene,
		fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.2f", stats.AverageSamples),
		fmt.Sprintf("%d", stats.MinSamples),
		fmt.Sprintf("%d / %d", stats.MaxSamplesUsed, stats.MaxSamples),
		stats.Elapsed.String(),
	})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
