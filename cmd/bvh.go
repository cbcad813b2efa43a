package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Build the BVH for a scene and print its statistics.
func InspectBVH(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg := config.Default()
	cfg.Resolve(config.Flags{
		Scene:       ctx.String("scene"),
		MaxLeafSize: ctx.Int("leaf-size"),
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc, err := scene.Load(cfg.Scene, cfg.AspectRatio())
	if err != nil {
		return err
	}
	sc.Preprocess(cfg.MaxLeafSize)

	logger.Noticef("BVH statistics for %q\n%s", sc.Name, formatBVHStats(sc.BVH.Stats()))
	return nil
}

func formatBVHStats(stats geometry.BVHStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Primitives", fmt.Sprintf("%d", stats.Primitives)},
		{"Max leaf size", fmt.Sprintf("%d", stats.MaxLeafSize)},
		{"Nodes", fmt.Sprintf("%d", stats.TotalNodes)},
		{"Leaves", fmt.Sprintf("%d", stats.LeafNodes)},
		{"Max depth", fmt.Sprintf("%d", stats.MaxDepth)},
		{"Avg leaf depth", fmt.Sprintf("%.2f", stats.AvgLeafDepth)},
		{"Avg leaf size", fmt.Sprintf("%.2f", stats.AvgLeafSize)},
		{"Largest leaf", fmt.Sprintf("%d", stats.LargestLeaf)},
		{"Root surface area", fmt.Sprintf("%.3f", stats.RootSurfArea)},
	})

	table.Render()
	return buf.String()
}
