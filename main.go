package main

import (
	"fmt"
	"io"
	"os"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-pathtracer"
	app.Usage = "render built-in scenes with a BVH-accelerated path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Build a scene, wrap it in a bounding volume hierarchy and estimate every pixel
with adaptive Monte Carlo path tracing.

Settings come from the defaults, then the optional --config JSON file, then any
flag given on the command line. The output format follows the file extension
(png, bmp, tif, webp).`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Usage: "JSON config file",
				},
				cli.StringFlag{
					Name:  "scene, s",
					Usage: "built-in scene id (see the scenes command)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "maximum samples per pixel",
				},
				cli.IntFlag{
					Name:  "light-samples",
					Usage: "samples per area light for direct lighting",
				},
				cli.IntFlag{
					Name:  "batch",
					Usage: "samples between convergence checks",
				},
				cli.Float64Flag{
					Name:  "tolerance",
					Usage: "relative confidence half-width at which a pixel stops sampling",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum ray depth",
				},
				cli.IntFlag{
					Name:  "leaf-size",
					Usage: "maximum primitives per BVH leaf",
				},
				cli.BoolFlag{
					Name:  "hemisphere",
					Usage: "estimate direct lighting by uniform hemisphere sampling",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 uses every CPU)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Usage: "edge length of a render tile",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "base seed for the per-tile samplers",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame",
				},
				cli.StringFlag{
					Name:  "rate-out",
					Usage: "image filename for the per-pixel sample rate",
				},
				cli.IntFlag{
					Name:  "scale",
					Usage: "integer upscale factor applied to the written images",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:  "bvh",
			Usage: "build the BVH for a scene and print its statistics",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Usage: "built-in scene id",
				},
				cli.IntFlag{
					Name:  "leaf-size",
					Usage: "maximum primitives per BVH leaf",
				},
			},
			Action: cmd.InspectBVH,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
	}

	return app
}

// run executes the app and returns the process exit status. Action errors
// are not printed by the cli package, so they are reported here.
func run(args []string, stderr io.Writer) int {
	app := newApp()
	app.ErrWriter = stderr
	if err := app.Run(args); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stderr))
}
