package cmd

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	logger.Noticef("built-in scenes\n%s", formatSceneList(scene.List()))
	return nil
}

func formatSceneList(scenes []scene.SceneInfo) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Description"})
	for _, info := range scenes {
		table.Append([]string{info.ID, info.DisplayName, info.Description})
	}

	table.Render()
	return buf.String()
}
