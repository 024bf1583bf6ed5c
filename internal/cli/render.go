package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitlanes/gitlanes/pkg/graphio"
	"github.com/gitlanes/gitlanes/pkg/pipeline"
)

// renderCommand creates the render command: commits.json -> visual output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		zoom       float64
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render [commits.json|url]",
		Short: "Render a commit graph to SVG, DOT, PNG, or draw-command JSON",
		Long: `Render a commit graph to SVG, DOT, PNG, or draw-command JSON.

The render command runs the full pipeline: lane assignment, edge building,
branch color resolution, and projection to the requested formats.
Results are cached locally so re-rendering the same commit list is instant.

The 'json' format emits the abstract draw-command list (positioned nodes,
edges, labels) for consumption by a custom rendering surface.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], formats, output, zoom, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&zoom, "zoom", 1.0, "zoom factor, clamped to [0.5, 2.0]")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, formats []string, output string, zoom float64, noCache bool) error {
	ctx := cmd.Context()

	cl, err := graphio.ReadCommitsSource(ctx, input)
	if err != nil {
		return fmt.Errorf("load commits %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
	spinner.Start()

	res, err := runner.Execute(ctx, cl.Commits, pipeline.Options{
		Formats: formats,
		Zoom:    zoom,
		Geo:     c.Config.Geometry(),
		Palette: c.Config.Graph.Palette,
		Logger:  c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(res.Artifacts, formats, input, output, res.RenderHit)
}

// writeArtifacts writes one file per rendered format. With a single format
// and an explicit output, the file goes exactly there; otherwise the format
// becomes the extension on the base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string, cached bool) error {
	base := output
	if base == "" {
		if strings.Contains(input, "://") {
			base = "graph"
		} else {
			base = strings.TrimSuffix(input, filepath.Ext(input))
		}
	}

	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		note := ""
		if cached {
			note = " (cached)"
		}
		printSuccess("Wrote %s%s", path, note)
	}
	return nil
}

// parseFormats parses a comma-separated format string into a slice,
// trimming whitespace and dropping empty elements so "svg, png" works.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return formats
}
