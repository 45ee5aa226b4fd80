package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawbridge/pkg/cache"
	"github.com/matzehuels/drawbridge/pkg/mx"
	"github.com/matzehuels/drawbridge/pkg/render"
)

// artifactTTL bounds how long rendered artifacts stay in the cache.
const artifactTTL = 7 * 24 * time.Hour

// visualizeCommand creates the visualize command for rendering the logical tree.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		format   string
		output   string
		page     string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [file]",
		Short: "Render the logical tree as SVG, PNG, or DOT",
		Long: `Render the logical tree as SVG, PNG, or DOT.

The visualize command draws a page's logical parent/child hierarchy as a
node-link diagram using Graphviz. Only the structure is drawn: shapes,
styles and geometry from the source diagram are ignored.

SVG and PNG artifacts are cached locally for faster subsequent runs; use
--no-cache to force a fresh render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = c.Config.Format
			}
			if err := ValidateFormat(format); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], format, output, page, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&page, "page", "p", "", "page name or 1-based position")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include element type and id in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runVisualize loads the document, selects a page and renders it.
func (c *CLI) runVisualize(ctx context.Context, input, format, output, pageSelector string, detailed, noCache bool) error {
	doc, err := mx.Load(input, c.loadOptions())
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	p, err := c.selectPage(doc, pageSelector)
	if err != nil {
		return err
	}

	dot := render.ToDOT(p, render.Options{Detailed: detailed})

	// DOT output is cheap to recompute, so it skips the cache entirely.
	if format == FormatDOT {
		return writeOutput(output, []byte(dot))
	}

	if output == "" {
		output = defaultArtifactPath(input, format)
	}

	data, cacheHit, err := c.renderArtifact(ctx, dot, format, detailed, noCache)
	if err != nil {
		return err
	}

	if err := writeOutput(output, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSuccess("Rendered %s", p.Name())
	printStats(len(doc.Pages()), len(p.Elements()), cacheHit)
	return nil
}

// renderArtifact renders the DOT graph to the requested format, consulting
// the artifact store first. The DOT text already reflects the page and the
// label options, so its hash addresses the artifact completely.
func (c *CLI) renderArtifact(ctx context.Context, dot, format string, detailed, noCache bool) ([]byte, bool, error) {
	store := c.newStore(noCache)
	defer store.Close()

	dotHash := cache.Hash([]byte(dot))
	if a, ok, err := store.Get(ctx, dotHash, format, detailed); err == nil && ok {
		c.Logger.Debug("artifact cache hit", "format", format, "dot", dotHash[:8])
		return a.Data, true, nil
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = render.RenderSVG(dot)
	case FormatPNG:
		data, err = render.RenderPNG(dot)
	}
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return nil, false, fmt.Errorf("render %s: %w", format, err)
	}
	spinner.Stop()
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	artifact := &cache.Artifact{Format: format, DotHash: dotHash, Detailed: detailed, Data: data}
	if err := store.Put(ctx, artifact, artifactTTL); err != nil {
		c.Logger.Debug("artifact cache write failed", "err", err)
	}
	return data, false, nil
}

// defaultArtifactPath derives the output file name from the input path.
func defaultArtifactPath(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + format
}
