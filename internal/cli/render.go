package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/cache"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
	apperrors "github.com/dhananjayyy09/Deadlock-Prevention/pkg/errors"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/graph"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/render"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

const (
	viewRAG = "rag" // resource-allocation graph: processes and resources
	viewWFG = "wfg" // wait-for graph: processes only
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path ("-" for stdout)
	view     string // graph view: "rag" or "wfg"
	format   string // output format: "dot", "svg", "png", "json"
	engine   string // graphviz layout engine
	detailed bool   // include counts and metadata in node labels
	scenario string // render a built-in scenario instead of a file
	noCache  bool   // skip the artifact cache
}

// renderCommand creates the render command for generating graph artifacts.
// Rendered SVG and PNG output is cached by graph content hash, so repeat
// renders of an unchanged snapshot are instant.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		view:   viewRAG,
		format: render.FormatSVG,
	}

	cmd := &cobra.Command{
		Use:   "render [snapshot.json]",
		Short: "Render a snapshot as a graph image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if opts.view != viewRAG && opts.view != viewWFG {
				return fmt.Errorf("invalid view: %s (must be 'rag' or 'wfg')", opts.view)
			}
			if err := apperrors.ValidateRenderFormat(opts.format); err != nil {
				return err
			}
			return runRenderCmd(cmd.Context(), path, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default derived from input, '-' for stdout)")
	cmd.Flags().StringVar(&opts.view, "view", opts.view, "graph view: rag (default), wfg")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot, json")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "graphviz layout engine: dot (default), neato, fdp, sfdp, circo, twopi")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include counts and metadata in node labels")
	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "render a built-in scenario (see 'deadlock scenarios')")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the rendered artifact cache")

	return cmd
}

func runRenderCmd(ctx context.Context, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	snap, origin, err := loadSnapshot(path, opts.scenario)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d processes, %d resources", origin, len(snap.Processes), len(snap.Resources))

	g, err := buildView(ctx, snap, opts.view)
	if err != nil {
		return err
	}
	logger.Debugf("Built %s view: %d nodes, %d links", opts.view, g.NodeCount(), g.LinkCount())

	data, cached, err := renderCached(ctx, g, opts)
	if err != nil {
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = deriveOutput(path, opts.scenario, opts.view, opts.format)
	}
	if outputPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	printSuccess("Rendered %s view as %s", opts.view, opts.format)
	printFile(outputPath)
	printStats(g.NodeCount(), g.LinkCount(), cached)
	return nil
}

// buildView constructs the requested graph view. The wait-for view runs
// detection first so cycle membership is reflected in the node styling.
func buildView(ctx context.Context, snap *snapshot.Snapshot, view string) (*graph.Graph, error) {
	switch view {
	case viewRAG:
		res := detect.Analyze(ctx, snap)
		g, err := graph.BuildRAG(snap)
		if err != nil {
			return nil, err
		}
		graph.MarkCycles(g, res.Cycles)
		return g, nil
	case viewWFG:
		res := detect.Analyze(ctx, snap)
		return graph.BuildWFG(res.WFG, res.Cycles), nil
	default:
		return nil, fmt.Errorf("unknown view: %s", view)
	}
}

// renderCached renders the graph, going through the artifact cache keyed by
// the graph's content hash. The second return value reports a cache hit.
func renderCached(ctx context.Context, g *graph.Graph, opts *renderOpts) ([]byte, bool, error) {
	doc, err := json.Marshal(g)
	if err != nil {
		return nil, false, err
	}

	c, err := newCache(opts.noCache)
	if err != nil {
		return nil, false, err
	}
	defer c.Close()

	keyer := cache.NewDefaultKeyer()
	key := keyer.ArtifactKey(cache.Hash(doc), cache.ArtifactKeyOpts{
		Format: opts.format,
		Engine: opts.engine,
	})

	if data, ok, _ := c.Get(ctx, key); ok {
		return data, true, nil
	}

	data, err := renderWithSpinner(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}

	if err := c.Set(ctx, key, data, 0); err != nil {
		loggerFromContext(ctx).Debugf("Cache write failed: %v", err)
	}
	return data, false, nil
}

// renderWithSpinner runs the renderer, showing a spinner for the formats
// that invoke the Graphviz layout engine.
func renderWithSpinner(ctx context.Context, g *graph.Graph, opts *renderOpts) ([]byte, error) {
	renderOpts := render.Options{Detailed: opts.detailed, Engine: opts.engine}

	layoutBound := opts.format == render.FormatSVG || opts.format == render.FormatPNG
	if !layoutBound {
		return render.Render(ctx, g, opts.format, renderOpts)
	}

	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d nodes", g.NodeCount()))
	sp.Start()
	data, err := render.Render(ctx, g, opts.format, renderOpts)
	if err != nil {
		sp.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return nil, err
	}
	sp.Stop()
	return data, nil
}

// deriveOutput builds the default output path: the input file with the view
// and format appended, or a name derived from the scenario.
func deriveOutput(input, scenarioName, view, format string) string {
	base := "snapshot"
	switch {
	case input != "" && input != "-":
		base = strings.TrimSuffix(input, filepath.Ext(input))
	case scenarioName != "":
		base = scenarioName
	}
	return fmt.Sprintf("%s_%s.%s", base, view, format)
}
