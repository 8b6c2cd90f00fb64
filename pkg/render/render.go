// Package render turns resource-allocation and wait-for graphs into
// DOT, SVG, and PNG artifacts.
//
// # Overview
//
// Rendering is a two-step pipeline: [ToDOT] writes a graph as Graphviz DOT
// text, and [RenderSVG] or [RenderPNG] lay it out with the embedded
// Graphviz engine. [Render] bundles both steps behind a format name, which
// is what the HTTP API and CLI use:
//
//	data, err := render.Render(ctx, g, "svg", render.Options{})
//
// # Visual Language
//
// Processes are blue ellipses and resources are green boxes. Anything on a
// deadlock cycle turns red. Allocation edges are solid and run from holder
// to resource, request edges are dashed red and run from resource to
// requester, and wait-for edges connect process pairs directly.
package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/graph"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/observability"
)

// Options configures graph rendering.
type Options struct {
	// Detailed includes counts and metadata in node labels.
	// When false, only the node's display label is shown.
	Detailed bool

	// Engine selects the Graphviz layout engine: dot (default), neato,
	// fdp, sfdp, circo, or twopi.
	Engine string
}

// Formats supported by [Render].
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Render produces the graph in the named format. DOT and JSON are pure
// text transforms; SVG and PNG run the Graphviz layout engine.
func Render(ctx context.Context, g *graph.Graph, format string, opts Options) ([]byte, error) {
	format = strings.ToLower(format)
	observability.Render().OnRenderStart(ctx, format, g.NodeCount())
	start := time.Now()

	var data []byte
	var err error
	switch format {
	case FormatDOT:
		data = []byte(ToDOT(g, opts))
	case FormatSVG:
		data, err = RenderSVG(ctx, ToDOT(g, opts), opts)
	case FormatPNG:
		data, err = RenderPNG(ctx, ToDOT(g, opts), opts)
	case FormatJSON:
		data, err = graph.MarshalGraph(g)
	default:
		err = fmt.Errorf("unsupported render format %q", format)
	}

	observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return data, nil
}
