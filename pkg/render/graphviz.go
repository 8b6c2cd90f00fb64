package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz engine.
// The returned SVG carries a normalized viewBox so it scales cleanly when
// embedded in a page.
func RenderSVG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	svg, err := renderFormat(ctx, dot, graphviz.SVG, opts.Engine)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using the embedded Graphviz engine.
func RenderPNG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG, opts.Engine)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format, engine string) ([]byte, error) {
	layout, ok := layoutFor(engine)
	if !ok {
		return nil, fmt.Errorf("unknown layout engine %q", engine)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("start graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(layout)

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer parsed.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &out); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return out.Bytes(), nil
}

// layoutFor maps an engine name to a Graphviz layout. Empty selects dot.
func layoutFor(engine string) (graphviz.Layout, bool) {
	switch engine {
	case "", "dot":
		return graphviz.DOT, true
	case "neato":
		return graphviz.NEATO, true
	case "fdp":
		return graphviz.FDP, true
	case "sfdp":
		return graphviz.SFDP, true
	case "circo":
		return graphviz.CIRCO, true
	case "twopi":
		return graphviz.TWOPI, true
	default:
		return "", false
	}
}

var (
	svgOpenTag = regexp.MustCompile(`<svg[^>]*>`)
	svgViewBox = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the drawing scales to
// its container: origin pinned at 0 0 and pixel dimensions taken from the
// viewBox instead of Graphviz's pt units. SVG without a viewBox passes
// through unchanged.
func normalizeViewBox(svg []byte) []byte {
	m := svgViewBox.FindSubmatch(svg)
	if m == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgOpenTag.ReplaceAll(svg, []byte(tag))
}
