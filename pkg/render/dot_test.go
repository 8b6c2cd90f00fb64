package render

import (
	"context"
	"strings"
	"testing"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/graph"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

func contentionGraph(t *testing.T) *graph.Graph {
	t.Helper()
	snap := &snapshot.Snapshot{
		Processes: []snapshot.Process{
			{PID: 1, Name: "writer"},
			{PID: 2},
		},
		Resources: map[string]snapshot.Resource{"disk": {Total: 2}},
		Allocation: map[snapshot.Key]int{
			{PID: 1, RID: "disk"}: 2,
		},
		Request: map[snapshot.Key]int{
			{PID: 2, RID: "disk"}: 1,
		},
	}
	g, err := graph.BuildRAG(snap)
	if err != nil {
		t.Fatalf("BuildRAG() error = %v", err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(contentionGraph(t), Options{})

	for _, want := range []string{
		"digraph G {",
		`"P1" [label="writer", shape=ellipse, fillcolor="#2563eb"];`,
		`"P2" [label="P2", shape=ellipse, fillcolor="#2563eb"];`,
		`"Rdisk" [label="Rdisk", shape=box, fillcolor="#10b981"];`,
		`"P1" -> "Rdisk" [label="2"];`,
		`"Rdisk" -> "P2" [style=dashed, color="#ef4444"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(contentionGraph(t), Options{Detailed: true})

	for _, want := range []string{
		`label="writer\npid: 1"`,
		`label="Rdisk\ntotal: 2"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %s:\n%s", want, dot)
		}
	}
}

func TestToDOTCycleHighlight(t *testing.T) {
	inCycle := snapshot.WaitFor{1: {2}, 2: {1}, 3: {1}}
	g := graph.BuildWFG(inCycle, snapshot.CycleSet{{1, 2}})

	dot := ToDOT(g, Options{})
	for _, want := range []string{
		`"P1" [label="P1", shape=ellipse, fillcolor="#ef4444", penwidth=2];`,
		`"P2" [label="P2", shape=ellipse, fillcolor="#ef4444", penwidth=2];`,
		`"P3" [label="P3", shape=ellipse, fillcolor="#2563eb"];`,
		`"P1" -> "P2" [arrowhead=vee];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("WFG DOT missing %s:\n%s", want, dot)
		}
	}
}

func TestToDOTDeterministic(t *testing.T) {
	first := ToDOT(contentionGraph(t), Options{Detailed: true})
	for i := 0; i < 10; i++ {
		if got := ToDOT(contentionGraph(t), Options{Detailed: true}); got != first {
			t.Fatalf("run %d produced different DOT", i)
		}
	}
}

func TestRenderDispatch(t *testing.T) {
	ctx := context.Background()
	g := contentionGraph(t)

	t.Run("DOT", func(t *testing.T) {
		data, err := Render(ctx, g, "dot", Options{})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.HasPrefix(string(data), "digraph G {") {
			t.Errorf("dot output does not start with digraph header")
		}
	})

	t.Run("JSON", func(t *testing.T) {
		data, err := Render(ctx, g, "json", Options{})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(string(data), `"nodes"`) {
			t.Errorf("json output missing nodes array:\n%s", data)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		if _, err := Render(ctx, g, "pdf", Options{}); err == nil {
			t.Error("Render() with unknown format should fail")
		}
	})

	t.Run("UnknownEngine", func(t *testing.T) {
		if _, err := Render(ctx, g, "svg", Options{Engine: "banana"}); err == nil {
			t.Error("Render() with unknown engine should fail")
		}
	})
}

func TestRenderSVGSmoke(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz render in short mode")
	}

	svg, err := RenderSVG(context.Background(), ToDOT(contentionGraph(t), Options{}), Options{})
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
	if !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Error("viewBox was not normalized")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox output unexpected:\n%s", out)
	}

	// SVG without a viewBox passes through untouched
	plain := []byte(`<svg width="10"></svg>`)
	if got := string(normalizeViewBox(plain)); got != string(plain) {
		t.Errorf("normalizeViewBox modified svg without viewBox: %s", got)
	}
}
