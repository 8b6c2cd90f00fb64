package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// graphDoc is the wire shape of a graph.
type graphDoc struct {
	Nodes []*Node `json:"nodes"`
	Links []Link  `json:"links"`
}

// MarshalJSON encodes the graph in node-link form. Nodes appear in
// insertion order, links in emission order, so the output is stable for a
// given build. Empty graphs encode with empty arrays, not null.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := graphDoc{Nodes: g.nodes, Links: g.links}
	if doc.Nodes == nil {
		doc.Nodes = []*Node{}
	}
	if doc.Links == nil {
		doc.Links = []Link{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a node-link document, rebuilding the id indexes
// and re-checking the structural invariants. A document with duplicate
// ids, dangling link endpoints, or mismatched link directions fails.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc graphDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	rebuilt := New()
	for _, n := range doc.Nodes {
		if err := rebuilt.AddNode(*n); err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, l := range doc.Links {
		if err := rebuilt.AddLink(l); err != nil {
			return fmt.Errorf("link %s: %w", l.ID, err)
		}
	}
	*g = *rebuilt
	return nil
}

// MarshalGraph converts a graph to JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as indented JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
// Returns validation errors for structurally invalid graphs.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	g := New()
	if err := json.NewDecoder(r).Decode(g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}
