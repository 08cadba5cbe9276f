package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/wbsview/pkg/errors"
	"github.com/matzehuels/wbsview/pkg/wbs"
)

// =============================================================================
// Loading
// =============================================================================

// ReadGraphFile reads a WBS document from path.
// A missing file yields an error with code FILE_NOT_FOUND.
func ReadGraphFile(path string) (*wbs.Graph, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// ReadGraph decodes a WBS document from r.
// Only malformed JSON is an error (code INVALID_INPUT); see the package
// documentation for how structurally odd documents are handled.
func ReadGraph(r io.Reader) (*wbs.Graph, error) {
	var raw any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph document")
	}
	return fromRaw(raw), nil
}

// ParseGraph decodes a WBS document held in memory.
func ParseGraph(data []byte) (*wbs.Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

func fromRaw(raw any) *wbs.Graph {
	g := wbs.New()
	doc, _ := raw.(map[string]any)

	nodes, _ := doc["nodes"].([]any)
	for _, item := range nodes {
		if m, ok := item.(map[string]any); ok {
			g.AddNode(nodeFromRaw(m))
		}
	}

	edges, _ := doc["edges"].([]any)
	for _, item := range edges {
		if m, ok := item.(map[string]any); ok {
			g.AddEdge(edgeFromRaw(m))
		}
	}
	return g
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalGraph encodes g in the document format. Output is deterministic
// for a given graph: nodes in document order, map keys sorted.
func MarshalGraph(g *wbs.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes g as indented JSON to w.
func WriteGraph(g *wbs.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromWBS(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
