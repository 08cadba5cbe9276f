package graph

import (
	"strconv"

	"github.com/matzehuels/wbsview/pkg/wbs"
)

// Document is the wire form of a WBS graph.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is the wire form of a node record.
type Node struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	WBSCode string         `json:"wbs_code,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Edge is the wire form of an edge record.
type Edge struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Source string         `json:"source"`
	Target string         `json:"target"`
	Data   map[string]any `json:"data,omitempty"`
}

// FromWBS converts a loaded graph to its wire form. Nodes keep document
// order; hierarchy edges precede dependency edges.
func FromWBS(g *wbs.Graph) Document {
	doc := Document{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, Node{ID: n.ID, Type: n.Type, WBSCode: n.WBSCode, Data: n.Attrs})
	}
	for _, e := range append(g.Hierarchy(), g.Dependencies()...) {
		doc.Edges = append(doc.Edges, Edge{ID: e.ID, Type: e.Type, Source: e.Source, Target: e.Target, Data: e.Attrs})
	}
	return doc
}

// DeriveLabel returns the display label of a node: a non-empty string
// data.title, else a non-empty string data.name, else "{nodeType} {wbsCode}".
// The fallback keeps the separating space even when wbsCode is empty.
func DeriveLabel(nodeType, wbsCode string, data map[string]any) string {
	for _, key := range []string{"title", "name"} {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return nodeType + " " + wbsCode
}

func nodeFromRaw(m map[string]any) wbs.NodeRecord {
	data, _ := m["data"].(map[string]any)
	n := wbs.NodeRecord{
		ID:      scalar(m["id"]),
		Type:    scalar(m["type"]),
		WBSCode: scalar(m["wbs_code"]),
		Attrs:   wbs.Attributes(data),
	}
	n.Label = DeriveLabel(n.Type, n.WBSCode, data)
	return n
}

func edgeFromRaw(m map[string]any) wbs.EdgeRecord {
	data, _ := m["data"].(map[string]any)
	e := wbs.EdgeRecord{
		ID:             scalar(m["id"]),
		Type:           scalar(m["type"]),
		Source:         scalar(m["source"]),
		Target:         scalar(m["target"]),
		BasedOnVersion: scalar(data["based_on_version"]),
		Attrs:          wbs.Attributes(data),
	}
	if approved, ok := data["approved"].(bool); ok {
		e.Approved = &approved
	}
	return e
}

// scalar stringifies JSON scalars; objects, arrays and null become "".
func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
