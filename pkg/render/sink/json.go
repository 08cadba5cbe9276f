package sink

import (
	"maps"

	"github.com/goccy/go-json"

	"github.com/matzehuels/wbsview/pkg/view"
	"github.com/matzehuels/wbsview/pkg/wbs"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent     bool
	omitHidden bool
}

// WithIndent pretty-prints the payload.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithVisibleEdgesOnly drops edges whose endpoints are not both in the view.
func WithVisibleEdgesOnly() JSONOption { return func(r *jsonRenderer) { r.omitHidden = true } }

// Payload is the wire form of a view.
type Payload struct {
	Mode  string `json:"mode"`
	Focus string `json:"focus,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Position is a node's drawing coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a positioned node on the wire. Data is the node's own data
// object, passed through unchanged.
type Node struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	WBSCode  string         `json:"wbs_code,omitempty"`
	Position Position       `json:"position"`
	Label    string         `json:"label"`
	Data     map[string]any `json:"data"`
}

// Edge is an edge on the wire. Label is the edge type. Data is the edge's
// own data object, passed through unchanged.
type Edge struct {
	ID             string         `json:"id"`
	Source         string         `json:"source"`
	Target         string         `json:"target"`
	Label          string         `json:"label"`
	BasedOnVersion string         `json:"based_on_version,omitempty"`
	Approved       *bool          `json:"approved,omitempty"`
	Data           map[string]any `json:"data"`
}

// Build converts a view to its wire form.
func Build(v view.View, opts ...JSONOption) Payload {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	p := Payload{
		Mode:  string(v.Mode),
		Focus: v.Focus,
		Nodes: make([]Node, 0, len(v.Nodes)),
		Edges: make([]Edge, 0, len(v.Edges)),
	}
	for _, n := range v.Nodes {
		p.Nodes = append(p.Nodes, Node{
			ID:       n.ID,
			Type:     n.Type,
			WBSCode:  n.WBSCode,
			Position: Position{X: n.X, Y: n.Y},
			Label:    n.Label,
			Data:     copyAttrs(n.Attrs),
		})
	}
	for _, e := range v.Edges {
		if r.omitHidden && !v.Visible(e) {
			continue
		}
		p.Edges = append(p.Edges, Edge{
			ID:             e.ID,
			Source:         e.Source,
			Target:         e.Target,
			Label:          e.Type,
			BasedOnVersion: e.BasedOnVersion,
			Approved:       e.Approved,
			Data:           copyAttrs(e.Attrs),
		})
	}
	return p
}

// RenderJSON serializes a view.
func RenderJSON(v view.View, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	p := Build(v, opts...)
	if r.indent {
		return json.MarshalIndent(p, "", "  ")
	}
	return json.Marshal(p)
}

// copyAttrs returns a shallow copy of attrs, never nil.
func copyAttrs(attrs wbs.Attributes) map[string]any {
	data := make(map[string]any, len(attrs))
	maps.Copy(data, attrs)
	return data
}
