package view

import (
	"math"

	"github.com/matzehuels/wbsview/pkg/layout"
	"github.com/matzehuels/wbsview/pkg/wbs"
)

// Radius is the default distance of neighbors from the focus in the LOCAL view.
const Radius = 220.0

// Mode selects between the whole tree and a focused neighborhood.
type Mode string

const (
	Global Mode = "GLOBAL"
	Local  Mode = "LOCAL"
)

// State is the view selection driven by user interaction.
// The zero value is not valid; use [Initial].
type State struct {
	Mode  Mode   `json:"mode"`
	Focus string `json:"focus,omitempty"`
}

// Initial returns the start state: GLOBAL with no focus.
func Initial() State { return State{Mode: Global} }

// Focused returns the LOCAL state centered on id.
func Focused(id string) State { return State{Mode: Local, Focus: id} }

// View is what the rendering collaborator draws.
type View struct {
	// Mode is the effective mode: GLOBAL when a LOCAL state fell back.
	Mode  Mode                    `json:"mode"`
	Focus string                  `json:"focus,omitempty"`
	Nodes []layout.PositionedNode `json:"nodes"`
	Edges []wbs.EdgeRecord        `json:"edges"`

	// index is set by Derive. Views built as literals are scanned.
	index map[string]int
}

// Option configures [Derive].
type Option func(*options)

type options struct {
	radius float64
}

// WithRadius overrides the neighbor circle radius. Non-positive values keep
// the default.
func WithRadius(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.radius = r
		}
	}
}

// Derive computes the view for state s over base.
func Derive(s State, base *layout.Base, opts ...Option) View {
	o := options{radius: Radius}
	for _, opt := range opts {
		opt(&o)
	}

	if s.Mode == Local && s.Focus != "" {
		if focus, ok := base.Node(s.Focus); ok {
			return local(focus, base, o.radius)
		}
	}
	return global(base)
}

func global(base *layout.Base) View {
	nodes := make([]layout.PositionedNode, len(base.Nodes))
	copy(nodes, base.Nodes)
	edges := make([]wbs.EdgeRecord, len(base.Hierarchy))
	copy(edges, base.Hierarchy)
	return View{Mode: Global, Nodes: nodes, Edges: edges, index: layout.IndexNodes(nodes)}
}

func local(focus layout.PositionedNode, base *layout.Base, radius float64) View {
	id := focus.ID

	edges := []wbs.EdgeRecord{}
	neighbors := make(map[string]bool)
	for _, set := range [][]wbs.EdgeRecord{base.Hierarchy, base.Dependencies} {
		for _, e := range set {
			if !e.Touches(id) {
				continue
			}
			edges = append(edges, e)
			if other := e.Other(id); other != id {
				neighbors[other] = true
			}
		}
	}

	var ring []layout.PositionedNode
	for _, n := range base.Nodes {
		if neighbors[n.ID] {
			ring = append(ring, n)
		}
	}

	nodes := make([]layout.PositionedNode, 0, len(ring)+1)
	nodes = append(nodes, layout.PositionedNode{NodeRecord: focus.NodeRecord})
	k := float64(len(ring))
	for i, n := range ring {
		angle := 2 * math.Pi * float64(i) / k
		nodes = append(nodes, layout.PositionedNode{
			NodeRecord: n.NodeRecord,
			X:          radius * math.Cos(angle),
			Y:          radius * math.Sin(angle),
		})
	}

	return View{Mode: Local, Focus: id, Nodes: nodes, Edges: edges, index: layout.IndexNodes(nodes)}
}

// Node returns the positioned node with the given id.
func (v View) Node(id string) (layout.PositionedNode, bool) {
	if v.index == nil {
		for _, n := range v.Nodes {
			if n.ID == id {
				return n, true
			}
		}
		return layout.PositionedNode{}, false
	}
	i, ok := v.index[id]
	if !ok {
		return layout.PositionedNode{}, false
	}
	return v.Nodes[i], true
}

// Visible reports whether both endpoints of e are drawn in v.
func (v View) Visible(e wbs.EdgeRecord) bool {
	_, src := v.Node(e.Source)
	_, dst := v.Node(e.Target)
	return src && dst
}
