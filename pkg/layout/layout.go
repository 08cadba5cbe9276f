package layout

import (
	"slices"

	"github.com/goccy/go-json"

	"github.com/matzehuels/wbsview/pkg/wbs"
)

// Default spacing between tree columns (depth) and rows (siblings).
const (
	XGap = 260.0
	YGap = 120.0
)

// PositionedNode is a node record with layout coordinates. Positions are
// always produced fresh; a PositionedNode is never updated in place.
type PositionedNode struct {
	wbs.NodeRecord
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Base is the global tree layout of a graph. It is computed once per input
// and read-only afterwards.
type Base struct {
	// Nodes in depth order, then sibling order within a depth.
	Nodes        []PositionedNode `json:"nodes"`
	Hierarchy    []wbs.EdgeRecord `json:"hierarchy"`
	Dependencies []wbs.EdgeRecord `json:"dependencies"`
	Levels       Levels           `json:"levels"`

	// index maps node ids to positions in Nodes. Set by Compute and
	// UnmarshalJSON; a Base built as a literal is scanned instead.
	index map[string]int
}

// Node returns the positioned node with the given id.
func (b *Base) Node(id string) (PositionedNode, bool) {
	if b.index == nil {
		return scanNodes(b.Nodes, id)
	}
	i, ok := b.index[id]
	if !ok {
		return PositionedNode{}, false
	}
	return b.Nodes[i], true
}

// UnmarshalJSON decodes a cached layout and rebuilds its id index.
func (b *Base) UnmarshalJSON(data []byte) error {
	type plain Base
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = Base(p)
	b.index = IndexNodes(b.Nodes)
	return nil
}

// IndexNodes maps each node id to its position in nodes. The first
// occurrence wins.
func IndexNodes(nodes []PositionedNode) map[string]int {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := index[n.ID]; !dup {
			index[n.ID] = i
		}
	}
	return index
}

func scanNodes(nodes []PositionedNode, id string) (PositionedNode, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// Has reports whether id names a node of the layout.
func (b *Base) Has(id string) bool {
	_, ok := b.Node(id)
	return ok
}

// Rows groups node ids by depth, each row in sibling order.
func (b *Base) Rows() [][]string {
	if len(b.Nodes) == 0 {
		return nil
	}
	rows := make([][]string, b.Levels.Max()+1)
	for _, n := range b.Nodes {
		d := b.Levels[n.ID]
		rows[d] = append(rows[d], n.ID)
	}
	return rows
}

// Option configures [Compute].
type Option func(*options)

type options struct {
	xGap, yGap float64
}

// WithGaps overrides the column and row spacing. Non-positive values keep
// the defaults.
func WithGaps(x, y float64) Option {
	return func(o *options) {
		if x > 0 {
			o.xGap = x
		}
		if y > 0 {
			o.yGap = y
		}
	}
}

// Compute builds the base layout of g. It never fails: an empty graph gives
// an empty layout, and edges to unknown ids are carried without effect.
func Compute(g *wbs.Graph, opts ...Option) *Base {
	o := options{xGap: XGap, yGap: YGap}
	for _, opt := range opts {
		opt(&o)
	}

	levels := AssignLevels(g)

	byDepth := make([][]string, levels.Max()+1)
	for _, id := range g.NodeIDs() {
		d := levels[id]
		byDepth[d] = append(byDepth[d], id)
	}

	nodes := make([]PositionedNode, 0, g.NodeCount())
	for depth, ids := range byDepth {
		SortIDs(ids)
		for i, id := range ids {
			rec, _ := g.Node(id)
			nodes = append(nodes, PositionedNode{
				NodeRecord: rec,
				X:          float64(depth) * o.xGap,
				Y:          float64(i) * o.yGap,
			})
		}
	}

	return &Base{
		Nodes:        nodes,
		Hierarchy:    nonNil(g.Hierarchy()),
		Dependencies: nonNil(g.Dependencies()),
		Levels:       levels,
		index:        IndexNodes(nodes),
	}
}

func nonNil(edges []wbs.EdgeRecord) []wbs.EdgeRecord {
	if edges == nil {
		return []wbs.EdgeRecord{}
	}
	return slices.Clip(edges)
}
