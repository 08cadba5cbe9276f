package wbs

import "slices"

// EdgeTypeHierarchy marks parent→child edges of the breakdown tree. Every
// other edge type is treated as a dependency.
const EdgeTypeHierarchy = "HIERARCHY"

// Well-known dependency kinds. The set is open: any type other than
// [EdgeTypeHierarchy] is a dependency.
const (
	EdgeTypeDocDependsOn = "DOC_DEPENDS_ON"
)

// Well-known node types. The set is open.
const (
	NodeTypeTask = "TASK"
	NodeTypeDoc  = "DOC"
)

// Attributes is the opaque key-value payload carried by nodes and edges.
// Layout and view selection never interpret it; it is passed through to
// the rendering collaborator untouched.
type Attributes map[string]any

// NodeRecord is one work item or document of the breakdown.
// Records are immutable once loaded.
type NodeRecord struct {
	ID      string     `json:"id"`
	WBSCode string     `json:"wbs_code,omitempty"`
	Type    string     `json:"type"`
	Label   string     `json:"label"`
	Attrs   Attributes `json:"data,omitempty"`
}

// EdgeRecord connects two node ids. Source and Target are not checked
// against the node set: a dangling edge is carried and simply never drawn.
type EdgeRecord struct {
	ID             string     `json:"id"`
	Source         string     `json:"source"`
	Target         string     `json:"target"`
	Type           string     `json:"type"`
	BasedOnVersion string     `json:"based_on_version,omitempty"`
	Approved       *bool      `json:"approved,omitempty"`
	Attrs          Attributes `json:"data,omitempty"`
}

// IsHierarchy reports whether the edge belongs to the breakdown tree.
func (e EdgeRecord) IsHierarchy() bool { return e.Type == EdgeTypeHierarchy }

// Touches reports whether id is either endpoint of the edge.
func (e EdgeRecord) Touches(id string) bool { return e.Source == id || e.Target == id }

// Other returns the endpoint opposite to id. For a self-loop it returns id.
func (e EdgeRecord) Other(id string) string {
	if e.Source == id {
		return e.Target
	}
	return e.Source
}

// Graph is the loaded, immutable WBS graph: an id-keyed node set that
// remembers document order, and the edge list split into hierarchy and
// dependency sequences.
//
// The zero value is an empty graph. Use [New] and [Graph.AddNode] /
// [Graph.AddEdge] to build one; loaders in pkg/graph do this for JSON input.
type Graph struct {
	nodes        map[string]NodeRecord
	order        []string
	hierarchy    []EdgeRecord
	dependencies []EdgeRecord
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]NodeRecord)}
}

// AddNode inserts n. A node whose id is already present replaces the
// earlier record but keeps its position in document order.
func (g *Graph) AddNode(n NodeRecord) {
	if g.nodes == nil {
		g.nodes = make(map[string]NodeRecord)
	}
	if _, exists := g.nodes[n.ID]; !exists {
		g.order = append(g.order, n.ID)
	}
	g.nodes[n.ID] = n
}

// AddEdge appends e to the hierarchy or dependency sequence according to
// its type. Endpoints are not validated.
func (g *Graph) AddEdge(e EdgeRecord) {
	if e.IsHierarchy() {
		g.hierarchy = append(g.hierarchy, e)
		return
	}
	g.dependencies = append(g.dependencies, e)
}

// Node returns the record with the given id.
func (g *Graph) Node(id string) (NodeRecord, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Has reports whether id names a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeIDs returns node ids in document order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Nodes returns node records in document order.
func (g *Graph) Nodes() []NodeRecord {
	out := make([]NodeRecord, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Hierarchy returns a copy of the HIERARCHY edges in input order.
func (g *Graph) Hierarchy() []EdgeRecord { return slices.Clone(g.hierarchy) }

// Dependencies returns a copy of the non-hierarchy edges in input order.
func (g *Graph) Dependencies() []EdgeRecord { return slices.Clone(g.dependencies) }

// NodeCount returns the number of distinct node ids.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges of both kinds.
func (g *Graph) EdgeCount() int { return len(g.hierarchy) + len(g.dependencies) }
