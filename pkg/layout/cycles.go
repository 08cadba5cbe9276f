package layout

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/wbsview/pkg/wbs"
)

// Diagnostics describes hierarchy shapes that the layout tolerates but that
// usually indicate a data problem.
type Diagnostics struct {
	// Cycles lists node groups that reach themselves through HIERARCHY
	// edges. Each group is sorted by [CompareIDs].
	Cycles [][]string `json:"cycles,omitempty"`
	// MultiParent lists nodes with more than one hierarchy parent.
	MultiParent []string `json:"multi_parent,omitempty"`
	// Dangling lists ids of edges with an endpoint outside the node set.
	Dangling []string `json:"dangling,omitempty"`
}

// Empty reports whether nothing was found.
func (d Diagnostics) Empty() bool {
	return len(d.Cycles) == 0 && len(d.MultiParent) == 0 && len(d.Dangling) == 0
}

// Diagnose inspects g without changing how it is laid out.
func Diagnose(g *wbs.Graph) Diagnostics {
	d := Diagnostics{Cycles: HierarchyCycles(g)}

	parents := make(map[string]map[string]bool)
	for _, e := range g.Hierarchy() {
		if !g.Has(e.Source) || !g.Has(e.Target) {
			continue
		}
		if parents[e.Target] == nil {
			parents[e.Target] = make(map[string]bool)
		}
		parents[e.Target][e.Source] = true
	}
	for _, id := range g.NodeIDs() {
		if len(parents[id]) > 1 {
			d.MultiParent = append(d.MultiParent, id)
		}
	}

	for _, edges := range [][]wbs.EdgeRecord{g.Hierarchy(), g.Dependencies()} {
		for _, e := range edges {
			if !g.Has(e.Source) || !g.Has(e.Target) {
				d.Dangling = append(d.Dangling, e.ID)
			}
		}
	}
	return d
}

// HierarchyCycles returns the strongly connected components of the
// HIERARCHY edges that contain a cycle, including self-loops. Edges with an
// endpoint outside the node set are ignored. Groups are ordered by their
// first id.
func HierarchyCycles(g *wbs.Graph) [][]string {
	dg := simple.NewDirectedGraph()
	idToNode := make(map[string]int64)
	nodeToID := make(map[int64]string)
	node := func(id string) int64 {
		if n, ok := idToNode[id]; ok {
			return n
		}
		n := dg.NewNode()
		dg.AddNode(n)
		idToNode[id] = n.ID()
		nodeToID[n.ID()] = id
		return n.ID()
	}

	var cycles [][]string
	selfLoops := make(map[string]bool)
	for _, e := range g.Hierarchy() {
		if !g.Has(e.Source) || !g.Has(e.Target) {
			continue
		}
		// simple graphs reject self edges, so these are tracked apart.
		if e.Source == e.Target {
			if !selfLoops[e.Source] {
				selfLoops[e.Source] = true
				cycles = append(cycles, []string{e.Source})
			}
			continue
		}
		u, v := node(e.Source), node(e.Target)
		dg.SetEdge(dg.NewEdge(dg.Node(u), dg.Node(v)))
	}

	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) < 2 {
			continue
		}
		ids := make([]string, len(scc))
		for i, n := range scc {
			ids[i] = nodeToID[n.ID()]
		}
		SortIDs(ids)
		cycles = append(cycles, ids)
	}

	slices.SortFunc(cycles, func(a, b []string) int {
		return CompareIDs(a[0], b[0])
	})
	return cycles
}
