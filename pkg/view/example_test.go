package view_test

import (
	"fmt"
	"math"

	"github.com/matzehuels/wbsview/pkg/layout"
	"github.com/matzehuels/wbsview/pkg/view"
	"github.com/matzehuels/wbsview/pkg/wbs"
)

func ExampleDerive() {
	g := wbs.New()
	for _, id := range []string{"A", "B", "C"} {
		g.AddNode(wbs.NodeRecord{ID: id})
	}
	g.AddEdge(wbs.EdgeRecord{ID: "e1", Source: "A", Target: "B", Type: wbs.EdgeTypeHierarchy})
	g.AddEdge(wbs.EdgeRecord{ID: "e2", Source: "A", Target: "C", Type: wbs.EdgeTypeHierarchy})
	g.AddEdge(wbs.EdgeRecord{ID: "e3", Source: "B", Target: "C", Type: wbs.EdgeTypeDocDependsOn})
	base := layout.Compute(g)

	v := view.Derive(view.Focused("B"), base)
	fmt.Println(v.Mode, len(v.Edges), "edges")
	for _, n := range v.Nodes {
		fmt.Printf("%s (%.0f, %.0f)\n", n.ID, n.X, math.Abs(n.Y))
	}
	// Output:
	// LOCAL 2 edges
	// B (0, 0)
	// A (220, 0)
	// C (-220, 0)
}
