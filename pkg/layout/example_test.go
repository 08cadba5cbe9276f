package layout_test

import (
	"fmt"

	"github.com/matzehuels/wbsview/pkg/layout"
	"github.com/matzehuels/wbsview/pkg/wbs"
)

func ExampleCompute() {
	g := wbs.New()
	g.AddNode(wbs.NodeRecord{ID: "A", Type: wbs.NodeTypeTask})
	g.AddNode(wbs.NodeRecord{ID: "B", Type: wbs.NodeTypeTask})
	g.AddNode(wbs.NodeRecord{ID: "C", Type: wbs.NodeTypeDoc})
	g.AddEdge(wbs.EdgeRecord{ID: "e1", Source: "A", Target: "B", Type: wbs.EdgeTypeHierarchy})
	g.AddEdge(wbs.EdgeRecord{ID: "e2", Source: "A", Target: "C", Type: wbs.EdgeTypeHierarchy})
	g.AddEdge(wbs.EdgeRecord{ID: "e3", Source: "B", Target: "C", Type: wbs.EdgeTypeDocDependsOn})

	base := layout.Compute(g)
	for _, n := range base.Nodes {
		fmt.Printf("%s depth=%d (%.0f, %.0f)\n", n.ID, base.Levels[n.ID], n.X, n.Y)
	}
	// Output:
	// A depth=0 (0, 0)
	// B depth=1 (260, 0)
	// C depth=1 (260, 120)
}

func ExampleHierarchyCycles() {
	g := wbs.New()
	for _, id := range []string{"1", "2", "3"} {
		g.AddNode(wbs.NodeRecord{ID: id})
	}
	g.AddEdge(wbs.EdgeRecord{ID: "a", Source: "1", Target: "2", Type: wbs.EdgeTypeHierarchy})
	g.AddEdge(wbs.EdgeRecord{ID: "b", Source: "2", Target: "3", Type: wbs.EdgeTypeHierarchy})
	g.AddEdge(wbs.EdgeRecord{ID: "c", Source: "3", Target: "2", Type: wbs.EdgeTypeHierarchy})

	fmt.Println(layout.HierarchyCycles(g))
	// Output:
	// [[2 3]]
}
