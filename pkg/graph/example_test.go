package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/wbsview/pkg/graph"
)

func ExampleReadGraph() {
	doc := `{
		"nodes": [
			{"id": "1", "type": "TASK", "wbs_code": "1", "data": {"title": "Plant build"}},
			{"id": "2", "type": "TASK", "wbs_code": "1.1"},
			{"id": "3", "type": "DOC", "data": {"name": "Site survey"}}
		],
		"edges": [
			{"id": "h1", "type": "HIERARCHY", "source": "1", "target": "2"},
			{"id": "d1", "type": "DOC_DEPENDS_ON", "source": "2", "target": "3"}
		]
	}`

	g, err := graph.ReadGraph(strings.NewReader(doc))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, n := range g.Nodes() {
		fmt.Printf("%s: %s\n", n.ID, n.Label)
	}
	fmt.Println("Hierarchy edges:", len(g.Hierarchy()))
	fmt.Println("Dependency edges:", len(g.Dependencies()))
	// Output:
	// 1: Plant build
	// 2: TASK 1.1
	// 3: Site survey
	// Hierarchy edges: 1
	// Dependency edges: 1
}
