// Package layout computes the base tree layout of a WBS graph.
//
// # Overview
//
// The base layout is a pure function of the loaded graph. It is computed
// once per input and then treated as read-only: view selection derives
// positions from it but never writes back.
//
// # Algorithm
//
// [Compute] runs four steps:
//
//  1. [Roots]: nodes that are never the target of a HIERARCHY edge.
//  2. [AssignLevels]: breadth-first traversal from all roots at once.
//     The first visit fixes a node's depth, so depth is the distance from
//     the nearest root. Nodes no root reaches get depth 0.
//  3. Sibling order: nodes of one depth are sorted with [CompareIDs],
//     numerically when both ids are numbers, lexicographically otherwise.
//  4. Coordinates: x = depth * XGap, y = index * YGap. The tree grows left
//     to right with siblings stacked top to bottom.
//
// # Hierarchy Shape
//
// HIERARCHY edges are expected to form a forest but nothing enforces it.
// Multi-parent nodes and cycles are laid out by the same visit-once rule:
// the first depth reached sticks. [Diagnose] reports such shapes, plus
// dangling edges, so hosts can warn about them without changing the layout.
//
// # Example
//
//	g, _ := graph.ReadGraphFile("wbs.json")
//	base := layout.Compute(g)
//	for _, n := range base.Nodes {
//	    fmt.Println(n.ID, base.Levels[n.ID], n.X, n.Y)
//	}
package layout
