package layout

import "github.com/matzehuels/wbsview/pkg/wbs"

// Levels maps node ids to their tree depth (0 = root).
type Levels map[string]int

// Roots returns, in document order, the ids of nodes that never appear as
// the target of a HIERARCHY edge.
func Roots(g *wbs.Graph) []string {
	nonRoots := make(map[string]bool)
	for _, e := range g.Hierarchy() {
		nonRoots[e.Target] = true
	}

	var roots []string
	for _, id := range g.NodeIDs() {
		if !nonRoots[id] {
			roots = append(roots, id)
		}
	}
	return roots
}

// AssignLevels assigns every node of g a depth.
//
// The traversal is breadth-first from all roots simultaneously. A node's
// depth is fixed by its first visit and later visits are ignored, which
// makes the depth the distance to the nearest root and guarantees
// termination on cyclic input. Edge endpoints that are not nodes of g are
// never assigned. Nodes the traversal does not reach get depth 0.
//
// Time complexity is O(V + E).
func AssignLevels(g *wbs.Graph) Levels {
	children := make(map[string][]string)
	for _, e := range g.Hierarchy() {
		children[e.Source] = append(children[e.Source], e.Target)
	}

	type visit struct {
		id    string
		depth int
	}

	roots := Roots(g)
	queue := make([]visit, 0, len(roots))
	for _, id := range roots {
		queue = append(queue, visit{id: id})
	}

	levels := make(Levels, g.NodeCount())
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if _, seen := levels[curr.id]; seen || !g.Has(curr.id) {
			continue
		}
		levels[curr.id] = curr.depth

		for _, child := range children[curr.id] {
			if _, seen := levels[child]; !seen {
				queue = append(queue, visit{id: child, depth: curr.depth + 1})
			}
		}
	}

	for _, id := range g.NodeIDs() {
		if _, ok := levels[id]; !ok {
			levels[id] = 0
		}
	}
	return levels
}

// Max returns the deepest level, or 0 for an empty index.
func (l Levels) Max() int {
	m := 0
	for _, d := range l {
		m = max(m, d)
	}
	return m
}
