package wbs

import (
	"slices"
	"testing"
)

func TestGraphAddEdgePartitions(t *testing.T) {
	g := New()
	g.AddEdge(EdgeRecord{ID: "h1", Source: "a", Target: "b", Type: EdgeTypeHierarchy})
	g.AddEdge(EdgeRecord{ID: "d1", Source: "b", Target: "c", Type: EdgeTypeDocDependsOn})
	g.AddEdge(EdgeRecord{ID: "d2", Source: "c", Target: "a", Type: "hierarchy"})

	if got := len(g.Hierarchy()); got != 1 {
		t.Errorf("hierarchy = %d, want 1", got)
	}
	if got := len(g.Dependencies()); got != 2 {
		t.Errorf("dependencies = %d, want 2 (type match is case-sensitive)", got)
	}
	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}
}

func TestGraphAddNodeDuplicateKeepsOrder(t *testing.T) {
	g := New()
	g.AddNode(NodeRecord{ID: "a", Label: "first"})
	g.AddNode(NodeRecord{ID: "b"})
	g.AddNode(NodeRecord{ID: "a", Label: "second"})

	if got, want := g.NodeIDs(), []string{"a", "b"}; !slices.Equal(got, want) {
		t.Errorf("NodeIDs() = %v, want %v", got, want)
	}
	n, ok := g.Node("a")
	if !ok {
		t.Fatal("node a not found")
	}
	if n.Label != "second" {
		t.Errorf("label = %q, want the later record", n.Label)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
}

func TestGraphZeroValue(t *testing.T) {
	var g Graph
	if g.Has("x") {
		t.Error("zero graph should be empty")
	}
	g.AddNode(NodeRecord{ID: "x"})
	if !g.Has("x") {
		t.Error("AddNode on zero graph should work")
	}
}

func TestGraphAccessorsReturnCopies(t *testing.T) {
	g := New()
	g.AddNode(NodeRecord{ID: "a"})
	g.AddEdge(EdgeRecord{ID: "h", Source: "a", Target: "b", Type: EdgeTypeHierarchy})

	ids := g.NodeIDs()
	ids[0] = "mutated"
	edges := g.Hierarchy()
	edges[0].Target = "mutated"

	if g.NodeIDs()[0] != "a" {
		t.Error("NodeIDs() should return a copy")
	}
	if g.Hierarchy()[0].Target != "b" {
		t.Error("Hierarchy() should return a copy")
	}
}

func TestEdgeRecordOther(t *testing.T) {
	tests := []struct {
		name string
		edge EdgeRecord
		id   string
		want string
	}{
		{"from source", EdgeRecord{Source: "a", Target: "b"}, "a", "b"},
		{"from target", EdgeRecord{Source: "a", Target: "b"}, "b", "a"},
		{"self loop", EdgeRecord{Source: "a", Target: "a"}, "a", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.Other(tt.id); got != tt.want {
				t.Errorf("Other(%q) = %q, want %q", tt.id, got, tt.want)
			}
			if !tt.edge.Touches(tt.id) {
				t.Errorf("Touches(%q) = false, want true", tt.id)
			}
		})
	}
}
