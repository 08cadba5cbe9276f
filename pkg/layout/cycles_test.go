package layout

import (
	"slices"
	"testing"
)

func TestHierarchyCycles_None(t *testing.T) {
	g := build([]string{"a", "b", "c"}, hier("h1", "a", "b"), hier("h2", "a", "c"))

	if got := HierarchyCycles(g); len(got) != 0 {
		t.Errorf("HierarchyCycles() = %v, want none", got)
	}
}

func TestHierarchyCycles_Found(t *testing.T) {
	g := build([]string{"a", "b", "c", "d", "e"},
		hier("h1", "a", "b"),
		hier("h2", "b", "c"),
		hier("h3", "c", "b"),
		hier("h4", "e", "e"),
		hier("h5", "d", "a"),
		dep("d1", "c", "a"),
	)

	got := HierarchyCycles(g)

	if len(got) != 2 {
		t.Fatalf("HierarchyCycles() = %v, want 2 groups", got)
	}
	if !slices.Equal(got[0], []string{"b", "c"}) {
		t.Errorf("group 0 = %v, want [b c]", got[0])
	}
	if !slices.Equal(got[1], []string{"e"}) {
		t.Errorf("group 1 = %v, want [e]", got[1])
	}
}

func TestHierarchyCycles_IgnoresDangling(t *testing.T) {
	g := build([]string{"a"}, hier("h1", "a", "ghost"), hier("h2", "ghost", "a"))

	if got := HierarchyCycles(g); len(got) != 0 {
		t.Errorf("HierarchyCycles() = %v, want none", got)
	}
}

func TestDiagnose(t *testing.T) {
	g := build([]string{"p1", "p2", "c"},
		hier("h1", "p1", "c"),
		hier("h2", "p2", "c"),
		hier("h3", "p1", "ghost"),
		dep("d1", "c", "missing"),
	)

	d := Diagnose(g)

	if d.Empty() {
		t.Fatal("Diagnose() found nothing")
	}
	if !slices.Equal(d.MultiParent, []string{"c"}) {
		t.Errorf("MultiParent = %v, want [c]", d.MultiParent)
	}
	if !slices.Equal(d.Dangling, []string{"h3", "d1"}) {
		t.Errorf("Dangling = %v, want [h3 d1]", d.Dangling)
	}
	if len(d.Cycles) != 0 {
		t.Errorf("Cycles = %v, want none", d.Cycles)
	}
}

func TestDiagnose_CleanTree(t *testing.T) {
	g := build([]string{"a", "b"}, hier("h", "a", "b"))
	if d := Diagnose(g); !d.Empty() {
		t.Errorf("Diagnose() = %+v, want empty", d)
	}
}
