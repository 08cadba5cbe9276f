package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/wbsview/pkg/layout"
	"github.com/matzehuels/wbsview/pkg/view"
	"github.com/matzehuels/wbsview/pkg/wbs"
)

func abc() *layout.Base {
	g := wbs.New()
	g.AddNode(wbs.NodeRecord{ID: "A", Type: wbs.NodeTypeTask, WBSCode: "1", Label: "Project"})
	g.AddNode(wbs.NodeRecord{ID: "B", Type: wbs.NodeTypeTask, WBSCode: "1.1", Label: "Design"})
	g.AddNode(wbs.NodeRecord{ID: "C", Type: wbs.NodeTypeDoc, Label: "Spec \"v2\""})
	g.AddEdge(wbs.EdgeRecord{ID: "h1", Source: "A", Target: "B", Type: wbs.EdgeTypeHierarchy})
	g.AddEdge(wbs.EdgeRecord{ID: "h2", Source: "A", Target: "C", Type: wbs.EdgeTypeHierarchy})
	g.AddEdge(wbs.EdgeRecord{ID: "d1", Source: "B", Target: "C", Type: wbs.EdgeTypeDocDependsOn})
	g.AddEdge(wbs.EdgeRecord{ID: "x", Source: "B", Target: "ghost", Type: wbs.EdgeTypeDocDependsOn})
	return layout.Compute(g)
}

func TestToDOT_Global(t *testing.T) {
	dot := ToDOT(view.Derive(view.Initial(), abc()), Options{})

	for _, want := range []string{
		"digraph G {",
		"layout=neato;",
		`"A" [label="Project", pos="0,0!"]`,
		`"B" [label="Design", pos="260,0!"]`,
		`"C" [label="Spec \"v2\"", pos="260,-120!", shape=note, style=filled]`,
		`"A" -> "B" [label="HIERARCHY"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "DOC_DEPENDS_ON") {
		t.Error("global view should not draw dependency edges")
	}
}

func TestToDOT_LocalFocusAndDangling(t *testing.T) {
	dot := ToDOT(view.Derive(view.Focused("B"), abc()), Options{})

	if !strings.Contains(dot, `"B" [label="Design", pos="0,0!", fillcolor=lightblue, penwidth=2]`) {
		t.Errorf("focus node not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, `"B" -> "C" [label="DOC_DEPENDS_ON", style=dashed, color=grey50]`) {
		t.Errorf("dependency edge missing or not dashed:\n%s", dot)
	}
	if strings.Contains(dot, "ghost") {
		t.Error("dangling edge should be omitted")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(view.Derive(view.Initial(), abc()), Options{Detailed: true})

	if !strings.Contains(dot, `label="Design\nTASK 1.1"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `label="Spec \"v2\"\nDOC"`) {
		t.Errorf("detailed label without code should be trimmed:\n%s", dot)
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(view.Derive(view.Initial(), layout.Compute(wbs.New())), Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(view.Derive(view.Focused("A"), abc()), Options{})

	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("Design")) {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() should fail on malformed DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}
