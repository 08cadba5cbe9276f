package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/matzehuels/wbsview/pkg/layout"
)

func TestLayoutTable(t *testing.T) {
	base := layout.Compute(sampleGraph())
	out := layoutTable(base)

	for _, want := range []string{"Depth", "Project", "  Design", "Spec doc", "DOC", "260"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Project") > strings.Index(out, "Design") {
		t.Error("rows should follow layout order")
	}
}

func TestWriteLayoutJSON(t *testing.T) {
	base := layout.Compute(sampleGraph())

	var buf bytes.Buffer
	if err := writeLayoutJSON(&buf, base); err != nil {
		t.Fatalf("writeLayoutJSON() error: %v", err)
	}

	var decoded layout.Base
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Nodes) != len(base.Nodes) {
		t.Errorf("decoded %d nodes, want %d", len(decoded.Nodes), len(base.Nodes))
	}
	if decoded.Levels["2"] != 1 {
		t.Errorf("level of 2 = %d, want 1", decoded.Levels["2"])
	}
}

func TestNodeLabelFallsBackToID(t *testing.T) {
	n := layout.PositionedNode{}
	n.ID = "42"
	n.Label = " "
	if got := nodeLabel(n); got != "42" {
		t.Errorf("nodeLabel() = %q, want id", got)
	}
}
