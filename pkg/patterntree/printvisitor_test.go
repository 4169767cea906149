package patterntree

import (
	"strings"
	"testing"

	"github.com/jlab-tracking/treesearch/pkg/pattern"
)

func TestPrintVisitorDefaultPrintsAllFields(t *testing.T) {
	root := pattern.NewRoot(2)
	var buf strings.Builder
	pv := &PrintVisitor{Out: &buf}
	Walk(&pattern.Link{Pattern: root, Type: pattern.Plain}, pv)

	out := buf.String()
	for _, want := range []string{"depth=", "bits=", "type=", "shift="} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestPrintVisitorHonorsOptions(t *testing.T) {
	root := pattern.NewRoot(2)
	var buf strings.Builder
	pv := &PrintVisitor{Out: &buf, Options: ParsePrintOptions("D")}
	Walk(&pattern.Link{Pattern: root, Type: pattern.Plain}, pv)

	out := buf.String()
	if !strings.Contains(out, "depth=") {
		t.Errorf("expected depth field present, got %q", out)
	}
	if strings.Contains(out, "bits=") {
		t.Errorf("expected pattern field suppressed, got %q", out)
	}
}

func TestParsePrintOptionsIgnoresUnknownLetters(t *testing.T) {
	opts := ParsePrintOptions("DXZ")
	if len(opts) != 1 || !opts[PrintDepth] {
		t.Errorf("expected only PrintDepth recognized, got %v", opts)
	}
}
