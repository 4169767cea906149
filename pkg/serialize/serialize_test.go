package serialize

import (
	"bytes"
	"testing"

	"github.com/jlab-tracking/treesearch/pkg/patterntree"
)

// Scenario 1: trivial tree. Node encoding for the lone root pattern
// should be exactly 4 bytes: a 1-byte new-node header, 1 bit byte
// (bits[1:] has length 1 at nLevels=2, fitting in a single byte), and a
// 2-byte child count.
func TestWriteTrivialTreeNodeSectionIsFourBytes(t *testing.T) {
	tree, err := patterntree.Generate(patterntree.Params{
		MaxDepth: 1, Width: 1, ZPos: []float64{0, 1}, MaxSlope: 0,
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, tree); err != nil {
		t.Fatal(err)
	}

	headerLen := len(magic) + 4 + 4 + 8 + 8 + 4 + 8*2 + 1 + 1
	nodeSection := buf.Bytes()[headerLen:]
	if len(nodeSection) != 4 {
		t.Errorf("expected 4-byte node section for the trivial tree, got %d: %x", len(nodeSection), nodeSection)
	}
}

func TestRoundTripTrivialTree(t *testing.T) {
	tree, err := patterntree.Generate(patterntree.Params{
		MaxDepth: 1, Width: 1, ZPos: []float64{0, 1}, MaxSlope: 0,
	})
	if err != nil {
		t.Fatal(err)
	}
	assertRoundTrip(t, tree)
}

func TestRoundTripDeeperTree(t *testing.T) {
	tree, err := patterntree.Generate(patterntree.Params{
		MaxDepth: 4, Width: 8, ZPos: []float64{0, 0.3, 0.6, 1}, MaxSlope: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	assertRoundTrip(t, tree)
}

// Scenario 5: a DAG with a shared child produces a back-reference on
// second occurrence. Deeper trees routinely share children (the dedup
// table collapses identical bit tuples), so this exercises the
// back-reference path end to end via round trip rather than asserting
// on raw bytes.
func TestRoundTripTreeWithSharedChildren(t *testing.T) {
	tree, err := patterntree.Generate(patterntree.Params{
		MaxDepth: 5, Width: 16, ZPos: []float64{0, 0.25, 0.5, 0.75, 1}, MaxSlope: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	stats := tree.Stats()
	if stats.NumLinks <= stats.NumPatterns {
		t.Skip("fixture did not produce a shared-child DAG to exercise back-references")
	}
	assertRoundTrip(t, tree)
}

func assertRoundTrip(t *testing.T, tree *patterntree.Tree) {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, tree); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	wantStats, gotStats := tree.Stats(), got.Stats()
	if wantStats != gotStats {
		t.Errorf("round-tripped stats differ: want %+v, got %+v", wantStats, gotStats)
	}
	if got.NLevels != tree.NLevels || got.NPlanes != tree.NPlanes {
		t.Errorf("round-tripped shape differs: want nLevels=%d nPlanes=%d, got nLevels=%d nPlanes=%d",
			tree.NLevels, tree.NPlanes, got.NLevels, got.NPlanes)
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("XXXX")))
	if err == nil {
		t.Error("expected an error for a bad magic tag")
	}
}

func TestReadRejectsTruncatedStream(t *testing.T) {
	tree, err := patterntree.Generate(patterntree.Params{
		MaxDepth: 3, Width: 4, ZPos: []float64{0, 1}, MaxSlope: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, tree); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:buf.Len()-2]
	if _, err := Read(bytes.NewReader(truncated)); err == nil {
		t.Error("expected an error reading a truncated stream")
	}
}
