package patterntree

import "testing"

func TestGenerateTrivialTreeIsRootOnly(t *testing.T) {
	tree, err := Generate(Params{
		Name:     "trivial",
		MaxDepth: 1,
		Width:    1,
		ZPos:     []float64{0, 1},
		MaxSlope: 0,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if tree.Root.Bits[0] != 0 || tree.Root.Bits[1] != 0 {
		t.Errorf("expected root pattern [0,0], got %v", tree.Root.Bits)
	}
	if tree.Root.NumChildren() != 0 {
		t.Errorf("expected zero children at maxDepth=1, got %d", tree.Root.NumChildren())
	}
}

func TestGenerateTwoPlaneDepthThreeRootHasTwoChildren(t *testing.T) {
	tree, err := Generate(Params{
		Name:     "two-plane-depth-3",
		MaxDepth: 3,
		Width:    4,
		ZPos:     []float64{0, 1},
		MaxSlope: 1,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	// Of the root's 2^N raw trial candidates, two normalize to [0,0] (a
	// Plain and a Shift link back to the root itself) and two normalize
	// to [0,1] (a Plain and a Mirror link) -- four links, but only two
	// distinct canonical patterns reachable from the root.
	if got := tree.Root.NumChildren(); got != 4 {
		t.Errorf("expected root to have 4 links, got %d", got)
	}

	seen := map[[2]int32]bool{}
	for link := tree.Root.Child; link != nil; link = link.Next {
		seen[[2]int32{link.Pattern.Bits[0], link.Pattern.Bits[1]}] = true
	}
	if len(seen) != 2 {
		t.Errorf("expected exactly 2 distinct root children, got %v", seen)
	}
	if !seen[[2]int32{0, 0}] || !seen[[2]int32{0, 1}] {
		t.Errorf("expected root children [0,0] and [0,1], got %v", seen)
	}
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	_, err := Generate(Params{MaxDepth: 2, Width: 1, ZPos: []float64{0}, MaxSlope: 0})
	if err == nil {
		t.Fatal("expected an error for a single-plane zpos")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	params := Params{Name: "det", MaxDepth: 4, Width: 8, ZPos: []float64{0, 0.3, 0.7, 1}, MaxSlope: 2}
	t1, err := Generate(params)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := Generate(params)
	if err != nil {
		t.Fatal(err)
	}
	s1, s2 := t1.Stats(), t2.Stats()
	if s1 != s2 {
		t.Errorf("expected identical stats across repeated generation, got %+v vs %+v", s1, s2)
	}
}

func TestGenerateEachPatternStoredOnce(t *testing.T) {
	tree, err := Generate(Params{Name: "dedup", MaxDepth: 4, Width: 8, ZPos: []float64{0, 0.5, 1}, MaxSlope: 4})
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]int{}
	for _, b := range tree.table.Buckets() {
		for hn := b; hn != nil; hn = hn.Next {
			key := patternKey(hn.Pattern.Bits)
			seen[key]++
		}
	}
	for key, n := range seen {
		if n != 1 {
			t.Errorf("pattern %s stored %d times, want exactly once", key, n)
		}
	}
}

func patternKey(bits []int32) string {
	s := ""
	for _, b := range bits {
		s += string(rune('0' + b))
	}
	return s
}
