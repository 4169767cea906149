package hitpattern

import "testing"

func mkHit(wire int32) *Hit {
	return NewWireHit(Plane{Type: 0, Index: 0}, wire, float64(wire), 0, 0)
}

func TestHitSetIntersectUnionDifference(t *testing.T) {
	h1, h2, h3 := mkHit(1), mkHit(2), mkHit(3)
	s1 := NewHitSet(h1, h2)
	s2 := NewHitSet(h2, h3)

	inter := s1.Intersect(s2)
	if inter.Len() != 1 || !inter.Contains(h2) {
		t.Errorf("expected intersection {h2}, got len=%d", inter.Len())
	}

	union := s1.Union(s2)
	if union.Len() != 3 {
		t.Errorf("expected union len 3, got %d", union.Len())
	}

	diff := s1.Difference(s2)
	if diff.Len() != 1 || !diff.Contains(h1) {
		t.Errorf("expected difference {h1}, got len=%d", diff.Len())
	}
}

func TestHitSetSliceIsSorted(t *testing.T) {
	h3, h1, h2 := mkHit(3), mkHit(1), mkHit(2)
	s := NewHitSet(h3, h1, h2)
	ordered := s.Slice()
	if len(ordered) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(ordered))
	}
	for i := 1; i < len(ordered); i++ {
		if !Less(ordered[i-1], ordered[i]) {
			t.Errorf("Slice not sorted at index %d", i)
		}
	}
}

func TestHitSetIntersectionMonotonicallyNonIncreasing(t *testing.T) {
	h1, h2, h3 := mkHit(1), mkHit(2), mkHit(3)
	common := NewHitSet(h1, h2, h3)
	next := common.Intersect(NewHitSet(h1, h2))
	if next.Len() > common.Len() {
		t.Error("intersection must never grow the common set")
	}
}
