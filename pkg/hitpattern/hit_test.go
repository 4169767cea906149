package hitpattern

import "testing"

func TestCompareOverlapping(t *testing.T) {
	a := NewWireHit(Plane{0, 0}, 1, 1.0, 0, 0).WithDrift(0.1)
	b := NewWireHit(Plane{0, 0}, 2, 1.05, 0, 0).WithDrift(0.1)
	if got := a.Compare(b, 0); got != 0 {
		t.Errorf("expected overlapping hits to compare equal, got %d", got)
	}
}

func TestCompareDisjointLeft(t *testing.T) {
	a := NewWireHit(Plane{0, 0}, 1, 0.0, 0, 0).WithDrift(0.01)
	b := NewWireHit(Plane{0, 0}, 2, 5.0, 0, 0).WithDrift(0.01)
	if got := a.Compare(b, 0); got != -1 {
		t.Errorf("expected a left of b, got %d", got)
	}
	if got := b.Compare(a, 0); got != 1 {
		t.Errorf("expected b right of a, got %d", got)
	}
}

func TestCompareWithinMaxDistOverlaps(t *testing.T) {
	a := NewWireHit(Plane{0, 0}, 1, 0.0, 0, 0)
	b := NewWireHit(Plane{0, 0}, 2, 1.0, 0, 0)
	if got := a.Compare(b, 0); got != -1 {
		t.Errorf("expected disjoint at maxDist 0, got %d", got)
	}
	if got := a.Compare(b, 1.0); got != 0 {
		t.Errorf("expected overlap once maxDist covers the gap, got %d", got)
	}
}

func TestLessOrdersByPlaneThenWireThenTime(t *testing.T) {
	a := NewWireHit(Plane{0, 0}, 1, 0, 0, 0)
	b := NewWireHit(Plane{0, 0}, 2, 0, 0, 0)
	if !Less(a, b) {
		t.Error("expected a < b by wire number")
	}
	c := NewWireHit(Plane{1, 0}, 0, 0, 0, 0)
	if !Less(b, c) {
		t.Error("expected plane type to dominate wire number")
	}
}
