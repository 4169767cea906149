package hitpattern

import "testing"

func TestSetHitSetsEnclosingBin(t *testing.T) {
	hp := New(1, 5, 16.0, 0) // maxDepth=5 -> 16 bins, width 16
	h := mkHit(5)
	h.Pos = 5.0
	hp.SetHit(0, h)

	set, hits := hp.Test(0, 5)
	if !set {
		t.Fatal("expected bin 5 to be set")
	}
	if len(hits) != 1 || hits[0] != h {
		t.Errorf("expected bin to record the setting hit, got %v", hits)
	}
	if set, _ := hp.Test(0, 6); set {
		t.Error("expected neighboring bin to remain unset with clusterMaxDist=0")
	}
}

func TestSetHitSmearsNeighborBins(t *testing.T) {
	hp := New(1, 5, 16.0, 1)
	h := mkHit(5)
	h.Pos = 5.0
	hp.SetHit(0, h)

	for _, bin := range []int32{4, 5, 6} {
		set, _ := hp.Test(0, bin)
		if !set {
			t.Errorf("expected bin %d to be set via clusterMaxDist smearing", bin)
		}
	}
	if set, _ := hp.Test(0, 3); set {
		t.Error("bin outside clusterMaxDist must remain unset")
	}
}

func TestClearResetsAllBins(t *testing.T) {
	hp := New(1, 5, 16.0, 0)
	h := mkHit(5)
	h.Pos = 5.0
	hp.SetHit(0, h)
	hp.Clear()
	if set, _ := hp.Test(0, 5); set {
		t.Error("expected Clear to unset all bins")
	}
}

func TestTestOutOfRangeIsFalse(t *testing.T) {
	hp := New(1, 5, 16.0, 0)
	if set, _ := hp.Test(1, 0); set {
		t.Error("expected out-of-range plane to report unset")
	}
	if set, _ := hp.Test(0, 99); set {
		t.Error("expected out-of-range bin to report unset")
	}
}
