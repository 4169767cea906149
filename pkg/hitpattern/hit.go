// Package hitpattern implements per-event hit bookkeeping: the Hit and
// WireHit types, HitSet (an ordered set of hit references), the
// Hitpattern bitmap ComparePattern matches against, and HitPairIter, the
// two-cursor merge iterator that pairs hits across companion planes.
package hitpattern

// Plane identifies a detector plane by its wire-orientation type and its
// index within that type, matching WireHit's (planeType, planeIndex)
// ordering key.
type Plane struct {
	Type  int
	Index int
}

// Hit is a detected ionization on a specific wire plane. Pos is the
// measured wire position; PosL/PosR are the left/right drift-ambiguous
// positions (Pos minus/plus the raw drift distance) used by Compare's
// proximity test.
type Hit struct {
	Plane      Plane
	WireNum    int32
	Pos        float64
	PosL       float64
	PosR       float64
	Resolution float64
	DriftTime  float64
}

// NewWireHit builds a Hit from a wire measurement, setting PosL and PosR
// both to pos the way WireHit's constructor does (fPosL = fPosR = pos
// before any drift-distance correction is applied); see WithDrift.
func NewWireHit(plane Plane, wireNum int32, pos, driftTime, resolution float64) *Hit {
	return &Hit{
		Plane:      plane,
		WireNum:    wireNum,
		Pos:        pos,
		PosL:       pos,
		PosR:       pos,
		Resolution: resolution,
		DriftTime:  driftTime,
	}
}

// WithDrift returns a copy of h with PosL/PosR widened by driftDist on
// either side of Pos, modeling the left/right ambiguity of a drift-chamber
// hit.
func (h *Hit) WithDrift(driftDist float64) *Hit {
	cp := *h
	cp.PosL = h.Pos - driftDist
	cp.PosR = h.Pos + driftDist
	return &cp
}

// Less implements the strict total order used to sort a HitSet:
// lexicographic on (plane.Type, plane.Index, wireNum, driftTime).
func Less(a, b *Hit) bool {
	if a.Plane.Type != b.Plane.Type {
		return a.Plane.Type < b.Plane.Type
	}
	if a.Plane.Index != b.Plane.Index {
		return a.Plane.Index < b.Plane.Index
	}
	if a.WireNum != b.WireNum {
		return a.WireNum < b.WireNum
	}
	return a.DriftTime < b.DriftTime
}

// DistLess is WireDistLess: identical to Less when maxDist is 0; for
// maxDist > 0, wires within maxDist of each other on the same plane are
// treated as equal for clustering purposes.
func DistLess(a, b *Hit, maxDist int32) bool {
	if a.Plane.Type != b.Plane.Type {
		return a.Plane.Type < b.Plane.Type
	}
	if a.Plane.Index != b.Plane.Index {
		return a.Plane.Index < b.Plane.Index
	}
	if a.WireNum+maxDist < b.WireNum {
		return true
	}
	if maxDist > 0 {
		return false
	}
	if a.WireNum > b.WireNum {
		return false
	}
	return a.DriftTime < b.DriftTime
}

// Compare determines whether two hits are within maxDist of each other in
// position space, accounting for their left/right drift ambiguity.
// Returns -1 if h is to the left of rhs, +1 if to the right, 0 if their
// (widened) position ranges overlap.
func (h *Hit) Compare(rhs *Hit, maxDist float64) int {
	if h.PosR+maxDist < rhs.PosL {
		return -1
	}
	if rhs.PosR+maxDist < h.PosL {
		return 1
	}
	return 0
}
