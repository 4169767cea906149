package hitpattern

// pairState is the HitPairIter state machine named in the design: initial
// (before the first Next call), normal (advancing both cursors), scanning
// (a is fixed while b sweeps hits that all match it), and done.
type pairState int

const (
	pairInitial pairState = iota
	pairNormal
	pairScanning
	pairDone
)

// HitPairIter pairs hits from two ordered collections A and B by
// proximity within maxDist, using a merge-style two-cursor advance. Every
// input hit is emitted, possibly as a singleton (the partner side nil).
// Each B hit appears in exactly one pair; an A hit appears in one pair,
// or in one pair per matching B hit when it is the fixed side of a scan.
// Pairs are emitted in input order.
//
// Usage: call Next in a loop; it returns false once both cursors are
// exhausted and every hit has been emitted.
type HitPairIter struct {
	a, b    []*Hit
	ia, ib  int
	maxDist float64

	state pairState

	// scan-mode state: the fixed a-hit and the b-cursor saved at the
	// point scanning began.
	savedIB int
	scanA   *Hit

	curA, curB *Hit
}

// NewHitPairIter constructs an iterator over the two ordered collections
// a and b, pairing hits within maxDist of each other.
func NewHitPairIter(a, b []*Hit, maxDist float64) *HitPairIter {
	return &HitPairIter{a: a, b: b, maxDist: maxDist, state: pairInitial}
}

// Current returns the pair produced by the most recent call to Next. Nil
// on either side denotes a singleton.
func (it *HitPairIter) Current() (*Hit, *Hit) {
	return it.curA, it.curB
}

// Next advances to the next pair. It returns false once iteration is
// exhausted; Current then returns (nil, nil).
func (it *HitPairIter) Next() bool {
	if it.state == pairInitial {
		it.state = pairNormal
	}
	for {
		switch it.state {
		case pairDone:
			it.curA, it.curB = nil, nil
			return false

		case pairScanning:
			if it.ib < len(it.b) && it.scanA.Compare(it.b[it.ib], it.maxDist) == 0 {
				it.curA, it.curB = it.scanA, it.b[it.ib]
				it.ib++
				return true
			}
			// Scan exhausted: restore the saved b cursor, then re-seek it
			// past the hits already paired with scanA so none of them is
			// emitted again; advance past scanA and resume normal merging.
			it.ib = it.savedIB
			for it.ib < len(it.b) && it.scanA.Compare(it.b[it.ib], it.maxDist) == 0 {
				it.ib++
			}
			it.ia++
			it.state = pairNormal
			continue

		case pairNormal:
			aDone := it.ia >= len(it.a)
			bDone := it.ib >= len(it.b)
			if aDone && bDone {
				it.state = pairDone
				continue
			}
			if aDone {
				it.curA, it.curB = nil, it.b[it.ib]
				it.ib++
				return true
			}
			if bDone {
				it.curA, it.curB = it.a[it.ia], nil
				it.ia++
				return true
			}

			a, b := it.a[it.ia], it.b[it.ib]
			switch a.Compare(b, it.maxDist) {
			case -1:
				it.curA, it.curB = a, nil
				it.ia++
				return true
			case 1:
				it.curA, it.curB = nil, b
				it.ib++
				return true
			default:
				// Match: enter scan mode, fixing a and sweeping b while it
				// continues to match. savedIB is where the re-seek past
				// the paired b hits starts once the scan ends.
				it.scanA = a
				it.savedIB = it.ib
				it.state = pairScanning
				continue
			}
		}
	}
}
