package pattern

// ChildIter enumerates the up to 2^N candidate children of a parent
// Pattern of N bits under one level of resolution doubling. For trial
// index c counting down from 2^N-1 to 0, bit i of the candidate is
// 2*parent[i] + bit i of c. Candidates whose spread (max bit minus min
// bit) exceeds the absolute value of their own signed width (last bit
// minus first bit) are skipped. Surviving candidates are normalized (subtract the
// minimum bit, setting the Shift flag) and canonicalized (mirrored if the
// resulting width is negative, setting the Mirror flag).
//
// The iterator is single-pass: call Next until it returns false, then Type
// and Pattern reflect the last accepted candidate. Reset restarts
// enumeration from the top trial index.
type ChildIter struct {
	parent *Pattern
	child  Pattern
	count  int64
	typ    LinkType
	done   bool
}

// NewChildIter creates a child iterator over parent and immediately
// advances to its first candidate, mirroring the C++ constructor's
// reset()-on-construction behavior.
func NewChildIter(parent *Pattern) *ChildIter {
	it := &ChildIter{parent: parent, child: Pattern{Bits: make([]int32, parent.NumBits())}}
	it.Reset()
	return it
}

// Reset restarts enumeration from the top trial index.
func (it *ChildIter) Reset() {
	it.count = int64(1) << uint(it.parent.NumBits())
	it.done = false
	it.advance()
}

// Next advances to the following candidate. It returns false once
// enumeration is exhausted; the iterator must not be used afterward except
// via Reset.
func (it *ChildIter) Next() bool {
	if it.done {
		return false
	}
	it.advance()
	return !it.done
}

// Valid reports whether the iterator currently references an accepted
// candidate (mirrors the C++ `operator bool`).
func (it *ChildIter) Valid() bool {
	return !it.done
}

// Pattern returns the current candidate child pattern. The returned value
// is owned by the iterator and is overwritten by the next call to Next.
func (it *ChildIter) Pattern() *Pattern {
	return &it.child
}

// Type returns the transform type of the current candidate.
func (it *ChildIter) Type() LinkType {
	return it.typ
}

func (it *ChildIter) advance() {
	nbits := it.parent.NumBits()
	for it.count > 0 {
		it.count--
		c := it.count
		var minbit, maxbit int32 = 1, 0
		for ibit := nbits - 1; ibit >= 0; ibit-- {
			bit := it.parent.Bits[ibit] << 1
			if c&(int64(1)<<uint(ibit)) != 0 {
				bit++
			}
			it.child.Bits[ibit] = bit
			if bit < minbit {
				minbit = bit
			}
			if bit > maxbit {
				maxbit = bit
			}
		}
		width := it.child.Bits[nbits-1] - it.child.Bits[0]
		absWidth := width
		if absWidth < 0 {
			absWidth = -absWidth
		}
		if maxbit-minbit > absWidth {
			continue
		}

		var typ LinkType
		if minbit == 0 {
			typ = Plain
		} else {
			typ = Shift
			for ibit := nbits - 1; ibit >= 0; ibit-- {
				it.child.Bits[ibit] -= minbit
			}
		}
		if width < 0 {
			typ += Mirror
			width = -width
			for ibit := 0; ibit < nbits; ibit++ {
				it.child.Bits[ibit] = width - it.child.Bits[ibit]
			}
		}
		it.typ = typ
		return
	}
	it.count = -1
	it.done = true
}
