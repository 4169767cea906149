// Package pattern implements the bit-pattern template and its dedup
// machinery: Pattern, Link, the hash table keyed on bit content, and the
// ChildIter enumerator used by the pattern generator to walk candidate
// children under resolution doubling.
package pattern

import "github.com/cespare/xxhash/v2"

// LinkType encodes how a Link's referencing parent must transform the
// child Pattern's bits to obtain the effective child instance.
type LinkType int

const (
	// Plain indicates the child bits are used as stored.
	Plain LinkType = 0
	// Shift indicates the child bits must be shifted right by one
	// (i.e. the stored bits were normalized by subtracting the minimum).
	Shift LinkType = 1
	// Mirror indicates the child bits must be mirrored across the
	// pattern's width. Mirrored links occur only as direct children of
	// the tree root.
	Mirror LinkType = 2
)

// Pattern is a canonical N-tuple of plane bin indices. Bits[0] is always
// zero (left-normalization); Width is non-negative in canonical form.
// A Pattern owns the head of its outgoing Link list; Links are added by
// the generator as candidate children are accepted.
type Pattern struct {
	Bits  []int32
	Child *Link
}

// Link is a typed reference from a parent Pattern to a child Pattern.
type Link struct {
	Pattern *Pattern
	Type    LinkType
	Next    *Link
}

// NewRoot returns the trivial all-zero pattern at depth 0 for nPlanes
// detector planes.
func NewRoot(nPlanes int) *Pattern {
	return &Pattern{Bits: make([]int32, nPlanes)}
}

// NumBits returns the number of planes this pattern spans.
func (p *Pattern) NumBits() int {
	return len(p.Bits)
}

// Width returns max(bits) - min(bits), always non-negative. ChildIter
// computes its own signed width (last bit minus first bit, before
// normalization) to decide whether a candidate needs mirroring; that
// signed quantity is distinct from this one and is never obtained by
// calling Width.
func (p *Pattern) Width() int32 {
	if len(p.Bits) == 0 {
		return 0
	}
	min, max := p.Bits[0], p.Bits[0]
	for _, b := range p.Bits[1:] {
		if b < min {
			min = b
		}
		if b > max {
			max = b
		}
	}
	return max - min
}

// Equal reports whether p and q have identical bit tuples.
func (p *Pattern) Equal(q *Pattern) bool {
	if len(p.Bits) != len(q.Bits) {
		return false
	}
	for i, b := range p.Bits {
		if q.Bits[i] != b {
			return false
		}
	}
	return true
}

// Hash returns an xxhash content hash of the pattern's bits, used to
// bucket the dedup HashTable.
func (p *Pattern) Hash() uint64 {
	h := xxhash.New()
	buf := make([]byte, 4)
	for _, b := range p.Bits {
		buf[0] = byte(b >> 24)
		buf[1] = byte(b >> 16)
		buf[2] = byte(b >> 8)
		buf[3] = byte(b)
		h.Write(buf)
	}
	return h.Sum64()
}

// AddChild prepends a new Link of the given type to p's child list,
// referencing child. Head-insertion order matters: it is part of the
// deterministic traversal contract the serialized file format depends on.
func (p *Pattern) AddChild(child *Pattern, t LinkType) *Link {
	ln := &Link{Pattern: child, Type: t, Next: p.Child}
	p.Child = ln
	return ln
}

// NumChildren counts the entries in p's child link list.
func (p *Pattern) NumChildren() int {
	n := 0
	for ln := p.Child; ln != nil; ln = ln.Next {
		n++
	}
	return n
}
