package hitpattern

import "sort"

// HitSet is a set of Hit references with the total order given by Less.
// It supports the intersection/union/difference operations road-building
// needs to track how the candidate set of hits consistent with a node
// shrinks as the walk descends, and is safe to copy by value (the zero
// value is an empty set).
type HitSet struct {
	items map[*Hit]struct{}
}

// NewHitSet builds a HitSet from the given hits, deduplicating by
// reference.
func NewHitSet(hits ...*Hit) HitSet {
	s := HitSet{items: make(map[*Hit]struct{}, len(hits))}
	for _, h := range hits {
		s.items[h] = struct{}{}
	}
	return s
}

// Len returns the number of hits in the set.
func (s HitSet) Len() int { return len(s.items) }

// Contains reports whether h is a member of s.
func (s HitSet) Contains(h *Hit) bool {
	_, ok := s.items[h]
	return ok
}

// Add returns a new HitSet with h inserted.
func (s HitSet) Add(h *Hit) HitSet {
	out := s.clone()
	out.items[h] = struct{}{}
	return out
}

func (s HitSet) clone() HitSet {
	out := HitSet{items: make(map[*Hit]struct{}, len(s.items))}
	for h := range s.items {
		out.items[h] = struct{}{}
	}
	return out
}

// Intersect returns the set of hits present in both s and other.
func (s HitSet) Intersect(other HitSet) HitSet {
	small, big := s, other
	if len(big.items) < len(small.items) {
		small, big = big, small
	}
	out := HitSet{items: make(map[*Hit]struct{})}
	for h := range small.items {
		if _, ok := big.items[h]; ok {
			out.items[h] = struct{}{}
		}
	}
	return out
}

// Union returns the set of hits present in either s or other.
func (s HitSet) Union(other HitSet) HitSet {
	out := HitSet{items: make(map[*Hit]struct{}, len(s.items)+len(other.items))}
	for h := range s.items {
		out.items[h] = struct{}{}
	}
	for h := range other.items {
		out.items[h] = struct{}{}
	}
	return out
}

// Difference returns the hits in s that are not in other.
func (s HitSet) Difference(other HitSet) HitSet {
	out := HitSet{items: make(map[*Hit]struct{})}
	for h := range s.items {
		if _, ok := other.items[h]; !ok {
			out.items[h] = struct{}{}
		}
	}
	return out
}

// Slice returns the set's members sorted by Less. The result is freshly
// allocated and safe for the caller to mutate.
func (s HitSet) Slice() []*Hit {
	out := make([]*Hit, 0, len(s.items))
	for h := range s.items {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}
