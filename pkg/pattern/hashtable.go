package pattern

// HashNode wraps a stored Pattern with the singly-linked bucket chain and
// the shallowest depth at which the pattern has been validated as usable.
type HashNode struct {
	Pattern  *Pattern
	Next     *HashNode
	MinDepth uint32
}

// UsedAtDepth lowers MinDepth to depth if depth is smaller than the current
// value. Called once per MakeChildNodes visit to record the shallowest
// level this pattern has been referenced from.
func (n *HashNode) UsedAtDepth(depth uint32) {
	if depth < n.MinDepth {
		n.MinDepth = depth
	}
}

// HashTable is a chaining dedup dictionary keyed on Pattern bit content.
// Its size is fixed at 2^(nLevels-1) on first insertion, mirroring the
// generator's sizing rule: this upper-bounds expected collisions per
// bucket for the tree depths the engine targets.
type HashTable struct {
	buckets []*HashNode
	nLevels uint32
}

// NewHashTable creates an empty table sized for a tree with the given
// number of levels (maxDepth+1). The backing slice is allocated lazily on
// the first Add, matching the generator's lazy-sizing behavior.
func NewHashTable(nLevels uint32) *HashTable {
	return &HashTable{nLevels: nLevels}
}

// Len returns the total number of patterns currently stored.
func (t *HashTable) Len() int {
	n := 0
	for _, b := range t.buckets {
		for hn := b; hn != nil; hn = hn.Next {
			n++
		}
	}
	return n
}

// Buckets exposes the underlying bucket slice for statistics and
// iteration; callers must not mutate it.
func (t *HashTable) Buckets() []*HashNode {
	return t.buckets
}

func (t *HashTable) ensureSized() {
	if len(t.buckets) == 0 {
		size := uint32(1) << (t.nLevels - 1)
		t.buckets = make([]*HashNode, size)
	}
}

// Add inserts pat as a new HashNode, head-linking it into its bucket.
// Head-insertion order is deterministic and part of the serialization
// contract.
func (t *HashTable) Add(pat *Pattern) *HashNode {
	t.ensureSized()
	idx := pat.Hash() % uint64(len(t.buckets))
	node := &HashNode{Pattern: pat, Next: t.buckets[idx], MinDepth: ^uint32(0)}
	t.buckets[idx] = node
	return node
}

// Find returns the HashNode storing a pattern with bits identical to pat,
// or nil if none is stored.
func (t *HashTable) Find(pat *Pattern) *HashNode {
	if len(t.buckets) == 0 {
		return nil
	}
	idx := pat.Hash() % uint64(len(t.buckets))
	for hn := t.buckets[idx]; hn != nil; hn = hn.Next {
		if hn.Pattern.Equal(pat) {
			return hn
		}
	}
	return nil
}
