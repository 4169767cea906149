package road

import (
	"github.com/jlab-tracking/treesearch/pkg/hitpattern"
	"github.com/jlab-tracking/treesearch/pkg/patterntree"
)

// MatchHandler is invoked for every tree node ComparePattern accepts as a
// match against the current event's Hitpattern. nd is a standalone copy
// (safe to retain past the call) with Hits populated and Used left at its
// zero value.
type MatchHandler func(nd patterntree.NodeDescriptor)

// ComparePattern is a patterntree.Visitor that matches tree nodes against
// a Hitpattern, tolerating up to kMaxMiss missing planes per the
// precomputed layerCombos acceptance set, and invokes a handler for every
// accepted match. It always returns Recurse: children at finer resolution
// may refine a parent's match.
type ComparePattern struct {
	hp          *hitpattern.Hitpattern
	layerCombos map[uint32]bool
	onMatch     MatchHandler
}

// NewComparePattern builds a ComparePattern visitor over hp for a tree of
// nPlanes planes, accepting matches missing zero or one plane.
func NewComparePattern(hp *hitpattern.Hitpattern, nPlanes int, onMatch MatchHandler) *ComparePattern {
	return &ComparePattern{
		hp:          hp,
		layerCombos: defaultLayerCombos(nPlanes),
		onMatch:     onMatch,
	}
}

// defaultLayerCombos builds the typical acceptance set: zero planes
// missing, or exactly one.
func defaultLayerCombos(nPlanes int) map[uint32]bool {
	combos := map[uint32]bool{0: true}
	for i := 0; i < nPlanes; i++ {
		combos[1<<uint(i)] = true
	}
	return combos
}

// Visit implements patterntree.Visitor.
func (cp *ComparePattern) Visit(nd *patterntree.NodeDescriptor) patterntree.Action {
	n := nd.Link.Pattern.NumBits()

	var missing uint32
	var hits []*hitpattern.Hit
	for p := 0; p < n; p++ {
		set, contributing := cp.hp.Test(p, nd.Bit(p))
		if !set {
			missing |= 1 << uint(p)
			continue
		}
		hits = append(hits, contributing...)
	}

	if cp.layerCombos[missing] {
		match := *nd
		match.Hits = hitpattern.NewHitSet(hits...)
		match.Used = 0
		cp.onMatch(match)
	}

	return patterntree.Recurse
}

var _ patterntree.Visitor = (*ComparePattern)(nil)
