package patterntree

import "github.com/jlab-tracking/treesearch/pkg/pattern"

// Stats summarizes a generated Tree: total distinct patterns, total
// links (counting a shared pattern once per referencing parent), and the
// deepest level any pattern's children reach.
type Stats struct {
	NumPatterns int
	NumLinks    int
	MaxDepth    uint32
	NumLevels   uint32
}

// Stats walks the Tree's DAG to compute build-time statistics,
// supplementing the core spec's data model with the CalcStatistics
// functionality the original generator exposes. It walks the DAG rather
// than the dedup table so it works equally for a freshly generated Tree
// and one rebuilt by the deserializer (which has no hash table).
func (t *Tree) Stats() Stats {
	s := Stats{NumLevels: t.NLevels}

	seen := map[*pattern.Pattern]bool{}
	Walk(t.RootLink(), VisitorFunc(func(nd *NodeDescriptor) Action {
		if nd.Depth > s.MaxDepth {
			s.MaxDepth = nd.Depth
		}
		p := nd.Link.Pattern
		if seen[p] {
			return SkipChildren
		}
		seen[p] = true
		s.NumPatterns++
		s.NumLinks += p.NumChildren()
		return Recurse
	}))
	return s
}

// DepthCounts returns, for each depth reached during a walk, the number
// of distinct patterns first encountered at that depth along some path —
// the per-depth breakdown the tui command's stats table browses. A
// pattern shared across multiple parents at the same depth is counted
// once at that depth.
func (t *Tree) DepthCounts() map[uint32]int {
	counts := map[uint32]int{}
	seenAtDepth := map[uint32]map[*pattern.Pattern]bool{}

	Walk(t.RootLink(), VisitorFunc(func(nd *NodeDescriptor) Action {
		p := nd.Link.Pattern
		seen := seenAtDepth[nd.Depth]
		if seen == nil {
			seen = map[*pattern.Pattern]bool{}
			seenAtDepth[nd.Depth] = seen
		}
		if seen[p] {
			return SkipChildren
		}
		seen[p] = true
		counts[nd.Depth]++
		return Recurse
	}))
	return counts
}

// CountVisitor is a Visitor that tallies nodes visited and the deepest
// depth reached, without mutating anything it visits.
type CountVisitor struct {
	NumVisited int
	MaxDepth   uint32
}

// Visit implements Visitor.
func (cv *CountVisitor) Visit(nd *NodeDescriptor) Action {
	cv.NumVisited++
	if nd.Depth > cv.MaxDepth {
		cv.MaxDepth = nd.Depth
	}
	return Recurse
}

var _ Visitor = (*CountVisitor)(nil)
