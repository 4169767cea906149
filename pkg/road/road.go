// Package road implements event-time road building: clustering matching
// pattern-tree nodes into maximal groups of mutually compatible patterns
// (Road), and the ComparePattern visitor that produces the matches a Road
// is built from.
package road

import (
	"math"

	"github.com/jlab-tracking/treesearch/pkg/errors"
	"github.com/jlab-tracking/treesearch/pkg/hitpattern"
	"github.com/jlab-tracking/treesearch/pkg/patterntree"
)

// kMaxMiss is the maximum number of planes a hit set may leave
// unrepresented and still be considered a road-compatible match.
const kMaxMiss = 1

// Projection carries the per-event context a Road is built against: the
// plane topology and the Hitpattern bitmap patterns are matched against.
type Projection struct {
	NLayers    int
	NPlanes    int
	Hitpattern *hitpattern.Hitpattern
}

// Road incrementally clusters matching NodeDescriptors under a
// monotonically-shrinking common-hit-set constraint. It becomes immutable
// once Finish is called.
type Road struct {
	proj *Projection

	commonHits hitpattern.HitSet
	allHits    hitpattern.HitSet
	patterns   []*patterntree.NodeDescriptor

	left, right [2]int32

	started  bool
	finished bool
}

// New creates an empty Road builder against the given projection.
func New(proj *Projection) *Road {
	return &Road{
		proj:  proj,
		left:  [2]int32{math.MaxInt32, math.MaxInt32},
		right: [2]int32{math.MinInt32, math.MinInt32},
	}
}

// Add attempts to extend the road with nd's hit set. It returns true iff
// the pattern was accepted: the first pattern added is accepted iff its
// own hit set passes checkMatch; subsequent patterns are accepted unless
// intersecting their hits with the current common set would shrink it
// below the plane-coverage threshold.
func (r *Road) Add(nd *patterntree.NodeDescriptor) bool {
	if r.finished {
		errors.Invariant("road.Add called after Finish")
	}

	h := nd.Hits
	if !r.started {
		if !r.checkMatch(h) {
			return false
		}
		r.commonHits = h
		r.allHits = h
		r.started = true
	} else {
		newCommon := r.commonHits.Intersect(h)
		if newCommon.Len() > r.commonHits.Len() {
			errors.Invariant("road common-hit set grew from %d to %d", r.commonHits.Len(), newCommon.Len())
		}
		if newCommon.Len() < r.commonHits.Len() && !r.checkMatch(newCommon) {
			return false
		}
		r.commonHits = newCommon
		r.allHits = r.allHits.Union(h)
	}

	r.patterns = append(r.patterns, nd)
	r.updateBounds(nd)
	return true
}

func (r *Road) updateBounds(nd *patterntree.NodeDescriptor) {
	n := nd.Link.Pattern.NumBits()
	if n == 0 {
		return
	}
	first, last := nd.Bit(0), nd.Bit(n-1)
	if first < r.left[0] {
		r.left[0] = first
	}
	if last < r.left[1] {
		r.left[1] = last
	}
	if first > r.right[0] {
		r.right[0] = first
	}
	if last > r.right[1] {
		r.right[1] = last
	}
}

// checkMatch builds a bitmap of planes contributing to h and accepts iff
// at most kMaxMiss planes are unrepresented.
func (r *Road) checkMatch(h hitpattern.HitSet) bool {
	covered := make(map[hitpattern.Plane]bool)
	for _, hit := range h.Slice() {
		covered[hit.Plane] = true
	}
	missing := r.proj.NPlanes - len(covered)
	return missing <= kMaxMiss
}

// Finish marks every added pattern's NodeDescriptor.Used: 2 (fully
// consumed) if all of its hits are in the road's common set, 1 (partially
// consumed) otherwise. Road is immutable after this call; its hit sets
// and pattern list stay readable through the accessors. Finish is safe to
// call more than once — later calls are a no-op over the already-marked
// state.
func (r *Road) Finish() {
	if r.finished {
		return
	}
	for _, nd := range r.patterns {
		notCommon := nd.Hits.Difference(r.commonHits)
		if notCommon.Len() == 0 {
			nd.Used = 2
		} else {
			nd.Used = 1
		}
	}
	r.finished = true
}

// CommonHits returns the road's current (or, post-Finish, final) common
// hit set.
func (r *Road) CommonHits() hitpattern.HitSet { return r.commonHits }

// AllHits returns the union of every hit set added to the road.
func (r *Road) AllHits() hitpattern.HitSet { return r.allHits }

// Patterns returns the ordered list of NodeDescriptors added to the road.
func (r *Road) Patterns() []*patterntree.NodeDescriptor { return r.patterns }

// Bounds returns the extremal first-plane and last-plane bin indices
// (left, right) covered by the road's patterns.
func (r *Road) Bounds() (left, right [2]int32) { return r.left, r.right }
