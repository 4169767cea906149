package hitpattern

// Hitpattern is a per-event bitmap of fired-bin positions across planes
// at the tree's maximum depth: one bitmap per plane, each with
// 2^(maxDepth-1) bins spanning the detector width. It is cleared and
// refilled once per event.
type Hitpattern struct {
	maxDepth       uint32
	width          float64
	clusterMaxDist int
	bins           [][]binEntry
}

type binEntry struct {
	set  bool
	hits []*Hit
}

// New builds an empty Hitpattern for nPlanes planes at the given maximum
// depth and detector width, with clusterMaxDist adjacent bins set on
// either side of a hit's own bin.
func New(nPlanes int, maxDepth uint32, width float64, clusterMaxDist int) *Hitpattern {
	hp := &Hitpattern{
		maxDepth:       maxDepth,
		width:          width,
		clusterMaxDist: clusterMaxDist,
		bins:           make([][]binEntry, nPlanes),
	}
	nBins := hp.NumBins()
	for p := range hp.bins {
		hp.bins[p] = make([]binEntry, nBins)
	}
	return hp
}

// NumBins returns the number of bins per plane: 2^(maxDepth-1).
func (hp *Hitpattern) NumBins() int {
	return 1 << uint(hp.maxDepth-1)
}

// Clear resets every bin in every plane, ready for the next event.
func (hp *Hitpattern) Clear() {
	for p := range hp.bins {
		row := hp.bins[p]
		for i := range row {
			row[i] = binEntry{}
		}
	}
}

// SetHit sets the bin enclosing hit's position on the given plane, plus
// clusterMaxDist adjacent bins on either side.
func (hp *Hitpattern) SetHit(plane int, hit *Hit) {
	nBins := hp.NumBins()
	bin := int(hit.Pos * float64(nBins) / hp.width)
	for d := -hp.clusterMaxDist; d <= hp.clusterMaxDist; d++ {
		b := bin + d
		if b < 0 || b >= nBins {
			continue
		}
		e := &hp.bins[plane][b]
		e.set = true
		e.hits = append(e.hits, hit)
	}
}

// Test reports whether bin is set on plane, along with the hits that set
// it (possibly via neighbor-bin smearing).
func (hp *Hitpattern) Test(plane int, bin int32) (bool, []*Hit) {
	if plane < 0 || plane >= len(hp.bins) {
		return false, nil
	}
	nBins := int32(hp.NumBins())
	if bin < 0 || bin >= nBins {
		return false, nil
	}
	e := hp.bins[plane][bin]
	return e.set, e.hits
}
