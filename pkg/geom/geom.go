// Package geom implements the two geometric filters every candidate
// pattern must pass before it is admitted to the tree: a maximum-slope
// bound and a straight-line band-intersection test against the detector's
// actual plane z-coordinates.
package geom

import (
	"math"

	"github.com/jlab-tracking/treesearch/pkg/pattern"
)

// SlopeCheck reports whether pat's width, divided by the number of bins at
// the given depth, stays within maxSlope. A pattern of width < 2 always
// passes: it cannot exceed any reasonable slope bound regardless of depth.
func SlopeCheck(pat *pattern.Pattern, depth uint32, maxSlope float64) bool {
	width := pat.Width()
	if width < 2 {
		return true
	}
	return math.Abs(float64(width-1)/float64(int64(1)<<depth)) <= maxSlope
}

// LineCheck verifies that a straight line can pass through the bin of
// every plane in pat, at the plane z-positions given by zpos (length must
// equal pat.NumBits(), normalized to [0,1] by the caller). It assumes a
// normalized pattern where pat.Bits[0] == 0.
//
// The arithmetic form mirrors the original implementation exactly and must
// not be reordered: for certain z-value configurations the band test is
// sensitive to floating-point rounding, and reordering terms changes which
// patterns survive at the boundary.
func LineCheck(pat *pattern.Pattern, zpos []float64) bool {
	n := pat.NumBits()
	if n == 0 {
		return true
	}
	xL := float64(pat.Bits[n-1])
	xRm1 := xL
	zL := zpos[n-1]
	zR := zL

	for i := n - 2; i > 0; i-- {
		dL := xL*zpos[i] - float64(pat.Bits[i])*zL
		if math.Abs(dL) >= zL {
			return false
		}
		dR := xRm1*zpos[i] - float64(pat.Bits[i])*zR
		if math.Abs(dR) >= zR {
			return false
		}

		if i > 1 {
			if dL > 0 {
				xRm1 = float64(pat.Bits[i])
				zR = zpos[i]
			}
			if dR < 0 {
				xL = float64(pat.Bits[i])
				zL = zpos[i]
			}
		}
	}
	return true
}
