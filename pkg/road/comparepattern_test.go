package road

import (
	"testing"

	"github.com/jlab-tracking/treesearch/pkg/hitpattern"
	"github.com/jlab-tracking/treesearch/pkg/pattern"
	"github.com/jlab-tracking/treesearch/pkg/patterntree"
)

func TestComparePatternMatchesFullyCoveredNode(t *testing.T) {
	hp := hitpattern.New(3, 4, 8.0, 0) // 8 bins over width 8: position x sets bin x
	h0 := hitpattern.NewWireHit(hitpattern.Plane{Type: 0, Index: 0}, 0, 0.0, 0, 0)
	h1 := hitpattern.NewWireHit(hitpattern.Plane{Type: 0, Index: 1}, 5, 5.0, 0, 0)
	h2 := hitpattern.NewWireHit(hitpattern.Plane{Type: 0, Index: 2}, 5, 5.0, 0, 0)
	hp.SetHit(0, h0)
	hp.SetHit(1, h1)
	hp.SetHit(2, h2)

	var matches []patterntree.NodeDescriptor
	cp := NewComparePattern(hp, 3, func(nd patterntree.NodeDescriptor) {
		matches = append(matches, nd)
	})

	link := &pattern.Link{Pattern: &pattern.Pattern{Bits: []int32{0, 5, 5}}}
	action := cp.Visit(&patterntree.NodeDescriptor{Link: link})

	if action != patterntree.Recurse {
		t.Errorf("expected ComparePattern to always return Recurse, got %v", action)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(matches))
	}
	if matches[0].Hits.Len() != 3 {
		t.Errorf("expected matched hit set to cover all 3 planes, got %d", matches[0].Hits.Len())
	}
}

func TestComparePatternTolersatesOneMissingPlane(t *testing.T) {
	hp := hitpattern.New(3, 4, 8.0, 0) // 8 bins over width 8: position x sets bin x
	h0 := hitpattern.NewWireHit(hitpattern.Plane{Type: 0, Index: 0}, 0, 0.0, 0, 0)
	h1 := hitpattern.NewWireHit(hitpattern.Plane{Type: 0, Index: 1}, 5, 5.0, 0, 0)
	hp.SetHit(0, h0)
	hp.SetHit(1, h1)
	// plane 2 left unset: one plane missing, should still match.

	var matched bool
	cp := NewComparePattern(hp, 3, func(nd patterntree.NodeDescriptor) { matched = true })

	link := &pattern.Link{Pattern: &pattern.Pattern{Bits: []int32{0, 5, 5}}}
	cp.Visit(&patterntree.NodeDescriptor{Link: link})

	if !matched {
		t.Error("expected a match tolerating exactly one missing plane")
	}
}

func TestComparePatternRejectsTwoMissingPlanes(t *testing.T) {
	hp := hitpattern.New(3, 4, 8.0, 0) // 8 bins over width 8: position x sets bin x
	h0 := hitpattern.NewWireHit(hitpattern.Plane{Type: 0, Index: 0}, 0, 0.0, 0, 0)
	hp.SetHit(0, h0)
	// planes 1 and 2 unset.

	var matched bool
	cp := NewComparePattern(hp, 3, func(nd patterntree.NodeDescriptor) { matched = true })

	link := &pattern.Link{Pattern: &pattern.Pattern{Bits: []int32{0, 5, 5}}}
	cp.Visit(&patterntree.NodeDescriptor{Link: link})

	if matched {
		t.Error("expected no match when two planes are missing")
	}
}
