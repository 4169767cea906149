package patterntree

import (
	"testing"

	"github.com/jlab-tracking/treesearch/pkg/pattern"
)

func buildSmallTree() *pattern.Pattern {
	root := pattern.NewRoot(2)
	child := &pattern.Pattern{Bits: []int32{0, 1}}
	root.AddChild(child, pattern.Shift)
	grandchild := &pattern.Pattern{Bits: []int32{0, 2}}
	child.AddChild(grandchild, pattern.Plain)
	return root
}

func TestWalkVisitsRootAtDepthZeroWithNoTransform(t *testing.T) {
	root := buildSmallTree()
	var rootND NodeDescriptor
	Walk(&pattern.Link{Pattern: root, Type: pattern.Plain}, VisitorFunc(func(nd *NodeDescriptor) Action {
		if nd.Depth == 0 {
			rootND = *nd
		}
		return Recurse
	}))
	if rootND.Shift != 0 || rootND.Mirrored {
		t.Errorf("expected root to carry zero shift and no mirror, got shift=%d mirrored=%v", rootND.Shift, rootND.Mirrored)
	}
}

func TestWalkAccumulatesShift(t *testing.T) {
	root := buildSmallTree()
	depths := map[uint32]NodeDescriptor{}
	Walk(&pattern.Link{Pattern: root, Type: pattern.Plain}, VisitorFunc(func(nd *NodeDescriptor) Action {
		depths[nd.Depth] = *nd
		return Recurse
	}))

	if nd, ok := depths[1]; !ok || nd.Shift != 1 {
		t.Errorf("expected depth-1 node to carry shift=1, got %+v", nd)
	}
	if nd, ok := depths[2]; !ok || nd.Shift != 2 {
		t.Errorf("expected depth-2 node to inherit doubled shift, got %+v", nd)
	}
}

func TestWalkSkipChildrenPrunesSubtree(t *testing.T) {
	root := buildSmallTree()
	visited := 0
	Walk(&pattern.Link{Pattern: root, Type: pattern.Plain}, VisitorFunc(func(nd *NodeDescriptor) Action {
		visited++
		if nd.Depth == 1 {
			return SkipChildren
		}
		return Recurse
	}))
	if visited != 2 {
		t.Errorf("expected 2 visits (root + depth-1 node, grandchild pruned), got %d", visited)
	}
}

func TestWalkTerminateAbortsImmediately(t *testing.T) {
	root := buildSmallTree()
	visited := 0
	Walk(&pattern.Link{Pattern: root, Type: pattern.Plain}, VisitorFunc(func(nd *NodeDescriptor) Action {
		visited++
		return Terminate
	}))
	if visited != 1 {
		t.Errorf("expected exactly 1 visit before Terminate aborts the walk, got %d", visited)
	}
}
