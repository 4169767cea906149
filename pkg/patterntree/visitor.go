// Package patterntree implements the pattern generator, the depth-first
// tree walker and its visitor abstraction, and the in-memory Tree that
// results from generation — the core build-time half of the engine.
package patterntree

import (
	"github.com/jlab-tracking/treesearch/pkg/hitpattern"
	"github.com/jlab-tracking/treesearch/pkg/pattern"
)

// Action is the disposition a Visitor returns for each visited node.
type Action int

const (
	// Recurse continues the walk into the node's children.
	Recurse Action = iota
	// SkipChildren prunes the subtree rooted at the visited node but lets
	// the walk continue with the node's siblings.
	SkipChildren
	// Terminate aborts the entire walk immediately.
	Terminate
)

// NodeDescriptor is a traversal snapshot: a Link paired with the cumulative
// shift/mirror state accumulated from the tree root down to this point.
// Hits and Used are populated only by consumers that match against event
// data (see pkg/road); generation-time visitors leave them at their zero
// value. Used is explicitly mutable — Road.Finish writes it after a
// NodeDescriptor has been copied out of the walk by ComparePattern.
type NodeDescriptor struct {
	Link     *pattern.Link
	Depth    uint32
	Shift    uint64
	Mirrored bool
	Hits     hitpattern.HitSet
	Used     uint8 // 0 = unused, 1 = partially consumed, 2 = fully consumed
}

// Bit returns the effective (shifted, mirrored) bit value of the
// underlying pattern at plane index i, given the node's cumulative shift
// and mirror state.
func (nd *NodeDescriptor) Bit(i int) int32 {
	v := nd.Link.Pattern.Bits[i]
	if nd.Mirrored {
		v = nd.Link.Pattern.Width() - v
	}
	return v + int32(nd.Shift)
}

// Visitor is applied to every node visited by Walk.
type Visitor interface {
	Visit(nd *NodeDescriptor) Action
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(nd *NodeDescriptor) Action

// Visit implements Visitor.
func (f VisitorFunc) Visit(nd *NodeDescriptor) Action { return f(nd) }

// Walk performs a depth-first pre-order traversal starting at rootLink,
// dispatching each node to v. The root is visited at depth 0 with zero
// cumulative shift and no mirroring; each descent through a child Link of
// transform type t doubles the cumulative shift and adds the link's shift
// bit, and XORs the mirror flag, per the shift/mirror composition rule.
//
// Pattern enumeration order (head-first child list) and recursion order
// are part of the deterministic contract the serialized file format
// depends on: callers must not reorder children before walking.
func Walk(rootLink *pattern.Link, v Visitor) Action {
	return walk(NodeDescriptor{Link: rootLink}, v)
}

func walk(nd NodeDescriptor, v Visitor) Action {
	switch v.Visit(&nd) {
	case Terminate:
		return Terminate
	case SkipChildren:
		return Recurse
	}

	for child := nd.Link.Pattern.Child; child != nil; child = child.Next {
		childNd := NodeDescriptor{
			Link:     child,
			Depth:    nd.Depth + 1,
			Shift:    (nd.Shift << 1) | uint64(child.Type&pattern.Shift),
			Mirrored: nd.Mirrored != (child.Type&pattern.Mirror != 0),
		}
		if walk(childNd, v) == Terminate {
			return Terminate
		}
	}
	return Recurse
}
