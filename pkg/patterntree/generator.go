package patterntree

import (
	"github.com/jlab-tracking/treesearch/pkg/geom"
	"github.com/jlab-tracking/treesearch/pkg/pattern"
)

// Tree is the in-memory result of a generation run or a deserialized
// file: the root pattern and the build parameters it was generated
// under. table is present only for trees built by Generate — it backs
// the generator's own dedup lookups during the build and is not required
// to compute Stats, which walks the DAG instead.
type Tree struct {
	Name     string
	Root     *pattern.Pattern
	NLevels  uint32
	NPlanes  int
	ZPos     []float64
	MaxSlope float64
	Width    float64

	table *pattern.HashTable
}

// NewTree builds a Tree wrapper around an already-constructed pattern DAG
// (typically produced by a deserializer), with no backing dedup table.
func NewTree(name string, root *pattern.Pattern, nLevels uint32, nPlanes int, zpos []float64, maxSlope, width float64) *Tree {
	return &Tree{
		Name:     name,
		Root:     root,
		NLevels:  nLevels,
		NPlanes:  nPlanes,
		ZPos:     zpos,
		MaxSlope: maxSlope,
		Width:    width,
	}
}

// NumPatterns returns the number of distinct patterns reachable in the
// tree's DAG — the total a serializer must know up front to size its
// back-reference indices.
func (t *Tree) NumPatterns() int {
	return t.Stats().NumPatterns
}

// RootLink wraps Root in a synthetic, untyped Link so Walk can be handed a
// single entry point; the root itself carries no transform.
func (t *Tree) RootLink() *pattern.Link {
	return &pattern.Link{Pattern: t.Root, Type: pattern.Plain}
}

// Generate builds a pattern DAG for the given parameters: a recursive
// descent from the all-zero root pattern, doubling resolution one level
// at a time, deduplicating via a content-hashed table and filtering
// candidates through SlopeCheck and LineCheck.
func Generate(params Params) (*Tree, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	zpos := params.normalizedZPos()
	nPlanes := len(zpos)
	nLevels := params.MaxDepth + 1

	root := pattern.NewRoot(nPlanes)
	table := pattern.NewHashTable(nLevels)
	table.Add(root)

	g := &generator{
		table:    table,
		zpos:     zpos,
		maxSlope: params.MaxSlope,
		nLevels:  nLevels,
	}
	g.makeChildNodes(root, 1)

	return &Tree{
		Name:     params.Name,
		Root:     root,
		NLevels:  nLevels,
		NPlanes:  nPlanes,
		ZPos:     zpos,
		MaxSlope: params.MaxSlope,
		Width:    params.Width,
		table:    table,
	}, nil
}

// generator holds the state shared across the recursive makeChildNodes
// descent: the dedup table and the geometric filter parameters.
type generator struct {
	table    *pattern.HashTable
	zpos     []float64
	maxSlope float64
	nLevels  uint32
}

// makeChildNodes grows parent's children at the given depth (the depth the
// children will occupy; parent itself sits at depth-1), then recurses into
// any child that hasn't yet been expanded, or was expanded from a greater
// depth than this one.
func (g *generator) makeChildNodes(parent *pattern.Pattern, depth uint32) {
	if node := g.table.Find(parent); node != nil {
		node.UsedAtDepth(depth - 1)
	}

	// Levels run from 0 to nLevels-2 (maxDepth-1), so a maxDepth=1 tree
	// is the root alone.
	if depth+1 >= g.nLevels {
		return
	}

	if parent.Child == nil {
		it := pattern.NewChildIter(parent)
		for it.Valid() {
			candidate := it.Pattern()
			typ := it.Type()

			if existing := g.table.Find(candidate); existing != nil {
				if depth >= existing.MinDepth || geom.SlopeCheck(existing.Pattern, depth, g.maxSlope) {
					parent.AddChild(existing.Pattern, typ)
				}
			} else if geom.SlopeCheck(candidate, depth, g.maxSlope) && geom.LineCheck(candidate, g.zpos) {
				stored := &pattern.Pattern{Bits: append([]int32(nil), candidate.Bits...)}
				g.table.Add(stored)
				parent.AddChild(stored, typ)
			}

			it.Next()
		}
	}

	for link := parent.Child; link != nil; link = link.Next {
		node := g.table.Find(link.Pattern)
		if node == nil || node.Pattern.Child == nil || node.MinDepth > depth {
			g.makeChildNodes(link.Pattern, depth+1)
		}
	}
}
