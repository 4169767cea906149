package cli

import (
	"github.com/jlab-tracking/treesearch/pkg/patterntree"
	"github.com/jlab-tracking/treesearch/pkg/serialize"
)

// treeFromBytes decodes a serialized tree previously written by the
// generate command, shared by the match and tui commands so neither
// duplicates the byte-slice-to-reader plumbing.
func treeFromBytes(data []byte) (*patterntree.Tree, error) {
	return serialize.ReadBytes(data)
}
