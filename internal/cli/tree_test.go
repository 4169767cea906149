package cli

import (
	"bytes"
	"testing"

	"github.com/jlab-tracking/treesearch/pkg/patterntree"
	"github.com/jlab-tracking/treesearch/pkg/serialize"
)

func TestTreeFromBytes(t *testing.T) {
	tree, err := patterntree.Generate(testParams())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	var buf bytes.Buffer
	if err := serialize.Write(&buf, tree); err != nil {
		t.Fatalf("serialize.Write() error: %v", err)
	}

	got, err := treeFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("treeFromBytes() error: %v", err)
	}
	if got.NumPatterns() != tree.NumPatterns() {
		t.Errorf("round-tripped tree has %d patterns, want %d", got.NumPatterns(), tree.NumPatterns())
	}
}

func TestTreeFromBytesInvalidData(t *testing.T) {
	if _, err := treeFromBytes([]byte("not a tree")); err == nil {
		t.Error("treeFromBytes() with garbage input should return an error")
	}
}
