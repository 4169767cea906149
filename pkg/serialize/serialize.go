// Package serialize implements the binary round-trip of the pattern DAG:
// first-occurrence/back-reference encoding of a cyclic, shared-ownership
// graph into a flat byte stream, and back.
//
// The wire format is big-endian throughout, with an implementation
// preamble ahead of the per-node records the core design names: a magic
// tag, the tree's shape parameters, and the back-reference index width,
// so a deserializer never has to guess sizes while reading.
package serialize

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/jlab-tracking/treesearch/pkg/errors"
	"github.com/jlab-tracking/treesearch/pkg/pattern"
	"github.com/jlab-tracking/treesearch/pkg/patterntree"
)

// magic tags every tree file this package writes.
const magic = "TSP1"

// indexSizeFor returns the minimum number of bytes (1, 2, or 4) needed to
// encode a back-reference into a DAG of n total patterns.
func indexSizeFor(n uint32) uint8 {
	switch {
	case n < 1<<8:
		return 1
	case n < 1<<16:
		return 2
	default:
		return 4
	}
}

// bitWidthFor returns the number of bytes (1, 2, or 4) needed to encode a
// pattern bit value at the given number of tree levels: bits can grow as
// large as 2^(nLevels-1).
func bitWidthFor(nLevels uint32) uint8 {
	maxBit := uint64(1) << uint(nLevels-1)
	switch {
	case maxBit < 1<<8:
		return 1
	case maxBit < 1<<16:
		return 2
	default:
		return 4
	}
}

// Write serializes tree to w. On first visit to a Pattern it writes a
// 0x80-tagged header byte, the pattern's bits[1:] at the tree's bit
// width, and a big-endian uint16 child count, then recurses. On revisit
// it writes an untagged header byte and the pattern's previously
// assigned index at the tree's index width, then prunes.
func Write(w io.Writer, tree *patterntree.Tree) error {
	bw := bufio.NewWriter(w)

	totalPatterns := uint32(tree.NumPatterns())
	idxSize := indexSizeFor(totalPatterns)
	bitSize := bitWidthFor(tree.NLevels)

	if err := writeHeader(bw, tree, totalPatterns, idxSize, bitSize); err != nil {
		return err
	}

	seen := make(map[*pattern.Pattern]uint32, totalPatterns)
	var nextIndex uint32
	var werr error

	patterntree.Walk(tree.RootLink(), patterntree.VisitorFunc(func(nd *patterntree.NodeDescriptor) patterntree.Action {
		p := nd.Link.Pattern
		if idx, ok := seen[p]; ok {
			if err := bw.WriteByte(byte(nd.Link.Type)); err != nil {
				werr = err
				return patterntree.Terminate
			}
			if err := writeUint(bw, uint64(idx), idxSize); err != nil {
				werr = err
				return patterntree.Terminate
			}
			return patterntree.SkipChildren
		}

		seen[p] = nextIndex
		nextIndex++

		if err := bw.WriteByte(byte(nd.Link.Type) | 0x80); err != nil {
			werr = err
			return patterntree.Terminate
		}
		for _, b := range p.Bits[1:] {
			if err := writeUint(bw, uint64(b), bitSize); err != nil {
				werr = err
				return patterntree.Terminate
			}
		}
		if err := binary.Write(bw, binary.BigEndian, uint16(p.NumChildren())); err != nil {
			werr = err
			return patterntree.Terminate
		}
		return patterntree.Recurse
	}))

	if werr != nil {
		return errors.Wrap(errors.ErrCodeIO, werr, "write pattern tree")
	}
	return bw.Flush()
}

// WriteBytes serializes tree to an in-memory byte slice, for callers (the
// generation cache) that need a []byte rather than an io.Writer.
func WriteBytes(tree *patterntree.Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(w *bufio.Writer, tree *patterntree.Tree, totalPatterns uint32, idxSize, bitSize uint8) error {
	if _, err := w.WriteString(magic); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write magic")
	}
	fields := []any{
		tree.NLevels,
		uint32(tree.NPlanes),
		tree.Width,
		tree.MaxSlope,
		totalPatterns,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.BigEndian, f); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write header field")
		}
	}
	for _, z := range tree.ZPos {
		if err := binary.Write(w, binary.BigEndian, z); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write zpos")
		}
	}
	if err := w.WriteByte(idxSize); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write index size")
	}
	if err := w.WriteByte(bitSize); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write bit width")
	}
	return nil
}

func writeUint(w *bufio.Writer, v uint64, size uint8) error {
	var buf [4]byte
	switch size {
	case 1:
		buf[0] = byte(v)
		_, err := w.Write(buf[:1])
		return err
	case 2:
		buf[0] = byte(v >> 8)
		buf[1] = byte(v)
		_, err := w.Write(buf[:2])
		return err
	default:
		buf[0] = byte(v >> 24)
		buf[1] = byte(v >> 16)
		buf[2] = byte(v >> 8)
		buf[3] = byte(v)
		_, err := w.Write(buf[:4])
		return err
	}
}
