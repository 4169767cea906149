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

type header struct {
	nLevels       uint32
	nPlanes       uint32
	width         float64
	maxSlope      float64
	totalPatterns uint32
	zpos          []float64
	idxSize       uint8
	bitSize       uint8
}

// Read deserializes a tree file written by Write. The header byte's high
// bit discriminates a new node (pattern state and child count follow)
// from a back-reference (a previously assigned index follows); child
// links are read in the order they were written and reattached in
// reverse so head-insertion order matches the original DAG. The number
// of distinct patterns read must equal the header's totalPatterns.
func Read(r io.Reader) (*patterntree.Tree, error) {
	br := bufio.NewReader(r)
	hdr, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	d := &decoder{br: br, hdr: hdr, arena: make([]*pattern.Pattern, 0, hdr.totalPatterns)}
	rootLink, err := d.readNode()
	if err != nil {
		return nil, err
	}
	if uint32(len(d.arena)) != hdr.totalPatterns {
		return nil, errors.New(errors.ErrCodeFormat, "expected %d total patterns, read %d", hdr.totalPatterns, len(d.arena))
	}

	return patterntree.NewTree("", rootLink.Pattern, hdr.nLevels, int(hdr.nPlanes), hdr.zpos, hdr.maxSlope, hdr.width), nil
}

// ReadBytes deserializes a tree previously written by WriteBytes (or Write)
// from an in-memory byte slice.
func ReadBytes(data []byte) (*patterntree.Tree, error) {
	return Read(bytes.NewReader(data))
}

func readHeader(r *bufio.Reader) (header, error) {
	var hdr header
	magicBuf := make([]byte, len(magic))
	if _, err := io.ReadFull(r, magicBuf); err != nil {
		return hdr, errors.Wrap(errors.ErrCodeFormat, err, "read magic")
	}
	if string(magicBuf) != magic {
		return hdr, errors.New(errors.ErrCodeFormat, "bad magic %q, want %q", magicBuf, magic)
	}

	for _, f := range []any{&hdr.nLevels, &hdr.nPlanes, &hdr.width, &hdr.maxSlope, &hdr.totalPatterns} {
		if err := binary.Read(r, binary.BigEndian, f); err != nil {
			return hdr, errors.Wrap(errors.ErrCodeFormat, err, "read header field")
		}
	}

	hdr.zpos = make([]float64, hdr.nPlanes)
	for i := range hdr.zpos {
		if err := binary.Read(r, binary.BigEndian, &hdr.zpos[i]); err != nil {
			return hdr, errors.Wrap(errors.ErrCodeFormat, err, "read zpos")
		}
	}

	idxSize, err := r.ReadByte()
	if err != nil {
		return hdr, errors.Wrap(errors.ErrCodeFormat, err, "read index size")
	}
	hdr.idxSize = idxSize

	bitSize, err := r.ReadByte()
	if err != nil {
		return hdr, errors.Wrap(errors.ErrCodeFormat, err, "read bit width")
	}
	hdr.bitSize = bitSize

	return hdr, nil
}

type decoder struct {
	br    *bufio.Reader
	hdr   header
	arena []*pattern.Pattern
}

func (d *decoder) readNode() (*pattern.Link, error) {
	tagByte, err := d.br.ReadByte()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFormat, err, "read node tag")
	}
	isNew := tagByte&0x80 != 0
	linkType := pattern.LinkType(tagByte &^ 0x80)
	if linkType < pattern.Plain || linkType > pattern.Mirror {
		return nil, errors.New(errors.ErrCodeFormat, "invalid link type %d", linkType)
	}

	if !isNew {
		idx, err := readUint(d.br, d.hdr.idxSize)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFormat, err, "read back-reference index")
		}
		if idx >= uint64(len(d.arena)) {
			return nil, errors.New(errors.ErrCodeFormat, "back-reference index %d out of range (%d seen)", idx, len(d.arena))
		}
		return &pattern.Link{Pattern: d.arena[idx], Type: linkType}, nil
	}

	bits := make([]int32, d.hdr.nPlanes)
	for i := 1; i < int(d.hdr.nPlanes); i++ {
		v, err := readUint(d.br, d.hdr.bitSize)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFormat, err, "read pattern bits")
		}
		bits[i] = int32(v)
	}
	pat := &pattern.Pattern{Bits: bits}
	d.arena = append(d.arena, pat)

	var nChildren uint16
	if err := binary.Read(d.br, binary.BigEndian, &nChildren); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFormat, err, "read child count")
	}

	children := make([]*pattern.Link, 0, nChildren)
	for i := 0; i < int(nChildren); i++ {
		cl, err := d.readNode()
		if err != nil {
			return nil, err
		}
		children = append(children, cl)
	}
	// children were written in head-first order; AddChild prepends, so
	// add them back in reverse to reproduce the original list order.
	for i := len(children) - 1; i >= 0; i-- {
		pat.AddChild(children[i].Pattern, children[i].Type)
	}

	return &pattern.Link{Pattern: pat, Type: linkType}, nil
}

func readUint(r *bufio.Reader, size uint8) (uint64, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:size]); err != nil {
		return 0, err
	}
	var v uint64
	for i := uint8(0); i < size; i++ {
		v = v<<8 | uint64(buf[i])
	}
	return v, nil
}
