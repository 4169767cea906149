package patterntree

import (
	"fmt"
	"io"
	"strings"
)

// PrintOption selects which fields PrintVisitor writes for each visited
// node, matching the original generator's print-option letters:
// D(epth), P(attern bits), L(ink type/count), C(umulative shift/mirror).
type PrintOption byte

const (
	PrintDepth   PrintOption = 'D'
	PrintPattern PrintOption = 'P'
	PrintLinks   PrintOption = 'L'
	PrintCumul   PrintOption = 'C'
)

// ParsePrintOptions converts a string like "DPLC" into the set of options
// it names, ignoring unrecognized letters.
func ParsePrintOptions(s string) map[PrintOption]bool {
	opts := make(map[PrintOption]bool)
	for _, r := range strings.ToUpper(s) {
		switch PrintOption(r) {
		case PrintDepth, PrintPattern, PrintLinks, PrintCumul:
			opts[PrintOption(r)] = true
		}
	}
	return opts
}

// PrintVisitor writes one line per visited node to Out, with fields
// selected by Options. A nil or empty Options prints every field.
type PrintVisitor struct {
	Out     io.Writer
	Options map[PrintOption]bool
}

func (pv *PrintVisitor) wants(o PrintOption) bool {
	if len(pv.Options) == 0 {
		return true
	}
	return pv.Options[o]
}

// Visit implements Visitor, writing the selected fields for nd and
// continuing the walk unconditionally.
func (pv *PrintVisitor) Visit(nd *NodeDescriptor) Action {
	var b strings.Builder
	if pv.wants(PrintDepth) {
		fmt.Fprintf(&b, "depth=%d ", nd.Depth)
	}
	if pv.wants(PrintPattern) {
		fmt.Fprintf(&b, "bits=%v ", nd.Link.Pattern.Bits)
	}
	if pv.wants(PrintLinks) {
		fmt.Fprintf(&b, "type=%d nchild=%d ", nd.Link.Type, nd.Link.Pattern.NumChildren())
	}
	if pv.wants(PrintCumul) {
		fmt.Fprintf(&b, "shift=%d mirrored=%v ", nd.Shift, nd.Mirrored)
	}
	fmt.Fprintln(pv.Out, strings.TrimSpace(b.String()))
	return Recurse
}

var _ Visitor = (*PrintVisitor)(nil)
