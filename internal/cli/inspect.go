package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/jlab-tracking/treesearch/pkg/patterntree"
	"github.com/jlab-tracking/treesearch/pkg/serialize"
)

// inspectCommand creates the "inspect" command: load a serialized tree
// file and report its statistics, a node-by-node dump, or a rendered
// subtree graph.
func (c *CLI) inspectCommand() *cobra.Command {
	var treePath, printSpec, graphOut string
	var maxGraphDepth uint32
	var stats bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print statistics or a node dump of a generated tree file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(treePath)
			if err != nil {
				return fmt.Errorf("open tree file: %w", err)
			}
			defer f.Close()

			tree, err := serialize.Read(f)
			if err != nil {
				return fmt.Errorf("read tree: %w", err)
			}

			switch {
			case graphOut != "":
				return renderGraph(tree, maxGraphDepth, graphOut)
			case printSpec != "":
				opts := patterntree.ParsePrintOptions(printSpec)
				v := &patterntree.PrintVisitor{Out: os.Stdout, Options: opts}
				patterntree.Walk(tree.RootLink(), v)
				return nil
			default:
				if !cmd.Flags().Changed("stats") {
					stats = true
				}
			}

			if stats {
				s := tree.Stats()
				printKeyValue("Levels", fmt.Sprintf("%d", s.NumLevels))
				printKeyValue("Planes", fmt.Sprintf("%d", tree.NPlanes))
				printKeyValue("Patterns", fmt.Sprintf("%d", s.NumPatterns))
				printKeyValue("Links", fmt.Sprintf("%d", s.NumLinks))
				printKeyValue("MaxDepth", fmt.Sprintf("%d", s.MaxDepth))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&treePath, "tree", "t", "tree.bin", "path to a serialized tree file")
	cmd.Flags().BoolVar(&stats, "stats", false, "print build-time statistics (the default view)")
	cmd.Flags().StringVar(&printSpec, "print", "", "print a node dump with the given option letters (D,P,L,C)")
	cmd.Flags().StringVar(&graphOut, "graph", "", "render a subtree to this file via graphviz")
	cmd.Flags().Uint32Var(&maxGraphDepth, "max-depth", 3, "deepest level to include in --graph output")

	return cmd
}

// graphDOT walks tree down to maxDepth and renders the traversed nodes as
// a Graphviz DOT document, in the same hand-built-DOT-string style as the
// teacher's nodelink.ToDOT.
func graphDOT(tree *patterntree.Tree, maxDepth uint32) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n\n")

	nodeID := func(depth uint32, bits []int32) string {
		return fmt.Sprintf("d%d_%v", depth, bits)
	}

	patterntree.Walk(tree.RootLink(), patterntree.VisitorFunc(func(nd *patterntree.NodeDescriptor) patterntree.Action {
		if nd.Depth > maxDepth {
			return patterntree.SkipChildren
		}
		id := nodeID(nd.Depth, nd.Link.Pattern.Bits)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, fmt.Sprintf("%v", nd.Link.Pattern.Bits))

		if nd.Depth < maxDepth {
			for child := nd.Link.Pattern.Child; child != nil; child = child.Next {
				cid := nodeID(nd.Depth+1, child.Pattern.Bits)
				fmt.Fprintf(&buf, "  %q -> %q;\n", id, cid)
			}
		}
		return patterntree.Recurse
	}))

	buf.WriteString("}\n")
	return buf.String()
}

// renderGraph renders tree's subtree (bounded by maxDepth) to an SVG file
// at out, via the same graphviz.New(ctx)/ParseBytes/Render flow the
// teacher's nodelink package uses.
func renderGraph(tree *patterntree.Tree, maxDepth uint32, out string) error {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(graphDOT(tree, maxDepth)))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return fmt.Errorf("render graph: %w", err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write graph file: %w", err)
	}
	printFile(out)
	return nil
}
