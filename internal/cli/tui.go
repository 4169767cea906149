package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jlab-tracking/treesearch/pkg/httpapi"
	"github.com/jlab-tracking/treesearch/pkg/patterntree"
)

// tuiCommand creates the "tui" command: an interactive browser over a
// generated tree's per-depth pattern counts, and (given a sample hits
// file) the resulting roads.
func (c *CLI) tuiCommand() *cobra.Command {
	var treeKey, hitsPath, redisAddr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse a cached tree's statistics interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			backend, err := newCache(noCache, redisAddr)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer backend.Close()

			data, ok, err := backend.Get(ctx, treeKey)
			if err != nil {
				return fmt.Errorf("load cached tree: %w", err)
			}
			if !ok {
				return fmt.Errorf("no cached tree for key %q", treeKey)
			}
			tree, err := treeFromBytes(data)
			if err != nil {
				return fmt.Errorf("decode tree: %w", err)
			}

			var roads []httpapi.RoadResult
			if hitsPath != "" {
				hitsData, err := os.ReadFile(hitsPath)
				if err != nil {
					return fmt.Errorf("read hits file: %w", err)
				}
				var req httpapi.MatchRequest
				if err := json.Unmarshal(hitsData, &req); err != nil {
					return fmt.Errorf("parse hits file: %w", err)
				}
				roads = httpapi.Run(ctx, tree, req).Roads
			}

			model := newStatsModel(tree, roads)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&treeKey, "tree", "t", "", "cache key of the tree to browse")
	cmd.Flags().StringVar(&hitsPath, "hits", "", "optional MatchRequest JSON file to step through resulting roads")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the generation cache")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "browse a tree cached in a shared Redis instance instead of the local file cache")
	_ = cmd.MarkFlagRequired("tree")

	return cmd
}

// statsModel is the bubbletea model for the tui command: a table of
// per-depth pattern counts, with an optional road-stepping pane.
type statsModel struct {
	tree  *patterntree.Tree
	depth []depthRow
	roads []httpapi.RoadResult

	roadCursor int
	showRoads  bool
}

type depthRow struct {
	depth uint32
	count int
}

func newStatsModel(tree *patterntree.Tree, roads []httpapi.RoadResult) statsModel {
	counts := tree.DepthCounts()
	depths := make([]uint32, 0, len(counts))
	for d := range counts {
		depths = append(depths, d)
	}
	sort.Slice(depths, func(i, j int) bool { return depths[i] < depths[j] })

	rows := make([]depthRow, 0, len(depths))
	for _, d := range depths {
		rows = append(rows, depthRow{depth: d, count: counts[d]})
	}

	return statsModel{tree: tree, depth: rows, roads: roads}
}

func (m statsModel) Init() tea.Cmd {
	return nil
}

func (m statsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		if len(m.roads) > 0 {
			m.showRoads = !m.showRoads
		}
	case "up", "k":
		if m.showRoads && m.roadCursor > 0 {
			m.roadCursor--
		}
	case "down", "j":
		if m.showRoads && m.roadCursor < len(m.roads)-1 {
			m.roadCursor++
		}
	}
	return m, nil
}

func (m statsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Tree %q", m.tree.Name)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate roads  tab toggle view  q quit"))
	b.WriteString("\n\n")

	if m.showRoads {
		b.WriteString(m.renderRoads())
	} else {
		b.WriteString(m.renderDepthTable())
	}

	return b.String()
}

func (m statsModel) renderDepthTable() string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, len(m.depth))
	for _, r := range m.depth {
		rows = append(rows, []string{strconv.Itoa(int(r.depth)), strconv.Itoa(r.count)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Depth", "Patterns").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

func (m statsModel) renderRoads() string {
	if len(m.roads) == 0 {
		return StyleDim.Render("no roads (provide --hits to match a sample event)")
	}

	rd := m.roads[m.roadCursor]
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%d/%d]\n", StyleHighlight.Render(rd.ID), m.roadCursor+1, len(m.roads))
	fmt.Fprintf(&b, "hits: %d   patterns: %d\n\n", rd.HitCount, len(rd.Patterns))

	for _, p := range rd.Patterns {
		fmt.Fprintf(&b, "  depth=%d bits=%v used=%d\n", p.Depth, p.Bits, p.Used)
	}
	return b.String()
}
