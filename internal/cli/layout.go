package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wbsview/pkg/layout"
)

// layoutCommand creates the layout command for printing the base tree layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		asJSON bool
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [wbs.json]",
		Short: "Print the tree layout of a WBS document",
		Long: `Print the tree layout of a WBS document.

Every node gets a depth from its distance to the nearest root along
HIERARCHY edges. Nodes of one depth share a column and are ordered by id;
numeric ids compare as numbers. The table lists nodes row by row with their
drawing coordinates.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], flags, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	flags.register(cmd)

	return cmd
}

// runLayout loads the document, computes the layout and prints it.
func (c *CLI) runLayout(ctx context.Context, input string, flags layoutFlags, asJSON bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.pipelineOptions(flags)

	loaded, err := runner.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	base, cacheHit, err := runner.BaseLayoutWithCacheInfo(ctx, loaded, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if asJSON {
		return writeLayoutJSON(stdout, base)
	}

	fmt.Fprintln(stdout, layoutTable(base))
	printStats(loaded.Graph.NodeCount(), loaded.Graph.EdgeCount(), cacheHit)
	if !loaded.Diagnostics.Empty() {
		for _, group := range loaded.Diagnostics.Cycles {
			printWarning("Hierarchy cycle: %s", strings.Join(group, ", "))
		}
		if n := len(loaded.Diagnostics.MultiParent); n > 0 {
			printWarning("%d nodes have more than one parent", n)
		}
	}
	printNextStep("Explore", appName+" explore "+input)

	return nil
}

func writeLayoutJSON(w io.Writer, base *layout.Base) error {
	data, err := json.MarshalIndent(base, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// layoutTable renders one row per node, in layout order, with the label
// indented by depth.
func layoutTable(base *layout.Base) string {
	rows := make([][]string, 0, len(base.Nodes))
	for _, n := range base.Nodes {
		depth := base.Levels[n.ID]
		rows = append(rows, []string{
			strconv.Itoa(depth),
			n.ID,
			strings.Repeat("  ", depth) + nodeLabel(n),
			n.Type,
			strconv.FormatFloat(n.X, 'f', -1, 64),
			strconv.FormatFloat(n.Y, 'f', -1, 64),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Depth", "ID", "Label", "Type", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0 || col >= 4:
				return cellStyle.Foreground(colorAccent).Align(lipgloss.Right)
			case col == 3:
				return cellStyle.Foreground(colorMuted)
			}
			return cellStyle
		})

	return t.Render()
}

// nodeLabel falls back to the id for nodes without any label source.
func nodeLabel(n layout.PositionedNode) string {
	if strings.TrimSpace(n.Label) == "" {
		return n.ID
	}
	return n.Label
}
