package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wbsview/pkg/pipeline"
	"github.com/matzehuels/wbsview/pkg/view"
)

// viewCommand creates the view command for rendering one view of a document.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		focus  string
		format string
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "view [wbs.json]",
		Short: "Render the whole tree or the neighborhood of one node",
		Long: `Render the whole tree or the neighborhood of one node.

Without --focus the whole breakdown is drawn at its tree positions. With
--focus the node is drawn where the tree puts it and every node directly
connected to it, by hierarchy or dependency, is placed on a circle around it.
An unknown focus id falls back to the whole tree.

Formats json, dot and svg are written to stdout unless -o is given; png
always goes to a file (default: <input>.png).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			return c.runView(cmd.Context(), args[0], focus, format, output, flags)
		},
	}

	cmd.Flags().StringVar(&focus, "focus", "", "node id to show with its direct neighbors")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "output format: json, dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "add WBS code and type to node labels")
	flags.register(cmd)

	return cmd
}

// runView renders the requested view and writes it to output or stdout.
func (c *CLI) runView(ctx context.Context, input, focus, format, output string, flags layoutFlags) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	state := view.Initial()
	if focus != "" {
		state = view.Focused(focus)
	}

	if output == "" && format == pipeline.FormatPNG {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}

	var result *pipeline.Result
	render := func() error {
		var err error
		result, err = runner.Execute(ctx, input, state, format, c.pipelineOptions(flags))
		return err
	}
	if output == "" {
		err = render()
	} else {
		// Stdout may be the artifact itself, so the spinner only runs
		// when writing to a file.
		err = spin(ctx, os.Stderr, fmt.Sprintf("Rendering %s to %s...", format, output), render)
	}
	if err != nil {
		if output != "" {
			printError("Render of %s failed", output)
		}
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		_, err := stdout.Write(result.Artifact)
		return err
	}

	if err := os.WriteFile(output, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	if result.View.Mode == view.Local {
		printSuccess("Rendered neighborhood of %s", StyleHighlight.Render(result.View.Focus))
	} else {
		printSuccess("Rendered whole tree")
	}
	printFile(output)
	printStats(len(result.View.Nodes), len(result.View.Edges), result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	printNextStep("Explore", appName+" explore "+input)

	return nil
}
