package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wbsview/pkg/layout"
	"github.com/matzehuels/wbsview/pkg/observability"
)

// exploreCommand creates the interactive explorer command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		focus   string
		logFile string
		watch   bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "explore [wbs.json]",
		Short: "Browse a WBS document interactively in the terminal",
		Long: `Browse a WBS document interactively in the terminal.

The whole tree is shown first. Right-click a node (or select it with tab and
press enter) for its menu: "Show connected nodes" switches to the node and
its direct neighbors, "Create connected node" is not available yet.
Right-click empty space (or press g) and choose "Return to WBS" to get the
whole tree back. Left-click or esc closes a menu.

Press y to copy the selected node id. With --watch the document is
reloaded whenever it changes on disk; a neighborhood view is kept when its
node still exists.

The terminal is taken over while exploring, so session logs go to
--log-file when given and are discarded otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], focus, logFile, watch, flags)
		},
	}

	cmd.Flags().StringVar(&focus, "focus", "", "start on the neighborhood of this node id")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write session logs to this file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the document changes")
	flags.register(cmd)

	return cmd
}

// runExplore computes the base layout once and hands it to the terminal UI.
func (c *CLI) runExplore(ctx context.Context, input, focus, logFile string, watch bool, flags layoutFlags) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.pipelineOptions(flags)

	prog := newProgress(c.Logger)
	loaded, err := runner.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	base, _, err := runner.BaseLayoutWithCacheInfo(ctx, loaded, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("Prepared layout of %d nodes", len(base.Nodes))

	out, closeLog, err := sessionLogOutput(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	sessionLog := newLogger(out, c.Logger.GetLevel())
	hooks := newSessionHooks(sessionLog)
	observability.SetInteractionHooks(hooks)
	defer observability.SetInteractionHooks(observability.NoopInteractionHooks{})

	// Nothing may write to the terminal while the UI owns it.
	runner.Logger = hooks.logger
	observability.SetPipelineHooks(newLogHooks(hooks.logger))
	observability.SetCacheHooks(newLogHooks(hooks.logger))
	defer c.registerHooks()

	// The session context ends with the program so a watch command still
	// pending after quit returns instead of waiting on the caller's ctx.
	session, endSession := context.WithCancel(withLogger(ctx, hooks.logger))
	defer endSession()

	model := newExploreModel(session, input, base, opts.ViewOptions()...)
	if watch {
		w, err := newFileWatcher(input)
		if err != nil {
			return fmt.Errorf("watch %s: %w", input, err)
		}
		defer w.Close()
		model.watch = w.wait
		model.reload = func(ctx context.Context) (*layout.Base, error) {
			loaded, err := runner.Load(ctx, input)
			if err != nil {
				return nil, err
			}
			return runner.BaseLayout(ctx, loaded, opts)
		}
	}
	if focus != "" {
		if err := model.focus(focus); err != nil {
			printWarning("Cannot focus %s: %v", focus, err)
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(session))
	_, err = p.Run()
	endSession()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("explorer: %w", err)
	}

	printSuccess("Explored %s", input)
	printDetail("Session: %s", hooks.id)
	return nil
}

// sessionLogOutput opens the session log destination.
func sessionLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

var _ tea.Model = (*exploreModel)(nil)
