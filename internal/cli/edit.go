package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	mmio "github.com/sgazz/acai-mindmap/pkg/io"
	"github.com/sgazz/acai-mindmap/pkg/store"
)

// editCommand creates the edit command for the interactive terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a mind map in the terminal",
		Long: `Open the interactive terminal editor.

The file is created on first save if it does not exist. Nodes can be dragged
with the mouse or moved with the keyboard ('m' then arrows); every drop is a
single undo step. Press 'q' to quit; unsaved changes are discarded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runEdit(ctx context.Context, path string) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	st, err := c.openStore(ctx, path)
	if err != nil {
		return err
	}

	m := newEditorModel(st, c.cfg, path, logger)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("editor: %w", err)
	}

	ui := c.ui()
	if m.dirty {
		ui.info("Quit with unsaved changes to %s", path)
		return nil
	}
	ui.success("Closed %s", path)
	ui.stats(st.NodeCount(), st.ConnectionCount())
	return nil
}

// openStore creates a store and loads path into it when the file exists.
func (c *CLI) openStore(ctx context.Context, path string) (*store.Store, error) {
	logger := loggerFromContext(ctx)
	st := store.New(append(c.cfg.StoreOptions(), store.WithLogger(logger))...)

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		logger.Debugf("%s does not exist; starting empty", path)
		return st, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := mmio.Import(st, f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debugf("Loaded %s: %d nodes, %d connections", path, st.NodeCount(), st.ConnectionCount())
	return st, nil
}
