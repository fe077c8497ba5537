package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	mmio "github.com/sgazz/acai-mindmap/pkg/io"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
)

// validateCommand creates the validate command for checking documents.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check that documents import cleanly",
		Long: `Check that one or more documents import cleanly.

Each file is decoded with the same rules the editor applies on import:
well-formed JSON, node and connection arrays, valid sizes and connection
types, finite positions, unique ids and no dangling connection endpoints.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args)
		},
	}
}

func (c *CLI) runValidate(ctx context.Context, paths []string) error {
	logger := loggerFromContext(ctx)

	ui := c.ui()
	failed := 0
	for _, path := range paths {
		logger.Debugf("Validating %s", path)
		snap, err := mmio.ImportFile(path)
		if err != nil {
			failed++
			ui.failure("%s: %s", path, errors.UserMessage(err))
			ui.detail("code: %s", errors.GetCode(err))
			continue
		}
		ui.success("%s", path)
		var extra []string
		if roots := countRoots(snap); roots > 1 {
			extra = append(extra, plural(roots, "root"))
		}
		ui.stats(len(snap.Nodes), len(snap.Connections), extra...)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents invalid", failed, len(paths))
	}
	return nil
}

// countRoots returns the number of nodes without a parent back-reference.
func countRoots(snap mindmap.Snapshot) int {
	n := 0
	for _, node := range snap.Nodes {
		if !node.HasParent() {
			n++
		}
	}
	return n
}
