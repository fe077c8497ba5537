package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sgazz/acai-mindmap/pkg/idgen"
	mmio "github.com/sgazz/acai-mindmap/pkg/io"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/store"
)

// newCommand creates the new command for writing a fresh document.
func (c *CLI) newCommand() *cobra.Command {
	var (
		sample bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create an empty or sample mind-map document",
		Long: `Create a new mind-map document.

Without flags the document is empty. With --sample it contains a small map
showing every node size and connection style, which is a handy starting point
for trying the editor and renderers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(cmd.Context(), args[0], sample, force)
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "fill the document with a sample map")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func (c *CLI) runNew(ctx context.Context, path string, sample, force bool) error {
	logger := loggerFromContext(ctx)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	st := store.New(append(c.cfg.StoreOptions(), store.WithLogger(logger))...)
	if sample {
		if err := fillSample(st, idgen.New(), c.cfg.Editor.DefaultColor); err != nil {
			return fmt.Errorf("build sample: %w", err)
		}
	}

	if err := mmio.ExportFile(path, st.Snapshot(), time.Now()); err != nil {
		return err
	}

	ui := c.ui()
	ui.success("Created %s", path)
	ui.stats(st.NodeCount(), st.ConnectionCount())
	ui.next("Edit it with", appName+" edit "+path)
	return nil
}

// fillSample adds a central topic with three branches, one per connection
// style, plus a note hanging off the first branch.
func fillSample(st *store.Store, ids *idgen.Generator, color string) error {
	root := mindmap.Node{
		ID:       ids.NodeID(),
		Content:  "Central idea",
		Position: mindmap.Pt(0, 0),
		Size:     mindmap.SizeLarge,
		Color:    color,
	}
	if err := st.AddNode(root); err != nil {
		return err
	}

	branches := []struct {
		content string
		at      mindmap.Point
		color   string
		style   mindmap.ConnectionType
	}{
		{"Goals", mindmap.Pt(-220, -120), "#10b981", mindmap.ConnectionSolid},
		{"Risks", mindmap.Pt(220, -120), "#ef4444", mindmap.ConnectionDashed},
		{"Open questions", mindmap.Pt(0, 200), "#8b5cf6", mindmap.ConnectionDotted},
	}

	var first string
	for _, b := range branches {
		parent := root.ID
		n := mindmap.Node{
			ID:       ids.NodeID(),
			Content:  b.content,
			Position: b.at,
			Size:     mindmap.SizeMedium,
			Color:    b.color,
			ParentID: &parent,
		}
		if err := st.AddNode(n); err != nil {
			return err
		}
		if first == "" {
			first = n.ID
		}
		if err := st.AddConnection(mindmap.Connection{
			ID:   ids.ConnectionID(),
			From: root.ID,
			To:   n.ID,
			Type: b.style,
		}); err != nil {
			return err
		}
	}

	parent := first
	note := mindmap.Node{
		ID:       ids.NodeID(),
		Content:  "Ship v1",
		Position: mindmap.Pt(-380, -240),
		Size:     mindmap.SizeSmall,
		ParentID: &parent,
	}
	if err := st.AddNode(note); err != nil {
		return err
	}
	label := "first"
	return st.AddConnection(mindmap.Connection{
		ID:    ids.ConnectionID(),
		From:  first,
		To:    note.ID,
		Type:  mindmap.ConnectionSolid,
		Label: &label,
	})
}
