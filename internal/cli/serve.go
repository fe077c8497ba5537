package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	"github.com/sgazz/acai-mindmap/pkg/preview"
)

const (
	defaultServeAddr = "127.0.0.1:7070"
	shutdownTimeout  = 5 * time.Second
)

// serveCommand creates the serve command for the browser preview.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		refresh time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Preview a document in the browser",
		Long: `Serve a read-only preview of a mind-map document over HTTP.

The file is re-read on every request, so saving from 'mindmap edit' in another
terminal updates the browser on its next refresh. The preview binds to
localhost by default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, refresh)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().DurationVar(&refresh, "refresh", preview.DefaultRefresh, "page reload interval (0 disables)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path, addr string, refresh time.Duration) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if refresh < 0 {
		return fmt.Errorf("refresh must not be negative")
	}

	handler := preview.NewHandler(preview.FileLoader(path),
		preview.WithRouter(c.cfg.RouterSettings()),
		preview.WithDefaultColor(c.cfg.Editor.DefaultColor),
		preview.WithLogger(logger),
		preview.WithTitle(filepath.Base(path)),
		preview.WithRefresh(refresh),
	)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ui := c.ui()
	ui.success("Serving %s", path)
	ui.detail("http://%s/", ln.Addr())
	ui.next("Stop with", "ctrl+c")

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Debug("shutting down preview")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	}
}
