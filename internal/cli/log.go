// Package cli implements the mindmap command-line interface.
//
// This package provides commands for creating, validating, rendering and
// interactively editing mind-map documents. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - new: Write an empty or sample document
//   - validate: Import a document and report counts or schema errors
//   - render: Generate SVG, DOT, PDF, or PNG output
//   - edit: Open the interactive terminal editor
//   - serve: Preview a document in the browser
//   - cache: Inspect or clear the rendered artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. At debug level the editor and render
// observability hooks are routed to the logger as well.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered map.svg (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Logging hooks
// =============================================================================

// logHooks writes editor and render events to a logger at debug level.
// It implements observability.EditorHooks and observability.RenderHooks.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) logHooks { return logHooks{logger: l} }

func (h logHooks) OnMutation(op string, nodes, connections int) {
	h.logger.Debug("mutation", "op", op, "nodes", nodes, "connections", connections)
}

func (h logHooks) OnHistory(op string, index, length int) {
	h.logger.Debug("history", "op", op, "index", index, "length", length)
}

func (h logHooks) OnImport(nodes, connections int, err error) {
	if err != nil {
		h.logger.Debug("import failed", "err", err)
		return
	}
	h.logger.Debug("import", "nodes", nodes, "connections", connections)
}

func (h logHooks) OnExport(nodes, connections int) {
	h.logger.Debug("export", "nodes", nodes, "connections", connections)
}

func (h logHooks) OnRenderStart(_ context.Context, format string, nodeCount int) {
	h.logger.Debug("render start", "format", format, "nodes", nodeCount)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("render complete", "format", format, "bytes", size, "took", d.Round(time.Millisecond))
}
