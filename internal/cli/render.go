package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	mmio "github.com/sgazz/acai-mindmap/pkg/io"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/observability"
	"github.com/sgazz/acai-mindmap/pkg/render"
	"github.com/sgazz/acai-mindmap/pkg/render/nodelink"
	"github.com/sgazz/acai-mindmap/pkg/render/svg"
)

const (
	engineNative   = "native"   // built-in SVG drawn from the connection router
	engineGraphviz = "graphviz" // Graphviz neato with pinned positions
	fitPadding     = 40.0       // screen padding when fitting to --width/--height
	pngScale       = 2.0        // resolution multiplier for PNG output
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path; "-" writes to stdout
	format   string  // output format: svg, dot, pdf, png
	engine   string  // renderer: native or graphviz
	width    float64 // fixed frame width (0 fits the drawing)
	height   float64 // fixed frame height (0 fits the drawing)
	detailed bool    // add ids and tags to graphviz labels
	noCache  bool    // always render, bypassing the artifact cache
}

// renderCommand creates the render command for generating visual output.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: "svg", engine: engineNative}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a mind-map document to SVG, DOT, PDF or PNG",
		Long: `Render a mind-map document.

Nodes are drawn at their stored positions. The native engine reproduces the
editor's curved connections, dash patterns and arrowheads; the graphviz engine
pins every node and lets Graphviz style the drawing. The dot format emits the
Graphviz source without rendering it.

PDF and PNG output require rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRenderOpts(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot, pdf, png")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "renderer: native, graphviz")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width (native engine; 0 fits the drawing)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (native engine; 0 fits the drawing)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show ids and tags in node labels (graphviz engine)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rendered artifact cache")

	return cmd
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "dot": true, "pdf": true, "png": true}

// validateRenderOpts checks flag values and normalises the engine for the
// dot format, which always comes from the Graphviz renderer.
func validateRenderOpts(opts *renderOpts) error {
	opts.format = strings.ToLower(opts.format)
	if !validFormats[opts.format] {
		return fmt.Errorf("invalid format: %s (must be 'svg', 'dot', 'pdf', or 'png')", opts.format)
	}
	switch opts.engine {
	case engineNative, engineGraphviz:
	default:
		return fmt.Errorf("invalid engine: %s (must be 'native' or 'graphviz')", opts.engine)
	}
	if opts.format == "dot" {
		opts.engine = engineGraphviz
	}
	if opts.width < 0 || opts.height < 0 {
		return fmt.Errorf("width and height must not be negative")
	}
	if (opts.width == 0) != (opts.height == 0) {
		return fmt.Errorf("--width and --height must be given together")
	}
	return nil
}

// outputPath derives the output file from the input when none is given.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	snap, err := mmio.ImportFile(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %s: %d nodes, %d connections", input, len(snap.Nodes), len(snap.Connections))

	data, err := c.renderCached(ctx, snap, opts)
	if err != nil {
		return err
	}

	path := outputPath(opts.output, input, opts.format)
	if err := writeOutput(path, data); err != nil {
		return err
	}
	if path != "-" {
		prog.done("Rendered " + path)
		c.ui().file(path)
	}
	return nil
}

// renderCached returns a cached artifact for snap when one exists, and
// renders and stores it otherwise.
func (c *CLI) renderCached(ctx context.Context, snap mindmap.Snapshot, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)

	store := c.openCache(ctx, opts.noCache)
	defer store.Close()

	key, err := c.artifactKey(snap, opts)
	if err != nil {
		return nil, err
	}
	if data, hit, err := store.Get(ctx, key); err != nil {
		logger.Debug("render cache read failed", "err", err)
	} else if hit {
		logger.Debug("render cache hit", "format", opts.format, "bytes", len(data))
		return data, nil
	}

	var data []byte
	if opts.format == "pdf" || opts.format == "png" {
		sp := newSpinner(ctx, os.Stderr, "Converting to "+strings.ToUpper(opts.format))
		sp.Start()
		data, err = c.renderSnapshot(ctx, snap, opts)
		if err != nil {
			sp.StopWithError(strings.ToUpper(opts.format) + " conversion failed")
		} else {
			sp.Stop()
		}
	} else {
		data, err = c.renderSnapshot(ctx, snap, opts)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Set(ctx, key, data, c.cfg.Cache.TTL); err != nil {
		logger.Debug("render cache write failed", "err", err)
	}
	return data, nil
}

// renderSnapshot produces the requested format, reporting to the render hooks.
func (c *CLI) renderSnapshot(ctx context.Context, snap mindmap.Snapshot, opts *renderOpts) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.format, len(snap.Nodes))
	start := time.Now()

	var (
		data []byte
		err  error
	)
	switch opts.engine {
	case engineGraphviz:
		data, err = c.renderGraphviz(ctx, snap, opts)
	default:
		data, err = c.renderNative(ctx, snap, opts)
	}

	hooks.OnRenderComplete(ctx, opts.format, len(data), time.Since(start), err)
	return data, err
}

func (c *CLI) renderGraphviz(ctx context.Context, snap mindmap.Snapshot, opts *renderOpts) ([]byte, error) {
	dot := nodelink.ToDOT(snap, nodelink.Options{
		Detailed:     opts.detailed,
		DefaultColor: c.cfg.Editor.DefaultColor,
	})
	switch opts.format {
	case "dot":
		return []byte(dot), nil
	case "pdf":
		return nodelink.RenderPDF(ctx, dot)
	case "png":
		return nodelink.RenderPNG(ctx, dot, pngScale)
	default:
		return nodelink.RenderSVG(ctx, dot)
	}
}

func (c *CLI) renderNative(ctx context.Context, snap mindmap.Snapshot, opts *renderOpts) ([]byte, error) {
	svgOpts := []svg.Option{svg.WithRouter(c.cfg.RouterSettings())}
	if opts.width > 0 {
		view := c.cfg.Transform()
		if min, max, ok := mindmap.Bounds(snap.Nodes); ok {
			view = view.Fit(min, max, opts.width, opts.height, fitPadding)
		}
		svgOpts = append(svgOpts, svg.WithViewport(view, opts.width, opts.height))
	}
	out := svg.Render(snap.Nodes, snap.Connections, svgOpts...)

	switch opts.format {
	case "pdf":
		return render.ToPDF(ctx, out)
	case "png":
		return render.ToPNG(ctx, out, pngScale)
	default:
		return out, nil
	}
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err := w.Write(data)
	return err
}
