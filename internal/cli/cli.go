// Package cli implements the mindmap command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sgazz/acai-mindmap/pkg/buildinfo"
	"github.com/sgazz/acai-mindmap/pkg/config"
	"github.com/sgazz/acai-mindmap/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and per-user paths.
const appName = "mindmap"

// Log levels accepted by [New].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer // status lines for humans
	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		cfg:    config.Default(),
	}
}

// SetOutput redirects status output, which defaults to stdout.
func (c *CLI) SetOutput(w io.Writer) { c.out = w }

func (c *CLI) ui() printer { return printer{w: c.out} }

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the settings loaded for the running command.
func (c *CLI) Config() config.Config { return c.cfg }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Mindmap edits and renders mind-map documents",
		Long:         `Mindmap is a terminal editor for mind maps: circles joined by curved, styled connections. Documents are plain JSON and can be rendered to SVG, DOT, PDF or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.newCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies --verbose, loads the config, attaches the logger to the
// command context and, at debug level, registers logging hooks.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	c.cfg = cfg
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := newLogHooks(c.Logger)
		observability.SetEditorHooks(hooks)
		observability.SetRenderHooks(hooks)
	}
	return nil
}

func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		c.Logger.Debugf("Loading config %s", c.configPath)
		return config.Load(c.configPath)
	}
	return config.LoadDefault()
}
