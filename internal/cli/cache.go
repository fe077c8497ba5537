package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sgazz/acai-mindmap/pkg/cache"
	"github.com/sgazz/acai-mindmap/pkg/config"
	mmio "github.com/sgazz/acai-mindmap/pkg/io"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				c.ui().info("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			c.ui().success("Cleared %d cached renders", n)
			c.ui().detail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheDir returns the per-user directory for rendered artifacts.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName, "renders"), nil
}

// openCache returns the configured artifact cache. It falls back to a null
// cache when caching is disabled or the backend is unavailable, so a broken
// cache never fails a render.
func (c *CLI) openCache(ctx context.Context, disabled bool) cache.Cache {
	if disabled || c.cfg.Cache.Backend == config.CacheNone {
		return cache.NewNullCache()
	}
	logger := loggerFromContext(ctx)

	if c.cfg.Cache.Backend == config.CacheRedis {
		rc, err := cache.NewRedisCache(c.cfg.Cache.RedisURL)
		if err == nil {
			err = rc.Ping(ctx)
		}
		if err != nil {
			logger.Warn("render cache unavailable", "backend", config.CacheRedis, "err", err)
			if rc != nil {
				rc.Close()
			}
			return cache.NewNullCache()
		}
		return rc
	}

	dir, err := cacheDir()
	if err != nil {
		logger.Debug("render cache unavailable", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("render cache unavailable", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// artifactKey identifies a render of snap with opts and the current settings.
func (c *CLI) artifactKey(snap mindmap.Snapshot, opts *renderOpts) (string, error) {
	doc, err := mmio.MarshalJSON(snap, time.Time{})
	if err != nil {
		return "", err
	}
	return cache.ArtifactKey(doc, cache.ArtifactOpts{
		Format:   opts.format,
		Engine:   opts.engine,
		Width:    opts.width,
		Height:   opts.height,
		Detailed: opts.detailed,
		Scale:    pngScale,
		Settings: struct {
			Router   any
			Viewport any
			Color    string
		}{c.cfg.Router, c.cfg.Viewport, c.cfg.Editor.DefaultColor},
	}), nil
}
