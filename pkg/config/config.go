// Package config loads editor settings from an optional TOML file.
//
// Every setting has a default, so an absent file or an absent key is never
// an error. Unknown keys are rejected, which catches typos such as
// "max_szie" that would otherwise be silently ignored.
//
//	[history]
//	max_size = 50
//
//	[viewport]
//	min_scale = 0.1
//	max_scale = 3.0
//	zoom_step = 1.1
//	zoom_anchor = "cursor"  # or "origin"
//
//	[router]
//	curvature_factor = 0.1
//	max_curvature = 30.0
//	arrow_size = 10.0
//	stroke_width = 2.0
//	hit_width = 12.0
//
//	[editor]
//	default_color = "#3b82f6"
//	default_size = "medium"
//	pan_step = 40.0
//
//	[cache]
//	backend = "file"  # "redis" or "none"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "168h"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	"github.com/sgazz/acai-mindmap/pkg/history"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/route"
	"github.com/sgazz/acai-mindmap/pkg/store"
	"github.com/sgazz/acai-mindmap/pkg/viewport"
)

// Zoom anchor policies.
const (
	AnchorCursor = "cursor"
	AnchorOrigin = "origin"
)

// Render cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds every tunable editor setting.
type Config struct {
	History  HistoryConfig  `toml:"history"`
	Viewport ViewportConfig `toml:"viewport"`
	Router   RouterConfig   `toml:"router"`
	Editor   EditorConfig   `toml:"editor"`
	Cache    CacheConfig    `toml:"cache"`
}

// HistoryConfig bounds the undo log.
type HistoryConfig struct {
	MaxSize int `toml:"max_size"`
}

// ViewportConfig controls pan and zoom.
type ViewportConfig struct {
	MinScale   float64 `toml:"min_scale"`
	MaxScale   float64 `toml:"max_scale"`
	ZoomStep   float64 `toml:"zoom_step"`
	ZoomAnchor string  `toml:"zoom_anchor"`
}

// RouterConfig controls connection geometry.
type RouterConfig struct {
	CurvatureFactor float64 `toml:"curvature_factor"`
	MaxCurvature    float64 `toml:"max_curvature"`
	ArrowSize       float64 `toml:"arrow_size"`
	StrokeWidth     float64 `toml:"stroke_width"`
	HitWidth        float64 `toml:"hit_width"`
}

// EditorConfig holds defaults for newly created nodes and keyboard panning.
type EditorConfig struct {
	DefaultColor string  `toml:"default_color"`
	DefaultSize  string  `toml:"default_size"`
	PanStep      float64 `toml:"pan_step"`
}

// CacheConfig selects where rendered artifacts are kept.
type CacheConfig struct {
	Backend  string        `toml:"backend"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxSize: history.DefaultMaxSize},
		Viewport: ViewportConfig{
			MinScale:   viewport.DefaultMinScale,
			MaxScale:   viewport.DefaultMaxScale,
			ZoomStep:   1.1,
			ZoomAnchor: AnchorCursor,
		},
		Router: RouterConfig{
			CurvatureFactor: route.DefaultCurvatureFactor,
			MaxCurvature:    route.DefaultMaxCurvature,
			ArrowSize:       route.DefaultArrowSize,
			StrokeWidth:     route.DefaultStrokeWidth,
			HitWidth:        route.DefaultHitWidth,
		},
		Editor: EditorConfig{
			DefaultColor: "#3b82f6",
			DefaultSize:  string(mindmap.SizeMedium),
			PanStep:      40,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     7 * 24 * time.Hour,
		},
	}
}

// DefaultPath returns the per-user config location, e.g.
// ~/.config/acai-mindmap/config.toml on Linux.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "acai-mindmap", "config.toml")
}

// Load reads settings from path over the defaults. An empty path returns the
// defaults; a path that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault reads the file at [DefaultPath] if it exists.
func LoadDefault() (Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}
	switch {
	case c.History.MaxSize < 1:
		return invalid("history.max_size must be at least 1, got %d", c.History.MaxSize)
	case c.Viewport.MinScale <= 0:
		return invalid("viewport.min_scale must be positive, got %v", c.Viewport.MinScale)
	case c.Viewport.MaxScale < c.Viewport.MinScale:
		return invalid("viewport.max_scale %v is below min_scale %v", c.Viewport.MaxScale, c.Viewport.MinScale)
	case c.Viewport.ZoomStep <= 1:
		return invalid("viewport.zoom_step must be greater than 1, got %v", c.Viewport.ZoomStep)
	case c.Viewport.ZoomAnchor != AnchorCursor && c.Viewport.ZoomAnchor != AnchorOrigin:
		return invalid("viewport.zoom_anchor must be %q or %q, got %q", AnchorCursor, AnchorOrigin, c.Viewport.ZoomAnchor)
	case c.Router.CurvatureFactor < 0 || c.Router.MaxCurvature < 0:
		return invalid("router curvature settings must not be negative")
	case c.Router.ArrowSize <= 0:
		return invalid("router.arrow_size must be positive, got %v", c.Router.ArrowSize)
	case c.Router.StrokeWidth <= 0:
		return invalid("router.stroke_width must be positive, got %v", c.Router.StrokeWidth)
	case c.Router.HitWidth < c.Router.StrokeWidth:
		return invalid("router.hit_width %v is narrower than stroke_width %v", c.Router.HitWidth, c.Router.StrokeWidth)
	case !mindmap.Size(c.Editor.DefaultSize).Valid():
		return invalid("editor.default_size must be small, medium or large, got %q", c.Editor.DefaultSize)
	case c.Editor.PanStep <= 0:
		return invalid("editor.pan_step must be positive, got %v", c.Editor.PanStep)
	case c.Cache.Backend != CacheFile && c.Cache.Backend != CacheRedis && c.Cache.Backend != CacheNone:
		return invalid("cache.backend must be %q, %q or %q, got %q", CacheFile, CacheRedis, CacheNone, c.Cache.Backend)
	case c.Cache.Backend == CacheRedis && c.Cache.RedisURL == "":
		return invalid("cache.redis_url is required for the redis backend")
	case c.Cache.TTL < 0:
		return invalid("cache.ttl must not be negative, got %v", c.Cache.TTL)
	}
	if err := errors.ValidateColor(c.Editor.DefaultColor); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "editor.default_color")
	}
	return nil
}

// =============================================================================
// Accessors
// =============================================================================

// RouterSettings returns a router built from the [router] section.
func (c Config) RouterSettings() route.Router {
	r := route.Default()
	r.CurvatureFactor = c.Router.CurvatureFactor
	r.MaxCurvature = c.Router.MaxCurvature
	r.ArrowSize = c.Router.ArrowSize
	r.StrokeWidth = c.Router.StrokeWidth
	r.HitWidth = c.Router.HitWidth
	return r
}

// Transform returns an identity viewport with the configured bounds.
func (c Config) Transform() viewport.Transform {
	return viewport.New(c.Viewport.MinScale, c.Viewport.MaxScale)
}

// CursorAnchored reports whether zoom should keep the point under the
// cursor fixed.
func (c Config) CursorAnchored() bool { return c.Viewport.ZoomAnchor != AnchorOrigin }

// StoreOptions returns the store options implied by the settings.
func (c Config) StoreOptions() []store.Option {
	return []store.Option{store.WithMaxHistory(c.History.MaxSize)}
}

// NodeSize returns the default size for new nodes.
func (c Config) NodeSize() mindmap.Size { return mindmap.Size(c.Editor.DefaultSize) }
