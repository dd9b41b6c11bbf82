package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/atomicstack/tmux-popup-grid/internal/app"
	"github.com/atomicstack/tmux-popup-grid/internal/permission"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const defaultViewer = "local"

// envConfig holds the environment defaults; flags override every field.
type envConfig struct {
	SocketPath   string        `env:"TMUX_POPUP_GRID_SOCKET"`
	Width        int           `env:"TMUX_POPUP_GRID_WIDTH"`
	Height       int           `env:"TMUX_POPUP_GRID_HEIGHT"`
	ShowFooter   bool          `env:"TMUX_POPUP_GRID_FOOTER"`
	Verbose      bool          `env:"TMUX_POPUP_GRID_VERBOSE"`
	Trace        bool          `env:"TMUX_POPUP_GRID_TRACE"`
	LogFile      string        `env:"TMUX_POPUP_GRID_LOG_FILE"`
	Catalog      string        `env:"TMUX_POPUP_GRID_CATALOG"`
	RootMenu     string        `env:"TMUX_POPUP_GRID_ROOT_MENU"`
	Viewer       string        `env:"TMUX_POPUP_GRID_VIEWER"`
	Permissions  []string      `env:"TMUX_POPUP_GRID_PERMISSIONS" envSeparator:","`
	Refresh      time.Duration `env:"TMUX_POPUP_GRID_REFRESH" envDefault:"1500ms"`
	Unrestricted bool          `env:"TMUX_POPUP_GRID_UNRESTRICTED"`
	User         string        `env:"USER"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	var defaults envConfig
	if err := env.ParseWithOptions(&defaults, env.Options{Environment: env.ToMap(environ)}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if defaults.Viewer == "" {
		defaults.Viewer = defaults.User
	}
	if defaults.Viewer == "" {
		defaults.Viewer = defaultViewer
	}

	fs := flag.NewFlagSet("tmux-popup-grid", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", defaults.SocketPath, "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", defaults.Width, "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", defaults.Height, "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", defaults.ShowFooter, "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", defaults.Trace, "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", defaults.Verbose, "print success messages for actions")
	logFile := fs.String("log-file", defaults.LogFile, "path to the log file")
	catalog := fs.String("catalog", defaults.Catalog, "path to a YAML menu catalog")
	rootMenu := fs.String("root-menu", defaults.RootMenu, "catalog menu to open instead of the session list")
	viewer := fs.String("viewer", defaults.Viewer, "viewer identity used for permission checks")
	perms := fs.String("permissions", strings.Join(defaults.Permissions, ","), "comma separated permission grants")
	refresh := fs.Duration("refresh", defaults.Refresh, "interval between tmux session polls")
	unrestricted := fs.Bool("unrestricted", defaults.Unrestricted, "treat the viewer as unrestricted")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			SocketPath:      *socket,
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
			Verbose:         *verbose,
			RootMenu:        *rootMenu,
			CatalogPath:     *catalog,
			Viewer:          *viewer,
			Permissions:     permission.ParseList(*perms),
			Unrestricted:    *unrestricted,
			RefreshInterval: *refresh,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"socket":       *socket,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
			"catalog":      *catalog,
			"rootMenu":     *rootMenu,
			"viewer":       *viewer,
			"permissions":  *perms,
			"refresh":      refresh.String(),
			"unrestricted": strconv.FormatBool(*unrestricted),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.RefreshInterval < 100*time.Millisecond {
		return fmt.Errorf("refresh interval must be at least 100ms (got %s)", cfg.App.RefreshInterval)
	}
	if strings.TrimSpace(cfg.App.Viewer) == "" {
		return fmt.Errorf("viewer must not be empty")
	}
	if cfg.App.CatalogPath != "" {
		if _, err := os.Stat(cfg.App.CatalogPath); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
	}
	return nil
}
