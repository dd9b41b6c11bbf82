package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"USER=alice"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Viewer != "alice" {
		t.Fatalf("expected viewer from USER, got %q", cfg.App.Viewer)
	}
	if cfg.App.RefreshInterval != 1500*time.Millisecond {
		t.Fatalf("expected default refresh, got %s", cfg.App.RefreshInterval)
	}
	if cfg.App.ShowFooter || cfg.Logging.Trace || cfg.App.Unrestricted {
		t.Fatal("expected boolean options off by default")
	}
	if len(cfg.App.Permissions) != 0 {
		t.Fatalf("expected no permissions, got %v", cfg.App.Permissions)
	}

	cfg, err = LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Viewer != defaultViewer {
		t.Fatalf("expected fallback viewer, got %q", cfg.App.Viewer)
	}
}

func TestLoadArgsEnvironment(t *testing.T) {
	environ := []string{
		"TMUX_POPUP_GRID_SOCKET=/tmp/tmux.sock",
		"TMUX_POPUP_GRID_WIDTH=100",
		"TMUX_POPUP_GRID_FOOTER=true",
		"TMUX_POPUP_GRID_PERMISSIONS=tmux.session.*,menu.open",
		"TMUX_POPUP_GRID_REFRESH=3s",
		"TMUX_POPUP_GRID_VIEWER=bob",
		"USER=alice",
	}
	cfg, err := LoadArgs(nil, environ)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.SocketPath != "/tmp/tmux.sock" || cfg.App.Width != 100 || !cfg.App.ShowFooter {
		t.Fatalf("unexpected app config %+v", cfg.App)
	}
	if cfg.App.Viewer != "bob" {
		t.Fatalf("expected explicit viewer to win, got %q", cfg.App.Viewer)
	}
	if diff := cmp.Diff([]string{"tmux.session.*", "menu.open"}, cfg.App.Permissions); diff != "" {
		t.Fatalf("unexpected permissions (-want +got):\n%s", diff)
	}
	if cfg.App.RefreshInterval != 3*time.Second {
		t.Fatalf("expected refresh from env, got %s", cfg.App.RefreshInterval)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	environ := []string{"TMUX_POPUP_GRID_WIDTH=100", "TMUX_POPUP_GRID_PERMISSIONS=a"}
	args := []string{"-width", "80", "-permissions", "b, c", "-catalog", "menus.yaml", "-root-menu", "tools", "-trace", "-unrestricted"}
	cfg, err := LoadArgs(args, environ)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Width != 80 {
		t.Fatalf("expected flag width, got %d", cfg.App.Width)
	}
	if diff := cmp.Diff([]string{"b", "c"}, cfg.App.Permissions); diff != "" {
		t.Fatalf("unexpected permissions (-want +got):\n%s", diff)
	}
	if cfg.App.CatalogPath != "menus.yaml" || cfg.App.RootMenu != "tools" {
		t.Fatalf("unexpected catalog options %+v", cfg.App)
	}
	if !cfg.Logging.Trace || !cfg.App.Unrestricted {
		t.Fatal("expected trace and unrestricted enabled")
	}
	if cfg.Flags["width"] != "80" || cfg.Flags["catalog"] != "menus.yaml" {
		t.Fatalf("unexpected flag map %v", cfg.Flags)
	}
	if diff := cmp.Diff(args, cfg.Args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestLoadArgsErrors(t *testing.T) {
	if _, err := LoadArgs(nil, []string{"TMUX_POPUP_GRID_WIDTH=wide"}); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected env parse error, got %v", err)
	}
	if _, err := LoadArgs([]string{"-height", "-1"}, nil); err == nil {
		t.Fatal("expected negative height rejected")
	}
	if _, err := LoadArgs([]string{"-bogus"}, nil); err == nil {
		t.Fatal("expected unknown flag rejected")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults valid, got %v", err)
	}

	short := cfg
	short.App.RefreshInterval = time.Millisecond
	if err := Validate(short); err == nil {
		t.Fatal("expected short refresh rejected")
	}

	missing := cfg
	missing.App.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	if err := Validate(missing); err == nil {
		t.Fatal("expected missing catalog rejected")
	}
}
