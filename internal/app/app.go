package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-grid/internal/backend"
	"github.com/atomicstack/tmux-popup-grid/internal/permission"
	"github.com/atomicstack/tmux-popup-grid/internal/tmux"
	"github.com/atomicstack/tmux-popup-grid/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath      string
	Width           int
	Height          int
	ShowFooter      bool
	Verbose         bool
	RootMenu        string
	CatalogPath     string
	Viewer          string
	Permissions     []string
	Unrestricted    bool
	RefreshInterval time.Duration
}

// Oracle grants the configured permissions to the configured viewer.
func (c Config) Oracle() *permission.Static {
	oracle := permission.NewStatic()
	if len(c.Permissions) > 0 {
		oracle.Grant(c.Viewer, c.Permissions...)
	}
	return oracle
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	watcher := backend.NewWatcher(socketPath, cfg.CatalogPath, cfg.RefreshInterval)
	defer watcher.Stop()
	model, err := ui.NewModel(ui.Options{
		SocketPath:   socketPath,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Verbose:      cfg.Verbose,
		Viewer:       cfg.Viewer,
		Unrestricted: cfg.Unrestricted,
		RootMenu:     cfg.RootMenu,
		CatalogPath:  cfg.CatalogPath,
		Oracle:       cfg.Oracle(),
		Watcher:      watcher,
	})
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
