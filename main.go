package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/tmux-popup-grid/internal/app"
	"github.com/atomicstack/tmux-popup-grid/internal/config"
	"github.com/atomicstack/tmux-popup-grid/internal/logging"
	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTracePayload(cfg))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		logging.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Close()
}

// startupTracePayload describes how the popup was launched.
func startupTracePayload(cfg config.Config) map[string]any {
	flags := make(map[string]any, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]any{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"viewer": map[string]any{
			"name":         cfg.App.Viewer,
			"permissions":  len(cfg.App.Permissions),
			"unrestricted": cfg.App.Unrestricted,
		},
		"terminal": probeTerminal(os.Stdin, os.Stdout, os.Stderr),
	}
	if cfg.App.CatalogPath != "" {
		payload["catalog"] = cfg.App.CatalogPath
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type terminalInfo struct {
	// Size is taken from the first descriptor that reports one.
	Size        *terminalSize    `json:"size,omitempty"`
	Descriptors []descriptorInfo `json:"descriptors"`
}

type terminalSize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type descriptorInfo struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Error    string `json:"error,omitempty"`
}

func probeTerminal(files ...*os.File) terminalInfo {
	info := terminalInfo{Descriptors: make([]descriptorInfo, 0, len(files))}
	for _, f := range files {
		if f == nil {
			continue
		}
		desc := descriptorInfo{Name: descriptorName(f)}
		fd := int(f.Fd())
		desc.Terminal = term.IsTerminal(fd)
		if desc.Terminal {
			width, height, err := term.GetSize(fd)
			switch {
			case err != nil:
				desc.Error = err.Error()
			case info.Size == nil:
				info.Size = &terminalSize{Source: desc.Name, Width: width, Height: height}
			}
		}
		info.Descriptors = append(info.Descriptors, desc)
	}
	return info
}

func descriptorName(f *os.File) string {
	switch f {
	case os.Stdin:
		return "stdin"
	case os.Stdout:
		return "stdout"
	case os.Stderr:
		return "stderr"
	}
	return f.Name()
}
