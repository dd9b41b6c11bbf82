package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const defaultLogFile = "tmux-popup-grid.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	output       io.Writer
	ownsOutput   bool
	logger       *zerolog.Logger
)

// current returns the shared logger, opening the log file on first use.
func current() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		return logger
	}
	w := output
	if w == nil {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
			w = io.Discard
		} else {
			w = f
			ownsOutput = true
		}
		output = w
	}
	l := zerolog.New(w).With().Timestamp().Logger()
	logger = &l
	return logger
}

// Error writes err to the shared log.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error().Err(err).Send()
}

// Info writes a plain message to the shared log.
func Info(msg string) {
	current().Info().Msg(msg)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry to the shared log when tracing is enabled.
func Trace(event string, fields map[string]any) {
	if !TraceEnabled() {
		return
	}
	e := current().Debug().Str("event", event)
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Send()
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput sends log entries to w instead of the log file. A nil w restores
// file output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	output = w
}

// Close releases the log file, if one is open.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

// closeLocked closes the log file only when this package opened it.
func closeLocked() {
	if f, ok := output.(*os.File); ok && ownsOutput {
		_ = f.Close()
	}
	ownsOutput = false
	output = nil
	logger = nil
}
