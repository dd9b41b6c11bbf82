package events

import "github.com/atomicstack/tmux-popup-grid/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]any) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(reason string) {
	logging.Trace("app.exit", map[string]any{"reason": reason})
}

// Backend records a poller failing or recovering.
func (AppTracer) Backend(kind string, err error) {
	fields := map[string]any{"kind": kind, "ok": err == nil}
	if err != nil {
		fields["error"] = err.Error()
	}
	logging.Trace("app.backend", fields)
}
