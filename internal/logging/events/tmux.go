package events

import "github.com/atomicstack/tmux-popup-grid/internal/logging"

type TmuxTracer struct{}

var Tmux = TmuxTracer{}

func (TmuxTracer) Switch(target string) {
	logging.Trace("tmux.switch", map[string]any{"target": target})
}

func (TmuxTracer) Detach(target string) {
	logging.Trace("tmux.detach", map[string]any{"target": target})
}

func (TmuxTracer) Kill(target string) {
	logging.Trace("tmux.kill", map[string]any{"target": target})
}

func (TmuxTracer) Run(args []string) {
	logging.Trace("tmux.run", map[string]any{"args": args})
}
