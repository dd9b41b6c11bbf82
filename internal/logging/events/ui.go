package events

import "github.com/atomicstack/tmux-popup-grid/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key string, slot int) {
	logging.Trace("ui.key", map[string]any{"key": key, "slot": slot})
}

func (UITracer) Mouse(kind string, slot int) {
	logging.Trace("ui.mouse", map[string]any{"kind": kind, "slot": slot})
}

func (UITracer) Cursor(slot int) {
	logging.Trace("ui.cursor", map[string]any{"slot": slot})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]any{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]any{"info": info})
}

func (FilterTracer) Cleared(menuID string) {
	logging.Trace("filter.clear", map[string]any{"menu": menuID})
}

func (FilterTracer) WordBackspace(menuID, filter string) {
	logging.Trace("filter.word-backspace", map[string]any{"menu": menuID, "filter": filter})
}

func (FilterTracer) Cursor(menuID string, pos int) {
	logging.Trace("filter.cursor", map[string]any{"menu": menuID, "cursor": pos})
}

func (FilterTracer) CursorWord(menuID string, pos int) {
	logging.Trace("filter.cursor-word", map[string]any{"menu": menuID, "cursor": pos})
}

func (FilterTracer) Append(menuID, filter string) {
	logging.Trace("filter.append", map[string]any{"menu": menuID, "filter": filter})
}

func (FilterTracer) Backspace(menuID, filter string) {
	logging.Trace("filter.backspace", map[string]any{"menu": menuID, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]any{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]any{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]any{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]any{"id": id, "label": label, "msg": msgType})
}
