package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
)

// Request encapsulates a host action that talks to tmux.
type Request struct {
	ID    string
	Label string
	Run   func() error
	// Quit ends the program once the action succeeds.
	Quit bool
}

// Result reports the outcome of a Request back to the UI.
type Result struct {
	ID    string
	Label string
	Err   error
	Quit  bool
}

// Bus turns host actions into Bubble Tea commands so they run off the
// update loop.
type Bus struct {
	pending []Request
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Enqueue records req for the next Drain.
func (b *Bus) Enqueue(req Request) {
	events.Command.Queue(req.ID, req.Label)
	b.pending = append(b.pending, req)
}

// Pending returns the number of queued requests.
func (b *Bus) Pending() int {
	return len(b.pending)
}

// Results is delivered once every drained request has run.
type Results []Result

// Drain turns the queued requests into one command that runs them in order,
// and empties the queue.
func (b *Bus) Drain() tea.Cmd {
	if len(b.pending) == 0 {
		return nil
	}
	reqs := b.pending
	b.pending = nil
	return func() tea.Msg {
		out := make(Results, 0, len(reqs))
		for _, req := range reqs {
			if res, ok := b.Execute(req)().(Result); ok {
				out = append(out, res)
			}
		}
		return out
	}
}

// Execute wraps req into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		res := Result{ID: req.ID, Label: req.Label, Quit: req.Quit}
		res.Err = req.Run()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", res.Err))
		return res
	}
}
