// Package router turns viewer clicks into widget actions. It finds the
// viewer's session, resolves the widget under the click, checks permissions
// and runs the matching bindings.
package router

import (
	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
	"github.com/atomicstack/tmux-popup-grid/internal/permission"
	"github.com/atomicstack/tmux-popup-grid/internal/session"
)

// Click is one interaction with a grid slot.
type Click struct {
	Viewer string
	Slot   int
	Kind   menu.ClickKind
	// Payload is what the viewer saw at Slot, used to find paginated items.
	Payload *menu.Payload
	// Unrestricted viewers bypass normal interaction handling unless the
	// menu allows it.
	Unrestricted bool
	// Cancel suppresses the host's default handling of the interaction.
	Cancel func()
}

// Outcome says how far a click got.
type Outcome int

const (
	OutcomeNoSession Outcome = iota
	OutcomeBlocked
	OutcomeNoWidget
	OutcomeDenied
	OutcomeDispatched
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoSession:
		return "no-session"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeNoWidget:
		return "no-widget"
	case OutcomeDenied:
		return "denied"
	case OutcomeDispatched:
		return "dispatched"
	}
	return "unknown"
}

// Result describes what Handle did.
type Result struct {
	Outcome   Outcome
	Cancelled bool
	Fired     int
	Message   string
}

// Feedback delivers denial cues and messages to a viewer.
type Feedback interface {
	Denied(viewer string)
	Message(viewer, text string)
}

// Router dispatches clicks for the sessions held by a Manager.
type Router struct {
	sessions *session.Manager
	oracle   permission.Oracle
	feedback Feedback
}

// New returns a Router. A nil oracle grants nothing; a nil feedback discards
// denial messages.
func New(sessions *session.Manager, oracle permission.Oracle, feedback Feedback) *Router {
	if oracle == nil {
		oracle = permission.NewStatic()
	}
	if feedback == nil {
		feedback = discard{}
	}
	return &Router{sessions: sessions, oracle: oracle, feedback: feedback}
}

// Handle routes c. Actions run on the calling goroutine; a panicking action
// propagates after the click has been cancelled.
func (r *Router) Handle(c Click) Result {
	s, ok := r.sessions.Lookup(c.Viewer)
	if !ok {
		events.Click.NoSession(c.Viewer, c.Slot)
		return Result{Outcome: OutcomeNoSession}
	}

	var res Result
	def := s.Definition()
	if !c.Unrestricted || !def.AllowCreative() {
		if c.Cancel != nil {
			c.Cancel()
		}
		res.Cancelled = true
		if c.Unrestricted {
			events.Click.Blocked(c.Viewer, def.ID(), c.Slot)
			res.Outcome = OutcomeBlocked
			return res
		}
	}

	w, ok := s.Resolve(c.Slot, c.Payload)
	if !ok {
		events.Click.NoWidget(c.Viewer, def.ID(), c.Slot)
		res.Outcome = OutcomeNoWidget
		return res
	}

	if w.HasPermissions() && !r.holdsAny(c.Viewer, w) {
		res.Outcome = OutcomeDenied
		res.Message = r.denialMessage(c.Viewer, w)
		r.feedback.Denied(c.Viewer)
		r.feedback.Message(c.Viewer, res.Message)
		events.Click.Denied(c.Viewer, def.ID(), c.Slot, res.Message)
		return res
	}

	res.Outcome = OutcomeDispatched
	events.Click.Dispatch(c.Viewer, def.ID(), c.Slot, c.Kind.String())
	for _, b := range w.MatchingBindings(c.Kind) {
		b.Action()
		res.Fired++
	}
	return res
}

func (r *Router) holdsAny(viewer string, w *menu.Widget) bool {
	for _, p := range w.Permissions() {
		if r.oracle.HasPermission(viewer, p.Node) {
			return true
		}
	}
	return false
}

func (r *Router) denialMessage(viewer string, w *menu.Widget) string {
	if partial, ok := r.oracle.(permission.PartialOracle); ok {
		for _, p := range w.Permissions() {
			if partial.HasPartialPermission(viewer, p.Node) {
				return p.Message
			}
		}
	}
	return menu.DefaultDenyMessage
}

type discard struct{}

func (discard) Denied(string)          {}
func (discard) Message(string, string) {}
