package ui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-grid/internal/backend"
	"github.com/atomicstack/tmux-popup-grid/internal/catalog"
	"github.com/atomicstack/tmux-popup-grid/internal/logging"
	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if prev, seen := m.backendState[evt.Kind]; !seen || (prev == nil) != (evt.Err == nil) {
		events.App.Backend(evt.Kind.String(), evt.Err)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		logging.Error(evt.Err)
		return
	}
	res := m.dispatcher.Handle(evt)
	if res.CatalogChanged {
		m.reloadCatalog()
	}
	if res.SessionsUpdated {
		m.refreshRoot()
	}
	m.syncCursor()
}

// reloadCatalog swaps in a freshly parsed catalog. On error the previous one
// stays active.
func (m *Model) reloadCatalog() {
	if m.catalog == nil || m.catalog.Path() == "" {
		return
	}
	c, err := catalog.Load(m.catalog.Path(), m)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.catalog = c
	m.refreshRoot()

	s, ok := m.Session()
	if !ok {
		return
	}
	id := s.Definition().ID()
	if id == menu.RootID || strings.HasPrefix(id, "session:") {
		return
	}
	if def, found := c.Find(id); found {
		_, err = m.sessions.Reopen(m.viewer, def)
	} else {
		_, err = m.sessions.Open(m.viewer, m.root)
	}
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
	}
}

// backendIssue summarises the first poller currently failing.
func (m *Model) backendIssue() string {
	kinds := make([]int, 0, len(m.backendState))
	for kind, err := range m.backendState {
		if err != nil {
			kinds = append(kinds, int(kind))
		}
	}
	if len(kinds) == 0 {
		return ""
	}
	sort.Ints(kinds)
	return m.backendState[backend.Kind(kinds[0])].Error()
}
