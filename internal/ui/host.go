package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tmux-popup-grid/internal/catalog"
	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

var errNoSession = errors.New("no menu open")

var _ catalog.Host = (*Model)(nil)

func (m *Model) findMenu(id string) (*menu.Definition, bool) {
	if id == menu.RootID {
		return m.root, m.root != nil
	}
	if m.catalog == nil {
		return nil, false
	}
	return m.catalog.Find(id)
}

// OpenMenu implements catalog.Host.
func (m *Model) OpenMenu(id string) error {
	def, ok := m.findMenu(id)
	if !ok {
		return fmt.Errorf("open %q: %w", id, catalog.ErrUnknownMenu)
	}
	if _, err := m.sessions.Open(m.viewer, def); err != nil {
		return err
	}
	m.prompt.Set("", 0)
	m.cursor.MoveHome()
	return nil
}

// Back implements catalog.Host. Without a previous menu the popup closes.
func (m *Model) Back() error {
	s, ok := m.Session()
	if !ok {
		return errNoSession
	}
	prev := s.Definition().Previous()
	if err := m.sessions.Back(m.viewer, prev); err != nil {
		return err
	}
	if prev == nil {
		m.quitting = true
	}
	return nil
}

// Close implements catalog.Host.
func (m *Model) Close() {
	m.sessions.Close(m.viewer)
	m.quitting = true
}

// NextPage implements catalog.Host.
func (m *Model) NextPage() error {
	s, ok := m.Session()
	if !ok {
		return errNoSession
	}
	return s.NextPage()
}

// PreviousPage implements catalog.Host.
func (m *Model) PreviousPage() error {
	s, ok := m.Session()
	if !ok {
		return errNoSession
	}
	return s.PreviousPage()
}

// Search implements catalog.Host.
func (m *Model) Search(keyword string) {
	s, ok := m.Session()
	if !ok {
		return
	}
	s.Search(keyword)
	m.prompt.Set(keyword, len([]rune(keyword)))
}

// RunTmux implements catalog.Host. The command runs after the current update.
func (m *Model) RunTmux(command string) error {
	m.enqueueTmux("tmux:run", command, func() error {
		return runTmux(m.socketPath, command)
	}, false)
	return nil
}

// Message implements catalog.Host.
func (m *Model) Message(text string) {
	m.setInfo(text)
}

// statusFeedback shows router denials in the status line.
type statusFeedback struct {
	m *Model
}

func (f statusFeedback) Denied(viewer string) {
	if viewer == f.m.viewer {
		f.m.denials++
	}
}

func (f statusFeedback) Message(viewer, text string) {
	if viewer != f.m.viewer {
		return
	}
	f.m.errMsg = text
	f.m.forceClearInfo()
	events.Action.Error(errors.New(text))
}
