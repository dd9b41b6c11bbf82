package session

import (
	"errors"
	"slices"
	"sync"

	"github.com/atomicstack/tmux-popup-grid/internal/display"
	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

var errNoDefinition = errors.New("session: nil menu definition")

// Manager tracks at most one session per viewer. Opening a menu for a viewer
// replaces whatever session they had.
type Manager struct {
	display     display.Display
	decorations Decorations

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns a Manager drawing onto d. A nil decorations falls back to
// blank border widgets.
func NewManager(d display.Display, decorations Decorations) *Manager {
	if decorations == nil {
		decorations = plainDecorations{}
	}
	return &Manager{
		display:     d,
		decorations: decorations,
		sessions:    make(map[string]*Session),
	}
}

// Display returns the display sessions render onto.
func (m *Manager) Display() display.Display { return m.display }

// Open shows the first page of def to viewer.
func (m *Manager) Open(viewer string, def *menu.Definition) (*Session, error) {
	return m.OpenAt(viewer, def, 0)
}

// OpenAt shows page of def to viewer. The previous session, if any, is only
// replaced when page is valid.
func (m *Manager) OpenAt(viewer string, def *menu.Definition, page int) (*Session, error) {
	if def == nil {
		return nil, errNoDefinition
	}
	s := newSession(m, viewer, def)
	s.mu.Lock()
	s.applySearchLocked("")
	err := s.goToPageLocked(page)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	m.install(s)
	events.Menu.Open(viewer, def.ID(), def.Title(), page)
	return s, nil
}

// Reopen replaces the viewer's session with a fresh one over def, keeping the
// search keyword, sort order and page (clamped to the new page range) of the
// session it replaces. Without an existing session it behaves like Open.
func (m *Manager) Reopen(viewer string, def *menu.Definition) (*Session, error) {
	if def == nil {
		return nil, errNoDefinition
	}
	old, ok := m.Lookup(viewer)
	if !ok {
		return m.Open(viewer, def)
	}
	old.mu.Lock()
	keyword, page, cmp := old.keyword, old.page, old.sortCmp
	old.mu.Unlock()

	s := newSession(m, viewer, def)
	s.mu.Lock()
	s.sortCmp = cmp
	s.applySearchLocked(keyword)
	page = min(page, s.maxPage)
	_ = s.goToPageLocked(page)
	s.mu.Unlock()
	m.install(s)
	events.Menu.Reopen(viewer, def.ID(), keyword, page)
	return s, nil
}

// Lookup returns the viewer's session.
func (m *Manager) Lookup(viewer string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[viewer]
	return s, ok
}

// Close forgets the viewer's session and closes their display.
func (m *Manager) Close(viewer string) {
	m.mu.Lock()
	s, ok := m.sessions[viewer]
	delete(m.sessions, viewer)
	m.mu.Unlock()
	if ok {
		s.detach()
	}
	m.display.Close(viewer)
	events.Menu.Close(viewer)
}

// Viewers lists viewers with an open session, sorted.
func (m *Manager) Viewers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sessions))
	for viewer := range m.sessions {
		out = append(out, viewer)
	}
	slices.Sort(out)
	return out
}

// Back opens prev for viewer, or closes the viewer's display when prev is nil.
func (m *Manager) Back(viewer string, prev *menu.Definition) error {
	if prev == nil {
		m.Close(viewer)
		return nil
	}
	_, err := m.Open(viewer, prev)
	return err
}

func (m *Manager) install(s *Session) {
	m.mu.Lock()
	old := m.sessions[s.viewer]
	m.sessions[s.viewer] = s
	m.mu.Unlock()
	if old != nil && old != s {
		old.detach()
	}
	m.display.Show(s.markShown(), s.viewer)
}
