// Package session holds the per-viewer state of an open menu: which page is
// shown, the active search keyword and the working item list derived from the
// menu definition. Sessions are created and tracked by a Manager.
package session

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/atomicstack/tmux-popup-grid/internal/display"
	"github.com/atomicstack/tmux-popup-grid/internal/grid"
	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

// ErrInvalidPage is returned when a page outside [0, MaxPage] is requested.
var ErrInvalidPage = errors.New("invalid page")

// Session is one viewer's view of a menu definition.
type Session struct {
	manager *Manager
	def     *menu.Definition
	viewer  string
	layout  grid.Layout

	// items is replaced wholesale; the slice it points at is never modified.
	items atomic.Pointer[[]*menu.Widget]

	mu      sync.Mutex
	page    int
	maxPage int
	keyword string
	sortCmp func(a, b *menu.Widget) int
	statics map[int]*menu.Widget
	handle  display.Handle
	title   string
	shown   bool
}

func newSession(m *Manager, viewer string, def *menu.Definition) *Session {
	s := &Session{
		manager: m,
		def:     def,
		viewer:  viewer,
		layout:  def.Layout(),
		statics: map[int]*menu.Widget{},
	}
	s.swapItems(def.Items())
	return s
}

// Definition returns the menu this session was opened from.
func (s *Session) Definition() *menu.Definition { return s.def }

// Viewer returns the viewer identity.
func (s *Session) Viewer() string { return s.viewer }

// Page returns the current zero-based page.
func (s *Session) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// MaxPage returns the highest page index for the working items.
func (s *Session) MaxPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxPage
}

// Keyword returns the active search keyword; empty means unfiltered.
func (s *Session) Keyword() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyword
}

// Title returns the title of the grid last rendered.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// Handle returns the display grid backing the session.
func (s *Session) Handle() display.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

// Items returns the working item snapshot. The slice is shared and must be
// treated as read-only.
func (s *Session) Items() []*menu.Widget {
	if p := s.items.Load(); p != nil {
		return *p
	}
	return nil
}

// StaticWidgets returns the widgets pinned to slots on the current page,
// including borders and navigation controls.
func (s *Session) StaticWidgets() map[int]*menu.Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.statics)
}

// GoToPage renders page n.
func (s *Session) GoToPage(n int) error {
	s.mu.Lock()
	if err := s.goToPageLocked(n); err != nil {
		s.mu.Unlock()
		return err
	}
	page, maxPage := s.page, s.maxPage
	s.mu.Unlock()
	events.Menu.Page(s.viewer, s.def.ID(), page, maxPage)
	return nil
}

// NextPage renders the page after the current one.
func (s *Session) NextPage() error {
	return s.GoToPage(s.Page() + 1)
}

// PreviousPage renders the page before the current one.
func (s *Session) PreviousPage() error {
	return s.GoToPage(s.Page() - 1)
}

// Search filters the working items by keyword and returns to the first page.
// An empty keyword restores the full item list.
func (s *Session) Search(keyword string) {
	s.mu.Lock()
	s.applySearchLocked(keyword)
	s.page = 0
	s.renderLocked()
	count := len(s.Items())
	s.mu.Unlock()
	events.Menu.Search(s.viewer, s.def.ID(), keyword, count)
}

// Sort orders the working items with cmp and re-renders the current page. The
// ordering is kept across later searches.
func (s *Session) Sort(cmp func(a, b *menu.Widget) int) {
	if cmp == nil {
		return
	}
	s.mu.Lock()
	s.sortCmp = cmp
	sorted := slices.Clone(s.Items())
	slices.SortStableFunc(sorted, cmp)
	s.swapItems(sorted)
	s.renderLocked()
	s.mu.Unlock()
	events.Menu.Sort(s.viewer, s.def.ID())
}

// Resolve finds the widget behind a click on slot. Pinned widgets win;
// otherwise the last working item similar to the payload shown at the slot
// is returned.
func (s *Session) Resolve(slot int, shown *menu.Payload) (*menu.Widget, bool) {
	s.mu.Lock()
	w, ok := s.statics[slot]
	s.mu.Unlock()
	if ok {
		return w, true
	}
	if shown == nil {
		return nil, false
	}
	var found *menu.Widget
	for _, item := range s.Items() {
		if item.Payload.Similar(*shown) {
			found = item
		}
	}
	return found, found != nil
}

func (s *Session) swapItems(items []*menu.Widget) {
	s.items.Store(&items)
}

func (s *Session) goToPageLocked(n int) error {
	if n < 0 || n > s.maxPage {
		return fmt.Errorf("page %d outside 0-%d: %w", n, s.maxPage, ErrInvalidPage)
	}
	s.page = n
	s.renderLocked()
	return nil
}

func (s *Session) applySearchLocked(keyword string) {
	next := filterItems(s.def.Items(), keyword, s.def.SearchMode())
	if s.sortCmp != nil {
		slices.SortStableFunc(next, s.sortCmp)
	}
	s.keyword = keyword
	s.swapItems(next)
	s.maxPage = s.layout.MaxPage(len(next))
}

func (s *Session) detach() {
	s.mu.Lock()
	s.shown = false
	s.mu.Unlock()
}

func (s *Session) markShown() display.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = true
	return s.handle
}
