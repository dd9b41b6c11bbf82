package ui

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-popup-grid/internal/logging"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
	"github.com/atomicstack/tmux-popup-grid/internal/tmux"
)

const (
	defaultRootTitle = "tmux sessions"
	rootSize         = 54
	rootSearchEnd    = 3
	rootBorderRow    = 4

	slotClearSearch = 48
	slotClose       = 49
	slotSort        = 50

	permKillSession = "tmux.session.kill"
	killDenied      = "You may not kill tmux sessions."
)

var sessionKey = menu.NewKey[string]("tmux.session")

// rebuildRoot replaces the root definition with one listing the sessions in
// the store, then merges in the catalog's root widgets.
func (m *Model) rebuildRoot() error {
	title := defaultRootTitle
	if m.catalog != nil && strings.TrimSpace(m.catalog.RootTitle()) != "" {
		title = m.catalog.RootTitle()
	}
	def, err := menu.NewDefinition(title, rootSize)
	if err != nil {
		return err
	}
	if err := def.SetSearchRows(0, rootSearchEnd); err != nil {
		return err
	}
	if err := def.AddBorder(rootBorderRow, menu.ColorGray); err != nil {
		return err
	}
	def.SetShowPageNumbers(true, "")
	def.SetBackButton(false)

	statics := map[int]*menu.Widget{
		slotClearSearch: menu.NewWidget(menu.Payload{Icon: "search", Name: "Clear search", Color: menu.ColorLightGray}).
			OnClick(menu.Bind(func() { m.Search("") })),
		slotClose: menu.NewWidget(menu.Payload{Icon: "close", Name: "Close", Color: menu.ColorRed}).
			OnClick(menu.Bind(m.Close)),
		slotSort: menu.NewWidget(menu.Payload{Icon: "sort", Name: "Sort", Lore: []string{"toggle name order"}, Color: menu.ColorLightGray}).
			OnClick(menu.Bind(m.toggleSort)),
	}
	for slot, w := range statics {
		if err := def.AddStaticWidget(slot, w); err != nil {
			return err
		}
	}

	current := m.store.Current()
	for _, s := range m.store.Entries() {
		def.AddItem(m.sessionWidget(s, s.Name == current))
	}

	if m.catalog != nil {
		if err := m.catalog.Attach(def); err != nil {
			return err
		}
	} else {
		def.SetID(menu.RootID)
	}
	m.root = def
	return nil
}

func (m *Model) sessionWidget(s tmux.Session, current bool) *menu.Widget {
	name := s.Name
	label := strings.TrimSpace(s.Label)
	if label == "" {
		label = name
	}
	lore := []string{fmt.Sprintf("%d windows", s.Windows)}
	if len(s.Clients) > 0 {
		lore = append(lore, "clients: "+strings.Join(s.Clients, ", "))
	}
	color := menu.ColorWhite
	switch {
	case current:
		color = menu.ColorLime
	case s.Attached:
		color = menu.ColorYellow
	}
	w := menu.NewWidget(menu.Payload{Icon: "session", Name: name, Lore: lore, Color: color})
	menu.Store(w, sessionKey, name)
	w.OnClick(menu.Bind(func() { m.switchTo(name) }, menu.Left))
	w.OnClick(menu.Bind(func() { m.openSessionMenu(name) }, menu.Right))
	w.OnClick(menu.Bind(func() { m.killIfAllowed(name) }, menu.Drop))
	return w
}

// sessionMenu builds the action menu for one session. It links back to the
// current root.
func (m *Model) sessionMenu(name string) (*menu.Definition, error) {
	def, err := menu.NewDefinition("session: "+name, 18)
	if err != nil {
		return nil, err
	}
	if err := def.SetSearchRows(0, 0); err != nil {
		return nil, err
	}
	def.SetID("session:" + name)
	def.SetPrevious(m.root)

	def.AddItem(menu.NewWidget(menu.Payload{Icon: "switch", Name: "switch", Color: menu.ColorGreen}).
		OnClick(menu.Bind(func() { m.switchTo(name) })))
	def.AddItem(menu.NewWidget(menu.Payload{Icon: "detach", Name: "detach", Color: menu.ColorYellow}).
		OnClick(menu.Bind(func() { m.detach(name) })))
	def.AddItem(menu.NewWidget(menu.Payload{Icon: "kill", Name: "kill", Color: menu.ColorRed}).
		RequirePermission(permKillSession, killDenied).
		OnClick(menu.Bind(func() { m.kill(name) })))
	return def, nil
}

func (m *Model) openSessionMenu(name string) {
	def, err := m.sessionMenu(name)
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return
	}
	if _, err := m.sessions.Open(m.viewer, def); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return
	}
	m.cursor.MoveHome()
}

// killIfAllowed backs the drop gesture, which shares a widget with switching
// and so cannot rely on the widget's permission gate.
func (m *Model) killIfAllowed(name string) {
	if !m.oracle.HasPermission(m.viewer, permKillSession) {
		fb := statusFeedback{m: m}
		fb.Denied(m.viewer)
		fb.Message(m.viewer, killDenied)
		return
	}
	m.kill(name)
}

func (m *Model) toggleSort() {
	s, ok := m.Session()
	if !ok {
		return
	}
	m.sortDesc = !m.sortDesc
	desc := m.sortDesc
	s.Sort(func(a, b *menu.Widget) int {
		if desc {
			return cmp.Compare(b.Payload.PlainName(), a.Payload.PlainName())
		}
		return cmp.Compare(a.Payload.PlainName(), b.Payload.PlainName())
	})
}

// refreshRoot rebuilds the root after a session update. A viewer looking at
// the root keeps their keyword, sort order and page.
func (m *Model) refreshRoot() {
	if err := m.rebuildRoot(); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return
	}
	s, ok := m.Session()
	if !ok {
		return
	}
	// an open session submenu must lead back to the fresh root
	if def := s.Definition(); strings.HasPrefix(def.ID(), "session:") {
		def.SetPrevious(m.root)
		return
	}
	if s.Definition().ID() != menu.RootID {
		return
	}
	if _, err := m.sessions.Reopen(m.viewer, m.root); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
	}
}
