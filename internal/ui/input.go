package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
	"github.com/atomicstack/tmux-popup-grid/internal/router"
)

// clickKeys maps keys to the click they stand for on the highlighted slot.
// Terminals cannot report shift+enter, so capital letters stand in for the
// shifted clicks.
var clickKeys = map[string]menu.ClickKind{
	"enter": menu.Left,
	" ":     menu.Left,
	"r":     menu.Right,
	"m":     menu.Middle,
	"L":     menu.ShiftLeft,
	"R":     menu.ShiftRight,
	"d":     menu.Drop,
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.String() == "ctrl+c" {
		m.Close()
		return nil
	}
	if m.prompt.Active {
		m.handlePromptKey(key)
		return nil
	}
	m.handleGridKey(key)
	return nil
}

func (m *Model) handleGridKey(key tea.KeyMsg) {
	name := key.String()
	events.UI.Key(name, m.cursor.Slot)
	if kind, ok := clickKeys[name]; ok {
		m.click(m.cursor.Slot, kind)
		return
	}
	switch name {
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case "home", "g":
		if m.cursor.MoveHome() {
			events.UI.Cursor(m.cursor.Slot)
		}
	case "end", "G":
		if m.cursor.MoveEnd() {
			events.UI.Cursor(m.cursor.Slot)
		}
	case "pgdown", "n":
		m.reportNav(m.NextPage())
	case "pgup", "p":
		m.reportNav(m.PreviousPage())
	case "/":
		keyword := ""
		if s, ok := m.Session(); ok {
			keyword = s.Keyword()
		}
		m.prompt.Open(keyword)
		m.cursorDirty = true
	case "ctrl+u":
		m.Search("")
	case "esc", "q":
		m.reportNav(m.Back())
	}
}

func (m *Model) moveCursor(dx, dy int) {
	if m.cursor.Move(dx, dy) {
		events.UI.Cursor(m.cursor.Slot)
	}
}

func (m *Model) reportNav(err error) {
	if err != nil {
		m.errMsg = err.Error()
	}
}

// click routes a click on slot through the router, passing along the payload
// the viewer currently sees there.
func (m *Model) click(slot int, kind menu.ClickKind) router.Result {
	m.errMsg = ""
	c := router.Click{
		Viewer:       m.viewer,
		Slot:         slot,
		Kind:         kind,
		Unrestricted: m.unrestricted,
	}
	if grid, ok := m.display.Shown(m.viewer); ok {
		c.Payload = grid.Payload(slot)
	}
	res := m.router.Handle(c)
	if res.Outcome == router.OutcomeBlocked {
		m.setInfo("This menu is not available to unrestricted viewers.")
	}
	m.syncCursor()
	return res
}

// syncCursor keeps the cursor inside the grid after the menu changed.
func (m *Model) syncCursor() {
	if grid, ok := m.display.Shown(m.viewer); ok {
		m.cursor.Resize(len(grid.Slots))
	}
}

func (m *Model) handlePromptKey(key tea.KeyMsg) {
	id := m.menuID()
	before := m.prompt.CursorPos()
	defer func() {
		if m.prompt.CursorPos() != before {
			m.cursorDirty = true
		}
	}()
	switch key.String() {
	case "enter":
		m.Search(m.prompt.Close())
		return
	case "esc":
		m.prompt.Active = false
		if s, ok := m.Session(); ok {
			m.prompt.Set(s.Keyword(), 0)
		}
		return
	case "ctrl+u":
		if m.prompt.Clear() {
			events.Filter.Cleared(id)
		}
		return
	case "ctrl+w":
		if m.prompt.DeleteWordBackward() {
			events.Filter.WordBackspace(id, m.prompt.Text)
		}
		return
	case "ctrl+a":
		if m.prompt.MoveStart() {
			events.Filter.Cursor(id, m.prompt.Cursor)
		}
		return
	case "ctrl+e":
		if m.prompt.MoveEnd() {
			events.Filter.Cursor(id, m.prompt.Cursor)
		}
		return
	case "alt+b":
		if m.prompt.MoveWordBackward() {
			events.Filter.CursorWord(id, m.prompt.Cursor)
		}
		return
	case "alt+f":
		if m.prompt.MoveWordForward() {
			events.Filter.CursorWord(id, m.prompt.Cursor)
		}
		return
	}
	switch key.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if m.prompt.DeleteRuneBackward() {
			events.Filter.Backspace(id, m.prompt.Text)
		}
	case tea.KeyRunes:
		if key.Alt || len(key.Runes) == 0 {
			return
		}
		for _, r := range key.Runes {
			if unicode.IsControl(r) {
				return
			}
		}
		if m.prompt.Insert(string(key.Runes)) {
			events.Filter.Append(id, m.prompt.Text)
		}
	case tea.KeySpace:
		if m.prompt.Insert(" ") {
			events.Filter.Append(id, m.prompt.Text)
		}
	case tea.KeyLeft:
		if m.prompt.MoveRuneBackward() {
			events.Filter.Cursor(id, m.prompt.Cursor)
		}
	case tea.KeyRight:
		if m.prompt.MoveRuneForward() {
			events.Filter.Cursor(id, m.prompt.Cursor)
		}
	}
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.reportNav(m.PreviousPage())
		return nil
	case tea.MouseButtonWheelDown:
		m.reportNav(m.NextPage())
		return nil
	}
	if ev.Action != tea.MouseActionPress {
		return nil
	}
	var kind menu.ClickKind
	switch ev.Button {
	case tea.MouseButtonLeft:
		kind = menu.Left
		if ev.Shift {
			kind = menu.ShiftLeft
		}
	case tea.MouseButtonRight:
		kind = menu.Right
		if ev.Shift {
			kind = menu.ShiftRight
		}
	case tea.MouseButtonMiddle:
		kind = menu.Middle
	default:
		return nil
	}
	slot, ok := m.slotAt(ev.X, ev.Y)
	if !ok {
		return nil
	}
	events.UI.Mouse(kind.String(), slot)
	m.cursor.Set(slot)
	m.click(slot, kind)
	return nil
}

func (m *Model) menuID() string {
	if s, ok := m.Session(); ok {
		return s.Definition().ID()
	}
	return ""
}
