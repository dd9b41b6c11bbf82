package session

import (
	"github.com/atomicstack/tmux-popup-grid/internal/grid"
	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

// Decorations builds the filler widgets drawn across bordered rows.
type Decorations interface {
	BorderWidget(color menu.Color) *menu.Widget
}

type plainDecorations struct{}

func (plainDecorations) BorderWidget(color menu.Color) *menu.Widget {
	return menu.NewWidget(menu.Payload{Icon: "pane", Name: " ", Color: color})
}

// renderLocked writes the current page to the display. Items go into the
// fillable slots first; the next slot is cleared on the last page; pinned
// widgets are layered over the result in the order definition statics,
// borders, then navigation controls.
func (s *Session) renderLocked() {
	disp := s.manager.display
	size := s.def.Size()

	title := s.def.PageTitle(s.page, s.maxPage)
	created := false
	if s.handle == 0 || title != s.title {
		s.handle = disp.CreateGrid(size, title)
		s.title = title
		created = true
	}

	slots := make([]*menu.Payload, size)
	items := s.Items()
	if s.layout.HasSearch() {
		index := s.page * s.layout.ItemsPerPage()
		for _, slot := range s.layout.FillableSlots() {
			if index < len(items) {
				slots[slot] = &items[index].Payload
			}
			index++
		}
		if s.page >= s.maxPage {
			if next := s.layout.NextSlot(); s.layout.InBounds(next) {
				slots[next] = nil
			}
		}
	}

	s.statics = s.composeStaticsLocked()
	for slot, w := range s.statics {
		if s.layout.InBounds(slot) {
			slots[slot] = &w.Payload
		}
	}

	for slot, p := range slots {
		if p == nil {
			disp.ClearSlot(s.handle, slot)
			continue
		}
		disp.SetSlot(s.handle, slot, p)
	}

	if created && s.shown {
		disp.Show(s.handle, s.viewer)
	}
}

func (s *Session) composeStaticsLocked() map[int]*menu.Widget {
	out := s.def.StaticWidgets()

	decorations := s.manager.decorations
	for row, color := range s.def.Borders() {
		for _, slot := range grid.RowSlots(row) {
			if s.layout.InBounds(slot) {
				out[slot] = decorations.BorderWidget(color)
			}
		}
	}

	if !s.layout.HasSearch() {
		return out
	}
	if s.page < s.maxPage {
		out[s.layout.NextSlot()] = s.navWidget(s.def.NextPayload(), "next", s.NextPage)
	}
	switch {
	case s.page > 0:
		out[s.layout.PreviousSlot()] = s.navWidget(s.def.PreviousPayload(), "previous", s.PreviousPage)
	case s.def.BackButton() && s.def.Previous() != nil:
		out[s.layout.PreviousSlot()] = s.navWidget(s.def.BackPayload(), "back", func() error {
			return s.manager.Back(s.viewer, s.def.Previous())
		})
	}
	return out
}

func (s *Session) navWidget(p menu.Payload, name string, step func() error) *menu.Widget {
	viewer, id := s.viewer, s.def.ID()
	return menu.NewWidget(p).OnClick(menu.Bind(func() {
		if err := step(); err != nil {
			events.Menu.NavFailed(viewer, id, name, err)
		}
	}, menu.Any))
}
