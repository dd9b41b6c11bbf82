package menu

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-popup-grid/internal/grid"
)

// DefaultPageNumberFormat is appended to the title when page numbers are shown.
// %c is replaced with the current page and %m with the max page.
const DefaultPageNumberFormat = "(%c/%m)"

// SearchMode selects how search keywords are matched against item names.
type SearchMode int

const (
	// SearchContains keeps items whose plain name contains the keyword,
	// ignoring case.
	SearchContains SearchMode = iota
	// SearchFuzzy keeps items whose plain name fuzzily matches the keyword.
	SearchFuzzy
)

// ParseSearchMode resolves "contains" or "fuzzy". Empty means contains.
func ParseSearchMode(name string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "contains":
		return SearchContains, nil
	case "fuzzy":
		return SearchFuzzy, nil
	}
	return SearchContains, fmt.Errorf("unknown search mode %q", name)
}

var (
	defaultNextPayload     = Payload{Icon: "arrow", Name: "Next Page", Color: ColorGray}
	defaultPreviousPayload = Payload{Icon: "arrow", Name: "Previous Page", Color: ColorGray}
	defaultBackPayload     = Payload{Icon: "arrow", Name: "Back", Color: ColorGray}
)

// Definition is the template every viewer session of a menu is derived from.
// Configure it with the setters, then treat it as read-only once opened.
type Definition struct {
	id       string
	title    string
	size     int
	previous *Definition

	layout grid.Layout

	borders         map[int]Color
	inlineNav       bool
	backButton      bool
	allowCreative   bool
	showPageNumbers bool
	pageFormat      string
	searchMode      SearchMode

	statics map[int]*Widget
	items   []*Widget

	nextPayload     Payload
	previousPayload Payload
	backPayload     Payload
}

// NewDefinition creates a definition for a grid of size slots.
func NewDefinition(title string, size int) (*Definition, error) {
	if size <= 0 || size%grid.Columns != 0 {
		return nil, fmt.Errorf("size %d must be a positive multiple of %d: %w", size, grid.Columns, ErrInvalidSize)
	}
	return &Definition{
		title: title,
		size:  size,
		layout: grid.Layout{
			Size:        size,
			SearchStart: grid.Unset,
			SearchEnd:   grid.Unset,
			PageRow:     grid.Unset,
		},
		borders:         make(map[int]Color),
		backButton:      true,
		pageFormat:      DefaultPageNumberFormat,
		statics:         make(map[int]*Widget),
		nextPayload:     defaultNextPayload,
		previousPayload: defaultPreviousPayload,
		backPayload:     defaultBackPayload,
	}, nil
}

// ID returns the registry identifier, if one was assigned.
func (d *Definition) ID() string { return d.id }

// SetID assigns the identifier used by Registry.
func (d *Definition) SetID(id string) { d.id = id }

// Title returns the base title.
func (d *Definition) Title() string { return d.title }

// Size returns the number of slots in the grid.
func (d *Definition) Size() int { return d.size }

// Previous returns the menu the back control opens, or nil.
func (d *Definition) Previous() *Definition { return d.previous }

// SetPrevious sets the menu the back control opens.
func (d *Definition) SetPrevious(prev *Definition) { d.previous = prev }

// Layout returns the geometry used by the pagination engine.
func (d *Definition) Layout() grid.Layout { return d.layout }

func (d *Definition) maxRow() int { return grid.MaxRow(d.size) }

// AddStaticWidget pins w to slot on every page.
func (d *Definition) AddStaticWidget(slot int, w *Widget) error {
	if slot < 0 || slot >= d.size {
		return fmt.Errorf("slot %d outside grid of %d: %w", slot, d.size, ErrInvalidSlot)
	}
	if w == nil {
		return fmt.Errorf("slot %d: nil widget: %w", slot, ErrInvalidSlot)
	}
	d.statics[slot] = w
	return nil
}

// StaticWidgets returns a copy of the slot to widget mapping.
func (d *Definition) StaticWidgets() map[int]*Widget {
	return maps.Clone(d.statics)
}

// ClearStaticWidgets removes every static widget.
func (d *Definition) ClearStaticWidgets() {
	clear(d.statics)
}

// AddItem appends a copy of w to the paginated items.
func (d *Definition) AddItem(w *Widget) {
	if w == nil {
		return
	}
	d.items = append(d.items, w.Clone())
}

// Items returns a fresh slice of the paginated items. The slice is the
// caller's to keep; the widgets themselves are shared and must not be
// modified.
func (d *Definition) Items() []*Widget {
	return slices.Clone(d.items)
}

// ItemCount returns the number of paginated items.
func (d *Definition) ItemCount() int { return len(d.items) }

// AddBorder fills row with border widgets of color.
func (d *Definition) AddBorder(row int, color Color) error {
	if row < 0 || row > d.maxRow() {
		return fmt.Errorf("border row %d exceeds max row %d: %w", row, d.maxRow(), ErrInvalidRow)
	}
	if _, ok := d.borders[row]; ok {
		return fmt.Errorf("row %d: %w", row, ErrDuplicateBorder)
	}
	d.borders[row] = color
	return nil
}

// AddDefaultBorder adds a black border on row.
func (d *Definition) AddDefaultBorder(row int) error {
	return d.AddBorder(row, ColorBlack)
}

// RemoveBorder removes the border on row.
func (d *Definition) RemoveBorder(row int) error {
	if row < 0 || row > d.maxRow() {
		return fmt.Errorf("border row %d exceeds max row %d: %w", row, d.maxRow(), ErrInvalidRow)
	}
	if _, ok := d.borders[row]; !ok {
		return fmt.Errorf("row %d: %w", row, ErrNoSuchBorder)
	}
	delete(d.borders, row)
	return nil
}

// RemoveBorders drops every border.
func (d *Definition) RemoveBorders() {
	clear(d.borders)
}

// Borders returns a copy of the row to colour mapping.
func (d *Definition) Borders() map[int]Color {
	return maps.Clone(d.borders)
}

// BorderRows returns the bordered rows in ascending order.
func (d *Definition) BorderRows() []int {
	return slices.Sorted(maps.Keys(d.borders))
}

// SetSearchRows sets the inclusive row range paginated items are placed in.
func (d *Definition) SetSearchRows(start, end int) error {
	if end < start {
		return fmt.Errorf("search rows %d-%d: end before start: %w", start, end, ErrInvalidRange)
	}
	if start < 0 || start > d.maxRow() || end > d.maxRow() {
		return fmt.Errorf("search rows %d-%d exceed max row %d: %w", start, end, d.maxRow(), ErrInvalidRange)
	}
	d.layout.SearchStart = start
	d.layout.SearchEnd = end
	return nil
}

// SetSearchOffset keeps top slots empty at the start of the search block and
// bottom slots empty at its end.
func (d *Definition) SetSearchOffset(top, bottom int) error {
	if top < 0 || bottom < 0 {
		return fmt.Errorf("offsets %d/%d must not be negative: %w", top, bottom, ErrInvalidRange)
	}
	if err := d.checkOffsets(top, bottom); err != nil {
		return err
	}
	d.layout.TopOffset = top
	d.layout.BottomOffset = bottom
	return nil
}

// checkOffsets rejects offsets that leave no room for items in the search
// block. Without a search block there is nothing to check yet.
func (d *Definition) checkOffsets(top, bottom int) error {
	if !d.layout.HasSearch() {
		return nil
	}
	if capacity := d.layout.SearchRows() * grid.Columns; top+bottom >= capacity {
		return fmt.Errorf("offsets %d/%d fill the %d-slot search block: %w", top, bottom, capacity, ErrInvalidRange)
	}
	return nil
}

// SetSymmetricOffset applies the same offset to both ends of the search block.
func (d *Definition) SetSymmetricOffset(offset int) error {
	return d.SetSearchOffset(offset, offset)
}

// SetInlineNavigation places the page controls in line with the search
// block. Enabling it grows both offsets by one, so call it before relying on
// the final offsets.
func (d *Definition) SetInlineNavigation(inline bool) error {
	if !d.layout.HasSearch() {
		return fmt.Errorf("inline navigation: %w", ErrNoSearchBox)
	}
	if inline {
		if err := d.checkOffsets(d.layout.TopOffset+1, d.layout.BottomOffset+1); err != nil {
			return err
		}
		d.layout.TopOffset++
		d.layout.BottomOffset++
	}
	d.inlineNav = inline
	return nil
}

// InlineNavigation reports whether inline navigation is enabled.
func (d *Definition) InlineNavigation() bool { return d.inlineNav }

// SetPageRow moves the page controls onto row.
func (d *Definition) SetPageRow(row int) error {
	if !d.layout.HasSearch() {
		return fmt.Errorf("page row: %w", ErrNoSearchBox)
	}
	if row < 0 || row > d.maxRow() {
		return fmt.Errorf("page row %d exceeds max row %d: %w", row, d.maxRow(), ErrInvalidRow)
	}
	d.layout.PageRow = row
	return nil
}

// SetBackButton toggles the back control on the first page.
func (d *Definition) SetBackButton(enabled bool) { d.backButton = enabled }

// BackButton reports whether the back control is enabled.
func (d *Definition) BackButton() bool { return d.backButton }

// SetAllowCreative lets unrestricted viewers interact with the grid normally.
func (d *Definition) SetAllowCreative(allow bool) { d.allowCreative = allow }

// AllowCreative reports whether unrestricted viewers get normal handling.
func (d *Definition) AllowCreative() bool { return d.allowCreative }

// SetShowPageNumbers toggles the page suffix in the title. An empty format
// keeps the current one.
func (d *Definition) SetShowPageNumbers(show bool, format string) {
	d.showPageNumbers = show
	if format != "" {
		d.pageFormat = format
	}
}

// ShowPageNumbers reports whether the title carries page numbers.
func (d *Definition) ShowPageNumbers() bool { return d.showPageNumbers }

// PageNumberFormat returns the title suffix format.
func (d *Definition) PageNumberFormat() string { return d.pageFormat }

// PageTitle returns the grid title for page. %c is the raw zero-based page
// counter, not a one-based display number.
func (d *Definition) PageTitle(page, maxPage int) string {
	if !d.showPageNumbers {
		return d.title
	}
	suffix := strings.NewReplacer(
		"%c", strconv.Itoa(page),
		"%m", strconv.Itoa(maxPage),
	).Replace(d.pageFormat)
	return d.title + " " + suffix
}

// SetSearchMode selects how search keywords match item names.
func (d *Definition) SetSearchMode(mode SearchMode) { d.searchMode = mode }

// SearchMode returns the keyword matching mode.
func (d *Definition) SearchMode() SearchMode { return d.searchMode }

// SetNextPayload overrides how the next page control looks.
func (d *Definition) SetNextPayload(p Payload) { d.nextPayload = p.Clone() }

// SetPreviousPayload overrides how the previous page control looks.
func (d *Definition) SetPreviousPayload(p Payload) { d.previousPayload = p.Clone() }

// SetBackPayload overrides how the back control looks.
func (d *Definition) SetBackPayload(p Payload) { d.backPayload = p.Clone() }

// NextPayload returns the next page control payload.
func (d *Definition) NextPayload() Payload { return d.nextPayload.Clone() }

// PreviousPayload returns the previous page control payload.
func (d *Definition) PreviousPayload() Payload { return d.previousPayload.Clone() }

// BackPayload returns the back control payload.
func (d *Definition) BackPayload() Payload { return d.backPayload.Clone() }
