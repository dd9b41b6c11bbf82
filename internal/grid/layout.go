// Package grid holds the slot arithmetic shared by menu definitions and the
// pagination engine. Grids are always nine columns wide; rows are numbered from
// zero and slot n sits at row n/9, column n%9.
package grid

// Columns is the fixed width of every grid.
const Columns = 9

// Unset marks an optional row (search start/end, page row) as absent.
const Unset = -1

// Layout captures the parameters that decide where paginated items and the
// navigation controls land.
type Layout struct {
	Size         int
	SearchStart  int
	SearchEnd    int
	TopOffset    int
	BottomOffset int
	PageRow      int
}

// MaxRow returns the highest row index accepted by row-based setters. This is
// Size/9 rather than Size/9-1; callers have always been allowed to name the row
// just past the grid.
func MaxRow(size int) int {
	return size / Columns
}

// RowSlots returns the nine slots that make up row.
func RowSlots(row int) []int {
	slots := make([]int, Columns)
	for i := range slots {
		slots[i] = row*Columns + i
	}
	return slots
}

// HasSearch reports whether a search block has been configured.
func (l Layout) HasSearch() bool {
	return l.SearchStart != Unset && l.SearchEnd != Unset
}

// SearchRows returns the number of rows in the search block.
func (l Layout) SearchRows() int {
	if !l.HasSearch() {
		return 0
	}
	return l.SearchEnd - l.SearchStart + 1
}

// ItemsPerPage returns how many paginated items fit on one page.
func (l Layout) ItemsPerPage() int {
	if !l.HasSearch() {
		return 0
	}
	return l.SearchRows()*Columns - l.TopOffset - l.BottomOffset
}

// FirstSlot returns the first fillable slot of the search block.
func (l Layout) FirstSlot() int {
	return l.SearchStart*Columns + l.TopOffset
}

// FillableSlots lists the slots the pagination engine writes items into.
//
// The upper bound is compared against ItemsPerPage as an absolute slot index,
// not as a count from FirstSlot. That only lines up when the search block
// starts at row 0; the behaviour is kept so existing menu layouts render the
// same way.
func (l Layout) FillableSlots() []int {
	if !l.HasSearch() {
		return nil
	}
	limit := l.ItemsPerPage()
	if limit > l.Size {
		limit = l.Size
	}
	var slots []int
	for slot := l.FirstSlot(); slot < limit; slot++ {
		if slot < 0 {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// NextSlot returns the slot that holds the "next page" control.
func (l Layout) NextSlot() int {
	if l.PageRow != Unset {
		return Columns*(l.PageRow+1) - 1
	}
	return l.SearchRows()*Columns - 1
}

// PreviousSlot returns the slot that holds the "previous page" or "back"
// control.
func (l Layout) PreviousSlot() int {
	if l.PageRow != Unset {
		return Columns * l.PageRow
	}
	return l.SearchRows() * Columns
}

// InBounds reports whether slot is addressable in a grid of this size.
func (l Layout) InBounds(slot int) bool {
	return slot >= 0 && slot < l.Size
}

// MaxPage returns the highest zero-based page index for count items.
//
// When count is an exact multiple of ItemsPerPage (and larger than one page)
// the result includes a trailing page with no items on it.
func (l Layout) MaxPage(count int) int {
	perPage := l.ItemsPerPage()
	if perPage <= 0 || count <= perPage {
		return 0
	}
	return count / perPage
}
