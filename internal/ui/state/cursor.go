package state

import "github.com/atomicstack/tmux-popup-grid/internal/grid"

// SlotCursor tracks the highlighted slot of a grid with nine columns.
type SlotCursor struct {
	Slot int
	Size int
}

// Resize adapts the cursor to a grid of size slots, keeping it in range.
func (c *SlotCursor) Resize(size int) {
	if size < 0 {
		size = 0
	}
	c.Size = size
	c.clamp()
}

// Row returns the cursor's row.
func (c *SlotCursor) Row() int { return c.Slot / grid.Columns }

// Col returns the cursor's column.
func (c *SlotCursor) Col() int { return c.Slot % grid.Columns }

// Move shifts the cursor by dx columns and dy rows. Horizontal moves wrap
// within the row; vertical moves stop at the first and last rows.
func (c *SlotCursor) Move(dx, dy int) bool {
	if c.Size == 0 {
		return false
	}
	old := c.Slot
	rows := c.Size / grid.Columns
	row := c.Row() + dy
	if row < 0 {
		row = 0
	}
	if row >= rows {
		row = rows - 1
	}
	col := (c.Col() + dx) % grid.Columns
	if col < 0 {
		col += grid.Columns
	}
	c.Slot = row*grid.Columns + col
	return c.Slot != old
}

// MoveHome moves the cursor to the first slot.
func (c *SlotCursor) MoveHome() bool {
	return c.set(0)
}

// MoveEnd moves the cursor to the last slot.
func (c *SlotCursor) MoveEnd() bool {
	return c.set(c.Size - 1)
}

// Set places the cursor on slot when it exists.
func (c *SlotCursor) Set(slot int) bool {
	if slot < 0 || slot >= c.Size {
		return false
	}
	return c.set(slot)
}

func (c *SlotCursor) set(slot int) bool {
	if c.Size == 0 {
		c.Slot = 0
		return false
	}
	old := c.Slot
	c.Slot = slot
	c.clamp()
	return old != c.Slot
}

func (c *SlotCursor) clamp() {
	if c.Slot >= c.Size {
		c.Slot = c.Size - 1
	}
	if c.Slot < 0 {
		c.Slot = 0
	}
}
