// Package display defines the rendering backend the grid engine draws onto,
// along with Memory, an in-process implementation that the terminal UI reads
// from.
package display

import "github.com/atomicstack/tmux-popup-grid/internal/menu"

// Handle identifies a grid created by a Display. The zero Handle is never
// returned by CreateGrid.
type Handle uint64

// Display owns the grids shown to viewers.
type Display interface {
	CreateGrid(size int, title string) Handle
	// SetSlot writes payload into slot index; nil clears the slot.
	SetSlot(h Handle, index int, payload *menu.Payload)
	ClearSlot(h Handle, index int)
	Show(h Handle, viewer string)
	Close(viewer string)
}
