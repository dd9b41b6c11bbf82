package display

import (
	"sync"

	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

// Grid is a point-in-time copy of a grid's contents.
type Grid struct {
	Handle Handle
	Title  string
	Slots  []*menu.Payload
}

// Payload returns the payload at slot, or nil when empty or out of range.
func (g Grid) Payload(slot int) *menu.Payload {
	if slot < 0 || slot >= len(g.Slots) {
		return nil
	}
	return g.Slots[slot]
}

type memoryGrid struct {
	title string
	slots []*menu.Payload
}

// Memory keeps grids in memory. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	next    Handle
	grids   map[Handle]*memoryGrid
	viewers map[string]Handle
	version uint64
}

// NewMemory creates an empty in-memory display.
func NewMemory() *Memory {
	return &Memory{
		grids:   make(map[Handle]*memoryGrid),
		viewers: make(map[string]Handle),
	}
}

// CreateGrid implements Display.
func (m *Memory) CreateGrid(size int, title string) Handle {
	if size < 0 {
		size = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.grids[m.next] = &memoryGrid{title: title, slots: make([]*menu.Payload, size)}
	m.version++
	return m.next
}

// SetSlot implements Display. Writes to unknown grids or slots are dropped.
func (m *Memory) SetSlot(h Handle, index int, payload *menu.Payload) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.grids[h]
	if !ok || index < 0 || index >= len(g.slots) {
		return
	}
	if payload == nil {
		g.slots[index] = nil
	} else {
		dup := payload.Clone()
		g.slots[index] = &dup
	}
	m.version++
}

// ClearSlot implements Display.
func (m *Memory) ClearSlot(h Handle, index int) {
	m.SetSlot(h, index, nil)
}

// Show implements Display. Grids no longer shown to anyone are released.
func (m *Memory) Show(h Handle, viewer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.grids[h]; !ok {
		return
	}
	prev, had := m.viewers[viewer]
	m.viewers[viewer] = h
	if had && prev != h {
		m.releaseLocked(prev)
	}
	m.version++
}

// Close implements Display.
func (m *Memory) Close(viewer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.viewers[viewer]
	if !ok {
		return
	}
	delete(m.viewers, viewer)
	m.releaseLocked(prev)
	m.version++
}

func (m *Memory) releaseLocked(h Handle) {
	for _, shown := range m.viewers {
		if shown == h {
			return
		}
	}
	delete(m.grids, h)
}

// Shown returns a copy of the grid currently shown to viewer.
func (m *Memory) Shown(viewer string) (Grid, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.viewers[viewer]
	if !ok {
		return Grid{}, false
	}
	return m.snapshotLocked(h)
}

// Snapshot returns a copy of the grid behind h.
func (m *Memory) Snapshot(h Handle) (Grid, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(h)
}

func (m *Memory) snapshotLocked(h Handle) (Grid, bool) {
	g, ok := m.grids[h]
	if !ok {
		return Grid{}, false
	}
	slots := make([]*menu.Payload, len(g.slots))
	for i, p := range g.slots {
		if p != nil {
			dup := p.Clone()
			slots[i] = &dup
		}
	}
	return Grid{Handle: h, Title: g.title, Slots: slots}, true
}

// IsOpen reports whether viewer currently has a grid shown.
func (m *Memory) IsOpen(viewer string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.viewers[viewer]
	return ok
}

// Version increases on every mutation; renderers use it to skip redraws.
func (m *Memory) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}
