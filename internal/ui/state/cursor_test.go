package state

import "testing"

func TestSlotCursorMoveWrapsColumns(t *testing.T) {
	c := SlotCursor{Size: 27}
	if !c.Move(-1, 0) || c.Slot != 8 {
		t.Fatalf("expected wrap to slot 8, got %d", c.Slot)
	}
	if !c.Move(1, 0) || c.Slot != 0 {
		t.Fatalf("expected wrap back to slot 0, got %d", c.Slot)
	}
}

func TestSlotCursorMoveStopsAtRows(t *testing.T) {
	c := SlotCursor{Size: 27, Slot: 4}
	if c.Move(0, -1) {
		t.Fatal("expected no move above first row")
	}
	c.Move(0, 5)
	if c.Slot != 22 || c.Row() != 2 || c.Col() != 4 {
		t.Fatalf("expected slot 22, got %d", c.Slot)
	}
}

func TestSlotCursorHomeEndAndSet(t *testing.T) {
	c := SlotCursor{Size: 18, Slot: 5}
	if !c.MoveEnd() || c.Slot != 17 {
		t.Fatalf("expected slot 17, got %d", c.Slot)
	}
	if !c.MoveHome() || c.Slot != 0 {
		t.Fatalf("expected slot 0, got %d", c.Slot)
	}
	if c.Set(18) || c.Set(-1) {
		t.Fatal("expected out of range slots rejected")
	}
	if !c.Set(9) || c.Slot != 9 {
		t.Fatalf("expected slot 9, got %d", c.Slot)
	}
}

func TestSlotCursorResizeClamps(t *testing.T) {
	c := SlotCursor{Size: 54, Slot: 50}
	c.Resize(9)
	if c.Slot != 8 {
		t.Fatalf("expected slot clamped to 8, got %d", c.Slot)
	}
	c.Resize(0)
	if c.Slot != 0 || c.Move(1, 0) {
		t.Fatal("expected empty cursor to stay at 0")
	}
}
