package state

import "testing"

func TestPromptOpenAndClose(t *testing.T) {
	var p Prompt
	p.Open("béta")
	if !p.Active || p.Cursor != 4 {
		t.Fatalf("expected active prompt with caret at 4, got %+v", p)
	}
	p.Insert(" ")
	if got := p.Close(); got != "béta" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
	if p.Active {
		t.Fatal("expected prompt inactive after close")
	}
}

func TestPromptInsertAndDelete(t *testing.T) {
	var p Prompt
	if !p.Insert("ab") {
		t.Fatal("expected insert to succeed")
	}
	if p.Text != "ab" || p.CursorPos() != 2 {
		t.Fatalf("unexpected prompt %+v", p)
	}
	p.MoveRuneBackward()
	p.Insert("X")
	if p.Text != "aXb" || p.CursorPos() != 2 {
		t.Fatalf("expected insert at caret, got %+v", p)
	}
	if !p.DeleteRuneBackward() || p.Text != "ab" || p.CursorPos() != 1 {
		t.Fatalf("expected backspace at caret, got %+v", p)
	}
	if p.Insert("") {
		t.Fatal("expected empty insert to be rejected")
	}
	p.MoveStart()
	if p.DeleteRuneBackward() {
		t.Fatal("expected no delete at start")
	}
}

func TestPromptWordEditing(t *testing.T) {
	var p Prompt
	p.Open("foo bar  baz")
	if !p.DeleteWordBackward() || p.Text != "foo bar  " {
		t.Fatalf("expected last word removed, got %q", p.Text)
	}
	if !p.MoveWordBackward() || p.CursorPos() != 4 {
		t.Fatalf("expected caret at start of bar, got %d", p.CursorPos())
	}
	if !p.MoveWordForward() || p.CursorPos() != 9 {
		t.Fatalf("expected caret after bar and spaces, got %d", p.CursorPos())
	}
	if p.MoveWordForward() {
		t.Fatal("expected no move at end")
	}
	p.MoveStart()
	if p.MoveWordBackward() || p.MoveStart() {
		t.Fatal("expected no move at start")
	}
	if !p.MoveEnd() || p.MoveEnd() {
		t.Fatal("expected a single move to end")
	}
}

func TestPromptClampsCursor(t *testing.T) {
	p := Prompt{Text: "abc", Cursor: 10}
	if p.CursorPos() != 3 {
		t.Fatalf("expected clamped caret, got %d", p.CursorPos())
	}
	p.Set("xy", -4)
	if p.Cursor != 0 {
		t.Fatalf("expected caret clamped to 0, got %d", p.Cursor)
	}
	if !p.Clear() || p.Clear() {
		t.Fatal("expected a single successful clear")
	}
}
