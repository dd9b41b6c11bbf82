package state

import (
	"strings"
	"unicode"
)

// Prompt holds the search text being edited and the caret position within it.
// Edits only change the text; the keyword is applied to the grid when the
// prompt is submitted.
type Prompt struct {
	Active bool
	Text   string
	Cursor int
}

// Open focuses the prompt with text preloaded and the caret at its end.
func (p *Prompt) Open(text string) {
	p.Active = true
	p.Set(text, len([]rune(text)))
}

// Close blurs the prompt and returns the text that was entered.
func (p *Prompt) Close() string {
	p.Active = false
	return strings.TrimSpace(p.Text)
}

// Set replaces the prompt text and clamps the caret to it.
func (p *Prompt) Set(text string, cursor int) {
	p.Text = text
	n := len([]rune(text))
	if cursor < 0 {
		cursor = 0
	}
	if cursor > n {
		cursor = n
	}
	p.Cursor = cursor
}

// Clear empties the prompt. It reports whether there was anything to clear.
func (p *Prompt) Clear() bool {
	if p.Text == "" {
		return false
	}
	p.Set("", 0)
	return true
}

// CursorPos returns the rune offset of the caret.
func (p *Prompt) CursorPos() int {
	runes := []rune(p.Text)
	if p.Cursor < 0 {
		return 0
	}
	if p.Cursor > len(runes) {
		return len(runes)
	}
	return p.Cursor
}

// Insert adds text at the caret.
func (p *Prompt) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Text)
	pos := p.CursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.Set(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward deletes the rune before the caret.
func (p *Prompt) DeleteRuneBackward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	p.Set(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the caret.
func (p *Prompt) DeleteWordBackward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	p.Set(string(updated), i)
	return true
}

// MoveStart moves the caret to the start.
func (p *Prompt) MoveStart() bool {
	if p.CursorPos() == 0 {
		return false
	}
	p.Cursor = 0
	return true
}

// MoveEnd moves the caret to the end.
func (p *Prompt) MoveEnd() bool {
	end := len([]rune(p.Text))
	if p.CursorPos() == end {
		return false
	}
	p.Cursor = end
	return true
}

// MoveWordBackward moves the caret to the start of the previous word.
func (p *Prompt) MoveWordBackward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	p.Cursor = i
	return true
}

// MoveWordForward moves the caret past the next word.
func (p *Prompt) MoveWordForward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	p.Cursor = i
	return true
}

// MoveRuneBackward moves the caret one rune left.
func (p *Prompt) MoveRuneBackward() bool {
	if p.CursorPos() == 0 {
		return false
	}
	p.Cursor = p.CursorPos() - 1
	return true
}

// MoveRuneForward moves the caret one rune right.
func (p *Prompt) MoveRuneForward() bool {
	if p.CursorPos() >= len([]rune(p.Text)) {
		return false
	}
	p.Cursor = p.CursorPos() + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
