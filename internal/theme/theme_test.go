package theme

import (
	"testing"

	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

func TestPaletteCoversEveryColour(t *testing.T) {
	for _, c := range menu.Palette() {
		if _, ok := ColorFor(c); !ok {
			t.Fatalf("expected terminal colour for %s", c)
		}
	}
	if _, ok := ColorFor(menu.ColorNone); ok {
		t.Fatal("expected no colour for ColorNone")
	}
}

func TestDecorationsBorderWidget(t *testing.T) {
	w := Decorations{}.BorderWidget(menu.ColorRed)
	if w.Payload.Color != menu.ColorRed || w.Payload.Name != "▒" {
		t.Fatalf("unexpected border payload %+v", w.Payload)
	}
	if len(w.Bindings()) != 0 {
		t.Fatal("expected border widgets to have no bindings")
	}
	if got := (Decorations{Glyph: "#"}).BorderWidget(menu.ColorBlack).Payload.Name; got != "#" {
		t.Fatalf("expected custom glyph, got %q", got)
	}
}

func TestCellStyleUsesPayloadColour(t *testing.T) {
	styles := Default()
	red, _ := ColorFor(menu.ColorRed)
	got := styles.CellStyle(&menu.Payload{Name: "x", Color: menu.ColorRed}, false)
	if got.GetForeground() != red {
		t.Fatalf("expected red foreground, got %v", got.GetForeground())
	}
	if styles.CellStyle(nil, true).GetBackground() != styles.SelectedCell.GetBackground() {
		t.Fatal("expected selected style to win")
	}
}
