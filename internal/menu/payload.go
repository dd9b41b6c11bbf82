package menu

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Color names a palette entry used for borders and widget tinting. The
// rendering backend decides what each colour looks like.
type Color string

const (
	ColorNone      Color = ""
	ColorWhite     Color = "white"
	ColorOrange    Color = "orange"
	ColorMagenta   Color = "magenta"
	ColorLightBlue Color = "light_blue"
	ColorYellow    Color = "yellow"
	ColorLime      Color = "lime"
	ColorPink      Color = "pink"
	ColorGray      Color = "gray"
	ColorLightGray Color = "light_gray"
	ColorCyan      Color = "cyan"
	ColorPurple    Color = "purple"
	ColorBlue      Color = "blue"
	ColorBrown     Color = "brown"
	ColorGreen     Color = "green"
	ColorRed       Color = "red"
	ColorBlack     Color = "black"
)

var palette = []Color{
	ColorWhite, ColorOrange, ColorMagenta, ColorLightBlue, ColorYellow, ColorLime,
	ColorPink, ColorGray, ColorLightGray, ColorCyan, ColorPurple, ColorBlue,
	ColorBrown, ColorGreen, ColorRed, ColorBlack,
}

// Palette lists every named colour.
func Palette() []Color {
	return slices.Clone(palette)
}

// ParseColor resolves a colour name, accepting dashes or spaces for
// underscores.
func ParseColor(name string) (Color, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	if normalized == "" {
		return ColorNone, nil
	}
	for _, c := range palette {
		if string(c) == normalized {
			return c, nil
		}
	}
	return ColorNone, fmt.Errorf("unknown colour %q", name)
}

// Payload is the display data of a widget. The engine never interprets it
// beyond similarity checks and name filtering.
type Payload struct {
	Name   string
	Icon   string
	Lore   []string
	Color  Color
	Amount int
}

// Similar reports whether two payloads describe the same displayed item.
// Amount is ignored.
func (p Payload) Similar(other Payload) bool {
	return p.Icon == other.Icon &&
		p.Name == other.Name &&
		p.Color == other.Color &&
		slices.Equal(p.Lore, other.Lore)
}

// PlainName returns the name with colour codes stripped.
func (p Payload) PlainName() string {
	return StripColor(p.Name)
}

// Clone returns a copy that shares no slices with p.
func (p Payload) Clone() Payload {
	p.Lore = slices.Clone(p.Lore)
	return p
}

var legacyColorCode = regexp.MustCompile(`(?i)§[0-9a-fk-or]`)

// StripColor removes ANSI escape sequences and legacy section-sign colour
// codes from s.
func StripColor(s string) string {
	return legacyColorCode.ReplaceAllString(ansi.Strip(s), "")
}
