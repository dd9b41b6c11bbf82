package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading           *lipgloss.Style
	Cell              *lipgloss.Style
	EmptyCell         *lipgloss.Style
	SelectedCell      *lipgloss.Style
	Title             *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
	DetailTitle       *lipgloss.Style
	DetailBody        *lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Cell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Padding(0, 1),
	),
	EmptyCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Padding(0, 1),
	),
	SelectedCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true).Padding(0, 1),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	DetailTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	DetailBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

// palette maps dye colours onto the xterm 256 colour cube.
var palette = map[menu.Color]lipgloss.Color{
	menu.ColorWhite:     lipgloss.Color("255"),
	menu.ColorOrange:    lipgloss.Color("208"),
	menu.ColorMagenta:   lipgloss.Color("170"),
	menu.ColorLightBlue: lipgloss.Color("117"),
	menu.ColorYellow:    lipgloss.Color("220"),
	menu.ColorLime:      lipgloss.Color("118"),
	menu.ColorPink:      lipgloss.Color("218"),
	menu.ColorGray:      lipgloss.Color("242"),
	menu.ColorLightGray: lipgloss.Color("250"),
	menu.ColorCyan:      lipgloss.Color("37"),
	menu.ColorPurple:    lipgloss.Color("93"),
	menu.ColorBlue:      lipgloss.Color("27"),
	menu.ColorBrown:     lipgloss.Color("94"),
	menu.ColorGreen:     lipgloss.Color("28"),
	menu.ColorRed:       lipgloss.Color("160"),
	menu.ColorBlack:     lipgloss.Color("236"),
}

// ColorFor returns the terminal colour for c. ColorNone and unknown colours
// report false.
func ColorFor(c menu.Color) (lipgloss.Color, bool) {
	col, ok := palette[c]
	return col, ok
}

// CellStyle returns the style for a grid cell holding p.
func (s *Styles) CellStyle(p *menu.Payload, selected bool) lipgloss.Style {
	switch {
	case selected:
		return *s.SelectedCell
	case p == nil:
		return *s.EmptyCell
	}
	style := *s.Cell
	if col, ok := ColorFor(p.Color); ok {
		style = style.Foreground(col)
	}
	return style
}

// Decorations builds border widgets drawn as solid blocks of the border
// colour.
type Decorations struct {
	Glyph string
}

// BorderWidget implements session.Decorations.
func (d Decorations) BorderWidget(color menu.Color) *menu.Widget {
	glyph := d.Glyph
	if glyph == "" {
		glyph = "▒"
	}
	return menu.NewWidget(menu.Payload{Icon: "border", Name: glyph, Color: color})
}
