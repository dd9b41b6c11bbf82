package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/tmux-popup-grid/internal/display"
	"github.com/atomicstack/tmux-popup-grid/internal/format/table"
	"github.com/atomicstack/tmux-popup-grid/internal/grid"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

const (
	defaultCellWidth = 12
	minCellWidth     = 4
	gridTop          = 1 // rows above the grid: the title line
	footerHints      = "hjkl move  enter/r/m click  L/R shift-click  d drop  / search  pgup/pgdn page  esc back"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text is already styled; truncate ANSI-aware and skip wrapping
}

func (m *Model) cellWidth() int {
	if m.width <= 0 {
		return defaultCellWidth
	}
	w := m.width / grid.Columns
	if w < minCellWidth {
		return minCellWidth
	}
	return w
}

// slotAt maps a terminal position onto a grid slot.
func (m *Model) slotAt(x, y int) (int, bool) {
	g, ok := m.display.Shown(m.viewer)
	if !ok || x < 0 {
		return 0, false
	}
	row := y - gridTop
	col := x / m.cellWidth()
	if row < 0 || col >= grid.Columns {
		return 0, false
	}
	slot := row*grid.Columns + col
	if slot >= len(g.Slots) {
		return 0, false
	}
	return slot, true
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	g, ok := m.display.Shown(m.viewer)
	if !ok {
		return styles.Info.Render("(no menu open)")
	}
	m.cursor.Resize(len(g.Slots))

	lines := make([]styledLine, 0, 24)
	lines = append(lines, styledLine{text: m.header(g), style: styles.Title})
	for row := 0; row*grid.Columns < len(g.Slots); row++ {
		lines = append(lines, styledLine{text: m.renderRow(g, row), raw: true})
	}

	if detail := m.detailLines(g.Payload(m.cursor.Slot)); len(detail) > 0 {
		lines = append(lines, styledLine{})
		lines = append(lines, detail...)
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHints, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)

	var status styledLine
	switch {
	case m.errMsg != "":
		status = styledLine{text: "Error: " + m.errMsg, style: styles.Error}
	case m.backendIssue() != "":
		status = styledLine{text: "tmux: " + m.backendIssue(), style: styles.Error}
	}
	lines = append(lines, status, styledLine{text: m.promptLine(), raw: true})
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) header(g display.Grid) string {
	title := menu.StripColor(g.Title)
	if s, ok := m.Session(); ok && s.Keyword() != "" && !m.prompt.Active {
		title += fmt.Sprintf("  [%s]", s.Keyword())
	}
	return title
}

func (m *Model) renderRow(g display.Grid, row int) string {
	w := m.cellWidth()
	var b strings.Builder
	for col := 0; col < grid.Columns; col++ {
		slot := row*grid.Columns + col
		p := g.Payload(slot)
		text := "·"
		if p != nil {
			text = p.Name
			if p.Amount > 1 {
				text += " x" + strconv.Itoa(p.Amount)
			}
		}
		style := styles.CellStyle(p, slot == m.cursor.Slot)
		inner := w - style.GetHorizontalPadding()
		if inner < 1 {
			inner = 1
		}
		text = ansi.Truncate(menu.StripColor(text), inner, "…")
		b.WriteString(style.Width(w).MaxWidth(w).Render(text))
	}
	return b.String()
}

func (m *Model) detailLines(p *menu.Payload) []styledLine {
	if p == nil {
		return nil
	}
	rows := [][]string{{"name", menu.StripColor(p.Name)}}
	if p.Icon != "" {
		rows = append(rows, []string{"icon", p.Icon})
	}
	if p.Amount > 1 {
		rows = append(rows, []string{"amount", strconv.Itoa(p.Amount)})
	}
	for i, lore := range p.Lore {
		label := ""
		if i == 0 {
			label = "info"
		}
		rows = append(rows, []string{label, menu.StripColor(lore)})
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft})
	out := make([]styledLine, 0, len(formatted))
	for i, line := range formatted {
		style := styles.DetailBody
		if i == 0 {
			style = styles.DetailTitle
		}
		out = append(out, styledLine{text: line, style: style})
	}
	return out
}

func (m *Model) promptLine() string {
	prompt := "/ "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if !m.prompt.Active {
		if s, ok := m.Session(); ok && s.Keyword() != "" {
			return prompt + styles.Filter.Render(s.Keyword())
		}
		return prompt + styles.FilterPlaceholder.Render("(press / to search)")
	}
	runes := []rune(m.prompt.Text)
	pos := m.prompt.CursorPos()
	before := styles.Filter.Render(string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = styles.Filter.Render(string(runes[pos+1:]))
	}
	return prompt + before + m.renderPromptCursor(caretRune) + after
}

func (m *Model) renderPromptCursor(char string) string {
	m.promptCursor.SetChar(char)
	base := m.promptCursor.TextStyle.Copy().Inline(true)
	if m.promptCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}

func (m *Model) updatePromptCursor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.promptCursor, cmd = m.promptCursor.Update(msg)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = ansi.Truncate(line.text, width, "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if !line.raw && line.style != nil && line.text != "" {
			out[i] = line.style.Render(line.text)
			continue
		}
		out[i] = line.text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
