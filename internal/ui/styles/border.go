package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Panel draws content inside a rounded border with the title set into the
// top edge: ╭─ Title ─────╮. Focused panels use the accent for their border.
// Content is clipped to width-2 columns; height is the number of content
// lines, or the content's own height when zero.
func (s Styles) Panel(title, content string, width, height int, focused bool) string {
	inner := max(width-2, 1)

	border := lipgloss.NewStyle().Foreground(s.Border)
	if focused {
		border = border.Foreground(s.Accent)
	}

	lines := strings.Split(content, "\n")
	if height <= 0 {
		height = len(lines)
	}

	var b strings.Builder
	b.WriteString(topEdge(title, inner, border, s.Title))
	for i := range height {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], inner, "")
		}
		if pad := inner - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		b.WriteString("\n")
		b.WriteString(border.Render(borderVertical) + line + border.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(border.Render(borderBottomLeft + strings.Repeat(borderHorizontal, inner) + borderBottomRight))
	return b.String()
}

func topEdge(title string, inner int, border, titleStyle lipgloss.Style) string {
	// "─ " + title + " " needs at least four columns around a one-column title.
	if title == "" || inner < 5 {
		return border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	}
	title = ansi.Truncate(title, inner-4, "…")
	rest := inner - 3 - lipgloss.Width(title)
	return border.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(title) +
		border.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}
