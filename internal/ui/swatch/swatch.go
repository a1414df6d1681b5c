// Package swatch renders a palette as colored terminal blocks.
package swatch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/vitrine/internal/color"
	"github.com/zjrosen/vitrine/internal/palette"
)

// MinWidth is the narrowest row Render produces.
const MinWidth = 4

// Render draws one row per shade, lightest first. Each row is filled with the
// shade and labeled "<key> <hex>" in whichever of black or white reads better.
func Render(p palette.Palette, width int) string {
	width = max(width, MinWidth)

	rows := make([]string, 0, len(color.ShadeKeys))
	for _, key := range color.ShadeKeys {
		hex, ok := p.Shades[key]
		if !ok {
			continue
		}
		rows = append(rows, row(fmt.Sprintf(" %d %s", key, hex), hex, width))
	}
	return strings.Join(rows, "\n")
}

// Bar draws the ramp as a single strip of equal cells. Cells that do not fit
// the width are dropped from the dark end.
func Bar(p palette.Palette, width int) string {
	if len(p.Shades) == 0 || width <= 0 {
		return ""
	}
	cell := max(width/len(color.ShadeKeys), 1)

	var b strings.Builder
	used := 0
	for _, key := range color.ShadeKeys {
		hex, ok := p.Shades[key]
		if !ok {
			continue
		}
		if used+cell > width {
			break
		}
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", cell)))
		used += cell
	}
	return b.String()
}

// Gradient labels the gradient endpoints the way GradientCSS lays them out.
func Gradient(p palette.Palette, width int) string {
	if p.GradientStart == "" {
		return ""
	}
	half := max(width/2, MinWidth)
	return row(" "+p.GradientStart, p.GradientStart, half) + row(" "+p.GradientEnd, p.GradientEnd, half)
}

func row(label, hex string, width int) string {
	label = ansi.Truncate(label, width, "…")
	return lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(color.Contrast(hex))).
		Render(label)
}
