// Package overlay composites a foreground block onto a rendered background
// without disturbing the background's styling outside the block.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor picks where the block lands.
type Anchor int

const (
	Center Anchor = iota
	Left          // overlay menu, full height from the top
	Right         // config sidebar, full height from the top
	Bottom        // notices, centered one row above the bottom edge
)

// Place draws fg over bg inside a width x height frame. The background is
// padded to the frame height first; lines of fg that fall outside it are
// dropped.
func Place(anchor Anchor, fg, bg string, width, height int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}
	fgLines := strings.Split(fg, "\n")

	x, y := origin(anchor, lipgloss.Width(fg), len(fgLines), width, height)
	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func origin(anchor Anchor, fgWidth, fgHeight, width, height int) (x, y int) {
	switch anchor {
	case Left:
		x, y = 0, 0
	case Right:
		x, y = width-fgWidth, 0
	case Bottom:
		x, y = (width-fgWidth)/2, height-fgHeight-1
	default:
		x, y = (width-fgWidth)/2, (height-fgHeight)/2
	}
	return max(x, 0), max(y, 0)
}
