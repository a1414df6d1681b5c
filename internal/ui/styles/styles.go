// Package styles holds the playground's Lip Gloss styles. Accent colors
// follow the live palette; neutrals follow the theme mode.
package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vitrine/internal/color"
	"github.com/zjrosen/vitrine/internal/palette"
)

// Neutral colors for each mode.
var (
	lightNeutrals = neutrals{Text: "#1F2328", Muted: "#6E7781", Border: "#D0D7DE", Surface: "#FFFFFF"}
	darkNeutrals  = neutrals{Text: "#E6EDF3", Muted: "#7D8590", Border: "#30363D", Surface: "#0D1117"}
)

type neutrals struct {
	Text, Muted, Border, Surface string
}

// Styles is the set of styles one frame renders with.
type Styles struct {
	Dark bool

	Accent       lipgloss.Color
	AccentStrong lipgloss.Color
	Border       lipgloss.Color

	Title   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Badge   lipgloss.Style
	Warning lipgloss.Style
}

// Build derives styles from a palette and mode. An empty palette falls back
// to the default brand color.
func Build(p palette.Palette, dark bool) Styles {
	accent := p.Shades[color.Shade500]
	if accent == "" {
		accent = palette.DefaultBaseColor
	}
	strong := p.Shades[color.Shade700]
	n := lightNeutrals
	if dark {
		// Lighter accents read better on dark surfaces.
		strong = p.Shades[color.Shade300]
		n = darkNeutrals
	}
	if strong == "" {
		strong = accent
	}

	s := Styles{
		Dark:         dark,
		Accent:       lipgloss.Color(accent),
		AccentStrong: lipgloss.Color(strong),
		Border:       lipgloss.Color(n.Border),
	}
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(s.AccentStrong)
	s.Text = lipgloss.NewStyle().Foreground(lipgloss.Color(n.Text))
	s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(n.Muted))
	s.Label = lipgloss.NewStyle().Foreground(lipgloss.Color(n.Muted)).Width(14)
	s.Value = lipgloss.NewStyle().Foreground(lipgloss.Color(n.Text)).Bold(true)
	s.Badge = lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Background(s.Accent).
		Foreground(lipgloss.Color(color.Contrast(accent)))
	s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("#D29922"))
	return s
}

var (
	currentMu sync.RWMutex
	current   = Build(palette.Palette{}, false)
)

// Apply rebuilds the shared styles.
func Apply(p palette.Palette, dark bool) Styles {
	s := Build(p, dark)
	currentMu.Lock()
	current = s
	currentMu.Unlock()
	return s
}

// Current returns the styles set by the last Apply.
func Current() Styles {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}
