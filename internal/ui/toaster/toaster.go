// Package toaster shows short-lived notices over the playground.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vitrine/internal/ui/overlay"
	"github.com/zjrosen/vitrine/internal/ui/styles"
)

// Kind selects the notice border color.
type Kind int

const (
	Info Kind = iota
	Success
	Warn
	Error
)

var kindColors = map[Kind]lipgloss.Color{
	Success: "#3FB950",
	Warn:    "#D29922",
	Error:   "#F85149",
}

// Model holds the current notice. The zero value shows nothing.
type Model struct {
	message string
	kind    Kind
	id      int
}

// Show replaces the current notice and returns a command that dismisses it
// after d. A later Show cancels the earlier dismissal.
func (m Model) Show(message string, kind Kind, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.kind = kind
	m.id++
	id := m.id
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{id: id} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.id == m.id {
		m.message = ""
	}
	return m
}

// Visible reports whether a notice is showing.
func (m Model) Visible() bool { return m.message != "" }

// Message returns the current notice text.
func (m Model) Message() string { return m.message }

// View renders the notice box. Info notices use the palette accent.
func (m Model) View(s styles.Styles) string {
	if !m.Visible() {
		return ""
	}
	border := s.Accent
	if c, ok := kindColors[m.kind]; ok {
		border = c
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(m.message)
}

// Overlay draws the notice near the bottom of bg.
func (m Model) Overlay(s styles.Styles, bg string, width, height int) string {
	if !m.Visible() {
		return bg
	}
	return overlay.Place(overlay.Bottom, m.View(s), bg, width, height)
}

// DismissMsg hides the notice it was scheduled for.
type DismissMsg struct{ id int }
