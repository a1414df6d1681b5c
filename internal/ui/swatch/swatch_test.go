package swatch

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vitrine/internal/palette"
)

func defaultPalette(t *testing.T) palette.Palette {
	t.Helper()
	s := palette.NewStore(nil, "")
	t.Cleanup(s.Close)
	return s.Snapshot()
}

func TestRender_OneRowPerShade(t *testing.T) {
	out := ansi.Strip(Render(defaultPalette(t), 24))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 10)
	require.True(t, strings.HasPrefix(lines[0], " 50 #"))
	require.Contains(t, out, " 500 #976735")
	for _, line := range lines {
		require.Equal(t, 24, lipgloss.Width(line), "rows fill the width")
	}
}

func TestRender_TruncatesLabels(t *testing.T) {
	out := ansi.Strip(Render(defaultPalette(t), 6))
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 6)
	}
	require.Contains(t, out, "…")
}

func TestRender_MinimumWidth(t *testing.T) {
	out := ansi.Strip(Render(defaultPalette(t), 0))
	for _, line := range strings.Split(out, "\n") {
		require.Equal(t, MinWidth, lipgloss.Width(line))
	}
}

func TestRender_EmptyPalette(t *testing.T) {
	require.Empty(t, Render(palette.Palette{}, 20))
	require.Empty(t, Bar(palette.Palette{}, 20))
	require.Empty(t, Gradient(palette.Palette{}, 20))
}

func TestBar_Width(t *testing.T) {
	p := defaultPalette(t)

	require.Equal(t, 30, lipgloss.Width(Bar(p, 30)))
	require.Equal(t, 30, lipgloss.Width(Bar(p, 35)), "cells are equal width")
	require.Equal(t, 5, lipgloss.Width(Bar(p, 5)), "narrow bars drop dark cells")
}

func TestGradient_ShowsEndpoints(t *testing.T) {
	p := defaultPalette(t)
	out := ansi.Strip(Gradient(p, 40))

	require.Contains(t, out, p.GradientStart)
	require.Contains(t, out, p.GradientEnd)
	require.Equal(t, 40, lipgloss.Width(out))
}
