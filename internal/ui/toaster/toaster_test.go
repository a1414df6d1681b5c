package toaster

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vitrine/internal/palette"
	"github.com/zjrosen/vitrine/internal/ui/styles"
)

func TestShow_ThenDismiss(t *testing.T) {
	var m Model
	require.False(t, m.Visible())
	require.Empty(t, m.View(styles.Build(palette.Palette{}, false)))

	m, cmd := m.Show("Palette updated", Success, time.Millisecond)
	require.True(t, m.Visible())
	require.NotNil(t, cmd)

	m = m.Update(cmd())
	require.False(t, m.Visible())
}

func TestDismiss_StaleTickIgnored(t *testing.T) {
	var m Model
	m, first := m.Show("first", Info, time.Millisecond)
	m, _ = m.Show("second", Warn, time.Hour)

	m = m.Update(first())
	require.Equal(t, "second", m.Message())
}

func TestOverlay(t *testing.T) {
	s := styles.Build(palette.Palette{}, true)
	bg := "..........\n..........\n..........\n..........\n.........."

	var m Model
	require.Equal(t, bg, m.Overlay(s, bg, 10, 5))

	m, _ = m.Show("hi", Error, time.Second)
	out := ansi.Strip(m.Overlay(s, bg, 10, 5))
	require.Contains(t, out, "│ hi │")
}
