package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

const bg = "AAAAAA\nAAAAAA\nAAAAAA\nAAAAAA"

func TestPlace_Anchors(t *testing.T) {
	tests := []struct {
		name   string
		anchor Anchor
		want   []string
	}{
		{"center", Center, []string{"AAAAAA", "AAXXAA", "AAXXAA", "AAAAAA"}},
		{"left", Left, []string{"XXAAAA", "XXAAAA", "AAAAAA", "AAAAAA"}},
		{"right", Right, []string{"AAAAXX", "AAAAXX", "AAAAAA", "AAAAAA"}},
		{"bottom", Bottom, []string{"AAAAAA", "AAXXAA", "AAXXAA", "AAAAAA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.anchor, "XX\nXX", bg, 6, 4)
			require.Equal(t, tt.want, strings.Split(got, "\n"))
		})
	}
}

func TestPlace_BottomSingleLine(t *testing.T) {
	got := strings.Split(Place(Bottom, "XX", bg, 6, 4), "\n")
	require.Equal(t, "AAXXAA", got[2])
	require.Equal(t, "AAAAAA", got[3])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	got := strings.Split(Place(Center, "X", "AAA", 3, 3), "\n")
	require.Len(t, got, 3)
	require.Equal(t, " X ", got[1])
}

func TestPlace_OversizedForegroundClampsToOrigin(t *testing.T) {
	got := strings.Split(Place(Right, "XXXXXXXX", bg, 6, 4), "\n")
	require.Equal(t, "XXXXXXXX", got[0])
}

func TestPlace_PreservesStyledBackground(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("AAAAAA")
	got := Place(Center, "X", styled, 6, 1)
	require.Equal(t, "AAXAAA", ansi.Strip(got))
}
