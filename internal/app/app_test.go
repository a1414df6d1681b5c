package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vitrine/internal/layout"
	"github.com/zjrosen/vitrine/internal/log"
	"github.com/zjrosen/vitrine/internal/palette"
	"github.com/zjrosen/vitrine/internal/platform"
	"github.com/zjrosen/vitrine/internal/profile"
	"github.com/zjrosen/vitrine/internal/pubsub"
	"github.com/zjrosen/vitrine/internal/theme"
)

func newServices(t *testing.T, width int) Services {
	t.Helper()
	doc := platform.NewDocument()
	scheme := platform.NewManualScheme(false)
	vp := platform.NewResizableViewport(width)
	adapter := platform.New(platform.Host{
		Storage:  platform.NewMemoryStorage(),
		Document: doc,
		Scheme:   scheme,
		Viewport: vp,
	}, platform.Always)

	themes := theme.NewStore(adapter)
	pal := palette.NewStore(adapter, "")
	lay := layout.NewStore(adapter, themes)
	t.Cleanup(func() {
		lay.Close()
		pal.Close()
		themes.Close()
	})
	return Services{
		Themes:   themes,
		Palette:  pal,
		Layout:   lay,
		Document: doc,
		Viewport: vp,
		Scheme:   scheme,
	}
}

func newModel(t *testing.T, s Services) Model {
	t.Helper()
	m := New(s, false)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func press(m Model, k string) (Model, tea.Cmd) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	if k == "esc" {
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestToggle_SwitchesModeAndClasses(t *testing.T) {
	s := newServices(t, 1200)
	m := newModel(t, s)

	m, cmd := press(m, "t")
	require.Equal(t, theme.ModeDark, s.Themes.Mode())
	require.True(t, s.Document.HasClass(platform.TargetRoot, theme.DarkClass))
	require.True(t, s.Document.HasClass(platform.TargetBody, theme.AppDarkClass))
	require.True(t, s.Layout.Snapshot().DarkTheme, "layout mirrors the theme")
	require.True(t, s.Themes.HasPreference())
	require.True(t, m.transitioning)

	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	require.False(t, next.(Model).transitioning)
}

func TestDarkLightAndClear(t *testing.T) {
	s := newServices(t, 1200)
	m := newModel(t, s)

	m, _ = press(m, "d")
	require.Equal(t, theme.ModeDark, s.Themes.Mode())
	m, _ = press(m, "l")
	require.Equal(t, theme.ModeLight, s.Themes.Mode())
	require.True(t, s.Themes.HasPreference())

	m, _ = press(m, "u")
	require.False(t, s.Themes.HasPreference())
	require.Contains(t, m.toaster.Message(), "OS color scheme")
}

func TestFlipOS_FollowedUntilExplicitChoice(t *testing.T) {
	s := newServices(t, 1200)
	m := newModel(t, s)

	m, _ = press(m, "o")
	require.Equal(t, theme.ModeDark, s.Themes.Mode(), "no preference, so the OS wins")

	m, _ = press(m, "l")
	m, _ = press(m, "o")
	_, _ = press(m, "o")
	require.True(t, s.Scheme.Matches())
	require.Equal(t, theme.ModeLight, s.Themes.Mode(), "explicit choice is kept")
}

func TestFlipOS_WithoutSimulatedScheme(t *testing.T) {
	s := newServices(t, 1200)
	s.Scheme = nil
	m := newModel(t, s)

	m, _ = press(m, "o")
	require.Contains(t, m.toaster.Message(), "not simulated")
}

func TestNextColor_CyclesPalette(t *testing.T) {
	s := newServices(t, 1200)
	m := newModel(t, s)

	_, _ = press(m, "c")
	require.Equal(t, DefaultColors[1], s.Palette.BaseColor())
	got, ok := s.Document.StyleProperty(palette.BaseColorVar)
	require.True(t, ok)
	require.Equal(t, DefaultColors[1], got)
}

func TestNextColor_InvalidEntry(t *testing.T) {
	s := newServices(t, 1200)
	s.Colors = []string{palette.DefaultBaseColor, "nope"}
	m := newModel(t, s)

	m, _ = press(m, "c")
	require.Equal(t, palette.DefaultBaseColor, s.Palette.BaseColor())
	require.Contains(t, m.toaster.Message(), "Invalid base color")
}

func TestWindowSize_DrivesMenuToggle(t *testing.T) {
	s := newServices(t, 0)
	m := newModel(t, s)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 1200, Height: 40})
	m = next.(Model)
	require.Equal(t, 1200, s.Viewport.Width())
	m, _ = press(m, "m")
	require.True(t, s.Layout.Snapshot().StaticMenuDesktopInactive)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 500, Height: 40})
	m = next.(Model)
	_, _ = press(m, "m")
	lay := s.Layout.Snapshot()
	require.True(t, lay.StaticMenuMobileActive)
	require.True(t, lay.StaticMenuDesktopInactive, "desktop flag untouched on mobile")
}

func TestMenuMode_SwitchesToOverlay(t *testing.T) {
	s := newServices(t, 1200)
	m := newModel(t, s)

	m, _ = press(m, "M")
	require.True(t, s.Layout.IsOverlay())
	require.Equal(t, layout.MenuOverlay, s.Themes.Snapshot().MenuMode)

	m, _ = press(m, "m")
	require.True(t, s.Layout.Snapshot().OverlayMenuActive)

	_, _ = press(m, "M")
	require.False(t, s.Layout.IsOverlay())
}

func TestSidebar_ToggleAndEscape(t *testing.T) {
	s := newServices(t, 1200)
	m := newModel(t, s)

	m, _ = press(m, "s")
	require.True(t, s.Layout.Snapshot().ConfigSidebarVisible)
	require.Contains(t, ansi.Strip(m.View()), "Configurator")

	m, _ = press(m, "esc")
	require.False(t, s.Layout.Snapshot().ConfigSidebarVisible)

	m, _ = press(m, "s")
	_, _ = press(m, "s")
	require.False(t, s.Layout.Snapshot().ConfigSidebarVisible)
}

func TestReset_ClearsFlagsAndNotifies(t *testing.T) {
	s := newServices(t, 500)
	m := newModel(t, s)

	m, _ = press(m, "m")
	m, _ = press(m, "s")
	_, _ = press(m, "x")
	require.Equal(t, layout.State{}, s.Layout.Snapshot().State)

	next, cmd := m.Update(pubsub.Event[layout.Layout]{Type: pubsub.Reset})
	require.NotNil(t, cmd)
	require.Equal(t, "Layout reset", next.(Model).toaster.Message())
}

func TestHelp_ToggleAndEscape(t *testing.T) {
	s := newServices(t, 1200)
	m := newModel(t, s)

	m, _ = press(m, "?")
	require.True(t, m.showHelp)
	require.Contains(t, ansi.Strip(m.View()), "refetch profile")

	m, _ = press(m, "esc")
	require.False(t, m.showHelp)
}

func TestRefetch_WithoutFeeder(t *testing.T) {
	m := newModel(t, newServices(t, 1200))
	m, _ = press(m, "p")
	require.Contains(t, m.toaster.Message(), "No profile source")
}

func TestRefetch_AppliesProfile(t *testing.T) {
	s := newServices(t, 1200)
	s.Feeder = profile.NewFeeder(profile.StaticSource{Name: "Roastery", BaseColor: "#2e8b57"}, s.Palette, 0)
	t.Cleanup(s.Feeder.Close)
	m := newModel(t, s)

	m, _ = press(m, "p")
	s.Feeder.Wait()
	require.Equal(t, "#2e8b57", s.Palette.BaseColor())

	next, _ := m.Update(pubsub.Event[profile.Result]{Payload: profile.Result{
		Profile: profile.Profile{Name: "Roastery", BaseColor: "#2e8b57"},
		Applied: true,
	}})
	require.Equal(t, "Roastery palette applied: #2e8b57", next.(Model).toaster.Message())
}

func TestProfileResult_Failures(t *testing.T) {
	m := newModel(t, newServices(t, 1200))

	next, _ := m.Update(pubsub.Event[profile.Result]{Payload: profile.Result{Err: profile.ErrNoBaseColor}})
	require.Contains(t, next.(Model).toaster.Message(), "keeping current palette")

	next, _ = m.Update(pubsub.Event[profile.Result]{Payload: profile.Result{Profile: profile.Profile{BaseColor: "bad"}}})
	require.Contains(t, next.(Model).toaster.Message(), "rejected")
}

func TestDebugLog_KeepsRecentLines(t *testing.T) {
	m := New(newServices(t, 1200), true)
	t.Cleanup(func() { _ = m.Close() })

	for i := 0; i < maxLogLines+3; i++ {
		next, _ := m.Update(log.LogEvent{Payload: "entry\n"})
		m = next.(Model)
	}
	require.Len(t, m.logLines, maxLogLines)
	require.Contains(t, ansi.Strip(m.View()), "Log")
}

func TestView_ShowsState(t *testing.T) {
	s := newServices(t, 1200)
	m := newModel(t, s)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	out := ansi.Strip(m.View())
	require.Contains(t, out, "vitrine")
	require.Contains(t, out, "follows OS")
	require.Contains(t, out, "500 #976735")

	_, _ = press(m, "d")
	out = ansi.Strip(m.View())
	require.Contains(t, out, "app-dark")
	require.Contains(t, out, "explicit")
	require.LessOrEqual(t, len(strings.Split(out, "\n")), 30)
}

func TestQuit(t *testing.T) {
	m := newModel(t, newServices(t, 1200))
	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}
