// Package app contains the playground's root model. The playground is a
// browser context: it owns the document, viewport and OS scheme the theme
// and layout stores react to.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/vitrine/internal/keys"
	"github.com/zjrosen/vitrine/internal/layout"
	"github.com/zjrosen/vitrine/internal/log"
	"github.com/zjrosen/vitrine/internal/palette"
	"github.com/zjrosen/vitrine/internal/platform"
	"github.com/zjrosen/vitrine/internal/profile"
	"github.com/zjrosen/vitrine/internal/pubsub"
	"github.com/zjrosen/vitrine/internal/theme"
	"github.com/zjrosen/vitrine/internal/ui/styles"
	"github.com/zjrosen/vitrine/internal/ui/toaster"
)

const (
	noticeDuration = 3 * time.Second
	maxLogLines    = 8
)

// DefaultColors is the base color cycle used when Services.Colors is empty.
var DefaultColors = []string{palette.DefaultBaseColor, "#3366cc", "#2e8b57", "#c2185b", "#6a4c93"}

// Services are the stores and host pieces the playground drives. The caller
// owns them and closes them after the program exits.
type Services struct {
	Themes   *theme.Store
	Palette  *palette.Store
	Layout   *layout.Store
	Document *platform.Document
	Viewport *platform.ResizableViewport

	// Feeder is nil when no profile source is configured.
	Feeder *profile.Feeder
	// Scheme is nil when the OS scheme is not under playground control.
	Scheme *platform.ManualScheme
	// Colors is cycled by the next-color key.
	Colors []string
}

// Model is the root application state.
type Model struct {
	services Services
	keys     keys.KeyMap
	help     help.Model

	width  int
	height int

	showHelp      bool
	transitioning bool
	colorIdx      int

	toaster toaster.Model

	debugMode bool
	logLines  []string

	ctx      context.Context
	cancel   context.CancelFunc
	themeL   *pubsub.ContinuousListener[theme.Config]
	paletteL *pubsub.ContinuousListener[palette.Palette]
	configL  *pubsub.ContinuousListener[layout.Layout]
	overlayL *pubsub.ContinuousListener[layout.Layout]
	resetL   *pubsub.ContinuousListener[layout.Layout]
	resultL  *pubsub.ContinuousListener[profile.Result]
	logL     *log.LogListener
}

// transitionDoneMsg arrives once a mode change has settled.
type transitionDoneMsg struct{}

// New creates the root model. debugMode shows recent log entries.
func New(services Services, debugMode bool) Model {
	if len(services.Colors) == 0 {
		services.Colors = DefaultColors
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		services:  services,
		keys:      keys.DefaultKeyMap(),
		help:      help.New(),
		debugMode: debugMode,
		ctx:       ctx,
		cancel:    cancel,
		themeL:    pubsub.NewContinuousListener[theme.Config](ctx, services.Themes),
		paletteL:  pubsub.NewContinuousListener[palette.Palette](ctx, services.Palette),
		configL:   pubsub.NewContinuousListener(ctx, services.Layout.ConfigUpdates()),
		overlayL:  pubsub.NewContinuousListener(ctx, services.Layout.OverlayOpen()),
		resetL:    pubsub.NewContinuousListener(ctx, services.Layout.Resets()),
	}
	if services.Feeder != nil {
		m.resultL = pubsub.NewContinuousListener(ctx, services.Feeder.Results())
	}
	if debugMode {
		m.logL = log.NewListener(ctx)
	}
	if vp := services.Viewport; vp != nil {
		m.width = vp.Width()
	}
	m.restyle()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.themeL.Listen(),
		m.paletteL.Listen(),
		m.configL.Listen(),
		m.overlayL.Listen(),
		m.resetL.Listen(),
	}
	if m.resultL != nil {
		feeder, ctx := m.services.Feeder, m.ctx
		cmds = append(cmds, m.resultL.Listen(), func() tea.Msg {
			feeder.Refresh(ctx)
			return nil
		})
	}
	if m.logL != nil {
		cmds = append(cmds, m.logL.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.services.Viewport != nil {
			m.services.Viewport.SetWidth(msg.Width)
		}
		return m, nil

	case pubsub.Event[theme.Config]:
		m.restyle()
		return m, m.themeL.Listen()

	case pubsub.Event[palette.Palette]:
		m.restyle()
		return m, m.paletteL.Listen()

	case pubsub.Event[layout.Layout]:
		return m.handleLayoutEvent(msg)

	case pubsub.Event[profile.Result]:
		return m.handleProfileResult(msg.Payload)

	case log.LogEvent:
		m.logLines = append(m.logLines, msg.Payload)
		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}
		if m.logL == nil {
			return m, nil
		}
		return m, m.logL.Listen()

	case transitionDoneMsg:
		m.transitioning = false
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleLayoutEvent(e pubsub.Event[layout.Layout]) (tea.Model, tea.Cmd) {
	switch e.Type {
	case pubsub.OverlayOpen:
		log.Debug(log.CatUI, "Menu opened over content", "menuMode", e.Payload.MenuMode)
		return m, m.overlayL.Listen()
	case pubsub.Reset:
		return m.notify("Layout reset", toaster.Info, m.resetL.Listen())
	default:
		return m, m.configL.Listen()
	}
}

func (m Model) handleProfileResult(r profile.Result) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if m.resultL != nil {
		next = m.resultL.Listen()
	}
	switch {
	case r.Err != nil:
		return m.notify("Profile unavailable, keeping current palette", toaster.Warn, next)
	case !r.Applied:
		return m.notify(fmt.Sprintf("Profile color %q rejected", r.Profile.BaseColor), toaster.Warn, next)
	default:
		label := r.Profile.Name
		if label == "" {
			label = "Profile"
		}
		return m.notify(fmt.Sprintf("%s palette applied: %s", label, r.Profile.BaseColor), toaster.Success, next)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.services
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.CloseLayer):
		if m.showHelp {
			m.showHelp = false
			m.help.ShowAll = false
			return m, nil
		}
		s.Layout.HideConfigSidebar()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		return m.awaitTransition(s.Layout.ToggleDarkMode())

	case key.Matches(msg, m.keys.Dark):
		return m.awaitTransition(s.Themes.SetMode(theme.ModeDark))

	case key.Matches(msg, m.keys.Light):
		return m.awaitTransition(s.Themes.SetMode(theme.ModeLight))

	case key.Matches(msg, m.keys.Clear):
		s.Themes.ClearPreference()
		return m.notify("Following the OS color scheme", toaster.Info, nil)

	case key.Matches(msg, m.keys.FlipOS):
		if s.Scheme == nil {
			return m.notify("OS scheme is not simulated in this session", toaster.Warn, nil)
		}
		s.Scheme.Flip()
		return m, nil

	case key.Matches(msg, m.keys.NextColor):
		m.colorIdx = (m.colorIdx + 1) % len(s.Colors)
		if !s.Palette.SetBaseColor(s.Colors[m.colorIdx]) {
			return m.notify(fmt.Sprintf("Invalid base color %q", s.Colors[m.colorIdx]), toaster.Error, nil)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refetch):
		if s.Feeder == nil {
			return m.notify("No profile source configured", toaster.Warn, nil)
		}
		s.Feeder.Refresh(m.ctx)
		return m, nil

	case key.Matches(msg, m.keys.Menu):
		s.Layout.OnMenuToggle()
		return m, nil

	case key.Matches(msg, m.keys.Sidebar):
		if s.Layout.Snapshot().ConfigSidebarVisible {
			s.Layout.HideConfigSidebar()
		} else {
			s.Layout.ShowConfigSidebar()
		}
		return m, nil

	case key.Matches(msg, m.keys.MenuMode):
		next := layout.MenuOverlay
		if s.Layout.IsOverlay() {
			next = layout.MenuStatic
		}
		s.Layout.SetMenuMode(next)
		s.Themes.SetMenuMode(next)
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		s.Layout.Reset()
		return m, nil
	}
	return m, nil
}

func (m Model) awaitTransition(done <-chan struct{}) (tea.Model, tea.Cmd) {
	m.transitioning = true
	return m, func() tea.Msg {
		<-done
		return transitionDoneMsg{}
	}
}

func (m Model) notify(message string, kind toaster.Kind, next tea.Cmd) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, kind, noticeDuration)
	return m, tea.Batch(cmd, next)
}

func (m Model) restyle() {
	styles.Apply(m.services.Palette.Snapshot(), m.services.Themes.IsDark())
}

// Close stops every listener. The services stay open.
func (m *Model) Close() error {
	m.cancel()
	return nil
}
