// Package layout tracks the transient chrome state of the storefront shell:
// menu and sidebar visibility plus the layout config that embeds the theme
// fields.
package layout

import (
	"sync"

	"github.com/zjrosen/vitrine/internal/log"
	"github.com/zjrosen/vitrine/internal/platform"
	"github.com/zjrosen/vitrine/internal/pubsub"
	"github.com/zjrosen/vitrine/internal/theme"
)

// DesktopBreakpoint is the widest viewport, in CSS pixels, still treated as
// mobile.
const DesktopBreakpoint = 991

// Menu modes.
const (
	MenuStatic  = "static"
	MenuOverlay = "overlay"
)

// Config is the layout config. DarkTheme mirrors the theme store.
type Config struct {
	Preset    string
	Primary   string
	Surface   string
	DarkTheme bool
	MenuMode  string
}

// State holds the chrome flags. None of them is persisted.
type State struct {
	OverlayMenuActive         bool
	StaticMenuDesktopInactive bool
	StaticMenuMobileActive    bool
	ConfigSidebarVisible      bool
	MenuHoverActive           bool
}

// Layout is a full snapshot: config merged with state.
type Layout struct {
	Config
	State
}

// Store owns the layout config and chrome flags.
type Store struct {
	adapter platform.Adapter
	themes  *theme.Store

	configs  *pubsub.Broker[Layout]
	overlays *pubsub.Broker[Layout]
	resets   *pubsub.Broker[Layout]

	mu     sync.Mutex
	config Config
	state  State

	unsubscribe func()
	closeOnce   sync.Once
}

// NewStore creates a layout store seeded from themes, which must not be nil.
// The dark theme flag follows themes for the store's lifetime.
func NewStore(adapter platform.Adapter, themes *theme.Store) *Store {
	if adapter == nil {
		adapter = platform.Noop()
	}
	tc := themes.Snapshot()
	s := &Store{
		adapter:  adapter,
		themes:   themes,
		configs:  pubsub.NewBroker[Layout](),
		overlays: pubsub.NewBroker[Layout](),
		resets:   pubsub.NewBroker[Layout](),
		config: Config{
			Preset:    tc.Preset,
			Primary:   tc.Primary,
			Surface:   tc.Surface,
			DarkTheme: tc.IsDark,
			MenuMode:  tc.MenuMode,
		},
	}
	s.unsubscribe = themes.SubscribeFunc(s.onThemeUpdate)
	return s
}

func (s *Store) onThemeUpdate(e pubsub.Event[theme.Config]) {
	s.mu.Lock()
	if s.config.DarkTheme == e.Payload.IsDark {
		s.mu.Unlock()
		return
	}
	s.config.DarkTheme = e.Payload.IsDark
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.configs.Publish(pubsub.ConfigUpdate, snap)
}

// OnMenuToggle flips exactly one menu flag. In overlay mode it is the overlay
// flag; on a desktop viewport the static desktop flag; otherwise the mobile
// flag. Opening the overlay or mobile menu also emits on OverlayOpen.
func (s *Store) OnMenuToggle() {
	s.mu.Lock()
	opened := false
	switch {
	case s.config.MenuMode == MenuOverlay:
		s.state.OverlayMenuActive = !s.state.OverlayMenuActive
		opened = s.state.OverlayMenuActive
	case s.isDesktop():
		s.state.StaticMenuDesktopInactive = !s.state.StaticMenuDesktopInactive
	default:
		s.state.StaticMenuMobileActive = !s.state.StaticMenuMobileActive
		opened = s.state.StaticMenuMobileActive
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	log.Debug(log.CatLayout, "Menu toggled", "menuMode", snap.MenuMode, "opened", opened)
	s.configs.Publish(pubsub.ConfigUpdate, snap)
	if opened {
		s.overlays.Publish(pubsub.OverlayOpen, snap)
	}
}

// Reset clears every chrome flag, then emits on ConfigUpdates and Resets.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = State{}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	log.Debug(log.CatLayout, "Layout reset")
	s.configs.Publish(pubsub.ConfigUpdate, snap)
	s.resets.Publish(pubsub.Reset, snap)
}

// ToggleDarkMode switches the theme mode through the theme store's
// transition. The returned channel closes once the change has settled.
func (s *Store) ToggleDarkMode() <-chan struct{} {
	return s.themes.Toggle()
}

// ShowConfigSidebar opens the configurator sidebar.
func (s *Store) ShowConfigSidebar() {
	s.mutate(func() { s.state.ConfigSidebarVisible = true })
}

// HideConfigSidebar closes the configurator sidebar.
func (s *Store) HideConfigSidebar() {
	s.mutate(func() { s.state.ConfigSidebarVisible = false })
}

// SetMenuHover records whether the pointer is over the menu.
func (s *Store) SetMenuHover(active bool) {
	s.mutate(func() { s.state.MenuHoverActive = active })
}

// SetMenuMode switches between MenuStatic and MenuOverlay.
func (s *Store) SetMenuMode(mode string) {
	s.mutate(func() { s.config.MenuMode = mode })
}

// UpdateConfig applies fn to the config. Edits to DarkTheme are discarded;
// use ToggleDarkMode.
func (s *Store) UpdateConfig(fn func(*Config)) {
	s.mutate(func() {
		dark := s.config.DarkTheme
		fn(&s.config)
		s.config.DarkTheme = dark
	})
}

func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.configs.Publish(pubsub.ConfigUpdate, snap)
}

// isDesktop is false outside a browser context.
func (s *Store) isDesktop() bool {
	return s.adapter.IsBrowser() && s.adapter.ViewportWidth() > DesktopBreakpoint
}

// IsDesktop reports whether the viewport is wider than DesktopBreakpoint.
func (s *Store) IsDesktop() bool { return s.isDesktop() }

// IsMobile is the complement of IsDesktop.
func (s *Store) IsMobile() bool { return !s.isDesktop() }

// IsOverlay reports whether the menu is in overlay mode.
func (s *Store) IsOverlay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.MenuMode == MenuOverlay
}

// IsSidebarActive reports whether a menu is drawn over the content.
func (s *Store) IsSidebarActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.OverlayMenuActive || s.state.StaticMenuMobileActive
}

// Snapshot returns the current layout.
func (s *Store) Snapshot() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Layout {
	return Layout{Config: s.config, State: s.state}
}

// ConfigUpdates carries the full layout after every mutation.
func (s *Store) ConfigUpdates() pubsub.Subscriber[Layout] { return s.configs }

// OverlayOpen fires when the overlay or mobile menu opens.
func (s *Store) OverlayOpen() pubsub.Subscriber[Layout] { return s.overlays }

// Resets fires after Reset.
func (s *Store) Resets() pubsub.Subscriber[Layout] { return s.resets }

// Close detaches from the theme store and closes every stream.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.unsubscribe()
		s.configs.Close()
		s.overlays.Close()
		s.resets.Close()
	})
}
