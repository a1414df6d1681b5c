package theme

import (
	"context"
	"sync"

	"github.com/zjrosen/vitrine/internal/log"
	"github.com/zjrosen/vitrine/internal/platform"
	"github.com/zjrosen/vitrine/internal/pubsub"
)

// Store is the single source of truth for the color mode.
//
// The mode is resolved once at construction: an explicit persisted choice
// wins, then the OS dark preference, then light. Outside a browser context
// the store always starts light. Until a choice is persisted, OS preference
// changes drive the mode directly; afterwards they are ignored.
type Store struct {
	adapter    platform.Adapter
	transition platform.Transition
	broker     *pubsub.Broker[Config]

	mu       sync.Mutex
	mode     Mode
	preset   string
	primary  string
	surface  string
	menuMode string

	closeOnce sync.Once
	stopWatch func()
}

// Option configures a Store.
type Option func(*Store)

// WithTransition sets the transition strategy. The default is
// platform.Immediate.
func WithTransition(t platform.Transition) Option {
	return func(s *Store) {
		if t != nil {
			s.transition = t
		}
	}
}

// WithCosmetics seeds the preset fields. Empty fields keep their defaults;
// Mode and IsDark are ignored.
func WithCosmetics(c Config) Option {
	return func(s *Store) {
		if c.Preset != "" {
			s.preset = c.Preset
		}
		if c.Primary != "" {
			s.primary = c.Primary
		}
		if c.Surface != "" {
			s.surface = c.Surface
		}
		if c.MenuMode != "" {
			s.menuMode = c.MenuMode
		}
	}
}

// NewStore resolves the initial mode, applies its classes without a
// transition and starts the OS preference watcher.
func NewStore(adapter platform.Adapter, opts ...Option) *Store {
	if adapter == nil {
		adapter = platform.Noop()
	}
	s := &Store{
		adapter:    adapter,
		transition: platform.Immediate{},
		broker:     pubsub.NewBroker[Config](),
		preset:     DefaultPreset,
		primary:    DefaultPrimary,
		menuMode:   DefaultMenuMode,
		stopWatch:  func() {},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mode = s.resolve()
	s.applyClasses(s.mode)
	log.Info(log.CatTheme, "Resolved initial mode", "mode", s.mode, "browser", adapter.IsBrowser())

	if adapter.IsBrowser() {
		s.stopWatch = adapter.WatchPrefersDark(s.onSchemeChange)
	}
	return s
}

func (s *Store) resolve() Mode {
	if !s.adapter.IsBrowser() {
		return ModeLight
	}
	if v, ok := s.adapter.GetItem(PreferenceKey); ok {
		if m, ok := ParseMode(v); ok {
			return m
		}
		log.Warn(log.CatTheme, "Ignoring unrecognised persisted mode", "value", v)
	}
	if s.adapter.PrefersDark() {
		return ModeDark
	}
	return ModeLight
}

// SetMode persists mode, updates the state, publishes one snapshot and
// applies the classes through the transition. The returned channel closes
// once the change has settled. An invalid mode changes nothing and returns a
// closed channel.
func (s *Store) SetMode(mode Mode) <-chan struct{} {
	if !mode.Valid() {
		log.Warn(log.CatTheme, "Ignoring invalid mode", "mode", mode)
		return closed()
	}

	// Persisting and writing the mode share the lock with the OS watcher's
	// preference check, so an OS event never lands between the two.
	s.mu.Lock()
	s.adapter.SetItem(PreferenceKey, string(mode))
	s.mode = mode
	snap := s.snapshotLocked()
	s.mu.Unlock()

	log.Debug(log.CatTheme, "Mode set", "mode", mode, "animated", s.transition.Supported())
	s.broker.Publish(pubsub.ConfigUpdate, snap)

	// The mutation reads the mode when it runs, so a superseded transition
	// lands on the latest state.
	return s.transition.Run(func() { s.applyClasses(s.Mode()) })
}

// Toggle switches to the opposite mode.
func (s *Store) Toggle() <-chan struct{} {
	return s.SetMode(s.Mode().Opposite())
}

// ClearPreference forgets the explicit choice so OS changes apply again.
// The current mode is unchanged.
func (s *Store) ClearPreference() {
	s.mu.Lock()
	s.adapter.RemoveItem(PreferenceKey)
	s.mu.Unlock()
	log.Debug(log.CatTheme, "Cleared persisted mode")
}

// HasPreference reports whether an explicit choice is persisted.
func (s *Store) HasPreference() bool {
	_, ok := s.adapter.GetItem(PreferenceKey)
	return ok
}

func (s *Store) onSchemeChange(dark bool) {
	mode := ModeLight
	if dark {
		mode = ModeDark
	}

	s.mu.Lock()
	if _, ok := s.adapter.GetItem(PreferenceKey); ok {
		s.mu.Unlock()
		log.Debug(log.CatTheme, "OS scheme change ignored, explicit preference set", "dark", dark)
		return
	}
	s.mode = mode
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.applyClasses(s.Mode())
	log.Debug(log.CatTheme, "Mode follows OS scheme", "mode", mode)
	s.broker.Publish(pubsub.ConfigUpdate, snap)
}

func (s *Store) applyClasses(mode Mode) {
	for _, target := range platform.Targets {
		if mode == ModeDark {
			s.adapter.AddClass(target, DarkClass, AppDarkClass)
		} else {
			s.adapter.RemoveClass(target, DarkClass, AppDarkClass)
		}
	}
}

// SetPreset updates the preset name.
func (s *Store) SetPreset(preset string) {
	s.update(func() { s.preset = preset })
}

// SetPrimary updates the primary color key.
func (s *Store) SetPrimary(primary string) {
	s.update(func() { s.primary = primary })
}

// SetSurface updates the surface token.
func (s *Store) SetSurface(surface string) {
	s.update(func() { s.surface = surface })
}

// SetMenuMode updates the menu mode.
func (s *Store) SetMenuMode(menuMode string) {
	s.update(func() { s.menuMode = menuMode })
}

func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.broker.Publish(pubsub.ConfigUpdate, snap)
}

// Mode returns the current mode.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// IsDark reports whether the current mode is dark.
func (s *Store) IsDark() bool {
	return s.Mode() == ModeDark
}

// Snapshot returns the current config.
func (s *Store) Snapshot() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Config {
	return Config{
		Mode:     s.mode,
		IsDark:   s.mode == ModeDark,
		Preset:   s.preset,
		Primary:  s.primary,
		Surface:  s.surface,
		MenuMode: s.menuMode,
	}
}

// Subscribe returns a channel of config snapshots closed when ctx is done.
func (s *Store) Subscribe(ctx context.Context) <-chan pubsub.Event[Config] {
	return s.broker.Subscribe(ctx)
}

// SubscribeFunc delivers every snapshot to fn synchronously.
func (s *Store) SubscribeFunc(fn func(pubsub.Event[Config])) (unsubscribe func()) {
	return s.broker.SubscribeFunc(fn)
}

// Close stops the OS watcher and closes all subscriptions.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.stopWatch()
		s.broker.Close()
	})
}

var _ pubsub.Subscriber[Config] = (*Store)(nil)

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
