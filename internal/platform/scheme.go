package platform

import (
	"sync"

	"github.com/muesli/termenv"

	"github.com/zjrosen/vitrine/internal/pubsub"
)

// SchemeQuery is the OS "prefers-color-scheme: dark" media query.
type SchemeQuery interface {
	// Matches reports whether the OS currently prefers dark.
	Matches() bool
	// OnChange registers fn for preference changes and returns a function
	// that stops delivery.
	OnChange(fn func(dark bool)) (stop func())
}

// StaticScheme is a preference that never changes.
type StaticScheme bool

func (s StaticScheme) Matches() bool { return bool(s) }

func (StaticScheme) OnChange(func(bool)) func() { return func() {} }

// TerminalScheme reports the terminal's background as the OS preference.
// Detection queries the terminal once; call it before a Bubble Tea program
// takes over input.
func TerminalScheme() StaticScheme {
	return StaticScheme(termenv.HasDarkBackground())
}

// ManualScheme is a preference changed by calling Set. The playground uses it
// to simulate OS changes; tests use it to drive the watcher.
type ManualScheme struct {
	mu     sync.Mutex
	dark   bool
	broker *pubsub.Broker[bool]
}

// NewManualScheme creates a ManualScheme with the given initial preference.
func NewManualScheme(dark bool) *ManualScheme {
	return &ManualScheme{dark: dark, broker: pubsub.NewBroker[bool]()}
}

func (m *ManualScheme) Matches() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dark
}

func (m *ManualScheme) OnChange(fn func(bool)) func() {
	return m.broker.SubscribeFunc(func(e pubsub.Event[bool]) { fn(e.Payload) })
}

// Set changes the preference, notifying listeners if it differs.
func (m *ManualScheme) Set(dark bool) {
	m.mu.Lock()
	changed := m.dark != dark
	m.dark = dark
	m.mu.Unlock()

	if changed {
		m.broker.Publish(pubsub.SchemeChange, dark)
	}
}

// Flip inverts the preference.
func (m *ManualScheme) Flip() {
	m.Set(!m.Matches())
}
