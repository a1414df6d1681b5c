// Package platform isolates client-only capabilities (persisted storage,
// document class and style mutation, the OS color-scheme query, viewport
// size) behind one Adapter. Server-side hosts get a no-op adapter so the
// stores can run unchanged while rendering.
package platform

import "github.com/zjrosen/vitrine/internal/log"

// Target names a document element the theme classes are applied to.
type Target int

const (
	// TargetRoot is the document root element.
	TargetRoot Target = iota
	// TargetBody is the body element.
	TargetBody
)

func (t Target) String() string {
	switch t {
	case TargetRoot:
		return "root"
	case TargetBody:
		return "body"
	default:
		return "unknown"
	}
}

// Targets lists every element theme classes are applied to.
var Targets = []Target{TargetRoot, TargetBody}

// Adapter is the capability set the stores use. Every method is safe to call
// in any context; outside a browser context they do nothing and report zero
// values.
type Adapter interface {
	IsBrowser() bool

	GetItem(key string) (string, bool)
	SetItem(key, value string)
	RemoveItem(key string)

	AddClass(target Target, names ...string)
	RemoveClass(target Target, names ...string)
	SetStyleProperty(name, value string)

	PrefersDark() bool
	WatchPrefersDark(fn func(dark bool)) (stop func())

	ViewportWidth() int
}

// DOM is the class and style mutation surface of a document.
type DOM interface {
	AddClass(target Target, names ...string)
	RemoveClass(target Target, names ...string)
	SetStyleProperty(name, value string)
}

// Host bundles the client capabilities handed to New. Nil fields get
// in-memory or inert defaults.
type Host struct {
	Storage  Storage
	Document DOM
	Scheme   SchemeQuery
	Viewport Viewport
}

// New selects the adapter once: a client adapter over host when isBrowser
// reports true, otherwise the no-op adapter. A nil isBrowser means server.
func New(host Host, isBrowser func() bool) Adapter {
	if isBrowser == nil || !isBrowser() {
		log.Debug(log.CatPlatform, "Using no-op platform adapter")
		return Noop()
	}

	if host.Storage == nil {
		host.Storage = NewMemoryStorage()
	}
	if host.Document == nil {
		host.Document = NewDocument()
	}
	if host.Scheme == nil {
		host.Scheme = StaticScheme(false)
	}
	if host.Viewport == nil {
		host.Viewport = FixedViewport(0)
	}

	log.Debug(log.CatPlatform, "Using client platform adapter")
	return &clientAdapter{
		storage:  NewResilientStorage(host.Storage),
		document: host.Document,
		scheme:   host.Scheme,
		viewport: host.Viewport,
	}
}

// Always is an isBrowser predicate for hosts that are always the client.
func Always() bool { return true }

type clientAdapter struct {
	storage  *ResilientStorage
	document DOM
	scheme   SchemeQuery
	viewport Viewport
}

func (a *clientAdapter) IsBrowser() bool { return true }

func (a *clientAdapter) GetItem(key string) (string, bool) {
	v, ok, _ := a.storage.Get(key)
	return v, ok
}

func (a *clientAdapter) SetItem(key, value string) {
	_ = a.storage.Set(key, value)
}

func (a *clientAdapter) RemoveItem(key string) {
	_ = a.storage.Remove(key)
}

func (a *clientAdapter) AddClass(target Target, names ...string) {
	a.document.AddClass(target, names...)
}

func (a *clientAdapter) RemoveClass(target Target, names ...string) {
	a.document.RemoveClass(target, names...)
}

func (a *clientAdapter) SetStyleProperty(name, value string) {
	a.document.SetStyleProperty(name, value)
}

func (a *clientAdapter) PrefersDark() bool {
	return a.scheme.Matches()
}

func (a *clientAdapter) WatchPrefersDark(fn func(dark bool)) func() {
	return a.scheme.OnChange(fn)
}

func (a *clientAdapter) ViewportWidth() int {
	return a.viewport.Width()
}

// Noop returns the server-context adapter.
func Noop() Adapter { return noopAdapter{} }

type noopAdapter struct{}

func (noopAdapter) IsBrowser() bool                           { return false }
func (noopAdapter) GetItem(string) (string, bool)             { return "", false }
func (noopAdapter) SetItem(string, string)                    {}
func (noopAdapter) RemoveItem(string)                         {}
func (noopAdapter) AddClass(Target, ...string)                {}
func (noopAdapter) RemoveClass(Target, ...string)             {}
func (noopAdapter) SetStyleProperty(string, string)           {}
func (noopAdapter) PrefersDark() bool                         { return false }
func (noopAdapter) WatchPrefersDark(func(bool)) (stop func()) { return func() {} }
func (noopAdapter) ViewportWidth() int                        { return 0 }
