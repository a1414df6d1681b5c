// Package palette holds the brand palette derived from a single base color
// and mirrors it into the document as CSS custom properties.
package palette

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/zjrosen/vitrine/internal/color"
	"github.com/zjrosen/vitrine/internal/log"
	"github.com/zjrosen/vitrine/internal/platform"
	"github.com/zjrosen/vitrine/internal/pubsub"
)

// DefaultBaseColor is used until a valid base color is supplied.
const DefaultBaseColor = "#976735"

// BaseColorVar is the style variable holding the base color itself.
const BaseColorVar = "--primary-color"

// Palette is a base color with its full ramp and gradient endpoints.
type Palette struct {
	BaseColor     string
	Shades        color.Shades
	GradientStart string
	GradientEnd   string
}

// StyleVar is one CSS custom property.
type StyleVar struct {
	Name  string
	Value string
}

// ShadeVar returns the style variable name for key, e.g. "--primary-500".
func ShadeVar(key color.ShadeKey) string {
	return fmt.Sprintf("--primary-%d", key)
}

// StyleVars lists the palette's custom properties in ramp order, followed by
// the base color.
func (p Palette) StyleVars() []StyleVar {
	vars := make([]StyleVar, 0, len(color.ShadeKeys)+1)
	for _, key := range color.ShadeKeys {
		if hex, ok := p.Shades[key]; ok {
			vars = append(vars, StyleVar{Name: ShadeVar(key), Value: hex})
		}
	}
	return append(vars, StyleVar{Name: BaseColorVar, Value: p.BaseColor})
}

func (p Palette) clone() Palette {
	shades := make(color.Shades, len(p.Shades))
	for k, v := range p.Shades {
		shades[k] = v
	}
	p.Shades = shades
	return p
}

// derive builds the palette for base, or reports false when base is invalid.
func derive(base string) (Palette, bool) {
	shades := color.DeriveShades(base)
	if len(shades) == 0 {
		return Palette{}, false
	}
	normalized, _ := color.Normalize(base)

	end, ok := shades[color.Shade700]
	if !ok {
		end = color.AdjustBrightness(normalized, -20)
	}
	return Palette{
		BaseColor:     normalized,
		Shades:        shades,
		GradientStart: shades[color.Shade500],
		GradientEnd:   end,
	}, true
}

// Store owns the current palette.
type Store struct {
	adapter platform.Adapter
	broker  *pubsub.Broker[Palette]

	mu      sync.Mutex
	current Palette
}

// NewStore creates a store seeded with base, or DefaultBaseColor when base is
// empty or invalid. The seed palette is applied but not published.
func NewStore(adapter platform.Adapter, base string) *Store {
	if adapter == nil {
		adapter = platform.Noop()
	}
	p, ok := derive(base)
	if !ok {
		if base != "" {
			log.Warn(log.CatPalette, "Invalid initial base color, using default", "base", base)
		}
		p, _ = derive(DefaultBaseColor)
	}

	s := &Store{
		adapter: adapter,
		broker:  pubsub.NewBroker[Palette](),
		current: p,
	}
	s.applyLocked()
	return s
}

// SetBaseColor recomputes the whole palette from hex, applies it and
// publishes it. A malformed hex leaves the current palette in place and
// returns false.
func (s *Store) SetBaseColor(hex string) bool {
	p, ok := derive(hex)
	if !ok {
		log.Warn(log.CatPalette, "Ignoring malformed base color", "base", hex)
		return false
	}

	s.mu.Lock()
	s.current = p
	s.applyLocked()
	snap := s.current.clone()
	s.mu.Unlock()

	log.Debug(log.CatPalette, "Palette updated", "base", p.BaseColor)
	s.broker.Publish(pubsub.PaletteUpdate, snap)
	return true
}

// applyLocked writes the style variables. s.mu must be held so concurrent
// updates cannot interleave their variables.
func (s *Store) applyLocked() {
	for _, v := range s.current.StyleVars() {
		s.adapter.SetStyleProperty(v.Name, v.Value)
	}
}

// BaseColor returns the current base color.
func (s *Store) BaseColor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.BaseColor
}

// Shade returns the shade for key, or the base color if there is none.
func (s *Store) Shade(key color.ShadeKey) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hex, ok := s.current.Shades[key]; ok {
		return hex
	}
	return s.current.BaseColor
}

// GradientCSS formats a linear gradient between the gradient endpoints.
func (s *Store) GradientCSS(direction string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("linear-gradient(%s, %s 0%%, %s 100%%)",
		direction, s.current.GradientStart, s.current.GradientEnd)
}

// Snapshot returns a copy of the current palette.
func (s *Store) Snapshot() Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// CSS renders the palette as a :root rule.
func (s *Store) CSS() string {
	return CSS(s.Snapshot())
}

// CSS renders p as a :root rule with one declaration per line.
func CSS(p Palette) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, v := range p.StyleVars() {
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
	return b.String()
}

// Subscribe returns a channel of palette updates closed when ctx is done.
func (s *Store) Subscribe(ctx context.Context) <-chan pubsub.Event[Palette] {
	return s.broker.Subscribe(ctx)
}

// SubscribeFunc delivers every palette update to fn synchronously.
func (s *Store) SubscribeFunc(fn func(pubsub.Event[Palette])) (unsubscribe func()) {
	return s.broker.SubscribeFunc(fn)
}

// Close closes all subscriptions.
func (s *Store) Close() {
	s.broker.Close()
}

var _ pubsub.Subscriber[Palette] = (*Store)(nil)
