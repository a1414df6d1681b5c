// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// ConfigUpdate carries a full configuration snapshot after any mutation.
	ConfigUpdate EventType = "configUpdate"
	// OverlayOpen signals that a menu overlay has just opened.
	OverlayOpen EventType = "overlayOpen"
	// Reset signals that transient layout state was cleared.
	Reset EventType = "reset"
	// PaletteUpdate carries a recomputed palette.
	PaletteUpdate EventType = "paletteUpdate"
	// SchemeChange carries a new OS dark preference.
	SchemeChange EventType = "schemeChange"
	// ProfileResult carries the outcome of one profile fetch.
	ProfileResult EventType = "profileResult"
	// LogEntry carries a formatted log line.
	LogEntry EventType = "logEntry"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides channel and callback subscriptions for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
	SubscribeFunc(fn func(Event[T])) (unsubscribe func())
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

var (
	_ Subscriber[string] = (*Broker[string])(nil)
	_ Publisher[string]  = (*Broker[string])(nil)
)
