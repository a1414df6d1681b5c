package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 64

// Broker is a generic pub/sub event broker.
// Channel subscribers receive events through a buffered channel; function
// subscribers are called synchronously in the publisher's goroutine, in
// subscription order, before Publish returns.
type Broker[T any] struct {
	subs       map[chan Event[T]]struct{}
	handlers   []handlerEntry[T]
	nextID     uint64
	mu         sync.RWMutex
	done       chan struct{}
	bufferSize int
}

type handlerEntry[T any] struct {
	id uint64
	fn func(Event[T])
}

// NewBroker creates a new broker with the default buffer size (64).
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a new broker with a custom buffer size.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:       make(map[chan Event[T]]struct{}),
		done:       make(chan struct{}),
		bufferSize: size,
	}
}

// Subscribe creates a new subscription channel.
// The channel is automatically closed when ctx is cancelled.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		ch := make(chan Event[T])
		close(ch)
		return ch
	default:
	}

	sub := make(chan Event[T], b.bufferSize)
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()

		select {
		case <-b.done:
			return // Already closed
		default:
		}

		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

// SubscribeFunc registers fn for synchronous delivery. Returns an unsubscribe
// function; calling it more than once is safe. Subscribing to a closed broker
// registers nothing.
func (b *Broker[T]) SubscribeFunc(fn func(Event[T])) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		return func() {}
	default:
	}

	id := b.nextID
	b.nextID++
	b.handlers = append(b.handlers, handlerEntry[T]{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, h := range b.handlers {
			if h.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all subscribers.
// Channel delivery is non-blocking: events are dropped if a subscriber channel
// is full. Function subscribers run after the lock is released, so they may
// subscribe, unsubscribe or read the publishing store.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()

	select {
	case <-b.done:
		b.mu.RUnlock()
		return
	default:
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	for sub := range b.subs {
		select {
		case sub <- event:
		default:
			// Channel full - drop to prevent blocking
		}
	}

	handlers := make([]handlerEntry[T], len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h.fn(event)
	}
}

// Close shuts down the broker and all subscriber channels.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		return // Already closed
	default:
	}

	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
	b.handlers = nil
}

// SubscriberCount returns the number of active subscribers of both kinds.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs) + len(b.handlers)
}
