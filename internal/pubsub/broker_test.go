package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroker_Subscribe(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)

	broker.Publish(ConfigUpdate, "hello")

	select {
	case event := <-ch:
		require.Equal(t, "hello", event.Payload)
		require.Equal(t, ConfigUpdate, event.Type)
		require.False(t, event.Timestamp.IsZero())
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for event")
	}
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx := context.Background()

	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)
	ch3 := broker.Subscribe(ctx)

	require.Equal(t, 3, broker.SubscriberCount())

	broker.Publish(PaletteUpdate, 42)

	// All subscribers should receive the event
	for i, ch := range []<-chan Event[int]{ch1, ch2, ch3} {
		select {
		case event := <-ch:
			require.Equal(t, 42, event.Payload, "subscriber %d", i)
			require.Equal(t, PaletteUpdate, event.Type, "subscriber %d", i)
		case <-time.After(100 * time.Millisecond):
			require.Fail(t, "timeout waiting for event", "subscriber %d", i)
		}
	}
}

func TestBroker_ContextCancellation(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())

	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()
	time.Sleep(20 * time.Millisecond) // Wait for cleanup goroutine

	require.Equal(t, 0, broker.SubscriberCount())

	// Channel should be closed
	_, ok := <-ch
	require.False(t, ok, "channel should be closed")
}

func TestBroker_NonBlocking(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ctx := context.Background()

	ch := broker.Subscribe(ctx)

	// Fill buffer
	broker.Publish(ConfigUpdate, 1)

	// These should not block (drop events)
	done := make(chan bool)
	go func() {
		broker.Publish(ConfigUpdate, 2)
		broker.Publish(ConfigUpdate, 3)
		done <- true
	}()

	select {
	case <-done:
		// Success - didn't block
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "Publish blocked")
	}

	// Only first event received (buffer was full for others)
	event := <-ch
	require.Equal(t, 1, event.Payload)
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker[string]()

	ctx := context.Background()

	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)

	require.Equal(t, 2, broker.SubscriberCount())

	broker.Close()

	// Both channels should be closed
	_, ok1 := <-ch1
	_, ok2 := <-ch2

	require.False(t, ok1, "ch1 should be closed")
	require.False(t, ok2, "ch2 should be closed")

	// Subscriber count should be 0
	require.Equal(t, 0, broker.SubscriberCount())

	// Subscribe after close should return closed channel
	ch3 := broker.Subscribe(ctx)
	_, ok3 := <-ch3
	require.False(t, ok3, "ch3 should be closed immediately")

	// Publish after close should not panic
	broker.Publish(ConfigUpdate, "test") // No panic
}

func TestBroker_CloseIdempotent(t *testing.T) {
	broker := NewBroker[string]()

	ctx := context.Background()
	ch := broker.Subscribe(ctx)

	// Multiple Close() calls should be safe
	broker.Close()
	broker.Close()
	broker.Close()

	// Channel should still be closed
	_, ok := <-ch
	require.False(t, ok, "channel should be closed")
}

func TestBroker_SubscribeFuncSynchronous(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	var got []string
	unsubscribe := broker.SubscribeFunc(func(e Event[string]) {
		got = append(got, string(e.Type)+":"+e.Payload)
	})

	broker.Publish(ConfigUpdate, "a")
	broker.Publish(OverlayOpen, "b")

	// Delivered before Publish returned, in order
	require.Equal(t, []string{"configUpdate:a", "overlayOpen:b"}, got)

	unsubscribe()
	unsubscribe() // idempotent
	broker.Publish(ConfigUpdate, "c")

	require.Len(t, got, 2)
	require.Equal(t, 0, broker.SubscriberCount())
}

func TestBroker_SubscribeFuncOrder(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	var order []string
	broker.SubscribeFunc(func(Event[int]) { order = append(order, "first") })
	broker.SubscribeFunc(func(Event[int]) { order = append(order, "second") })

	broker.Publish(Reset, 0)

	require.Equal(t, []string{"first", "second"}, order)
}

func TestBroker_SubscribeFuncReentrant(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	var unsubscribe func()
	calls := 0
	unsubscribe = broker.SubscribeFunc(func(Event[int]) {
		calls++
		unsubscribe() // must not deadlock
	})

	broker.Publish(ConfigUpdate, 1)
	broker.Publish(ConfigUpdate, 2)

	require.Equal(t, 1, calls)
}

func TestBroker_SubscribeFuncAfterClose(t *testing.T) {
	broker := NewBroker[int]()
	broker.Close()

	called := false
	unsubscribe := broker.SubscribeFunc(func(Event[int]) { called = true })
	broker.Publish(ConfigUpdate, 1)
	unsubscribe()

	require.False(t, called)
}

func TestBroker_CloseDropsHandlers(t *testing.T) {
	broker := NewBroker[int]()

	calls := 0
	broker.SubscribeFunc(func(Event[int]) { calls++ })
	broker.Close()
	broker.Publish(ConfigUpdate, 1)

	require.Zero(t, calls)
	require.Equal(t, 0, broker.SubscriberCount())
}
