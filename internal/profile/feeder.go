package profile

import (
	"context"
	"sync"
	"time"

	"github.com/zjrosen/vitrine/internal/log"
	"github.com/zjrosen/vitrine/internal/pubsub"
)

// Sink receives brand colors. *palette.Store satisfies it.
type Sink interface {
	SetBaseColor(hex string) bool
}

// Result is the outcome of one fetch.
type Result struct {
	Seq     uint64
	Profile Profile
	Err     error
	// Applied is false when the fetch failed or its color was rejected.
	Applied bool
}

// Feeder runs fetches in the background and hands each result's color to the
// sink as it resolves. Fetches are not queued or merged: when several race,
// whichever resolves last sets the color.
type Feeder struct {
	source  Source
	sink    Sink
	timeout time.Duration
	broker  *pubsub.Broker[Result]

	mu     sync.Mutex
	seq    uint64
	closed bool
	wg     sync.WaitGroup
}

// NewFeeder creates a Feeder. A zero timeout means no per-fetch deadline.
func NewFeeder(source Source, sink Sink, timeout time.Duration) *Feeder {
	return &Feeder{
		source:  source,
		sink:    sink,
		timeout: timeout,
		broker:  pubsub.NewBroker[Result](),
	}
}

// Refresh starts a fetch and returns its sequence number without waiting.
// Failures are logged and published; the sink keeps its current color.
// After Close, Refresh starts nothing and returns 0.
func (f *Feeder) Refresh(ctx context.Context) uint64 {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		log.Debug(log.CatProfile, "Refresh after close ignored", "source", f.source.Kind())
		return 0
	}
	f.seq++
	seq := f.seq
	f.wg.Add(1)
	f.mu.Unlock()

	go func() {
		defer f.wg.Done()
		f.broker.Publish(pubsub.ProfileResult, f.fetch(ctx, seq))
	}()
	return seq
}

func (f *Feeder) fetch(ctx context.Context, seq uint64) Result {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	p, err := f.source.Fetch(ctx)
	if err != nil {
		log.WarnErr(log.CatProfile, "Profile fetch failed, keeping current palette", err,
			"source", f.source.Kind(), "seq", seq)
		return Result{Seq: seq, Err: err}
	}

	applied := f.sink.SetBaseColor(p.BaseColor)
	if !applied {
		log.Warn(log.CatProfile, "Profile base color rejected", "base", p.BaseColor, "seq", seq)
	}
	return Result{Seq: seq, Profile: p, Applied: applied}
}

// Results streams fetch outcomes.
func (f *Feeder) Results() pubsub.Subscriber[Result] { return f.broker }

// Wait blocks until every started fetch has resolved.
func (f *Feeder) Wait() { f.wg.Wait() }

// Close stops new fetches, waits for in-flight ones and closes the result
// stream. Calling it again is a no-op.
func (f *Feeder) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.mu.Unlock()

	f.wg.Wait()
	f.broker.Close()
}
