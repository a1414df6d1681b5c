package platform

import (
	"sync"
	"time"
)

// Transition applies a visual mutation, optionally animated.
type Transition interface {
	// Supported reports whether mutations are animated.
	Supported() bool
	// Run applies mutation and returns a channel that is closed once the
	// visual change has settled.
	Run(mutation func()) <-chan struct{}
}

// Immediate applies mutations synchronously. Its completion channel is
// already closed when Run returns.
type Immediate struct{}

func (Immediate) Supported() bool { return false }

func (Immediate) Run(mutation func()) <-chan struct{} {
	mutation()
	done := make(chan struct{})
	close(done)
	return done
}

// Animated captures the outgoing state, applies the mutation and signals
// completion after the settle duration. When a newer Run arrives before a
// pending mutation is applied, the pending one is skipped; its completion
// channel still closes.
type Animated struct {
	settle  time.Duration
	capture func()

	mu  sync.Mutex
	gen uint64
}

// NewAnimated creates an Animated transition. capture may be nil.
func NewAnimated(settle time.Duration, capture func()) *Animated {
	return &Animated{settle: settle, capture: capture}
}

func (a *Animated) Supported() bool { return true }

func (a *Animated) Run(mutation func()) <-chan struct{} {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)

		a.mu.Lock()
		current := gen == a.gen
		if current {
			if a.capture != nil {
				a.capture()
			}
			mutation()
		}
		a.mu.Unlock()

		if current && a.settle > 0 {
			time.Sleep(a.settle)
		}
	}()
	return done
}
