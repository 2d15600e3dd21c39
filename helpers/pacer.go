package helpers

import (
	"context"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/juju/clock"
)

// Pacer sleeps a random duration in [min, max] before each request so that
// variant attempts do not form a regular pattern.
type Pacer struct {
	clock clock.Clock
	min   time.Duration
	max   time.Duration

	mu  sync.Mutex
	rnd *mathrand.Rand
}

// NewPacer creates a pacer. A nil clock means the wall clock.
func NewPacer(clk clock.Clock, minDelay, maxDelay time.Duration) *Pacer {
	if clk == nil {
		clk = clock.WallClock
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Pacer{
		clock: clk,
		min:   minDelay,
		max:   maxDelay,
		rnd:   mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
	}
}

// Delay returns the next randomized delay
func (p *Pacer) Delay() time.Duration {
	if p.max <= 0 {
		return 0
	}
	span := int64(p.max - p.min)
	if span == 0 {
		return p.min
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.min + time.Duration(p.rnd.Int63n(span+1))
}

// Wait blocks for the next delay or until ctx is done
func (p *Pacer) Wait(ctx context.Context) error {
	d := p.Delay()
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-p.clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
