package pushfeed

import (
	"math/rand/v2"
	"time"
)

// Backoff yields exponentially growing reconnect delays between min and max.
// Up to a fifth of each delay is added as jitter; the result never exceeds max.
type Backoff struct {
	min     time.Duration
	max     time.Duration
	attempt int
	jitter  func(n int64) int64
}

// NewBackoff creates a Backoff starting at minDelay.
func NewBackoff(minDelay, maxDelay time.Duration) *Backoff {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Backoff{min: minDelay, max: maxDelay, jitter: rand.Int64N}
}

// Next returns the delay before the next attempt and advances the sequence.
func (b *Backoff) Next() time.Duration {
	delay := b.max
	if b.attempt < 32 {
		if d := b.min << b.attempt; d > 0 && d < b.max {
			delay = d
		}
	}
	b.attempt++

	if spread := int64(delay / 5); spread > 0 {
		delay += time.Duration(b.jitter(spread + 1))
	}
	return min(delay, b.max)
}

// Reset starts the sequence over from min.
func (b *Backoff) Reset() {
	b.attempt = 0
}

// Attempt is the number of delays handed out since the last reset.
func (b *Backoff) Attempt() int {
	return b.attempt
}
