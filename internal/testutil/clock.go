package testutil

import (
	"sync"
	"time"
)

// Epoch is the wall time reported by a DeterministicClock before any tick.
// 2023-11-14T22:13:20Z.
var Epoch = time.UnixMilli(1_700_000_000_000).UTC()

// DeterministicClock provides a thread-safe monotonic clock for tests.
//
// Every call to Now advances the clock by one millisecond from Epoch, so
// items created in sequence get distinct, predictable createdAt values.
// The clock can be reset for test reuse.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu  sync.Mutex
	seq int64
}

// NewDeterministicClock creates a new deterministic clock starting at 0.
//
// The first call to Next() returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{seq: 0}
}

// Next increments and returns the next sequence number.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Now ticks the clock and returns Epoch plus that many milliseconds.
func (c *DeterministicClock) Now() time.Time {
	return Epoch.Add(time.Duration(c.Next()) * time.Millisecond)
}

// Reset resets the clock to 0.
//
// After Reset(), the next call to Next() returns 1.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
