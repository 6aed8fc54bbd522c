// Package admission gates in-flight memory against a fixed byte ceiling.
package admission

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrRequestTooLarge is returned when a single request exceeds the ceiling
// and therefore can never be admitted.
var ErrRequestTooLarge = errors.New("admission request exceeds memory ceiling")

// Controller tracks aggregate in-flight bytes against a ceiling. Waiters are
// woken together on every release and race to re-admit; there is no fairness
// between them.
type Controller struct {
	mu      sync.Mutex
	ceiling int64
	current int64
	peak    int64
	// released is closed and replaced on every Release.
	released chan struct{}
}

// NewController creates a controller with the given ceiling in bytes.
func NewController(ceiling int64) *Controller {
	return &Controller{
		ceiling:  ceiling,
		released: make(chan struct{}),
	}
}

// TryAdmit reserves bytes if current+bytes fits under the ceiling. It never
// blocks and leaves the counter untouched on refusal.
func (c *Controller) TryAdmit(bytes int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok, _ := c.tryAdmitLocked(bytes)
	return ok
}

// Admit reserves bytes, blocking until capacity is released or ctx is done.
func (c *Controller) Admit(ctx context.Context, bytes int64) error {
	if bytes > c.ceiling {
		return fmt.Errorf("%w: requested %d, ceiling %d", ErrRequestTooLarge, bytes, c.ceiling)
	}

	for {
		c.mu.Lock()
		ok, wait := c.tryAdmitLocked(bytes)
		c.mu.Unlock()
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wait:
		}
	}
}

// Release returns bytes to the pool, clamping at zero, and wakes every waiter.
func (c *Controller) Release(bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current -= bytes
	if c.current < 0 {
		c.current = 0
	}
	close(c.released)
	c.released = make(chan struct{})
}

// InUse returns the currently admitted bytes.
func (c *Controller) InUse() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Peak returns the highest admitted total observed so far.
func (c *Controller) Peak() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peak
}

// Ceiling returns the configured limit in bytes.
func (c *Controller) Ceiling() int64 {
	return c.ceiling
}

// tryAdmitLocked must be called with mu held. On refusal it returns the
// channel the caller should wait on, captured under the same lock so a
// concurrent Release cannot be missed.
func (c *Controller) tryAdmitLocked(bytes int64) (bool, <-chan struct{}) {
	if bytes < 0 {
		bytes = 0
	}
	if c.current+bytes > c.ceiling {
		return false, c.released
	}
	c.current += bytes
	if c.current > c.peak {
		c.peak = c.current
	}
	return true, nil
}
