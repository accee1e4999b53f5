package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrInvalidDuration = errors.New("countdown duration must be positive")

// Countdown owns the remaining time of one session. Each one-second tick
// decrements remaining by exactly one while it is above zero; reaching zero
// flips the countdown to expired, stops ticking and delivers the expiry
// callback exactly once. There is no pause and no resume.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	expired   bool
	stopped   bool
	onExpire  func()

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewCountdown creates a countdown for durationSeconds. onExpire may be nil.
func NewCountdown(durationSeconds int, onExpire func()) (*Countdown, error) {
	if durationSeconds <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Countdown{
		remaining: durationSeconds,
		onExpire:  onExpire,
		stopCh:    make(chan struct{}),
	}, nil
}

// Start launches the ticking loop. The loop ends when the countdown expires,
// Stop is called, or ctx is cancelled.
func (c *Countdown) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if done := c.tick(); done {
					return
				}
			case <-c.stopCh:
				return
			case <-ctx.Done():
				c.Stop()
				return
			}
		}
	}()
}

// tick advances the countdown by one second. It reports whether the loop
// should end. The expiry callback runs outside the lock so it may call back
// into the countdown.
func (c *Countdown) tick() bool {
	c.mu.Lock()
	if c.stopped || c.expired {
		c.mu.Unlock()
		return true
	}
	c.remaining--
	fire := false
	if c.remaining <= 0 {
		c.remaining = 0
		c.expired = true
		fire = true
	}
	c.mu.Unlock()

	if fire {
		c.stop()
		if c.onExpire != nil {
			c.onExpire()
		}
	}
	return fire
}

// Stop cancels the scheduled tick task. Idempotent; after Stop no expiry
// callback fires.
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
	c.stop()
}

func (c *Countdown) stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Expired reports whether the countdown reached zero.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// FormatRemaining renders the remaining time as zero-padded MM:SS. Durations
// of 100 minutes or more simply grow the minutes field.
func (c *Countdown) FormatRemaining() string {
	return FormatSeconds(c.Remaining())
}

// FormatSeconds renders a second count as zero-padded MM:SS.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
