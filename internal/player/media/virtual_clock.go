// Package media provides MediaControl implementations that do not need a
// native video player.
package media

import (
	"context"
	"sync"
	"time"
)

// VirtualClock is a playback position that advances with wall time while
// playing. It stands in for a real player in simulations and tests.
type VirtualClock struct {
	mu        sync.Mutex
	now       func() time.Time
	offset    time.Duration
	startedAt time.Time
	playing   bool
	duration  time.Duration
}

// Option configures a VirtualClock.
type Option func(*VirtualClock)

// WithNow replaces the wall clock.
func WithNow(now func() time.Time) Option {
	return func(c *VirtualClock) { c.now = now }
}

// WithDuration caps the position at the length of the video.
func WithDuration(d time.Duration) Option {
	return func(c *VirtualClock) { c.duration = d }
}

// NewVirtualClock returns a paused clock at position zero.
func NewVirtualClock(opts ...Option) *VirtualClock {
	c := &VirtualClock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play starts or continues playback.
func (c *VirtualClock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		c.playing = true
		c.startedAt = c.now()
	}
}

// Pause implements player.MediaControl.
func (c *VirtualClock) Pause(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		c.offset = c.positionLocked()
		c.playing = false
	}
	return nil
}

// Resume implements player.MediaControl.
func (c *VirtualClock) Resume(context.Context) error {
	c.Play()
	return nil
}

// CurrentPosition implements player.MediaControl.
func (c *VirtualClock) CurrentPosition(context.Context) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked(), nil
}

// Seek moves the position, keeping the play state.
func (c *VirtualClock) Seek(position time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if position < 0 {
		position = 0
	}
	c.offset = position
	c.startedAt = c.now()
}

// Playing reports whether the clock is advancing.
func (c *VirtualClock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Ended reports whether the position reached the configured duration.
func (c *VirtualClock) Ended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration > 0 && c.positionLocked() >= c.duration
}

func (c *VirtualClock) positionLocked() time.Duration {
	pos := c.offset
	if c.playing {
		pos += c.now().Sub(c.startedAt)
	}
	if c.duration > 0 && pos > c.duration {
		pos = c.duration
	}
	return pos
}
