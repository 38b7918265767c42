package media

import (
	"context"
	"sync"
	"time"
)

// PlaybackState is the play state a remote client must apply.
type PlaybackState string

const (
	StatePlaying PlaybackState = "playing"
	StatePaused  PlaybackState = "paused"
)

// RemoteControl is the MediaControl of a player running on a client device.
// The position is the last one the client reported; Pause and Resume record
// the state the client is told to apply in the next response.
type RemoteControl struct {
	mu       sync.Mutex
	position time.Duration
	state    PlaybackState
}

// NewRemoteControl returns a control for a client that is playing from zero.
func NewRemoteControl() *RemoteControl {
	return &RemoteControl{state: StatePlaying}
}

// Report records a position sample from the client. Negative samples are
// clamped to zero.
func (r *RemoteControl) Report(position time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if position < 0 {
		position = 0
	}
	r.position = position
}

// State returns the play state the client should be in.
func (r *RemoteControl) State() PlaybackState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Pause implements player.MediaControl.
func (r *RemoteControl) Pause(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StatePaused
	return nil
}

// Resume implements player.MediaControl.
func (r *RemoteControl) Resume(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StatePlaying
	return nil
}

// CurrentPosition implements player.MediaControl.
func (r *RemoteControl) CurrentPosition(context.Context) (time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position, nil
}
