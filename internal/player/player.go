// Package player connects a QuestionSyncEngine to the media player and the
// question overlay of a host. The engine only returns actions; this package
// executes them.
package player

import (
	"context"
	"time"

	"quiz-player/internal/domain"
)

// MediaControl is the capability a host player exposes to the quiz overlay.
type MediaControl interface {
	// Pause suspends playback. Pausing a paused player is a no-op.
	Pause(ctx context.Context) error

	// Resume continues playback. Resuming a playing player is a no-op.
	Resume(ctx context.Context) error

	// CurrentPosition returns the playback position from the start of the video.
	CurrentPosition(ctx context.Context) (time.Duration, error)
}

// Presenter renders the question overlay.
type Presenter interface {
	// ShowQuestion displays q and waits for the user to pick an option.
	ShowQuestion(ctx context.Context, q domain.Question) error

	// ShowFeedback keeps q on screen and marks wrongAnswer as incorrect.
	ShowFeedback(ctx context.Context, q domain.Question, wrongAnswer string) error

	// Hide removes the overlay.
	Hide(ctx context.Context) error
}
