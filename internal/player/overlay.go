package player

import (
	"context"
	"sync"

	"quiz-player/internal/domain"
)

// Overlay is what the question overlay currently shows.
type Overlay struct {
	Visible     bool
	Question    *domain.Question
	WrongAnswer string
}

// OverlayState is a Presenter that only records the overlay, for hosts that
// render it elsewhere (e.g. a remote client reading API responses).
type OverlayState struct {
	mu      sync.Mutex
	current Overlay
}

// ShowQuestion implements Presenter.
func (o *OverlayState) ShowQuestion(_ context.Context, q domain.Question) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = Overlay{Visible: true, Question: &q}
	return nil
}

// ShowFeedback implements Presenter.
func (o *OverlayState) ShowFeedback(_ context.Context, q domain.Question, wrongAnswer string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = Overlay{Visible: true, Question: &q, WrongAnswer: wrongAnswer}
	return nil
}

// Hide implements Presenter.
func (o *OverlayState) Hide(context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = Overlay{}
	return nil
}

// Current returns the recorded overlay.
func (o *OverlayState) Current() Overlay {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}
