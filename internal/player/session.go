package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"quiz-player/internal/domain"
	"quiz-player/internal/logger"

	"go.uber.org/zap"
)

// Session drives one engine for one playback. It is the engine's only caller
// and serializes position ticks and answers, so the engine never sees
// overlapping calls even when ticks and answers arrive on different
// goroutines.
type Session struct {
	ID string

	mu        sync.Mutex
	engine    *domain.QuestionSyncEngine
	media     MediaControl
	presenter Presenter
	lastSeen  time.Time
	now       func() time.Time
}

// NewSession builds a session around an engine already loaded with its schedule.
func NewSession(id string, engine *domain.QuestionSyncEngine, media MediaControl, presenter Presenter) *Session {
	s := &Session{
		ID:        id,
		engine:    engine,
		media:     media,
		presenter: presenter,
		now:       time.Now,
	}
	s.lastSeen = s.now()
	return s
}

// Tick samples the playback position and feeds it to the engine. When a
// question becomes due playback is paused before the question is shown.
func (s *Session) Tick(ctx context.Context) (domain.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()

	position, err := s.media.CurrentPosition(ctx)
	if err != nil {
		return domain.NoAction(), fmt.Errorf("failed to read playback position: %w", err)
	}

	action, err := s.engine.OnPositionTick(position)
	if err != nil {
		return domain.NoAction(), err
	}
	if action.Kind == domain.ActionShowQuestion {
		logger.Get().Debug("Question due",
			zap.String("session_id", s.ID),
			zap.Duration("position", position),
			zap.String("question", action.Question.Text),
		)
	}
	return action, s.apply(ctx, action)
}

// Answer submits the option the user picked. An answer that arrives while no
// question is on screen is logged and ignored.
func (s *Session) Answer(ctx context.Context, selected string) (domain.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()

	action, err := s.engine.SubmitAnswer(selected)
	if errors.Is(err, domain.ErrNoActiveQuestion) {
		logger.Get().Warn("Answer received with no active question",
			zap.String("session_id", s.ID),
			zap.String("answer", selected),
		)
		return domain.NoAction(), nil
	}
	if err != nil {
		return domain.NoAction(), err
	}
	return action, s.apply(ctx, action)
}

// Progress returns the engine's progress snapshot.
func (s *Session) Progress() (domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Progress()
}

// ActiveQuestion returns the question on screen, if any.
func (s *Session) ActiveQuestion() (*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ActiveQuestion()
}

// LastSeen returns the time of the last tick or answer.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) apply(ctx context.Context, action domain.Action) error {
	switch action.Kind {
	case domain.ActionShowQuestion:
		if err := s.media.Pause(ctx); err != nil {
			return fmt.Errorf("failed to pause playback: %w", err)
		}
		return s.presenter.ShowQuestion(ctx, *action.Question)
	case domain.ActionShowFeedback:
		return s.presenter.ShowFeedback(ctx, *action.Question, action.WrongAnswer)
	case domain.ActionResumePlayback:
		if err := s.presenter.Hide(ctx); err != nil {
			return err
		}
		logger.Get().Debug("Question group completed, resuming", zap.String("session_id", s.ID))
		if err := s.media.Resume(ctx); err != nil {
			return fmt.Errorf("failed to resume playback: %w", err)
		}
	}
	return nil
}
