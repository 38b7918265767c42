package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"quiz-player/internal/config"
	"quiz-player/internal/domain"
	"quiz-player/internal/dto"
	"quiz-player/internal/logger"
	"quiz-player/internal/player"
	"quiz-player/internal/player/media"
	"quiz-player/internal/util"

	"go.uber.org/zap"
)

// PlaybackService hosts playback sessions for clients that play the video
// themselves and report the position over the API.
type PlaybackService interface {
	StartSession(ctx context.Context, videoID string) (*dto.PlaybackResponse, error)
	ReportPosition(ctx context.Context, sessionID string, position time.Duration) (*dto.PlaybackResponse, error)
	SubmitAnswer(ctx context.Context, sessionID, answer string) (*dto.PlaybackResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	EndSession(ctx context.Context, sessionID string) error
	ReapExpired(now time.Time) int
	ActiveSessions() int
}

type hostedSession struct {
	videoID string
	session *player.Session
	remote  *media.RemoteControl
	overlay *player.OverlayState
}

type playbackService struct {
	schedules ScheduleService
	cfg       config.PlaybackConfig

	mu       sync.RWMutex
	sessions map[string]*hostedSession
	newID    func() string
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(schedules ScheduleService, cfg config.PlaybackConfig) PlaybackService {
	return &playbackService{
		schedules: schedules,
		cfg:       cfg,
		sessions:  make(map[string]*hostedSession),
		newID:     util.NewULID,
	}
}

// StartSession loads the schedule of the video and opens a session at
// position zero. A video without a schedule plays without questions.
func (s *playbackService) StartSession(ctx context.Context, videoID string) (*dto.PlaybackResponse, error) {
	if s.full() {
		return nil, domain.NewSessionLimitError(s.cfg.MaxSessions)
	}

	groups, err := s.schedules.GetSchedule(ctx, videoID)
	if err != nil {
		if !errors.Is(err, domain.ErrScheduleNotFound) {
			return nil, err
		}
		logger.Get().Info("Video has no schedule, starting session without questions", zap.String("video_id", videoID))
		groups = nil
	}

	engine, err := domain.NewQuestionSyncEngine(groups)
	if err != nil {
		return nil, err
	}

	hs := &hostedSession{
		videoID: videoID,
		remote:  media.NewRemoteControl(),
		overlay: &player.OverlayState{},
	}
	id := s.newID()
	hs.session = player.NewSession(id, engine, hs.remote, hs.overlay)

	s.mu.Lock()
	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		s.mu.Unlock()
		return nil, domain.NewSessionLimitError(s.cfg.MaxSessions)
	}
	s.sessions[id] = hs
	s.mu.Unlock()

	logger.Get().Info("Playback session started",
		zap.String("session_id", id),
		zap.String("video_id", videoID),
		zap.Int("groups", len(groups)),
	)

	action, err := hs.session.Tick(ctx)
	if err != nil {
		return nil, err
	}
	return toPlaybackResponse(id, hs, action), nil
}

func (s *playbackService) ReportPosition(ctx context.Context, sessionID string, position time.Duration) (*dto.PlaybackResponse, error) {
	hs, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	hs.remote.Report(position)
	action, err := hs.session.Tick(ctx)
	if err != nil {
		return nil, err
	}
	return toPlaybackResponse(sessionID, hs, action), nil
}

func (s *playbackService) SubmitAnswer(ctx context.Context, sessionID, answer string) (*dto.PlaybackResponse, error) {
	hs, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	action, err := hs.session.Answer(ctx, answer)
	if err != nil {
		return nil, err
	}
	if action.Kind == domain.ActionShowFeedback {
		logger.Get().Debug("Wrong answer",
			zap.String("session_id", sessionID),
			zap.String("answer", answer),
		)
	}
	return toPlaybackResponse(sessionID, hs, action), nil
}

func (s *playbackService) GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	hs, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	progress, err := hs.session.Progress()
	if err != nil {
		return nil, err
	}
	active, err := hs.session.ActiveQuestion()
	if err != nil {
		return nil, err
	}

	resp := &dto.SessionResponse{
		SessionID:      sessionID,
		VideoID:        hs.videoID,
		PlaybackState:  string(hs.remote.State()),
		ActiveQuestion: toQuestionResponse(active),
		Groups:         make([]dto.GroupProgressResponse, 0, len(progress.Groups)),
		Exhausted:      progress.Exhausted,
		LastSeen:       hs.session.LastSeen(),
	}
	if progress.ActiveDueAt != nil {
		ms := progress.ActiveDueAt.Milliseconds()
		resp.ActiveDueAtMs = &ms
	}
	for _, g := range progress.Groups {
		resp.Groups = append(resp.Groups, dto.GroupProgressResponse{
			DueAtMs:       g.DueAt.Milliseconds(),
			Answered:      g.Answered,
			QuestionCount: g.QuestionCount,
		})
	}
	return resp, nil
}

func (s *playbackService) EndSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return domain.NewSessionNotFoundError(sessionID)
	}
	delete(s.sessions, sessionID)
	logger.Get().Info("Playback session ended", zap.String("session_id", sessionID))
	return nil
}

// ReapExpired drops sessions idle for longer than the session TTL and
// returns how many were dropped.
func (s *playbackService) ReapExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for id, hs := range s.sessions {
		if now.Sub(hs.session.LastSeen()) > s.cfg.SessionTTL {
			delete(s.sessions, id)
			reaped++
		}
	}
	if reaped > 0 {
		logger.Get().Info("Expired playback sessions reaped",
			zap.Int("reaped", reaped),
			zap.Int("remaining", len(s.sessions)),
		)
	}
	return reaped
}

func (s *playbackService) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *playbackService) full() bool {
	if s.cfg.MaxSessions <= 0 {
		return false
	}
	return s.ActiveSessions() >= s.cfg.MaxSessions
}

func (s *playbackService) lookup(sessionID string) (*hostedSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hs, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return hs, nil
}

func toPlaybackResponse(sessionID string, hs *hostedSession, action domain.Action) *dto.PlaybackResponse {
	return &dto.PlaybackResponse{
		SessionID: sessionID,
		Action: dto.ActionResponse{
			Type:        string(action.Kind),
			Question:    toQuestionResponse(action.Question),
			WrongAnswer: action.WrongAnswer,
		},
		PlaybackState: string(hs.remote.State()),
	}
}

func toQuestionResponse(q *domain.Question) *dto.QuestionResponse {
	if q == nil {
		return nil
	}
	return &dto.QuestionResponse{
		ID:      q.ID,
		Text:    q.Text,
		Options: append([]string(nil), q.Options...),
	}
}
