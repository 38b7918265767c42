package handler_test

import (
	"context"
	"time"

	"quiz-player/internal/domain"
	"quiz-player/internal/dto"
	"quiz-player/internal/service"
)

// --- Manual Mocks ---

// MockPlaybackService
type MockPlaybackService struct {
	StartSessionFunc   func(ctx context.Context, videoID string) (*dto.PlaybackResponse, error)
	ReportPositionFunc func(ctx context.Context, sessionID string, position time.Duration) (*dto.PlaybackResponse, error)
	SubmitAnswerFunc   func(ctx context.Context, sessionID, answer string) (*dto.PlaybackResponse, error)
	GetSessionFunc     func(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	EndSessionFunc     func(ctx context.Context, sessionID string) error
	Active             int
}

func (m *MockPlaybackService) StartSession(ctx context.Context, videoID string) (*dto.PlaybackResponse, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx, videoID)
	}
	panic("MockPlaybackService.StartSessionFunc not implemented")
}
func (m *MockPlaybackService) ReportPosition(ctx context.Context, sessionID string, position time.Duration) (*dto.PlaybackResponse, error) {
	if m.ReportPositionFunc != nil {
		return m.ReportPositionFunc(ctx, sessionID, position)
	}
	panic("MockPlaybackService.ReportPositionFunc not implemented")
}
func (m *MockPlaybackService) SubmitAnswer(ctx context.Context, sessionID, answer string) (*dto.PlaybackResponse, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, sessionID, answer)
	}
	panic("MockPlaybackService.SubmitAnswerFunc not implemented")
}
func (m *MockPlaybackService) GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	panic("MockPlaybackService.GetSessionFunc not implemented")
}
func (m *MockPlaybackService) EndSession(ctx context.Context, sessionID string) error {
	if m.EndSessionFunc != nil {
		return m.EndSessionFunc(ctx, sessionID)
	}
	panic("MockPlaybackService.EndSessionFunc not implemented")
}
func (m *MockPlaybackService) ReapExpired(now time.Time) int { return 0 }
func (m *MockPlaybackService) ActiveSessions() int           { return m.Active }

var _ service.PlaybackService = (*MockPlaybackService)(nil)

// MockScheduleService
type MockScheduleService struct {
	GetScheduleFunc    func(ctx context.Context, videoID string) ([]domain.QuestionGroup, error)
	SaveScheduleFunc   func(ctx context.Context, videoID string, groups []domain.QuestionGroup) ([]domain.QuestionGroup, error)
	DeleteScheduleFunc func(ctx context.Context, videoID string) error
}

func (m *MockScheduleService) GetSchedule(ctx context.Context, videoID string) ([]domain.QuestionGroup, error) {
	if m.GetScheduleFunc != nil {
		return m.GetScheduleFunc(ctx, videoID)
	}
	panic("MockScheduleService.GetScheduleFunc not implemented")
}
func (m *MockScheduleService) SaveSchedule(ctx context.Context, videoID string, groups []domain.QuestionGroup) ([]domain.QuestionGroup, error) {
	if m.SaveScheduleFunc != nil {
		return m.SaveScheduleFunc(ctx, videoID, groups)
	}
	panic("MockScheduleService.SaveScheduleFunc not implemented")
}
func (m *MockScheduleService) DeleteSchedule(ctx context.Context, videoID string) error {
	if m.DeleteScheduleFunc != nil {
		return m.DeleteScheduleFunc(ctx, videoID)
	}
	panic("MockScheduleService.DeleteScheduleFunc not implemented")
}

var _ service.ScheduleService = (*MockScheduleService)(nil)

// MockAuthService accepts the token "admin-token" only.
type MockAuthService struct{}

func (m *MockAuthService) CreateJWT(ctx context.Context, subject, role string, ttl time.Duration) (string, error) {
	panic("MockAuthService.CreateJWT not implemented")
}
func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if tokenString == "admin-token" {
		claims := &dto.AuthClaims{Role: service.RoleAdmin}
		claims.Subject = "ops"
		return claims, nil
	}
	return nil, service.ErrInvalidJWTToken
}

// MockCache only implements Ping.
type MockCache struct {
	PingErr error
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	return "", domain.ErrCacheMiss
}
func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return nil
}
func (m *MockCache) Delete(ctx context.Context, key string) error { return nil }
func (m *MockCache) Ping(ctx context.Context) error               { return m.PingErr }
