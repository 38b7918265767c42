package service

import (
	"context"
	"time"

	"quiz-player/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockScheduleRepository ---
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetGroupsByVideoID(ctx context.Context, videoID string) ([]domain.QuestionGroup, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionGroup), args.Error(1)
}

func (m *MockScheduleRepository) ReplaceSchedule(ctx context.Context, videoID string, groups []domain.QuestionGroup) error {
	args := m.Called(ctx, videoID, groups)
	return args.Error(0)
}

func (m *MockScheduleRepository) DeleteByVideoID(ctx context.Context, videoID string) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

var _ domain.ScheduleRepository = (*MockScheduleRepository)(nil)

// --- MockTransactionManager ---
// Runs fn directly; the returned error is fn's unless one is configured.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ domain.Cache = (*MockCache)(nil)

// --- MockScheduleService ---
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) GetSchedule(ctx context.Context, videoID string) ([]domain.QuestionGroup, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionGroup), args.Error(1)
}

func (m *MockScheduleService) SaveSchedule(ctx context.Context, videoID string, groups []domain.QuestionGroup) ([]domain.QuestionGroup, error) {
	args := m.Called(ctx, videoID, groups)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionGroup), args.Error(1)
}

func (m *MockScheduleService) DeleteSchedule(ctx context.Context, videoID string) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

var _ ScheduleService = (*MockScheduleService)(nil)

func capitalsGroups() []domain.QuestionGroup {
	return []domain.QuestionGroup{
		{
			ID:    "G20",
			DueAt: 20 * time.Second,
			Questions: []domain.Question{
				{ID: "Q3", Text: "What is the capital city of Sweden?", Options: []string{"Stockholm", "Oslo"}, CorrectAnswer: "Stockholm"},
			},
		},
		{
			ID:    "G10",
			DueAt: 10 * time.Second,
			Questions: []domain.Question{
				{ID: "Q1", Text: "What is the capital of France?", Options: []string{"Paris", "London", "Berlin", "Madrid"}, CorrectAnswer: "Paris"},
				{ID: "Q2", Text: "Who won the 2018 FIFA World Cup?", Options: []string{"Brazil", "Germany", "Spain", "Argentina"}, CorrectAnswer: "Germany"},
			},
		},
	}
}
