package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"quiz-player/internal/config"
	"quiz-player/internal/domain"
	"quiz-player/internal/player/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPlaybackService(t *testing.T, maxSessions int) (*playbackService, *MockScheduleService) {
	t.Helper()
	schedules := new(MockScheduleService)
	svc := NewPlaybackService(schedules, config.PlaybackConfig{
		SessionTTL:  time.Hour,
		MaxSessions: maxSessions,
	}).(*playbackService)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("S%d", n)
	}
	return svc, schedules
}

func TestPlayback_FullRun(t *testing.T) {
	svc, schedules := newTestPlaybackService(t, 0)
	ctx := context.Background()
	schedules.On("GetSchedule", ctx, "bunny").Return(capitalsGroups(), nil).Once()

	resp, err := svc.StartSession(ctx, "bunny")
	require.NoError(t, err)
	assert.Equal(t, "S1", resp.SessionID)
	assert.Equal(t, string(domain.ActionNone), resp.Action.Type)
	assert.Equal(t, string(media.StatePlaying), resp.PlaybackState)

	resp, err = svc.ReportPosition(ctx, "S1", 9*time.Second)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ActionNone), resp.Action.Type)

	// A seek past both groups shows the earliest one first.
	resp, err = svc.ReportPosition(ctx, "S1", 25*time.Second)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ActionShowQuestion), resp.Action.Type)
	require.NotNil(t, resp.Action.Question)
	assert.Equal(t, "What is the capital of France?", resp.Action.Question.Text)
	assert.Equal(t, string(media.StatePaused), resp.PlaybackState)

	resp, err = svc.SubmitAnswer(ctx, "S1", "London")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ActionShowFeedback), resp.Action.Type)
	assert.Equal(t, "London", resp.Action.WrongAnswer)

	resp, err = svc.SubmitAnswer(ctx, "S1", "Paris")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ActionShowQuestion), resp.Action.Type)
	assert.Equal(t, "Who won the 2018 FIFA World Cup?", resp.Action.Question.Text)

	resp, err = svc.SubmitAnswer(ctx, "S1", "Germany")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ActionResumePlayback), resp.Action.Type)
	assert.Equal(t, string(media.StatePlaying), resp.PlaybackState)

	resp, err = svc.ReportPosition(ctx, "S1", 26*time.Second)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ActionShowQuestion), resp.Action.Type)
	assert.Equal(t, "What is the capital city of Sweden?", resp.Action.Question.Text)

	session, err := svc.GetSession(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "bunny", session.VideoID)
	assert.Equal(t, string(media.StatePaused), session.PlaybackState)
	require.NotNil(t, session.ActiveQuestion)
	require.NotNil(t, session.ActiveDueAtMs)
	assert.Equal(t, int64(20000), *session.ActiveDueAtMs)
	require.Len(t, session.Groups, 2)
	assert.Equal(t, 2, session.Groups[0].Answered)
	assert.Equal(t, 0, session.Groups[1].Answered)
	assert.False(t, session.Exhausted)

	resp, err = svc.SubmitAnswer(ctx, "S1", "Stockholm")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ActionResumePlayback), resp.Action.Type)

	session, err = svc.GetSession(ctx, "S1")
	require.NoError(t, err)
	assert.True(t, session.Exhausted)
	assert.Nil(t, session.ActiveQuestion)
}

func TestPlayback_AnswersNeverLeakCorrectAnswer(t *testing.T) {
	svc, schedules := newTestPlaybackService(t, 0)
	ctx := context.Background()
	schedules.On("GetSchedule", ctx, "bunny").Return(capitalsGroups(), nil).Once()

	_, err := svc.StartSession(ctx, "bunny")
	require.NoError(t, err)
	resp, err := svc.ReportPosition(ctx, "S1", 10*time.Second)
	require.NoError(t, err)

	assert.Equal(t, []string{"Paris", "London", "Berlin", "Madrid"}, resp.Action.Question.Options)
	assert.Equal(t, "Q1", resp.Action.Question.ID)
}

func TestPlayback_EmptyAnswerGetsFeedback(t *testing.T) {
	svc, schedules := newTestPlaybackService(t, 0)
	ctx := context.Background()
	schedules.On("GetSchedule", ctx, "bunny").Return(capitalsGroups(), nil).Once()

	_, err := svc.StartSession(ctx, "bunny")
	require.NoError(t, err)
	_, err = svc.ReportPosition(ctx, "S1", 10*time.Second)
	require.NoError(t, err)

	resp, err := svc.SubmitAnswer(ctx, "S1", "")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ActionShowFeedback), resp.Action.Type)
	require.NotNil(t, resp.Action.Question)
	assert.Equal(t, "What is the capital of France?", resp.Action.Question.Text)
	assert.Empty(t, resp.Action.WrongAnswer)
	assert.Equal(t, string(media.StatePaused), resp.PlaybackState)
}

func TestPlayback_AnswerWithoutQuestion(t *testing.T) {
	svc, schedules := newTestPlaybackService(t, 0)
	ctx := context.Background()
	schedules.On("GetSchedule", ctx, "bunny").Return(capitalsGroups(), nil).Once()

	_, err := svc.StartSession(ctx, "bunny")
	require.NoError(t, err)

	resp, err := svc.SubmitAnswer(ctx, "S1", "Paris")

	require.NoError(t, err)
	assert.Equal(t, string(domain.ActionNone), resp.Action.Type)
	assert.Equal(t, string(media.StatePlaying), resp.PlaybackState)
}

func TestPlayback_VideoWithoutSchedule(t *testing.T) {
	svc, schedules := newTestPlaybackService(t, 0)
	ctx := context.Background()
	schedules.On("GetSchedule", ctx, "plain").Return(nil, domain.NewScheduleNotFoundError("plain")).Once()

	_, err := svc.StartSession(ctx, "plain")
	require.NoError(t, err)

	resp, err := svc.ReportPosition(ctx, "S1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ActionNone), resp.Action.Type)

	session, err := svc.GetSession(ctx, "S1")
	require.NoError(t, err)
	assert.True(t, session.Exhausted)
	assert.Empty(t, session.Groups)
}

func TestPlayback_ScheduleLoadError(t *testing.T) {
	svc, schedules := newTestPlaybackService(t, 0)
	ctx := context.Background()
	loadErr := domain.NewInternalError("Failed to load schedule", errors.New("db down"))
	schedules.On("GetSchedule", ctx, "bunny").Return(nil, loadErr).Once()

	resp, err := svc.StartSession(ctx, "bunny")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, 0, svc.ActiveSessions())
}

func TestPlayback_SessionLimit(t *testing.T) {
	svc, schedules := newTestPlaybackService(t, 1)
	ctx := context.Background()
	schedules.On("GetSchedule", ctx, mock.Anything).Return(capitalsGroups(), nil)

	_, err := svc.StartSession(ctx, "bunny")
	require.NoError(t, err)

	_, err = svc.StartSession(ctx, "bunny")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeSessionLimit, domainErr.Code)

	require.NoError(t, svc.EndSession(ctx, "S1"))
	_, err = svc.StartSession(ctx, "bunny")
	assert.NoError(t, err)
}

func TestPlayback_UnknownSession(t *testing.T) {
	svc, _ := newTestPlaybackService(t, 0)
	ctx := context.Background()

	_, err := svc.ReportPosition(ctx, "missing", time.Second)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.SubmitAnswer(ctx, "missing", "Paris")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.ErrorIs(t, svc.EndSession(ctx, "missing"), domain.ErrSessionNotFound)
}

func TestPlayback_ReapExpired(t *testing.T) {
	svc, schedules := newTestPlaybackService(t, 0)
	ctx := context.Background()
	schedules.On("GetSchedule", ctx, mock.Anything).Return(capitalsGroups(), nil)

	_, err := svc.StartSession(ctx, "bunny")
	require.NoError(t, err)
	_, err = svc.StartSession(ctx, "bunny")
	require.NoError(t, err)
	require.Equal(t, 2, svc.ActiveSessions())

	assert.Equal(t, 0, svc.ReapExpired(time.Now()))
	assert.Equal(t, 2, svc.ReapExpired(time.Now().Add(2*time.Hour)))
	assert.Equal(t, 0, svc.ActiveSessions())
}
