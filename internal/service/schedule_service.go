package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-player/internal/cache"
	"quiz-player/internal/config"
	"quiz-player/internal/domain"
	"quiz-player/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultScheduleTTL = 10 * time.Minute

// ScheduleService defines the interface for question schedule operations
type ScheduleService interface {
	GetSchedule(ctx context.Context, videoID string) ([]domain.QuestionGroup, error)
	SaveSchedule(ctx context.Context, videoID string, groups []domain.QuestionGroup) ([]domain.QuestionGroup, error)
	DeleteSchedule(ctx context.Context, videoID string) error
}

type scheduleService struct {
	repo      domain.ScheduleRepository
	txManager domain.TransactionManager
	cache     domain.Cache
	cfg       *config.Config
	sfGroup   singleflight.Group
}

// NewScheduleService creates a new ScheduleService. cache may be nil.
func NewScheduleService(
	repo domain.ScheduleRepository,
	txManager domain.TransactionManager,
	cache domain.Cache,
	cfg *config.Config,
) ScheduleService {
	return &scheduleService{
		repo:      repo,
		txManager: txManager,
		cache:     cache,
		cfg:       cfg,
	}
}

// GetSchedule returns the groups of a video in timestamp order, reading
// through the cache. Concurrent misses for one video share a single query.
func (s *scheduleService) GetSchedule(ctx context.Context, videoID string) ([]domain.QuestionGroup, error) {
	cacheKey := cache.ScheduleKey(videoID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			var groups []domain.QuestionGroup
			errUnmarshal := json.Unmarshal([]byte(cached), &groups)
			if errUnmarshal == nil {
				logger.Get().Debug("Schedule cache hit", zap.String("video_id", videoID))
				return groups, nil
			}
			logger.Get().Warn("Failed to decode cached schedule, reloading",
				zap.String("video_id", videoID), zap.Error(errUnmarshal))
		case errors.Is(err, domain.ErrCacheMiss):
			logger.Get().Debug("Schedule cache miss", zap.String("video_id", videoID))
		default:
			logger.Get().Warn("Schedule cache read failed", zap.String("video_id", videoID), zap.Error(err))
		}
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		// Waiters share this load, so one caller going away must not fail it.
		loadCtx := context.WithoutCancel(ctx)
		groups, err := s.repo.GetGroupsByVideoID(loadCtx, videoID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to load schedule", err)
		}
		if len(groups) == 0 {
			return nil, domain.NewScheduleNotFoundError(videoID)
		}
		s.storeInCache(loadCtx, cacheKey, groups)
		return groups, nil
	})
	if err != nil {
		return nil, err
	}
	return copyGroups(res.([]domain.QuestionGroup)), nil
}

// SaveSchedule validates the groups and replaces the stored schedule of the
// video. It returns the groups in timestamp order with their new IDs.
func (s *scheduleService) SaveSchedule(ctx context.Context, videoID string, groups []domain.QuestionGroup) ([]domain.QuestionGroup, error) {
	if len(groups) == 0 {
		return nil, domain.NewInvalidScheduleError("schedule must contain at least one group")
	}
	for _, g := range groups {
		// due_at_ms is the unique key in storage.
		if g.DueAt%time.Millisecond != 0 {
			return nil, domain.NewInvalidScheduleError(
				fmt.Sprintf("group due at %s is finer than one millisecond", g.DueAt))
		}
	}
	schedule, err := domain.NewSchedule(groups)
	if err != nil {
		return nil, err
	}
	ordered := schedule.Groups()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceSchedule(txCtx, videoID, ordered)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to save schedule", err)
	}

	s.invalidate(ctx, videoID)
	logger.Get().Info("Schedule saved",
		zap.String("video_id", videoID),
		zap.Int("groups", len(ordered)),
	)
	return ordered, nil
}

// DeleteSchedule removes the schedule of a video.
func (s *scheduleService) DeleteSchedule(ctx context.Context, videoID string) error {
	if err := s.repo.DeleteByVideoID(ctx, videoID); err != nil {
		return domain.NewInternalError("Failed to delete schedule", err)
	}
	s.invalidate(ctx, videoID)
	logger.Get().Info("Schedule deleted", zap.String("video_id", videoID))
	return nil
}

func (s *scheduleService) storeInCache(ctx context.Context, key string, groups []domain.QuestionGroup) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(groups)
	if err != nil {
		logger.Get().Error("Failed to encode schedule for cache", zap.String("key", key), zap.Error(err))
		return
	}
	ttl := defaultScheduleTTL
	if s.cfg != nil {
		ttl = s.cfg.ParseTTLStringOrDefault(s.cfg.CacheTTLs.Schedule, defaultScheduleTTL)
	}
	if err := s.cache.Set(ctx, key, string(data), ttl); err != nil {
		logger.Get().Warn("Failed to cache schedule", zap.String("key", key), zap.Error(err))
	}
}

func (s *scheduleService) invalidate(ctx context.Context, videoID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.ScheduleKey(videoID)); err != nil {
		logger.Get().Warn("Failed to invalidate schedule cache", zap.String("video_id", videoID), zap.Error(err))
	}
}

// copyGroups gives every caller its own questions slices; singleflight shares
// one result between waiters.
func copyGroups(groups []domain.QuestionGroup) []domain.QuestionGroup {
	out := make([]domain.QuestionGroup, len(groups))
	for i, g := range groups {
		out[i] = g
		out[i].Questions = make([]domain.Question, len(g.Questions))
		for j, q := range g.Questions {
			q.Options = append([]string(nil), q.Options...)
			out[i].Questions[j] = q
		}
	}
	return out
}
