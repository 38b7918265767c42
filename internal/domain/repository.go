package domain

import "context"

// ScheduleRepository defines the interface for schedule persistence
type ScheduleRepository interface {
	// GetGroupsByVideoID returns the groups of a video ordered by timestamp.
	// An empty slice means the video has no schedule.
	GetGroupsByVideoID(ctx context.Context, videoID string) ([]QuestionGroup, error)

	// ReplaceSchedule deletes the video's groups and stores the given ones.
	ReplaceSchedule(ctx context.Context, videoID string, groups []QuestionGroup) error

	// DeleteByVideoID removes every group of the video.
	DeleteByVideoID(ctx context.Context, videoID string) error
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
