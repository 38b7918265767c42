package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-player/internal/domain"
	"quiz-player/internal/repository/models"
	"quiz-player/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	selectScheduleQuery = `SELECT
		g.id "group_id",
		g.due_at_ms "due_at_ms",
		q.id "question_id",
		q.seq "seq",
		q.question_text "question_text",
		q.options "options",
		q.correct_answer "correct_answer"
	FROM question_groups g
	JOIN questions q ON q.group_id = g.id
	WHERE g.video_id = :1
	ORDER BY g.due_at_ms, q.seq`

	deleteGroupsQuery = `DELETE FROM question_groups WHERE video_id = :1`

	insertGroupQuery = `INSERT INTO question_groups (id, video_id, due_at_ms, created_at)
	VALUES (:id, :video_id, :due_at_ms, :created_at)`

	insertQuestionQuery = `INSERT INTO questions (id, group_id, seq, question_text, options, correct_answer)
	VALUES (:id, :group_id, :seq, :question_text, :options, :correct_answer)`
)

// ScheduleDatabaseAdapter implements domain.ScheduleRepository using sqlx.DB
type ScheduleDatabaseAdapter struct {
	db *sqlx.DB
}

// NewScheduleDatabaseAdapter creates a new instance of ScheduleDatabaseAdapter
func NewScheduleDatabaseAdapter(db *sqlx.DB) domain.ScheduleRepository {
	return &ScheduleDatabaseAdapter{db: db}
}

// GetGroupsByVideoID implements domain.ScheduleRepository
func (a *ScheduleDatabaseAdapter) GetGroupsByVideoID(ctx context.Context, videoID string) ([]domain.QuestionGroup, error) {
	var rows []models.ScheduleRow
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, selectScheduleQuery, videoID); err != nil {
		return nil, fmt.Errorf("failed to load schedule for video %s: %w", videoID, err)
	}
	return toDomainGroups(rows), nil
}

// ReplaceSchedule implements domain.ScheduleRepository. Callers should run it
// inside a transaction so a failed insert leaves the old schedule intact.
func (a *ScheduleDatabaseAdapter) ReplaceSchedule(ctx context.Context, videoID string, groups []domain.QuestionGroup) error {
	exec := GetExecutor(ctx, a.db)

	if _, err := exec.ExecContext(ctx, deleteGroupsQuery, videoID); err != nil {
		return fmt.Errorf("failed to delete schedule for video %s: %w", videoID, err)
	}

	now := time.Now()
	for i := range groups {
		groupRow := models.QuestionGroup{
			ID:        util.NewULID(),
			VideoID:   videoID,
			DueAtMs:   groups[i].DueAt.Milliseconds(),
			CreatedAt: now,
		}
		if _, err := exec.NamedExecContext(ctx, insertGroupQuery, groupRow); err != nil {
			return fmt.Errorf("failed to insert group at %dms for video %s: %w", groupRow.DueAtMs, videoID, err)
		}
		groups[i].ID = groupRow.ID

		for seq := range groups[i].Questions {
			q := &groups[i].Questions[seq]
			questionRow := models.Question{
				ID:            util.NewULID(),
				GroupID:       groupRow.ID,
				Seq:           seq,
				QuestionText:  q.Text,
				Options:       models.StringSlice(q.Options),
				CorrectAnswer: q.CorrectAnswer,
			}
			if _, err := exec.NamedExecContext(ctx, insertQuestionQuery, questionRow); err != nil {
				return fmt.Errorf("failed to insert question %d of group %s: %w", seq, groupRow.ID, err)
			}
			q.ID = questionRow.ID
		}
	}
	return nil
}

// DeleteByVideoID implements domain.ScheduleRepository
func (a *ScheduleDatabaseAdapter) DeleteByVideoID(ctx context.Context, videoID string) error {
	if _, err := GetExecutor(ctx, a.db).ExecContext(ctx, deleteGroupsQuery, videoID); err != nil {
		return fmt.Errorf("failed to delete schedule for video %s: %w", videoID, err)
	}
	return nil
}

// toDomainGroups folds joined rows, already ordered by due time and
// sequence, into groups.
func toDomainGroups(rows []models.ScheduleRow) []domain.QuestionGroup {
	groups := make([]domain.QuestionGroup, 0)
	for _, row := range rows {
		if len(groups) == 0 || groups[len(groups)-1].ID != row.GroupID {
			groups = append(groups, domain.QuestionGroup{
				ID:    row.GroupID,
				DueAt: time.Duration(row.DueAtMs) * time.Millisecond,
			})
		}
		g := &groups[len(groups)-1]
		g.Questions = append(g.Questions, domain.Question{
			ID:            row.QuestionID,
			Text:          row.QuestionText,
			Options:       []string(row.Options),
			CorrectAnswer: row.CorrectAnswer,
		})
	}
	return groups
}
