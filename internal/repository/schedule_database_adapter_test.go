package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"quiz-player/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockDriverName = "sqlmock"

func init() {
	// Match the Oracle named bind style so queries reach sqlmock unchanged.
	sqlx.BindDriver(mockDriverName, sqlx.NAMED)
}

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, mockDriverName), mock
}

var scheduleColumns = []string{"group_id", "due_at_ms", "question_id", "seq", "question_text", "options", "correct_answer"}

func TestGetGroupsByVideoID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewScheduleDatabaseAdapter(db)

	rows := sqlmock.NewRows(scheduleColumns).
		AddRow("G1", int64(10000), "Q1", 0, "What is the capital of France?", `["Paris","London"]`, "Paris").
		AddRow("G1", int64(10000), "Q2", 1, "Who won the 2018 FIFA World Cup?", `["Brazil","Germany"]`, "Germany").
		AddRow("G2", int64(20000), "Q3", 0, "What is the capital city of Sweden?", `["Stockholm","Berlin"]`, "Stockholm")

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE g.video_id = :1`)).WithArgs("bunny").WillReturnRows(rows)

	groups, err := repo.GetGroupsByVideoID(context.Background(), "bunny")

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "G1", groups[0].ID)
	assert.Equal(t, 10*time.Second, groups[0].DueAt)
	require.Len(t, groups[0].Questions, 2)
	assert.Equal(t, "Paris", groups[0].Questions[0].CorrectAnswer)
	assert.Equal(t, []string{"Brazil", "Germany"}, groups[0].Questions[1].Options)
	assert.Equal(t, 20*time.Second, groups[1].DueAt)
	assert.Equal(t, "Q3", groups[1].Questions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGroupsByVideoID_Empty(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewScheduleDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM question_groups g`)).WithArgs("none").
		WillReturnRows(sqlmock.NewRows(scheduleColumns))

	groups, err := repo.GetGroupsByVideoID(context.Background(), "none")

	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGroupsByVideoID_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewScheduleDatabaseAdapter(db)

	dbErr := errors.New("ORA-03113")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM question_groups g`)).WillReturnError(dbErr)

	groups, err := repo.GetGroupsByVideoID(context.Background(), "bunny")

	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, groups)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceSchedule_InTransaction(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewScheduleDatabaseAdapter(db)
	txManager := NewTransactionManagerAdapter(db)

	groups := []domain.QuestionGroup{
		{
			DueAt: 10 * time.Second,
			Questions: []domain.Question{
				{Text: "q1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
				{Text: "q2", Options: []string{"c", "d"}, CorrectAnswer: "d"},
			},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM question_groups WHERE video_id = :1`)).
		WithArgs("bunny").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO question_groups`)).
		WithArgs(sqlmock.AnyArg(), "bunny", int64(10000), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO questions`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 0, "q1", `["a","b"]`, "a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO questions`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 1, "q2", `["c","d"]`, "d").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.ReplaceSchedule(ctx, "bunny", groups)
	})

	require.NoError(t, err)
	assert.Len(t, groups[0].ID, 26)
	assert.Len(t, groups[0].Questions[1].ID, 26)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceSchedule_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewScheduleDatabaseAdapter(db)
	txManager := NewTransactionManagerAdapter(db)

	groups := []domain.QuestionGroup{
		{DueAt: time.Second, Questions: []domain.Question{{Text: "q", Options: []string{"a"}, CorrectAnswer: "a"}}},
	}
	insertErr := errors.New("ORA-00001: unique constraint violated")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM question_groups`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO question_groups`)).WillReturnError(insertErr)
	mock.ExpectRollback()

	err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.ReplaceSchedule(ctx, "bunny", groups)
	})

	assert.ErrorIs(t, err, insertErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByVideoID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewScheduleDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM question_groups WHERE video_id = :1`)).
		WithArgs("bunny").WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.DeleteByVideoID(context.Background(), "bunny"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor(t *testing.T) {
	db, mock := setupTestDB(t)

	assert.Equal(t, DBTX(db), GetExecutor(context.Background(), db))

	mock.ExpectBegin()
	tx, err := db.Beginx()
	require.NoError(t, err)
	ctx := context.WithValue(context.Background(), TransactionContextKey, tx)
	assert.Equal(t, DBTX(tx), GetExecutor(ctx, db))
}
