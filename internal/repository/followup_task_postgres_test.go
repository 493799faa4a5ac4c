package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Relancio/relancio/internal/domain"
	"github.com/Relancio/relancio/internal/repository/testutil"
)

func followupRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "draft_id", "followup_number", "business_days_after", "scheduled_for",
		"status", "created_at", "processed_at", "cancelled_at", "error_message",
		"cancellation_reason", "draft_id_created",
	})
}

func addFollowupRow(rows *sqlmock.Rows, id string, number, days int, status domain.FollowupStatus) *sqlmock.Rows {
	scheduledFor := time.Date(2024, time.January, 11, 1, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, "draft-1", number, days, scheduledFor,
		string(status), createdAt, nil, nil, nil,
		nil, nil,
	)
}

func TestFollowupTaskRepository_CreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts all tasks in one transaction", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewFollowupTaskRepository(db, "email_followups")

		tasks := make([]*domain.FollowupTask, 0, len(domain.FollowupSchedule))
		for _, days := range domain.FollowupSchedule {
			tasks = append(tasks, &domain.FollowupTask{
				DraftID:           "draft-1",
				FollowupNumber:    domain.DaysToFollowupNumber[days],
				BusinessDaysAfter: days,
				ScheduledFor:      time.Date(2024, time.January, 11, 1, 0, 0, 0, time.UTC),
			})
		}

		args := make([]driver.Value, 0, len(tasks)*7)
		for range tasks {
			for i := 0; i < 7; i++ {
				args = append(args, sqlmock.AnyArg())
			}
		}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO email_followups`).
			WithArgs(args...).
			WillReturnResult(sqlmock.NewResult(0, int64(len(tasks))))
		mock.ExpectCommit()

		err := repo.CreateBatch(ctx, tasks)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())

		for _, task := range tasks {
			assert.NotEmpty(t, task.ID, "ids are generated on insert")
			assert.Equal(t, domain.FollowupStatusScheduled, task.Status)
		}
	})

	t.Run("handles empty batch", func(t *testing.T) {
		db, _, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewFollowupTaskRepository(db, "email_followups")
		assert.NoError(t, repo.CreateBatch(ctx, nil))
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewFollowupTaskRepository(db, "email_followups")

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO email_followups`).
			WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		err := repo.CreateBatch(ctx, []*domain.FollowupTask{{DraftID: "draft-1"}})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFollowupTaskRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns task when found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewFollowupTaskRepository(db, "email_followups")

		mock.ExpectQuery(`SELECT (.+) FROM email_followups WHERE id`).
			WithArgs("task-1").
			WillReturnRows(addFollowupRow(followupRows(), "task-1", 1, 3, domain.FollowupStatusScheduled))

		task, err := repo.GetByID(ctx, "task-1")
		require.NoError(t, err)
		require.NotNil(t, task)
		assert.Equal(t, "draft-1", task.DraftID)
		assert.Equal(t, 3, task.BusinessDaysAfter)
	})

	t.Run("returns nil when not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewFollowupTaskRepository(db, "email_followups")

		mock.ExpectQuery(`SELECT (.+) FROM email_followups WHERE id`).
			WithArgs("missing").
			WillReturnRows(followupRows())

		task, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, task)
	})
}

func TestFollowupTaskRepository_GetDue(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewFollowupTaskRepository(db, "email_followups")

	now := time.Date(2024, time.January, 11, 6, 0, 0, 0, time.UTC)
	rows := addFollowupRow(followupRows(), "task-1", 1, 3, domain.FollowupStatusScheduled)
	rows = addFollowupRow(rows, "task-2", 2, 7, domain.FollowupStatusScheduled)

	mock.ExpectQuery(`SELECT (.+) FROM email_followups WHERE status = (.+) AND scheduled_for <=`).
		WithArgs(string(domain.FollowupStatusScheduled), now).
		WillReturnRows(rows)

	tasks, err := repo.GetDue(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowupTaskRepository_ClaimForProcessing(t *testing.T) {
	ctx := context.Background()

	t.Run("claims a scheduled task", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewFollowupTaskRepository(db, "email_followups")

		mock.ExpectExec(`UPDATE email_followups SET status = (.+) WHERE id = (.+) AND status =`).
			WithArgs("task-1", string(domain.FollowupStatusProcessing), string(domain.FollowupStatusScheduled)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		claimed, err := repo.ClaimForProcessing(ctx, "task-1")
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("loses the race when another tick claimed first", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewFollowupTaskRepository(db, "email_followups")

		mock.ExpectExec(`UPDATE email_followups SET status`).
			WithArgs("task-1", string(domain.FollowupStatusProcessing), string(domain.FollowupStatusScheduled)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		claimed, err := repo.ClaimForProcessing(ctx, "task-1")
		require.NoError(t, err)
		assert.False(t, claimed)
	})
}

func TestFollowupTaskRepository_MarkDone(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewFollowupTaskRepository(db, "email_followups")

	mock.ExpectExec(`UPDATE email_followups SET status = (.+), processed_at = (.+), draft_id_created =`).
		WithArgs("task-1", string(domain.FollowupStatusDone), sqlmock.AnyArg(), "draft-new").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkDone(context.Background(), "task-1", "draft-new")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowupTaskRepository_MarkCancelled(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewFollowupTaskRepository(db, "email_followups")

	mock.ExpectExec(`UPDATE email_followups SET status = (.+), cancelled_at = (.+), cancellation_reason =`).
		WithArgs("task-1", string(domain.FollowupStatusCancelled), sqlmock.AnyArg(), domain.CancellationReasonReplied).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkCancelled(context.Background(), "task-1", domain.CancellationReasonReplied)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowupTaskRepository_UpdateScheduledFor(t *testing.T) {
	ctx := context.Background()
	newTime := time.Date(2024, time.February, 1, 1, 0, 0, 0, time.UTC)

	t.Run("shifts a live task", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewFollowupTaskRepository(db, "email_followups")

		mock.ExpectExec(`UPDATE email_followups SET scheduled_for`).
			WithArgs("task-1", newTime,
				string(domain.FollowupStatusScheduled), string(domain.FollowupStatusProcessing)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		shifted, err := repo.UpdateScheduledFor(ctx, "task-1", newTime)
		require.NoError(t, err)
		assert.True(t, shifted)
	})

	t.Run("does not shift a terminal task", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewFollowupTaskRepository(db, "email_followups")

		mock.ExpectExec(`UPDATE email_followups SET scheduled_for`).
			WithArgs("task-1", newTime,
				string(domain.FollowupStatusScheduled), string(domain.FollowupStatusProcessing)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		shifted, err := repo.UpdateScheduledFor(ctx, "task-1", newTime)
		require.NoError(t, err)
		assert.False(t, shifted)
	})
}

func TestFollowupTaskRepository_DraftIDsWithTasks(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewFollowupTaskRepository(db, "email_followups")

	rows := sqlmock.NewRows([]string{"draft_id", "id"}).
		AddRow("draft-1", "task-1").
		AddRow("draft-1", "task-2").
		AddRow("draft-2", "task-3")

	mock.ExpectQuery(`SELECT draft_id, id FROM email_followups`).
		WillReturnRows(rows)

	result, err := repo.DraftIDsWithTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1", "task-2"}, result["draft-1"])
	assert.Equal(t, []string{"task-3"}, result["draft-2"])
}
