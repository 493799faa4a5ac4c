package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Relancio/relancio/internal/domain"
)

const followupColumns = `id, draft_id, followup_number, business_days_after, scheduled_for,
	status, created_at, processed_at, cancelled_at, error_message, cancellation_reason, draft_id_created`

// FollowupTaskRepository implements domain.FollowupTaskRepository on
// PostgreSQL.
type FollowupTaskRepository struct {
	db    *sql.DB
	table string
}

// NewFollowupTaskRepository creates a new FollowupTaskRepository
func NewFollowupTaskRepository(db *sql.DB, table string) domain.FollowupTaskRepository {
	return &FollowupTaskRepository{db: db, table: table}
}

func scanFollowupTask(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.FollowupTask, error) {
	var t domain.FollowupTask
	err := scanner.Scan(
		&t.ID,
		&t.DraftID,
		&t.FollowupNumber,
		&t.BusinessDaysAfter,
		&t.ScheduledFor,
		&t.Status,
		&t.CreatedAt,
		&t.ProcessedAt,
		&t.CancelledAt,
		&t.ErrorMessage,
		&t.CancellationReason,
		&t.DraftIDCreated,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateBatch persists all tasks in a single transaction
func (r *FollowupTaskRepository) CreateBatch(ctx context.Context, tasks []*domain.FollowupTask) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	insertBuilder := psql.
		Insert(r.table).
		Columns("id", "draft_id", "followup_number", "business_days_after", "scheduled_for", "status", "created_at")

	for _, task := range tasks {
		if task.ID == "" {
			task.ID = uuid.New().String()
		}
		if task.Status == "" {
			task.Status = domain.FollowupStatusScheduled
		}
		task.CreatedAt = now

		insertBuilder = insertBuilder.Values(
			task.ID, task.DraftID, task.FollowupNumber, task.BusinessDaysAfter,
			task.ScheduledFor, task.Status, task.CreatedAt,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert followup tasks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a task by its ID, returning nil when it does not exist
func (r *FollowupTaskRepository) GetByID(ctx context.Context, id string) (*domain.FollowupTask, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, followupColumns, r.table)

	task, err := scanFollowupTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get followup task: %w", err)
	}
	return task, nil
}

// GetByDraftID retrieves all tasks for a draft, ordered by followup number
func (r *FollowupTaskRepository) GetByDraftID(ctx context.Context, draftID string) ([]*domain.FollowupTask, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE draft_id = $1 ORDER BY followup_number`,
		followupColumns, r.table,
	)
	return r.queryTasks(ctx, query, draftID)
}

// HasTasksForDraft reports whether any task exists for the draft
func (r *FollowupTaskRepository) HasTasksForDraft(ctx context.Context, draftID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE draft_id = $1)`, r.table)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, draftID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check followup tasks: %w", err)
	}
	return exists, nil
}

// GetDue retrieves scheduled tasks whose firing time has passed
func (r *FollowupTaskRepository) GetDue(ctx context.Context, before time.Time) ([]*domain.FollowupTask, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE status = $1 AND scheduled_for <= $2 ORDER BY scheduled_for`,
		followupColumns, r.table,
	)
	return r.queryTasks(ctx, query, domain.FollowupStatusScheduled, before)
}

// GetFailed retrieves all tasks in the failed state
func (r *FollowupTaskRepository) GetFailed(ctx context.Context) ([]*domain.FollowupTask, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE status = $1 ORDER BY scheduled_for`,
		followupColumns, r.table,
	)
	return r.queryTasks(ctx, query, domain.FollowupStatusFailed)
}

// ClaimForProcessing atomically moves a scheduled task into processing.
// A concurrent tick that lost the race gets false back and skips the task.
func (r *FollowupTaskRepository) ClaimForProcessing(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(
		`UPDATE %s SET status = $2 WHERE id = $1 AND status = $3`,
		r.table,
	)

	result, err := r.db.ExecContext(ctx, query, id, domain.FollowupStatusProcessing, domain.FollowupStatusScheduled)
	if err != nil {
		return false, fmt.Errorf("failed to claim followup task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// MarkDone records a successful composer invocation
func (r *FollowupTaskRepository) MarkDone(ctx context.Context, id string, draftIDCreated string) error {
	query := fmt.Sprintf(
		`UPDATE %s SET status = $2, processed_at = $3, draft_id_created = $4, error_message = NULL WHERE id = $1`,
		r.table,
	)

	_, err := r.db.ExecContext(ctx, query, id, domain.FollowupStatusDone, time.Now().UTC(), draftIDCreated)
	if err != nil {
		return fmt.Errorf("failed to mark followup task done: %w", err)
	}
	return nil
}

// MarkFailed records a processing failure
func (r *FollowupTaskRepository) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	query := fmt.Sprintf(
		`UPDATE %s SET status = $2, processed_at = $3, error_message = $4 WHERE id = $1`,
		r.table,
	)

	_, err := r.db.ExecContext(ctx, query, id, domain.FollowupStatusFailed, time.Now().UTC(), errorMessage)
	if err != nil {
		return fmt.Errorf("failed to mark followup task failed: %w", err)
	}
	return nil
}

// MarkCancelled cancels a task with the given reason
func (r *FollowupTaskRepository) MarkCancelled(ctx context.Context, id string, reason string) error {
	query := fmt.Sprintf(
		`UPDATE %s SET status = $2, cancelled_at = $3, cancellation_reason = $4 WHERE id = $1`,
		r.table,
	)

	_, err := r.db.ExecContext(ctx, query, id, domain.FollowupStatusCancelled, time.Now().UTC(), reason)
	if err != nil {
		return fmt.Errorf("failed to cancel followup task: %w", err)
	}
	return nil
}

// MarkScheduled returns a task to the scheduled state, clearing error details
func (r *FollowupTaskRepository) MarkScheduled(ctx context.Context, id string) error {
	query := fmt.Sprintf(
		`UPDATE %s SET status = $2, error_message = NULL, processed_at = NULL WHERE id = $1`,
		r.table,
	)

	_, err := r.db.ExecContext(ctx, query, id, domain.FollowupStatusScheduled)
	if err != nil {
		return fmt.Errorf("failed to reschedule followup task: %w", err)
	}
	return nil
}

// UpdateScheduledFor moves a non-terminal task's firing time
func (r *FollowupTaskRepository) UpdateScheduledFor(ctx context.Context, id string, scheduledFor time.Time) (bool, error) {
	query := fmt.Sprintf(
		`UPDATE %s SET scheduled_for = $2 WHERE id = $1 AND status IN ($3, $4)`,
		r.table,
	)

	result, err := r.db.ExecContext(ctx, query, id, scheduledFor,
		domain.FollowupStatusScheduled, domain.FollowupStatusProcessing)
	if err != nil {
		return false, fmt.Errorf("failed to shift followup task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DraftIDsWithTasks maps each draft id that has tasks to its task ids
func (r *FollowupTaskRepository) DraftIDsWithTasks(ctx context.Context) (map[string][]string, error) {
	query := fmt.Sprintf(`SELECT draft_id, id FROM %s ORDER BY draft_id, followup_number`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query followup tasks: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var draftID, taskID string
		if err := rows.Scan(&draftID, &taskID); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result[draftID] = append(result[draftID], taskID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

func (r *FollowupTaskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]*domain.FollowupTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query followup tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.FollowupTask
	for rows.Next() {
		task, err := scanFollowupTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan followup task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}
