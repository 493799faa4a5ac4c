package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Relancio/relancio/internal/domain"
)

// psql is a Squirrel StatementBuilder configured for PostgreSQL
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const draftColumns = `id, status, sent_at, recipient, x_external_id, version_group_id,
	followup_number, has_reply, no_followup, initial_draft_id, thread_id, message_id,
	original_subject, subject, body, followup_ids, followups_scheduled`

// DraftRepository implements domain.DraftRepository on PostgreSQL. The
// table name is configurable so deployments can share a database.
type DraftRepository struct {
	db    *sql.DB
	table string
}

// NewDraftRepository creates a new DraftRepository
func NewDraftRepository(db *sql.DB, table string) domain.DraftRepository {
	return &DraftRepository{db: db, table: table}
}

func scanDraft(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.Draft, error) {
	var d domain.Draft
	err := scanner.Scan(
		&d.ID,
		&d.Status,
		&d.SentAt,
		&d.To,
		&d.XExternalID,
		&d.VersionGroupID,
		&d.FollowupNumber,
		&d.HasReply,
		&d.NoFollowup,
		&d.InitialDraftID,
		&d.ThreadID,
		&d.MessageID,
		&d.OriginalSubject,
		&d.Subject,
		&d.Body,
		pq.Array(&d.FollowupIDs),
		&d.FollowupsScheduled,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID retrieves a draft by its ID, returning nil when it does not exist
func (r *DraftRepository) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, draftColumns, r.table)

	draft, err := scanDraft(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return draft, nil
}

// GetSentInitialDrafts retrieves all sent drafts that are initial outreach
// emails rather than composed followups
func (r *DraftRepository) GetSentInitialDrafts(ctx context.Context) ([]*domain.Draft, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE status = $1 AND followup_number = 0 ORDER BY sent_at`,
		draftColumns, r.table,
	)
	return r.queryDrafts(ctx, query, domain.DraftStatusSent)
}

// GetSentByExternalID retrieves the sent drafts of one prospect, ordered by
// followup number so the earliest email comes first
func (r *DraftRepository) GetSentByExternalID(ctx context.Context, xExternalID string) ([]*domain.Draft, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE x_external_id = $1 AND status = $2 ORDER BY followup_number`,
		draftColumns, r.table,
	)
	return r.queryDrafts(ctx, query, xExternalID, domain.DraftStatusSent)
}

// SetFollowupIDs records the scheduled task ids on the draft
func (r *DraftRepository) SetFollowupIDs(ctx context.Context, draftID string, followupIDs []string) error {
	query := fmt.Sprintf(
		`UPDATE %s SET followup_ids = $2, followups_scheduled = TRUE, updated_at = NOW() WHERE id = $1`,
		r.table,
	)

	result, err := r.db.ExecContext(ctx, query, draftID, pq.Array(followupIDs))
	if err != nil {
		return fmt.Errorf("failed to set followup ids: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("draft not found: %s", draftID)
	}

	return nil
}

// GetDraftsMissingScheduledFlag retrieves sent initial drafts whose
// followups_scheduled flag never got flipped
func (r *DraftRepository) GetDraftsMissingScheduledFlag(ctx context.Context) ([]*domain.Draft, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE status = $1 AND followup_number = 0 AND followups_scheduled = FALSE`,
		draftColumns, r.table,
	)
	return r.queryDrafts(ctx, query, domain.DraftStatusSent)
}

func (r *DraftRepository) queryDrafts(ctx context.Context, query string, args ...interface{}) ([]*domain.Draft, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*domain.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, draft)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return drafts, nil
}
