package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_followup_task_repository.go -package mocks github.com/Relancio/relancio/internal/domain FollowupTaskRepository

// FollowupStatus represents the lifecycle state of a followup task.
type FollowupStatus string

const (
	FollowupStatusScheduled FollowupStatus = "scheduled"
	// FollowupStatusProcessing is the transient claim state a processor tick
	// moves a task into before touching external systems. It never survives
	// a tick: the task ends the tick as done, failed or cancelled.
	FollowupStatusProcessing FollowupStatus = "processing"
	FollowupStatusDone       FollowupStatus = "done"
	FollowupStatusFailed     FollowupStatus = "failed"
	FollowupStatusCancelled  FollowupStatus = "cancelled"
)

// IsTerminal reports whether the status only transitions into itself or back
// to scheduled through an explicit operator retry.
func (s FollowupStatus) IsTerminal() bool {
	return s == FollowupStatusDone || s == FollowupStatusFailed || s == FollowupStatusCancelled
}

// CancellationReasonReplied is recorded when a prospect reply cancels a task.
const CancellationReasonReplied = "prospect_replied"

// FollowupSchedule is the fixed sequence of business-day offsets applied to
// a sent draft.
var FollowupSchedule = [4]int{3, 7, 10, 180}

// LongTermBusinessDays is the offset of the long-term re-engagement task,
// which survives prospect replies.
const LongTermBusinessDays = 180

// DaysToFollowupNumber maps a business-day offset to its position in the
// followup sequence. No other pairing is valid.
var DaysToFollowupNumber = map[int]int{
	3:   1,
	7:   2,
	10:  3,
	180: 4,
}

// FollowupTask is one scheduled followup for a sent draft.
type FollowupTask struct {
	ID                 string         `json:"id"`
	DraftID            string         `json:"draft_id"`
	FollowupNumber     int            `json:"followup_number"`
	BusinessDaysAfter  int            `json:"business_days_after"`
	ScheduledFor       time.Time      `json:"scheduled_for"`
	Status             FollowupStatus `json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	ProcessedAt        *time.Time     `json:"processed_at,omitempty"`
	CancelledAt        *time.Time     `json:"cancelled_at,omitempty"`
	ErrorMessage       *string        `json:"error_message,omitempty"`
	CancellationReason *string        `json:"cancellation_reason,omitempty"`
	DraftIDCreated     *string        `json:"draft_id_created,omitempty"`
}

// IsLongTerm reports whether the task is the J+180 re-engagement attempt.
func (t *FollowupTask) IsLongTerm() bool {
	return t.BusinessDaysAfter == LongTermBusinessDays
}

// FollowupTaskRepository defines data access for followup tasks.
type FollowupTaskRepository interface {
	// CreateBatch persists all tasks in a single transaction.
	CreateBatch(ctx context.Context, tasks []*FollowupTask) error

	// GetByID returns the task or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*FollowupTask, error)

	// GetByDraftID returns all tasks for a draft, ordered by followup number.
	GetByDraftID(ctx context.Context, draftID string) ([]*FollowupTask, error)

	// HasTasksForDraft reports whether any task exists for the draft.
	HasTasksForDraft(ctx context.Context, draftID string) (bool, error)

	// GetDue returns scheduled tasks whose firing time is at or before the
	// given instant.
	GetDue(ctx context.Context, before time.Time) ([]*FollowupTask, error)

	// GetFailed returns all tasks in the failed state.
	GetFailed(ctx context.Context) ([]*FollowupTask, error)

	// ClaimForProcessing performs the conditional scheduled -> processing
	// transition. It returns false when another tick already claimed the
	// task or the task left the scheduled state.
	ClaimForProcessing(ctx context.Context, id string) (bool, error)

	// MarkDone records a successful composer invocation.
	MarkDone(ctx context.Context, id string, draftIDCreated string) error

	// MarkFailed records a processing failure.
	MarkFailed(ctx context.Context, id string, errorMessage string) error

	// MarkCancelled cancels a task with the given reason.
	MarkCancelled(ctx context.Context, id string, reason string) error

	// MarkScheduled returns a failed or claimed task to the scheduled state,
	// clearing error details.
	MarkScheduled(ctx context.Context, id string) error

	// UpdateScheduledFor moves a non-terminal task's firing time. It returns
	// false when the task was not in a shiftable state.
	UpdateScheduledFor(ctx context.Context, id string, scheduledFor time.Time) (bool, error)

	// DraftIDsWithTasks maps each draft id that has tasks to its task ids,
	// for repairing drafts with an empty followup_ids field.
	DraftIDsWithTasks(ctx context.Context) (map[string][]string, error)
}

// ScheduleResult is the outcome of scheduling followups for one draft.
type ScheduleResult struct {
	DraftID        string   `json:"draft_id"`
	ScheduledCount int      `json:"scheduled_count"`
	FollowupIDs    []string `json:"task_ids"`
	SkippedReason  string   `json:"skipped_reason,omitempty"`
}

// Success reports whether any task was created.
func (r ScheduleResult) Success() bool {
	return r.ScheduledCount > 0
}

// BulkScheduleResult summarizes a bulk scheduling pass.
type BulkScheduleResult struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

// CancellationResult is the outcome of a reply-driven cancellation.
type CancellationResult struct {
	DraftID        string `json:"draft_id"`
	CancelledCount int    `json:"cancelled_count"`
	KeptCount      int    `json:"kept_count"`
}

// ProcessingResult is the per-task outcome of one processor tick.
type ProcessingResult struct {
	FollowupID     string `json:"followup_id"`
	DraftID        string `json:"draft_id"`
	FollowupNumber int    `json:"followup_number"`
	Success        bool   `json:"success"`
	Cancelled      bool   `json:"cancelled,omitempty"`
	Skipped        bool   `json:"skipped,omitempty"`
	DraftIDCreated string `json:"draft_id_created,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

// ProcessingSummary aggregates one processor tick.
type ProcessingSummary struct {
	Processed int                 `json:"processed"`
	Cancelled int                 `json:"cancelled"`
	Skipped   int                 `json:"skipped"`
	Failed    int                 `json:"failed"`
	Results   []*ProcessingResult `json:"results,omitempty"`
}

// Add merges a per-task result into the summary.
func (s *ProcessingSummary) Add(r *ProcessingResult) {
	s.Results = append(s.Results, r)
	switch {
	case r.Success:
		s.Processed++
	case r.Cancelled:
		s.Cancelled++
	case r.Skipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

// ShiftResult is the per-task outcome of an operator shift.
type ShiftResult struct {
	FollowupID   string     `json:"followup_id"`
	Shifted      bool       `json:"shifted"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	Reason       string     `json:"reason,omitempty"`
}

// MarkDoneResult summarizes an operator mark-done operation.
type MarkDoneResult struct {
	Updated  int      `json:"updated"`
	NotFound int      `json:"not_found"`
	Errors   []string `json:"errors"`
}
