package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_draft_repository.go -package mocks github.com/Relancio/relancio/internal/domain DraftRepository

// DraftStatus is the upstream lifecycle state of an email draft. The engine
// only ever reads drafts in the sent state.
type DraftStatus string

const (
	DraftStatusDrafting DraftStatus = "drafting"
	DraftStatusSent     DraftStatus = "sent"
	DraftStatusArchived DraftStatus = "archived"
)

// Draft is an outreach email owned by the upstream sending pipeline. The
// engine treats drafts as read-mostly: the only fields it writes are
// FollowupIDs and FollowupsScheduled.
type Draft struct {
	ID             string      `json:"id"`
	Status         DraftStatus `json:"status"`
	SentAt         *time.Time  `json:"sent_at,omitempty"`
	To             string      `json:"to"`
	XExternalID    string      `json:"x_external_id"`
	VersionGroupID string      `json:"version_group_id"`

	// FollowupNumber is 0 on an initial outreach email and 1..4 on emails
	// the composer produced. Only initial emails get a followup sequence.
	FollowupNumber int `json:"followup_number"`

	HasReply       bool    `json:"has_reply"`
	NoFollowup     bool    `json:"no_followup"`
	InitialDraftID *string `json:"initial_draft_id,omitempty"`
	ThreadID       *string `json:"thread_id,omitempty"`
	MessageID      *string `json:"message_id,omitempty"`

	OriginalSubject string `json:"original_subject,omitempty"`
	Subject         string `json:"subject,omitempty"`
	Body            string `json:"body,omitempty"`

	FollowupIDs        []string `json:"followup_ids"`
	FollowupsScheduled bool     `json:"followups_scheduled"`
}

// IsInitial reports whether the draft is an initial outreach email rather
// than a composer-produced followup.
func (d *Draft) IsInitial() bool {
	return d.FollowupNumber == 0
}

// DraftRepository defines read and repair access to the draft store.
type DraftRepository interface {
	// GetByID returns the draft or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*Draft, error)

	// GetSentInitialDrafts returns all sent initial drafts, for bulk
	// scheduling.
	GetSentInitialDrafts(ctx context.Context) ([]*Draft, error)

	// GetSentByExternalID returns all sent drafts sharing a prospect
	// identifier, ordered by followup number ascending. Used to assemble
	// the email history passed to the composer.
	GetSentByExternalID(ctx context.Context, xExternalID string) ([]*Draft, error)

	// SetFollowupIDs records the task ids on the draft and flips the
	// followups_scheduled flag.
	SetFollowupIDs(ctx context.Context, draftID string, followupIDs []string) error

	// GetDraftsMissingScheduledFlag returns sent initial drafts whose
	// followups_scheduled flag is false, for the repair operation.
	GetDraftsMissingScheduledFlag(ctx context.Context) ([]*Draft, error)
}
