package domain

import "context"

//go:generate mockgen -destination mocks/mock_composer_service.go -package mocks github.com/Relancio/relancio/internal/domain ComposerService

// EmailHistoryItem is one previously sent email in the prospect's thread,
// passed to the composer for context.
type EmailHistoryItem struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ComposeFollowupRequest is the payload sent to the composer to produce the
// next followup email for a prospect.
type ComposeFollowupRequest struct {
	DraftID        string `json:"draft_id"`
	FollowupNumber int    `json:"followup_number"`

	LeadID      int64  `json:"lead_id"`
	XExternalID string `json:"x_external_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PartnerName string `json:"partner_name"`
	Website     string `json:"website"`
	Function    string `json:"function,omitempty"`
	Description string `json:"description,omitempty"`

	VersionGroupID string `json:"version_group_id"`

	// Threading hints so the composed email lands in the original
	// conversation.
	InitialDraftID   string `json:"initial_draft_id,omitempty"`
	ReplyToThreadID  string `json:"reply_to_thread_id,omitempty"`
	ReplyToMessageID string `json:"reply_to_message_id,omitempty"`
	OriginalSubject  string `json:"original_subject,omitempty"`

	EmailHistory []EmailHistoryItem `json:"email_history"`
}

// ComposeFollowupResponse is the composer's reply. DraftID identifies the
// new draft the composer created in the store.
type ComposeFollowupResponse struct {
	Success bool   `json:"success"`
	DraftID string `json:"draft_id"`
	Error   string `json:"error,omitempty"`
}

// ComposerService invokes the mail-writer collaborator.
type ComposerService interface {
	ComposeFollowup(ctx context.Context, req *ComposeFollowupRequest) (*ComposeFollowupResponse, error)
}
