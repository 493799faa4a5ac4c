package domain

import (
	"context"
	"strings"
)

//go:generate mockgen -destination mocks/mock_lead_directory_service.go -package mocks github.com/Relancio/relancio/internal/domain LeadDirectoryService

// Lead is the prospect record fetched from the CRM directory.
type Lead struct {
	ID          int64  `json:"id"`
	XExternalID string `json:"x_external_id"`
	ContactName string `json:"contact_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email_from"`
	PartnerName string `json:"partner_name"`
	Website     string `json:"website"`
	Function    string `json:"function"`
	Description string `json:"description"`
}

// SplitContactName derives first and last name from a full contact name.
// The split is on the first whitespace; a single-word name becomes the
// first name with an empty last name.
func SplitContactName(contactName string) (first, last string) {
	trimmed := strings.TrimSpace(contactName)
	if trimmed == "" {
		return "", ""
	}
	parts := strings.SplitN(trimmed, " ", 2)
	first = parts[0]
	if len(parts) == 2 {
		last = strings.TrimSpace(parts[1])
	}
	return first, last
}

// Validate checks that the lead carries every field the composer needs.
// It returns the list of missing field names, empty when the lead is usable.
func (l *Lead) Validate() []string {
	var missing []string
	if l.Email == "" || !strings.Contains(l.Email, "@") {
		missing = append(missing, "email")
	}
	if l.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if l.LastName == "" {
		missing = append(missing, "last_name")
	}
	if l.PartnerName == "" {
		missing = append(missing, "partner_name")
	}
	if l.Website == "" {
		missing = append(missing, "website")
	}
	return missing
}

// LeadDirectoryService looks up prospects in the CRM.
type LeadDirectoryService interface {
	// GetLeadByExternalID returns the lead for a prospect identifier, or
	// nil when the directory has no matching record.
	GetLeadByExternalID(ctx context.Context, xExternalID string) (*Lead, error)
}
