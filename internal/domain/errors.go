package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error type tokens surfaced in API responses. Clients branch on these
// rather than on messages.
const (
	ErrTypeValidation         = "validation_error"
	ErrTypeDraftNotFound      = "draft_not_found"
	ErrTypeDraftNotSent       = "draft_not_sent"
	ErrTypeMissingSentAt      = "missing_sent_at"
	ErrTypeExternalService    = "external_service_error"
	ErrTypeCircuitBreakerOpen = "circuit_breaker_open"
	ErrTypeRateLimitExceeded  = "rate_limit_exceeded"
	ErrTypeNotConfigured      = "not_configured"
	ErrTypeInternal           = "internal_error"
)

// ErrComposerNotConfigured is returned when no composer URL is set.
var ErrComposerNotConfigured = errors.New("composer service is not configured")

// DraftNotFoundError indicates the referenced draft does not exist.
type DraftNotFoundError struct {
	DraftID string
}

func (e *DraftNotFoundError) Error() string {
	return fmt.Sprintf("draft %s not found", e.DraftID)
}

// DraftNotSentError indicates a scheduling request for a draft that has not
// been sent yet.
type DraftNotSentError struct {
	DraftID string
	Status  DraftStatus
}

func (e *DraftNotSentError) Error() string {
	return fmt.Sprintf("draft %s is not sent (status %s)", e.DraftID, e.Status)
}

// MissingSentAtError indicates a sent draft with no send timestamp, which
// makes the schedule anchor undefined.
type MissingSentAtError struct {
	DraftID string
}

func (e *MissingSentAtError) Error() string {
	return fmt.Sprintf("draft %s has no sent_at timestamp", e.DraftID)
}

// ValidationError indicates a malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ExternalServiceError indicates a failed call to a collaborator after all
// retries were exhausted.
type ExternalServiceError struct {
	Service    string
	StatusCode int
	Message    string
	Duration   time.Duration
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s request failed with status %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s request failed: %s", e.Service, e.Message)
}

// ErrorType maps an error to its API token.
func ErrorType(err error) string {
	var (
		notFound      *DraftNotFoundError
		notSent       *DraftNotSentError
		missingSentAt *MissingSentAtError
		validation    *ValidationError
		external      *ExternalServiceError
	)
	switch {
	case errors.As(err, &notFound):
		return ErrTypeDraftNotFound
	case errors.As(err, &notSent):
		return ErrTypeDraftNotSent
	case errors.As(err, &missingSentAt):
		return ErrTypeMissingSentAt
	case errors.As(err, &validation):
		return ErrTypeValidation
	case errors.As(err, &external):
		return ErrTypeExternalService
	case errors.Is(err, ErrComposerNotConfigured):
		return ErrTypeNotConfigured
	default:
		return ErrTypeInternal
	}
}
