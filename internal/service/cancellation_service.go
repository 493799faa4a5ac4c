package service

import (
	"context"
	"fmt"

	"github.com/Relancio/relancio/internal/domain"
	"github.com/Relancio/relancio/pkg/logger"
	"github.com/Relancio/relancio/pkg/metrics"
)

// CancellationService cancels pending followups when a prospect replies.
// The long-term J+180 re-engagement task is deliberately kept alive.
type CancellationService struct {
	draftRepo    domain.DraftRepository
	followupRepo domain.FollowupTaskRepository
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewCancellationService creates a new CancellationService
func NewCancellationService(
	draftRepo domain.DraftRepository,
	followupRepo domain.FollowupTaskRepository,
	m *metrics.Metrics,
	log logger.Logger,
) *CancellationService {
	return &CancellationService{
		draftRepo:    draftRepo,
		followupRepo: followupRepo,
		metrics:      m,
		logger:       log,
	}
}

// CancelForDraft cancels the scheduled followups of a draft after a reply.
// Already terminal tasks are untouched, so the operation is idempotent.
func (s *CancellationService) CancelForDraft(ctx context.Context, draftID string) (*domain.CancellationResult, error) {
	draft, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if draft == nil {
		return nil, &domain.DraftNotFoundError{DraftID: draftID}
	}

	tasks, err := s.followupRepo.GetByDraftID(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load followups: %w", err)
	}

	result := &domain.CancellationResult{DraftID: draftID}
	for _, task := range tasks {
		if task.Status != domain.FollowupStatusScheduled {
			continue
		}
		if task.IsLongTerm() {
			result.KeptCount++
			continue
		}
		if err := s.followupRepo.MarkCancelled(ctx, task.ID, domain.CancellationReasonReplied); err != nil {
			return nil, fmt.Errorf("failed to cancel followup %s: %w", task.ID, err)
		}
		result.CancelledCount++
	}

	s.metrics.FollowupsCancelled.Add(float64(result.CancelledCount))
	s.logger.WithFields(map[string]interface{}{
		"draft_id":        draftID,
		"cancelled_count": result.CancelledCount,
		"kept_count":      result.KeptCount,
	}).Info("Followups cancelled after reply")

	return result, nil
}
