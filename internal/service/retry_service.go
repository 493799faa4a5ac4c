package service

import (
	"context"
	"fmt"

	"github.com/Relancio/relancio/internal/domain"
	"github.com/Relancio/relancio/pkg/logger"
)

// RetryService returns failed followups to the scheduled state and runs the
// processor over them right away. Meant for operators after fixing whatever
// made the tasks fail.
type RetryService struct {
	followupRepo domain.FollowupTaskRepository
	processor    *ProcessorService
	logger       logger.Logger
}

// NewRetryService creates a new RetryService
func NewRetryService(
	followupRepo domain.FollowupTaskRepository,
	processor *ProcessorService,
	log logger.Logger,
) *RetryService {
	return &RetryService{
		followupRepo: followupRepo,
		processor:    processor,
		logger:       log,
	}
}

// RetryAllFailed reschedules every failed task and immediately processes the
// due ones.
func (s *RetryService) RetryAllFailed(ctx context.Context) (int, *domain.ProcessingSummary, error) {
	failed, err := s.followupRepo.GetFailed(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list failed followups: %w", err)
	}

	rescheduled := 0
	for _, task := range failed {
		if err := s.followupRepo.MarkScheduled(ctx, task.ID); err != nil {
			return rescheduled, nil, fmt.Errorf("failed to reschedule followup %s: %w", task.ID, err)
		}
		rescheduled++
	}

	s.logger.WithField("rescheduled", rescheduled).Info("Failed followups returned to scheduled")

	if rescheduled == 0 {
		return 0, &domain.ProcessingSummary{}, nil
	}

	summary, err := s.processor.ProcessDueFollowups(ctx)
	if err != nil {
		return rescheduled, nil, err
	}
	return rescheduled, summary, nil
}
