package service

import (
	"context"
	"fmt"

	"github.com/Relancio/relancio/internal/domain"
	"github.com/Relancio/relancio/pkg/businessdays"
	"github.com/Relancio/relancio/pkg/logger"
)

// RepairService carries the operator overrides: shifting firing times and
// force-completing tasks.
type RepairService struct {
	followupRepo domain.FollowupTaskRepository
	logger       logger.Logger
}

// NewRepairService creates a new RepairService
func NewRepairService(followupRepo domain.FollowupTaskRepository, log logger.Logger) *RepairService {
	return &RepairService{
		followupRepo: followupRepo,
		logger:       log,
	}
}

// ShiftFollowups moves the firing time of each task by the given number of
// business days. Terminal tasks are left alone.
func (s *RepairService) ShiftFollowups(ctx context.Context, ids []string, daysShift int) ([]*domain.ShiftResult, error) {
	results := make([]*domain.ShiftResult, 0, len(ids))

	for _, id := range ids {
		task, err := s.followupRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load followup %s: %w", id, err)
		}
		if task == nil {
			results = append(results, &domain.ShiftResult{FollowupID: id, Reason: "not_found"})
			continue
		}
		if task.Status.IsTerminal() {
			results = append(results, &domain.ShiftResult{FollowupID: id, Reason: "terminal_status"})
			continue
		}

		newTime := businessdays.AddBusinessDays(task.ScheduledFor, daysShift)
		shifted, err := s.followupRepo.UpdateScheduledFor(ctx, id, newTime)
		if err != nil {
			return nil, fmt.Errorf("failed to shift followup %s: %w", id, err)
		}
		if !shifted {
			results = append(results, &domain.ShiftResult{FollowupID: id, Reason: "terminal_status"})
			continue
		}

		s.logger.WithFields(map[string]interface{}{
			"followup_id":   id,
			"days_shift":    daysShift,
			"scheduled_for": newTime,
		}).Info("Followup shifted")

		results = append(results, &domain.ShiftResult{FollowupID: id, Shifted: true, ScheduledFor: &newTime})
	}

	return results, nil
}

// MarkFollowupsDone force-completes tasks without calling the composer. The
// reason is kept for the audit log only.
func (s *RepairService) MarkFollowupsDone(ctx context.Context, ids []string, reason string) (*domain.MarkDoneResult, error) {
	result := &domain.MarkDoneResult{}

	for _, id := range ids {
		task, err := s.followupRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load followup %s: %w", id, err)
		}
		if task == nil {
			result.NotFound++
			continue
		}
		if err := s.followupRepo.MarkDone(ctx, id, ""); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		result.Updated++
	}

	s.logger.WithFields(map[string]interface{}{
		"updated":   result.Updated,
		"not_found": result.NotFound,
		"reason":    reason,
	}).Info("Followups force-completed")

	return result, nil
}
