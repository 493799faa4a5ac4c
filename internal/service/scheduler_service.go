package service

import (
	"context"
	"fmt"

	"github.com/Relancio/relancio/internal/domain"
	"github.com/Relancio/relancio/pkg/businessdays"
	"github.com/Relancio/relancio/pkg/logger"
	"github.com/Relancio/relancio/pkg/metrics"
)

// Skip reasons returned on idempotent or opt-out scheduling requests. The
// already-scheduled literal is part of the wire contract.
const (
	SkipReasonAlreadyScheduled = "already scheduled"
	SkipReasonNoFollowup       = "no_followup"
	SkipReasonNotInitial       = "not_initial_email"
)

// SchedulerService creates the followup sequence for sent drafts.
type SchedulerService struct {
	draftRepo    domain.DraftRepository
	followupRepo domain.FollowupTaskRepository
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewSchedulerService creates a new SchedulerService
func NewSchedulerService(
	draftRepo domain.DraftRepository,
	followupRepo domain.FollowupTaskRepository,
	m *metrics.Metrics,
	log logger.Logger,
) *SchedulerService {
	return &SchedulerService{
		draftRepo:    draftRepo,
		followupRepo: followupRepo,
		metrics:      m,
		logger:       log,
	}
}

// ScheduleForDraft creates the four followup tasks for a sent draft. The
// operation is idempotent: a draft that already has tasks keeps them and the
// existing ids are returned.
func (s *SchedulerService) ScheduleForDraft(ctx context.Context, draftID string) (*domain.ScheduleResult, error) {
	draft, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if draft == nil {
		return nil, &domain.DraftNotFoundError{DraftID: draftID}
	}
	if draft.Status != domain.DraftStatusSent {
		return nil, &domain.DraftNotSentError{DraftID: draftID, Status: draft.Status}
	}
	if draft.SentAt == nil {
		return nil, &domain.MissingSentAtError{DraftID: draftID}
	}

	if draft.NoFollowup {
		s.logger.WithField("draft_id", draftID).Info("Draft opted out of followups")
		return &domain.ScheduleResult{DraftID: draftID, SkippedReason: SkipReasonNoFollowup}, nil
	}
	if !draft.IsInitial() {
		s.logger.WithField("draft_id", draftID).Info("Draft is a composed followup, not scheduling")
		return &domain.ScheduleResult{DraftID: draftID, SkippedReason: SkipReasonNotInitial}, nil
	}

	hasTasks, err := s.followupRepo.HasTasksForDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing followups: %w", err)
	}
	if hasTasks {
		existing, err := s.followupRepo.GetByDraftID(ctx, draftID)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing followups: %w", err)
		}
		ids := make([]string, 0, len(existing))
		for _, task := range existing {
			ids = append(ids, task.ID)
		}
		if !draft.FollowupsScheduled {
			if err := s.draftRepo.SetFollowupIDs(ctx, draftID, ids); err != nil {
				return nil, fmt.Errorf("failed to record followup ids on draft: %w", err)
			}
		}
		s.logger.WithField("draft_id", draftID).Info("Followups already scheduled")
		return &domain.ScheduleResult{
			DraftID:       draftID,
			FollowupIDs:   ids,
			SkippedReason: SkipReasonAlreadyScheduled,
		}, nil
	}

	tasks := make([]*domain.FollowupTask, 0, len(domain.FollowupSchedule))
	for _, days := range domain.FollowupSchedule {
		tasks = append(tasks, &domain.FollowupTask{
			DraftID:           draftID,
			FollowupNumber:    domain.DaysToFollowupNumber[days],
			BusinessDaysAfter: days,
			ScheduledFor:      businessdays.AddBusinessDays(*draft.SentAt, days),
			Status:            domain.FollowupStatusScheduled,
		})
	}

	if err := s.followupRepo.CreateBatch(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to create followup tasks: %w", err)
	}

	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}

	// The tasks are committed at this point. A failure here leaves the draft
	// without its task ids, which SyncFollowupIDs repairs.
	if err := s.draftRepo.SetFollowupIDs(ctx, draftID, ids); err != nil {
		s.logger.WithField("draft_id", draftID).Error(fmt.Sprintf("Failed to record followup ids on draft: %v", err))
	}

	s.metrics.FollowupsScheduled.Add(float64(len(tasks)))
	s.logger.WithFields(map[string]interface{}{
		"draft_id":        draftID,
		"scheduled_count": len(tasks),
	}).Info("Followups scheduled")

	return &domain.ScheduleResult{
		DraftID:        draftID,
		ScheduledCount: len(tasks),
		FollowupIDs:    ids,
	}, nil
}

// ScheduleAllSentDrafts schedules followups for every sent initial draft
// that does not have them yet.
func (s *SchedulerService) ScheduleAllSentDrafts(ctx context.Context) (*domain.BulkScheduleResult, error) {
	drafts, err := s.draftRepo.GetSentInitialDrafts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent drafts: %w", err)
	}

	result := &domain.BulkScheduleResult{}
	for _, draft := range drafts {
		scheduleResult, err := s.ScheduleForDraft(ctx, draft.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", draft.ID, err))
			continue
		}
		if scheduleResult.Success() {
			result.Processed++
		} else {
			result.Skipped++
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"processed": result.Processed,
		"skipped":   result.Skipped,
		"errors":    len(result.Errors),
	}).Info("Bulk scheduling finished")

	return result, nil
}

// SyncFollowupIDs repairs drafts whose followup tasks exist but whose
// followup_ids field never got written.
func (s *SchedulerService) SyncFollowupIDs(ctx context.Context) (int, error) {
	byDraft, err := s.followupRepo.DraftIDsWithTasks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list followup tasks: %w", err)
	}

	repaired := 0
	for draftID, taskIDs := range byDraft {
		draft, err := s.draftRepo.GetByID(ctx, draftID)
		if err != nil {
			return repaired, fmt.Errorf("failed to load draft %s: %w", draftID, err)
		}
		if draft == nil || len(draft.FollowupIDs) > 0 {
			continue
		}
		if err := s.draftRepo.SetFollowupIDs(ctx, draftID, taskIDs); err != nil {
			return repaired, fmt.Errorf("failed to sync followup ids for %s: %w", draftID, err)
		}
		repaired++
	}

	if repaired > 0 {
		s.logger.WithField("repaired", repaired).Info("Synced followup ids onto drafts")
	}
	return repaired, nil
}

// SetMissingScheduledFlags schedules followups for sent initial drafts whose
// followups_scheduled flag is still false.
func (s *SchedulerService) SetMissingScheduledFlags(ctx context.Context) (*domain.BulkScheduleResult, error) {
	drafts, err := s.draftRepo.GetDraftsMissingScheduledFlag(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unscheduled drafts: %w", err)
	}

	result := &domain.BulkScheduleResult{}
	for _, draft := range drafts {
		scheduleResult, err := s.ScheduleForDraft(ctx, draft.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", draft.ID, err))
			continue
		}
		if scheduleResult.Success() {
			result.Processed++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}
