package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Relancio/relancio/internal/domain"
	"github.com/Relancio/relancio/pkg/circuitbreaker"
	"github.com/Relancio/relancio/pkg/logger"
	"github.com/Relancio/relancio/pkg/metrics"
)

// ProcessorService drains due followup tasks: it claims each one, double
// checks the prospect has not replied, enriches the request from the CRM
// and asks the composer to produce the followup email.
type ProcessorService struct {
	draftRepo     domain.DraftRepository
	followupRepo  domain.FollowupTaskRepository
	leadDirectory domain.LeadDirectoryService
	composer      domain.ComposerService
	metrics       *metrics.Metrics
	logger        logger.Logger

	now func() time.Time
}

// NewProcessorService creates a new ProcessorService
func NewProcessorService(
	draftRepo domain.DraftRepository,
	followupRepo domain.FollowupTaskRepository,
	leadDirectory domain.LeadDirectoryService,
	composer domain.ComposerService,
	m *metrics.Metrics,
	log logger.Logger,
) *ProcessorService {
	return &ProcessorService{
		draftRepo:     draftRepo,
		followupRepo:  followupRepo,
		leadDirectory: leadDirectory,
		composer:      composer,
		metrics:       m,
		logger:        log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ProcessDueFollowups handles every scheduled task whose firing time has
// passed. Per-task failures never abort the batch; an open composer circuit
// aborts the remaining tick since every further call would fail the same way.
func (s *ProcessorService) ProcessDueFollowups(ctx context.Context) (*domain.ProcessingSummary, error) {
	now := s.now()
	tasks, err := s.followupRepo.GetDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due followups: %w", err)
	}

	summary := &domain.ProcessingSummary{}
	for _, task := range tasks {
		result, err := s.processTask(ctx, task)
		if err != nil {
			if errors.Is(err, circuitbreaker.ErrOpen) {
				s.logger.Warn("Composer circuit is open, aborting remaining tick")
				summary.Add(result)
				return summary, err
			}
			return summary, err
		}
		summary.Add(result)
	}

	s.logger.WithFields(map[string]interface{}{
		"processed": summary.Processed,
		"cancelled": summary.Cancelled,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
	}).Info("Followup tick finished")

	return summary, nil
}

// processTask runs the full pipeline for one due task. The returned error is
// only non-nil for batch-level conditions; per-task failures are folded into
// the result.
func (s *ProcessorService) processTask(ctx context.Context, task *domain.FollowupTask) (*domain.ProcessingResult, error) {
	result := &domain.ProcessingResult{
		FollowupID:     task.ID,
		DraftID:        task.DraftID,
		FollowupNumber: task.FollowupNumber,
	}

	log := s.logger.WithFields(map[string]interface{}{
		"followup_id":     task.ID,
		"draft_id":        task.DraftID,
		"followup_number": task.FollowupNumber,
	})

	claimed, err := s.followupRepo.ClaimForProcessing(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim followup %s: %w", task.ID, err)
	}
	if !claimed {
		log.Info("Followup already claimed by another tick")
		result.Skipped = true
		return result, nil
	}

	draft, err := s.draftRepo.GetByID(ctx, task.DraftID)
	if err != nil {
		// Infrastructure trouble: release the claim so the next tick retries.
		s.release(ctx, task.ID)
		return nil, fmt.Errorf("failed to load draft %s: %w", task.DraftID, err)
	}
	if draft == nil {
		log.Warn("Draft not found for followup")
		return s.fail(ctx, task, result, "draft_not_found"), nil
	}

	if draft.HasReply {
		log.Info("Prospect replied, cancelling followup")
		if err := s.followupRepo.MarkCancelled(ctx, task.ID, domain.CancellationReasonReplied); err != nil {
			return nil, fmt.Errorf("failed to cancel followup %s: %w", task.ID, err)
		}
		s.metrics.FollowupsProcessed.WithLabelValues("cancelled").Inc()
		result.Cancelled = true
		return result, nil
	}

	lead, err := s.leadDirectory.GetLeadByExternalID(ctx, draft.XExternalID)
	if err != nil {
		log.Error(fmt.Sprintf("CRM lookup failed: %v", err))
		return s.fail(ctx, task, result, fmt.Sprintf("crm lookup failed: %v", err)), nil
	}
	if lead == nil {
		return s.fail(ctx, task, result, fmt.Sprintf("lead not found for x_external_id %s", draft.XExternalID)), nil
	}
	if missing := lead.Validate(); len(missing) > 0 {
		return s.fail(ctx, task, result, "lead missing required fields: "+strings.Join(missing, ", ")), nil
	}

	history, err := s.emailHistory(ctx, draft.XExternalID, task.FollowupNumber)
	if err != nil {
		s.release(ctx, task.ID)
		return nil, fmt.Errorf("failed to assemble email history: %w", err)
	}

	req := s.buildComposeRequest(task, draft, lead, history)

	resp, err := s.composer.ComposeFollowup(ctx, req)
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			// Nothing wrong with this task: put it back for the next tick.
			s.release(ctx, task.ID)
			result.Skipped = true
			return result, err
		}
		log.Error(fmt.Sprintf("Composer call failed: %v", err))
		return s.fail(ctx, task, result, err.Error()), nil
	}

	if err := s.followupRepo.MarkDone(ctx, task.ID, resp.DraftID); err != nil {
		return nil, fmt.Errorf("failed to mark followup %s done: %w", task.ID, err)
	}

	s.metrics.FollowupsProcessed.WithLabelValues("done").Inc()
	log.WithField("draft_id_created", resp.DraftID).Info("Followup composed")

	result.Success = true
	result.DraftIDCreated = resp.DraftID
	return result, nil
}

// emailHistory returns the previously sent emails of the prospect's thread,
// oldest first, excluding the followup being composed and anything after it.
func (s *ProcessorService) emailHistory(ctx context.Context, xExternalID string, followupNumber int) ([]domain.EmailHistoryItem, error) {
	drafts, err := s.draftRepo.GetSentByExternalID(ctx, xExternalID)
	if err != nil {
		return nil, err
	}

	history := make([]domain.EmailHistoryItem, 0, len(drafts))
	for _, d := range drafts {
		if d.FollowupNumber >= followupNumber {
			continue
		}
		history = append(history, domain.EmailHistoryItem{Subject: d.Subject, Body: d.Body})
	}
	return history, nil
}

func (s *ProcessorService) buildComposeRequest(
	task *domain.FollowupTask,
	draft *domain.Draft,
	lead *domain.Lead,
	history []domain.EmailHistoryItem,
) *domain.ComposeFollowupRequest {
	originalSubject := draft.OriginalSubject
	if originalSubject == "" {
		originalSubject = draft.Subject
	}

	req := &domain.ComposeFollowupRequest{
		DraftID:         draft.ID,
		FollowupNumber:  task.FollowupNumber,
		LeadID:          lead.ID,
		XExternalID:     draft.XExternalID,
		FirstName:       lead.FirstName,
		LastName:        lead.LastName,
		Email:           lead.Email,
		PartnerName:     lead.PartnerName,
		Website:         lead.Website,
		Function:        lead.Function,
		Description:     lead.Description,
		VersionGroupID:  draft.VersionGroupID,
		OriginalSubject: originalSubject,
		EmailHistory:    history,
	}
	if draft.InitialDraftID != nil {
		req.InitialDraftID = *draft.InitialDraftID
	}
	if draft.ThreadID != nil {
		req.ReplyToThreadID = *draft.ThreadID
	}
	if draft.MessageID != nil {
		req.ReplyToMessageID = *draft.MessageID
	}
	return req
}

// fail records a task failure and its reason.
func (s *ProcessorService) fail(ctx context.Context, task *domain.FollowupTask, result *domain.ProcessingResult, message string) *domain.ProcessingResult {
	if err := s.followupRepo.MarkFailed(ctx, task.ID, message); err != nil {
		s.logger.WithField("followup_id", task.ID).Error(fmt.Sprintf("Failed to record followup failure: %v", err))
	}
	s.metrics.FollowupsProcessed.WithLabelValues("failed").Inc()
	s.metrics.FollowupsFailed.Inc()
	result.ErrorMessage = message
	return result
}

// release returns a claimed task to the scheduled state after an
// infrastructure error, so the next tick picks it up again.
func (s *ProcessorService) release(ctx context.Context, id string) {
	if err := s.followupRepo.MarkScheduled(ctx, id); err != nil {
		s.logger.WithField("followup_id", id).Error(fmt.Sprintf("Failed to release claimed followup: %v", err))
	}
}
