package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/Relancio/relancio/internal/domain"
	"github.com/Relancio/relancio/internal/http/middleware"
	"github.com/Relancio/relancio/internal/service"
	"github.com/Relancio/relancio/pkg/circuitbreaker"
	"github.com/Relancio/relancio/pkg/logger"
)

// maxShiftBusinessDays bounds an operator shift to roughly one year.
const maxShiftBusinessDays = 260

// FollowupHandler exposes the engine's control endpoints.
type FollowupHandler struct {
	scheduler    *service.SchedulerService
	cancellation *service.CancellationService
	processor    *service.ProcessorService
	retry        *service.RetryService
	repair       *service.RepairService
	rateLimit    *middleware.RateLimitMiddleware
	logger       logger.Logger
}

// NewFollowupHandler creates a new FollowupHandler
func NewFollowupHandler(
	scheduler *service.SchedulerService,
	cancellation *service.CancellationService,
	processor *service.ProcessorService,
	retry *service.RetryService,
	repair *service.RepairService,
	rateLimit *middleware.RateLimitMiddleware,
	log logger.Logger,
) *FollowupHandler {
	return &FollowupHandler{
		scheduler:    scheduler,
		cancellation: cancellation,
		processor:    processor,
		retry:        retry,
		repair:       repair,
		rateLimit:    rateLimit,
		logger:       log,
	}
}

// RegisterRoutes registers the control routes. Every control endpoint sits
// behind the rate limiter.
func (h *FollowupHandler) RegisterRoutes(mux *http.ServeMux) {
	limited := func(handler http.HandlerFunc) http.Handler {
		return h.rateLimit.Limit(handler)
	}

	mux.Handle("/schedule-followups", limited(h.handleScheduleFollowups))
	mux.Handle("/cancel-followups", limited(h.handleCancelFollowups))
	mux.Handle("/process-pending-followups", limited(h.handleProcessPending))
	mux.Handle("/retry-failed-followups", limited(h.handleRetryFailed))
	mux.Handle("/schedule-missing-followups", limited(h.handleScheduleMissing))
	mux.Handle("/shift-followups", limited(h.handleShiftFollowups))
	mux.Handle("/mark-followups-done", limited(h.handleMarkDone))
}

type draftRequest struct {
	DraftID string `json:"draft_id"`
}

type shiftRequest struct {
	FollowupIDs []string `json:"followup_ids"`
	DaysShift   int      `json:"days_shift"`
}

type markDoneRequest struct {
	FollowupIDs []string `json:"followup_ids"`
	Reason      string   `json:"reason"`
}

func (h *FollowupHandler) handleScheduleFollowups(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", domain.ErrTypeValidation, http.StatusMethodNotAllowed)
		return
	}

	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "invalid JSON body", domain.ErrTypeValidation, http.StatusBadRequest)
		return
	}
	if err := validateDraftID(req.DraftID); err != nil {
		writeDomainError(w, err)
		return
	}

	result, err := h.scheduler.ScheduleForDraft(r.Context(), req.DraftID)
	if err != nil {
		h.logger.WithField("draft_id", req.DraftID).Error(fmt.Sprintf("Scheduling failed: %v", err))
		writeDomainError(w, err)
		return
	}

	payload := map[string]interface{}{
		"draft_id":        result.DraftID,
		"scheduled_count": result.ScheduledCount,
		"task_ids":        result.FollowupIDs,
	}
	if result.SkippedReason != "" {
		payload["skipped_reason"] = result.SkippedReason
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *FollowupHandler) handleCancelFollowups(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", domain.ErrTypeValidation, http.StatusMethodNotAllowed)
		return
	}

	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "invalid JSON body", domain.ErrTypeValidation, http.StatusBadRequest)
		return
	}
	if err := validateDraftID(req.DraftID); err != nil {
		writeDomainError(w, err)
		return
	}

	result, err := h.cancellation.CancelForDraft(r.Context(), req.DraftID)
	if err != nil {
		h.logger.WithField("draft_id", req.DraftID).Error(fmt.Sprintf("Cancellation failed: %v", err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"draft_id":        result.DraftID,
		"cancelled_count": result.CancelledCount,
		"kept_count":      result.KeptCount,
	})
}

func (h *FollowupHandler) handleProcessPending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", domain.ErrTypeValidation, http.StatusMethodNotAllowed)
		return
	}

	summary, err := h.processor.ProcessDueFollowups(r.Context())
	if err != nil {
		h.logger.Error(fmt.Sprintf("Processing tick failed: %v", err))
		if errors.Is(err, circuitbreaker.ErrOpen) {
			WriteJSONErrorWith(w, err.Error(), domain.ErrTypeCircuitBreakerOpen,
				http.StatusServiceUnavailable, summaryPayload(summary))
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryPayload(summary))
}

func (h *FollowupHandler) handleRetryFailed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", domain.ErrTypeValidation, http.StatusMethodNotAllowed)
		return
	}

	rescheduled, summary, err := h.retry.RetryAllFailed(r.Context())
	if err != nil {
		h.logger.Error(fmt.Sprintf("Retry pass failed: %v", err))
		if errors.Is(err, circuitbreaker.ErrOpen) {
			WriteJSONErrorWith(w, err.Error(), domain.ErrTypeCircuitBreakerOpen,
				http.StatusServiceUnavailable, map[string]interface{}{"rescheduled": rescheduled})
			return
		}
		writeDomainError(w, err)
		return
	}

	payload := summaryPayload(summary)
	payload["rescheduled"] = rescheduled
	writeJSON(w, http.StatusOK, payload)
}

func (h *FollowupHandler) handleScheduleMissing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", domain.ErrTypeValidation, http.StatusMethodNotAllowed)
		return
	}

	result, err := h.scheduler.ScheduleAllSentDrafts(r.Context())
	if err != nil {
		h.logger.Error(fmt.Sprintf("Schedule-missing pass failed: %v", err))
		writeDomainError(w, err)
		return
	}

	synced, err := h.scheduler.SyncFollowupIDs(r.Context())
	if err != nil {
		h.logger.Error(fmt.Sprintf("Followup id sync failed: %v", err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"processed": result.Processed,
		"skipped":   result.Skipped,
		"errors":    result.Errors,
		"synced":    synced,
	})
}

func (h *FollowupHandler) handleShiftFollowups(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", domain.ErrTypeValidation, http.StatusMethodNotAllowed)
		return
	}

	var req shiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "invalid JSON body", domain.ErrTypeValidation, http.StatusBadRequest)
		return
	}
	if len(req.FollowupIDs) == 0 {
		writeDomainError(w, domain.NewValidationError("followup_ids", "must not be empty"))
		return
	}
	if req.DaysShift == 0 {
		writeDomainError(w, domain.NewValidationError("days_shift", "must not be zero"))
		return
	}
	if req.DaysShift > maxShiftBusinessDays || req.DaysShift < -maxShiftBusinessDays {
		writeDomainError(w, domain.NewValidationError("days_shift",
			fmt.Sprintf("must be between -%d and %d", maxShiftBusinessDays, maxShiftBusinessDays)))
		return
	}

	results, err := h.repair.ShiftFollowups(r.Context(), req.FollowupIDs, req.DaysShift)
	if err != nil {
		h.logger.Error(fmt.Sprintf("Shift failed: %v", err))
		writeDomainError(w, err)
		return
	}

	shifted, skipped := 0, 0
	for _, result := range results {
		if result.Shifted {
			shifted++
		} else {
			skipped++
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"shifted": shifted,
		"skipped": skipped,
		"results": results,
	})
}

func (h *FollowupHandler) handleMarkDone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", domain.ErrTypeValidation, http.StatusMethodNotAllowed)
		return
	}

	var req markDoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "invalid JSON body", domain.ErrTypeValidation, http.StatusBadRequest)
		return
	}
	if len(req.FollowupIDs) == 0 {
		writeDomainError(w, domain.NewValidationError("followup_ids", "must not be empty"))
		return
	}

	result, err := h.repair.MarkFollowupsDone(r.Context(), req.FollowupIDs, req.Reason)
	if err != nil {
		h.logger.Error(fmt.Sprintf("Mark-done failed: %v", err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updated":   result.Updated,
		"not_found": result.NotFound,
		"errors":    result.Errors,
	})
}

func summaryPayload(summary *domain.ProcessingSummary) map[string]interface{} {
	if summary == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"processed":     len(summary.Results),
		"success_count": summary.Processed,
		"failure_count": summary.Failed,
		"cancelled":     summary.Cancelled,
		"skipped":       summary.Skipped,
		"results":       summary.Results,
	}
}

// validateDraftID rejects ids that are empty, oversized or carry path
// separators, which would be unsafe as document keys.
func validateDraftID(draftID string) error {
	if draftID == "" {
		return domain.NewValidationError("draft_id", "is required")
	}
	if !govalidator.StringLength(draftID, "1", "255") {
		return domain.NewValidationError("draft_id", "must be at most 255 characters")
	}
	if strings.ContainsAny(draftID, "/\\") {
		return domain.NewValidationError("draft_id", "must not contain path separators")
	}
	return nil
}
