package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Relancio/relancio/internal/domain"
	"github.com/Relancio/relancio/pkg/circuitbreaker"
	"github.com/Relancio/relancio/pkg/logger"
	"github.com/Relancio/relancio/pkg/metrics"
)

// HTTPComposerService implements domain.ComposerService against the
// mail-writer collaborator. Calls go through a circuit breaker so a
// struggling composer is not hammered by every tick.
type HTTPComposerService struct {
	httpClient *http.Client
	url        string
	retry      retryPolicy
	breaker    *circuitbreaker.CircuitBreaker
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewHTTPComposerService creates a new HTTPComposerService. An empty URL is
// tolerated; every call then returns ErrComposerNotConfigured.
func NewHTTPComposerService(
	url string,
	timeout time.Duration,
	m *metrics.Metrics,
	log logger.Logger,
) *HTTPComposerService {
	return &HTTPComposerService{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		retry: retryPolicy{
			maxRetries: 2,
			backoff:    time.Second,
			statuses:   statusSet(502, 503, 504),
		},
		breaker: circuitbreaker.New("composer", circuitbreaker.Config{
			FailureThreshold: 3,
			SuccessThreshold: 2,
			OpenTimeout:      60 * time.Second,
		}),
		metrics: m,
		logger:  log,
	}
}

// composerResponse mirrors the mail-writer wire shape: the created draft id
// is nested under "draft".
type composerResponse struct {
	Draft struct {
		DraftID string `json:"draft_id"`
	} `json:"draft"`
	Error string `json:"error"`
}

// ComposeFollowup asks the mail-writer to produce the next followup email.
func (s *HTTPComposerService) ComposeFollowup(ctx context.Context, req *domain.ComposeFollowupRequest) (*domain.ComposeFollowupResponse, error) {
	if s.url == "" {
		return nil, domain.ErrComposerNotConfigured
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal compose payload: %w", err)
	}

	var result *domain.ComposeFollowupResponse
	err = s.breaker.Execute(func() error {
		var execErr error
		result, execErr = s.post(ctx, payload)
		return execErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *HTTPComposerService) post(ctx context.Context, payload []byte) (*domain.ComposeFollowupResponse, error) {
	var lastErr error

	for attempt := 1; attempt <= s.retry.attempts(); attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, s.retry.backoffFor(attempt)); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		body, status, err := s.doRequest(ctx, payload)
		duration := time.Since(start)

		if err != nil {
			s.metrics.ObserveExternalRequest("composer", "error", duration)
			s.logger.WithFields(map[string]interface{}{
				"attempt":     attempt,
				"duration_ms": duration.Milliseconds(),
			}).Warn(fmt.Sprintf("Composer request failed: %v", err))
			lastErr = &domain.ExternalServiceError{Service: "composer", Message: err.Error(), Duration: duration}
			continue
		}

		if status == http.StatusOK {
			s.metrics.ObserveExternalRequest("composer", "success", duration)

			var decoded composerResponse
			if err := json.Unmarshal(body, &decoded); err != nil {
				return nil, fmt.Errorf("failed to decode composer response: %w", err)
			}

			return &domain.ComposeFollowupResponse{
				Success: true,
				DraftID: decoded.Draft.DraftID,
				Error:   decoded.Error,
			}, nil
		}

		s.metrics.ObserveExternalRequest("composer", fmt.Sprintf("http_%d", status), duration)
		lastErr = &domain.ExternalServiceError{
			Service:    "composer",
			StatusCode: status,
			Message:    string(truncate(body, 200)),
			Duration:   duration,
		}

		if !s.retry.retryableStatus(status) {
			return nil, lastErr
		}

		s.logger.WithFields(map[string]interface{}{
			"attempt":     attempt,
			"status_code": status,
			"duration_ms": duration.Milliseconds(),
		}).Warn("Composer request returned retryable status")
	}

	return nil, lastErr
}

func (s *HTTPComposerService) doRequest(ctx context.Context, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}
