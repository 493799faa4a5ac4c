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
	"github.com/Relancio/relancio/pkg/logger"
	"github.com/Relancio/relancio/pkg/metrics"
)

// leadFields is the field list requested from the CRM.
var leadFields = []string{
	"id",
	"email_normalized",
	"website",
	"contact_name",
	"partner_name",
	"function",
	"description",
}

// OdooLeadDirectoryService implements domain.LeadDirectoryService against an
// Odoo-style search_read endpoint.
type OdooLeadDirectoryService struct {
	httpClient *http.Client
	url        string
	secret     string
	retry      retryPolicy
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewOdooLeadDirectoryService creates a new OdooLeadDirectoryService
func NewOdooLeadDirectoryService(
	url string,
	secret string,
	timeout time.Duration,
	m *metrics.Metrics,
	log logger.Logger,
) *OdooLeadDirectoryService {
	return &OdooLeadDirectoryService{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		secret:     secret,
		retry: retryPolicy{
			maxRetries: 3,
			backoff:    500 * time.Millisecond,
			statuses:   statusSet(http.StatusTooManyRequests, 500, 502, 503, 504),
		},
		metrics: m,
		logger:  log,
	}
}

type searchReadRequest struct {
	Domain [][]interface{} `json:"domain"`
	Fields []string        `json:"fields"`
}

type searchReadLead struct {
	ID          int64  `json:"id"`
	Email       string `json:"email_normalized"`
	Website     string `json:"website"`
	ContactName string `json:"contact_name"`
	PartnerName string `json:"partner_name"`
	Function    string `json:"function"`
	Description string `json:"description"`
}

// GetLeadByExternalID looks up a prospect by its external identifier. It
// returns nil when the directory has no matching record.
func (s *OdooLeadDirectoryService) GetLeadByExternalID(ctx context.Context, xExternalID string) (*domain.Lead, error) {
	if xExternalID == "" {
		return nil, nil
	}

	payload, err := json.Marshal(searchReadRequest{
		Domain: [][]interface{}{{"x_external_id", "ilike", xExternalID}},
		Fields: leadFields,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search_read payload: %w", err)
	}

	endpoint := s.url + "/json/2/crm.lead/search_read"

	body, err := s.post(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}

	var leads []searchReadLead
	if err := json.Unmarshal(body, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode search_read response: %w", err)
	}

	if len(leads) == 0 {
		s.logger.WithField("x_external_id", xExternalID).Warn("Lead not found in CRM")
		return nil, nil
	}

	raw := leads[0]
	first, last := domain.SplitContactName(raw.ContactName)

	return &domain.Lead{
		ID:          raw.ID,
		XExternalID: xExternalID,
		ContactName: raw.ContactName,
		FirstName:   first,
		LastName:    last,
		Email:       raw.Email,
		PartnerName: raw.PartnerName,
		Website:     raw.Website,
		Function:    raw.Function,
		Description: raw.Description,
	}, nil
}

// post delivers the payload with retries on transport errors and retryable
// status codes.
func (s *OdooLeadDirectoryService) post(ctx context.Context, endpoint string, payload []byte) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= s.retry.attempts(); attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, s.retry.backoffFor(attempt)); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		body, status, err := s.doRequest(ctx, endpoint, payload)
		duration := time.Since(start)

		if err != nil {
			s.metrics.ObserveExternalRequest("crm", "error", duration)
			s.logger.WithFields(map[string]interface{}{
				"attempt":     attempt,
				"duration_ms": duration.Milliseconds(),
			}).Warn(fmt.Sprintf("CRM request failed: %v", err))
			lastErr = &domain.ExternalServiceError{Service: "crm", Message: err.Error(), Duration: duration}
			continue
		}

		if status == http.StatusOK {
			s.metrics.ObserveExternalRequest("crm", "success", duration)
			return body, nil
		}

		s.metrics.ObserveExternalRequest("crm", fmt.Sprintf("http_%d", status), duration)
		lastErr = &domain.ExternalServiceError{
			Service:    "crm",
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
		}).Warn("CRM request returned retryable status")
	}

	return nil, lastErr
}

func (s *OdooLeadDirectoryService) doRequest(ctx context.Context, endpoint string, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.secret)

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

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
