package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Relancio/relancio/internal/domain"
	"github.com/Relancio/relancio/pkg/circuitbreaker"
)

// writeJSON writes a JSON response with the given status code. Success
// responses carry success:true on top of their payload.
func writeJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["success"] = true

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteJSONError writes the error envelope: success:false, a human message
// and a machine error_type token.
func WriteJSONError(w http.ResponseWriter, message string, errorType string, statusCode int) {
	WriteJSONErrorWith(w, message, errorType, statusCode, nil)
}

// WriteJSONErrorWith writes the error envelope with extra payload fields,
// for batch endpoints that abort with partial results.
func WriteJSONErrorWith(w http.ResponseWriter, message string, errorType string, statusCode int, extra map[string]interface{}) {
	payload := map[string]interface{}{
		"success":    false,
		"error":      message,
		"error_type": errorType,
	}
	for k, v := range extra {
		payload[k] = v
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeDomainError maps a domain error onto the HTTP status and error_type
// the API contract defines.
func writeDomainError(w http.ResponseWriter, err error) {
	errorType := domain.ErrorType(err)

	status := http.StatusInternalServerError
	switch errorType {
	case domain.ErrTypeDraftNotFound:
		status = http.StatusNotFound
	case domain.ErrTypeDraftNotSent, domain.ErrTypeMissingSentAt, domain.ErrTypeValidation:
		status = http.StatusBadRequest
	case domain.ErrTypeExternalService, domain.ErrTypeNotConfigured:
		status = http.StatusServiceUnavailable
	}
	if errors.Is(err, circuitbreaker.ErrOpen) {
		status = http.StatusServiceUnavailable
		errorType = domain.ErrTypeCircuitBreakerOpen
	}

	WriteJSONError(w, err.Error(), errorType, status)
}
