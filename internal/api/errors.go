package api

import (
	"encoding/json"
	"net/http"

	"github.com/nightsky-studio/zzzcalc/internal/apierr"
	"github.com/nightsky-studio/zzzcalc/internal/log"
)

// standardError is the JSON error envelope every handler responds
// with on failure.
type standardError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps err to its apierr.Kind-derived status code and
// writes the standard envelope, logging the failure with request
// context the way the teacher's error responses do.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apierr.StatusCode(err)
	code := "INTERNAL_ERROR"
	if apiErr, ok := apierr.As(err); ok {
		code = string(apiErr.Kind)
	}

	requestID, _ := r.Context().Value(requestIDKey).(string)

	log.Error("api error response",
		"request_id", requestID,
		"code", code,
		"status", status,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(standardError{
		Status:    status,
		Code:      code,
		Message:   err.Error(),
		RequestID: requestID,
	}); encErr != nil {
		log.Error("failed to encode error response", "request_id", requestID, "error", encErr.Error())
	}
}
