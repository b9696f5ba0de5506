package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fintrack/fintrack/internal/apperrors"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StatusFor maps an application error to the HTTP status reported to the client.
func StatusFor(err error) int {
	switch {
	case apperrors.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError reports err as a JSON ErrorResponse. Internal failures are logged and their
// details are not exposed.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
		WriteErrorResponse(w, status, "Internal server error", "")
		return
	}
	WriteErrorResponse(w, status, http.StatusText(status), err.Error())
}

func WriteErrorResponse(w http.ResponseWriter, status int, message string, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encodeErr := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   message,
		Details: details,
	})
	if encodeErr != nil {
		log.Errorf("failed to encode error response: %v", encodeErr)
	}
}
