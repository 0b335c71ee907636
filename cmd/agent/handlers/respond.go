package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/complainthub/client-go/internal/errors"
	"github.com/complainthub/client-go/internal/logging"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error("Failed to encode response", err, nil)
	}
}

// writeError maps an application error to an HTTP status and a JSON body
// carrying the error code for the UI.
func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrInvalid, errors.ErrValidation:
		status = http.StatusBadRequest
	case errors.ErrAuthFailed:
		status = http.StatusUnauthorized
	case errors.ErrNotFound:
		status = http.StatusNotFound
	case errors.ErrSyncInProgress:
		status = http.StatusConflict
	case errors.ErrStorage, errors.ErrDatabase:
		status = http.StatusInsufficientStorage
	case errors.ErrServerRejected:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, map[string]interface{}{
		"code":  string(code),
		"error": err.Error(),
	})
}
