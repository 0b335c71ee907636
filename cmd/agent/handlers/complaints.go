// Package handlers provides the agent's localhost REST handlers.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/complainthub/client-go/internal/complaints"
	"github.com/complainthub/client-go/internal/errors"
	"github.com/complainthub/client-go/internal/models"
	"github.com/complainthub/client-go/internal/queue"
)

// ComplaintHandler exposes the submission gateway and the offline queue
// listing.
type ComplaintHandler struct {
	gateway *complaints.Gateway
	store   *queue.Store
}

// NewComplaintHandler creates a ComplaintHandler.
func NewComplaintHandler(gateway *complaints.Gateway, store *queue.Store) *ComplaintHandler {
	return &ComplaintHandler{gateway: gateway, store: store}
}

// Submit handles POST /api/complaints.
// 201 when the server acknowledged live, 202 when captured offline.
func (h *ComplaintHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var fields models.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, errors.Wrap(errors.ErrInvalid, "request body is not valid JSON", err))
		return
	}
	if len(fields) == 0 {
		writeError(w, errors.New(errors.ErrInvalid, "complaint fields are required"))
		return
	}

	result, err := h.gateway.Submit(r.Context(), fields)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Status == complaints.StatusQueued {
		status = http.StatusAccepted
	}
	writeJSON(w, status, result)
}

// ListOffline handles GET /api/complaints/offline.
func (h *ComplaintHandler) ListOffline(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []models.QueuedComplaint{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"results": records,
	})
}
