package handlers

import (
	"net/http"

	syncpkg "github.com/complainthub/client-go/internal/sync"
)

// SyncHandler exposes sync status and the manual sync trigger.
type SyncHandler struct {
	coordinator *syncpkg.Coordinator
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(coordinator *syncpkg.Coordinator) *SyncHandler {
	return &SyncHandler{coordinator: coordinator}
}

// Status handles GET /api/sync/status.
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coordinator.Status())
}

// SyncNow handles POST /api/sync/now. Returns 409 when a cycle is already
// running; the running cycle covers the caller's intent.
func (h *SyncHandler) SyncNow(w http.ResponseWriter, r *http.Request) {
	report, err := h.coordinator.SyncNow(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"outcome":   string(report.Outcome()),
		"message":   report.Message(),
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	})
}
