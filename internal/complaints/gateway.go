// Package complaints provides the single entry point for submitting a
// complaint. The caller never deals with online/offline: the gateway either
// reaches the server or captures the complaint durably, and only genuine
// rejections surface as errors.
package complaints

import (
	"context"

	"github.com/complainthub/client-go/internal/errors"
	"github.com/complainthub/client-go/internal/events"
	"github.com/complainthub/client-go/internal/logging"
	"github.com/complainthub/client-go/internal/models"
)

// Creator submits complaints to the server.
type Creator interface {
	CreateComplaint(ctx context.Context, fields models.Fields, offlineID string) (*models.Complaint, error)
}

// Queue captures complaints that could not reach the server.
type Queue interface {
	Enqueue(fields models.Fields) (*models.QueuedComplaint, error)
}

// Signal reports current network reachability.
type Signal interface {
	IsOnline() bool
}

// SubmitStatus tells the caller which path a submission took.
type SubmitStatus string

const (
	// StatusSubmitted means the server acknowledged the complaint live.
	StatusSubmitted SubmitStatus = "submitted"
	// StatusQueued means the complaint was captured offline for later sync.
	StatusQueued SubmitStatus = "queued"
)

// SubmitResult is the outcome of a submission.
type SubmitResult struct {
	Status    SubmitStatus            `json:"status"`
	Complaint *models.Complaint       `json:"complaint,omitempty"`
	Queued    *models.QueuedComplaint `json:"queued,omitempty"`
}

// Gateway routes submissions between the live API and the offline queue.
type Gateway struct {
	api    Creator
	queue  Queue
	signal Signal
	bus    *events.Bus
}

// NewGateway creates a Gateway.
func NewGateway(api Creator, queue Queue, signal Signal, bus *events.Bus) *Gateway {
	return &Gateway{
		api:    api,
		queue:  queue,
		signal: signal,
		bus:    bus,
	}
}

// Submit attempts a live submission and falls back to the durable queue on
// connectivity-class failure. Rejections that carry a server response
// (validation, auth, 5xx) propagate unchanged and are never queued: retrying
// an invalid submission forever would be incorrect. A storage failure during
// the fallback also propagates, so the caller can tell the user that offline
// capture itself failed.
func (g *Gateway) Submit(ctx context.Context, fields models.Fields) (*SubmitResult, error) {
	if g.signal.IsOnline() {
		complaint, err := g.api.CreateComplaint(ctx, fields, "")
		if err == nil {
			logging.Info("Complaint submitted", logging.Fields{"id": complaint.ID})
			return &SubmitResult{Status: StatusSubmitted, Complaint: complaint}, nil
		}
		if !errors.IsConnectivity(err) {
			return nil, err
		}
		logging.Warn("Live submission failed, capturing offline", logging.Fields{
			"error": err.Error(),
		})
	}

	record, err := g.queue.Enqueue(fields)
	if err != nil {
		return nil, err
	}

	g.bus.Publish(events.EventQueueChanged, map[string]interface{}{
		"local_id": record.LocalID,
		"reason":   "enqueued",
	})

	return &SubmitResult{Status: StatusQueued, Queued: record}, nil
}
