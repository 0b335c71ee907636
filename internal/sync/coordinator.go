// Package sync reconciles the offline complaint queue against the server.
// A cycle drains the store once per trigger; triggers arriving mid-cycle are
// coalesced, which is the only concurrency control a cycle needs.
package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/complainthub/client-go/internal/errors"
	"github.com/complainthub/client-go/internal/events"
	"github.com/complainthub/client-go/internal/logging"
	"github.com/complainthub/client-go/internal/models"
)

// Store is the durable queue the coordinator drains.
type Store interface {
	ListAll() ([]models.QueuedComplaint, error)
	RemoveByLocalID(localID string) error
	MarkSyncing(localID string) error
	MarkPending(localID string) error
	Count() (int, error)
}

// Creator submits complaints to the server.
type Creator interface {
	CreateComplaint(ctx context.Context, fields models.Fields, offlineID string) (*models.Complaint, error)
}

// Signal delivers offline-to-online edges.
type Signal interface {
	SubscribeOnline(fn func()) func()
}

// Coordinator runs sync cycles. Only one cycle may be active at a time.
type Coordinator struct {
	store       Store
	api         Creator
	bus         *events.Bus
	itemTimeout time.Duration

	mu              stdsync.Mutex
	cycleInProgress bool
	inFlight        map[string]bool
	lastReport      *Report
	lastSyncTime    time.Time
}

// NewCoordinator creates a Coordinator. itemTimeout bounds each per-item
// server attempt so one hung connection cannot stall the whole cycle.
func NewCoordinator(store Store, api Creator, bus *events.Bus, itemTimeout time.Duration) *Coordinator {
	if itemTimeout <= 0 {
		itemTimeout = 15 * time.Second
	}
	return &Coordinator{
		store:       store,
		api:         api,
		bus:         bus,
		itemTimeout: itemTimeout,
		inFlight:    make(map[string]bool),
	}
}

// Run fires the startup trigger, then a trigger on every offline-to-online
// edge, until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context, signal Signal) {
	unsubscribe := signal.SubscribeOnline(func() {
		c.TriggerSync(ctx)
	})
	defer unsubscribe()

	c.TriggerSync(ctx)

	<-ctx.Done()
}

// TriggerSync starts a sync cycle in the background. Returns false when a
// cycle is already in progress; the trigger is coalesced, not queued. Items
// enqueued mid-cycle are picked up by the next trigger, never retroactively
// by the running one.
func (c *Coordinator) TriggerSync(ctx context.Context) bool {
	if !c.beginCycle() {
		logging.Debug("Sync already in progress, trigger coalesced", nil)
		return false
	}

	go func() {
		defer c.endCycle()
		// A store read failure is already logged and published by runCycle.
		c.runCycle(ctx)
	}()
	return true
}

// SyncNow runs a sync cycle synchronously and returns its report. It fails
// with SYNC_IN_PROGRESS when a cycle is already active.
func (c *Coordinator) SyncNow(ctx context.Context) (*Report, error) {
	if !c.beginCycle() {
		return nil, errors.New(errors.ErrSyncInProgress, "a sync cycle is already running")
	}
	defer c.endCycle()

	return c.runCycle(ctx)
}

// beginCycle atomically claims the single active cycle slot.
func (c *Coordinator) beginCycle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cycleInProgress {
		return false
	}
	c.cycleInProgress = true
	return true
}

func (c *Coordinator) endCycle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cycleInProgress = false
	c.inFlight = make(map[string]bool)
}

// runCycle drains the store once: every item is attempted independently, so
// one failing item never blocks the rest. Succeeded items leave the store;
// failed ones revert to pending for the next trigger. There is no backoff
// and no retry ceiling.
func (c *Coordinator) runCycle(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: time.Now()}

	items, err := c.store.ListAll()
	if err != nil {
		logging.ErrorWithCode("Failed to read offline queue", string(errors.ErrSyncFailed), err, nil)
		c.bus.Publish(events.EventSyncFailed, map[string]interface{}{
			"error": err.Error(),
		})
		return nil, errors.Wrap(errors.ErrSyncFailed, "failed to read offline queue", err)
	}

	if len(items) == 0 {
		report.FinishedAt = time.Now()
		return report, nil
	}

	logging.Info("Sync cycle started", logging.Fields{"items": len(items)})
	c.bus.Publish(events.EventSyncStarted, map[string]interface{}{
		"total": len(items),
	})

	for _, item := range items {
		select {
		case <-ctx.Done():
			// Shutdown mid-cycle: everything not yet attempted stays queued.
			report.Failed = append(report.Failed, ItemFailure{
				LocalID: item.LocalID,
				Error:   ctx.Err().Error(),
			})
			continue
		default:
		}
		c.syncItem(ctx, item, report)
	}

	report.FinishedAt = time.Now()

	c.mu.Lock()
	c.lastReport = report
	c.lastSyncTime = report.FinishedAt
	c.mu.Unlock()

	logging.Info("Sync cycle completed", logging.Fields{
		"succeeded": len(report.Succeeded),
		"failed":    len(report.Failed),
		"outcome":   string(report.Outcome()),
	})
	c.bus.Publish(events.EventSyncCompleted, map[string]interface{}{
		"succeeded": len(report.Succeeded),
		"failed":    len(report.Failed),
		"outcome":   string(report.Outcome()),
		"message":   report.Message(),
	})

	return report, nil
}

// syncItem reconciles one queued complaint and records the outcome.
func (c *Coordinator) syncItem(ctx context.Context, item models.QueuedComplaint, report *Report) {
	if err := c.store.MarkSyncing(item.LocalID); err != nil {
		report.Failed = append(report.Failed, ItemFailure{LocalID: item.LocalID, Error: err.Error()})
		return
	}

	c.mu.Lock()
	c.inFlight[item.LocalID] = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.inFlight, item.LocalID)
		c.mu.Unlock()
	}()

	attemptCtx, cancel := context.WithTimeout(ctx, c.itemTimeout)
	defer cancel()

	// The localId rides along as offline_id so the server can reject a
	// duplicate if an earlier ack was lost.
	complaint, err := c.api.CreateComplaint(attemptCtx, item.Fields, item.LocalID)
	if err != nil {
		if markErr := c.store.MarkPending(item.LocalID); markErr != nil {
			logging.Error("Failed to revert item to pending", markErr,
				logging.Fields{"local_id": item.LocalID})
		}
		logging.Warn("Sync item failed, staying queued", logging.Fields{
			"local_id": item.LocalID,
			"error":    err.Error(),
		})
		report.Failed = append(report.Failed, ItemFailure{LocalID: item.LocalID, Error: err.Error()})
		return
	}

	if err := c.store.RemoveByLocalID(item.LocalID); err != nil {
		// The server acknowledged but the local removal failed. The record
		// stays queued, so the next cycle resubmits it and relies on the
		// server-side offline_id dedup to avoid a duplicate complaint.
		logging.ErrorWithCode("Failed to remove synced item", string(errors.ErrStorage), err,
			logging.Fields{"local_id": item.LocalID})
		report.Failed = append(report.Failed, ItemFailure{LocalID: item.LocalID, Error: err.Error()})
		return
	}

	c.bus.Publish(events.EventQueueChanged, map[string]interface{}{
		"local_id": item.LocalID,
		"reason":   "synced",
	})
	report.Succeeded = append(report.Succeeded, ItemSuccess{
		LocalID:  item.LocalID,
		ServerID: complaint.ID,
	})
}
