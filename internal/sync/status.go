package sync

import (
	"sort"
	"time"

	"github.com/complainthub/client-go/internal/logging"
)

// Status is a read-only projection of queue and cycle state for UI
// consumption. It carries no mutation authority.
type Status struct {
	Pending         int        `json:"pending"`
	CycleInProgress bool       `json:"cycleInProgress"`
	InFlight        []string   `json:"inFlight"`
	LastSyncTime    *time.Time `json:"lastSyncTime,omitempty"`
	LastReport      *Report    `json:"lastReport,omitempty"`
}

// Status returns the current sync status snapshot.
func (c *Coordinator) Status() Status {
	pending, err := c.store.Count()
	if err != nil {
		logging.Error("Failed to count queued complaints", err, nil)
		pending = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	status := Status{
		Pending:         pending,
		CycleInProgress: c.cycleInProgress,
		InFlight:        make([]string, 0, len(c.inFlight)),
		LastReport:      c.lastReport,
	}
	for id := range c.inFlight {
		status.InFlight = append(status.InFlight, id)
	}
	sort.Strings(status.InFlight)

	if !c.lastSyncTime.IsZero() {
		t := c.lastSyncTime
		status.LastSyncTime = &t
	}

	return status
}
