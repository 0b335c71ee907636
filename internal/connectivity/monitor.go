// Package connectivity tracks network reachability and fires edge-triggered
// notifications when the connection comes back.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/complainthub/client-go/internal/logging"
)

// Prober checks whether the complaint server is reachable.
type Prober interface {
	Ping(ctx context.Context) error
}

// Monitor exposes the current online state and notifies subscribers exactly
// once per offline-to-online transition. Subscribers registered while already
// online do not fire until the next transition.
type Monitor struct {
	mu        sync.RWMutex
	online    bool
	nextID    int
	listeners map[int]func()
}

// NewMonitor creates a Monitor. The initial state is online; the first probe
// corrects it if the network is actually down.
func NewMonitor() *Monitor {
	return &Monitor{
		online:    true,
		listeners: make(map[int]func()),
	}
}

// IsOnline reports the current reachability state.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// SubscribeOnline registers fn to run on every offline-to-online edge and
// returns an unsubscribe function.
func (m *Monitor) SubscribeOnline(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// SetOnline updates the state. Listeners fire only on the transition into
// online; repeated SetOnline(true) calls while already online fire nothing.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	wasOnline := m.online
	m.online = online

	var toFire []func()
	if !wasOnline && online {
		toFire = make([]func(), 0, len(m.listeners))
		for _, fn := range m.listeners {
			toFire = append(toFire, fn)
		}
	}
	m.mu.Unlock()

	if wasOnline != online {
		logging.Info("Connectivity changed", logging.Fields{
			"was_online": wasOnline,
			"is_online":  online,
		})
	}

	for _, fn := range toFire {
		fn()
	}
}

// Run probes the server on a fixed cadence and feeds the results into
// SetOnline. It blocks until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context, prober Prober, interval, probeTimeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		m.SetOnline(prober.Ping(probeCtx) == nil)
	}

	probe()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
