package notification

import (
	"context"
	"log"

	"locker-admin-backend/internal/model"
)

// Monitor consumes locker snapshots and dispatches an alert whenever a
// locker transitions into one of the configured alerting statuses. The
// first snapshot only establishes the baseline; lockers already alerting
// at startup do not re-notify.
type Monitor struct {
	pool     *WorkerPool
	alerting map[model.DoorStatus]bool
	prev     map[string]model.DoorStatus
	primed   bool
}

// NewMonitor creates a monitor dispatching into the given pool.
func NewMonitor(pool *WorkerPool, alertStatuses []string) *Monitor {
	alerting := make(map[model.DoorStatus]bool, len(alertStatuses))
	for _, s := range alertStatuses {
		alerting[model.ParseDoorStatus(s)] = true
	}
	return &Monitor{
		pool:     pool,
		alerting: alerting,
		prev:     make(map[string]model.DoorStatus),
	}
}

// Run processes snapshots until the channel closes or the context is
// cancelled.
func (m *Monitor) Run(ctx context.Context, snapshots <-chan []model.Locker) {
	for {
		select {
		case <-ctx.Done():
			return
		case lockers, ok := <-snapshots:
			if !ok {
				return
			}
			m.Observe(lockers)
		}
	}
}

// Observe compares one snapshot against the previous statuses and
// dispatches alerts for new transitions.
func (m *Monitor) Observe(lockers []model.Locker) {
	seen := make(map[string]model.DoorStatus, len(lockers))
	for _, l := range lockers {
		seen[l.ID] = l.DoorStatus

		if m.primed {
			old, known := m.prev[l.ID]
			if m.alerting[l.DoorStatus] && (!known || old != l.DoorStatus) {
				log.Printf("locker %s transitioned to %s, dispatching alert", l.ID, l.DoorStatus)
				m.pool.Dispatch(Alert{LockerID: l.ID, Label: l.Label, Status: l.DoorStatus})
			}
		}
	}
	m.prev = seen
	m.primed = true
}
