package stats

import (
	"context"
	"sync"

	"locker-admin-backend/internal/model"
)

// Tracker keeps the most recent Summary, recomputing it whenever a new
// reservation snapshot arrives.
type Tracker struct {
	mu      sync.RWMutex
	summary Summary
	has     bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Run consumes reservation snapshots until the channel closes or the
// context is cancelled.
func (t *Tracker) Run(ctx context.Context, snapshots <-chan []model.Reservation) {
	for {
		select {
		case <-ctx.Done():
			return
		case reservations, ok := <-snapshots:
			if !ok {
				return
			}
			t.Observe(reservations)
		}
	}
}

// Observe recomputes the summary from one snapshot.
func (t *Tracker) Observe(reservations []model.Reservation) {
	summary := Compute(reservations)
	t.mu.Lock()
	t.summary = summary
	t.has = true
	t.mu.Unlock()
}

// Latest returns the most recently computed summary.
func (t *Tracker) Latest() (Summary, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.summary, t.has
}
