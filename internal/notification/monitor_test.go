package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locker-admin-backend/internal/model"
)

func drainAlerts(pool *WorkerPool) []Alert {
	var alerts []Alert
	for {
		select {
		case a := <-pool.Jobs():
			alerts = append(alerts, a)
		default:
			return alerts
		}
	}
}

func TestMonitor(t *testing.T) {
	pool := NewWorkerPool(4, nil, nil)
	monitor := NewMonitor(pool, []string{"malfunction", "offline"})

	// The first snapshot only establishes the baseline, even when a
	// locker is already alerting.
	monitor.Observe([]model.Locker{
		{ID: "L-1", DoorStatus: model.StatusMalfunction},
		{ID: "L-2", DoorStatus: model.StatusClosed},
	})
	assert.Empty(t, drainAlerts(pool))

	// A transition into an alerting status dispatches once.
	monitor.Observe([]model.Locker{
		{ID: "L-1", DoorStatus: model.StatusMalfunction},
		{ID: "L-2", Label: "Lobby 2", DoorStatus: model.StatusOffline},
	})
	alerts := drainAlerts(pool)
	require.Len(t, alerts, 1)
	assert.Equal(t, Alert{LockerID: "L-2", Label: "Lobby 2", Status: model.StatusOffline}, alerts[0])

	// An unchanged alerting status does not re-dispatch.
	monitor.Observe([]model.Locker{
		{ID: "L-1", DoorStatus: model.StatusMalfunction},
		{ID: "L-2", Label: "Lobby 2", DoorStatus: model.StatusOffline},
	})
	assert.Empty(t, drainAlerts(pool))

	// Recovery and relapse alerts again.
	monitor.Observe([]model.Locker{
		{ID: "L-1", DoorStatus: model.StatusMalfunction},
		{ID: "L-2", Label: "Lobby 2", DoorStatus: model.StatusAvailable},
	})
	assert.Empty(t, drainAlerts(pool))

	monitor.Observe([]model.Locker{
		{ID: "L-1", DoorStatus: model.StatusMalfunction},
		{ID: "L-2", Label: "Lobby 2", DoorStatus: model.StatusOffline},
	})
	alerts = drainAlerts(pool)
	require.Len(t, alerts, 1)
	assert.Equal(t, "L-2", alerts[0].LockerID)
}

func TestMonitor_NewLockerAlreadyAlerting(t *testing.T) {
	pool := NewWorkerPool(4, nil, nil)
	monitor := NewMonitor(pool, []string{"malfunction"})

	monitor.Observe([]model.Locker{{ID: "L-1", DoorStatus: model.StatusClosed}})
	require.Empty(t, drainAlerts(pool))

	// A locker first seen in an alerting status after the baseline counts
	// as a transition.
	monitor.Observe([]model.Locker{
		{ID: "L-1", DoorStatus: model.StatusClosed},
		{ID: "L-2", DoorStatus: model.StatusMalfunction},
	})
	alerts := drainAlerts(pool)
	require.Len(t, alerts, 1)
	assert.Equal(t, "L-2", alerts[0].LockerID)
}

func TestMonitor_UnrecognizedStatusNeverAlerts(t *testing.T) {
	pool := NewWorkerPool(4, nil, nil)
	monitor := NewMonitor(pool, []string{"malfunction"})

	monitor.Observe([]model.Locker{{ID: "L-1", DoorStatus: model.StatusClosed}})
	monitor.Observe([]model.Locker{{ID: "L-1", DoorStatus: model.DoorStatus("wedged")}})
	assert.Empty(t, drainAlerts(pool))
}
