package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locker-admin-backend/internal/model"
)

func res(lockerID, status string, created, start, end time.Time) model.Reservation {
	return model.Reservation{
		LockerID:  lockerID,
		UserID:    "u1",
		Status:    status,
		CreatedAt: model.NewFlexTime(created),
		StartAt:   model.NewFlexTime(start),
		EndAt:     model.NewFlexTime(end),
	}
}

func TestCompute_EmptySnapshot(t *testing.T) {
	summary := Compute(nil)

	assert.Equal(t, 0, summary.Total)
	assert.Nil(t, summary.AvgDurationMinutes)
	assert.Nil(t, summary.PeakHour)
	assert.Empty(t, summary.TopLockers)
	assert.Empty(t, summary.PerDay)
	assert.Empty(t, summary.StatusBreakdown)
}

func TestAverageDuration(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		reservations []model.Reservation
		expected     *float64
	}{
		{
			name: "mean of qualifying samples",
			reservations: []model.Reservation{
				res("A", "active", base, base, base.Add(60*time.Minute)),
				res("B", "active", base, base, base.Add(120*time.Minute)),
			},
			expected: ptr(90.0),
		},
		{
			name: "end before start is excluded",
			reservations: []model.Reservation{
				res("A", "active", base, base, base.Add(-30*time.Minute)),
				res("B", "active", base, base, base.Add(30*time.Minute)),
			},
			expected: ptr(30.0),
		},
		{
			name: "zero duration is excluded",
			reservations: []model.Reservation{
				res("A", "active", base, base, base),
			},
			expected: nil,
		},
		{
			name: "missing end is excluded",
			reservations: []model.Reservation{
				{LockerID: "A", StartAt: model.NewFlexTime(base)},
			},
			expected: nil,
		},
		{
			name: "missing start is excluded",
			reservations: []model.Reservation{
				{LockerID: "A", EndAt: model.NewFlexTime(base)},
			},
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.reservations).AvgDurationMinutes
			if tc.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.InDelta(t, *tc.expected, *got, 1e-9)
			}
		})
	}
}

// A reservation whose endAt arrives as an ISO string must contribute the
// same sample as one with both ends typed.
func TestAverageDuration_MixedEndFormats(t *testing.T) {
	var mixed model.Reservation
	err := json.Unmarshal([]byte(`{
		"lockerId": "L-1",
		"startAt": "2024-01-01T01:00:00Z",
		"endAt": "2024-01-01T02:00:00Z"
	}`), &mixed)
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
	typed := res("L-1", "active", start, start, start.Add(time.Hour))

	fromMixed := Compute([]model.Reservation{mixed}).AvgDurationMinutes
	fromTyped := Compute([]model.Reservation{typed}).AvgDurationMinutes

	require.NotNil(t, fromMixed)
	require.NotNil(t, fromTyped)
	assert.Equal(t, 60.0, *fromMixed)
	assert.Equal(t, *fromTyped, *fromMixed)
}

func TestPeakHour_FirstMaxWins(t *testing.T) {
	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	var reservations []model.Reservation
	// Hour 1 and hour 2 both get 5 starts, hour 0 gets 3.
	for i := 0; i < 3; i++ {
		start := base.Add(0 * time.Hour)
		reservations = append(reservations, res("A", "active", base, start, start.Add(time.Hour)))
	}
	for i := 0; i < 5; i++ {
		start := base.Add(1 * time.Hour)
		reservations = append(reservations, res("A", "active", base, start, start.Add(time.Hour)))
	}
	for i := 0; i < 5; i++ {
		start := base.Add(2 * time.Hour)
		reservations = append(reservations, res("A", "active", base, start, start.Add(time.Hour)))
	}

	peak := Compute(reservations).PeakHour
	require.NotNil(t, peak)
	assert.Equal(t, 1, *peak)
}

func TestPeakHour_NoParseableStarts(t *testing.T) {
	reservations := []model.Reservation{
		{LockerID: "A", Status: "active"},
	}
	assert.Nil(t, Compute(reservations).PeakHour)
}

func TestTopLockers(t *testing.T) {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	mk := func(lockerID string, n int) []model.Reservation {
		out := make([]model.Reservation, n)
		for i := range out {
			out[i] = res(lockerID, "active", base, base, base.Add(time.Hour))
		}
		return out
	}

	t.Run("ties retain encounter order", func(t *testing.T) {
		var reservations []model.Reservation
		reservations = append(reservations, mk("A", 4)...)
		reservations = append(reservations, mk("B", 4)...)
		reservations = append(reservations, mk("C", 2)...)

		top := Compute(reservations).TopLockers
		require.Len(t, top, 3)
		assert.Equal(t, LockerCount{LockerID: "A", Count: 4}, top[0])
		assert.Equal(t, LockerCount{LockerID: "B", Count: 4}, top[1])
		assert.Equal(t, LockerCount{LockerID: "C", Count: 2}, top[2])
	})

	t.Run("truncates at five entries", func(t *testing.T) {
		var reservations []model.Reservation
		for _, id := range []string{"A", "B", "C", "D", "E", "F", "G"} {
			reservations = append(reservations, mk(id, 1)...)
		}
		assert.Len(t, Compute(reservations).TopLockers, 5)
	})

	t.Run("missing locker id is excluded", func(t *testing.T) {
		reservations := append(mk("A", 1), model.Reservation{Status: "active"})
		top := Compute(reservations).TopLockers
		require.Len(t, top, 1)
		assert.Equal(t, "A", top[0].LockerID)
	})
}

func TestPerDaySeries(t *testing.T) {
	d1 := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	d2a := time.Date(2024, 3, 10, 0, 15, 0, 0, time.UTC)
	d2b := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

	reservations := []model.Reservation{
		res("A", "active", d2a, d2a, d2a.Add(time.Hour)),
		res("B", "active", d1, d1, d1.Add(time.Hour)),
		res("C", "active", d2b, d2b, d2b.Add(time.Hour)),
		{LockerID: "D", Status: "active"}, // no creation time, excluded
	}

	series := Compute(reservations).PerDay
	require.Len(t, series, 2)
	assert.Equal(t, DayCount{Date: "2024-03-09", Count: 1}, series[0])
	assert.Equal(t, DayCount{Date: "2024-03-10", Count: 2}, series[1])
}

func TestStatusBreakdown(t *testing.T) {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	reservations := []model.Reservation{
		res("A", "active", base, base, base.Add(time.Hour)),
		res("B", "active", base, base, base.Add(time.Hour)),
		res("C", "expired", base, base, base.Add(time.Hour)),
		res("D", "", base, base, base.Add(time.Hour)),
	}

	breakdown := Compute(reservations).StatusBreakdown
	require.Len(t, breakdown, 3)
	assert.Equal(t, StatusCount{Status: "active", Count: 2}, breakdown[0])

	// Every reservation lands in exactly one bucket.
	total := 0
	labels := make(map[string]bool)
	for _, b := range breakdown {
		total += b.Count
		labels[b.Status] = true
	}
	assert.Equal(t, len(reservations), total)
	assert.True(t, labels["unknown"], "missing status should normalize to unknown")
}

// One malformed record must never prevent the other metrics from being
// computed.
func TestCompute_MalformedRecordDoesNotAbort(t *testing.T) {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	reservations := []model.Reservation{
		{}, // nothing parseable at all
		res("A", "active", base, base, base.Add(time.Hour)),
	}

	summary := Compute(reservations)
	assert.Equal(t, 2, summary.Total)
	require.NotNil(t, summary.AvgDurationMinutes)
	assert.Equal(t, 60.0, *summary.AvgDurationMinutes)
	require.NotNil(t, summary.PeakHour)
	assert.Equal(t, 12, *summary.PeakHour)
	assert.Len(t, summary.TopLockers, 1)
	assert.Len(t, summary.PerDay, 1)
	// The empty record still counts in the status breakdown, as unknown.
	assert.Len(t, summary.StatusBreakdown, 2)
}

func ptr(f float64) *float64 { return &f }
