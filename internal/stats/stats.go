// Package stats derives reservation usage metrics from a snapshot. The
// computation is a pure function of the current snapshot, recomputed in
// full on every change; there is no incremental aggregation. A record that
// is malformed for one metric is excluded from that metric only and never
// aborts the others.
package stats

import (
	"sort"

	"locker-admin-backend/internal/model"
)

// LockerCount is one entry of the top-lockers ranking.
type LockerCount struct {
	LockerID string `json:"lockerId"`
	Count    int    `json:"count"`
}

// DayCount is one entry of the per-day time series.
type DayCount struct {
	Date  string `json:"date"` // UTC calendar date, YYYY-MM-DD
	Count int    `json:"count"`
}

// StatusCount is one entry of the status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Summary holds the derived usage metrics. Pointer fields are nil when no
// sample qualifies for that metric.
type Summary struct {
	Total              int           `json:"total"`
	AvgDurationMinutes *float64      `json:"avgDurationMinutes"`
	PeakHour           *int          `json:"peakHour"`
	TopLockers         []LockerCount `json:"topLockers"`
	PerDay             []DayCount    `json:"perDay"`
	StatusBreakdown    []StatusCount `json:"statusBreakdown"`
}

const topLockerLimit = 5

// Compute derives all metrics from the reservation snapshot, one pass per
// metric.
func Compute(reservations []model.Reservation) Summary {
	return Summary{
		Total:              len(reservations),
		AvgDurationMinutes: averageDuration(reservations),
		PeakHour:           peakHour(reservations),
		TopLockers:         topLockers(reservations),
		PerDay:             perDaySeries(reservations),
		StatusBreakdown:    statusBreakdown(reservations),
	}
}

// averageDuration is the arithmetic mean of the strictly positive sample
// durations, in minutes. Reservations with a missing or unparseable start
// or end are excluded from the sample; nil when none qualify.
func averageDuration(reservations []model.Reservation) *float64 {
	var sum float64
	var n int
	for _, r := range reservations {
		minutes, ok := r.DurationMinutes()
		if !ok {
			continue
		}
		sum += minutes
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// peakHour builds a 24-bucket histogram of start hours (UTC) and returns
// the index of the maximum bucket. Ties resolve to the lowest-indexed
// hour; nil when every bucket is zero.
func peakHour(reservations []model.Reservation) *int {
	var buckets [24]int
	for _, r := range reservations {
		start, ok := r.StartAt.Time()
		if !ok {
			continue
		}
		buckets[start.UTC().Hour()]++
	}

	peak, max := 0, 0
	for h, c := range buckets {
		if c > max {
			peak, max = h, c
		}
	}
	if max == 0 {
		return nil
	}
	return &peak
}

// topLockers groups by locker identifier and returns the five most
// reserved, descending by count. The sort is stable, so ties retain
// encounter order.
func topLockers(reservations []model.Reservation) []LockerCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range reservations {
		if r.LockerID == "" {
			continue
		}
		if _, seen := counts[r.LockerID]; !seen {
			order = append(order, r.LockerID)
		}
		counts[r.LockerID]++
	}

	ranked := make([]LockerCount, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, LockerCount{LockerID: id, Count: counts[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topLockerLimit {
		ranked = ranked[:topLockerLimit]
	}
	return ranked
}

// perDaySeries groups by the UTC calendar date of each reservation's
// creation time, ascending by date string.
func perDaySeries(reservations []model.Reservation) []DayCount {
	counts := make(map[string]int)
	for _, r := range reservations {
		created, ok := r.CreatedAt.Time()
		if !ok {
			continue
		}
		counts[created.UTC().Format("2006-01-02")]++
	}

	series := make([]DayCount, 0, len(counts))
	for date, c := range counts {
		series = append(series, DayCount{Date: date, Count: c})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})
	return series
}

// statusBreakdown counts reservations per status label, descending by
// count with stable ties. A missing status counts under "unknown", so
// every reservation lands in exactly one bucket.
func statusBreakdown(reservations []model.Reservation) []StatusCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range reservations {
		status := r.Status
		if status == "" {
			status = "unknown"
		}
		if _, seen := counts[status]; !seen {
			order = append(order, status)
		}
		counts[status]++
	}

	breakdown := make([]StatusCount, 0, len(order))
	for _, status := range order {
		breakdown = append(breakdown, StatusCount{Status: status, Count: counts[status]})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Count > breakdown[j].Count
	})
	return breakdown
}
