package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locker-admin-backend/internal/model"
	"locker-admin-backend/internal/stats"
)

func TestGetAnalytics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracker := stats.NewTracker()
	handler := NewHandler(&mockStore{}, &fakeSource{}, tracker, nil, nil)

	r := gin.New()
	r.GET("/api/analytics", handler.GetAnalytics)

	t.Run("not ready before the first snapshot", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/analytics", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp analyticsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Ready)
	})

	t.Run("serves the recomputed summary after a snapshot", func(t *testing.T) {
		start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		tracker.Observe([]model.Reservation{
			{
				LockerID:  "L-1",
				Status:    "active",
				CreatedAt: model.NewFlexTime(start),
				StartAt:   model.NewFlexTime(start),
				EndAt:     model.NewFlexTime(start.Add(30 * time.Minute)),
			},
		})

		w := doJSON(r, http.MethodGet, "/api/analytics", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp analyticsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Ready)
		assert.Equal(t, 1, resp.Summary.Total)
		require.NotNil(t, resp.Summary.AvgDurationMinutes)
		assert.Equal(t, 30.0, *resp.Summary.AvgDurationMinutes)
		require.NotNil(t, resp.Summary.PeakHour)
		assert.Equal(t, 9, *resp.Summary.PeakHour)
	})
}
