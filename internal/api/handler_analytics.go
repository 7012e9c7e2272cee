package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locker-admin-backend/internal/stats"
)

// analyticsResponse carries the latest derived usage metrics. Ready is
// false until the first reservation snapshot has been aggregated.
type analyticsResponse struct {
	Ready   bool          `json:"ready"`
	Summary stats.Summary `json:"summary"`
}

// GetAnalytics handles GET /api/analytics.
func (h *Handler) GetAnalytics(c *gin.Context) {
	summary, ready := h.tracker.Latest()
	c.JSON(http.StatusOK, analyticsResponse{
		Ready:   ready,
		Summary: summary,
	})
}
