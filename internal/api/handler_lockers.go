package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locker-admin-backend/internal/model"
	"locker-admin-backend/internal/store"
	"locker-admin-backend/pkg/apierror"
)

// lockerListResponse is the dashboard's inventory view: the latest full
// snapshot plus summary counts.
type lockerListResponse struct {
	Loading bool           `json:"loading"`
	Lockers []model.Locker `json:"lockers"`
	Summary lockerSummary  `json:"summary"`
}

type lockerSummary struct {
	Total    int `json:"total"`
	Reserved int `json:"reserved"`
	Locked   int `json:"locked"`
}

// GetLockers handles GET /api/lockers.
func (h *Handler) GetLockers(c *gin.Context) {
	lockers, _ := h.lockers.Latest()
	if lockers == nil {
		lockers = []model.Locker{}
	}

	summary := lockerSummary{Total: len(lockers)}
	for _, l := range lockers {
		if l.Reserved() {
			summary.Reserved++
		}
		if l.LockState == model.LockStateLocked {
			summary.Locked++
		}
	}

	c.JSON(http.StatusOK, lockerListResponse{
		Loading: h.lockers.Loading(),
		Lockers: lockers,
		Summary: summary,
	})
}

// CreateLocker handles POST /api/lockers.
func (h *Handler) CreateLocker(c *gin.Context) {
	var input store.CreateLockerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, apierror.Validation("invalid request body"))
		return
	}

	if err := h.store.CreateLocker(c.Request.Context(), input); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// DeleteLocker handles DELETE /api/lockers/:id. Deletion is irreversible,
// so the client must send confirm=true; the dashboard sets it after its
// confirmation dialog.
func (h *Handler) DeleteLocker(c *gin.Context) {
	if c.Query("confirm") != "true" {
		abortWithError(c, apierror.Validation("deletion requires confirm=true"))
		return
	}

	if err := h.store.DeleteLocker(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// priceRequest carries the new price. A pointer distinguishes an absent
// field from an explicit 0, which is a valid price.
type priceRequest struct {
	PricePerHour *float64 `json:"pricePerHour"`
}

// UpdatePrice handles PATCH /api/lockers/:id/price. The writer layer does
// not enforce a lower bound on the price.
func (h *Handler) UpdatePrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PricePerHour == nil {
		abortWithError(c, apierror.Validation("pricePerHour is required"))
		return
	}

	if err := h.store.UpdatePrice(c.Request.Context(), c.Param("id"), *req.PricePerHour); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleLock handles POST /api/lockers/:id/toggle. The current lock state
// is read from the latest in-memory snapshot, flipped, and written back;
// on failure the snapshot is left as-is and corrects itself on the next
// subscription push.
func (h *Handler) ToggleLock(c *gin.Context) {
	id := c.Param("id")

	lockers, ok := h.lockers.Latest()
	if !ok {
		abortWithError(c, apierror.Connectivity("locker snapshot not available yet"))
		return
	}

	current := -1
	for _, l := range lockers {
		if l.ID == id {
			current = l.LockState
			break
		}
	}
	if current == -1 {
		abortWithError(c, apierror.NotFound("locker "+id+" not found"))
		return
	}

	next, err := h.store.ToggleLock(c.Request.Context(), id, current)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "lockState": next})
}

type bulkPriceRequest struct {
	LockerIDs    []string `json:"lockerIds"`
	PricePerHour *float64 `json:"pricePerHour"`
}

// BulkUpdatePrice handles POST /api/lockers/price. Updates fire
// concurrently and are not rolled back on partial failure. A per-instance
// flag rejects re-entrant invocation while a run is in flight.
func (h *Handler) BulkUpdatePrice(c *gin.Context) {
	var req bulkPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PricePerHour == nil {
		abortWithError(c, apierror.Validation("lockerIds and pricePerHour are required"))
		return
	}
	if len(req.LockerIDs) == 0 {
		abortWithError(c, apierror.Validation("lockerIds must not be empty"))
		return
	}

	if !h.bulkInFlight.CompareAndSwap(false, true) {
		abortWithError(c, apierror.Conflict("a bulk price update is already in progress"))
		return
	}
	defer h.bulkInFlight.Store(false)

	if err := h.store.BulkUpdatePrice(c.Request.Context(), req.LockerIDs, *req.PricePerHour); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(req.LockerIDs)})
}
