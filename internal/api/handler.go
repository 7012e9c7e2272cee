package api

import (
	"sync/atomic"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"locker-admin-backend/internal/model"
	"locker-admin-backend/internal/stats"
	"locker-admin-backend/internal/store"
	"locker-admin-backend/pkg/apierror"
)

// SnapshotSource is the read side of a live collection subscription as the
// handlers consume it.
type SnapshotSource[T any] interface {
	Latest() ([]T, bool)
	Loading() bool
	Subscribe() (<-chan []T, func())
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	lockers  SnapshotSource[model.Locker]
	tracker  *stats.Tracker
	registry *gorm.DB
	webpush  *webpush.Options

	// bulkInFlight guards the bulk price endpoint against re-entrant
	// invocation from this instance. It does not coordinate with other
	// dashboard instances.
	bulkInFlight atomic.Bool
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, lockers SnapshotSource[model.Locker], tracker *stats.Tracker, registry *gorm.DB, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:    s,
		lockers:  lockers,
		tracker:  tracker,
		registry: registry,
		webpush:  webpushOptions,
	}
}

// abortWithError writes a classified error response.
func abortWithError(c *gin.Context, err error) {
	apiErr := apierror.From(err)
	c.AbortWithStatusJSON(apiErr.StatusCode, gin.H{"code": apiErr.Code, "error": apiErr.Message})
}
