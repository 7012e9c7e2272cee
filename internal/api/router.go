package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"locker-admin-backend/config"
	"locker-admin-backend/internal/model"
	"locker-admin-backend/internal/mw"
	"locker-admin-backend/internal/stats"
	"locker-admin-backend/internal/store"
)

// NewRouter creates and configures the admin API router.
func NewRouter(cfg *config.ServerConfig, s store.Store, lockers SnapshotSource[model.Locker], tracker *stats.Tracker, registry *gorm.DB, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, lockers, tracker, registry, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/lockers", caching, handler.GetLockers)
		api.GET("/lockers/stream", handler.StreamLockers)
		api.POST("/lockers", handler.CreateLocker)
		api.DELETE("/lockers/:id", handler.DeleteLocker)
		api.PATCH("/lockers/:id/price", handler.UpdatePrice)
		api.POST("/lockers/:id/toggle", handler.ToggleLock)
		api.POST("/lockers/price", handler.BulkUpdatePrice)

		api.GET("/analytics", caching, handler.GetAnalytics)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
