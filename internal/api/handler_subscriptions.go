package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"locker-admin-backend/internal/model"
	"locker-admin-backend/pkg/apierror"
)

type putSubscriptionRequest struct {
	Endpoint       string   `json:"endpoint" binding:"required"`
	P256DH         string   `json:"p256dh" binding:"required"`
	Auth           string   `json:"auth" binding:"required"`
	WatchedLockers []string `json:"watched_lockers"`
}

// PutSubscription creates or replaces a push subscription and the set of
// lockers it watches.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apierror.Validation("endpoint, p256dh and auth are required"))
		return
	}

	subscription := model.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.P256DH,
		Auth:     req.Auth,
	}

	err := h.registry.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(&subscription).Error; err != nil {
			return err
		}

		if err := tx.Where("endpoint = ?", req.Endpoint).Delete(&model.WatchedLocker{}).Error; err != nil {
			return err
		}

		if len(req.WatchedLockers) == 0 {
			return nil
		}
		watched := make([]model.WatchedLocker, 0, len(req.WatchedLockers))
		for _, id := range req.WatchedLockers {
			watched = append(watched, model.WatchedLocker{Endpoint: req.Endpoint, LockerID: id})
		}
		return tx.Create(&watched).Error
	})

	if err != nil {
		abortWithError(c, apierror.Internal(err.Error()))
		return
	}

	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription removes a push subscription and its watch list.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apierror.Validation("endpoint is required"))
		return
	}

	err := h.registry.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("endpoint = ?", req.Endpoint).Delete(&model.WatchedLocker{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PushSubscription{Endpoint: req.Endpoint}).Error
	})
	if err != nil {
		abortWithError(c, apierror.Internal(err.Error()))
		return
	}

	c.Status(http.StatusNoContent)
}

// rawQueryParam extracts a query value without URL decoding; push service
// endpoints are matched byte-for-byte against the stored value.
func rawQueryParam(rawQuery, key string) (string, bool) {
	for _, kv := range strings.Split(rawQuery, "&") {
		if strings.HasPrefix(kv, key+"=") {
			return kv[len(key)+1:], true
		}
	}
	return "", false
}

// GetSubscription returns the watch list for one subscription.
func (h *Handler) GetSubscription(c *gin.Context) {
	endpoint, ok := rawQueryParam(c.Request.URL.RawQuery, "endpoint")
	if !ok || endpoint == "" {
		abortWithError(c, apierror.Validation("endpoint is required"))
		return
	}

	var subscription model.PushSubscription
	if err := h.registry.Preload("Lockers").First(&subscription, "endpoint = ?", endpoint).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			abortWithError(c, apierror.NotFound("subscription not found"))
		} else {
			abortWithError(c, apierror.Internal(err.Error()))
		}
		return
	}

	lockerIDs := make([]string, len(subscription.Lockers))
	for i, w := range subscription.Lockers {
		lockerIDs[i] = w.LockerID
	}

	c.JSON(http.StatusOK, gin.H{"watched_lockers": lockerIDs})
}
