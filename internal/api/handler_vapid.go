package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locker-admin-backend/pkg/apierror"
)

// GetVAPIDPublicKey hands the dashboard the key it needs to register a
// push subscription with the browser.
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	if h.webpush == nil || h.webpush.VAPIDPublicKey == "" {
		abortWithError(c, apierror.Connectivity("push notifications are not configured"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"public_key": h.webpush.VAPIDPublicKey})
}
