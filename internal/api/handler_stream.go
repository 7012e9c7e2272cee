package api

import (
	"io"

	"github.com/gin-gonic/gin"
)

// StreamLockers handles GET /api/lockers/stream: a server-sent-events
// stream forwarding every published locker snapshot. The subscription is
// released when the client disconnects.
func (h *Handler) StreamLockers(c *gin.Context) {
	snapshots, cancel := h.lockers.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
