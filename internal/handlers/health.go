package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/posts-gateway/backend/internal/models"
)

type HealthHandler struct {
	started time.Time
}

func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started}
}

// Health reports liveness. It never touches the data store.
func (h *HealthHandler) Health(c *gin.Context) {
	now := time.Now()
	c.JSON(http.StatusOK, models.HealthResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		// both readings carry the monotonic clock, so uptime never goes backwards
		Uptime: now.Sub(h.started).Seconds(),
	})
}
