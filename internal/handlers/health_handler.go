package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness and backing store reachability
type HealthHandler struct {
	dbPing func(ctx context.Context) error
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(dbPing func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{dbPing: dbPing}
}

// Healthcheck handles GET /health
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.dbPing(ctx); err != nil {
		attachError(c, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
