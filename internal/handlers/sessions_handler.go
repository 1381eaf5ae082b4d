package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mentorstack/mentorstack-api/internal/middleware"
	"github.com/mentorstack/mentorstack-api/internal/services"
)

// SessionsHandler handles the read-only session endpoints
type SessionsHandler struct {
	service services.SessionSummaryServiceInterface
}

// NewSessionsHandler creates a new SessionsHandler
func NewSessionsHandler(service services.SessionSummaryServiceInterface) *SessionsHandler {
	return &SessionsHandler{service: service}
}

// GetStats handles GET /api/v1/mentor/sessions/stats
func (h *SessionsHandler) GetStats(c *gin.Context) {
	mentor, err := middleware.GetMentor(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), mentor.ID)
	if err != nil {
		respondStoreError(c, "Failed to load session stats", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ListUpcoming handles GET /api/v1/mentor/sessions/upcoming?limit=N
func (h *SessionsHandler) ListUpcoming(c *gin.Context) {
	mentor, err := middleware.GetMentor(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "Invalid limit", parseErr)
			return
		}
		limit = parsed
	}

	sessions, err := h.service.ListUpcoming(c.Request.Context(), mentor.ID, limit)
	if err != nil {
		respondStoreError(c, "Failed to load upcoming sessions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
