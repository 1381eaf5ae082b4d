package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/services"
)

// ApplicationHandler handles the public mentor application endpoint
type ApplicationHandler struct {
	service services.ApplicationServiceInterface
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(service services.ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply handles POST /api/v1/apply
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req models.ApplyRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), &req)
	if err != nil {
		respondStoreError(c, "Failed to submit application", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
