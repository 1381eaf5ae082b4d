package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorstack/mentorstack-api/internal/middleware"
	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/services"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"go.uber.org/zap"
)

// AvailabilityHandler handles the authenticated availability endpoints
type AvailabilityHandler struct {
	service services.AvailabilityServiceInterface
}

// NewAvailabilityHandler creates a new AvailabilityHandler
func NewAvailabilityHandler(service services.AvailabilityServiceInterface) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// ListSlots handles GET /api/v1/mentor/slots
// Returns the mentor's slots plus their calendar projection. A mentor
// without slots gets empty lists, not an error.
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	mentor, err := middleware.GetMentor(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	slots, err := h.service.ListSlots(c.Request.Context(), mentor.ID)
	if err != nil {
		respondStoreError(c, "Failed to load availability", err)
		return
	}

	events, err := h.service.GetCalendar(c.Request.Context(), mentor.ID)
	if err != nil {
		respondStoreError(c, "Failed to load availability", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slots":  slots,
		"events": events,
	})
}

// CreateSlot handles POST /api/v1/mentor/slots
// Returns the created slot and the reloaded authoritative slot list.
func (h *AvailabilityHandler) CreateSlot(c *gin.Context) {
	mentor, err := middleware.GetMentor(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.CreateSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}

	slot, slots, err := h.service.CreateSlot(c.Request.Context(), mentor.ID, &req)
	if err != nil {
		respondStoreError(c, "Failed to create slot", err)
		return
	}

	logger.Info("Slot created via API",
		zap.String("mentor_id", mentor.ID),
		zap.String("slot_id", slot.ID))

	c.JSON(http.StatusCreated, gin.H{
		"slot":  slot,
		"slots": slots,
	})
}

// DeleteSlot handles DELETE /api/v1/mentor/slots/:id?confirm=true
// The confirm flag is the explicit confirmation gate: without it no store
// call happens and the slot list is untouched.
func (h *AvailabilityHandler) DeleteSlot(c *gin.Context) {
	mentor, err := middleware.GetMentor(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	slotID := c.Param("id")
	confirmed := c.Query("confirm") == "true"

	slots, err := h.service.DeleteSlot(c.Request.Context(), mentor.ID, slotID, confirmed)
	if err != nil {
		respondStoreError(c, "Failed to delete slot", err)
		return
	}

	logger.Info("Slot deleted via API",
		zap.String("mentor_id", mentor.ID),
		zap.String("slot_id", slotID))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"slots":   slots,
	})
}
