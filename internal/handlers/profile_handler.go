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

// ProfileHandler handles the authenticated profile endpoints
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile handles GET /api/v1/mentor/profile
// Returns the resolved mentor record, including approval status.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	mentor, err := middleware.GetMentor(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentor": mentor})
}

// UpdateProfile handles POST /api/v1/mentor/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	mentor, err := middleware.GetMentor(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.SaveProfileRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}

	if err := h.service.SaveProfile(c.Request.Context(), mentor.ID, &req); err != nil {
		respondStoreError(c, "Failed to update profile", err)
		return
	}

	logger.Info("Profile updated",
		zap.String("mentor_id", mentor.ID))

	c.JSON(http.StatusOK, models.SaveProfileResponse{Success: true})
}

// UploadPicture handles POST /api/v1/mentor/profile/picture
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	mentor, err := middleware.GetMentor(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.UploadProfilePictureRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}

	imageURL, err := h.service.UploadProfilePicture(c.Request.Context(), mentor.ID, &req)
	if err != nil {
		respondStoreError(c, "Failed to upload picture", err)
		return
	}

	logger.Info("Profile picture uploaded",
		zap.String("mentor_id", mentor.ID),
		zap.String("image_url", imageURL))

	c.JSON(http.StatusOK, models.UploadProfilePictureResponse{
		Success:  true,
		Message:  "Profile picture uploaded successfully",
		ImageURL: imageURL,
	})
}
