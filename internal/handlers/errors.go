package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mentorstack/mentorstack-api/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondStoreError maps application errors to HTTP statuses
func respondStoreError(c *gin.Context, message string, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, message, err)
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, message, err)
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, message, err)
	case apperrors.Is(err, apperrors.ErrAccessDenied):
		respondError(c, http.StatusForbidden, message, err)
	case apperrors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, message, err)
	case apperrors.Is(err, apperrors.ErrUnavailable):
		respondError(c, http.StatusServiceUnavailable, message, err)
	default:
		respondError(c, http.StatusInternalServerError, message, err)
	}
}
