package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/services"
	"github.com/mentorstack/mentorstack-api/pkg/jwt"
)

const (
	// IdentityContextKey is the key used to store the verified identity in context
	IdentityContextKey = "identity"

	// MentorContextKey is the key used to store the resolved mentor in context
	MentorContextKey = "mentor"

	// MentorIDContextKey is the key used to store the resolved mentor ID in context
	MentorIDContextKey = "mentor_id"
)

var (
	ErrIdentityNotFound = errors.New("identity not found in context")
	ErrMentorNotFound   = errors.New("mentor not found in context")
)

// AuthMiddleware validates the bearer token issued by the identity provider
// and stores the verified identity in context
func AuthMiddleware(verifier *jwt.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			_ = c.Error(fmt.Errorf("missing bearer token")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := verifier.ValidateToken(token)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid bearer token: %w", err)) //nolint:errcheck

			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		c.Set(IdentityContextKey, &models.Identity{
			AccountID: claims.AccountID(),
			Phone:     claims.Phone,
			Email:     claims.Email,
		})
		c.Next()
	}
}

// MentorMiddleware resolves the verified identity to a mentor profile and
// stores the mentor in context. A resolution failure is fatal for the
// request: nothing behind this middleware works without a mentor.
func MentorMiddleware(identityService services.IdentityServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := GetIdentity(c)
		if err != nil {
			_ = c.Error(err) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		result, err := identityService.Resolve(c.Request.Context(), identity)
		if err != nil {
			_ = c.Error(fmt.Errorf("identity resolution failed: %w", err)) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not resolve mentor profile, please sign in again"})
			c.Abort()
			return
		}

		c.Set(MentorContextKey, result.Mentor)
		c.Set(MentorIDContextKey, result.Mentor.ID)
		c.Next()
	}
}

// GetIdentity extracts the verified identity from context
func GetIdentity(c *gin.Context) (*models.Identity, error) {
	val, exists := c.Get(IdentityContextKey)
	if !exists {
		return nil, ErrIdentityNotFound
	}

	identity, ok := val.(*models.Identity)
	if !ok {
		return nil, ErrIdentityNotFound
	}

	return identity, nil
}

// GetMentor extracts the resolved mentor from context
func GetMentor(c *gin.Context) (*models.Mentor, error) {
	val, exists := c.Get(MentorContextKey)
	if !exists {
		return nil, ErrMentorNotFound
	}

	mentor, ok := val.(*models.Mentor)
	if !ok {
		return nil, ErrMentorNotFound
	}

	return mentor, nil
}

// bearerToken pulls the token from the Authorization header, falling back
// to the access_token query parameter for WebSocket upgrades where browsers
// cannot set headers.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("access_token")
}
