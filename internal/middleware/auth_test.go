package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mentorstack/mentorstack-api/pkg/jwt"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)

	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func authTestRouter(verifier *jwt.Verifier) (*gin.Engine, *bool) {
	router := gin.New()
	handlerCalled := false

	router.Use(AuthMiddleware(verifier))
	router.GET("/test", func(c *gin.Context) {
		handlerCalled = true
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"account_id": identity.AccountID})
	})

	return router, &handlerCalled
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	verifier := jwt.NewVerifier("test-secret", "mentorstack-auth")
	router, handlerCalled := authTestRouter(verifier)

	token, err := verifier.MintToken("acct-1", "+15550001111", "mentor@example.com", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.True(t, *handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "acct-1")
}

func TestAuthMiddleware_QueryTokenFallback(t *testing.T) {
	verifier := jwt.NewVerifier("test-secret", "mentorstack-auth")
	router, handlerCalled := authTestRouter(verifier)

	token, err := verifier.MintToken("acct-1", "", "", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test?access_token="+token, nil)

	router.ServeHTTP(w, req)

	assert.True(t, *handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	verifier := jwt.NewVerifier("test-secret", "mentorstack-auth")
	router, handlerCalled := authTestRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	verifier := jwt.NewVerifier("test-secret", "mentorstack-auth")
	router, handlerCalled := authTestRouter(verifier)

	other := jwt.NewVerifier("other-secret", "mentorstack-auth")
	token, err := other.MintToken("acct-1", "", "", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	verifier := jwt.NewVerifier("test-secret", "mentorstack-auth")
	router, handlerCalled := authTestRouter(verifier)

	token, err := verifier.MintToken("acct-1", "", "", -time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}
