package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/mentorstack/mentorstack-api/internal/changefeed"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"go.uber.org/zap"
)

// MentorIDKey is the gin context key the auth chain stores the resolved
// mentor identifier under.
const MentorIDKey = "mentor_id"

// Handler returns a gin handler that upgrades the request to a WebSocket
// and streams the mentor's change notifications until the client
// disconnects. Every connection holds its own pair of feed subscriptions
// (availability slots and sessions); disconnect tears both down.
func Handler(hub *Hub, feed *changefeed.Feed, originPatterns []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		mentorID := c.GetString(MentorIDKey)
		if mentorID == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(c.Writer, c.Request, &ws.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			logger.Warn("WebSocket accept failed", zap.Error(err))
			return
		}

		client := NewClient(hub, conn, mentorID)

		slotSub := feed.Subscribe(changefeed.TableAvailabilitySlots, mentorID)
		slotSub.OnAnyChange(func(e changefeed.Event) { client.Enqueue(MessageFromEvent(e)) })

		sessionSub := feed.Subscribe(changefeed.TableSessions, mentorID)
		sessionSub.OnAnyChange(func(e changefeed.Event) { client.Enqueue(MessageFromEvent(e)) })

		defer slotSub.Close()
		defer sessionSub.Close()

		logger.Debug("WebSocket connected", zap.String("mentor_id", mentorID))
		client.Run(c.Request.Context())
		logger.Debug("WebSocket disconnected", zap.String("mentor_id", mentorID))
	}
}
