package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mentorstack/mentorstack-api/pkg/circuitbreaker"
	"github.com/mentorstack/mentorstack-api/pkg/httpclient"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/retry"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// breaker guards all outbound trigger webhooks: if the receiving function app
// is down we stop hammering it instead of burning goroutines on retries.
var breaker = circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("event-triggers"))

// CallAsyncWithPayload POSTs a JSON payload to a trigger URL in the
// background. Used to notify external automations (booking service, email
// sender) after local mutations. Failures are logged but never block or fail
// the originating operation.
func CallAsyncWithPayload(triggerURL string, payload map[string]interface{}, httpClient httpclient.Client) {
	if triggerURL == "" {
		// No trigger URL configured, skip silently
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal trigger payload",
			zap.Error(err),
			zap.String("url", triggerURL))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		err := retry.Do(ctx, retry.WebhookConfig(), "trigger_webhook", func() error {
			_, callErr := circuitbreaker.Execute(breaker, func() (struct{}, error) {
				return struct{}{}, post(triggerURL, body, httpClient)
			})
			if callErr == gobreaker.ErrOpenState {
				// Breaker open: give up without retrying
				return nil
			}
			return callErr
		})
		if err != nil {
			logger.Error("Failed to call trigger URL",
				zap.Error(err),
				zap.String("url", triggerURL))
			return
		}

		logger.Info("Trigger URL called",
			zap.String("url", triggerURL))
	}()
}

func post(url string, body []byte, httpClient httpclient.Client) error {
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("trigger returned status %d", resp.StatusCode)
	}
	return nil
}
