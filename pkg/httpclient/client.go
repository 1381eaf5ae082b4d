package httpclient

import (
	"io"
	"net/http"
	"time"
)

// Outbound HTTP here means webhook trigger delivery. The receivers are
// serverless function apps, so the timeout has to absorb a cold start.
const webhookTimeout = 15 * time.Second

// Client is the outbound HTTP surface consumed by the trigger layer,
// kept as an interface so tests can substitute a canned transport.
type Client interface {
	Post(url, contentType string, body io.Reader) (*http.Response, error)
}

type standardClient struct {
	client *http.Client
}

// NewStandardClient creates a Client backed by net/http with the webhook
// timeout applied.
func NewStandardClient() Client {
	return &standardClient{
		client: &http.Client{Timeout: webhookTimeout},
	}
}

// Post makes a POST request
func (c *standardClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	return c.client.Post(url, contentType, body)
}
