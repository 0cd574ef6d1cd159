package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Ensure EmailClient implements Sender
var _ Sender = (*EmailClient)(nil)

// EmailClient posts messages to the notification function's HTTP
// endpoint as JSON.
type EmailClient struct {
	endpoint string
	client   *http.Client
}

// NewEmailClient creates a client for the given notification endpoint.
func NewEmailClient(endpoint string) *EmailClient {
	return &EmailClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts the message and reports any transport failure or
// non-2xx response as an error.
func (c *EmailClient) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification endpoint responded with status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
