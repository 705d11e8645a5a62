// Package notify implements the outbound registration notification sink.
// The sink is strictly best-effort: callers fire it after a successful
// registration and never let a delivery failure fail the registration.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier posts a plain-text message to an external channel.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// SlackWebhook posts messages to a Slack incoming webhook.
type SlackWebhook struct {
	url    string
	client *http.Client
}

// NewSlackWebhook creates a Notifier for the given webhook URL.
func NewSlackWebhook(url string) *SlackWebhook {
	return &SlackWebhook{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send posts {"text": ...} to the webhook. Any non-2xx response is an
// error; callers log and swallow it.
func (s *SlackWebhook) Send(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("marshaling slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook returned %d", resp.StatusCode)
	}

	return nil
}

// Discard is a no-op Notifier used outside the prod stage and in tests.
type Discard struct{}

// Send drops the message.
func (Discard) Send(ctx context.Context, text string) error {
	return nil
}
