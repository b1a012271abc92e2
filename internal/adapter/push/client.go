// Package push delivers best-effort out-of-band alerts to a user's
// registered push endpoint. Delivery failures are logged and swallowed; the
// triggering operation is considered processed regardless.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Notification is the JSON alert posted to a push endpoint.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Sender posts a notification to one endpoint.
type Sender interface {
	Send(ctx context.Context, endpoint string, n Notification) error
}

// HTTPSender implements Sender over plain HTTP POST.
type HTTPSender struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPSender creates an HTTP push sender with the given delivery timeout.
func NewHTTPSender(timeout time.Duration, logger *slog.Logger) *HTTPSender {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPSender{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send posts the notification to the endpoint.
func (s *HTTPSender) Send(ctx context.Context, endpoint string, n Notification) error {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return fmt.Errorf("invalid push endpoint: %w", err)
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push endpoint returned %s: %s", resp.Status, body)
	}
	return nil
}
