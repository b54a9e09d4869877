package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"readwise-notifier/internal/domain"
	"readwise-notifier/pkg/retry"
)

// SlackWebhook implements domain.Notifier by posting Block Kit payloads to a
// Slack incoming webhook. Webhook deliveries tolerate replays, so the POST
// shares the same bounded retry policy as the API client.
type SlackWebhook struct {
	webhookURL string
	httpClient *http.Client
	retrier    *retry.Retrier
	logger     domain.Logger
}

// NewSlackWebhook creates a webhook notifier.
func NewSlackWebhook(config domain.Config, logger domain.Logger) domain.Notifier {
	timeout := time.Duration(config.GetHTTPTimeoutSeconds()) * time.Second
	return &SlackWebhook{
		webhookURL: config.GetSlackWebhookURL(),
		httpClient: &http.Client{Timeout: timeout},
		retrier:    retry.NewRetrier(retry.DefaultConfig(), RetryableStatus, logger),
		logger:     logger,
	}
}

// Notify posts the message body once per attempt and returns an error on any
// transport failure or non-2xx status left after retries.
func (s *SlackWebhook) Notify(ctx context.Context, message domain.Message) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = s.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &StatusError{Code: resp.StatusCode, URL: s.webhookURL}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("webhook delivery failed", err)
		return err
	}

	s.logger.Info("notification sent", "blocks", len(message.Blocks))
	return nil
}
