package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-collection-ledger/internal/adapter"
	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/logger"
	"github.com/feral-file/ff-collection-ledger/internal/messaging"
)

const (
	HeaderSignature = "X-Ledger-Signature"
	HeaderEventID   = "X-Ledger-Event-ID"
	HeaderEventType = "X-Ledger-Event-Type"
	HeaderTimestamp = "X-Ledger-Timestamp"

	userAgent = "FF-Collection-Ledger-Webhook/1.0"

	// maxResponseBody bounds how much of an endpoint response is read
	maxResponseBody = 4 * 1024
)

// Config holds the webhook endpoint settings
type Config struct {
	URL        string
	Secret     string
	Timeout    time.Duration
	MaxElapsed time.Duration
}

// HTTPDoer sends HTTP requests
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DeliveryResult describes the final attempt of a delivery
type DeliveryResult struct {
	StatusCode int
	Body       string
	Attempts   int
}

// Forwarder posts signed ledger events to a webhook endpoint
type Forwarder interface {
	// Deliver posts one event, retrying transient failures
	Deliver(ctx context.Context, event *domain.LedgerEvent) (DeliveryResult, error)
	// Handler adapts Deliver to a subscriber callback
	Handler(ctx context.Context) messaging.EventHandler
}

type forwarder struct {
	config Config
	client HTTPDoer
	clock  adapter.Clock
}

// NewForwarder creates a webhook forwarder
func NewForwarder(cfg Config, client HTTPDoer, clock adapter.Clock) (Forwarder, error) {
	if cfg.URL == "" {
		return nil, errors.New("webhook url is required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("webhook secret is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = time.Minute
	}

	return &forwarder{
		config: cfg,
		client: client,
		clock:  clock,
	}, nil
}

func (f *forwarder) Handler(ctx context.Context) messaging.EventHandler {
	return func(event *domain.LedgerEvent) error {
		_, err := f.Deliver(ctx, event)
		return err
	}
}

func (f *forwarder) Deliver(ctx context.Context, event *domain.LedgerEvent) (DeliveryResult, error) {
	var result DeliveryResult

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = f.config.MaxElapsed

	operation := func() error {
		result.Attempts++
		status, body, err := f.post(ctx, event)
		result.StatusCode = status
		result.Body = body
		return err
	}
	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Webhook delivery failed, retrying",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.Int("attempt", result.Attempts),
			zap.Duration("next_retry_in", next))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return result, fmt.Errorf("failed to deliver event %s: %w", event.ID, err)
	}

	logger.DebugCtx(ctx, "Webhook delivered",
		zap.String("event_id", event.ID),
		zap.Int("status", result.StatusCode),
		zap.Int("attempts", result.Attempts))

	return result, nil
}

// post sends one attempt. Client errors other than 408 and 429 are permanent.
func (f *forwarder) post(ctx context.Context, event *domain.LedgerEvent) (int, string, error) {
	timestamp := f.clock.Now().Unix()
	payload, signature, err := SignPayload(f.config.Secret, event, timestamp)
	if err != nil {
		return 0, "", backoff.Permanent(err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, f.config.URL, bytes.NewReader(payload))
	if err != nil {
		return 0, "", backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(HeaderSignature, signature)
	req.Header.Set(HeaderEventID, event.ID)
	req.Header.Set(HeaderEventType, string(event.Type))
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(timestamp, 10))

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WarnCtx(ctx, "Failed to close response body", zap.Error(err), zap.String("url", f.config.URL))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		body = nil
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.StatusCode, string(body), nil
	}

	err = fmt.Errorf("HTTP %d", resp.StatusCode)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 &&
		resp.StatusCode != http.StatusRequestTimeout &&
		resp.StatusCode != http.StatusTooManyRequests {
		return resp.StatusCode, string(body), backoff.Permanent(err)
	}
	return resp.StatusCode, string(body), err
}
