package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-collection-ledger/internal/adapter"
	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/logger"
	"github.com/feral-file/ff-collection-ledger/internal/messaging"
	"github.com/feral-file/ff-collection-ledger/internal/store"
)

// Config holds the configuration for the outbox relay
type Config struct {
	PollInterval time.Duration
	BatchSize    int
	// MaxElapsed bounds the retries for a single event before the batch is abandoned
	MaxElapsed time.Duration
	// InitialInterval is the first retry delay
	InitialInterval time.Duration
}

// Relay moves committed ledger events from the outbox to the message broker
type Relay interface {
	// Run drains the outbox until ctx is cancelled
	Run(ctx context.Context) error
	// Flush publishes one batch of pending events and returns how many were published
	Flush(ctx context.Context) (int, error)
}

type relay struct {
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	config    Config
}

// NewRelay creates a new outbox relay
func NewRelay(st store.Store, publisher messaging.Publisher, clock adapter.Clock, cfg Config) Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = 30 * time.Second
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}

	return &relay{
		store:     st,
		publisher: publisher,
		clock:     clock,
		config:    cfg,
	}
}

// Run drains the outbox until ctx is cancelled. A full batch is followed by another
// flush right away; otherwise the relay waits for the poll interval.
func (r *relay) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting outbox relay",
		zap.Duration("poll_interval", r.config.PollInterval),
		zap.Int("batch_size", r.config.BatchSize))

	for {
		n, err := r.Flush(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.ErrorCtx(ctx, err, zap.String("component", "relay"))
		}

		if err == nil && n == r.config.BatchSize {
			continue
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Stopping outbox relay")
			return ctx.Err()
		case <-r.clock.After(r.config.PollInterval):
		}
	}
}

// Flush publishes pending events in commit order. Publishing stops at the first event
// that still fails after retrying; the events before it are marked published.
func (r *relay) Flush(ctx context.Context) (int, error) {
	events, err := r.store.GetPendingEvents(ctx, r.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to get pending events: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	published := make([]string, 0, len(events))
	var publishErr error
	for i := range events {
		if err := r.publishWithRetry(ctx, &events[i]); err != nil {
			publishErr = fmt.Errorf("failed to publish event %s: %w", events[i].ID, err)
			break
		}
		published = append(published, events[i].ID)
	}

	if len(published) > 0 {
		if err := r.store.MarkEventsPublished(ctx, published, r.clock.Now()); err != nil {
			return 0, errors.Join(publishErr, fmt.Errorf("failed to mark events published: %w", err))
		}
		logger.DebugCtx(ctx, "Relayed ledger events", zap.Int("count", len(published)))
	}

	return len(published), publishErr
}

func (r *relay) publishWithRetry(ctx context.Context, event *domain.LedgerEvent) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.config.InitialInterval
	b.MaxElapsedTime = r.config.MaxElapsed
	b.RandomizationFactor = 0.5

	var attemptCount int
	operation := func() error {
		return r.publisher.PublishEvent(ctx, event)
	}
	notifyOnError := func(err error, next time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Event publish failed, retrying",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", next))
	}

	return backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError)
}
