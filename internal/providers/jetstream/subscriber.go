package jetstream

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-collection-ledger/internal/adapter"
	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/logger"
	"github.com/feral-file/ff-collection-ledger/internal/messaging"
)

type subscriber struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	config Config
	json   adapter.JSON
}

// NewSubscriber connects to NATS for consuming ledger events
func NewSubscriber(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Subscriber, error) {
	nc, js, err := natsJS.Connect(cfg.URL, connectionOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &subscriber{
		nc:     nc,
		js:     js,
		config: cfg,
		json:   jsonAdapter,
	}, nil
}

// SubscribeEvents consumes events until ctx is cancelled
func (s *subscriber) SubscribeEvents(ctx context.Context, collectionID string, handler messaging.EventHandler) error {
	filter := s.config.SubjectPrefix + ".>"
	if collectionID != "" {
		filter = fmt.Sprintf("%s.%s.*", s.config.SubjectPrefix, collectionID)
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, s.config.StreamName, jetstream.ConsumerConfig{
		Durable:       s.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		FilterSubject: filter,
	})
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	info, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consuming ledger events",
		zap.String("consumer", info.Name),
		zap.String("filter", filter))

	cc, err := consumer.Consume(func(msg adapter.Message) {
		s.handleMessage(ctx, msg, handler)
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer cc.Stop()

	<-ctx.Done()
	return ctx.Err()
}

// handleMessage acks handled events, naks handler failures for redelivery and
// terminates messages that cannot be decoded
func (s *subscriber) handleMessage(ctx context.Context, msg adapter.Message, handler messaging.EventHandler) {
	var event domain.LedgerEvent
	if err := s.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to decode ledger event: %w", err), zap.String("subject", msg.Subject()))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to terminate message: %w", err))
		}
		return
	}

	if err := handler(&event); err != nil {
		logger.WarnCtx(ctx, "Ledger event handler failed",
			zap.Error(err),
			zap.String("event_id", event.ID))
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to nak message: %w", err))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to ack message: %w", err), zap.String("event_id", event.ID))
	}
}

// Close drains the NATS connection
func (s *subscriber) Close() {
	if s.nc == nil {
		return
	}

	if err := s.nc.Drain(); err != nil {
		s.nc.Close()
	}
}
