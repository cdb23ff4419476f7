package jetstream_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-collection-ledger/internal/adapter"
	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/mocks"
	"github.com/feral-file/ff-collection-ledger/internal/providers/jetstream"
)

type testSubscriberMocks struct {
	ctrl     *gomock.Controller
	nc       *mocks.MockNatsConn
	js       *mocks.MockJetStream
	consumer *mocks.MockNatsConsumer
	cc       *mocks.MockConsumeContext
}

func setupSubscriber(t *testing.T) (*testSubscriberMocks, func(ctx context.Context, collectionID string, msgs []adapter.Message, handler func(*domain.LedgerEvent) error) error) {
	ctrl := gomock.NewController(t)
	tm := &testSubscriberMocks{
		ctrl:     ctrl,
		nc:       mocks.NewMockNatsConn(ctrl),
		js:       mocks.NewMockJetStream(ctrl),
		consumer: mocks.NewMockNatsConsumer(ctrl),
		cc:       mocks.NewMockConsumeContext(ctrl),
	}

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(tm.nc, tm.js, nil)

	cfg := testConfig()
	cfg.ConsumerName = "ledger-watch"
	sub, err := jetstream.NewSubscriber(cfg, natsJS, adapter.NewJSON())
	require.NoError(t, err)

	run := func(ctx context.Context, collectionID string, msgs []adapter.Message, handler func(*domain.LedgerEvent) error) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		tm.consumer.EXPECT().Info(gomock.Any()).Return(&natsjs.ConsumerInfo{Name: "ledger-watch"}, nil)
		tm.consumer.EXPECT().Consume(gomock.Any()).DoAndReturn(
			func(h adapter.MessageHandler, _ ...natsjs.PullConsumeOpt) (adapter.ConsumeContext, error) {
				for _, msg := range msgs {
					h(msg)
				}
				cancel()
				return tm.cc, nil
			})
		tm.cc.EXPECT().Stop()

		return sub.SubscribeEvents(ctx, collectionID, handler)
	}

	return tm, run
}

func encodedEvent(t *testing.T) []byte {
	data, err := adapter.NewJSON().Marshal(testEvent())
	require.NoError(t, err)
	return data
}

func TestSubscriber_SubscribeEvents_FiltersByCollection(t *testing.T) {
	tm, run := setupSubscriber(t)
	defer tm.ctrl.Finish()

	tm.js.EXPECT().CreateOrUpdateConsumer(gomock.Any(), "LEDGER_EVENTS", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, cfg natsjs.ConsumerConfig) (adapter.Consumer, error) {
			assert.Equal(t, "ledger.c1.*", cfg.FilterSubject)
			assert.Equal(t, "ledger-watch", cfg.Durable)
			assert.Equal(t, natsjs.AckExplicitPolicy, cfg.AckPolicy)
			return tm.consumer, nil
		})

	err := run(context.Background(), "c1", nil, func(*domain.LedgerEvent) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriber_SubscribeEvents_AllCollections(t *testing.T) {
	tm, run := setupSubscriber(t)
	defer tm.ctrl.Finish()

	tm.js.EXPECT().CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, cfg natsjs.ConsumerConfig) (adapter.Consumer, error) {
			assert.Equal(t, "ledger.>", cfg.FilterSubject)
			return tm.consumer, nil
		})

	err := run(context.Background(), "", nil, func(*domain.LedgerEvent) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriber_HandleMessage_Ack(t *testing.T) {
	tm, run := setupSubscriber(t)
	defer tm.ctrl.Finish()

	tm.js.EXPECT().CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).Return(tm.consumer, nil)

	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return(encodedEvent(t))
	msg.EXPECT().Ack().Return(nil)

	var received *domain.LedgerEvent
	err := run(context.Background(), "c1", []adapter.Message{msg}, func(e *domain.LedgerEvent) error {
		received = e
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, received)
	assert.Equal(t, domain.EventTypeTransfer, received.Type)
	assert.Equal(t, uint64(7), received.TokenIndex)
	assert.Equal(t, domain.Address{0x02}, *received.To)
}

func TestSubscriber_HandleMessage_NakOnHandlerError(t *testing.T) {
	tm, run := setupSubscriber(t)
	defer tm.ctrl.Finish()

	tm.js.EXPECT().CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).Return(tm.consumer, nil)

	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return(encodedEvent(t))
	msg.EXPECT().Nak().Return(nil)

	err := run(context.Background(), "c1", []adapter.Message{msg}, func(*domain.LedgerEvent) error {
		return errors.New("downstream unavailable")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriber_HandleMessage_TermOnBadPayload(t *testing.T) {
	tm, run := setupSubscriber(t)
	defer tm.ctrl.Finish()

	tm.js.EXPECT().CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).Return(tm.consumer, nil)

	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return([]byte("not json"))
	msg.EXPECT().Subject().Return("ledger.c1.transfer")
	msg.EXPECT().Term().Return(nil)

	called := false
	err := run(context.Background(), "c1", []adapter.Message{msg}, func(*domain.LedgerEvent) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSubscriber_ConsumerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
	js.EXPECT().CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("stream not found"))

	sub, err := jetstream.NewSubscriber(testConfig(), natsJS, adapter.NewJSON())
	require.NoError(t, err)

	err = sub.SubscribeEvents(context.Background(), "c1", func(*domain.LedgerEvent) error { return nil })
	assert.Error(t, err)

	nc.EXPECT().Drain().Return(nil)
	sub.Close()
}
