package relay_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/logger"
	"github.com/feral-file/ff-collection-ledger/internal/mocks"
	"github.com/feral-file/ff-collection-ledger/internal/relay"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testRelayMocks contains all the mocks needed for testing the relay
type testRelayMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	relay     relay.Relay
}

func setupTestRelay(t *testing.T, batchSize int) *testRelayMocks {
	ctrl := gomock.NewController(t)

	tm := &testRelayMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}

	tm.relay = relay.NewRelay(tm.store, tm.publisher, tm.clock, relay.Config{
		PollInterval:    time.Second,
		BatchSize:       batchSize,
		MaxElapsed:      50 * time.Millisecond,
		InitialInterval: time.Millisecond,
	})

	return tm
}

func tearDownTestRelay(mocks *testRelayMocks) {
	mocks.ctrl.Finish()
}

func pendingEvents(ids ...string) []domain.LedgerEvent {
	to := domain.AddressPtr(domain.Address{0x01})
	events := make([]domain.LedgerEvent, 0, len(ids))
	for i, id := range ids {
		events = append(events, domain.LedgerEvent{
			ID:           id,
			CollectionID: "collection-1",
			Type:         domain.EventTypeTokenMinted,
			To:           to,
			TokenIndex:   uint64(i),
			Quantity:     1,
		})
	}
	return events
}

func TestRelay_Flush_PublishesAndMarks(t *testing.T) {
	mocks := setupTestRelay(t, 10)
	defer tearDownTestRelay(mocks)

	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	events := pendingEvents("01A", "01B", "01C")

	mocks.store.EXPECT().GetPendingEvents(ctx, 10).Return(events, nil)
	gomock.InOrder(
		mocks.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, e *domain.LedgerEvent) error {
				assert.Equal(t, "01A", e.ID)
				return nil
			}),
		mocks.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, e *domain.LedgerEvent) error {
				assert.Equal(t, "01B", e.ID)
				return nil
			}),
		mocks.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, e *domain.LedgerEvent) error {
				assert.Equal(t, "01C", e.ID)
				return nil
			}),
	)
	mocks.clock.EXPECT().Now().Return(now)
	mocks.store.EXPECT().MarkEventsPublished(ctx, []string{"01A", "01B", "01C"}, now).Return(nil)

	n, err := mocks.relay.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRelay_Flush_Empty(t *testing.T) {
	mocks := setupTestRelay(t, 10)
	defer tearDownTestRelay(mocks)

	ctx := context.Background()
	mocks.store.EXPECT().GetPendingEvents(ctx, 10).Return(nil, nil)

	n, err := mocks.relay.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRelay_Flush_StoreError(t *testing.T) {
	mocks := setupTestRelay(t, 10)
	defer tearDownTestRelay(mocks)

	ctx := context.Background()
	mocks.store.EXPECT().GetPendingEvents(ctx, 10).Return(nil, errors.New("connection refused"))

	n, err := mocks.relay.Flush(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get pending events")
	assert.Equal(t, 0, n)
}

func TestRelay_Flush_RetriesTransientFailure(t *testing.T) {
	mocks := setupTestRelay(t, 10)
	defer tearDownTestRelay(mocks)

	ctx := context.Background()
	now := time.Now().UTC()
	events := pendingEvents("01A")

	mocks.store.EXPECT().GetPendingEvents(ctx, 10).Return(events, nil)
	gomock.InOrder(
		mocks.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).Return(errors.New("nats: timeout")),
		mocks.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).Return(nil),
	)
	mocks.clock.EXPECT().Now().Return(now)
	mocks.store.EXPECT().MarkEventsPublished(ctx, []string{"01A"}, now).Return(nil)

	n, err := mocks.relay.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRelay_Flush_StopsAtFirstPersistentFailure(t *testing.T) {
	mocks := setupTestRelay(t, 10)
	defer tearDownTestRelay(mocks)

	ctx := context.Background()
	now := time.Now().UTC()
	events := pendingEvents("01A", "01B", "01C")

	mocks.store.EXPECT().GetPendingEvents(ctx, 10).Return(events, nil)
	mocks.publisher.EXPECT().PublishEvent(ctx, &events[0]).Return(nil)
	mocks.publisher.EXPECT().PublishEvent(ctx, &events[1]).Return(errors.New("stream unavailable")).MinTimes(1)
	mocks.clock.EXPECT().Now().Return(now)
	mocks.store.EXPECT().MarkEventsPublished(ctx, []string{"01A"}, now).Return(nil)

	n, err := mocks.relay.Flush(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event 01B")
	assert.Equal(t, 1, n)
}

func TestRelay_Flush_NothingPublished(t *testing.T) {
	mocks := setupTestRelay(t, 10)
	defer tearDownTestRelay(mocks)

	ctx := context.Background()
	events := pendingEvents("01A")

	mocks.store.EXPECT().GetPendingEvents(ctx, 10).Return(events, nil)
	mocks.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).Return(errors.New("stream unavailable")).MinTimes(1)

	n, err := mocks.relay.Flush(ctx)
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestRelay_Flush_MarkFailure(t *testing.T) {
	mocks := setupTestRelay(t, 10)
	defer tearDownTestRelay(mocks)

	ctx := context.Background()
	now := time.Now().UTC()
	events := pendingEvents("01A")

	mocks.store.EXPECT().GetPendingEvents(ctx, 10).Return(events, nil)
	mocks.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).Return(nil)
	mocks.clock.EXPECT().Now().Return(now)
	mocks.store.EXPECT().MarkEventsPublished(ctx, []string{"01A"}, now).Return(errors.New("deadlock detected"))

	n, err := mocks.relay.Flush(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to mark events published")
	assert.Equal(t, 0, n)
}

func TestRelay_Run_FullBatchFlushesAgain(t *testing.T) {
	mocks := setupTestRelay(t, 2)
	defer tearDownTestRelay(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Now().UTC()
	first := pendingEvents("01A", "01B")

	gomock.InOrder(
		mocks.store.EXPECT().GetPendingEvents(gomock.Any(), 2).Return(first, nil),
		mocks.store.EXPECT().MarkEventsPublished(gomock.Any(), []string{"01A", "01B"}, now).Return(nil),
		// second flush happens without waiting for the poll interval
		mocks.store.EXPECT().GetPendingEvents(gomock.Any(), 2).Return(nil, nil),
	)
	mocks.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mocks.clock.EXPECT().Now().Return(now)

	waiting := make(chan time.Time)
	mocks.clock.EXPECT().After(time.Second).DoAndReturn(func(time.Duration) <-chan time.Time {
		cancel()
		return waiting
	})

	err := mocks.relay.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRelay_Run_WaitsAfterError(t *testing.T) {
	mocks := setupTestRelay(t, 10)
	defer tearDownTestRelay(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tick := make(chan time.Time, 1)
	tick <- time.Now()

	gomock.InOrder(
		mocks.store.EXPECT().GetPendingEvents(gomock.Any(), 10).Return(nil, errors.New("connection reset")),
		mocks.store.EXPECT().GetPendingEvents(gomock.Any(), 10).Return(nil, nil),
	)
	gomock.InOrder(
		mocks.clock.EXPECT().After(time.Second).Return((<-chan time.Time)(tick)),
		mocks.clock.EXPECT().After(time.Second).DoAndReturn(func(time.Duration) <-chan time.Time {
			cancel()
			return make(chan time.Time)
		}),
	)

	err := mocks.relay.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
