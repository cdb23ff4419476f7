package messaging

import (
	"context"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// EventHandler is called for every ledger event received
type EventHandler func(event *domain.LedgerEvent) error

// Subscriber defines the interface for consuming ledger events
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeEvents delivers events of one collection, or of all collections when
	// collectionID is empty, until ctx is cancelled
	SubscribeEvents(ctx context.Context, collectionID string, handler EventHandler) error
	// Close closes the connection
	Close()
}
