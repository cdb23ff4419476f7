package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/ledger"
	"github.com/feral-file/ff-collection-ledger/internal/store/schema"
)

// Store defines the interface for ledger persistence
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateCollection persists a new, empty collection
	CreateCollection(ctx context.Context, id string, cfg ledger.Config) (*schema.Collection, error)
	// GetCollection retrieves a collection row, or nil if it does not exist
	GetCollection(ctx context.Context, id string) (*schema.Collection, error)
	// ListCollections lists collections, newest first
	ListCollections(ctx context.Context, limit, offset int) ([]*schema.Collection, error)
	// LoadState reads the full persisted state of a collection
	LoadState(ctx context.Context, id string) (*ledger.State, error)
	// ApplyChanges writes a change set and its events in a single transaction
	ApplyChanges(ctx context.Context, id string, changes *ledger.ChangeSet, events []domain.LedgerEvent) error
	// GetCollectionEvents lists a collection's events in commit order, after the given event ID
	GetCollectionEvents(ctx context.Context, id string, after string, limit int) ([]domain.LedgerEvent, error)
	// GetPendingEvents returns unpublished events in commit order
	GetPendingEvents(ctx context.Context, limit int) ([]domain.LedgerEvent, error)
	// MarkEventsPublished flags events as delivered
	MarkEventsPublished(ctx context.Context, ids []string, at time.Time) error
}
