package ledgerd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-collection-ledger/internal/adapter"
	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/ledger"
	"github.com/feral-file/ff-collection-ledger/internal/logger"
	"github.com/feral-file/ff-collection-ledger/internal/store"
)

// Service hosts collection ledgers: it serializes calls per collection and persists
// every successful call before acknowledging it
//
//go:generate mockgen -source=service.go -destination=../mocks/service.go -package=mocks -mock_names=Service=MockService
type Service interface {
	CreateCollection(ctx context.Context, input CreateCollectionInput) (*CollectionInfo, error)
	GetCollection(ctx context.Context, id string) (*CollectionInfo, error)
	ListCollections(ctx context.Context, limit, offset int) ([]*CollectionInfo, error)
	GetToken(ctx context.Context, id string, index uint64) (*TokenInfo, error)
	BalanceOf(ctx context.Context, id string, holder domain.Address) (uint64, error)
	IsApprovedForAll(ctx context.Context, id string, owner, operator domain.Address) (bool, error)
	RoyaltyInfo(ctx context.Context, id string, index uint64, salePrice *uint256.Int) (domain.Address, *uint256.Int, error)
	GetEvents(ctx context.Context, id string, after string, limit int) ([]domain.LedgerEvent, error)

	MintOne(ctx context.Context, id string, caller, to domain.Address) (uint64, error)
	MintBatch(ctx context.Context, id string, caller, to domain.Address, quantity uint64) (uint64, error)
	Transfer(ctx context.Context, id string, caller, from, to domain.Address, index uint64) error
	Burn(ctx context.Context, id string, caller domain.Address, index uint64) error
	Approve(ctx context.Context, id string, caller, spender domain.Address, index uint64) error
	SetApprovalForAll(ctx context.Context, id string, caller, operator domain.Address, approved bool) error
	SetRoyaltyReceiver(ctx context.Context, id string, caller, receiver domain.Address) error
	SetMetadataBase(ctx context.Context, id string, caller domain.Address, base string) error
	SetContractURI(ctx context.Context, id string, caller domain.Address, uri string) error
	TransferAdmin(ctx context.Context, id string, caller, newAdmin domain.Address) error
}

// hosted is one loaded collection; mu serializes every call on it. A retired entry
// has been removed from the service map and must not be used.
type hosted struct {
	mu         sync.Mutex
	collection *ledger.Collection
	retired    bool
}

type service struct {
	store store.Store
	clock adapter.Clock
	opts  []ledger.Option

	mu     sync.Mutex
	hosted map[string]*hosted
}

// NewService creates a ledger host backed by st. Ledger options apply to every
// collection the service loads.
func NewService(st store.Store, clock adapter.Clock, opts ...ledger.Option) Service {
	return &service{
		store:  st,
		clock:  clock,
		opts:   opts,
		hosted: make(map[string]*hosted),
	}
}

// entry returns the map entry for id, creating it when missing
func (s *service) entry(id string) *hosted {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hosted[id]
	if !ok {
		h = &hosted{}
		s.hosted[id] = h
	}
	return h
}

// acquire returns the locked, loaded collection. The caller must unlock h.mu.
// At most one entry per id is live at any time.
func (s *service) acquire(ctx context.Context, id string) (*hosted, error) {
	for {
		h := s.entry(id)
		h.mu.Lock()
		if h.retired {
			h.mu.Unlock()
			continue
		}
		if h.collection != nil {
			return h, nil
		}

		if err := s.load(ctx, id, h); err != nil {
			s.retire(id, h)
			h.mu.Unlock()
			return nil, err
		}
		return h, nil
	}
}

// load reads and restores the collection into h. h.mu must be held.
func (s *service) load(ctx context.Context, id string, h *hosted) error {
	st, err := s.store.LoadState(ctx, id)
	if err != nil {
		return err
	}
	c, err := ledger.Restore(st, s.opts...)
	if err != nil {
		return fmt.Errorf("failed to restore collection %s: %w", id, err)
	}
	h.collection = c

	logger.DebugCtx(ctx, "Loaded collection",
		zap.String("collection_id", id),
		zap.Uint64("minted", c.TotalMinted()),
		zap.Int("explicit_records", c.ExplicitRecords()))

	return nil
}

// retire removes an entry from the map. h.mu must be held, so callers waiting on
// it see the flag and look the id up again.
func (s *service) retire(id string, h *hosted) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h.retired = true
	h.collection = nil
	if s.hosted[id] == h {
		delete(s.hosted, id)
	}
}

// read runs fn against the loaded collection
func (s *service) read(ctx context.Context, id string, fn func(c *ledger.Collection) error) error {
	h, err := s.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer h.mu.Unlock()

	return fn(h.collection)
}

// mutate runs fn, then persists its changes and events. The collection is rolled
// back when fn fails or the changes cannot be stored.
func (s *service) mutate(ctx context.Context, id string, op string, fn func(c *ledger.Collection) error) error {
	h, err := s.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer h.mu.Unlock()

	c := h.collection
	if err := fn(c); err != nil {
		logger.DebugCtx(ctx, "Ledger call rejected",
			zap.String("op", op),
			zap.String("collection_id", id),
			zap.Error(err))
		return err
	}

	changes, events := c.Pending()
	now := s.clock.Now()
	for i := range events {
		events[i].ID = ulid.MustNewDefault(now).String()
		events[i].CollectionID = id
		events[i].Timestamp = now
	}

	if err := s.store.ApplyChanges(ctx, id, changes, events); err != nil {
		c.Rollback()
		if errors.Is(err, domain.ErrStaleState) {
			// reload from storage on the next call
			s.retire(id, h)
			logger.WarnCtx(ctx, "Collection state is stale, dropping cached ledger",
				zap.String("op", op),
				zap.String("collection_id", id),
				zap.Error(err))
		}
		return fmt.Errorf("failed to persist %s: %w", op, err)
	}
	c.Commit()

	logger.DebugCtx(ctx, "Ledger call committed",
		zap.String("op", op),
		zap.String("collection_id", id),
		zap.Int("events", len(events)))

	return nil
}

func (s *service) CreateCollection(ctx context.Context, input CreateCollectionInput) (*CollectionInfo, error) {
	cfg := input.config()
	c, err := ledger.New(cfg, s.opts...)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	row, err := s.store.CreateCollection(ctx, id, cfg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.hosted[id] = &hosted{collection: c}
	s.mu.Unlock()

	logger.InfoCtx(ctx, "Collection created",
		zap.String("collection_id", id),
		zap.String("name", cfg.Name),
		zap.Uint64("max_supply", cfg.Cap),
		zap.String("admin", cfg.Admin.Hex()))

	return infoFromRow(row), nil
}

func (s *service) GetCollection(ctx context.Context, id string) (*CollectionInfo, error) {
	var info *CollectionInfo
	err := s.read(ctx, id, func(c *ledger.Collection) error {
		info = infoFromCollection(id, c)
		return nil
	})
	return info, err
}

func (s *service) ListCollections(ctx context.Context, limit, offset int) ([]*CollectionInfo, error) {
	rows, err := s.store.ListCollections(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	infos := make([]*CollectionInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, infoFromRow(row))
	}
	return infos, nil
}

func (s *service) GetToken(ctx context.Context, id string, index uint64) (*TokenInfo, error) {
	var token *TokenInfo
	err := s.read(ctx, id, func(c *ledger.Collection) error {
		owner, err := c.OwnerOf(index)
		if err != nil {
			return err
		}
		uri, err := c.TokenURI(index)
		if err != nil {
			return err
		}
		approved, err := c.GetApproved(index)
		if err != nil {
			return err
		}
		token = &TokenInfo{Index: index, Owner: owner, TokenURI: uri, Approved: approved}
		return nil
	})
	return token, err
}

func (s *service) BalanceOf(ctx context.Context, id string, holder domain.Address) (uint64, error) {
	var balance uint64
	err := s.read(ctx, id, func(c *ledger.Collection) error {
		var err error
		balance, err = c.BalanceOf(holder)
		return err
	})
	return balance, err
}

func (s *service) IsApprovedForAll(ctx context.Context, id string, owner, operator domain.Address) (bool, error) {
	var approved bool
	err := s.read(ctx, id, func(c *ledger.Collection) error {
		approved = c.IsApprovedForAll(owner, operator)
		return nil
	})
	return approved, err
}

func (s *service) RoyaltyInfo(ctx context.Context, id string, index uint64, salePrice *uint256.Int) (domain.Address, *uint256.Int, error) {
	var receiver domain.Address
	var amount *uint256.Int
	err := s.read(ctx, id, func(c *ledger.Collection) error {
		var err error
		receiver, amount, err = c.RoyaltyInfo(index, salePrice)
		return err
	})
	return receiver, amount, err
}

func (s *service) GetEvents(ctx context.Context, id string, after string, limit int) ([]domain.LedgerEvent, error) {
	row, err := s.store.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, id)
	}
	return s.store.GetCollectionEvents(ctx, id, after, limit)
}

func (s *service) MintOne(ctx context.Context, id string, caller, to domain.Address) (uint64, error) {
	var index uint64
	err := s.mutate(ctx, id, "mint", func(c *ledger.Collection) error {
		var err error
		index, err = c.MintOne(caller, to)
		return err
	})
	return index, err
}

func (s *service) MintBatch(ctx context.Context, id string, caller, to domain.Address, quantity uint64) (uint64, error) {
	var start uint64
	err := s.mutate(ctx, id, "batch_mint", func(c *ledger.Collection) error {
		var err error
		start, err = c.MintBatch(caller, to, quantity)
		return err
	})
	return start, err
}

func (s *service) Transfer(ctx context.Context, id string, caller, from, to domain.Address, index uint64) error {
	return s.mutate(ctx, id, "transfer", func(c *ledger.Collection) error {
		return c.Transfer(caller, from, to, index)
	})
}

func (s *service) Burn(ctx context.Context, id string, caller domain.Address, index uint64) error {
	return s.mutate(ctx, id, "burn", func(c *ledger.Collection) error {
		return c.Retire(caller, index)
	})
}

func (s *service) Approve(ctx context.Context, id string, caller, spender domain.Address, index uint64) error {
	return s.mutate(ctx, id, "approve", func(c *ledger.Collection) error {
		return c.Approve(caller, spender, index)
	})
}

func (s *service) SetApprovalForAll(ctx context.Context, id string, caller, operator domain.Address, approved bool) error {
	return s.mutate(ctx, id, "approval_for_all", func(c *ledger.Collection) error {
		return c.SetApprovalForAll(caller, operator, approved)
	})
}

func (s *service) SetRoyaltyReceiver(ctx context.Context, id string, caller, receiver domain.Address) error {
	return s.mutate(ctx, id, "set_royalty_receiver", func(c *ledger.Collection) error {
		return c.SetRoyaltyReceiver(caller, receiver)
	})
}

func (s *service) SetMetadataBase(ctx context.Context, id string, caller domain.Address, base string) error {
	return s.mutate(ctx, id, "set_metadata_base", func(c *ledger.Collection) error {
		return c.SetMetadataBase(caller, base)
	})
}

func (s *service) SetContractURI(ctx context.Context, id string, caller domain.Address, uri string) error {
	return s.mutate(ctx, id, "set_contract_uri", func(c *ledger.Collection) error {
		return c.SetContractURI(caller, uri)
	})
}

func (s *service) TransferAdmin(ctx context.Context, id string, caller, newAdmin domain.Address) error {
	return s.mutate(ctx, id, "transfer_admin", func(c *ledger.Collection) error {
		return c.TransferAdmin(caller, newAdmin)
	})
}
