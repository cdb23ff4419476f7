package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/ledger"
	"github.com/feral-file/ff-collection-ledger/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the ledger tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Collection{},
		&schema.OwnershipRecord{},
		&schema.Balance{},
		&schema.TokenApproval{},
		&schema.OperatorApproval{},
		&schema.LedgerEvent{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero settings fall back to NormalizeConnectionPoolSettings defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize keeps a bulk insert under PostgreSQL's limit of 65535
// parameters per statement, leaving headroom for ON CONFLICT and timestamp parameters.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	safeBatchSize := max((maxParams-totalHeadroom)/fieldsPerRecord, 1)
	if safeBatchSize > totalRecords {
		return max(totalRecords, 1)
	}

	return safeBatchSize
}

// toInt64 converts a ledger counter or index to a bigint column value. Collections are
// created with a cap of at most MaxInt64, so every index and counter fits.
func toInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// CreateCollection persists a new, empty collection
func (s *pgStore) CreateCollection(ctx context.Context, id string, cfg ledger.Config) (*schema.Collection, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty collection id", domain.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Cap > math.MaxInt64 || cfg.BatchCap > math.MaxInt64 {
		return nil, fmt.Errorf("%w: cap exceeds storage range", domain.ErrInvalidConfig)
	}

	collection := schema.Collection{
		ID:              id,
		Name:            cfg.Name,
		Symbol:          cfg.Symbol,
		BaseURI:         cfg.BaseURI,
		ContractURI:     cfg.ContractURI,
		MaxSupply:       toInt64(cfg.Cap),
		MaxBatchSize:    toInt64(cfg.BatchCap),
		RoyaltyBps:      toInt64(cfg.RoyaltyBps),
		RoyaltyReceiver: cfg.RoyaltyReceiver.Hex(),
		AdminAddress:    cfg.Admin.Hex(),
	}
	if err := s.db.WithContext(ctx).Create(&collection).Error; err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return &collection, nil
}

// GetCollection retrieves a collection row, or nil if it does not exist
func (s *pgStore) GetCollection(ctx context.Context, id string) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

// ListCollections lists collections, newest first
func (s *pgStore) ListCollections(ctx context.Context, limit, offset int) ([]*schema.Collection, error) {
	var collections []*schema.Collection
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&collections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, nil
}

// LoadState reads the full persisted state of a collection from one snapshot
func (s *pgStore) LoadState(ctx context.Context, id string) (*ledger.State, error) {
	var st *ledger.State

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var collection schema.Collection
		if err := tx.Where("id = ?", id).First(&collection).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, id)
			}
			return fmt.Errorf("failed to get collection: %w", err)
		}

		var records []schema.OwnershipRecord
		if err := tx.Where("collection_id = ?", id).Order("token_index ASC").Find(&records).Error; err != nil {
			return fmt.Errorf("failed to load ownership records: %w", err)
		}

		var balances []schema.Balance
		if err := tx.Where("collection_id = ?", id).Find(&balances).Error; err != nil {
			return fmt.Errorf("failed to load balances: %w", err)
		}

		var tokenApprovals []schema.TokenApproval
		if err := tx.Where("collection_id = ?", id).Find(&tokenApprovals).Error; err != nil {
			return fmt.Errorf("failed to load token approvals: %w", err)
		}

		var operatorApprovals []schema.OperatorApproval
		if err := tx.Where("collection_id = ?", id).Find(&operatorApprovals).Error; err != nil {
			return fmt.Errorf("failed to load operator approvals: %w", err)
		}

		st = buildState(&collection, records, balances, tokenApprovals, operatorApprovals)
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}

	return st, nil
}

func buildState(
	collection *schema.Collection,
	records []schema.OwnershipRecord,
	balances []schema.Balance,
	tokenApprovals []schema.TokenApproval,
	operatorApprovals []schema.OperatorApproval,
) *ledger.State {
	st := &ledger.State{
		Config: ledger.Config{
			Name:            collection.Name,
			Symbol:          collection.Symbol,
			BaseURI:         collection.BaseURI,
			ContractURI:     collection.ContractURI,
			Cap:             uint64(collection.MaxSupply),
			BatchCap:        uint64(collection.MaxBatchSize),
			RoyaltyBps:      uint64(collection.RoyaltyBps),
			RoyaltyReceiver: common.HexToAddress(collection.RoyaltyReceiver),
			Admin:           common.HexToAddress(collection.AdminAddress),
		},
		Minted:         uint64(collection.Minted),
		Burned:         uint64(collection.Burned),
		Records:        make(map[uint64]ledger.Record, len(records)),
		Balances:       make(map[domain.Address]uint64, len(balances)),
		TokenApprovals: make(map[uint64]domain.Address, len(tokenApprovals)),
	}

	for _, r := range records {
		rec := ledger.Record{Retired: r.Retired}
		if !r.Retired {
			rec.Holder = common.HexToAddress(r.HolderAddress)
		}
		st.Records[uint64(r.TokenIndex)] = rec
	}
	for _, b := range balances {
		st.Balances[common.HexToAddress(b.HolderAddress)] = uint64(b.Count)
	}
	for _, a := range tokenApprovals {
		st.TokenApprovals[uint64(a.TokenIndex)] = common.HexToAddress(a.SpenderAddress)
	}
	for _, op := range operatorApprovals {
		st.OperatorApprovals = append(st.OperatorApprovals, ledger.OperatorApproval{
			Owner:    common.HexToAddress(op.OwnerAddress),
			Operator: common.HexToAddress(op.OperatorAddress),
			Approved: true,
		})
	}

	return st
}

// ApplyChanges writes a change set and its events in a single transaction.
// Either every row is written or none is.
func (s *pgStore) ApplyChanges(ctx context.Context, id string, changes *ledger.ChangeSet, events []domain.LedgerEvent) error {
	if changes == nil {
		return errors.New("nil change set")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Collection-level fields, compare-and-swap on the counters
		result := tx.Model(&schema.Collection{}).
			Where("id = ? AND minted = ? AND burned = ?", id, toInt64(changes.BaseMinted), toInt64(changes.BaseBurned)).
			Updates(map[string]any{
				"minted":           toInt64(changes.Minted),
				"burned":           toInt64(changes.Burned),
				"royalty_receiver": changes.RoyaltyReceiver.Hex(),
				"base_uri":         changes.MetadataBase,
				"contract_uri":     changes.ContractURI,
				"admin_address":    changes.Admin.Hex(),
				"updated_at":       time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update collection: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&schema.Collection{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check collection: %w", err)
			}
			if count == 0 {
				return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, id)
			}
			return fmt.Errorf("%w: %s expected minted=%d burned=%d",
				domain.ErrStaleState, id, changes.BaseMinted, changes.BaseBurned)
		}

		// 2. Keyed state
		if err := upsertRecords(tx, id, changes.Records); err != nil {
			return err
		}
		if err := applyBalances(tx, id, changes.Balances); err != nil {
			return err
		}
		if err := applyTokenApprovals(tx, id, changes.TokenApprovals); err != nil {
			return err
		}
		if err := applyOperatorApprovals(tx, id, changes.OperatorApprovals); err != nil {
			return err
		}

		// 3. Outbox
		return insertEvents(tx, id, events)
	})
}

func upsertRecords(tx *gorm.DB, id string, records map[uint64]ledger.Record) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]schema.OwnershipRecord, 0, len(records))
	for _, index := range slices.Sorted(maps.Keys(records)) {
		r := records[index]
		row := schema.OwnershipRecord{
			CollectionID: id,
			TokenIndex:   toInt64(index),
			Retired:      r.Retired,
		}
		if !r.Retired {
			row.HolderAddress = r.Holder.Hex()
		}
		rows = append(rows, row)
	}

	err := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_id"}, {Name: "token_index"}},
			DoUpdates: clause.AssignmentColumns([]string{"holder_address", "retired", "updated_at"}),
		}).
		CreateInBatches(&rows, calculateSafeBatchSize(len(rows), 6)).Error
	if err != nil {
		return fmt.Errorf("failed to upsert ownership records: %w", err)
	}
	return nil
}

func applyBalances(tx *gorm.DB, id string, balances map[domain.Address]uint64) error {
	if len(balances) == 0 {
		return nil
	}

	var emptied []string
	var rows []schema.Balance
	for _, holder := range slices.SortedFunc(maps.Keys(balances), compareAddress) {
		count := balances[holder]
		if count == 0 {
			emptied = append(emptied, holder.Hex())
			continue
		}
		rows = append(rows, schema.Balance{
			CollectionID:  id,
			HolderAddress: holder.Hex(),
			Count:         toInt64(count),
		})
	}

	if len(emptied) > 0 {
		err := tx.Where("collection_id = ? AND holder_address IN ?", id, emptied).
			Delete(&schema.Balance{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete balances: %w", err)
		}
	}
	if len(rows) > 0 {
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "collection_id"}, {Name: "holder_address"}},
				DoUpdates: clause.AssignmentColumns([]string{"count", "updated_at"}),
			}).
			CreateInBatches(&rows, calculateSafeBatchSize(len(rows), 5)).Error
		if err != nil {
			return fmt.Errorf("failed to upsert balances: %w", err)
		}
	}

	return nil
}

func applyTokenApprovals(tx *gorm.DB, id string, approvals map[uint64]domain.Address) error {
	if len(approvals) == 0 {
		return nil
	}

	var cleared []int64
	var rows []schema.TokenApproval
	for _, index := range slices.Sorted(maps.Keys(approvals)) {
		spender := approvals[index]
		if domain.IsZeroAddress(spender) {
			cleared = append(cleared, toInt64(index))
			continue
		}
		rows = append(rows, schema.TokenApproval{
			CollectionID:   id,
			TokenIndex:     toInt64(index),
			SpenderAddress: spender.Hex(),
		})
	}

	if len(cleared) > 0 {
		err := tx.Where("collection_id = ? AND token_index IN ?", id, cleared).
			Delete(&schema.TokenApproval{}).Error
		if err != nil {
			return fmt.Errorf("failed to clear token approvals: %w", err)
		}
	}
	if len(rows) > 0 {
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "collection_id"}, {Name: "token_index"}},
				DoUpdates: clause.AssignmentColumns([]string{"spender_address", "updated_at"}),
			}).
			CreateInBatches(&rows, calculateSafeBatchSize(len(rows), 5)).Error
		if err != nil {
			return fmt.Errorf("failed to upsert token approvals: %w", err)
		}
	}

	return nil
}

func applyOperatorApprovals(tx *gorm.DB, id string, approvals []ledger.OperatorApproval) error {
	for _, op := range approvals {
		if !op.Approved {
			err := tx.Where("collection_id = ? AND owner_address = ? AND operator_address = ?",
				id, op.Owner.Hex(), op.Operator.Hex()).
				Delete(&schema.OperatorApproval{}).Error
			if err != nil {
				return fmt.Errorf("failed to revoke operator approval: %w", err)
			}
			continue
		}

		row := schema.OperatorApproval{
			CollectionID:    id,
			OwnerAddress:    op.Owner.Hex(),
			OperatorAddress: op.Operator.Hex(),
		}
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "collection_id"}, {Name: "owner_address"}, {Name: "operator_address"}},
				DoNothing: true,
			}).
			Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to grant operator approval: %w", err)
		}
	}
	return nil
}

func insertEvents(tx *gorm.DB, id string, events []domain.LedgerEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]schema.LedgerEvent, 0, len(events))
	for i := range events {
		if events[i].ID == "" {
			return fmt.Errorf("event %d of collection %s has no id", i, id)
		}
		events[i].CollectionID = id
		row, err := eventToRow(&events[i])
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	err := tx.Omit(clause.Associations).
		CreateInBatches(&rows, calculateSafeBatchSize(len(rows), 13)).Error
	if err != nil {
		return fmt.Errorf("failed to insert ledger events: %w", err)
	}
	return nil
}

// GetCollectionEvents lists a collection's events in commit order, after the given event ID
func (s *pgStore) GetCollectionEvents(ctx context.Context, id string, after string, limit int) ([]domain.LedgerEvent, error) {
	query := s.db.WithContext(ctx).Where("collection_id = ?", id)
	if after != "" {
		query = query.Where("id > ?", after)
	}

	var rows []schema.LedgerEvent
	if err := query.Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get collection events: %w", err)
	}

	return rowsToEvents(rows), nil
}

// GetPendingEvents returns unpublished events in commit order
func (s *pgStore) GetPendingEvents(ctx context.Context, limit int) ([]domain.LedgerEvent, error) {
	var rows []schema.LedgerEvent
	err := s.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}

	return rowsToEvents(rows), nil
}

// MarkEventsPublished flags events as delivered
func (s *pgStore) MarkEventsPublished(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&schema.LedgerEvent{}).
		Where("id IN ?", ids).
		Update("published_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to mark events published: %w", err)
	}
	return nil
}

func compareAddress(a, b domain.Address) int {
	return a.Cmp(b)
}

func eventToRow(e *domain.LedgerEvent) (schema.LedgerEvent, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return schema.LedgerEvent{}, fmt.Errorf("failed to marshal event %s: %w", e.ID, err)
	}

	return schema.LedgerEvent{
		ID:           e.ID,
		CollectionID: e.CollectionID,
		EventType:    string(e.Type),
		FromAddress:  addressToColumn(e.From),
		ToAddress:    addressToColumn(e.To),
		TokenIndex:   toInt64(e.TokenIndex),
		Quantity:     toInt64(e.Quantity),
		Approved:     e.Approved,
		Value:        e.Value,
		Payload:      datatypes.JSON(payload),
		OccurredAt:   e.Timestamp,
	}, nil
}

func rowsToEvents(rows []schema.LedgerEvent) []domain.LedgerEvent {
	events := make([]domain.LedgerEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, domain.LedgerEvent{
			ID:           row.ID,
			CollectionID: row.CollectionID,
			Type:         domain.EventType(row.EventType),
			From:         columnToAddress(row.FromAddress),
			To:           columnToAddress(row.ToAddress),
			TokenIndex:   uint64(row.TokenIndex),
			Quantity:     uint64(row.Quantity),
			Approved:     row.Approved,
			Value:        row.Value,
			Timestamp:    row.OccurredAt,
		})
	}
	return events
}

func addressToColumn(addr *domain.Address) *string {
	if addr == nil {
		return nil
	}
	s := addr.Hex()
	return &s
}

func columnToAddress(s *string) *domain.Address {
	if s == nil {
		return nil
	}
	return domain.AddressPtr(common.HexToAddress(*s))
}
