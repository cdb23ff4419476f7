package schema

import (
	"time"
)

// Collection represents the collections table - one row per certificate collection.
// Counter and cap columns are bigint; collections are limited to MaxInt64 tokens.
type Collection struct {
	// ID is the collection identifier (UUID)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Name is the display name of the collection
	Name string `gorm:"column:name;not null;type:text"`
	// Symbol is the short ticker of the collection
	Symbol string `gorm:"column:symbol;not null;type:text"`
	// BaseURI is the metadata base; token URIs are BaseURI + index + ".json"
	BaseURI string `gorm:"column:base_uri;not null;default:'';type:text"`
	// ContractURI is the collection-level metadata pointer
	ContractURI string `gorm:"column:contract_uri;not null;default:'';type:text"`
	// MaxSupply is the fixed cap on minted tokens
	MaxSupply int64 `gorm:"column:max_supply;not null"`
	// MaxBatchSize is the fixed cap on a single batch mint
	MaxBatchSize int64 `gorm:"column:max_batch_size;not null"`
	// Minted is the number of indices ever assigned
	Minted int64 `gorm:"column:minted;not null;default:0"`
	// Burned is the number of retired tokens
	Burned int64 `gorm:"column:burned;not null;default:0"`
	// RoyaltyBps is the fixed royalty rate in basis points
	RoyaltyBps int64 `gorm:"column:royalty_bps;not null"`
	// RoyaltyReceiver is the address paid royalties
	RoyaltyReceiver string `gorm:"column:royalty_receiver;not null;type:text"`
	// AdminAddress is the only address allowed to mint and change settings
	AdminAddress string `gorm:"column:admin_address;not null;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
