package schema

import (
	"time"
)

// OwnershipRecord represents the ownership_records table. Only explicit records are
// stored; an index without a row belongs to the nearest lower row.
type OwnershipRecord struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionID string `gorm:"column:collection_id;not null;type:text;uniqueIndex:idx_ownership_records_collection_index,priority:1"`
	TokenIndex   int64  `gorm:"column:token_index;not null;uniqueIndex:idx_ownership_records_collection_index,priority:2"`
	// HolderAddress is empty for a retired record
	HolderAddress string    `gorm:"column:holder_address;not null;default:'';type:text"`
	Retired       bool      `gorm:"column:retired;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	Collection Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

func (OwnershipRecord) TableName() string {
	return "ownership_records"
}
