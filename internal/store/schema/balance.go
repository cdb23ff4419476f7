package schema

import (
	"time"
)

// Balance represents the balances table - live token count per holder. Rows with a
// zero count are deleted.
type Balance struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CollectionID references the collection
	CollectionID string `gorm:"column:collection_id;not null;type:text;uniqueIndex:idx_balances_collection_holder,priority:1"`
	// HolderAddress is the checksummed holder address
	HolderAddress string `gorm:"column:holder_address;not null;type:text;uniqueIndex:idx_balances_collection_holder,priority:2"`
	// Count is the number of live tokens held
	Count     int64     `gorm:"column:count;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Collection Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Balance model
func (Balance) TableName() string {
	return "balances"
}
