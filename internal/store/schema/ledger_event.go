package schema

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerEvent represents the ledger_events table - the transactional outbox. Events
// are written in the same transaction as the state they describe and published later.
type LedgerEvent struct {
	// ID is the event ULID; lexical order is commit order
	ID           string  `gorm:"column:id;primaryKey;type:text"`
	CollectionID string  `gorm:"column:collection_id;not null;type:text;index:idx_ledger_events_collection"`
	EventType    string  `gorm:"column:event_type;not null;type:text"`
	FromAddress  *string `gorm:"column:from_address;type:text"`
	ToAddress    *string `gorm:"column:to_address;type:text"`
	TokenIndex   int64   `gorm:"column:token_index;not null;default:0"`
	Quantity     int64   `gorm:"column:quantity;not null;default:0"`
	Approved     bool    `gorm:"column:approved;not null;default:false"`
	Value        string  `gorm:"column:value;not null;default:'';type:text"`
	// Payload is the event as published
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb"`
	// OccurredAt is when the call committed
	OccurredAt time.Time `gorm:"column:occurred_at;not null;type:timestamptz"`
	// PublishedAt is set once the relay delivered the event
	PublishedAt *time.Time `gorm:"column:published_at;type:timestamptz;index:idx_ledger_events_published"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	Collection Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

func (LedgerEvent) TableName() string {
	return "ledger_events"
}
