package schema

import (
	"time"
)

// TokenApproval represents the token_approvals table - the single approved spender
// of a token. Clearing an approval deletes the row.
type TokenApproval struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionID   string    `gorm:"column:collection_id;not null;type:text;uniqueIndex:idx_token_approvals_collection_index,priority:1"`
	TokenIndex     int64     `gorm:"column:token_index;not null;uniqueIndex:idx_token_approvals_collection_index,priority:2"`
	SpenderAddress string    `gorm:"column:spender_address;not null;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	Collection Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

func (TokenApproval) TableName() string {
	return "token_approvals"
}

// OperatorApproval represents the operator_approvals table. A row means the
// operator may manage every token of the owner.
type OperatorApproval struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionID    string    `gorm:"column:collection_id;not null;type:text;uniqueIndex:idx_operator_approvals_unique,priority:1"`
	OwnerAddress    string    `gorm:"column:owner_address;not null;type:text;uniqueIndex:idx_operator_approvals_unique,priority:2"`
	OperatorAddress string    `gorm:"column:operator_address;not null;type:text;uniqueIndex:idx_operator_approvals_unique,priority:3"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	Collection Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

func (OperatorApproval) TableName() string {
	return "operator_approvals"
}
