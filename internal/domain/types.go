package domain

import (
	"time"
)

// EventType represents the type of ledger event
type EventType string

const (
	EventTypeTokenMinted            EventType = "token_minted"
	EventTypeBatchMinted            EventType = "batch_minted"
	EventTypeTransfer               EventType = "transfer"
	EventTypeTokenBurned            EventType = "token_burned"
	EventTypeApproval               EventType = "approval"
	EventTypeApprovalForAll         EventType = "approval_for_all"
	EventTypeRoyaltyReceiverUpdated EventType = "royalty_receiver_updated"
	EventTypeMetadataBaseUpdated    EventType = "metadata_base_updated"
	EventTypeContractURIUpdated     EventType = "contract_uri_updated"
	EventTypeAdminTransferred       EventType = "admin_transferred"
)

// IsValidEventType checks if an event type is known
func IsValidEventType(t EventType) bool {
	switch t {
	case EventTypeTokenMinted,
		EventTypeBatchMinted,
		EventTypeTransfer,
		EventTypeTokenBurned,
		EventTypeApproval,
		EventTypeApprovalForAll,
		EventTypeRoyaltyReceiverUpdated,
		EventTypeMetadataBaseUpdated,
		EventTypeContractURIUpdated,
		EventTypeAdminTransferred:
		return true
	}
	return false
}

// LedgerEvent represents an observable side effect of a successful ledger call.
// This is the format persisted to the outbox and published to NATS.
type LedgerEvent struct {
	ID           string    `json:"id"`                 // ULID, assigned by the host when the call commits
	CollectionID string    `json:"collection_id"`      // owning collection
	Type         EventType `json:"event_type"`         // token_minted, batch_minted, transfer, ...
	From         *Address  `json:"from,omitempty"`     // previous holder (transfer, burn) or previous admin
	To           *Address  `json:"to,omitempty"`       // recipient (mint, transfer), spender, operator, receiver or new admin
	TokenIndex   uint64    `json:"token_index"`        // token index, or first index of a batch
	Quantity     uint64    `json:"quantity,omitempty"` // batch size (1 for single mints)
	Approved     bool      `json:"approved,omitempty"` // operator flag for approval_for_all
	Value        string    `json:"value,omitempty"`    // new metadata base or contract URI
	Timestamp    time.Time `json:"timestamp"`
}

// Valid checks the event carries the fields required by its type
func (e *LedgerEvent) Valid() bool {
	if e.CollectionID == "" || !IsValidEventType(e.Type) {
		return false
	}

	switch e.Type {
	case EventTypeTokenMinted:
		return e.To != nil && !IsZeroAddress(*e.To) && e.Quantity == 1
	case EventTypeBatchMinted:
		return e.To != nil && !IsZeroAddress(*e.To) && e.Quantity > 0
	case EventTypeTransfer:
		return e.From != nil && e.To != nil && !IsZeroAddress(*e.From) && !IsZeroAddress(*e.To)
	case EventTypeTokenBurned:
		return e.From != nil && !IsZeroAddress(*e.From) && e.To == nil
	case EventTypeApproval:
		// a zero spender clears the approval
		return e.From != nil && e.To != nil
	case EventTypeApprovalForAll:
		return e.From != nil && e.To != nil && !IsZeroAddress(*e.To)
	case EventTypeRoyaltyReceiverUpdated:
		return e.To != nil && !IsZeroAddress(*e.To)
	case EventTypeAdminTransferred:
		return e.From != nil && e.To != nil && !IsZeroAddress(*e.To)
	case EventTypeMetadataBaseUpdated, EventTypeContractURIUpdated:
		return e.From == nil && e.To == nil
	}

	return true
}
