package domain

import "errors"

var (
	// ErrUnauthorized is returned when the caller is not the collection admin for a gated
	// operation, or is neither owner nor approved for a token operation
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrZeroAddress is returned when a recipient, receiver or admin is the zero address
	ErrZeroAddress = errors.New("zero address")

	// ErrSupplyExceeded is returned when a mint would pass the collection cap
	ErrSupplyExceeded = errors.New("max supply exceeded")

	// ErrBatchTooLarge is returned when a batch quantity exceeds the per-call cap
	ErrBatchTooLarge = errors.New("batch size exceeds limit")

	// ErrInvalidQuantity is returned for a zero-quantity batch mint
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrNonexistentToken is returned when querying a never-minted or burned token
	ErrNonexistentToken = errors.New("nonexistent token")

	// ErrInvalidRoyalty is returned when royalty basis points are out of range
	ErrInvalidRoyalty = errors.New("invalid royalty basis points")

	// ErrReentrantCall is returned when batch mint is re-entered before it completes
	ErrReentrantCall = errors.New("reentrant call")

	// ErrIncorrectOwner is returned when the from address of a transfer does not own the token
	ErrIncorrectOwner = errors.New("transfer from incorrect owner")

	// ErrApprovalToOwner is returned when approving the current owner as spender
	ErrApprovalToOwner = errors.New("approval to current owner")

	// ErrSelfApproval is returned when an owner sets itself as operator
	ErrSelfApproval = errors.New("approve to caller")

	// ErrInvalidConfig is returned when collection parameters fail validation
	ErrInvalidConfig = errors.New("invalid collection config")

	// ErrInvalidAddress is returned when an address string cannot be parsed
	ErrInvalidAddress = errors.New("invalid address")

	// ErrCollectionNotFound is returned when a collection id is unknown
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrStaleState is returned when persisted counters moved since the changes were made
	ErrStaleState = errors.New("collection state changed concurrently")
)
