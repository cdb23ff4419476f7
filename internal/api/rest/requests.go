package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

const MAX_PAGE_SIZE = 100

// CreateCollectionRequest is the body of POST /collections. The caller becomes admin;
// the royalty receiver defaults to the caller.
type CreateCollectionRequest struct {
	Name            string `json:"name" binding:"required"`
	Symbol          string `json:"symbol" binding:"required"`
	BaseURI         string `json:"base_uri"`
	ContractURI     string `json:"contract_uri"`
	MaxSupply       uint64 `json:"max_supply" binding:"required"`
	MaxBatchSize    uint64 `json:"max_batch_size"`
	RoyaltyBps      uint64 `json:"royalty_bps"`
	RoyaltyReceiver string `json:"royalty_receiver"`
}

// MintRequest is the body of POST /mint
type MintRequest struct {
	To string `json:"to" binding:"required"`
}

// BatchMintRequest is the body of POST /batch-mint
type BatchMintRequest struct {
	To       string `json:"to" binding:"required"`
	Quantity uint64 `json:"quantity"`
}

// TransferRequest is the body of POST /transfer
type TransferRequest struct {
	From  string  `json:"from" binding:"required"`
	To    string  `json:"to" binding:"required"`
	Index *uint64 `json:"index" binding:"required"`
}

// ApproveRequest is the body of POST /approve. The zero address clears the approval.
type ApproveRequest struct {
	Spender string  `json:"spender" binding:"required"`
	Index   *uint64 `json:"index" binding:"required"`
}

// ApprovalForAllRequest is the body of POST /approval-for-all
type ApprovalForAllRequest struct {
	Operator string `json:"operator" binding:"required"`
	Approved bool   `json:"approved"`
}

// BurnRequest is the body of POST /burn
type BurnRequest struct {
	Index *uint64 `json:"index" binding:"required"`
}

// RoyaltyReceiverRequest is the body of PUT /royalty-receiver
type RoyaltyReceiverRequest struct {
	Receiver string `json:"receiver" binding:"required"`
}

// MetadataBaseRequest is the body of PUT /metadata-base. An empty base disables token URIs.
type MetadataBaseRequest struct {
	BaseURI string `json:"base_uri"`
}

// ContractURIRequest is the body of PUT /contract-uri
type ContractURIRequest struct {
	ContractURI string `json:"contract_uri"`
}

// AdminRequest is the body of PUT /admin
type AdminRequest struct {
	Admin string `json:"admin" binding:"required"`
}

// ListCollectionsQueryParams holds query parameters for GET /collections
type ListCollectionsQueryParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// GetEventsQueryParams holds query parameters for GET /collections/:id/events
type GetEventsQueryParams struct {
	After string `form:"after"` // event ID to continue after
	Limit int    `form:"limit,default=50"`
}

// ParseListCollectionsQuery parses query parameters for GET /collections
func ParseListCollectionsQuery(c *gin.Context) (*ListCollectionsQueryParams, error) {
	var params ListCollectionsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 || params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}

	return &params, nil
}

// ParseGetEventsQuery parses query parameters for GET /collections/:id/events
func ParseGetEventsQuery(c *gin.Context) (*GetEventsQueryParams, error) {
	var params GetEventsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 || params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	return &params, nil
}

// collectionIDParam returns the :id path parameter if it is a UUID
func collectionIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondBadRequest(c, "Invalid collection ID", id)
		return "", false
	}
	return id, true
}

// indexParam returns the :index path parameter
func indexParam(c *gin.Context) (uint64, bool) {
	raw := c.Param("index")
	index, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid token index", raw)
		return 0, false
	}
	return index, true
}

// parseAddress parses an address field of a request, responding when it is invalid
func parseAddress(c *gin.Context, field, raw string) (domain.Address, bool) {
	addr, err := domain.ParseAddress(raw)
	if err != nil {
		respondValidationError(c, fmt.Sprintf("%s: %s", field, err.Error()))
		return domain.ZeroAddress, false
	}
	return addr, true
}
