package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"

	"github.com/feral-file/ff-collection-ledger/internal/api/middleware"
	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/ledgerd"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// CreateCollection deploys a new collection administered by the caller
	// POST /api/v1/collections
	CreateCollection(c *gin.Context)

	// ListCollections lists collections, newest first
	// GET /api/v1/collections?limit=<limit>&offset=<offset>
	ListCollections(c *gin.Context)

	// GetCollection returns the collection summary
	// GET /api/v1/collections/:id
	GetCollection(c *gin.Context)

	// GetToken returns the owner, approval and URI of a live token
	// GET /api/v1/collections/:id/tokens/:index
	GetToken(c *gin.Context)

	// GetRoyalty quotes the royalty of a sale
	// GET /api/v1/collections/:id/tokens/:index/royalty?sale_price=<wei>
	GetRoyalty(c *gin.Context)

	// GetBalance returns the token count of a holder
	// GET /api/v1/collections/:id/balances/:address
	GetBalance(c *gin.Context)

	// GetOperatorApproval reports whether operator manages all tokens of owner
	// GET /api/v1/collections/:id/operators/:owner/:operator
	GetOperatorApproval(c *gin.Context)

	// GetEvents lists committed ledger events in commit order
	// GET /api/v1/collections/:id/events?after=<event_id>&limit=<limit>
	GetEvents(c *gin.Context)

	// Mint mints the next token (admin only)
	// POST /api/v1/collections/:id/mint
	Mint(c *gin.Context)

	// BatchMint mints a run of consecutive tokens (admin only)
	// POST /api/v1/collections/:id/batch-mint
	BatchMint(c *gin.Context)

	// Transfer moves a token
	// POST /api/v1/collections/:id/transfer
	Transfer(c *gin.Context)

	// Approve sets or clears the spender of a token
	// POST /api/v1/collections/:id/approve
	Approve(c *gin.Context)

	// SetApprovalForAll enables or disables an operator of the caller
	// POST /api/v1/collections/:id/approval-for-all
	SetApprovalForAll(c *gin.Context)

	// Burn retires a token
	// POST /api/v1/collections/:id/burn
	Burn(c *gin.Context)

	// SetRoyaltyReceiver changes the royalty receiver (admin only)
	// PUT /api/v1/collections/:id/royalty-receiver
	SetRoyaltyReceiver(c *gin.Context)

	// SetMetadataBase changes the token URI base (admin only)
	// PUT /api/v1/collections/:id/metadata-base
	SetMetadataBase(c *gin.Context)

	// SetContractURI changes the collection metadata pointer (admin only)
	// PUT /api/v1/collections/:id/contract-uri
	SetContractURI(c *gin.Context)

	// TransferAdmin hands the admin role to another address (admin only)
	// PUT /api/v1/collections/:id/admin
	TransferAdmin(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// CollectionDefaults fill fields omitted from POST /collections
type CollectionDefaults struct {
	MaxBatchSize uint64
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	service  ledgerd.Service
	defaults CollectionDefaults
}

// NewHandler creates a new REST API handler
func NewHandler(debug bool, service ledgerd.Service, defaults CollectionDefaults) Handler {
	return &handler{
		debug:    debug,
		service:  service,
		defaults: defaults,
	}
}

// caller returns the authenticated address of the request
func caller(c *gin.Context) (domain.Address, bool) {
	addr, ok := middleware.Caller(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return domain.ZeroAddress, false
	}
	return addr, true
}

// bind decodes the JSON body into req
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondValidationError(c, err.Error())
		return false
	}
	return true
}

func (h *handler) CreateCollection(c *gin.Context) {
	admin, ok := caller(c)
	if !ok {
		return
	}

	var req CreateCollectionRequest
	if !bind(c, &req) {
		return
	}

	receiver := admin
	if req.RoyaltyReceiver != "" {
		if receiver, ok = parseAddress(c, "royalty_receiver", req.RoyaltyReceiver); !ok {
			return
		}
	}

	batchCap := req.MaxBatchSize
	if batchCap == 0 {
		batchCap = h.defaults.MaxBatchSize
	}

	info, err := h.service.CreateCollection(c.Request.Context(), ledgerd.CreateCollectionInput{
		Name:            req.Name,
		Symbol:          req.Symbol,
		BaseURI:         req.BaseURI,
		ContractURI:     req.ContractURI,
		MaxSupply:       req.MaxSupply,
		MaxBatchSize:    batchCap,
		RoyaltyBps:      req.RoyaltyBps,
		RoyaltyReceiver: receiver,
		Admin:           admin,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create collection")
		return
	}

	c.JSON(http.StatusCreated, info)
}

func (h *handler) ListCollections(c *gin.Context) {
	params, err := ParseListCollectionsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	infos, err := h.service.ListCollections(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondInternalError(c, err, "Failed to list collections")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": infos,
		"limit":       params.Limit,
		"offset":      params.Offset,
	})
}

func (h *handler) GetCollection(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}

	info, err := h.service.GetCollection(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get collection")
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *handler) GetToken(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}

	token, err := h.service.GetToken(c.Request.Context(), id, index)
	if err != nil {
		respondServiceError(c, err, "Failed to get token")
		return
	}

	c.JSON(http.StatusOK, token)
}

func (h *handler) GetRoyalty(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}

	raw := c.Query("sale_price")
	if raw == "" {
		respondValidationError(c, "sale_price is required")
		return
	}
	salePrice, err := uint256.FromDecimal(raw)
	if err != nil {
		respondValidationError(c, "sale_price must be a non-negative integer below 2^256")
		return
	}

	receiver, amount, err := h.service.RoyaltyInfo(c.Request.Context(), id, index, salePrice)
	if err != nil {
		respondServiceError(c, err, "Failed to quote royalty")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receiver":       receiver,
		"sale_price":     salePrice.Dec(),
		"royalty_amount": amount.Dec(),
	})
}

func (h *handler) GetBalance(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	holder, ok := parseAddress(c, "address", c.Param("address"))
	if !ok {
		return
	}

	balance, err := h.service.BalanceOf(c.Request.Context(), id, holder)
	if err != nil {
		respondServiceError(c, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": holder,
		"balance": balance,
	})
}

func (h *handler) GetOperatorApproval(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	owner, ok := parseAddress(c, "owner", c.Param("owner"))
	if !ok {
		return
	}
	operator, ok := parseAddress(c, "operator", c.Param("operator"))
	if !ok {
		return
	}

	approved, err := h.service.IsApprovedForAll(c.Request.Context(), id, owner, operator)
	if err != nil {
		respondServiceError(c, err, "Failed to get operator approval")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"owner":    owner,
		"operator": operator,
		"approved": approved,
	})
}

func (h *handler) GetEvents(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	params, err := ParseGetEventsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	events, err := h.service.GetEvents(c.Request.Context(), id, params.After, params.Limit)
	if err != nil {
		respondServiceError(c, err, "Failed to get events")
		return
	}

	var next string
	if len(events) == params.Limit {
		next = events[len(events)-1].ID
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"next":   next,
	})
}

func (h *handler) Mint(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	from, ok := caller(c)
	if !ok {
		return
	}
	var req MintRequest
	if !bind(c, &req) {
		return
	}
	to, ok := parseAddress(c, "to", req.To)
	if !ok {
		return
	}

	index, err := h.service.MintOne(c.Request.Context(), id, from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to mint")
		return
	}

	c.JSON(http.StatusOK, gin.H{"index": index})
}

func (h *handler) BatchMint(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	from, ok := caller(c)
	if !ok {
		return
	}
	var req BatchMintRequest
	if !bind(c, &req) {
		return
	}
	to, ok := parseAddress(c, "to", req.To)
	if !ok {
		return
	}

	start, err := h.service.MintBatch(c.Request.Context(), id, from, to, req.Quantity)
	if err != nil {
		respondServiceError(c, err, "Failed to batch mint")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start":    start,
		"quantity": req.Quantity,
	})
}

func (h *handler) Transfer(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	sender, ok := caller(c)
	if !ok {
		return
	}
	var req TransferRequest
	if !bind(c, &req) {
		return
	}
	from, ok := parseAddress(c, "from", req.From)
	if !ok {
		return
	}
	to, ok := parseAddress(c, "to", req.To)
	if !ok {
		return
	}

	if err := h.service.Transfer(c.Request.Context(), id, sender, from, to, *req.Index); err != nil {
		respondServiceError(c, err, "Failed to transfer")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) Approve(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	sender, ok := caller(c)
	if !ok {
		return
	}
	var req ApproveRequest
	if !bind(c, &req) {
		return
	}
	spender, ok := parseAddress(c, "spender", req.Spender)
	if !ok {
		return
	}

	if err := h.service.Approve(c.Request.Context(), id, sender, spender, *req.Index); err != nil {
		respondServiceError(c, err, "Failed to approve")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) SetApprovalForAll(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	owner, ok := caller(c)
	if !ok {
		return
	}
	var req ApprovalForAllRequest
	if !bind(c, &req) {
		return
	}
	operator, ok := parseAddress(c, "operator", req.Operator)
	if !ok {
		return
	}

	if err := h.service.SetApprovalForAll(c.Request.Context(), id, owner, operator, req.Approved); err != nil {
		respondServiceError(c, err, "Failed to set approval for all")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) Burn(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	sender, ok := caller(c)
	if !ok {
		return
	}
	var req BurnRequest
	if !bind(c, &req) {
		return
	}

	if err := h.service.Burn(c.Request.Context(), id, sender, *req.Index); err != nil {
		respondServiceError(c, err, "Failed to burn")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) SetRoyaltyReceiver(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	sender, ok := caller(c)
	if !ok {
		return
	}
	var req RoyaltyReceiverRequest
	if !bind(c, &req) {
		return
	}
	receiver, ok := parseAddress(c, "receiver", req.Receiver)
	if !ok {
		return
	}

	if err := h.service.SetRoyaltyReceiver(c.Request.Context(), id, sender, receiver); err != nil {
		respondServiceError(c, err, "Failed to set royalty receiver")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) SetMetadataBase(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	sender, ok := caller(c)
	if !ok {
		return
	}
	var req MetadataBaseRequest
	if !bind(c, &req) {
		return
	}

	if err := h.service.SetMetadataBase(c.Request.Context(), id, sender, req.BaseURI); err != nil {
		respondServiceError(c, err, "Failed to set metadata base")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) SetContractURI(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	sender, ok := caller(c)
	if !ok {
		return
	}
	var req ContractURIRequest
	if !bind(c, &req) {
		return
	}

	if err := h.service.SetContractURI(c.Request.Context(), id, sender, req.ContractURI); err != nil {
		respondServiceError(c, err, "Failed to set contract URI")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) TransferAdmin(c *gin.Context) {
	id, ok := collectionIDParam(c)
	if !ok {
		return
	}
	sender, ok := caller(c)
	if !ok {
		return
	}
	var req AdminRequest
	if !bind(c, &req) {
		return
	}
	newAdmin, ok := parseAddress(c, "admin", req.Admin)
	if !ok {
		return
	}

	if err := h.service.TransferAdmin(c.Request.Context(), id, sender, newAdmin); err != nil {
		respondServiceError(c, err, "Failed to transfer admin")
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "ff-collection-ledger-api",
	})
}
