package ledgerd

import (
	"time"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
	"github.com/feral-file/ff-collection-ledger/internal/ledger"
	"github.com/feral-file/ff-collection-ledger/internal/store/schema"
)

// CreateCollectionInput holds the parameters of a new collection
type CreateCollectionInput struct {
	Name            string
	Symbol          string
	BaseURI         string
	ContractURI     string
	MaxSupply       uint64
	MaxBatchSize    uint64
	RoyaltyBps      uint64
	RoyaltyReceiver domain.Address
	Admin           domain.Address
}

func (in CreateCollectionInput) config() ledger.Config {
	return ledger.Config{
		Name:            in.Name,
		Symbol:          in.Symbol,
		BaseURI:         in.BaseURI,
		ContractURI:     in.ContractURI,
		Cap:             in.MaxSupply,
		BatchCap:        in.MaxBatchSize,
		RoyaltyBps:      in.RoyaltyBps,
		RoyaltyReceiver: in.RoyaltyReceiver,
		Admin:           in.Admin,
	}
}

// CollectionInfo is a summary of a collection's parameters and counters
type CollectionInfo struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Symbol          string         `json:"symbol"`
	Admin           domain.Address `json:"admin"`
	BaseURI         string         `json:"base_uri"`
	ContractURI     string         `json:"contract_uri"`
	MaxSupply       uint64         `json:"max_supply"`
	MaxBatchSize    uint64         `json:"max_batch_size"`
	TotalMinted     uint64         `json:"total_minted"`
	TotalBurned     uint64         `json:"total_burned"`
	TotalSupply     uint64         `json:"total_supply"`
	RemainingSupply uint64         `json:"remaining_supply"`
	RoyaltyBps      uint64         `json:"royalty_bps"`
	RoyaltyReceiver domain.Address `json:"royalty_receiver"`
	CreatedAt       *time.Time     `json:"created_at,omitempty"`
}

// TokenInfo describes one live token
type TokenInfo struct {
	Index    uint64         `json:"index"`
	Owner    domain.Address `json:"owner"`
	TokenURI string         `json:"token_uri"`
	Approved domain.Address `json:"approved"`
}

func infoFromCollection(id string, c *ledger.Collection) *CollectionInfo {
	counters := c.Counters()
	return &CollectionInfo{
		ID:              id,
		Name:            c.Name(),
		Symbol:          c.Symbol(),
		Admin:           c.Admin(),
		BaseURI:         c.MetadataBase(),
		ContractURI:     c.ContractURI(),
		MaxSupply:       counters.Cap,
		MaxBatchSize:    counters.BatchCap,
		TotalMinted:     counters.Minted,
		TotalBurned:     counters.Burned,
		TotalSupply:     counters.Supply(),
		RemainingSupply: counters.Remaining(),
		RoyaltyBps:      c.RoyaltyBasisPoints(),
		RoyaltyReceiver: c.RoyaltyReceiver(),
	}
}

func infoFromRow(row *schema.Collection) *CollectionInfo {
	createdAt := row.CreatedAt
	return &CollectionInfo{
		ID:              row.ID,
		Name:            row.Name,
		Symbol:          row.Symbol,
		Admin:           mustAddress(row.AdminAddress),
		BaseURI:         row.BaseURI,
		ContractURI:     row.ContractURI,
		MaxSupply:       uint64(row.MaxSupply),
		MaxBatchSize:    uint64(row.MaxBatchSize),
		TotalMinted:     uint64(row.Minted),
		TotalBurned:     uint64(row.Burned),
		TotalSupply:     uint64(row.Minted - row.Burned),
		RemainingSupply: uint64(row.MaxSupply - row.Minted),
		RoyaltyBps:      uint64(row.RoyaltyBps),
		RoyaltyReceiver: mustAddress(row.RoyaltyReceiver),
		CreatedAt:       &createdAt,
	}
}

// mustAddress parses an address column; stored addresses are always valid hex
func mustAddress(s string) domain.Address {
	addr, err := domain.ParseAddress(s)
	if err != nil {
		return domain.ZeroAddress
	}
	return addr
}
