package ledger

import (
	"fmt"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// Config holds the construction parameters of a collection. They are validated once;
// Cap, BatchCap and RoyaltyBps never change afterwards.
type Config struct {
	Name            string
	Symbol          string
	BaseURI         string
	ContractURI     string
	Cap             uint64
	BatchCap        uint64
	RoyaltyBps      uint64
	RoyaltyReceiver domain.Address
	Admin           domain.Address
}

// Validate checks the construction parameters
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidConfig)
	}
	if c.Symbol == "" {
		return fmt.Errorf("%w: symbol cannot be empty", domain.ErrInvalidConfig)
	}
	if c.Cap == 0 {
		return fmt.Errorf("%w: max supply must be greater than zero", domain.ErrInvalidConfig)
	}
	if c.BatchCap == 0 {
		return fmt.Errorf("%w: max batch size must be greater than zero", domain.ErrInvalidConfig)
	}
	if c.RoyaltyBps > domain.MAX_ROYALTY_BASIS_BPS {
		return fmt.Errorf("%w: %d exceeds %d", domain.ErrInvalidRoyalty, c.RoyaltyBps, domain.MAX_ROYALTY_BASIS_BPS)
	}
	if domain.IsZeroAddress(c.RoyaltyReceiver) {
		return fmt.Errorf("%w: royalty receiver", domain.ErrZeroAddress)
	}
	if domain.IsZeroAddress(c.Admin) {
		return fmt.Errorf("%w: admin", domain.ErrZeroAddress)
	}
	return nil
}
