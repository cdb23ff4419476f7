package ledger

import (
	"fmt"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// Counters is the collection's counter set. Minted and Burned only grow;
// Cap and BatchCap are fixed at construction.
type Counters struct {
	Minted   uint64
	Burned   uint64
	Cap      uint64
	BatchCap uint64
}

// Supply returns the number of live tokens
func (c Counters) Supply() uint64 {
	return c.Minted - c.Burned
}

// Remaining returns how many tokens can still be minted
func (c Counters) Remaining() uint64 {
	return c.Cap - c.Minted
}

// checkMintOne verifies a single mint fits under the cap
func (c Counters) checkMintOne() error {
	if c.Minted >= c.Cap {
		return fmt.Errorf("%w: %d of %d minted", domain.ErrSupplyExceeded, c.Minted, c.Cap)
	}
	return nil
}

// checkBatch verifies a batch of quantity tokens. The quantity, batch cap and
// capacity checks run in that order and each reports its own error.
func (c Counters) checkBatch(quantity uint64) error {
	if quantity == 0 {
		return domain.ErrInvalidQuantity
	}
	if quantity > c.BatchCap {
		return fmt.Errorf("%w: %d > %d", domain.ErrBatchTooLarge, quantity, c.BatchCap)
	}
	if quantity > c.Remaining() {
		return fmt.Errorf("%w: %d requested, %d remaining", domain.ErrSupplyExceeded, quantity, c.Remaining())
	}
	return nil
}
