package ledger

import (
	"github.com/holiman/uint256"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

var royaltyDenominator = uint256.NewInt(domain.ROYALTY_DENOMINATOR)

// royaltyRegister holds the fixed royalty rate and its mutable receiver
type royaltyRegister struct {
	bps      uint64
	receiver domain.Address
}

// quote returns floor(salePrice * bps / 10000). The result never exceeds
// salePrice, so the 512-bit intermediate cannot overflow the 256-bit output.
func (r *royaltyRegister) quote(salePrice *uint256.Int) *uint256.Int {
	if salePrice == nil || salePrice.IsZero() || r.bps == 0 {
		return new(uint256.Int)
	}
	amount, _ := new(uint256.Int).MulDivOverflow(salePrice, uint256.NewInt(r.bps), royaltyDenominator)
	return amount
}
