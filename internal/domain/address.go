package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address is a 20-byte account address. The zero value is the empty address.
type Address = common.Address

// ZeroAddress is the empty address
var ZeroAddress = Address{}

// IsZeroAddress reports whether the address is empty
func IsZeroAddress(addr Address) bool {
	return addr == ZeroAddress
}

// ParseAddress parses a 0x-prefixed hex address
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return ZeroAddress, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

// AddressPtr returns a pointer to a copy of the address
func AddressPtr(addr Address) *Address {
	return &addr
}
