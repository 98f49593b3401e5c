package address

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

type service struct{}

// NewService creates a new AddressService
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// GetBIP44Path gets BIP44 path
// Format: m/44'/{coinType}'/0'/0/{index}
func (s *service) GetBIP44Path(coinType uint32, addressIndex int) string {
	return fmt.Sprintf("m/44'/%d'/0'/0/%d", coinType, addressIndex)
}

// Parse parses a 0x-prefixed (or bare) 40 hex character address.
// Unlike common.HexToAddress it rejects malformed input instead of truncating it.
func Parse(hex string) (common.Address, error) {
	hex = strings.TrimSpace(hex)
	if !common.IsHexAddress(hex) {
		return common.Address{}, errors.Wrapf(ErrInvalidAddress, "%q", hex)
	}

	return common.HexToAddress(hex), nil
}
