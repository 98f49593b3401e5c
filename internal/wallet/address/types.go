package address

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrInvalidAddress is returned when a string is not a 20 byte hex address.
var ErrInvalidAddress = errors.New("invalid address")

// Service provides address derivation functionality
type Service interface {
	// DeriveAddress derives an EVM address from seed and BIP44 path
	DeriveAddress(ctx context.Context, seed []byte, path string) (common.Address, error)

	// DerivePrivateKey derives a private key from seed and BIP44 path
	// WARNING: Private key should be cleared after use
	DerivePrivateKey(ctx context.Context, seed []byte, path string) ([]byte, error)

	// GetBIP44Path gets BIP44 path for the given coin type and address index
	GetBIP44Path(coinType uint32, addressIndex int) string
}
