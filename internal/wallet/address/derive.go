package address

import (
	"context"
	"crypto/ecdsa"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

// ErrInvalidPath is returned for derivation paths that are not of the form m/a'/b/...
var ErrInvalidPath = errors.New("invalid derivation path")

func (s *service) DeriveAddress(ctx context.Context, seed []byte, path string) (common.Address, error) {
	key, err := s.DerivePrivateKey(ctx, seed, path)
	if err != nil {
		return common.Address{}, err
	}
	defer wipe(key)

	return FromPrivateKey(key)
}

// DerivePrivateKey walks path from the master key of seed and returns the
// 32 byte secp256k1 key at its end. The caller owns and must wipe the result.
func (s *service) DerivePrivateKey(_ context.Context, seed []byte, path string) ([]byte, error) {
	indices, err := ParseBIP44Path(path)
	if err != nil {
		return nil, err
	}

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	for depth, index := range indices {
		if key, err = key.NewChildKey(index); err != nil {
			return nil, errors.Wrapf(err, "failed to derive child %d at depth %d", index, depth+1)
		}
	}

	return key.Key, nil
}

// FromPrivateKey returns the address controlled by a raw secp256k1 private key.
func FromPrivateKey(privateKey []byte) (common.Address, error) {
	key, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "invalid private key")
	}

	pub, ok := key.Public().(*ecdsa.PublicKey)
	if !ok {
		return common.Address{}, errors.New("unexpected public key type")
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// ParseBIP44Path turns "m/44'/60'/0'/0/7" into child indices, hardened
// segments offset by bip32.FirstHardenedChild. "m" alone yields no indices.
func ParseBIP44Path(path string) ([]uint32, error) {
	rest, ok := strings.CutPrefix(path, "m")
	if !ok {
		return nil, errors.Wrapf(ErrInvalidPath, "%q", path)
	}

	segments := strings.FieldsFunc(rest, func(r rune) bool { return r == '/' })
	indices := make([]uint32, len(segments))

	for i, segment := range segments {
		number, hardened := strings.CutSuffix(segment, "'")

		n, err := strconv.ParseUint(number, 10, 31)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPath, "%q: segment %q", path, segment)
		}

		indices[i] = uint32(n)
		if hardened {
			indices[i] += bip32.FirstHardenedChild
		}
	}

	return indices, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
