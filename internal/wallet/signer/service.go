package signer

import (
	"context"
	"crypto/ecdsa"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/dex-wallet/internal/wallet/address"
	"github/chapool/dex-wallet/internal/wallet/chain"
)

// AccountIndex is the BIP44 address index the demo wallet signs with.
const AccountIndex = 0

// Signer holds the private key of the wallet account for one chain.
type Signer struct {
	mu         sync.RWMutex
	chain      chain.Chain
	address    common.Address
	privateKey *ecdsa.PrivateKey
}

// New derives the account key from seed for chain and returns a signer for it.
func New(seed []byte, c chain.Chain) (*Signer, error) {
	privateKey, err := derivePrivateKey(seed, c)
	if err != nil {
		return nil, err
	}

	// Clear private key after use
	defer func() {
		for i := range privateKey {
			privateKey[i] = 0
		}
	}()

	ecdsaPrivateKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert private key to ECDSA")
	}

	return &Signer{
		chain:      c,
		address:    crypto.PubkeyToAddress(ecdsaPrivateKey.PublicKey),
		privateKey: ecdsaPrivateKey,
	}, nil
}

// Address derives the account address from seed for chain without keeping the key.
func Address(seed []byte, c chain.Chain) (common.Address, error) {
	svc := address.NewService()
	path := svc.GetBIP44Path(c.CoinType, AccountIndex)

	addr, err := svc.DeriveAddress(context.Background(), seed, path)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to derive address")
	}

	return addr, nil
}

func derivePrivateKey(seed []byte, c chain.Chain) ([]byte, error) {
	if len(seed) == 0 {
		return nil, errors.New("seed not initialized")
	}

	svc := address.NewService()
	path := svc.GetBIP44Path(c.CoinType, AccountIndex)

	privateKey, err := svc.DerivePrivateKey(context.Background(), seed, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive private key")
	}

	return privateKey, nil
}

// Address returns the signing account.
func (s *Signer) Address() common.Address {
	return s.address
}

// Chain returns the chain the signer was created for.
func (s *Signer) Chain() chain.Chain {
	return s.chain
}

// SignEVMTransaction signs a transaction for the signer's chain.
// EIP-1559 chains get a dynamic fee transaction, all others a legacy EIP-155 one.
func (s *Signer) SignEVMTransaction(ctx context.Context, req *SignEVMRequest) (*SignEVMResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.privateKey == nil {
		return nil, ErrClosed
	}

	if s.chain.IsEIP1559 {
		return s.signEIP1559Transaction(ctx, req)
	}

	return s.signLegacyTransaction(ctx, req)
}

// SignMessage signs msg with the EIP-191 personal message prefix.
// The recovery id of the returned signature is 27 or 28.
func (s *Signer) SignMessage(msg []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.privateKey == nil {
		return nil, ErrClosed
	}

	sig, err := crypto.Sign(accounts.TextHash(msg), s.privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign message")
	}

	const recoveryIDOffset = 27
	sig[crypto.RecoveryIDOffset] += recoveryIDOffset

	return sig, nil
}

// Close drops the private key. Further signing fails with ErrClosed.
func (s *Signer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.privateKey != nil {
		s.privateKey.D.SetInt64(0)
		s.privateKey = nil
	}
}
