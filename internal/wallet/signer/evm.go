package signer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

const base10 = 10

// signEIP1559Transaction signs an EIP-1559 transaction
func (s *Signer) signEIP1559Transaction(_ context.Context, req *SignEVMRequest) (*SignEVMResponse, error) {
	toAddress := common.HexToAddress(req.To)

	value, ok := new(big.Int).SetString(req.Value, base10)
	if !ok {
		return nil, errors.New("invalid value format")
	}

	maxFeePerGas, ok := new(big.Int).SetString(req.MaxFeePerGas, base10)
	if !ok {
		return nil, errors.New("invalid maxFeePerGas format")
	}

	maxPriorityFeePerGas, ok := new(big.Int).SetString(req.MaxPriorityFeePerGas, base10)
	if !ok {
		return nil, errors.New("invalid maxPriorityFeePerGas format")
	}

	chainID := big.NewInt(s.chain.ID)

	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     req.Nonce,
		GasTipCap: maxPriorityFeePerGas,
		GasFeeCap: maxFeePerGas,
		Gas:       req.GasLimit,
		To:        &toAddress,
		Value:     value,
		Data:      req.Data,
	})

	return s.sign(tx, types.NewLondonSigner(chainID))
}

// signLegacyTransaction signs an EIP-155 replay protected legacy transaction
func (s *Signer) signLegacyTransaction(_ context.Context, req *SignEVMRequest) (*SignEVMResponse, error) {
	toAddress := common.HexToAddress(req.To)

	value, ok := new(big.Int).SetString(req.Value, base10)
	if !ok {
		return nil, errors.New("invalid value format")
	}

	gasPrice, ok := new(big.Int).SetString(req.GasPrice, base10)
	if !ok {
		return nil, errors.New("invalid gasPrice format")
	}

	chainID := big.NewInt(s.chain.ID)

	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    req.Nonce,
		GasPrice: gasPrice,
		Gas:      req.GasLimit,
		To:       &toAddress,
		Value:    value,
		Data:     req.Data,
	})

	return s.sign(tx, types.NewEIP155Signer(chainID))
}

//nolint:varnamelen // tx is a common abbreviation for transaction
func (s *Signer) sign(tx *types.Transaction, signer types.Signer) (*SignEVMResponse, error) {
	signedTx, err := types.SignTx(tx, signer, s.privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	// Encode transaction to RLP
	txBytes, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal transaction")
	}

	return &SignEVMResponse{
		RawTransaction: txBytes,
		TxHash:         signedTx.Hash().Hex(),
	}, nil
}
