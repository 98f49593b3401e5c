package adapter

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github/chapool/dex-wallet/internal/util"
	"github/chapool/dex-wallet/internal/wallet/chain"
	"github/chapool/dex-wallet/internal/wallet/evm"
	"github/chapool/dex-wallet/internal/wallet/signer"
)

const (
	nativeTransferGasLimit   = 21000
	defaultEIP1559Multiplier = 2
)

// ErrWatchOnly is returned by operations that need a signer on a watch-only session.
var ErrWatchOnly = errors.New("wallet is watch-only")

// EthereumAdapter exposes wallet level operations on top of a kit. The signer
// is nil for watch-only wallets.
type EthereumAdapter struct {
	kit    *evm.Kit
	signer *signer.Signer
}

// NewEthereumAdapter wraps kit. Pass a nil signer for watch-only mode.
func NewEthereumAdapter(kit *evm.Kit, s *signer.Signer) *EthereumAdapter {
	return &EthereumAdapter{
		kit:    kit,
		signer: s,
	}
}

func (a *EthereumAdapter) Address() common.Address {
	return a.kit.Address()
}

func (a *EthereumAdapter) Chain() chain.Chain {
	return a.kit.Chain()
}

func (a *EthereumAdapter) IsWatchOnly() bool {
	return a.signer == nil
}

// Balance is the last synced balance in wei; zero before the first sync.
func (a *EthereumAdapter) Balance() *big.Int {
	if balance := a.kit.Balance(); balance != nil {
		return balance
	}

	return new(big.Int)
}

func (a *EthereumAdapter) LastBlockHeight() uint64 {
	return a.kit.LastBlockHeight()
}

func (a *EthereumAdapter) SyncState() (evm.SyncState, error) {
	return a.kit.SyncState()
}

func (a *EthereumAdapter) Refresh(ctx context.Context) error {
	return a.kit.Refresh(ctx)
}

func (a *EthereumAdapter) Transactions(ctx context.Context) ([]*evm.Transaction, error) {
	return a.kit.Transactions(ctx)
}

// SendRequest describes a value transfer or contract call from the wallet.
type SendRequest struct {
	To     common.Address
	Amount *big.Int
	Data   []byte
}

// Send signs and broadcasts a transaction. Fees follow the chain's fee model:
// EIP-1559 chains pay tip + 2x base fee, legacy chains the suggested gas price.
func (a *EthereumAdapter) Send(ctx context.Context, req SendRequest) (common.Hash, error) {
	log := util.LogFromContext(ctx)

	if a.signer == nil {
		return common.Hash{}, ErrWatchOnly
	}

	amount := req.Amount
	if amount == nil {
		amount = new(big.Int)
	}
	if amount.Sign() < 0 {
		return common.Hash{}, errors.New("amount must not be negative")
	}

	client := a.kit.Client()
	from := a.signer.Address()

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to fetch pending nonce")
	}

	gasLimit := uint64(nativeTransferGasLimit)
	if len(req.Data) > 0 {
		to := req.To
		gasLimit, err = client.EstimateGas(ctx, ethereum.CallMsg{
			From:  from,
			To:    &to,
			Value: amount,
			Data:  req.Data,
		})
		if err != nil {
			return common.Hash{}, errors.Wrap(err, "failed to estimate gas")
		}
	}

	signReq := &signer.SignEVMRequest{
		To:       req.To.Hex(),
		Value:    amount.String(),
		GasLimit: gasLimit,
		Nonce:    nonce,
		Data:     req.Data,
	}

	if err := a.applyFees(ctx, signReq); err != nil {
		return common.Hash{}, err
	}

	signResp, err := a.signer.SignEVMTransaction(ctx, signReq)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to sign transaction")
	}

	txHash, err := a.kit.Send(ctx, signResp.RawTransaction)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to broadcast transaction")
	}

	log.Info().
		Str("tx_hash", txHash.Hex()).
		Str("to", req.To.Hex()).
		Str("amount_wei", amount.String()).
		Uint64("nonce", nonce).
		Msg("Adapter: transaction sent")

	return txHash, nil
}

func (a *EthereumAdapter) applyFees(ctx context.Context, req *signer.SignEVMRequest) error {
	client := a.kit.Client()

	if !a.kit.Chain().IsEIP1559 {
		gasPrice, err := client.SuggestGasPrice(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to suggest gas price")
		}
		req.GasPrice = gasPrice.String()
		return nil
	}

	tipCap, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to suggest gas tip cap")
	}

	header, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to fetch latest block header")
	}

	baseFee := header.BaseFee
	if baseFee == nil {
		baseFee = big.NewInt(0)
	}

	maxFee := new(big.Int).Add(
		new(big.Int).Mul(baseFee, big.NewInt(defaultEIP1559Multiplier)),
		tipCap,
	)

	req.MaxFeePerGas = maxFee.String()
	req.MaxPriorityFeePerGas = tipCap.String()

	return nil
}

// SignMessage signs msg as an EIP-191 personal message.
func (a *EthereumAdapter) SignMessage(msg []byte) ([]byte, error) {
	if a.signer == nil {
		return nil, ErrWatchOnly
	}

	return a.signer.SignMessage(msg)
}

// MarshalZerologObject lets the adapter be logged with .Object().
func (a *EthereumAdapter) MarshalZerologObject(e *zerolog.Event) {
	e.Str("address", a.Address().Hex()).
		Int64("chain_id", a.kit.Chain().ID).
		Bool("watch_only", a.IsWatchOnly())
}
