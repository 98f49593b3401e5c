package evm

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/dex-wallet/internal/metrics"
	"github/chapool/dex-wallet/internal/wallet/chain"
)

// DefaultSyncInterval is roughly one Ethereum slot.
const DefaultSyncInterval = 12 * time.Second

// SyncState reports the kit's view of the chain.
type SyncState string

const (
	SyncStateNotSynced SyncState = "not_synced"
	SyncStateSyncing   SyncState = "syncing"
	SyncStateSynced    SyncState = "synced"
)

// ErrNotStarted is returned by operations that need a running kit.
var ErrNotStarted = errors.New("kit not started")

// Kit is the blockchain client for one address on one chain. It keeps the
// latest block height and native balance in sync and persists them per wallet ID.
type Kit struct {
	instanceID uuid.UUID
	address    common.Address
	config     chain.Configuration
	rpc        *RPCClient
	txSource   *transactionSource
	state      *stateStore
	interval   time.Duration
	log        zerolog.Logger

	mu         sync.RWMutex
	decorators []Decorator
	snapshot   snapshot
	syncState  SyncState
	lastErr    error
	closed     bool
	cancel     context.CancelFunc
	done       chan struct{}
}

// Option customises a kit at construction.
type Option func(*Kit)

// WithSyncInterval overrides DefaultSyncInterval.
func WithSyncInterval(interval time.Duration) Option {
	return func(k *Kit) {
		if interval > 0 {
			k.interval = interval
		}
	}
}

// Instance creates a kit for address. Its state lives below dataDir and is
// keyed by cfg.WalletID and the chain ID.
func Instance(address common.Address, cfg chain.Configuration, dataDir string, opts ...Option) (*Kit, error) {
	if cfg.WalletID == "" {
		return nil, errors.New("wallet ID is required")
	}

	instanceID := uuid.New()
	logger := log.With().
		Str("component", "evm_kit").
		Str("kit_id", instanceID.String()).
		Str("wallet_id", cfg.WalletID).
		Int64("chain_id", cfg.Chain.ID).
		Logger().
		Level(cfg.MinLogLevel)

	rpc, err := NewRPCClient(cfg.RPCSource.URLs, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create RPC client")
	}

	state, err := openStateStore(statePath(dataDir, cfg.WalletID, cfg.Chain.ID))
	if err != nil {
		rpc.Close()
		return nil, err
	}

	snap, err := state.load()
	if err != nil {
		rpc.Close()
		_ = state.close()
		return nil, err
	}

	kit := &Kit{
		instanceID: instanceID,
		address:    address,
		config:     cfg,
		rpc:        rpc,
		txSource:   newTransactionSource(cfg.TransactionSource),
		state:      state,
		interval:   DefaultSyncInterval,
		log:        logger,
		snapshot:   snap,
		syncState:  SyncStateNotSynced,
	}

	for _, opt := range opts {
		opt(kit)
	}

	return kit, nil
}

func (k *Kit) InstanceID() uuid.UUID {
	return k.instanceID
}

func (k *Kit) Address() common.Address {
	return k.address
}

func (k *Kit) Chain() chain.Chain {
	return k.config.Chain
}

func (k *Kit) Configuration() chain.Configuration {
	return k.config
}

// Client exposes the RPC client for fee estimation and broadcasting.
func (k *Kit) Client() *RPCClient {
	return k.rpc
}

// AddDecorator registers d. Decorators are consulted in registration order.
func (k *Kit) AddDecorator(d Decorator) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.decorators = append(k.decorators, d)
}

// Decorators returns the registered decorators.
func (k *Kit) Decorators() []Decorator {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return append([]Decorator(nil), k.decorators...)
}

// Decorate returns the first decoration any registered decorator produces.
func (k *Kit) Decorate(tx *Transaction) *Decoration {
	for _, d := range k.Decorators() {
		if decoration := d.Decorate(tx); decoration != nil {
			return decoration
		}
	}

	return nil
}

// LastBlockHeight is the latest block height seen by the sync loop.
func (k *Kit) LastBlockHeight() uint64 {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.snapshot.LastBlockHeight
}

// Balance is the last synced native balance in wei, or nil if never synced.
func (k *Kit) Balance() *big.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if k.snapshot.Balance == nil {
		return nil
	}

	return new(big.Int).Set(k.snapshot.Balance)
}

// SyncedAt is the time of the last successful sync.
func (k *Kit) SyncedAt() time.Time {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.snapshot.SyncedAt
}

// SyncState returns the current sync state and the last sync error, if any.
func (k *Kit) SyncState() (SyncState, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.syncState, k.lastErr
}

// IsRunning reports whether the sync loop is active.
func (k *Kit) IsRunning() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.cancel != nil
}

// Start launches the sync loop. The loop outlives ctx cancellation and runs
// until Stop or Close; ctx only carries values such as the logger.
func (k *Kit) Start(ctx context.Context) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.cancel != nil || k.closed {
		return
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	k.cancel = cancel
	k.done = make(chan struct{})

	go k.syncLoop(loopCtx, k.done)

	k.log.Info().
		Str("address", k.address.Hex()).
		Dur("interval", k.interval).
		Msg("Kit started")
}

// Stop halts the sync loop and waits for it to exit.
func (k *Kit) Stop() {
	k.mu.Lock()
	cancel, done := k.cancel, k.done
	k.cancel, k.done = nil, nil
	k.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	k.log.Info().Msg("Kit stopped")
}

// Close stops the kit and releases the RPC connections and state database.
func (k *Kit) Close() error {
	k.Stop()

	k.mu.Lock()
	k.closed = true
	k.mu.Unlock()

	k.rpc.Close()

	if err := k.state.close(); err != nil {
		return errors.Wrap(err, "failed to close kit state")
	}

	return nil
}

// Refresh runs one sync round immediately.
func (k *Kit) Refresh(ctx context.Context) error {
	if k.isClosed() {
		return ErrClosed
	}

	k.setSyncState(SyncStateSyncing, nil)

	height, err := k.rpc.BlockNumber(ctx)
	if err != nil {
		k.syncFailed(err)
		return err
	}

	balance, err := k.rpc.BalanceAt(ctx, k.address)
	if err != nil {
		k.syncFailed(err)
		return err
	}

	snap := snapshot{
		LastBlockHeight: height,
		Balance:         balance,
		SyncedAt:        time.Now().UTC(),
	}

	if err := k.state.save(snap); err != nil {
		k.log.Error().Err(err).Msg("Failed to persist kit state")
	}

	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return ErrClosed
	}
	k.snapshot = snap
	k.syncState = SyncStateSynced
	k.lastErr = nil
	k.mu.Unlock()

	metrics.KitSyncs.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.KitBlockHeight.Set(float64(height))

	k.log.Debug().
		Uint64("block_height", height).
		Str("balance_wei", balance.String()).
		Msg("Kit synced")

	return nil
}

// Transactions lists the account history from the transaction source,
// decorated by the registered decorators.
func (k *Kit) Transactions(ctx context.Context) ([]*Transaction, error) {
	if k.isClosed() {
		return nil, ErrClosed
	}

	txs, err := k.txSource.transactions(ctx, k.address)
	if err != nil {
		return nil, err
	}

	for _, tx := range txs {
		tx.Decoration = k.Decorate(tx)
	}

	return txs, nil
}

// Send broadcasts an RLP encoded signed transaction.
func (k *Kit) Send(ctx context.Context, rawTx []byte) (common.Hash, error) {
	if !k.IsRunning() {
		return common.Hash{}, ErrNotStarted
	}

	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(rawTx); err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to decode signed transaction")
	}

	if err := k.rpc.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, err
	}

	k.log.Info().Str("tx_hash", tx.Hash().Hex()).Msg("Transaction sent")

	return tx.Hash(), nil
}

func (k *Kit) isClosed() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.closed
}

func (k *Kit) syncFailed(err error) {
	metrics.KitSyncs.WithLabelValues(metrics.ResultFailure).Inc()
	k.setSyncState(SyncStateNotSynced, err)
}

func (k *Kit) setSyncState(state SyncState, err error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.syncState = state
	if err != nil {
		k.lastErr = err
	}
}

func (k *Kit) syncLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	runOnce := func() {
		if err := k.Refresh(ctx); err != nil && ctx.Err() == nil {
			k.log.Warn().Err(err).Msg("Kit sync failed")
		}
	}

	runOnce()

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
