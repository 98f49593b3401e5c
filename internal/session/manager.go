package session

import (
	"context"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/dex-wallet/internal/metrics"
	"github/chapool/dex-wallet/internal/storage"
	"github/chapool/dex-wallet/internal/wallet/adapter"
	"github/chapool/dex-wallet/internal/wallet/address"
	"github/chapool/dex-wallet/internal/wallet/eip20"
	"github/chapool/dex-wallet/internal/wallet/evm"
	"github/chapool/dex-wallet/internal/wallet/seed"
	"github/chapool/dex-wallet/internal/wallet/signer"
	"github/chapool/dex-wallet/internal/wallet/uniswap"
)

// Manager owns the single wallet session: the persisted credential and the
// kit, signer and adapter built from it.
type Manager struct {
	mu     sync.RWMutex
	store  storage.Store
	config Config
	log    zerolog.Logger

	seeds   seed.Manager
	mode    Mode
	kit     *evm.Kit
	signer  *signer.Signer
	adapter *adapter.EthereumAdapter
}

// NewManager restores the session from the persisted words, else the persisted
// address. Restoration failures leave the session uninitialized.
func NewManager(ctx context.Context, store storage.Store, config Config) *Manager {
	m := &Manager{
		store:  store,
		config: config,
		log:    log.With().Str("component", "session").Logger(),
		seeds:  seed.NewManager(),
		mode:   ModeUninitialized,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.restore(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("Failed to restore session, staying uninitialized")
		m.teardown()
	}
	metrics.ObserveOperation("restore", err)
	m.setMode(m.mode)

	return m
}

func (m *Manager) restore(ctx context.Context) error {
	words, err := m.store.Get(KeyWords)
	switch {
	case err == nil:
		return m.initWords(ctx, seed.Split(words))
	case !errors.Is(err, storage.ErrNotFound):
		return errors.Wrap(err, "failed to read saved words")
	}

	hex, err := m.store.Get(KeyAddress)
	switch {
	case err == nil:
		addr, err := address.Parse(hex)
		if err != nil {
			return err
		}
		return m.initAddress(ctx, addr)
	case !errors.Is(err, storage.ErrNotFound):
		return errors.Wrap(err, "failed to read saved address")
	}

	m.log.Debug().Msg("No saved credential")

	return nil
}

// Login replaces the session with one signing for the account derived from words.
// Nothing is changed when the words do not yield a seed.
func (m *Manager) Login(ctx context.Context, words []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.login(ctx, words)
	metrics.ObserveOperation("login", err)
	m.setMode(m.mode)

	return err
}

func (m *Manager) login(ctx context.Context, words []string) error {
	// Checked before reset so bad words leave the current session and keys alone.
	if _, err := seed.FromWords(words, m.config.Passphrase); err != nil {
		return errors.Wrap(ErrSeedGenerationFailed, err.Error())
	}

	if err := m.reset(); err != nil {
		return err
	}

	m.store.Set(KeyWords, seed.Join(words))
	if err := m.store.Synchronize(); err != nil {
		return errors.Wrap(err, "failed to save words")
	}

	if err := m.initWords(ctx, words); err != nil {
		m.teardown()
		return err
	}

	return nil
}

// Watch replaces the session with a watch-only one for addr.
func (m *Manager) Watch(ctx context.Context, addr common.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.watch(ctx, addr)
	metrics.ObserveOperation("watch", err)
	m.setMode(m.mode)

	return err
}

func (m *Manager) watch(ctx context.Context, addr common.Address) error {
	if err := m.reset(); err != nil {
		return err
	}

	m.store.Set(KeyAddress, strings.ToLower(addr.Hex()))
	if err := m.store.Synchronize(); err != nil {
		return errors.Wrap(err, "failed to save address")
	}

	if err := m.initAddress(ctx, addr); err != nil {
		m.teardown()
		return err
	}

	return nil
}

// Logout erases the persisted credential and drops the session.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.teardown()
	m.store.Remove(KeyWords, KeyAddress)

	err := m.store.Synchronize()
	if err != nil {
		err = errors.Wrap(err, "failed to clear storage")
	}

	metrics.ObserveOperation("logout", err)
	m.setMode(m.mode)

	return err
}

// Close stops the session without touching the persisted credential.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.teardown()
}

// reset drops the running session, wipes every kit's local state and both
// credential keys.
func (m *Manager) reset() error {
	m.teardown()

	if err := evm.Clear(m.config.DataDir, nil); err != nil {
		return errors.Wrap(err, "failed to clear kit state")
	}

	m.store.Remove(KeyWords, KeyAddress)

	return nil
}

func (m *Manager) initWords(ctx context.Context, words []string) error {
	if err := m.seeds.Initialize(words, m.config.Passphrase); err != nil {
		return errors.Wrap(ErrSeedGenerationFailed, err.Error())
	}

	s := m.seeds.GetSeed()
	defer func() {
		for i := range s {
			s[i] = 0
		}
	}()

	c := m.config.Configuration.Chain

	sig, err := signer.New(s, c)
	if err != nil {
		return errors.Wrap(err, "failed to create signer")
	}

	addr, err := signer.Address(s, c)
	if err != nil {
		sig.Close()
		return err
	}

	if err := m.initKit(ctx, addr, sig); err != nil {
		sig.Close()
		return err
	}

	m.mode = ModeWords

	return nil
}

func (m *Manager) initAddress(ctx context.Context, addr common.Address) error {
	if err := m.initKit(ctx, addr, nil); err != nil {
		return err
	}

	m.mode = ModeAddress

	return nil
}

func (m *Manager) initKit(ctx context.Context, addr common.Address, sig *signer.Signer) error {
	kit, err := evm.Instance(addr, m.config.Configuration, m.config.DataDir, m.config.KitOptions...)
	if err != nil {
		return errors.Wrap(err, "failed to create kit")
	}

	eip20.AddDecorators(kit)
	uniswap.AddDecorators(kit)
	if err := uniswap.AddDecoratorsV3(kit); err != nil {
		_ = kit.Close()
		return errors.Wrap(err, "failed to add decorators")
	}

	m.adapter = adapter.NewEthereumAdapter(kit, sig)
	m.kit = kit
	m.signer = sig

	kit.Start(ctx)

	m.log.Info().Object("adapter", m.adapter).Msg("Session started")

	return nil
}

// teardown stops and drops the in-memory handles.
func (m *Manager) teardown() {
	if m.kit != nil {
		if err := m.kit.Close(); err != nil {
			m.log.Warn().Err(err).Msg("Failed to close kit")
		}
	}
	if m.signer != nil {
		m.signer.Close()
	}
	m.seeds.Clear()

	m.kit = nil
	m.signer = nil
	m.adapter = nil
	m.mode = ModeUninitialized
}

func (m *Manager) setMode(mode Mode) {
	metrics.SetSessionMode(string(mode), allModes...)
}

func (m *Manager) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.mode
}

// Kit returns the running kit, or nil when uninitialized.
func (m *Manager) Kit() *evm.Kit {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.kit
}

// Signer returns the signer, or nil when uninitialized or watch-only.
func (m *Manager) Signer() *signer.Signer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.signer
}

// Adapter returns the adapter, or nil when uninitialized.
func (m *Manager) Adapter() *adapter.EthereumAdapter {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.adapter
}

// Status summarises the session.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.config.Configuration.Chain
	status := Status{
		Mode:      m.mode,
		ChainID:   c.ID,
		ChainName: c.Name,
	}

	if m.adapter == nil {
		return status
	}

	status.Address = m.adapter.Address().Hex()
	status.WatchOnly = m.adapter.IsWatchOnly()
	status.LastBlockHeight = m.adapter.LastBlockHeight()
	status.BalanceWei = m.adapter.Balance().String()

	state, err := m.adapter.SyncState()
	status.SyncState = state
	if err != nil {
		status.SyncError = err.Error()
	}

	return status
}
