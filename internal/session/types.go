package session

import (
	"github.com/pkg/errors"
	"github/chapool/dex-wallet/internal/wallet/chain"
	"github/chapool/dex-wallet/internal/wallet/evm"
)

// Storage keys of the persisted credential.
const (
	KeyWords   = "mnemonic_words"
	KeyAddress = "address"
)

// ErrSeedGenerationFailed is returned by Login when no seed can be derived from the words.
var ErrSeedGenerationFailed = errors.New("seed generation failed")

// Mode is the kind of credential the session was built from.
type Mode string

const (
	ModeUninitialized Mode = "uninitialized"
	ModeWords         Mode = "words"
	ModeAddress       Mode = "address"
)

var allModes = []string{string(ModeUninitialized), string(ModeWords), string(ModeAddress)}

// Config holds what the manager needs to build kits.
type Config struct {
	Configuration chain.Configuration
	DataDir       string
	Passphrase    string // optional BIP39 passphrase
	KitOptions    []evm.Option
}

// Status is a snapshot of the session for display.
type Status struct {
	Mode            Mode          `json:"mode" yaml:"mode"`
	Address         string        `json:"address,omitempty" yaml:"address,omitempty"`
	ChainID         int64         `json:"chainId" yaml:"chainId"`
	ChainName       string        `json:"chainName" yaml:"chainName"`
	WatchOnly       bool          `json:"watchOnly" yaml:"watchOnly"`
	SyncState       evm.SyncState `json:"syncState,omitempty" yaml:"syncState,omitempty"`
	SyncError       string        `json:"syncError,omitempty" yaml:"syncError,omitempty"`
	LastBlockHeight uint64        `json:"lastBlockHeight" yaml:"lastBlockHeight"`
	BalanceWei      string        `json:"balanceWei,omitempty" yaml:"balanceWei,omitempty"`
}
