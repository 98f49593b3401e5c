package seed

import "github.com/pkg/errors"

// ErrInvalidMnemonic is returned when the words do not form a valid BIP39 mnemonic.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// Manager provides seed management functionality
type Manager interface {
	// Initialize derives and keeps the seed for the given mnemonic words
	Initialize(words []string, passphrase string) error

	// GetSeed gets the seed (from memory)
	GetSeed() []byte

	// IsInitialized checks if seed is initialized
	IsInitialized() bool

	// Clear clears the seed from memory
	Clear()
}
