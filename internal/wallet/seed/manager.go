package seed

import (
	"crypto/sha512"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 2048 // BIP39 standard iterations
	pbkdf2KeyLength  = 64   // BIP39 standard key length (512 bits)

	// DefaultEntropyBits yields a 12 word mnemonic.
	DefaultEntropyBits = 128
)

// FromWords validates the mnemonic checksum and stretches it into a BIP39 seed:
// seed = PBKDF2(mnemonic, "mnemonic" + passphrase, 2048, 64, SHA512)
func FromWords(words []string, passphrase string) ([]byte, error) {
	mnemonic := Join(words)
	if mnemonic == "" {
		return nil, errors.Wrap(ErrInvalidMnemonic, "no words given")
	}

	if _, err := bip39.MnemonicToByteArray(mnemonic); err != nil {
		return nil, errors.Wrap(ErrInvalidMnemonic, err.Error())
	}

	return pbkdf2.Key(
		[]byte(mnemonic),
		[]byte("mnemonic"+passphrase),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	), nil
}

// NewWords generates a fresh mnemonic from entropyBits of randomness.
func NewWords(entropyBits int) ([]string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate mnemonic")
	}

	return Split(mnemonic), nil
}

// Join renders words the way they are persisted: single space separated.
func Join(words []string) string {
	return strings.Join(words, " ")
}

// Split is the inverse of Join. Repeated whitespace is collapsed.
func Split(s string) []string {
	return strings.Fields(s)
}

// manager implements seed management with thread-safe access
type manager struct {
	seed        []byte
	mu          sync.RWMutex
	initialized bool
}

// NewManager creates a new SeedManager
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager() Manager {
	return &manager{
		seed:        nil,
		initialized: false,
	}
}

// Initialize initializes the seed manager with mnemonic words and passphrase
func (m *manager) Initialize(words []string, passphrase string) error {
	seed, err := FromWords(words, passphrase)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.wipe()
	m.seed = seed
	m.initialized = true

	return nil
}

// GetSeed gets the seed (returns a copy to prevent external modification)
func (m *manager) GetSeed() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized || m.seed == nil {
		return nil
	}

	seedCopy := make([]byte, len(m.seed))
	copy(seedCopy, m.seed)
	return seedCopy
}

// IsInitialized checks if seed is initialized
func (m *manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.initialized
}

// Clear clears the seed from memory
func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.wipe()
	m.initialized = false
}

func (m *manager) wipe() {
	if m.seed != nil {
		for i := range m.seed {
			m.seed[i] = 0
		}
		m.seed = nil
	}
}
