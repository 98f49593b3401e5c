package seed_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/wallet/seed"
)

//nolint:dupword // BIP39 test vector
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestFromWordsKnownVector(t *testing.T) {
	s, err := seed.FromWords(seed.Split(testMnemonic), "")
	require.NoError(t, err)

	assert.Equal(t,
		"5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
		hex.EncodeToString(s))
}

func TestFromWordsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		words []string
	}{
		{"empty", nil},
		{"unknown word", []string{"not", "a", "real", "mnemonic"}},
		//nolint:dupword // checksum mismatch
		{"bad checksum", seed.Split("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.FromWords(tt.words, "")
			assert.ErrorIs(t, err, seed.ErrInvalidMnemonic)
		})
	}
}

func TestNewWordsRoundTrip(t *testing.T) {
	words, err := seed.NewWords(seed.DefaultEntropyBits)
	require.NoError(t, err)
	assert.Len(t, words, 12)

	_, err = seed.FromWords(words, "")
	require.NoError(t, err)
}

func TestSplitJoin(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, seed.Split("  a b\tc "))
	assert.Equal(t, "a b c", seed.Join([]string{"a", "b", "c"}))
}

func TestManagerLifecycle(t *testing.T) {
	m := seed.NewManager()
	assert.False(t, m.IsInitialized())
	assert.Nil(t, m.GetSeed())

	require.NoError(t, m.Initialize(seed.Split(testMnemonic), ""))
	assert.True(t, m.IsInitialized())

	s := m.GetSeed()
	require.Len(t, s, 64)
	s[0] ^= 0xff
	assert.NotEqual(t, s[0], m.GetSeed()[0])

	m.Clear()
	assert.False(t, m.IsInitialized())
	assert.Nil(t, m.GetSeed())
}

func TestManagerInitializeInvalidKeepsState(t *testing.T) {
	m := seed.NewManager()
	err := m.Initialize([]string{"nope"}, "")
	require.ErrorIs(t, err, seed.ErrInvalidMnemonic)
	assert.False(t, m.IsInitialized())
}
