package chain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/config"
	"github/chapool/dex-wallet/internal/wallet/chain"
)

func TestDefaultRegistry(t *testing.T) {
	registry, err := chain.DefaultRegistry()
	require.NoError(t, err)

	sepolia, err := registry.Lookup("Sepolia")
	require.NoError(t, err)
	assert.Equal(t, int64(11155111), sepolia.ID)
	assert.Equal(t, uint32(60), sepolia.CoinType)
	assert.True(t, sepolia.IsEIP1559)

	_, err = registry.Lookup("nope")
	assert.ErrorIs(t, err, chain.ErrUnknownChain)

	chains := registry.Chains()
	require.NotEmpty(t, chains)
	assert.Equal(t, int64(1), chains[0].ID)
}

func TestLoadRegistryOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chains.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[chain]]
name = "local"
id = 31337
symbol = "ETH"
coin_type = 60
eip1559 = true
rpc_urls = ["http://127.0.0.1:8545"]
`), 0o600))

	registry, err := chain.LoadRegistry(path)
	require.NoError(t, err)

	local, err := registry.Lookup("local")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://127.0.0.1:8545"}, local.RPCURLs)

	_, err = registry.Lookup("ethereum")
	require.NoError(t, err)
}

func TestParseRegistryRejectsIncomplete(t *testing.T) {
	_, err := chain.ParseRegistry([]byte("[[chain]]\nname = \"x\"\n"))
	require.Error(t, err)
}

func TestParseRPCURLs(t *testing.T) {
	assert.Nil(t, chain.ParseRPCURLs(""))
	assert.Equal(t, []string{"http://a", "http://b"}, chain.ParseRPCURLs(" http://a, ,http://b "))
}

func TestConfigurationFromWallet(t *testing.T) {
	registry, err := chain.DefaultRegistry()
	require.NoError(t, err)

	cfg := config.Wallet{
		ChainName:         "bsc-testnet",
		RPCURLs:           []string{"http://127.0.0.1:1"},
		TransactionAPIKey: "key",
		WalletID:          "walletID",
		MinLogLevel:       zerolog.WarnLevel,
	}

	conf, err := chain.ConfigurationFromWallet(cfg, registry)
	require.NoError(t, err)
	assert.Equal(t, int64(97), conf.Chain.ID)
	assert.Equal(t, []string{"http://127.0.0.1:1"}, conf.RPCSource.URLs)
	assert.Equal(t, "https://api-testnet.bscscan.com/api", conf.TransactionSource.APIURL)
	assert.Equal(t, "key", conf.TransactionSource.APIKey)
	assert.Equal(t, zerolog.WarnLevel, conf.MinLogLevel)

	cfg.ChainName = "unknown"
	_, err = chain.ConfigurationFromWallet(cfg, registry)
	assert.ErrorIs(t, err, chain.ErrUnknownChain)
}
