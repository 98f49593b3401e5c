package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/config"
)

func TestPrintServiceEnv(t *testing.T) {
	config := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(config, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestDefaultServiceConfigFromEnvWallet(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WALLET_DATA_DIR", dir)
	t.Setenv("WALLET_CHAIN", "bsc")
	t.Setenv("WALLET_RPC_URLS", "http://a.example, http://b.example")
	t.Setenv("WALLET_MIN_LOG_LEVEL", "warn")
	t.Setenv("WALLET_SYNC_INTERVAL", "3s")

	cfg := config.DefaultServiceConfigFromEnv()

	assert.Equal(t, dir, cfg.Storage.DataDir)
	assert.Equal(t, "bsc", cfg.Wallet.ChainName)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Wallet.RPCURLs)
	assert.Equal(t, zerolog.WarnLevel, cfg.Wallet.MinLogLevel)
	assert.Equal(t, 3*time.Second, cfg.Wallet.SyncInterval)
	assert.Equal(t, "walletID", cfg.Wallet.WalletID)
}

func TestDefaultServiceConfigFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"WALLET_DATA_DIR", "WALLET_CHAIN", "SERVER_ECHO_LISTEN_ADDRESS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.DefaultServiceConfigFromEnv()

	assert.Equal(t, ".dex-wallet", filepath.Base(cfg.Storage.DataDir))
	assert.Equal(t, "sepolia", cfg.Wallet.ChainName)
	assert.Equal(t, ":8080", cfg.Echo.ListenAddress)
}

func TestGetFormattedBuildArgs(t *testing.T) {
	args := config.GetFormattedBuildArgs()
	require.Contains(t, args, config.ModuleName)
	require.Contains(t, args, config.Commit)
	require.Contains(t, args, config.BuildDate)
}
