package command_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/util/command"
)

func TestConfigFromViperOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	require.NoError(t, command.BindPersistentFlags(cmd))

	dir := t.TempDir()
	require.NoError(t, cmd.PersistentFlags().Parse([]string{
		"--data-dir", dir,
		"--chain", "bsc",
		"--rpc-url", "http://a.example, http://b.example",
	}))

	cfg := command.ConfigFromViper()
	assert.Equal(t, dir, cfg.Storage.DataDir)
	assert.Equal(t, "bsc", cfg.Wallet.ChainName)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Wallet.RPCURLs)
}

func TestConfigFromViperWithoutFlags(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	require.NoError(t, command.BindPersistentFlags(cmd))

	cfg := command.ConfigFromViper()
	assert.NotEmpty(t, cfg.Storage.DataDir)
	assert.NotEmpty(t, cfg.Wallet.ChainName)
}
