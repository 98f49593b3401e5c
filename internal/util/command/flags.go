package command

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/dex-wallet/internal/config"
	"github/chapool/dex-wallet/internal/wallet/chain"
)

// Viper keys of the flags overriding the environment config.
const (
	KeyDataDir = "storage.dataDir"
	KeyChain   = "wallet.chain"
	KeyRPCURL  = "wallet.rpcURL"
)

const (
	flagDataDir = "data-dir"
	flagChain   = "chain"
	flagRPCURL  = "rpc-url"
)

// BindPersistentFlags registers the config override flags on cmd and binds
// them to viper.
func BindPersistentFlags(cmd *cobra.Command) error {
	flags := cmd.PersistentFlags()
	flags.String(flagDataDir, "", "directory of the credential store and kit state (overrides WALLET_DATA_DIR)")
	flags.String(flagChain, "", "chain preset name (overrides WALLET_CHAIN)")
	flags.String(flagRPCURL, "", "comma separated RPC URLs (overrides WALLET_RPC_URLS)")

	for key, flag := range map[string]string{
		KeyDataDir: flagDataDir,
		KeyChain:   flagChain,
		KeyRPCURL:  flagRPCURL,
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return errors.Wrapf(err, "failed to bind flag %s", flag)
		}
	}

	return nil
}

// ConfigFromViper returns the environment config with any flag overrides applied.
func ConfigFromViper() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	if dataDir := viper.GetString(KeyDataDir); len(dataDir) > 0 {
		cfg.Storage.DataDir = dataDir
	}

	if name := viper.GetString(KeyChain); len(name) > 0 {
		cfg.Wallet.ChainName = name
	}

	if urls := chain.ParseRPCURLs(viper.GetString(KeyRPCURL)); len(urls) > 0 {
		cfg.Wallet.RPCURLs = urls
	}

	return cfg
}
