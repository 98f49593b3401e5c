package env

import (
	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/util/command"
)

const masked = "*****"

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Prints the env",
		Long: `Prints the currently applied env

You may use this cmd to get an overview about how
your ENV_VARS and flags are bound by the server config.
Secrets are masked.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString(command.OutputFlag)
			if err != nil {
				return err
			}

			cfg := command.ConfigFromViper()

			if len(cfg.Wallet.TransactionAPIKey) > 0 {
				cfg.Wallet.TransactionAPIKey = masked
			}
			if len(cfg.Wallet.Passphrase) > 0 {
				cfg.Wallet.Passphrase = masked
			}

			return command.Print(cmd.OutOrStdout(), format, cfg)
		},
	}

	cmd.Flags().StringP(command.OutputFlag, "o", command.FormatJSON, "output format (json or yaml)")

	return cmd
}
