package session

import (
	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/util/command"
)

func New() *cobra.Command {
	cmd := command.NewSubcommandGroup("session",
		newLogin(),
		newWatch(),
		newLogout(),
		newStatus(),
	)

	cmd.PersistentFlags().StringP(command.OutputFlag, "o", command.FormatJSON, "output format (json or yaml)")

	return cmd
}

func printStatus(cmd *cobra.Command, v any) error {
	format, err := cmd.Flags().GetString(command.OutputFlag)
	if err != nil {
		return err
	}

	return command.Print(cmd.OutOrStdout(), format, v)
}
