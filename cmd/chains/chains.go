package chains

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/util/command"
	"github/chapool/dex-wallet/internal/wallet/chain"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "Lists the known chain presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := command.ConfigFromViper()

			registry, err := chain.LoadRegistry(cfg.Wallet.ChainsFile)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tSYMBOL\tEIP1559\tTESTNET\tSELECTED")
			for _, c := range registry.Chains() {
				selected := ""
				if c.Name == cfg.Wallet.ChainName {
					selected = "*"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%t\t%t\t%s\n", c.Name, c.ID, c.Symbol, c.IsEIP1559, c.Testnet, selected)
			}

			return w.Flush()
		},
	}
}
