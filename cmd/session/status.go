package session

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/util/command"
)

const refreshFlag = "refresh"

func newStatus() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the restored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refresh, err := cmd.Flags().GetBool(refreshFlag)
			if err != nil {
				return err
			}

			return command.WithServer(cmd.Context(), command.ConfigFromViper(), func(ctx context.Context, s *api.Server) error {
				if a := s.Session.Adapter(); a != nil && refresh {
					if err := a.Refresh(ctx); err != nil {
						return err
					}
				}

				return printStatus(cmd, s.Session.Status())
			})
		},
	}

	cmd.Flags().Bool(refreshFlag, false, "sync block height and balance once before printing")

	return cmd
}
