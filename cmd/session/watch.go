package session

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/util/command"
	"github/chapool/dex-wallet/internal/wallet/address"
)

func newWatch() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <address>",
		Short: "Watch an address without signing capability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := address.Parse(args[0])
			if err != nil {
				return err
			}

			return command.WithServer(cmd.Context(), command.ConfigFromViper(), func(ctx context.Context, s *api.Server) error {
				if err := s.Session.Watch(ctx, addr); err != nil {
					return err
				}

				return printStatus(cmd, s.Session.Status())
			})
		},
	}
}
