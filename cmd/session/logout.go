package session

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/util/command"
)

func newLogout() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Erase the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), command.ConfigFromViper(), func(_ context.Context, s *api.Server) error {
				if err := s.Session.Logout(); err != nil {
					return err
				}

				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")

				return err
			})
		},
	}
}
