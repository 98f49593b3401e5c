package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/config"
	"github/chapool/dex-wallet/internal/util/command"
)

const readinessTimeout = 5 * time.Second

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long:  `Asks the running server on SERVER_ECHO_LISTEN_ADDRESS whether all its components are initialized.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return err
			}

			cfg := command.ConfigFromViper()
			body, err := readinessProbe(cmd.Context(), readinessURL(cfg))
			if err != nil {
				log.Error().Err(err).Msg("Readiness probe failed")
				return err
			}

			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Readiness: %s\n", body)
			}

			return nil
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func readinessURL(cfg config.Server) string {
	host, port, err := net.SplitHostPort(cfg.Echo.ListenAddress)
	if err != nil {
		return "http://" + cfg.Echo.ListenAddress + "/-/ready"
	}

	if len(host) == 0 {
		host = "127.0.0.1"
	}

	return "http://" + net.JoinHostPort(host, port) + "/-/ready"
}

func readinessProbe(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to create readiness request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to reach server")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", errors.Wrap(err, "failed to read readiness response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("server not ready: status %d: %s", resp.StatusCode, body)
	}

	return string(body), nil
}
