package probe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/config"
	"github/chapool/dex-wallet/internal/util/command"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long:  `Checks that the data directory holding the credential store is accessible and writable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return err
			}

			cfg := command.ConfigFromViper()
			if err := livenessProbe(cfg); err != nil {
				log.Error().Err(err).Str("dataDir", cfg.Storage.DataDir).Msg("Liveness probe failed")
				return err
			}

			if verbose {
				fmt.Fprintln(cmd.OutOrStdout(), "Liveness: ok")
			}

			return nil
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func livenessProbe(cfg config.Server) error {
	info, err := os.Stat(cfg.Storage.DataDir)
	if err != nil {
		return errors.Wrap(err, "data directory is not accessible")
	}

	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", cfg.Storage.DataDir)
	}

	f, err := os.CreateTemp(cfg.Storage.DataDir, ".probe-*")
	if err != nil {
		return errors.Wrap(err, "data directory is not writable")
	}

	name := f.Name()
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to close probe file")
	}

	return os.Remove(filepath.Clean(name))
}
