package command

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/config"
)

const shutdownTimeout = 30 * time.Second

// NewSubcommandGroup returns a command that only groups subcommands and prints
// its help when run on its own.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: use + " related subcommands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// SetupLogger configures the global zerolog logger from config.
func SetupLogger(cfg config.LoggerServer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(cfg.Level)

	if cfg.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
			w.Out = os.Stderr
		}))
	}
}

// WithServer initializes the store, chain registry and wallet session, runs f
// and shuts everything down again. The echo server is not started.
func WithServer(ctx context.Context, cfg config.Server, f func(ctx context.Context, s *api.Server) error) error {
	SetupLogger(cfg.Logger)

	s := api.NewServer(cfg)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		for _, err := range s.Shutdown(shutdownCtx) {
			log.Error().Err(err).Msg("Failed to gracefully shut down server")
		}
	}()

	if err := s.InitStore(); err != nil {
		return errors.Wrap(err, "failed to initialize store")
	}

	if err := s.InitChains(); err != nil {
		return errors.Wrap(err, "failed to initialize chains")
	}

	if err := s.InitSession(ctx); err != nil {
		return errors.Wrap(err, "failed to initialize session")
	}

	return f(ctx, s)
}
