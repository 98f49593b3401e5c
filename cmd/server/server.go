package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/api/router"
	"github/chapool/dex-wallet/internal/config"
	"github/chapool/dex-wallet/internal/util/command"
)

const shutdownTimeout = 30 * time.Second

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the HTTP server exposing the wallet session.

The session is restored from the credential store before the server starts listening.`,
		Run: func(cmd *cobra.Command, _ []string) {
			runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) {
	cfg := command.ConfigFromViper()
	command.SetupLogger(cfg.Logger)

	log.Info().Str("version", config.GetFormattedBuildArgs()).Msg("Starting server")

	s := api.NewServer(cfg)

	if err := s.InitStore(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize credential store")
	}

	if err := s.InitChains(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize chain registry")
	}

	if err := s.InitSession(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize wallet session")
	}

	log.Info().Str("mode", string(s.Session.Mode())).Msg("Wallet session initialized")

	router.Init(s)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		log.Fatal().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
	}

	log.Info().Msg("Server shut down")
}
