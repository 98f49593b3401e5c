package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/dex-wallet/internal/config"
	"github/chapool/dex-wallet/internal/session"
	"github/chapool/dex-wallet/internal/storage"
	"github/chapool/dex-wallet/internal/wallet/chain"
	"github/chapool/dex-wallet/internal/wallet/evm"
)

type Router struct {
	Routes       []*echo.Route
	Root         *echo.Group
	Management   *echo.Group
	APIV1Session *echo.Group
	APIV1Wallet  *echo.Group
}

// Server is a central struct keeping all the dependencies.
// Components are initialized in order by the Init* methods, Echo and Router
// afterwards by router.Init(s).
type Server struct {
	Echo   *echo.Echo
	Router *Router

	Config  config.Server
	Store   storage.Store
	Chains  *chain.Registry
	Session *session.Manager
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

// InitStore opens the credential store below the configured data directory.
func (s *Server) InitStore() error {
	store, err := storage.Open(s.Config.Storage.DataDir)
	if err != nil {
		return errors.Wrap(err, "failed to open credential store")
	}

	s.Store = store

	return nil
}

// InitChains loads the chain registry, layering the configured override file
// over the embedded presets.
func (s *Server) InitChains() error {
	registry, err := chain.LoadRegistry(s.Config.Wallet.ChainsFile)
	if err != nil {
		return errors.Wrap(err, "failed to load chain registry")
	}

	s.Chains = registry

	return nil
}

// InitSession restores the wallet session from the store. InitStore and
// InitChains must have been called before.
func (s *Server) InitSession(ctx context.Context) error {
	if s.Store == nil || s.Chains == nil {
		return errors.New("store and chains must be initialized before the session")
	}

	cfg, err := chain.ConfigurationFromWallet(s.Config.Wallet, s.Chains)
	if err != nil {
		return errors.Wrap(err, "failed to build chain configuration")
	}

	s.Session = session.NewManager(ctx, s.Store, session.Config{
		Configuration: cfg,
		DataDir:       s.Config.Storage.DataDir,
		Passphrase:    s.Config.Wallet.Passphrase,
		KitOptions:    []evm.Option{evm.WithSyncInterval(s.Config.Wallet.SyncInterval)},
	})

	return nil
}

func (s *Server) Ready() bool {
	if s.Echo == nil || s.Router == nil || s.Store == nil || s.Chains == nil || s.Session == nil {
		log.Debug().Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	if s.Session != nil {
		log.Debug().Msg("Closing wallet session")
		s.Session.Close()
	}

	if s.Store != nil {
		log.Debug().Msg("Closing credential store")

		if err := s.Store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close credential store")
			errs = append(errs, err)
		}
	}

	return errs
}
