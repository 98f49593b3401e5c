package router

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/api/handlers"
	"github/chapool/dex-wallet/internal/api/httperrors"
	"github/chapool/dex-wallet/internal/api/middleware"
)

func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.HTTPErrorHandler = httperrors.HTTPErrorHandler(s.Config.Echo)

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
			Generator: func() string {
				return uuid.NewString()
			},
		}))
	} else {
		log.Warn().Msg("Disabling request ID middleware due to environment config")
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.Logger(s.Config.Logger))
	} else {
		log.Warn().Msg("Disabling logger middleware due to environment config")
	}

	// HTTP metrics live in a registry per server; wallet metrics in the default one.
	httpMetrics := prometheus.NewRegistry()
	if s.Config.Metrics.Enabled {
		s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "dex_wallet",
			Subsystem:  "http",
			Registerer: httpMetrics,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	}

	s.Router = &api.Router{
		Routes:     nil,
		Root:       s.Echo.Group(""),
		Management: s.Echo.Group("/-"),

		APIV1Session: s.Echo.Group("/api/v1/session"),
		APIV1Wallet:  s.Echo.Group("/api/v1/wallet"),
	}

	if s.Config.Metrics.Enabled {
		s.Router.Routes = append(s.Router.Routes,
			s.Router.Root.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
				prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
				promhttp.HandlerOpts{},
			))))
	}

	handlers.AttachAllRoutes(s)
}
