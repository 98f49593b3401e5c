package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/util"
)

// Cloudflare's "web server is down".
const statusNotReady = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			util.LogFromContext(c.Request().Context()).Warn().Msg("Readiness probe failed")
			return c.String(statusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
