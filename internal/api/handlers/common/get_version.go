package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/config"
)

func GetVersionRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/version", getVersionHandler)
}

func getVersionHandler(c echo.Context) error {
	return c.String(http.StatusOK, config.GetFormattedBuildArgs())
}
