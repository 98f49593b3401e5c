package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
)

func GetSessionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.GET("", getSessionHandler(s))
}

func getSessionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.Session.Status())
	}
}
