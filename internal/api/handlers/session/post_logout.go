package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/util"
)

func PostLogoutRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/logout", postLogoutHandler(s))
}

func postLogoutHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if err := s.Session.Logout(); err != nil {
			log.Debug().Err(err).Msg("Failed to logout")
			return err
		}

		return c.NoContent(http.StatusNoContent)
	}
}
