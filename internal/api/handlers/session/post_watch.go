package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/util"
	"github/chapool/dex-wallet/internal/wallet/address"
)

type PostWatchPayload struct {
	Address string `json:"address"`
}

func PostWatchRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/watch", postWatchHandler(s))
}

func postWatchHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body PostWatchPayload
		if err := c.Bind(&body); err != nil {
			return err
		}

		addr, err := address.Parse(body.Address)
		if err != nil {
			return err
		}

		if err := s.Session.Watch(ctx, addr); err != nil {
			log.Debug().Err(err).Str("address", addr.Hex()).Msg("Failed to watch address")
			return err
		}

		return c.JSON(http.StatusOK, s.Session.Status())
	}
}
