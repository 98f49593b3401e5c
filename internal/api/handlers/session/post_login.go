package session

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/api/httperrors"
	"github/chapool/dex-wallet/internal/util"
	"github/chapool/dex-wallet/internal/wallet/seed"
)

// PostLoginPayload carries the mnemonic, space separated.
type PostLoginPayload struct {
	Words string `json:"words"`
}

func PostLoginRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/login", postLoginHandler(s))
}

func postLoginHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body PostLoginPayload
		if err := c.Bind(&body); err != nil {
			return err
		}

		if len(strings.TrimSpace(body.Words)) == 0 {
			return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, httperrors.TypeInvalidRequestPayload,
				"Invalid request payload", "words is required")
		}

		if err := s.Session.Login(ctx, seed.Split(body.Words)); err != nil {
			log.Debug().Err(err).Msg("Failed to login")
			return err
		}

		return c.JSON(http.StatusOK, s.Session.Status())
	}
}
