package wallet

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/api/httperrors"
	"github/chapool/dex-wallet/internal/util"
)

type PostSignMessagePayload struct {
	Message string `json:"message"`
}

type PostSignMessageResponse struct {
	Address   string        `json:"address"`
	Signature hexutil.Bytes `json:"signature"`
}

func PostSignMessageRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/sign-message", postSignMessageHandler(s))
}

func postSignMessageHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := util.LogFromContext(c.Request().Context())

		var body PostSignMessagePayload
		if err := c.Bind(&body); err != nil {
			return err
		}

		if len(body.Message) == 0 {
			return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, httperrors.TypeInvalidRequestPayload,
				"Invalid request payload", "message is required")
		}

		a, err := activeAdapter(s)
		if err != nil {
			return err
		}

		sig, err := a.SignMessage([]byte(body.Message))
		if err != nil {
			log.Debug().Err(err).Object("wallet", a).Msg("Failed to sign message")
			return err
		}

		return c.JSON(http.StatusOK, PostSignMessageResponse{
			Address:   a.Address().Hex(),
			Signature: sig,
		})
	}
}
