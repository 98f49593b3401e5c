package wallet

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/api/httperrors"
	"github/chapool/dex-wallet/internal/util"
	"github/chapool/dex-wallet/internal/wallet/adapter"
	"github/chapool/dex-wallet/internal/wallet/address"
)

type PostSendPayload struct {
	To        string        `json:"to"`
	AmountWei string        `json:"amountWei"`
	Data      hexutil.Bytes `json:"data,omitempty"`
}

type PostSendResponse struct {
	TxHash string `json:"txHash"`
}

func PostSendRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/send", postSendHandler(s))
}

func postSendHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body PostSendPayload
		if err := c.Bind(&body); err != nil {
			return err
		}

		to, err := address.Parse(body.To)
		if err != nil {
			return err
		}

		amount := new(big.Int)
		if len(body.AmountWei) > 0 {
			if _, ok := amount.SetString(body.AmountWei, 10); !ok || amount.Sign() < 0 {
				return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, httperrors.TypeInvalidRequestPayload,
					"Invalid request payload", "amountWei must be a non-negative decimal integer")
			}
		}

		a, err := activeAdapter(s)
		if err != nil {
			return err
		}

		hash, err := a.Send(ctx, adapter.SendRequest{
			To:     to,
			Amount: amount,
			Data:   body.Data,
		})
		if err != nil {
			log.Debug().Err(err).Object("wallet", a).Msg("Failed to send transaction")
			return err
		}

		return c.JSON(http.StatusOK, PostSendResponse{TxHash: hash.Hex()})
	}
}
