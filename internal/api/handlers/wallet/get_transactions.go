package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/util"
)

func GetTransactionsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/transactions", getTransactionsHandler(s))
}

func getTransactionsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		a, err := activeAdapter(s)
		if err != nil {
			return err
		}

		txs, err := a.Transactions(ctx)
		if err != nil {
			log.Debug().Err(err).Object("wallet", a).Msg("Failed to list transactions")
			return err
		}

		return c.JSON(http.StatusOK, txs)
	}
}
