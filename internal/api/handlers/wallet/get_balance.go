package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/wallet/evm"
)

type GetBalanceResponse struct {
	Address         string        `json:"address"`
	BalanceWei      string        `json:"balanceWei"`
	Symbol          string        `json:"symbol"`
	LastBlockHeight uint64        `json:"lastBlockHeight"`
	SyncState       evm.SyncState `json:"syncState"`
}

func GetBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/balance", getBalanceHandler(s))
}

func getBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, err := activeAdapter(s)
		if err != nil {
			return err
		}

		state, _ := a.SyncState()

		return c.JSON(http.StatusOK, GetBalanceResponse{
			Address:         a.Address().Hex(),
			BalanceWei:      a.Balance().String(),
			Symbol:          a.Chain().Symbol,
			LastBlockHeight: a.LastBlockHeight(),
			SyncState:       state,
		})
	}
}
