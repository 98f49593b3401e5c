package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/api/handlers/common"
	"github/chapool/dex-wallet/internal/api/handlers/session"
	"github/chapool/dex-wallet/internal/api/handlers/wallet"
)

func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = append(s.Router.Routes, []*echo.Route{
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),
		session.GetSessionRoute(s),
		session.PostLoginRoute(s),
		session.PostWatchRoute(s),
		session.PostLogoutRoute(s),
		wallet.GetAddressQRRoute(s),
		wallet.GetBalanceRoute(s),
		wallet.GetTransactionsRoute(s),
		wallet.PostSignMessageRoute(s),
		wallet.PostSendRoute(s),
	}...)
}
