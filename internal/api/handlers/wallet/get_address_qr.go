package wallet

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/api/httperrors"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

func GetAddressQRRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/address/qr", getAddressQRHandler(s))
}

// getAddressQRHandler renders the receive address as a PNG QR code.
func getAddressQRHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		size := defaultQRSize
		if raw := c.QueryParam("size"); len(raw) > 0 {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 || parsed > maxQRSize {
				return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, httperrors.TypeInvalidRequestPayload,
					"Invalid size parameter", "size must be an integer between 1 and 1024")
			}
			size = parsed
		}

		a, err := activeAdapter(s)
		if err != nil {
			return err
		}

		qr, err := qrcode.New(a.Address().Hex(), qrcode.Medium)
		if err != nil {
			return errors.Wrap(err, "failed to create QR code")
		}

		png, err := qr.PNG(size)
		if err != nil {
			return errors.Wrap(err, "failed to generate PNG")
		}

		return c.Blob(http.StatusOK, "image/png", png)
	}
}
