package httperrors

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/dex-wallet/internal/config"
	"github/chapool/dex-wallet/internal/util"
)

// HTTPErrorHandler renders every error as an HTTPError JSON body.
func HTTPErrorHandler(cfg config.EchoServer) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromContext(c.Request().Context())
		herr := toHTTPError(err, cfg.HideInternalServerErrorDetails)

		if herr.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Int("status", herr.Code).Msg("Request failed")
		} else {
			log.Debug().Err(err).Int("status", herr.Code).Msg("Request rejected")
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(herr.Code)
		} else {
			sendErr = c.JSON(herr.Code, herr)
		}

		if sendErr != nil {
			log.Warn().Err(sendErr).AnErr("origin", err).Msg("Failed to send error response")
		}
	}
}

func toHTTPError(err error, hideInternal bool) *HTTPError {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr
	}

	if mapped := FromDomainError(err); mapped != nil {
		return mapped
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		title := http.StatusText(echoErr.Code)
		if msg, ok := echoErr.Message.(string); ok {
			title = msg
		}

		return NewHTTPError(echoErr.Code, TypeGeneric, title)
	}

	if hideInternal {
		return NewHTTPError(http.StatusInternalServerError, TypeGeneric, http.StatusText(http.StatusInternalServerError))
	}

	return NewHTTPErrorWithDetail(http.StatusInternalServerError, TypeGeneric, http.StatusText(http.StatusInternalServerError), err.Error())
}
