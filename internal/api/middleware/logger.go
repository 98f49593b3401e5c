package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/dex-wallet/internal/config"
)

// Logger attaches a request scoped zerolog logger to the request context and
// logs every completed request at the configured level.
func Logger(cfg config.LoggerServer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()

			id := res.Header().Get(echo.HeaderXRequestID)
			if len(id) == 0 {
				id = req.Header.Get(echo.HeaderXRequestID)
			}

			l := log.With().Str("id", id).Logger()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			event := l.WithLevel(cfg.RequestLevel)
			if res.Status >= 500 {
				event = l.Error()
			}

			event.
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration", time.Since(start)).
				Func(func(e *zerolog.Event) {
					if cfg.LogRequestHeader {
						e.Interface("req_header", req.Header)
					}
					if cfg.LogResponseHeader {
						e.Interface("res_header", res.Header())
					}
				}).
				Msg("http_request")

			return nil
		}
	}
}
