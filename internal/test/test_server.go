package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/api/router"
	"github/chapool/dex-wallet/internal/config"
)

// unreachableRPC refuses connections so kits never sync during tests.
const unreachableRPC = "http://127.0.0.1:1"

// NewTestConfig returns a server config rooted in a fresh temp dir.
func NewTestConfig(t *testing.T) config.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Storage.DataDir = t.TempDir()
	cfg.Logger.PrettyPrintConsole = false
	cfg.Echo.HideInternalServerErrorDetails = false
	cfg.Wallet.ChainName = "sepolia"
	cfg.Wallet.ChainsFile = ""
	cfg.Wallet.RPCURLs = []string{unreachableRPC}
	cfg.Wallet.TransactionAPIURL = ""
	cfg.Wallet.MinLogLevel = zerolog.Disabled
	cfg.Wallet.SyncInterval = time.Hour
	cfg.Wallet.Passphrase = ""
	cfg.Metrics.Enabled = true

	return cfg
}

// WithTestServer runs closure against a fully initialized server with its own
// data dir. The server is shut down afterwards.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, NewTestConfig(t), closure)
}

func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	s := NewTestServer(t, cfg)

	closure(s)
}

// NewTestServer initializes s like cmd/server does, without listening.
func NewTestServer(t *testing.T, cfg config.Server) *api.Server {
	t.Helper()

	s := api.NewServer(cfg)
	require.NoError(t, s.InitStore())
	require.NoError(t, s.InitChains())
	require.NoError(t, s.InitSession(t.Context()))
	router.Init(s)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		for _, err := range s.Shutdown(ctx) {
			t.Logf("Failed to shutdown test server: %v", err)
		}
	})

	return s
}

// PerformRequest serves a request against s.Echo and returns the recorded response.
// body is JSON encoded unless it is nil or already an io.Reader.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body any, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header[k] = v
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

// ParseResponseAndValidate decodes the JSON body of res into v.
func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
}
