package session_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/api/httperrors"
	"github/chapool/dex-wallet/internal/session"
	"github/chapool/dex-wallet/internal/storage"
	"github/chapool/dex-wallet/internal/test"
)

//nolint:dupword // BIP39 test vector
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

const (
	testAccount = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
	watchedHex  = "0x000000000000000000000000000000000000dEaD"
)

func stored(t *testing.T, s *api.Server, key string) (string, bool) {
	t.Helper()

	val, err := s.Store.Get(key)
	if err != nil {
		require.ErrorIs(t, err, storage.ErrNotFound)
		return "", false
	}

	return val, true
}

func TestGetSessionUninitialized(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/session", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var status session.Status
		test.ParseResponseAndValidate(t, res, &status)

		assert.Equal(t, session.ModeUninitialized, status.Mode)
		assert.Empty(t, status.Address)
		assert.Equal(t, int64(11155111), status.ChainID)
		assert.Equal(t, "sepolia", status.ChainName)
	})
}

func TestPostLogin(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := map[string]string{"words": "  " + testMnemonic + "\n"}

		res := test.PerformRequest(t, s, "POST", "/api/v1/session/login", payload, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var status session.Status
		test.ParseResponseAndValidate(t, res, &status)

		assert.Equal(t, session.ModeWords, status.Mode)
		assert.Equal(t, testAccount, status.Address)
		assert.False(t, status.WatchOnly)

		words, ok := stored(t, s, session.KeyWords)
		require.True(t, ok)
		assert.Equal(t, testMnemonic, words)

		_, ok = stored(t, s, session.KeyAddress)
		assert.False(t, ok)
	})
}

func TestPostLoginInvalidWords(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := map[string]string{"words": "abandon abandon abandon"}

		res := test.PerformRequest(t, s, "POST", "/api/v1/session/login", payload, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var herr httperrors.HTTPError
		test.ParseResponseAndValidate(t, res, &herr)
		assert.Equal(t, httperrors.TypeSeedGenerationFailed, herr.Type)

		assert.Equal(t, session.ModeUninitialized, s.Session.Mode())
	})
}

func TestPostLoginMissingWords(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/login", map[string]string{}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var herr httperrors.HTTPError
		test.ParseResponseAndValidate(t, res, &herr)
		assert.Equal(t, httperrors.TypeInvalidRequestPayload, herr.Type)
	})
}

func TestPostWatchAfterLogin(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		require.NoError(t, s.Session.Login(t.Context(), strings.Fields(testMnemonic)))

		payload := map[string]string{"address": watchedHex}

		res := test.PerformRequest(t, s, "POST", "/api/v1/session/watch", payload, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var status session.Status
		test.ParseResponseAndValidate(t, res, &status)

		assert.Equal(t, session.ModeAddress, status.Mode)
		assert.Equal(t, watchedHex, status.Address)
		assert.True(t, status.WatchOnly)

		addr, ok := stored(t, s, session.KeyAddress)
		require.True(t, ok)
		assert.Equal(t, strings.ToLower(watchedHex), addr)

		_, ok = stored(t, s, session.KeyWords)
		assert.False(t, ok)
	})
}

func TestPostWatchInvalidAddress(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := map[string]string{"address": "0xdead"}

		res := test.PerformRequest(t, s, "POST", "/api/v1/session/watch", payload, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var herr httperrors.HTTPError
		test.ParseResponseAndValidate(t, res, &herr)
		assert.Equal(t, httperrors.TypeInvalidAddress, herr.Type)

		_, ok := stored(t, s, session.KeyAddress)
		assert.False(t, ok)
	})
}

func TestPostLogout(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		require.NoError(t, s.Session.Login(t.Context(), strings.Fields(testMnemonic)))

		res := test.PerformRequest(t, s, "POST", "/api/v1/session/logout", nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)

		assert.Equal(t, session.ModeUninitialized, s.Session.Mode())
		assert.Nil(t, s.Session.Kit())
		assert.Nil(t, s.Session.Signer())
		assert.Nil(t, s.Session.Adapter())

		_, ok := stored(t, s, session.KeyWords)
		assert.False(t, ok)
		_, ok = stored(t, s, session.KeyAddress)
		assert.False(t, ok)
	})
}

func TestPostLogoutUninitialized(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/logout", nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)
	})
}
