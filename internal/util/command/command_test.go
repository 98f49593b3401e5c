package command_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/session"
	"github/chapool/dex-wallet/internal/test"
	"github/chapool/dex-wallet/internal/util/command"
)

//nolint:dupword // BIP39 test vector
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestWithServer(t *testing.T) {
	cfg := test.NewTestConfig(t)
	testError := errors.New("test error")

	resultErr := command.WithServer(t.Context(), cfg, func(_ context.Context, s *api.Server) error {
		require.NotNil(t, s.Store)
		require.NotNil(t, s.Chains)
		require.NotNil(t, s.Session)
		assert.Equal(t, session.ModeUninitialized, s.Session.Mode())

		return testError
	})

	assert.Equal(t, testError, resultErr)
}

func TestWithServerRestoresSession(t *testing.T) {
	cfg := test.NewTestConfig(t)

	err := command.WithServer(t.Context(), cfg, func(ctx context.Context, s *api.Server) error {
		return s.Session.Login(ctx, strings.Fields(testMnemonic))
	})
	require.NoError(t, err)

	err = command.WithServer(t.Context(), cfg, func(_ context.Context, s *api.Server) error {
		assert.Equal(t, session.ModeWords, s.Session.Mode())
		return nil
	})
	require.NoError(t, err)
}

func TestWithServerUnknownChain(t *testing.T) {
	cfg := test.NewTestConfig(t)
	cfg.Wallet.ChainName = "does-not-exist"

	err := command.WithServer(t.Context(), cfg, func(_ context.Context, _ *api.Server) error {
		t.Fatal("closure must not run")
		return nil
	})
	require.Error(t, err)
}

func TestNewSubcommandGroup(t *testing.T) {
	child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}
	group := command.NewSubcommandGroup("group", child)

	assert.Equal(t, "group", group.Use)
	require.Len(t, group.Commands(), 1)
	assert.Equal(t, "child", group.Commands()[0].Use)
}
