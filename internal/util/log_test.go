package util_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github/chapool/dex-wallet/internal/util"
)

func TestLogFromContext(t *testing.T) {
	assert.Equal(t, &log.Logger, util.LogFromContext(t.Context()))

	var buf bytes.Buffer
	l := zerolog.New(&buf).With().Str("id", "req-1").Logger()
	ctx := l.WithContext(t.Context())

	util.LogFromContext(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"id":"req-1"`)
}

func TestLogLevelFromString(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, util.LogLevelFromString("warn"))
	assert.Equal(t, zerolog.DebugLevel, util.LogLevelFromString("loud"))
}
