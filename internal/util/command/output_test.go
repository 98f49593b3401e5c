package command_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/util/command"
)

type outputSample struct {
	Mode    string `json:"mode" yaml:"mode"`
	ChainID int64  `json:"chainId" yaml:"chainId"`
}

func TestPrint(t *testing.T) {
	sample := outputSample{Mode: "words", ChainID: 1}

	var buf bytes.Buffer
	require.NoError(t, command.Print(&buf, command.FormatJSON, sample))
	assert.JSONEq(t, `{"mode":"words","chainId":1}`, buf.String())

	buf.Reset()
	require.NoError(t, command.Print(&buf, command.FormatYAML, sample))
	assert.Equal(t, "mode: words\nchainId: 1\n\n", buf.String())

	require.Error(t, command.Print(&buf, "xml", sample))
}
