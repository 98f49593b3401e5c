package eip20_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/wallet/eip20"
	"github/chapool/dex-wallet/internal/wallet/evm"
)

func TestDecorator(t *testing.T) {
	d := eip20.NewDecorator()

	for sig, method := range map[string]string{
		"transfer(address,uint256)":             "transfer",
		"transferFrom(address,address,uint256)": "transferFrom",
		"approve(address,uint256)":              "approve",
	} {
		sel := evm.Selector(sig)
		decoration := d.Decorate(&evm.Transaction{Input: sel[:]})
		require.NotNil(t, decoration, sig)
		assert.Equal(t, eip20.Protocol, decoration.Protocol)
		assert.Equal(t, method, decoration.Method)
	}

	sel := evm.Selector("balanceOf(address)")
	assert.Nil(t, d.Decorate(&evm.Transaction{Input: sel[:]}))
}
