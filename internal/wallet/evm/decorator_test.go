package evm_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/wallet/evm"
)

func TestSelector(t *testing.T) {
	sel := evm.Selector("transfer(address,uint256)")
	assert.Equal(t, "a9059cbb", hex.EncodeToString(sel[:]))
}

func TestMethodDecorator(t *testing.T) {
	d := evm.NewMethodDecorator("eip20", "transfer(address,uint256)", "approve(address,uint256)")
	assert.Equal(t, "eip20", d.Protocol())

	input, err := hex.DecodeString("095ea7b3" + "00")
	require.NoError(t, err)

	decoration := d.Decorate(&evm.Transaction{Input: input})
	require.NotNil(t, decoration)
	assert.Equal(t, evm.Decoration{Protocol: "eip20", Method: "approve"}, *decoration)

	assert.Nil(t, d.Decorate(&evm.Transaction{Input: []byte{0x01, 0x02}}))
	assert.Nil(t, d.Decorate(&evm.Transaction{Input: []byte{0xde, 0xad, 0xbe, 0xef}}))
	assert.Nil(t, d.Decorate(nil))
}

func TestKitDecorateFirstMatchWins(t *testing.T) {
	kit, err := evm.Instance(testAddress, testConfiguration("http://127.0.0.1:1", "walletID"), t.TempDir())
	require.NoError(t, err)
	defer kit.Close()

	kit.AddDecorator(evm.NewMethodDecorator("first", "transfer(address,uint256)"))
	kit.AddDecorator(evm.NewMethodDecorator("second", "transfer(address,uint256)"))
	assert.Len(t, kit.Decorators(), 2)

	sel := evm.Selector("transfer(address,uint256)")
	decoration := kit.Decorate(&evm.Transaction{Input: sel[:]})
	require.NotNil(t, decoration)
	assert.Equal(t, "first", decoration.Protocol)
}
