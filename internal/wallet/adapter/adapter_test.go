package adapter_test

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/test"
	"github/chapool/dex-wallet/internal/wallet/adapter"
	"github/chapool/dex-wallet/internal/wallet/chain"
	"github/chapool/dex-wallet/internal/wallet/evm"
	"github/chapool/dex-wallet/internal/wallet/seed"
	"github/chapool/dex-wallet/internal/wallet/signer"
)

//nolint:dupword // BIP39 test vector
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

var legacyChain = chain.Chain{ID: 97, Name: "bsc-testnet", CoinType: 60}

func newKit(t *testing.T, rpcURL string, address common.Address) *evm.Kit {
	t.Helper()

	kit, err := evm.Instance(address, chain.Configuration{
		Chain:       legacyChain,
		RPCSource:   chain.RPCSource{URLs: []string{rpcURL}},
		WalletID:    "walletID",
		MinLogLevel: zerolog.Disabled,
	}, t.TempDir(), evm.WithSyncInterval(time.Hour))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kit.Close() })

	return kit
}

func newSigner(t *testing.T) *signer.Signer {
	t.Helper()

	s, err := seed.FromWords(seed.Split(testMnemonic), "")
	require.NoError(t, err)

	sig, err := signer.New(s, legacyChain)
	require.NoError(t, err)
	t.Cleanup(sig.Close)

	return sig
}

func TestWatchOnlyAdapter(t *testing.T) {
	addr := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	a := adapter.NewEthereumAdapter(newKit(t, "http://127.0.0.1:1", addr), nil)

	assert.True(t, a.IsWatchOnly())
	assert.Equal(t, addr, a.Address())
	assert.Equal(t, 0, a.Balance().Sign())
	assert.Equal(t, uint64(0), a.LastBlockHeight())

	_, err := a.Send(t.Context(), adapter.SendRequest{To: addr, Amount: big.NewInt(1)})
	require.ErrorIs(t, err, adapter.ErrWatchOnly)

	_, err = a.SignMessage([]byte("hi"))
	require.ErrorIs(t, err, adapter.ErrWatchOnly)
}

func TestSendLegacyTransfer(t *testing.T) {
	ctx := t.Context()

	stub := test.NewRPCStub(t, "0x61")
	stub.Set("eth_blockNumber", "0x1")
	stub.Set("eth_getBalance", "0x0")
	stub.Set("eth_getTransactionCount", "0x7")
	stub.Set("eth_gasPrice", "0x12a05f200")
	stub.Set("eth_sendRawTransaction", "0x01")

	sig := newSigner(t)
	kit := newKit(t, stub.URL, sig.Address())
	kit.Start(ctx)

	a := adapter.NewEthereumAdapter(kit, sig)
	assert.False(t, a.IsWatchOnly())

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	txHash, err := a.Send(ctx, adapter.SendRequest{To: to, Amount: big.NewInt(1000)})
	require.NoError(t, err)

	calls := stub.Calls("eth_sendRawTransaction")
	require.Len(t, calls, 1)

	var params []hexutil.Bytes
	require.NoError(t, json.Unmarshal(calls[0], &params))
	require.Len(t, params, 1)

	tx := new(types.Transaction)
	require.NoError(t, tx.UnmarshalBinary(params[0]))
	assert.Equal(t, txHash, tx.Hash())
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(21000), tx.Gas())
	assert.Equal(t, big.NewInt(5000000000), tx.GasPrice())
	assert.Equal(t, &to, tx.To())
	assert.Equal(t, big.NewInt(1000), tx.Value())
}

func TestSendRejectsNegativeAmount(t *testing.T) {
	sig := newSigner(t)
	a := adapter.NewEthereumAdapter(newKit(t, "http://127.0.0.1:1", sig.Address()), sig)

	_, err := a.Send(t.Context(), adapter.SendRequest{Amount: big.NewInt(-1)})
	require.Error(t, err)
}

func TestSignMessage(t *testing.T) {
	sig := newSigner(t)
	a := adapter.NewEthereumAdapter(newKit(t, "http://127.0.0.1:1", sig.Address()), sig)

	signature, err := a.SignMessage([]byte("hello"))
	require.NoError(t, err)
	assert.Len(t, signature, 65)
}
