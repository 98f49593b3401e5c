package chain

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrUnknownChain is returned when a chain name is not present in the registry.
var ErrUnknownChain = errors.New("unknown chain")

// Chain describes an EVM network.
type Chain struct {
	ID        int64  `toml:"id"`
	Name      string `toml:"name"`
	Symbol    string `toml:"symbol"`
	CoinType  uint32 `toml:"coin_type"` // SLIP-44 coin type used in the derivation path
	IsEIP1559 bool   `toml:"eip1559"`
	Testnet   bool   `toml:"testnet"`

	RPCURLs           []string `toml:"rpc_urls"`
	TransactionAPIURL string   `toml:"transaction_api_url"`
}

// RPCSource lists the JSON-RPC endpoints used by the kit, in failover order.
type RPCSource struct {
	URLs []string
}

// TransactionSource is an explorer API used to list account history.
type TransactionSource struct {
	Name   string
	APIURL string
	APIKey string
}

// Configuration is everything needed to instantiate a kit for one chain.
type Configuration struct {
	Chain             Chain
	RPCSource         RPCSource
	TransactionSource TransactionSource
	WalletID          string
	MinLogLevel       zerolog.Level
}
