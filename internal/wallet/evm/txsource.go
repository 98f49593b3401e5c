package evm

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github/chapool/dex-wallet/internal/wallet/chain"
)

const (
	txSourceTimeout  = 15 * time.Second
	txSourcePageSize = 50
)

// ErrNoTransactionSource is returned when no explorer API is configured.
var ErrNoTransactionSource = errors.New("no transaction source configured")

// Transaction is one entry of the account history.
type Transaction struct {
	Hash        common.Hash     `json:"hash"`
	BlockNumber uint64          `json:"blockNumber"`
	Timestamp   time.Time       `json:"timestamp"`
	From        common.Address  `json:"from"`
	To          *common.Address `json:"to,omitempty"`
	Value       *big.Int        `json:"value"`
	Input       hexutil.Bytes   `json:"input"`
	Failed      bool            `json:"failed"`
	Decoration  *Decoration     `json:"decoration,omitempty"`
}

// transactionSource lists account transactions from an Etherscan compatible API.
type transactionSource struct {
	source chain.TransactionSource
	client *http.Client
}

func newTransactionSource(source chain.TransactionSource) *transactionSource {
	return &transactionSource{
		source: source,
		client: &http.Client{Timeout: txSourceTimeout},
	}
}

type explorerResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type explorerTx struct {
	Hash        string `json:"hash"`
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	Input       string `json:"input"`
	IsError     string `json:"isError"`
}

func (s *transactionSource) transactions(ctx context.Context, address common.Address) ([]*Transaction, error) {
	if s.source.APIURL == "" {
		return nil, ErrNoTransactionSource
	}

	endpoint, err := url.Parse(s.source.APIURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid transaction source URL")
	}

	query := endpoint.Query()
	query.Set("module", "account")
	query.Set("action", "txlist")
	query.Set("address", address.Hex())
	query.Set("sort", "desc")
	query.Set("page", "1")
	query.Set("offset", strconv.Itoa(txSourcePageSize))
	if s.source.APIKey != "" {
		query.Set("apikey", s.source.APIKey)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create transaction source request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query transaction source")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("transaction source returned status %d", resp.StatusCode)
	}

	var body explorerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to decode transaction source response")
	}

	var rows []explorerTx
	if err := json.Unmarshal(body.Result, &rows); err != nil {
		// Explorers answer "No transactions found" with status 0 and a string result.
		if body.Status == "0" && body.Message == "No transactions found" {
			return []*Transaction{}, nil
		}
		return nil, errors.Errorf("transaction source error: %s", body.Message)
	}

	result := make([]*Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := row.toTransaction()
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}

	return result, nil
}

func (r explorerTx) toTransaction() (*Transaction, error) {
	blockNumber, err := strconv.ParseUint(r.BlockNumber, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid block number for %s", r.Hash)
	}

	timestamp, err := strconv.ParseInt(r.TimeStamp, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timestamp for %s", r.Hash)
	}

	value, ok := new(big.Int).SetString(r.Value, 10)
	if !ok {
		return nil, errors.Errorf("invalid value for %s", r.Hash)
	}

	var input []byte
	if r.Input != "" && r.Input != "0x" {
		input, err = hexutil.Decode(r.Input)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid input for %s", r.Hash)
		}
	}

	tx := &Transaction{
		Hash:        common.HexToHash(r.Hash),
		BlockNumber: blockNumber,
		Timestamp:   time.Unix(timestamp, 0).UTC(),
		From:        common.HexToAddress(r.From),
		Value:       value,
		Input:       input,
		Failed:      r.IsError == "1",
	}

	// Contract creations have an empty "to".
	if common.IsHexAddress(r.To) {
		to := common.HexToAddress(r.To)
		tx.To = &to
	}

	return tx, nil
}
