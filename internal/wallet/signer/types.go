package signer

import "github.com/pkg/errors"

// ErrClosed is returned when a signer is used after Close.
var ErrClosed = errors.New("signer closed")

// SignEVMRequest describes an unsigned transfer or contract call.
// Amounts are decimal wei strings.
type SignEVMRequest struct {
	To                   string // 0x recipient
	Value                string
	GasLimit             uint64
	GasPrice             string // legacy chains only
	MaxFeePerGas         string
	MaxPriorityFeePerGas string
	Nonce                uint64
	Data                 []byte
}

// SignEVMResponse holds the RLP encoded signed transaction and its hash.
type SignEVMResponse struct {
	RawTransaction []byte
	TxHash         string // 0x prefixed
}
