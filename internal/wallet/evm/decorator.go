package evm

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Decoration labels a transaction with the protocol call it performs.
type Decoration struct {
	Protocol string `json:"protocol"`
	Method   string `json:"method"`
}

// Decorator recognises transactions of one protocol. Decorate returns nil
// when tx is not one of its calls.
type Decorator interface {
	Decorate(tx *Transaction) *Decoration
}

// MethodDecorator recognises calls by their 4 byte method selector.
type MethodDecorator struct {
	protocol string
	methods  map[[4]byte]string
}

// NewMethodDecorator builds a decorator from canonical method signatures such
// as "transfer(address,uint256)".
func NewMethodDecorator(protocol string, signatures ...string) *MethodDecorator {
	d := &MethodDecorator{
		protocol: protocol,
		methods:  make(map[[4]byte]string, len(signatures)),
	}

	for _, sig := range signatures {
		d.methods[Selector(sig)] = methodName(sig)
	}

	return d
}

// Protocol returns the protocol label.
func (d *MethodDecorator) Protocol() string {
	return d.protocol
}

func (d *MethodDecorator) Decorate(tx *Transaction) *Decoration {
	if tx == nil || len(tx.Input) < 4 {
		return nil
	}

	var sel [4]byte
	copy(sel[:], tx.Input[:4])

	name, ok := d.methods[sel]
	if !ok {
		return nil
	}

	return &Decoration{Protocol: d.protocol, Method: name}
}

// Selector returns the first 4 bytes of keccak256(signature).
func Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

func methodName(signature string) string {
	if i := strings.IndexByte(signature, '('); i >= 0 {
		return signature[:i]
	}
	return signature
}
