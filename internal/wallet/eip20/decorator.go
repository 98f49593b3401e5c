// Package eip20 registers ERC-20 call labelling on a kit.
package eip20

import "github/chapool/dex-wallet/internal/wallet/evm"

const Protocol = "eip20"

var methods = []string{
	"transfer(address,uint256)",
	"transferFrom(address,address,uint256)",
	"approve(address,uint256)",
}

// NewDecorator labels ERC-20 transfer and allowance calls.
func NewDecorator() *evm.MethodDecorator {
	return evm.NewMethodDecorator(Protocol, methods...)
}

// AddDecorators registers the ERC-20 decorators on kit.
func AddDecorators(kit *evm.Kit) {
	kit.AddDecorator(NewDecorator())
}
