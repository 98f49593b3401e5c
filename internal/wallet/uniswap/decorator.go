// Package uniswap registers Uniswap router call labelling on a kit.
// Only the call is recognised; swap paths and amounts are not decoded.
package uniswap

import (
	"github.com/pkg/errors"
	"github/chapool/dex-wallet/internal/wallet/evm"
)

const (
	ProtocolV2 = "uniswap_v2"
	ProtocolV3 = "uniswap_v3"
)

var v2Methods = []string{
	"swapExactETHForTokens(uint256,address[],address,uint256)",
	"swapETHForExactTokens(uint256,address[],address,uint256)",
	"swapExactTokensForETH(uint256,uint256,address[],address,uint256)",
	"swapTokensForExactETH(uint256,uint256,address[],address,uint256)",
	"swapExactTokensForTokens(uint256,uint256,address[],address,uint256)",
	"swapTokensForExactTokens(uint256,uint256,address[],address,uint256)",
	"swapExactETHForTokensSupportingFeeOnTransferTokens(uint256,address[],address,uint256)",
	"swapExactTokensForETHSupportingFeeOnTransferTokens(uint256,uint256,address[],address,uint256)",
	"swapExactTokensForTokensSupportingFeeOnTransferTokens(uint256,uint256,address[],address,uint256)",
}

// V3 SwapRouter structs are ABI encoded as tuples.
var v3Methods = []string{
	"exactInputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))",
	"exactInput((bytes,address,uint256,uint256,uint256))",
	"exactOutputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))",
	"exactOutput((bytes,address,uint256,uint256,uint256))",
	"multicall(uint256,bytes[])",
}

// NewDecorator labels Uniswap V2 router swaps.
func NewDecorator() *evm.MethodDecorator {
	return evm.NewMethodDecorator(ProtocolV2, v2Methods...)
}

// NewDecoratorV3 labels Uniswap V3 SwapRouter swaps.
func NewDecoratorV3() *evm.MethodDecorator {
	return evm.NewMethodDecorator(ProtocolV3, v3Methods...)
}

// AddDecorators registers the V2 decorator on kit.
func AddDecorators(kit *evm.Kit) {
	kit.AddDecorator(NewDecorator())
}

// ErrUnsupportedChain is returned when Uniswap V3 has no deployment on the kit's chain.
var ErrUnsupportedChain = errors.New("uniswap v3 is not deployed on chain")

// Chain IDs with an official Uniswap V3 SwapRouter deployment.
var v3ChainIDs = map[int64]struct{}{
	1:        {}, // ethereum
	10:       {}, // optimism
	56:       {}, // bsc
	137:      {}, // polygon
	8453:     {}, // base
	42161:    {}, // arbitrum
	11155111: {}, // sepolia
}

// AddDecoratorsV3 registers the V3 decorator.
func AddDecoratorsV3(kit *evm.Kit) error {
	if _, ok := v3ChainIDs[kit.Chain().ID]; !ok {
		return errors.Wrapf(ErrUnsupportedChain, "%s (%d)", kit.Chain().Name, kit.Chain().ID)
	}

	kit.AddDecorator(NewDecoratorV3())

	return nil
}
