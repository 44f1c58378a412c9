// Package trc20 renders TriggerSmartContract calls into TRC-20 token
// contracts. TVM calldata encoding is byte-for-byte EVM ABI encoding (Tron
// is an EVM-compatible chain), so this reuses chain/evm/abi's selector and
// argument decoder directly rather than re-implementing it, the same way
// chain/evm/protocols/erc20 uses it for ERC-20.
package trc20

import (
	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/chain/tron"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/internal/numfmt"
	"github.com/anchorageoss/visualsign-parser/registry"
)

var (
	addressTy = mustType("address")
	uint256Ty = mustType("uint256")
)

func mustType(name string) abi.Type {
	t, err := abi.ParseType(name, nil)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	transferSelector     = abi.Selector4("transfer(address,uint256)")
	transferFromSelector = abi.Selector4("transferFrom(address,address,uint256)")
	approveSelector      = abi.Selector4("approve(address,uint256)")
)

// Visualizer renders TRC-20 transfer/transferFrom/approve calls.
type Visualizer struct {
	Contracts *registry.ContractRegistry
}

// NewVisualizer returns a TRC-20 Visualizer for registration against
// tron.Registry.Register with the token contract's base58check address.
func NewVisualizer(contracts *registry.ContractRegistry) tron.Visualizer {
	return Visualizer{Contracts: contracts}
}

func (v Visualizer) Visualize(ctx tron.CallContext) (fields.Field, error) {
	if len(ctx.Data) < 4 {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "calldata shorter than a selector")
	}
	var selector [4]byte
	copy(selector[:], ctx.Data[:4])
	tail := ctx.Data[4:]

	switch selector {
	case transferSelector:
		return v.visualizeTransfer(ctx, tail)
	case transferFromSelector:
		return v.visualizeTransferFrom(ctx, tail)
	case approveSelector:
		return v.visualizeApprove(ctx, tail)
	default:
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound, "unrecognized TRC-20 selector")
	}
}

func (v Visualizer) symbolFor(contractAddress string) (symbol string, decimals uint8, hasDecimals bool) {
	if v.Contracts == nil {
		return "", 0, false
	}
	if info, ok := v.Contracts.LookupTron(contractAddress); ok {
		return info.Symbol, info.Decimals, info.HasDecimals
	}
	return "", 0, false
}

func amountField(label string, raw abi.Value, symbol string, decimals uint8, hasDecimals bool) fields.Field {
	if !hasDecimals {
		return fields.NewAmountV2(label, numfmt.RawUnits(raw.Int), "", numfmt.RawUnits(raw.Int)+" (raw units)")
	}
	amount := numfmt.TokenAmount(raw.Int, decimals)
	fallback := amount
	if symbol != "" {
		fallback = amount + " " + symbol
	}
	return fields.NewAmountV2(label, amount, symbol, fallback)
}

func (v Visualizer) visualizeTransfer(ctx tron.CallContext, tail []byte) (fields.Field, error) {
	vals, err := abi.DecodeArgs(tail, []abi.Type{addressTy, uint256Ty})
	if err != nil {
		return fields.Field{}, err
	}
	to, amount := vals[0], vals[1]
	symbol, decimals, hasDecimals := v.symbolFor(ctx.ContractAddress)

	title := "Token Transfer"
	if symbol != "" {
		title = "Transfer " + symbol
	}
	condensed := fields.NewListLayout(fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)))
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Recipient", to.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func (v Visualizer) visualizeTransferFrom(ctx tron.CallContext, tail []byte) (fields.Field, error) {
	vals, err := abi.DecodeArgs(tail, []abi.Type{addressTy, addressTy, uint256Ty})
	if err != nil {
		return fields.Field{}, err
	}
	from, to, amount := vals[0], vals[1], vals[2]
	symbol, decimals, hasDecimals := v.symbolFor(ctx.ContractAddress)

	title := "Token Transfer (delegated)"
	if symbol != "" {
		title = "Transfer " + symbol + " (delegated)"
	}
	condensed := fields.NewListLayout(fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)))
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("From", from.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("To", to.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func (v Visualizer) visualizeApprove(ctx tron.CallContext, tail []byte) (fields.Field, error) {
	vals, err := abi.DecodeArgs(tail, []abi.Type{addressTy, uint256Ty})
	if err != nil {
		return fields.Field{}, err
	}
	spender, amount := vals[0], vals[1]
	symbol, decimals, hasDecimals := v.symbolFor(ctx.ContractAddress)

	title := "Token Approval"
	if symbol != "" {
		title = "Approve " + symbol
	}
	condensed := fields.NewListLayout(fields.Plain(fields.NewAddressV2("Spender", spender.Addr.Hex(), "", fields.AddressFieldOpts{})))
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Spender", spender.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}
