// Package aave implements an Aave v3 Pool visualizer for the supply,
// withdraw, borrow, and repay entry points.
package aave

import (
	"github.com/anchorageoss/visualsign-parser/chain/evm"
	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/internal/numfmt"
)

var (
	addressTy = mustType("address")
	uint256Ty = mustType("uint256")
	uint16Ty  = mustType("uint16")
)

func mustType(name string) abi.Type {
	t, err := abi.ParseType(name, nil)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	supplySelector   = abi.Selector4("supply(address,uint256,address,uint16)")
	withdrawSelector = abi.Selector4("withdraw(address,uint256,address)")
	borrowSelector   = abi.Selector4("borrow(address,uint256,uint256,uint16,address)")
	repaySelector    = abi.Selector4("repay(address,uint256,uint256,address)")
)

// Visualizer renders Aave v3 Pool calls.
type Visualizer struct{}

// NewVisualizer returns the Aave v3 Pool Visualizer for registration
// against chain/evm.Registry.RegisterAddress.
func NewVisualizer() evm.Visualizer { return Visualizer{} }

func tokenLabel(ctx evm.VisualizerContext, asset abi.Value) (symbol string, decimals uint8, hasDecimals bool) {
	if ctx.Contracts != nil {
		if info, ok := ctx.Contracts.LookupEVM(ctx.ChainID, asset.Addr); ok {
			return info.Symbol, info.Decimals, info.HasDecimals
		}
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

func (Visualizer) Visualize(ctx evm.VisualizerContext) (fields.Field, error) {
	switch ctx.Selector {
	case supplySelector:
		return visualizeSupply(ctx)
	case withdrawSelector:
		return visualizeWithdraw(ctx)
	case borrowSelector:
		return visualizeBorrow(ctx)
	case repaySelector:
		return visualizeRepay(ctx)
	default:
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound,
			"aave v3 pool: unrecognized selector 0x%x", ctx.Selector)
	}
}

func visualizeSupply(ctx evm.VisualizerContext) (fields.Field, error) {
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, uint256Ty, addressTy, uint16Ty})
	if err != nil {
		return fields.Field{}, err
	}
	asset, amount, onBehalfOf := vals[0], vals[1], vals[2]
	symbol, decimals, hasDecimals := tokenLabel(ctx, asset)

	title := "Aave Supply"
	subtitle := "On behalf of " + onBehalfOf.Addr.Hex()
	condensed := fields.NewListLayout(
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Asset", asset.Addr.Hex(), symbol, fields.AddressFieldOpts{})),
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
		fields.Plain(fields.NewAddressV2("On Behalf Of", onBehalfOf.Addr.Hex(), "", fields.AddressFieldOpts{})),
	)
	return fields.NewPreviewLayout(title, title, subtitle, condensed, expanded), nil
}

func visualizeWithdraw(ctx evm.VisualizerContext) (fields.Field, error) {
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, uint256Ty, addressTy})
	if err != nil {
		return fields.Field{}, err
	}
	asset, amount, to := vals[0], vals[1], vals[2]
	symbol, decimals, hasDecimals := tokenLabel(ctx, asset)

	title := "Aave Withdraw"
	condensed := fields.NewListLayout(
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Asset", asset.Addr.Hex(), symbol, fields.AddressFieldOpts{})),
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
		fields.Plain(fields.NewAddressV2("To", to.Addr.Hex(), "", fields.AddressFieldOpts{})),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func visualizeBorrow(ctx evm.VisualizerContext) (fields.Field, error) {
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, uint256Ty, uint256Ty, uint16Ty, addressTy})
	if err != nil {
		return fields.Field{}, err
	}
	asset, amount, rateMode, onBehalfOf := vals[0], vals[1], vals[2], vals[4]
	symbol, decimals, hasDecimals := tokenLabel(ctx, asset)

	title := "Aave Borrow"
	condensed := fields.NewListLayout(
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Asset", asset.Addr.Hex(), symbol, fields.AddressFieldOpts{})),
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
		fields.Plain(fields.NewTextV2("Interest Rate Mode", rateMode.Int.String())),
		fields.Plain(fields.NewAddressV2("On Behalf Of", onBehalfOf.Addr.Hex(), "", fields.AddressFieldOpts{})),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func visualizeRepay(ctx evm.VisualizerContext) (fields.Field, error) {
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, uint256Ty, uint256Ty, addressTy})
	if err != nil {
		return fields.Field{}, err
	}
	asset, amount, rateMode, onBehalfOf := vals[0], vals[1], vals[2], vals[3]
	symbol, decimals, hasDecimals := tokenLabel(ctx, asset)

	title := "Aave Repay"
	condensed := fields.NewListLayout(
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Asset", asset.Addr.Hex(), symbol, fields.AddressFieldOpts{})),
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
		fields.Plain(fields.NewTextV2("Interest Rate Mode", rateMode.Int.String())),
		fields.Plain(fields.NewAddressV2("On Behalf Of", onBehalfOf.Addr.Hex(), "", fields.AddressFieldOpts{})),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}
