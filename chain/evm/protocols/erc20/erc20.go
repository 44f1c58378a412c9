// Package erc20 implements the hard-coded ERC-20/ERC-721/ERC-1155 selector
// table consulted before falling back to the dynamic-ABI registry: every
// contract exposing these selectors is rendered the same semantic way
// regardless of whether its address is individually registered.
package erc20

import (
	"github.com/anchorageoss/visualsign-parser/chain/evm"
	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/internal/numfmt"
)

var (
	addressTy = mustType("address", nil)
	uint256Ty = mustType("uint256", nil)
	boolTy    = mustType("bool", nil)
)

func mustType(name string, components []abi.Field) abi.Type {
	t, err := abi.ParseType(name, components)
	if err != nil {
		panic(err)
	}
	return t
}

// Selectors returns the standard selector -> Visualizer table for
// registration against chain/evm.Registry.RegisterSignature.
func Selectors() map[[4]byte]evm.Visualizer {
	return map[[4]byte]evm.Visualizer{
		abi.Selector4("transfer(address,uint256)"):                         evm.VisualizerFunc(visualizeTransfer),
		abi.Selector4("transferFrom(address,address,uint256)"):             evm.VisualizerFunc(visualizeTransferFrom),
		abi.Selector4("approve(address,uint256)"):                          evm.VisualizerFunc(visualizeApprove),
		abi.Selector4("safeTransferFrom(address,address,uint256)"):         evm.VisualizerFunc(visualizeERC721Transfer),
		abi.Selector4("safeTransferFrom(address,address,uint256,bytes)"):   evm.VisualizerFunc(visualizeERC721TransferWithData),
		abi.Selector4("safeTransferFrom(address,address,uint256,uint256,bytes)"): evm.VisualizerFunc(visualizeERC1155Transfer),
		abi.Selector4("setApprovalForAll(address,bool)"):                   evm.VisualizerFunc(visualizeSetApprovalForAll),
	}
}

func tokenLabel(ctx evm.VisualizerContext) (symbol string, decimals uint8, hasDecimals bool) {
	if ctx.Contracts != nil {
		if info, ok := ctx.Contracts.LookupEVM(ctx.ChainID, ctx.To); ok {
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
	abbrev := symbol
	fallback := amount
	if abbrev != "" {
		fallback = amount + " " + abbrev
	}
	return fields.NewAmountV2(label, amount, abbrev, fallback)
}

func visualizeTransfer(ctx evm.VisualizerContext) (fields.Field, error) {
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, uint256Ty})
	if err != nil {
		return fields.Field{}, err
	}
	to, amount := vals[0], vals[1]
	symbol, decimals, hasDecimals := tokenLabel(ctx)

	title := "Token Transfer"
	if symbol != "" {
		title = "Transfer " + symbol
	}
	condensed := fields.NewListLayout(
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Recipient", to.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func visualizeTransferFrom(ctx evm.VisualizerContext) (fields.Field, error) {
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, addressTy, uint256Ty})
	if err != nil {
		return fields.Field{}, err
	}
	from, to, amount := vals[0], vals[1], vals[2]
	symbol, decimals, hasDecimals := tokenLabel(ctx)

	title := "Token Transfer (delegated)"
	if symbol != "" {
		title = "Transfer " + symbol + " (delegated)"
	}
	condensed := fields.NewListLayout(
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("From", from.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("To", to.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func visualizeApprove(ctx evm.VisualizerContext) (fields.Field, error) {
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, uint256Ty})
	if err != nil {
		return fields.Field{}, err
	}
	spender, amount := vals[0], vals[1]
	symbol, decimals, hasDecimals := tokenLabel(ctx)

	title := "Token Approval"
	if symbol != "" {
		title = "Approve " + symbol
	}
	unlimited := amount.Int.Sign() > 0 && amount.Int.BitLen() >= 254
	condensed := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Spender", spender.Addr.Hex(), "", fields.AddressFieldOpts{})),
	)
	expandedFields := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("Spender", spender.Addr.Hex(), "", fields.AddressFieldOpts{})),
	}
	if unlimited {
		expandedFields = append(expandedFields, fields.Plain(fields.NewTextV2("Amount", "Unlimited")))
	} else {
		expandedFields = append(expandedFields, fields.Plain(amountField("Amount", amount, symbol, decimals, hasDecimals)))
	}
	expanded := fields.NewListLayout(expandedFields...)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func visualizeERC721Transfer(ctx evm.VisualizerContext) (fields.Field, error) {
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, addressTy, uint256Ty})
	if err != nil {
		return fields.Field{}, err
	}
	from, to, tokenID := vals[0], vals[1], vals[2]
	return nftTransferField(from, to, tokenID)
}

func visualizeERC721TransferWithData(ctx evm.VisualizerContext) (fields.Field, error) {
	bytesTy := mustType("bytes", nil)
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, addressTy, uint256Ty, bytesTy})
	if err != nil {
		return fields.Field{}, err
	}
	from, to, tokenID := vals[0], vals[1], vals[2]
	return nftTransferField(from, to, tokenID)
}

func visualizeERC1155Transfer(ctx evm.VisualizerContext) (fields.Field, error) {
	bytesTy := mustType("bytes", nil)
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, addressTy, uint256Ty, uint256Ty, bytesTy})
	if err != nil {
		return fields.Field{}, err
	}
	from, to, id, amount := vals[0], vals[1], vals[2], vals[3]

	title := "NFT Transfer (ERC-1155)"
	condensed := fields.NewListLayout(
		fields.Plain(fields.NewTextV2("Token ID", id.Int.String())),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("From", from.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("To", to.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2("Token ID", id.Int.String())),
		fields.Plain(fields.NewTextV2("Amount", amount.Int.String())),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func nftTransferField(from, to, tokenID abi.Value) (fields.Field, error) {
	title := "NFT Transfer"
	condensed := fields.NewListLayout(
		fields.Plain(fields.NewTextV2("Token ID", tokenID.Int.String())),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("From", from.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("To", to.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2("Token ID", tokenID.Int.String())),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func visualizeSetApprovalForAll(ctx evm.VisualizerContext) (fields.Field, error) {
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, boolTy})
	if err != nil {
		return fields.Field{}, err
	}
	operator, approved := vals[0], vals[1]

	status := "Revoked"
	if approved.Bool {
		status = "Approved"
	}
	title := "NFT Operator Approval"
	condensed := fields.NewListLayout(
		fields.Plain(fields.NewTextV2("Status", status)),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Operator", operator.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2("Status", status)),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}
