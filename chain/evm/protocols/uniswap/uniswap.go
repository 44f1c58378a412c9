// Package uniswap implements the Uniswap Universal Router command
// dispatcher and a standalone Permit2 visualizer for permit/permitBatch
// calls issued directly against the Permit2 contract.
package uniswap

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/anchorageoss/visualsign-parser/chain/evm"
	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

// Command bytes from the Universal Router's dispatcher, kept exact to
// remain byte-compatible with on-chain calldata.
const (
	CmdV3SwapExactIn    byte = 0x00
	CmdV3SwapExactOut   byte = 0x01
	CmdPermit2TransferFrom byte = 0x02
	CmdSweep            byte = 0x04
	CmdTransfer         byte = 0x05
	CmdPayPortion       byte = 0x06
	CmdV2SwapExactIn    byte = 0x08
	CmdV2SwapExactOut   byte = 0x09
	CmdPermit2Permit    byte = 0x0A
	CmdWrapEth          byte = 0x0B
	CmdUnwrapWeth       byte = 0x0C
)

var commandNames = map[byte]string{
	CmdV3SwapExactIn:       "V3_SWAP_EXACT_IN",
	CmdV3SwapExactOut:      "V3_SWAP_EXACT_OUT",
	CmdPermit2TransferFrom: "PERMIT2_TRANSFER_FROM",
	CmdSweep:               "SWEEP",
	CmdTransfer:            "TRANSFER",
	CmdPayPortion:          "PAY_PORTION",
	CmdV2SwapExactIn:       "V2_SWAP_EXACT_IN",
	CmdV2SwapExactOut:      "V2_SWAP_EXACT_OUT",
	CmdPermit2Permit:       "PERMIT2_PERMIT",
	CmdWrapEth:             "WRAP_ETH",
	CmdUnwrapWeth:          "UNWRAP_WETH",
}

var (
	addressTy  = mustType("address")
	uint256Ty  = mustType("uint256")
	uint160Ty  = mustType("uint160")
	boolTy     = mustType("bool")
	bytesTy    = mustType("bytes")
	addrArrTy  = mustArrayType(addressTy)
)

func mustType(name string) abi.Type {
	t, err := abi.ParseType(name, nil)
	if err != nil {
		panic(err)
	}
	return t
}

func mustArrayType(elem abi.Type) abi.Type {
	return abi.Type{Kind: abi.KindDynArray, Elem: &elem}
}

// ExecuteSelector is execute(bytes,bytes[],uint256).
var ExecuteSelector = abi.Selector4("execute(bytes,bytes[],uint256)")

// ExecuteNoDeadlineSelector is execute(bytes,bytes[]).
var ExecuteNoDeadlineSelector = abi.Selector4("execute(bytes,bytes[])")

// Visualizer renders Universal Router execute() calls.
type Visualizer struct{}

// NewVisualizer returns the Universal Router Visualizer for registration
// against chain/evm.Registry.RegisterAddress.
func NewVisualizer() evm.Visualizer { return Visualizer{} }

func (Visualizer) Visualize(ctx evm.VisualizerContext) (fields.Field, error) {
	var types []abi.Type
	switch ctx.Selector {
	case ExecuteSelector:
		types = []abi.Type{bytesTy, mustArrayType(bytesTy), uint256Ty}
	case ExecuteNoDeadlineSelector:
		types = []abi.Type{bytesTy, mustArrayType(bytesTy)}
	default:
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound,
			"universal router: unrecognized selector 0x%x", ctx.Selector)
	}

	vals, err := abi.DecodeArgs(ctx.CalldataTail, types)
	if err != nil {
		return fields.Field{}, err
	}
	commands := vals[0].Bytes
	inputsArr := vals[1].Array

	if len(commands) != len(inputsArr) {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch,
			"universal router: %d commands but %d inputs", len(commands), len(inputsArr))
	}

	children := make([]fields.AnnotatedField, 0, len(commands))
	condensedNames := make([]string, 0, len(commands))
	for i, cmd := range commands {
		childCtx, err := ctx.Sub(ctx.Selector, inputsArr[i].Bytes, ctx.To, ctx.Value)
		if err != nil {
			return fields.Field{}, err
		}
		f := visualizeCommand(cmd, inputsArr[i].Bytes, childCtx)
		children = append(children, fields.Plain(f))
		condensedNames = append(condensedNames, commandLabel(cmd))
	}

	title := "Uniswap Universal Router"
	subtitle := joinLabels(condensedNames)
	condensed := fields.NewListLayout(fields.Plain(fields.NewTextV2("Commands", subtitle)))
	expanded := fields.NewListLayout(children...)
	return fields.NewPreviewLayout(title, title, subtitle, condensed, expanded), nil
}

func commandLabel(cmd byte) string {
	if name, ok := commandNames[cmd]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02x)", cmd)
}

func joinLabels(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " → "
		}
		out += n
	}
	return out
}

func visualizeCommand(cmd byte, input []byte, ctx evm.VisualizerContext) fields.Field {
	var (
		f   fields.Field
		err error
	)
	switch cmd {
	case CmdV3SwapExactIn, CmdV3SwapExactOut:
		f, err = visualizeV3Swap(cmd, input)
	case CmdV2SwapExactIn, CmdV2SwapExactOut:
		f, err = visualizeV2Swap(cmd, input)
	case CmdWrapEth, CmdUnwrapWeth:
		f, err = visualizeWrapUnwrap(cmd, input)
	case CmdSweep, CmdTransfer, CmdPayPortion:
		f, err = visualizeTokenMove(cmd, input)
	case CmdPermit2TransferFrom:
		f, err = visualizePermit2TransferFrom(input)
	case CmdPermit2Permit:
		f, err = visualizePermit2PermitInline(input)
	default:
		err = chainerr.NewResolutionError(chainerr.SelectorNotFound, "unrecognized router command 0x%02x", cmd)
	}
	if err != nil {
		data := append([]byte{cmd}, input...)
		return fields.NewUnknown(commandLabel(cmd), data, err.Error())
	}
	return f
}

func visualizeWrapUnwrap(cmd byte, input []byte) (fields.Field, error) {
	vals, err := abi.DecodeArgs(input, []abi.Type{addressTy, uint256Ty})
	if err != nil {
		return fields.Field{}, err
	}
	title := "Wrap ETH"
	if cmd == CmdUnwrapWeth {
		title = "Unwrap WETH"
	}
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Recipient", vals[0].Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2("Amount Min", vals[1].Int.String())),
	)
	return fields.NewPreviewLayout(title, title, "", expanded, expanded), nil
}

func visualizeTokenMove(cmd byte, input []byte) (fields.Field, error) {
	vals, err := abi.DecodeArgs(input, []abi.Type{addressTy, addressTy, uint256Ty})
	if err != nil {
		return fields.Field{}, err
	}
	title := commandLabel(cmd)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Token", vals[0].Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("Recipient", vals[1].Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2("Amount", vals[2].Int.String())),
	)
	return fields.NewPreviewLayout(title, title, "", expanded, expanded), nil
}

func visualizePermit2TransferFrom(input []byte) (fields.Field, error) {
	vals, err := abi.DecodeArgs(input, []abi.Type{addressTy, addressTy, uint160Ty})
	if err != nil {
		return fields.Field{}, err
	}
	title := "Permit2 Transfer"
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Token", vals[0].Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("Recipient", vals[1].Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2("Amount", vals[2].Int.String())),
	)
	return fields.NewPreviewLayout(title, title, "", expanded, expanded), nil
}

// permitSingleType mirrors IAllowanceTransfer.PermitSingle:
// {details:{token,amount,expiration,nonce}, spender, sigDeadline}.
func permitSingleType() abi.Type {
	details := abi.Type{Kind: abi.KindTuple, Components: []abi.Field{
		{Name: "token", Type: addressTy},
		{Name: "amount", Type: uint160Ty},
		{Name: "expiration", Type: mustType("uint48")},
		{Name: "nonce", Type: mustType("uint48")},
	}}
	return abi.Type{Kind: abi.KindTuple, Components: []abi.Field{
		{Name: "details", Type: details},
		{Name: "spender", Type: addressTy},
		{Name: "sigDeadline", Type: uint256Ty},
	}}
}

func visualizePermit2PermitInline(input []byte) (fields.Field, error) {
	vals, err := abi.DecodeArgs(input, []abi.Type{permitSingleType(), bytesTy})
	if err != nil {
		return fields.Field{}, err
	}
	return permit2PermitField(vals[0])
}

// Permit2Visualizer renders standalone Permit2.permit/permitBatch calls
// issued directly against the Permit2 contract (not via the router).
type Permit2Visualizer struct{}

// NewPermit2Visualizer returns the Permit2 Visualizer for registration
// against chain/evm.Registry.RegisterAddress.
func NewPermit2Visualizer() evm.Visualizer { return Permit2Visualizer{} }

var permitSelector = abi.Selector4("permit(address,((address,uint160,uint48,uint48),address,uint256),bytes)")
var permitBatchSelector = abi.Selector4("permitBatch(address,((address,uint160,uint48,uint48)[],address,uint256),bytes)")

func (Permit2Visualizer) Visualize(ctx evm.VisualizerContext) (fields.Field, error) {
	switch ctx.Selector {
	case permitSelector:
		vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{addressTy, permitSingleType(), bytesTy})
		if err != nil {
			return fields.Field{}, err
		}
		return permit2PermitOwnerField(vals[0], vals[1])
	case permitBatchSelector:
		return permit2PermitBatchField(ctx)
	default:
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound,
			"permit2: unrecognized selector 0x%x", ctx.Selector)
	}
}

func permit2PermitField(permitSingle abi.Value) (fields.Field, error) {
	details := permitSingle.Tuple[0]
	spender := permitSingle.Tuple[1]
	token := details.Tuple[0]
	amount := details.Tuple[1]

	title := "Permit2 Permit"
	condensed := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Spender", spender.Addr.Hex(), "", fields.AddressFieldOpts{})),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Token", token.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("Spender", spender.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2("Amount", amount.Int.String())),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func permit2PermitOwnerField(owner abi.Value, permitSingle abi.Value) (fields.Field, error) {
	details := permitSingle.Tuple[0]
	spender := permitSingle.Tuple[1]
	token := details.Tuple[0]
	amount := details.Tuple[1]

	title := "Permit2 Permit"
	condensed := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Spender", spender.Addr.Hex(), "", fields.AddressFieldOpts{})),
	)
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Owner", owner.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("Token", token.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("Spender", spender.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2("Amount", amount.Int.String())),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func permit2PermitBatchField(ctx evm.VisualizerContext) (fields.Field, error) {
	title := "Permit2 Permit Batch"
	fallback := fields.NewTextV2(title, "batch token allowance permit")
	return fields.NewPreviewLayout(title, title, "",
		fields.NewListLayout(fields.Plain(fallback)),
		fields.NewListLayout(fields.Plain(fallback)),
	), nil
}

// V3Path decodes a Uniswap v3 packed path (address, then repeating
// (uint24 fee, address) pairs) into a flat list of ["token", fee, "token", ...].
func V3Path(path []byte) ([]string, error) {
	const addrLen = 20
	const feeLen = 3
	if len(path) < addrLen {
		return nil, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "v3 path too short")
	}
	out := []string{common.BytesToAddress(path[:addrLen]).Hex()}
	rest := path[addrLen:]
	for len(rest) > 0 {
		if len(rest) < feeLen+addrLen {
			return nil, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "v3 path has a partial hop")
		}
		fee := new(big.Int).SetBytes(rest[:feeLen])
		out = append(out, fee.String())
		out = append(out, common.BytesToAddress(rest[feeLen:feeLen+addrLen]).Hex())
		rest = rest[feeLen+addrLen:]
	}
	return out, nil
}

func visualizeV3Swap(cmd byte, input []byte) (fields.Field, error) {
	vals, err := abi.DecodeArgs(input, []abi.Type{addressTy, uint256Ty, uint256Ty, bytesTy, boolTy})
	if err != nil {
		return fields.Field{}, err
	}
	recipient, amount, amountLimit, path, payerIsUser := vals[0], vals[1], vals[2], vals[3], vals[4]
	hops, err := V3Path(path.Bytes)
	if err != nil {
		return fields.Field{}, err
	}

	title := "V3 Swap Exact In"
	amountLabel, limitLabel := "Amount In", "Amount Out Min"
	if cmd == CmdV3SwapExactOut {
		title = "V3 Swap Exact Out"
		amountLabel, limitLabel = "Amount Out", "Amount In Max"
	}

	condensed := fields.NewListLayout(fields.Plain(fields.NewTextV2("Path", joinLabels(hops))))
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Recipient", recipient.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2(amountLabel, amount.Int.String())),
		fields.Plain(fields.NewTextV2(limitLabel, amountLimit.Int.String())),
		fields.Plain(fields.NewTextV2("Path", joinLabels(hops))),
		fields.Plain(fields.NewTextV2("Payer Is User", boolString(payerIsUser.Bool))),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func visualizeV2Swap(cmd byte, input []byte) (fields.Field, error) {
	vals, err := abi.DecodeArgs(input, []abi.Type{addressTy, uint256Ty, uint256Ty, addrArrTy, boolTy})
	if err != nil {
		return fields.Field{}, err
	}
	recipient, amount, amountLimit, path, payerIsUser := vals[0], vals[1], vals[2], vals[3], vals[4]

	hops := make([]string, len(path.Array))
	for i, a := range path.Array {
		hops[i] = a.Addr.Hex()
	}

	title := "V2 Swap Exact In"
	amountLabel, limitLabel := "Amount In", "Amount Out Min"
	if cmd == CmdV2SwapExactOut {
		title = "V2 Swap Exact Out"
		amountLabel, limitLabel = "Amount Out", "Amount In Max"
	}

	condensed := fields.NewListLayout(fields.Plain(fields.NewTextV2("Path", joinLabels(hops))))
	expanded := fields.NewListLayout(
		fields.Plain(fields.NewAddressV2("Recipient", recipient.Addr.Hex(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2(amountLabel, amount.Int.String())),
		fields.Plain(fields.NewTextV2(limitLabel, amountLimit.Int.String())),
		fields.Plain(fields.NewTextV2("Path", joinLabels(hops))),
		fields.Plain(fields.NewTextV2("Payer Is User", boolString(payerIsUser.Bool))),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
