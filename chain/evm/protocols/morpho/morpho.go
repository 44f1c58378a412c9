// Package morpho implements the Morpho Bundler multicall dispatcher:
// multicall(Call[]) where each Call carries its own target/data/value and
// is dispatched by the 4-byte prefix of its data against a small selector
// table. An unrecognized action renders as an unknown field carrying its
// raw data; the dynamic-ABI registry is not consulted for it.
package morpho

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/anchorageoss/visualsign-parser/chain/evm"
	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

var (
	addressTy = mustType("address")
	uint256Ty = mustType("uint256")
	bytesTy   = mustType("bytes")
)

func mustType(name string) abi.Type {
	t, err := abi.ParseType(name, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// callTupleType mirrors Morpho's Call struct:
// {target, data, value, skipRevert, callbackHash}.
func callTupleType() abi.Type {
	return abi.Type{Kind: abi.KindTuple, Components: []abi.Field{
		{Name: "target", Type: addressTy},
		{Name: "data", Type: bytesTy},
		{Name: "value", Type: uint256Ty},
		{Name: "skipRevert", Type: mustType("bool")},
		{Name: "callbackHash", Type: mustType("bytes32")},
	}}
}

// MulticallSelector is multicall((address,bytes,uint256,bool,bytes32)[]).
var MulticallSelector = abi.Selector4("multicall((address,bytes,uint256,bool,bytes32)[])")

var actionSelectors = map[[4]byte]string{
	abi.Selector4("permit(address,uint256,uint256,uint8,bytes32,bytes32)"):    "permit",
	abi.Selector4("erc20TransferFrom(address,uint256)"):                      "erc20TransferFrom",
	abi.Selector4("erc4626Deposit(address,uint256,uint256,address)"):         "erc4626Deposit",
	abi.Selector4("erc4626Withdraw(address,uint256,uint256,address,address)"): "erc4626Withdraw",
	abi.Selector4("morphoSupply(address,uint256,uint256,address,bytes)"):      "morphoSupply",
	abi.Selector4("morphoBorrow(address,uint256,uint256,address,address)"):    "morphoBorrow",
}

// Visualizer renders Morpho Bundler multicall() calls.
type Visualizer struct{}

// NewVisualizer returns the Morpho Bundler Visualizer for registration
// against chain/evm.Registry.RegisterAddress.
func NewVisualizer() evm.Visualizer { return Visualizer{} }

func (Visualizer) Visualize(ctx evm.VisualizerContext) (fields.Field, error) {
	if ctx.Selector != MulticallSelector {
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound,
			"morpho bundler: unrecognized selector 0x%x", ctx.Selector)
	}

	callArrTy := abi.Type{Kind: abi.KindDynArray, Elem: callTuplePtr()}
	vals, err := abi.DecodeArgs(ctx.CalldataTail, []abi.Type{callArrTy})
	if err != nil {
		return fields.Field{}, err
	}
	calls := vals[0].Array

	children := make([]fields.AnnotatedField, 0, len(calls))
	for _, call := range calls {
		target := call.Tuple[0].Addr
		data := call.Tuple[1].Bytes
		children = append(children, fields.Plain(visualizeAction(target, data)))
	}

	title := "Morpho Bundler"
	subtitle := actionsSummary(len(calls))
	condensed := fields.NewListLayout(fields.Plain(fields.NewTextV2("Actions", subtitle)))
	expanded := fields.NewListLayout(children...)
	return fields.NewPreviewLayout(title, title, subtitle, condensed, expanded), nil
}

func callTuplePtr() *abi.Type {
	t := callTupleType()
	return &t
}

func actionsSummary(n int) string {
	if n == 1 {
		return "1 action"
	}
	return itoa(n) + " actions"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// visualizeAction dispatches by the 4-byte prefix of a bundler Call's data
// against the action selector table; an unrecognized selector renders an
// unknown field carrying the raw data, per the required "fall through,
// never silently drop" behavior.
func visualizeAction(target common.Address, data []byte) fields.Field {
	if len(data) < 4 {
		return fields.NewUnknown("Bundler Action", data, "call data shorter than a selector")
	}
	var sel [4]byte
	copy(sel[:], data[:4])
	tail := data[4:]

	name, ok := actionSelectors[sel]
	if !ok {
		return fields.NewUnknown("Bundler Action", data,
			"Unrecognized bundler action 0x"+hexString(sel[:]))
	}

	f, err := decodeAction(name, target, tail)
	if err != nil {
		return fields.NewUnknown(name, data, err.Error())
	}
	return f
}

func decodeAction(name string, target common.Address, tail []byte) (fields.Field, error) {
	switch name {
	case "permit":
		vals, err := abi.DecodeArgs(tail, []abi.Type{addressTy, uint256Ty, uint256Ty, mustType("uint8"), mustType("bytes32"), mustType("bytes32")})
		if err != nil {
			return fields.Field{}, err
		}
		return actionField("Permit", target, []fields.AnnotatedField{
			fields.Plain(fields.NewAddressV2("Owner", vals[0].Addr.Hex(), "", fields.AddressFieldOpts{})),
			fields.Plain(fields.NewTextV2("Value", vals[1].Int.String())),
			fields.Plain(fields.NewTextV2("Deadline", vals[2].Int.String())),
		}), nil

	case "erc20TransferFrom":
		vals, err := abi.DecodeArgs(tail, []abi.Type{addressTy, uint256Ty})
		if err != nil {
			return fields.Field{}, err
		}
		return actionField("Transfer From", target, []fields.AnnotatedField{
			fields.Plain(fields.NewAddressV2("Asset", vals[0].Addr.Hex(), "", fields.AddressFieldOpts{})),
			fields.Plain(fields.NewTextV2("Amount", vals[1].Int.String())),
		}), nil

	case "erc4626Deposit":
		vals, err := abi.DecodeArgs(tail, []abi.Type{addressTy, uint256Ty, uint256Ty, addressTy})
		if err != nil {
			return fields.Field{}, err
		}
		return actionField("Vault Deposit", target, []fields.AnnotatedField{
			fields.Plain(fields.NewAddressV2("Vault", vals[0].Addr.Hex(), "", fields.AddressFieldOpts{})),
			fields.Plain(fields.NewTextV2("Assets", vals[1].Int.String())),
			fields.Plain(fields.NewTextV2("Min Shares", vals[2].Int.String())),
			fields.Plain(fields.NewAddressV2("Receiver", vals[3].Addr.Hex(), "", fields.AddressFieldOpts{})),
		}), nil

	case "erc4626Withdraw":
		vals, err := abi.DecodeArgs(tail, []abi.Type{addressTy, uint256Ty, uint256Ty, addressTy, addressTy})
		if err != nil {
			return fields.Field{}, err
		}
		return actionField("Vault Withdraw", target, []fields.AnnotatedField{
			fields.Plain(fields.NewAddressV2("Vault", vals[0].Addr.Hex(), "", fields.AddressFieldOpts{})),
			fields.Plain(fields.NewTextV2("Assets", vals[1].Int.String())),
			fields.Plain(fields.NewAddressV2("Receiver", vals[3].Addr.Hex(), "", fields.AddressFieldOpts{})),
			fields.Plain(fields.NewAddressV2("Owner", vals[4].Addr.Hex(), "", fields.AddressFieldOpts{})),
		}), nil

	case "morphoSupply":
		vals, err := abi.DecodeArgs(tail, []abi.Type{addressTy, uint256Ty, uint256Ty, addressTy, bytesTy})
		if err != nil {
			return fields.Field{}, err
		}
		return actionField("Morpho Supply", target, []fields.AnnotatedField{
			fields.Plain(fields.NewAddressV2("Market", vals[0].Addr.Hex(), "", fields.AddressFieldOpts{})),
			fields.Plain(fields.NewTextV2("Assets", vals[1].Int.String())),
			fields.Plain(fields.NewAddressV2("On Behalf Of", vals[3].Addr.Hex(), "", fields.AddressFieldOpts{})),
		}), nil

	case "morphoBorrow":
		vals, err := abi.DecodeArgs(tail, []abi.Type{addressTy, uint256Ty, uint256Ty, addressTy, addressTy})
		if err != nil {
			return fields.Field{}, err
		}
		return actionField("Morpho Borrow", target, []fields.AnnotatedField{
			fields.Plain(fields.NewAddressV2("Market", vals[0].Addr.Hex(), "", fields.AddressFieldOpts{})),
			fields.Plain(fields.NewTextV2("Assets", vals[1].Int.String())),
			fields.Plain(fields.NewAddressV2("On Behalf Of", vals[3].Addr.Hex(), "", fields.AddressFieldOpts{})),
			fields.Plain(fields.NewAddressV2("Receiver", vals[4].Addr.Hex(), "", fields.AddressFieldOpts{})),
		}), nil

	default:
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound, "unhandled bundler action %q", name)
	}
}

func actionField(title string, target common.Address, rows []fields.AnnotatedField) fields.Field {
	condensed := fields.NewListLayout(fields.Plain(fields.NewAddressV2("Target", target.Hex(), "", fields.AddressFieldOpts{})))
	expanded := fields.NewListLayout(append([]fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("Target", target.Hex(), "", fields.AddressFieldOpts{})),
	}, rows...)...)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded)
}

func hexString(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexdigits[c>>4]
		out[i*2+1] = hexdigits[c&0x0f]
	}
	return string(out)
}
