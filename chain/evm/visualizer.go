package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/registry"
)

// MaxDepth bounds visualizer recursion (multicalls, router commands, nested
// ABI tuples) the same way abi.MaxDepth bounds pure ABI decoding.
const MaxDepth = abi.MaxDepth

// VisualizerContext carries everything a contract visualizer needs to
// render one call: the matched selector, the remaining calldata, the call's
// destination/value/chain, the shared registries, and the current
// recursion depth.
type VisualizerContext struct {
	Selector     [4]byte
	CalldataTail []byte
	To           common.Address
	Value        *big.Int
	ChainID      uint64

	Abi       *abi.Registry
	Contracts *registry.ContractRegistry

	Depth int
}

// Sub returns a child context for a recursive sub-call (a router command, a
// multicall entry), incrementing Depth and erroring once MaxDepth is
// exceeded rather than recursing unbounded.
func (c VisualizerContext) Sub(selector [4]byte, tail []byte, to common.Address, value *big.Int) (VisualizerContext, error) {
	if c.Depth+1 > MaxDepth {
		return VisualizerContext{}, chainerr.NewMalformedCalldata(chainerr.RecursionDepthExceeded,
			"visualizer recursion exceeded depth %d", MaxDepth)
	}
	return VisualizerContext{
		Selector:     selector,
		CalldataTail: tail,
		To:           to,
		Value:        value,
		ChainID:      c.ChainID,
		Abi:          c.Abi,
		Contracts:    c.Contracts,
		Depth:        c.Depth + 1,
	}, nil
}

// Visualizer produces one semantic field for a known contract call.
type Visualizer interface {
	Visualize(ctx VisualizerContext) (fields.Field, error)
}

// VisualizerFunc adapts a plain function to the Visualizer interface.
type VisualizerFunc func(ctx VisualizerContext) (fields.Field, error)

func (f VisualizerFunc) Visualize(ctx VisualizerContext) (fields.Field, error) {
	return f(ctx)
}

type addressKey struct {
	ChainID uint64
	Address common.Address
}

// Registry maps (chain_id, to_address) to a Visualizer, with a
// signature-matched fallback table (hard-coded ERC-20/721/1155 selectors)
// consulted when no address match exists.
type Registry struct {
	byAddress   map[addressKey]Visualizer
	bySignature map[[4]byte]Visualizer
	abiRegistry *abi.Registry
	contracts   *registry.ContractRegistry
}

// NewRegistry returns an empty visualizer Registry backed by the given ABI
// and contract-metadata registries.
func NewRegistry(abiRegistry *abi.Registry, contracts *registry.ContractRegistry) *Registry {
	return &Registry{
		byAddress:   make(map[addressKey]Visualizer),
		bySignature: make(map[[4]byte]Visualizer),
		abiRegistry: abiRegistry,
		contracts:   contracts,
	}
}

// RegisterAddress maps a specific (chain_id, address) to a Visualizer. Used
// for known protocol contracts (Universal Router, Morpho Bundler, Aave Pool).
func (r *Registry) RegisterAddress(chainID uint64, addr common.Address, v Visualizer) {
	r.byAddress[addressKey{chainID, addr}] = v
}

// RegisterSignature maps a 4-byte selector to a Visualizer regardless of
// destination address. Used for the hard-coded ERC-20/721/1155 selector
// table: any contract exposing transfer(address,uint256) is rendered the
// same way whether or not its address is individually registered.
func (r *Registry) RegisterSignature(selector [4]byte, v Visualizer) {
	r.bySignature[selector] = v
}

// Dispatch resolves a call to a Visualizer following the fallback chain:
// address-match -> signature-match -> dynamic-ABI match -> unknown field.
func (r *Registry) Dispatch(chainID uint64, to common.Address, selector [4]byte, tail []byte, value *big.Int) fields.Field {
	ctx := VisualizerContext{
		Selector:     selector,
		CalldataTail: tail,
		To:           to,
		Value:        value,
		ChainID:      chainID,
		Abi:          r.abiRegistry,
		Contracts:    r.contracts,
		Depth:        0,
	}

	if v, ok := r.byAddress[addressKey{chainID, to}]; ok {
		if f, err := v.Visualize(ctx); err == nil {
			return f
		} else if !chainerr.IsDegradable(err) {
			return unknownCallField(selector, tail, err)
		}
	}

	if v, ok := r.bySignature[selector]; ok {
		if f, err := v.Visualize(ctx); err == nil {
			return f
		} else if !chainerr.IsDegradable(err) {
			return unknownCallField(selector, tail, err)
		}
	}

	if fn, err := r.abiRegistry.Lookup(chainID, to, selector); err == nil {
		if f, err := dynamicAbiField(fn, ctx); err == nil {
			return f
		} else {
			return unknownCallField(selector, tail, err)
		}
	}

	return unknownCallField(selector, tail, chainerr.NewResolutionError(chainerr.SelectorNotFound,
		"no visualizer, signature, or registered abi matches selector 0x%x at %s", selector, to.Hex()))
}

func unknownCallField(selector [4]byte, tail []byte, err error) fields.Field {
	data := append(append([]byte{}, selector[:]...), tail...)
	return fields.NewUnknown("Contract Call", data, err.Error())
}

// dynamicAbiField decodes a matched function's arguments and renders each
// one as a labeled, undecoded-semantics row: the dynamic-ABI fallback never
// understands protocol meaning, only shapes.
func dynamicAbiField(fn *abi.Function, ctx VisualizerContext) (fields.Field, error) {
	types := make([]abi.Type, len(fn.Inputs))
	for i, in := range fn.Inputs {
		types[i] = in.Type
	}
	vals, err := abi.DecodeArgs(ctx.CalldataTail, types)
	if err != nil {
		return fields.Field{}, err
	}

	children := make([]fields.AnnotatedField, 0, len(vals))
	for i, v := range vals {
		name := fn.Inputs[i].Name
		if name == "" {
			name = fn.Inputs[i].Type.CanonicalString()
		}
		children = append(children, fields.Plain(fields.NewTextV2(name, renderValue(v))))
	}

	condensed := fields.NewListLayout(fields.Plain(fields.NewTextV2("Function", fn.Name)))
	expanded := fields.NewListLayout(children...)
	return fields.NewPreviewLayout(fn.Name, fn.Name, "", condensed, expanded), nil
}

func renderValue(v abi.Value) string {
	switch v.Type.Kind {
	case abi.KindAddress:
		return v.Addr.Hex()
	case abi.KindUint, abi.KindInt:
		return v.Int.String()
	case abi.KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case abi.KindString:
		return v.Str
	case abi.KindBytes, abi.KindFixedBytes:
		return "0x" + hexString(v.Bytes)
	default:
		return "(complex value)"
	}
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
