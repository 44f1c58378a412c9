package abi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
)

// Function is one entry of an ABI's function list.
type Function struct {
	Name     string
	Inputs   []Field
	Outputs  []Field
	Selector [4]byte
}

// Signature renders the canonical "name(type,type,...)" signature used to
// derive the selector.
func (f *Function) Signature() string {
	parts := make([]string, len(f.Inputs))
	for i, in := range f.Inputs {
		parts[i] = in.Type.CanonicalString()
	}
	sig := f.Name + "("
	for i, p := range parts {
		if i > 0 {
			sig += ","
		}
		sig += p
	}
	return sig + ")"
}

// Selector4 computes keccak256(signature)[0:4], the EVM function selector.
func Selector4(signature string) [4]byte {
	h := crypto.Keccak256([]byte(signature))
	var out [4]byte
	copy(out[:], h[:4])
	return out
}

// Abi is a registered set of function descriptors, selector-indexed.
type Abi struct {
	Name       string
	Functions  []Function
	bySelector map[[4]byte]*Function
}

// NewAbi computes each function's selector from its canonical signature and
// rejects selector collisions within the ABI.
func NewAbi(name string, functions []Function) (*Abi, error) {
	a := &Abi{Name: name, bySelector: make(map[[4]byte]*Function, len(functions))}
	for i := range functions {
		f := &functions[i]
		f.Selector = Selector4(f.Signature())
		if existing, ok := a.bySelector[f.Selector]; ok {
			return nil, chainerr.NewConfigError(chainerr.DuplicateSelector,
				"abi %q: functions %q and %q collide on selector 0x%x", name, existing.Name, f.Name, f.Selector)
		}
		a.bySelector[f.Selector] = f
	}
	a.Functions = functions
	return a, nil
}

// FunctionBySelector looks up a function by its 4-byte selector.
func (a *Abi) FunctionBySelector(selector [4]byte) (*Function, bool) {
	f, ok := a.bySelector[selector]
	return f, ok
}

type addressKey struct {
	ChainID uint64
	Address common.Address
}

// Registry holds name-indexed ABIs plus a (chain_id, address) -> ABI-name
// mapping for dynamic-fallback lookup.
type Registry struct {
	byName    map[string]*Abi
	byAddress map[addressKey]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:    make(map[string]*Abi),
		byAddress: make(map[addressKey]string),
	}
}

// RegisterAbi adds a named ABI to the registry.
func (r *Registry) RegisterAbi(abi *Abi) error {
	if _, exists := r.byName[abi.Name]; exists {
		return chainerr.NewConfigError(chainerr.MalformedAbiJSON, "abi %q already registered", abi.Name)
	}
	r.byName[abi.Name] = abi
	return nil
}

// MapAddress associates a (chain_id, address) pair with a previously
// registered ABI name.
func (r *Registry) MapAddress(chainID uint64, addr common.Address, abiName string) error {
	if _, ok := r.byName[abiName]; !ok {
		return chainerr.NewConfigError(chainerr.AddressMappingMalformed, "cannot map address %s: abi %q is not registered", addr.Hex(), abiName)
	}
	r.byAddress[addressKey{chainID, addr}] = abiName
	return nil
}

// Lookup resolves a (chain_id, address, selector) triple to a Function,
// for the dynamic-ABI fallback path of contract-call decoding.
func (r *Registry) Lookup(chainID uint64, addr common.Address, selector [4]byte) (*Function, error) {
	name, ok := r.byAddress[addressKey{chainID, addr}]
	if !ok {
		return nil, chainerr.NewResolutionError(chainerr.AbiNotRegistered, "no abi mapped for %s on chain %d", addr.Hex(), chainID)
	}
	abi, ok := r.byName[name]
	if !ok {
		return nil, chainerr.NewResolutionError(chainerr.AbiNotRegistered, "abi %q mapped for %s is not registered", name, addr.Hex())
	}
	fn, ok := abi.FunctionBySelector(selector)
	if !ok {
		return nil, chainerr.NewResolutionError(chainerr.SelectorNotFound, "selector 0x%x not found in abi %q", selector, name)
	}
	return fn, nil
}

// AbiByName returns a previously registered ABI, for callers that need the
// parsed descriptor rather than a selector lookup.
func (r *Registry) AbiByName(name string) (*Abi, bool) {
	a, ok := r.byName[name]
	return a, ok
}

func (a *Abi) String() string {
	return fmt.Sprintf("Abi{%s, %d functions}", a.Name, len(a.Functions))
}
