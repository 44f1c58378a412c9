// Package abi implements EVM ABI v2 decoding: a type is a tagged tree
// (AbiType) rather than a deep class hierarchy; DecodeArgs converts it to
// go-ethereum's abi types and lets go-ethereum's UnpackValues do the
// head/tail offset decoding.
package abi

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the AbiType tree's variants.
type Kind int

const (
	KindUint Kind = iota
	KindInt
	KindAddress
	KindBool
	KindBytes  // dynamic
	KindString // dynamic
	KindFixedBytes
	KindFixedArray
	KindDynArray
	KindTuple
)

// Type is a node in the AbiType tree.
type Type struct {
	Kind Kind

	// Uint/Int
	Bits int

	// FixedBytes
	Size int

	// FixedArray/DynArray
	Elem *Type
	Len  int // FixedArray only

	// Tuple
	Components []Field
}

// Field is a named component of a tuple.
type Field struct {
	Name string
	Type Type
}

// IsDynamic reports whether t requires a head offset indirection rather
// than occupying a fixed number of head words in place.
func (t *Type) IsDynamic() bool {
	switch t.Kind {
	case KindBytes, KindString, KindDynArray:
		return true
	case KindFixedArray:
		return t.Elem.IsDynamic()
	case KindTuple:
		for _, c := range t.Components {
			if c.Type.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// StaticWords returns the number of 32-byte head words t occupies when it
// is NOT dynamic. Calling it on a dynamic type is a programmer error.
func (t *Type) StaticWords() int {
	switch t.Kind {
	case KindFixedArray:
		return t.Len * t.Elem.StaticWords()
	case KindTuple:
		n := 0
		for _, c := range t.Components {
			n += c.Type.StaticWords()
		}
		return n
	default:
		return 1
	}
}

// CanonicalString renders t the way canonical function signatures do:
// tuples flatten to "(a,b,c)", matching the form keccak256'd to derive a
// selector.
func (t *Type) CanonicalString() string {
	switch t.Kind {
	case KindUint:
		return "uint" + strconv.Itoa(t.Bits)
	case KindInt:
		return "int" + strconv.Itoa(t.Bits)
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(t.Size)
	case KindFixedArray:
		return fmt.Sprintf("%s[%d]", t.Elem.CanonicalString(), t.Len)
	case KindDynArray:
		return t.Elem.CanonicalString() + "[]"
	case KindTuple:
		parts := make([]string, len(t.Components))
		for i, c := range t.Components {
			parts[i] = c.Type.CanonicalString()
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return "?"
	}
}

// ParseType parses a Solidity-style type string ("uint256", "address[]",
// "bytes32[4]", "tuple", "tuple[]", ...) into an AbiType tree. components
// supplies the tuple's field descriptors when ty is "tuple" or a tuple
// array; it is ignored otherwise.
func ParseType(ty string, components []Field) (Type, error) {
	if idx := strings.LastIndex(ty, "["); idx != -1 && strings.HasSuffix(ty, "]") {
		elemTy, err := ParseType(ty[:idx], components)
		if err != nil {
			return Type{}, err
		}
		inner := ty[idx+1 : len(ty)-1]
		if inner == "" {
			return Type{Kind: KindDynArray, Elem: &elemTy}, nil
		}
		n, err := strconv.Atoi(inner)
		if err != nil || n < 0 {
			return Type{}, fmt.Errorf("invalid fixed array length in type %q", ty)
		}
		return Type{Kind: KindFixedArray, Elem: &elemTy, Len: n}, nil
	}

	switch {
	case ty == "address":
		return Type{Kind: KindAddress}, nil
	case ty == "bool":
		return Type{Kind: KindBool}, nil
	case ty == "bytes":
		return Type{Kind: KindBytes}, nil
	case ty == "string":
		return Type{Kind: KindString}, nil
	case ty == "tuple":
		return Type{Kind: KindTuple, Components: components}, nil
	case strings.HasPrefix(ty, "uint"):
		bits, err := parseWidth(ty, "uint")
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindUint, Bits: bits}, nil
	case strings.HasPrefix(ty, "int"):
		bits, err := parseWidth(ty, "int")
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindInt, Bits: bits}, nil
	case strings.HasPrefix(ty, "bytes"):
		sizeStr := strings.TrimPrefix(ty, "bytes")
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 || size > 32 {
			return Type{}, fmt.Errorf("invalid fixed bytes type %q", ty)
		}
		return Type{Kind: KindFixedBytes, Size: size}, nil
	default:
		return Type{}, fmt.Errorf("unrecognized abi type %q", ty)
	}
}

func parseWidth(ty, prefix string) (int, error) {
	rest := strings.TrimPrefix(ty, prefix)
	if rest == "" {
		return 256, nil
	}
	bits, err := strconv.Atoi(rest)
	if err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
		return 0, fmt.Errorf("invalid integer width in type %q", ty)
	}
	return bits, nil
}
