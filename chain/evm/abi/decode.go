package abi

import (
	"math/big"
	"reflect"
	"strconv"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
)

// MaxDepth bounds ABI tuple/array recursion depth.
const MaxDepth = 16

// Value is a decoded ABI argument. Exactly the member matching Type.Kind is
// populated, mirroring the Field model's own tagged-union shape.
type Value struct {
	Type Type

	Int   *big.Int // Uint, Int
	Bool  bool
	Addr  common.Address
	Bytes []byte // Bytes, FixedBytes
	Str   string
	Array []Value // FixedArray, DynArray
	Tuple []Value // Tuple, aligned with Type.Components
}

// DecodeArgs decodes a flat parameter list against its encoded calldata
// tail (the bytes after the 4-byte selector).
//
// The actual word-offset arithmetic is go-ethereum's: types is translated
// into gethabi.Arguments (the same Arguments type
// experimental/analyzer's EVMTxCallDecoder feeds to UnpackIntoMap) and
// unpacked with Arguments.UnpackValues, the head/tail cursor and dynamic-
// offset bounds checks coming from go-ethereum/accounts/abi rather than a
// parallel reimplementation of them. What remains here is translating this
// package's own Type tree to gethabi's type-string-plus-components form
// going in, and walking the reflect.Value results back into Value coming
// out, the same walk experimental/analyzer's decodeStruct/decodeArray do
// over UnpackIntoMap's output.
func DecodeArgs(data []byte, types []Type) ([]Value, error) {
	if depth := maxTypeDepth(types, 0); depth > MaxDepth {
		return nil, chainerr.NewMalformedCalldata(chainerr.RecursionDepthExceeded, "tuple/array nesting exceeded depth %d", MaxDepth)
	}

	args := make(gethabi.Arguments, len(types))
	for i, t := range types {
		gt, err := toGethType(&t)
		if err != nil {
			return nil, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "argument %d: %s", i, err.Error())
		}
		args[i] = gethabi.Argument{Type: gt}
	}

	raw, err := args.UnpackValues(data)
	if err != nil {
		return nil, classifyUnpackError(err)
	}
	if len(raw) != len(types) {
		return nil, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "unpacked %d values for %d arguments", len(raw), len(types))
	}

	vals := make([]Value, len(types))
	for i := range types {
		v, err := fromGeth(&types[i], raw[i], 0)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// classifyUnpackError maps go-ethereum's accounts/abi unpack errors onto
// this package's taxonomy. The package doesn't export granular sentinel
// errors for its various malformed-calldata conditions (short buffer,
// offset past the end, negative length), so the mapping is best-effort by
// message, the same approach chain/evm's classifyUnmarshalError takes for
// go-ethereum's RLP decode errors.
func classifyUnpackError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "outside the data bounds") || strings.Contains(msg, "offset"):
		return chainerr.NewMalformedCalldata(chainerr.OffsetOverflow, "abi decode: %s", msg)
	default:
		return chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "abi decode: %s", msg)
	}
}

// toGethType translates a Type into go-ethereum's own abi.Type, the same
// type-string-plus-ArgumentMarshaling-components shape a Solidity ABI JSON
// document produces and abi.NewType parses.
func toGethType(t *Type) (gethabi.Type, error) {
	return gethabi.NewType(arrayTypeString(t), "", baseComponents(t))
}

// arrayTypeString renders t's gethabi type string: array/tuple suffixes
// stay ("[3]", "[]"), but a tuple's own field list is carried separately
// via components rather than spelled out in the string, matching how
// Solidity ABI JSON splits "type":"tuple[]" from its own "components".
func arrayTypeString(t *Type) string {
	switch t.Kind {
	case KindFixedArray:
		return arrayTypeString(t.Elem) + "[" + strconv.Itoa(t.Len) + "]"
	case KindDynArray:
		return arrayTypeString(t.Elem) + "[]"
	case KindTuple:
		return "tuple"
	default:
		return t.CanonicalString()
	}
}

// baseComponents returns the ArgumentMarshaling components for t's
// innermost tuple, looking through any wrapping array dimensions the way
// gethabi.NewType expects (components describe the tuple element, not the
// array around it).
func baseComponents(t *Type) []gethabi.ArgumentMarshaling {
	switch t.Kind {
	case KindFixedArray, KindDynArray:
		return baseComponents(t.Elem)
	case KindTuple:
		return componentsToMarshaling(t.Components)
	default:
		return nil
	}
}

func componentsToMarshaling(fields []Field) []gethabi.ArgumentMarshaling {
	out := make([]gethabi.ArgumentMarshaling, len(fields))
	for i, f := range fields {
		out[i] = gethabi.ArgumentMarshaling{
			Name:       f.Name,
			Type:       arrayTypeString(&f.Type),
			Components: baseComponents(&f.Type),
		}
	}
	return out
}

func maxTypeDepth(types []Type, depth int) int {
	max := depth
	for i := range types {
		d := typeDepth(&types[i], depth)
		if d > max {
			max = d
		}
	}
	return max
}

func typeDepth(t *Type, depth int) int {
	switch t.Kind {
	case KindFixedArray, KindDynArray:
		return typeDepth(t.Elem, depth+1)
	case KindTuple:
		max := depth
		for _, c := range t.Components {
			if d := typeDepth(&c.Type, depth+1); d > max {
				max = d
			}
		}
		return max
	default:
		return depth
	}
}

// fromGeth walks a value UnpackValues produced (a *big.Int, bool,
// common.Address, []byte/[N]byte array, string, slice, or generated
// anonymous struct for a tuple) back into this package's own tagged Value
// tree, by Type and by position rather than by struct field name: gethabi
// generates its tuple structs with capitalized field names in the same
// order the ABI's components were given, so walking by index keeps this
// independent of whatever exact capitalization gethabi picked.
func fromGeth(t *Type, v any, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, chainerr.NewMalformedCalldata(chainerr.RecursionDepthExceeded, "tuple/array nesting exceeded depth %d", MaxDepth)
	}

	switch t.Kind {
	case KindUint, KindInt:
		// go-ethereum unpacks integer types <=64 bits into the matching
		// sized Go int/uint kind (uint8, int32, ...) rather than *big.Int,
		// reserving *big.Int for widths it can't fit in a machine word.
		n, ok := toBigInt(v)
		if !ok {
			return Value{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "expected integer for %s", t.CanonicalString())
		}
		return Value{Type: *t, Int: n}, nil

	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return Value{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "expected bool for %s", t.CanonicalString())
		}
		return Value{Type: *t, Bool: b}, nil

	case KindAddress:
		a, ok := v.(common.Address)
		if !ok {
			return Value{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "expected address for %s", t.CanonicalString())
		}
		return Value{Type: *t, Addr: a}, nil

	case KindBytes:
		b, ok := v.([]byte)
		if !ok {
			return Value{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "expected bytes for %s", t.CanonicalString())
		}
		return Value{Type: *t, Bytes: b}, nil

	case KindString:
		s, ok := v.(string)
		if !ok {
			return Value{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "expected string for %s", t.CanonicalString())
		}
		return Value{Type: *t, Str: s}, nil

	case KindFixedBytes:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Array {
			return Value{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "expected fixed bytes for %s", t.CanonicalString())
		}
		b := make([]byte, t.Size)
		for i := 0; i < t.Size && i < rv.Len(); i++ {
			b[i] = byte(rv.Index(i).Uint())
		}
		return Value{Type: *t, Bytes: b}, nil

	case KindFixedArray, KindDynArray:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return Value{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "expected array for %s", t.CanonicalString())
		}
		elems := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := fromGeth(t.Elem, rv.Index(i).Interface(), depth+1)
			if err != nil {
				return Value{}, err
			}
			elems[i] = ev
		}
		return Value{Type: *t, Array: elems}, nil

	case KindTuple:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Struct || rv.NumField() != len(t.Components) {
			return Value{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "expected %d-field tuple for %s", len(t.Components), t.CanonicalString())
		}
		vals := make([]Value, len(t.Components))
		for i, c := range t.Components {
			fv, err := fromGeth(&c.Type, rv.Field(i).Interface(), depth+1)
			if err != nil {
				return Value{}, err
			}
			vals[i] = fv
		}
		return Value{Type: *t, Tuple: vals}, nil

	default:
		return Value{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "type %s has no decoder", t.CanonicalString())
	}
}

// toBigInt normalizes any of go-ethereum's integer unpack results (a native
// sized int/uint kind for widths up to 64 bits, *big.Int beyond that) to
// *big.Int, the width this package's Value.Int always carries regardless of
// the declared bit width.
func toBigInt(v any) (*big.Int, bool) {
	if n, ok := v.(*big.Int); ok {
		return n, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return new(big.Int).SetUint64(rv.Uint()), true
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return big.NewInt(rv.Int()), true
	default:
		return nil, false
	}
}
