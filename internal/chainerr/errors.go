// Package chainerr defines the error taxonomy shared by every chain codec,
// visualizer, and the dispatcher. Kinds are stable strings, not Go types, so
// that an error can cross an RPC boundary and still be matched by kind.
package chainerr

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel wrapped by every ValidationError. It is
// always an internal bug: a visualizer produced a field that violates the
// field model's own invariants.
var ErrValidation = errors.New("signable payload field failed validation")

// ParseErrorKind enumerates the ways chain-codec input can fail to parse.
type ParseErrorKind string

const (
	TrailingData      ParseErrorKind = "trailing_data"
	TruncatedInput    ParseErrorKind = "truncated_input"
	NonMinimalRLP     ParseErrorKind = "non_minimal_rlp"
	UnsupportedTxType ParseErrorKind = "unsupported_tx_type"
	BadBase58         ParseErrorKind = "bad_base58"
	BadHex            ParseErrorKind = "bad_hex"
	BadProtobuf       ParseErrorKind = "bad_protobuf"
	BadBCS            ParseErrorKind = "bad_bcs"
	UnknownCompact    ParseErrorKind = "unknown_compact_array"
	PayloadTooLarge   ParseErrorKind = "payload_too_large"
)

// ParseError means the raw bytes do not match the chain's wire format.
// It always aborts the whole response.
type ParseError struct {
	Kind   ParseErrorKind
	Offset int // byte offset where detected, -1 if not applicable
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parse error (%s) at byte %d: %s", e.Kind, e.Offset, e.Msg)
	}
	return fmt.Sprintf("parse error (%s): %s", e.Kind, e.Msg)
}

// NewParseError builds a ParseError with no specific byte offset.
func NewParseError(kind ParseErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Offset: -1, Msg: fmt.Sprintf(format, args...)}
}

// NewParseErrorAt builds a ParseError anchored at a specific byte offset.
func NewParseErrorAt(kind ParseErrorKind, offset int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// ResolutionErrorKind enumerates identifiers that could not be resolved.
type ResolutionErrorKind string

const (
	AltUnresolved         ResolutionErrorKind = "alt_unresolved"
	AccountIndexOutOfRange ResolutionErrorKind = "account_index_out_of_range"
	SelectorNotFound      ResolutionErrorKind = "selector_not_found"
	AbiNotRegistered      ResolutionErrorKind = "abi_not_registered"
)

// ResolutionError means an identifier (account index, ALT entry, selector,
// ABI name) could not be resolved. At a sub-call site this degrades the call
// to an unknown field rather than aborting the response.
type ResolutionError struct {
	Kind ResolutionErrorKind
	Msg  string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution error (%s): %s", e.Kind, e.Msg)
}

func NewResolutionError(kind ResolutionErrorKind, format string, args ...any) *ResolutionError {
	return &ResolutionError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// CalldataErrorKind enumerates ways a matched selector's arguments fail to
// decode against its ABI.
type CalldataErrorKind string

const (
	OffsetOverflow        CalldataErrorKind = "offset_overflow"
	LengthMismatch         CalldataErrorKind = "length_mismatch"
	RecursionDepthExceeded CalldataErrorKind = "recursion_depth_exceeded"
)

// MalformedCalldata means the selector matched but the argument bytes could
// not be decoded. Like ResolutionError, this degrades a single call to an
// unknown field; it never aborts the outer response.
type MalformedCalldata struct {
	Kind CalldataErrorKind
	Msg  string
}

func (e *MalformedCalldata) Error() string {
	return fmt.Sprintf("malformed calldata (%s): %s", e.Kind, e.Msg)
}

func NewMalformedCalldata(kind CalldataErrorKind, format string, args ...any) *MalformedCalldata {
	return &MalformedCalldata{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ValidationError means an emitted field violates the field model's own
// invariants. This is always a bug in a visualizer or the assembly code,
// never a consequence of attacker-controlled input, and it is fatal: the
// whole SignablePayload is discarded rather than returned partially valid.
type ValidationError struct {
	FieldIndex int
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: field %d: %s", ErrValidation, e.FieldIndex, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(fieldIndex int, reason string) *ValidationError {
	return &ValidationError{FieldIndex: fieldIndex, Reason: reason}
}

// ConfigErrorKind enumerates registration-time configuration failures.
type ConfigErrorKind string

const (
	DuplicateSelector      ConfigErrorKind = "duplicate_selector"
	MalformedAbiJSON       ConfigErrorKind = "malformed_abi_json"
	AddressMappingMalformed ConfigErrorKind = "address_mapping_malformed"
)

// ConfigError is raised while registering an ABI, contract mapping, or
// visualizer, never while parsing a transaction.
type ConfigError struct {
	Kind ConfigErrorKind
	Msg  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error (%s): %s", e.Kind, e.Msg)
}

func NewConfigError(kind ConfigErrorKind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsDegradable reports whether err should degrade a single sub-call to an
// unknown{} field (ResolutionError, MalformedCalldata) rather than aborting
// the whole parse (ParseError, ValidationError).
func IsDegradable(err error) bool {
	var resErr *ResolutionError
	var calldataErr *MalformedCalldata
	return errors.As(err, &resErr) || errors.As(err, &calldataErr)
}
