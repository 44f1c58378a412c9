// Package fields implements the SignablePayload field model: a tagged union
// of field variants, the validation rules that every emitted field must
// satisfy, and deterministic canonical-JSON serialization.
//
// The "exactly one payload matches Type" invariant is normally expressed in
// Go with a discriminated union of optional pointer fields and a Validate
// method, rather than an interface-per-variant, so that a Field value can be
// passed around and JSON-shaped without a type switch at every call site.
package fields

import (
	"github.com/anchorageoss/visualsign-parser/internal/numfmt"
)

// Type is the discriminant tag of a SignablePayloadField.
type Type string

const (
	TypeText          Type = "text"
	TypeTextV2        Type = "text_v2"
	TypeAddress       Type = "address"
	TypeAddressV2     Type = "address_v2"
	TypeAmount        Type = "amount"
	TypeAmountV2      Type = "amount_v2"
	TypeNumber        Type = "number"
	TypeDivider       Type = "divider"
	TypePreviewLayout Type = "preview_layout"
	TypeListLayout    Type = "list_layout"
	TypeUnknown       Type = "unknown"
)

// TextPayload backs both the legacy text and text_v2 variants.
type TextPayload struct {
	Text string
}

// AddressPayload backs both the legacy address and address_v2 variants.
type AddressPayload struct {
	Address    string
	Name       string
	Memo       string // empty means absent
	AssetLabel string
	BadgeText  string // empty means absent
}

// AmountPayload backs both the legacy amount and amount_v2 variants.
type AmountPayload struct {
	Amount       string
	Abbreviation string // empty means absent
}

// NumberPayload is the number variant's payload.
type NumberPayload struct {
	Number string
}

// DividerPayload is the divider variant's payload.
type DividerPayload struct {
	Style string
}

// PreviewLayoutPayload is the preview_layout variant's payload.
type PreviewLayoutPayload struct {
	Title     string
	Subtitle  string // empty means absent
	Condensed ListLayout
	Expanded  ListLayout
}

// ListLayoutPayload is the list_layout variant's payload.
type ListLayoutPayload struct {
	Fields []AnnotatedField
}

// ListLayout is an alias used by PreviewLayoutPayload for its two tiers.
type ListLayout = ListLayoutPayload

// UnknownPayload is the unknown variant's payload: raw undecoded bytes plus
// a human explanation of why they could not be decoded.
type UnknownPayload struct {
	Data        string // hex-encoded, no 0x prefix
	Explanation string
}

// Field is a tagged union matching exactly one of the payload types below.
// Exactly the payload matching Type must be non-nil; Validate enforces
// this.
type Field struct {
	Label        string
	FallbackText string
	Type         Type

	Text          *TextPayload
	TextV2        *TextPayload
	Address       *AddressPayload
	AddressV2     *AddressPayload
	Amount        *AmountPayload
	AmountV2      *AmountPayload
	Number        *NumberPayload
	Divider       *DividerPayload
	PreviewLayout *PreviewLayoutPayload
	ListLayout    *ListLayoutPayload
	Unknown       *UnknownPayload
}

// StaticAnnotation carries a fixed display string alongside a field.
type StaticAnnotation struct {
	Text string
}

// DynamicAnnotation carries a wallet-resolved annotation reference.
type DynamicAnnotation struct {
	Type   string
	ID     string
	Params []string
}

// AnnotatedField augments a Field with an optional static or dynamic
// annotation. At most one of the two should be set; both being set is not a
// validation error by spec, but visualizers in this module never set both.
type AnnotatedField struct {
	Field
	StaticAnnotation  *StaticAnnotation
	DynamicAnnotation *DynamicAnnotation
}

// Plain wraps a Field with no annotation.
func Plain(f Field) AnnotatedField {
	return AnnotatedField{Field: f}
}

// WithStaticAnnotation wraps a Field with a static annotation.
func WithStaticAnnotation(f Field, text string) AnnotatedField {
	return AnnotatedField{Field: f, StaticAnnotation: &StaticAnnotation{Text: text}}
}

// WithDynamicAnnotation wraps a Field with a dynamic annotation.
func WithDynamicAnnotation(f Field, typ, id string, params []string) AnnotatedField {
	return AnnotatedField{Field: f, DynamicAnnotation: &DynamicAnnotation{Type: typ, ID: id, Params: params}}
}

// NewTextV2 builds a text_v2 field.
func NewTextV2(label, text string) Field {
	return Field{
		Label:        label,
		FallbackText: text,
		Type:         TypeTextV2,
		TextV2:       &TextPayload{Text: text},
	}
}

// AddressFieldOpts configures the optional members of an address_v2 field.
type AddressFieldOpts struct {
	Memo       string
	BadgeText  string
	AssetLabel string
}

// NewAddressV2 builds an address_v2 field.
func NewAddressV2(label, address, name string, opts AddressFieldOpts) Field {
	fallback := address
	if name != "" {
		fallback = name + " (" + address + ")"
	}
	return Field{
		Label:        label,
		FallbackText: fallback,
		Type:         TypeAddressV2,
		AddressV2: &AddressPayload{
			Address:    address,
			Name:       name,
			Memo:       opts.Memo,
			AssetLabel: opts.AssetLabel,
			BadgeText:  opts.BadgeText,
		},
	}
}

// NewAmountV2 builds an amount_v2 field. fallback is the full human string,
// e.g. "1.5 WETH" or "110000.00 USDT (raw units)".
func NewAmountV2(label, amount, abbreviation, fallback string) Field {
	return Field{
		Label:        label,
		FallbackText: fallback,
		Type:         TypeAmountV2,
		AmountV2:     &AmountPayload{Amount: amount, Abbreviation: abbreviation},
	}
}

// NewNumber builds a number field. display carries the human-readable form
// into FallbackText.
func NewNumber(label, number, display string) Field {
	return Field{
		Label:        label,
		FallbackText: display,
		Type:         TypeNumber,
		Number:       &NumberPayload{Number: number},
	}
}

// NewDivider builds a divider field.
func NewDivider(style string) Field {
	return Field{
		Label:        "",
		FallbackText: "---",
		Type:         TypeDivider,
		Divider:      &DividerPayload{Style: style},
	}
}

// NewListLayout builds a list_layout value out of already-annotated fields.
func NewListLayout(fields ...AnnotatedField) ListLayout {
	if fields == nil {
		fields = []AnnotatedField{}
	}
	return ListLayout{Fields: fields}
}

// NewPreviewLayout builds a preview_layout field. condensed must contain
// only flat (non-preview_layout) fields; Validate enforces this.
func NewPreviewLayout(label, title, subtitle string, condensed, expanded ListLayout) Field {
	fallback := title
	if subtitle != "" {
		fallback = title + " — " + subtitle
	}
	return Field{
		Label:        label,
		FallbackText: fallback,
		Type:         TypePreviewLayout,
		PreviewLayout: &PreviewLayoutPayload{
			Title:     title,
			Subtitle:  subtitle,
			Condensed: condensed,
			Expanded:  expanded,
		},
	}
}

// NewUnknown builds an unknown field out of raw (un-decoded) bytes plus an
// explanation of why they could not be rendered semantically. This is the
// required degrade path for ResolutionError/MalformedCalldata at a sub-call
// site.
func NewUnknown(label string, data []byte, explanation string) Field {
	hexData := hexEncode(data)
	return Field{
		Label:        label,
		FallbackText: explanation,
		Type:         TypeUnknown,
		Unknown:      &UnknownPayload{Data: hexData, Explanation: explanation},
	}
}

func hexEncode(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexdigits[c>>4]
		out[i*2+1] = hexdigits[c&0x0f]
	}
	return string(out)
}

// properNumber is Validate's check for amount strings, delegating to
// numfmt.IsSignedProperNumber.
func properNumber(s string) bool {
	return numfmt.IsSignedProperNumber(s)
}
