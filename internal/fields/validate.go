package fields

import (
	"encoding/hex"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
)

// Validate checks a single Field against its tagged-union invariants.
// index is the field's position within its containing list, used to build
// a ValidationError.
func (f Field) Validate(index int) error {
	if f.Type == "" {
		return chainerr.NewValidationError(index, "type tag is empty")
	}
	if f.FallbackText == "" {
		return chainerr.NewValidationError(index, "fallback_text is empty")
	}

	payloads := f.setPayloads()
	if len(payloads) == 0 {
		return chainerr.NewValidationError(index, "no payload set for type "+string(f.Type))
	}
	if len(payloads) > 1 {
		return chainerr.NewValidationError(index, "more than one payload variant set: "+joinStrings(payloads, ", "))
	}
	if payloads[0] != string(f.Type) {
		return chainerr.NewValidationError(index, "type tag "+string(f.Type)+" does not match populated payload "+payloads[0])
	}

	switch f.Type {
	case TypeText:
		if f.Text.Text == "" {
			return chainerr.NewValidationError(index, "text.Text is empty")
		}
	case TypeTextV2:
		if f.TextV2.Text == "" {
			return chainerr.NewValidationError(index, "text_v2.Text is empty")
		}
	case TypeAddress:
		if f.Address.Address == "" {
			return chainerr.NewValidationError(index, "address.Address is empty")
		}
	case TypeAddressV2:
		if f.AddressV2.Address == "" {
			return chainerr.NewValidationError(index, "address_v2.Address is empty")
		}
	case TypeAmount:
		if !properNumber(f.Amount.Amount) {
			return chainerr.NewValidationError(index, "amount.Amount is not a proper decimal number: "+f.Amount.Amount)
		}
	case TypeAmountV2:
		if !properNumber(f.AmountV2.Amount) {
			return chainerr.NewValidationError(index, "amount_v2.Amount is not a proper decimal number: "+f.AmountV2.Amount)
		}
	case TypeNumber:
		if f.Number.Number == "" {
			return chainerr.NewValidationError(index, "number.Number is empty")
		}
	case TypeDivider:
		// presentational only; no further constraints.
	case TypePreviewLayout:
		if f.PreviewLayout.Title == "" {
			return chainerr.NewValidationError(index, "preview_layout.Title is empty")
		}
		if err := validateCondensedIsFlat(f.PreviewLayout.Condensed); err != nil {
			return wrapIndex(err, index)
		}
		if err := f.PreviewLayout.Condensed.Validate(); err != nil {
			return wrapIndex(err, index)
		}
		if err := f.PreviewLayout.Expanded.Validate(); err != nil {
			return wrapIndex(err, index)
		}
	case TypeListLayout:
		if err := f.ListLayout.Validate(); err != nil {
			return wrapIndex(err, index)
		}
	case TypeUnknown:
		if _, err := hex.DecodeString(f.Unknown.Data); err != nil {
			return chainerr.NewValidationError(index, "unknown.Data is not valid hex: "+err.Error())
		}
		if f.Unknown.Explanation == "" {
			return chainerr.NewValidationError(index, "unknown.Explanation is empty")
		}
	default:
		return chainerr.NewValidationError(index, "unrecognized type tag: "+string(f.Type))
	}
	return nil
}

// validateCondensedIsFlat enforces that a preview_layout's Condensed tier
// may not itself contain a nested preview_layout field.
func validateCondensedIsFlat(condensed ListLayout) error {
	for i, af := range condensed.Fields {
		if af.Type == TypePreviewLayout {
			return chainerr.NewValidationError(i, "preview_layout.Condensed may not contain a nested preview_layout field")
		}
	}
	return nil
}

// Validate checks a ListLayout and every field it contains.
func (l ListLayout) Validate() error {
	for i, af := range l.Fields {
		if err := af.Field.Validate(i); err != nil {
			return err
		}
	}
	return nil
}

// wrapIndex re-anchors a nested ValidationError's field index onto the
// outer field's index when the nested error doesn't already carry useful
// positional information beyond "somewhere inside this field".
func wrapIndex(err error, outerIndex int) error {
	var ve *chainerr.ValidationError
	if as, ok := err.(*chainerr.ValidationError); ok {
		ve = as
		return chainerr.NewValidationError(outerIndex, ve.Reason)
	}
	return err
}

// setPayloads returns the Type tags of every non-nil payload pointer on f,
// used to enforce "exactly one payload variant is set".
func (f Field) setPayloads() []string {
	var out []string
	if f.Text != nil {
		out = append(out, string(TypeText))
	}
	if f.TextV2 != nil {
		out = append(out, string(TypeTextV2))
	}
	if f.Address != nil {
		out = append(out, string(TypeAddress))
	}
	if f.AddressV2 != nil {
		out = append(out, string(TypeAddressV2))
	}
	if f.Amount != nil {
		out = append(out, string(TypeAmount))
	}
	if f.AmountV2 != nil {
		out = append(out, string(TypeAmountV2))
	}
	if f.Number != nil {
		out = append(out, string(TypeNumber))
	}
	if f.Divider != nil {
		out = append(out, string(TypeDivider))
	}
	if f.PreviewLayout != nil {
		out = append(out, string(TypePreviewLayout))
	}
	if f.ListLayout != nil {
		out = append(out, string(TypeListLayout))
	}
	if f.Unknown != nil {
		out = append(out, string(TypeUnknown))
	}
	return out
}

func joinStrings(ss []string, sep string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += sep
		}
		out += s
	}
	return out
}
