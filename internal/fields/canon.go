package fields

import (
	"encoding/json"
	"strconv"
)

// CanonicalJSON serializes the payload deterministically: object keys
// sorted lexicographically at every depth, arrays in insertion order,
// Version as a JSON string, optional fields omitted when empty, no
// whitespace.
//
// encoding/json already sorts map[string]any keys before writing and never
// inserts whitespace for json.Marshal (as opposed to MarshalIndent), so
// building the payload as nested map[string]any/[]any and calling
// json.Marshal gives exactly that guarantee with no extra canonical-JSON
// library pulled in.
func (p *SignablePayload) CanonicalJSON() ([]byte, error) {
	return json.Marshal(p.toMap())
}

func (p *SignablePayload) toMap() map[string]any {
	m := map[string]any{
		"version":      strconv.Itoa(p.Version),
		"title":        p.Title,
		"payload_type": p.PayloadType,
		"fields":       fieldsToSlice(p.Fields),
	}
	if p.Subtitle != "" {
		m["subtitle"] = p.Subtitle
	}
	if len(p.EndorsedParamsDigest) > 0 {
		m["endorsed_params_digest"] = hexEncode(p.EndorsedParamsDigest)
	}
	return m
}

func fieldsToSlice(fs []Field) []any {
	out := make([]any, len(fs))
	for i, f := range fs {
		out[i] = f.toMap()
	}
	return out
}

func annotatedFieldsToSlice(fs []AnnotatedField) []any {
	out := make([]any, len(fs))
	for i, f := range fs {
		out[i] = f.toMap()
	}
	return out
}

func (f Field) toMap() map[string]any {
	m := map[string]any{
		"label":         f.Label,
		"fallback_text": f.FallbackText,
		"type":          string(f.Type),
	}
	payloadKey, payload := f.payloadMap()
	if payloadKey != "" {
		m[payloadKey] = payload
	}
	return m
}

func (f Field) payloadMap() (string, map[string]any) {
	switch f.Type {
	case TypeText:
		return "text", map[string]any{"text": f.Text.Text}
	case TypeTextV2:
		return "text_v2", map[string]any{"text": f.TextV2.Text}
	case TypeAddress:
		return "address", addressMap(f.Address)
	case TypeAddressV2:
		return "address_v2", addressMap(f.AddressV2)
	case TypeAmount:
		return "amount", amountMap(f.Amount)
	case TypeAmountV2:
		return "amount_v2", amountMap(f.AmountV2)
	case TypeNumber:
		return "number", map[string]any{"number": f.Number.Number}
	case TypeDivider:
		return "divider", map[string]any{"style": f.Divider.Style}
	case TypePreviewLayout:
		pl := f.PreviewLayout
		out := map[string]any{
			"title":     pl.Title,
			"condensed": layoutMap(pl.Condensed),
			"expanded":  layoutMap(pl.Expanded),
		}
		if pl.Subtitle != "" {
			out["subtitle"] = pl.Subtitle
		}
		return "preview_layout", out
	case TypeListLayout:
		return "list_layout", layoutMap(*f.ListLayout)
	case TypeUnknown:
		return "unknown", map[string]any{"data": f.Unknown.Data, "explanation": f.Unknown.Explanation}
	default:
		return "", nil
	}
}

func addressMap(a *AddressPayload) map[string]any {
	out := map[string]any{
		"address":     a.Address,
		"name":        a.Name,
		"asset_label": a.AssetLabel,
	}
	if a.Memo != "" {
		out["memo"] = a.Memo
	}
	if a.BadgeText != "" {
		out["badge_text"] = a.BadgeText
	}
	return out
}

func amountMap(a *AmountPayload) map[string]any {
	out := map[string]any{"amount": a.Amount}
	if a.Abbreviation != "" {
		out["abbreviation"] = a.Abbreviation
	}
	return out
}

func layoutMap(l ListLayout) map[string]any {
	return map[string]any{"fields": annotatedFieldsToSlice(l.Fields)}
}

func (af AnnotatedField) toMap() map[string]any {
	m := af.Field.toMap()
	if af.StaticAnnotation != nil {
		m["static_annotation"] = map[string]any{"text": af.StaticAnnotation.Text}
	}
	if af.DynamicAnnotation != nil {
		params := af.DynamicAnnotation.Params
		if params == nil {
			params = []string{}
		}
		m["dynamic_annotation"] = map[string]any{
			"type":   af.DynamicAnnotation.Type,
			"id":     af.DynamicAnnotation.ID,
			"params": params,
		}
	}
	return m
}
