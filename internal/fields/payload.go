package fields

import (
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
)

// CurrentVersion is the schema version: numeric but serialized as a
// string. Held constant until a schema bump is defined.
const CurrentVersion = 0

// MaxPayloadSize is the default ceiling on a raw unsigned transaction's byte
// length accepted by any codec, guarding against unbounded allocation from
// attacker-controlled input before a single byte is parsed.
const MaxPayloadSize = 1 << 20 // 1 MiB

// SignablePayload is the exact artifact a hardware signer or policy engine
// shows to a user for approval.
type SignablePayload struct {
	Version              int
	Title                string
	Subtitle             string // empty means absent
	PayloadType          string
	Fields               []Field
	EndorsedParamsDigest []byte // nil means absent
}

// New builds a SignablePayload at the current schema version.
func New(payloadType, title, subtitle string, fields []Field) *SignablePayload {
	return &SignablePayload{
		Version:     CurrentVersion,
		Title:       title,
		Subtitle:    subtitle,
		PayloadType: payloadType,
		Fields:      fields,
	}
}

// Validate checks every field in the payload. A failing field aborts
// validation of the whole payload: partial SignablePayloads are never
// returned.
func (p *SignablePayload) Validate() error {
	if p.PayloadType == "" {
		return chainerr.NewValidationError(-1, "payload_type is empty")
	}
	if p.Title == "" {
		return chainerr.NewValidationError(-1, "title is empty")
	}
	for i, f := range p.Fields {
		if err := f.Validate(i); err != nil {
			return err
		}
	}
	return nil
}
