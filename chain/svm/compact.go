package svm

import "github.com/anchorageoss/visualsign-parser/internal/chainerr"

// readCompactU16 decodes Solana's shortvec/compact-u16 encoding: a LEB128-ish
// varint over at most 3 bytes, the low 7 bits of each byte carrying value and
// the high bit signaling continuation. It returns the decoded value and the
// number of bytes consumed.
func readCompactU16(data []byte, offset int) (value int, consumed int, err error) {
	var result int
	for i := 0; i < 3; i++ {
		if offset+i >= len(data) {
			return 0, 0, chainerr.NewParseError(chainerr.TruncatedInput,
				"truncated compact-u16 at byte %d", offset)
		}
		b := data[offset+i]
		result |= int(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
	}
	return 0, 0, chainerr.NewParseErrorAt(chainerr.UnknownCompact, offset,
		"compact-u16 exceeds 3 bytes")
}
