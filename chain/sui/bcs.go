// Package sui BCS-decodes an unsigned Sui ProgrammableTransaction: its
// inputs (pure values and object references) and its command list (MoveCall,
// TransferObjects, SplitCoins, MergeCoins, Publish, MakeMoveVec, Upgrade),
// then dispatches each MoveCall to a protocol visualizer registry keyed by
// package id.
package sui

import "github.com/anchorageoss/visualsign-parser/internal/chainerr"

// decoder is a cursor over BCS-encoded bytes. BCS has no offset table like
// EVM ABI encoding; every value is read in strict field order, so a decoder
// only ever needs a single advancing read position.
type decoder struct {
	data []byte
	pos  int
}

func newDecoder(data []byte) *decoder {
	return &decoder{data: data}
}

func (d *decoder) remaining() int { return len(d.data) - d.pos }

func (d *decoder) readByte() (byte, error) {
	if d.remaining() < 1 {
		return 0, chainerr.NewParseErrorAt(chainerr.TruncatedInput, d.pos, "expected 1 byte")
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readBytes(n int) ([]byte, error) {
	if d.remaining() < n {
		return nil, chainerr.NewParseErrorAt(chainerr.TruncatedInput, d.pos, "expected %d bytes, have %d", n, d.remaining())
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) readBool() (bool, error) {
	b, err := d.readByte()
	if err != nil {
		return false, err
	}
	if b > 1 {
		return false, chainerr.NewParseErrorAt(chainerr.BadBCS, d.pos-1, "bool byte must be 0 or 1, got %d", b)
	}
	return b == 1, nil
}

func (d *decoder) readU8() (uint8, error) {
	b, err := d.readByte()
	return uint8(b), err
}

func (d *decoder) readU16() (uint16, error) {
	b, err := d.readBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (d *decoder) readU32() (uint32, error) {
	b, err := d.readBytes(4)
	if err != nil {
		return 0, err
	}
	var v uint32
	for i := 3; i >= 0; i-- {
		v = v<<8 | uint32(b[i])
	}
	return v, nil
}

func (d *decoder) readU64() (uint64, error) {
	b, err := d.readBytes(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// readULEB128 decodes BCS's variable-length unsigned integer, used for
// collection lengths and enum variant tags.
func (d *decoder) readULEB128() (int, error) {
	var result uint64
	var shift uint
	for i := 0; i < 9; i++ {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return int(result), nil
		}
		shift += 7
	}
	return 0, chainerr.NewParseErrorAt(chainerr.BadBCS, d.pos, "uleb128 exceeds 9 bytes")
}

// readVectorLength decodes a BCS vector/sequence's uleb128 length prefix
// and bounds it by the decoder's remaining bytes: every element encodes to
// at least one byte, so a declared length greater than what's left in the
// buffer can only be a corrupt or adversarial input, not a real vector.
// Call sites that preallocate a slice sized by this length (readCallArgVector,
// readArgumentVector, readCommandVector, struct/move-call type-param lists,
// publish module/dependency lists) use this instead of readULEB128 directly.
func (d *decoder) readVectorLength() (int, error) {
	n, err := d.readULEB128()
	if err != nil {
		return 0, err
	}
	if n > d.remaining() {
		return 0, chainerr.NewParseErrorAt(chainerr.BadBCS, d.pos, "vector length %d exceeds %d remaining bytes", n, d.remaining())
	}
	return n, nil
}

func (d *decoder) readAddress() ([32]byte, error) {
	var out [32]byte
	b, err := d.readBytes(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// readByteVector decodes Vec<u8>: a uleb128 length prefix followed by that
// many raw bytes.
func (d *decoder) readByteVector() ([]byte, error) {
	n, err := d.readULEB128()
	if err != nil {
		return nil, err
	}
	return d.readBytes(n)
}

func (d *decoder) readString() (string, error) {
	b, err := d.readByteVector()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
