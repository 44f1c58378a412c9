// Package svm decodes unsigned Solana transaction messages (legacy and v0)
// into a chain-agnostic instruction list, and dispatches each compiled
// instruction's program_id + data to a protocol visualizer registry.
//
// Address rendering reuses github.com/gagliardetto/solana-go's PublicKey
// type for base58 formatting, the same library the account registry uses
// for address conversion. The compact-u16/message envelope itself is
// decoded by hand: no library in the dependency set exposes a message
// decoder that degrades gracefully when address-table-lookup content has
// not been resolved, which this package must support since it is never
// allowed to perform network I/O to fetch lookup tables itself.
package svm

import (
	sollib "github.com/gagliardetto/solana-go"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
)

const pubkeyLen = 32

// MessageHeader carries the three signer/readonly counts every Solana
// message opens with.
type MessageHeader struct {
	NumRequiredSignatures      uint8
	NumReadonlySignedAccounts  uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction references accounts by index into the message's
// resolved account key list (static keys followed by ALT-resolved keys).
type CompiledInstruction struct {
	ProgramIDIndex int
	AccountIndexes []int
	Data           []byte
}

// AddressTableLookup is a v0-only reference to accounts held in an
// on-chain address lookup table, split into the writable and readonly
// indexes this message pulls from it.
type AddressTableLookup struct {
	AccountKey      sollib.PublicKey
	WritableIndexes []int
	ReadonlyIndexes []int
}

// Message is the decoded form of a legacy or v0 Solana transaction
// message. StaticAccountKeys holds only the keys carried directly in the
// message; accounts referenced through AddressTableLookups are not
// resolved here (see ResolveAccounts).
type Message struct {
	Version            int // -1 for legacy, 0 for v0
	Header              MessageHeader
	StaticAccountKeys    []sollib.PublicKey
	RecentBlockhash      [32]byte
	Instructions         []CompiledInstruction
	AddressTableLookups  []AddressTableLookup
}

// DecodeMessage parses a raw Solana message. A leading byte with its high
// bit set (0x80 | version) marks a versioned (v0) message; otherwise the
// message is legacy and begins directly with the header.
func DecodeMessage(data []byte) (*Message, error) {
	offset := 0
	version := -1

	if len(data) == 0 {
		return nil, chainerr.NewParseError(chainerr.TruncatedInput, "empty message")
	}
	if data[0]&0x80 != 0 {
		version = int(data[0] &^ 0x80)
		if version != 0 {
			return nil, chainerr.NewParseError(chainerr.UnsupportedTxType,
				"unsupported message version %d", version)
		}
		offset++
	}

	header, offset, err := readHeader(data, offset)
	if err != nil {
		return nil, err
	}

	keys, offset, err := readPublicKeyArray(data, offset)
	if err != nil {
		return nil, err
	}

	if offset+32 > len(data) {
		return nil, chainerr.NewParseErrorAt(chainerr.TruncatedInput, offset, "truncated recent_blockhash")
	}
	var blockhash [32]byte
	copy(blockhash[:], data[offset:offset+32])
	offset += 32

	instructions, offset, err := readInstructions(data, offset)
	if err != nil {
		return nil, err
	}

	var lookups []AddressTableLookup
	if version == 0 {
		lookups, offset, err = readAddressTableLookups(data, offset)
		if err != nil {
			return nil, err
		}
	}

	if offset != len(data) {
		return nil, chainerr.NewParseErrorAt(chainerr.TrailingData, offset,
			"%d trailing bytes after message", len(data)-offset)
	}

	return &Message{
		Version:             version,
		Header:              header,
		StaticAccountKeys:   keys,
		RecentBlockhash:     blockhash,
		Instructions:        instructions,
		AddressTableLookups: lookups,
	}, nil
}

func readHeader(data []byte, offset int) (MessageHeader, int, error) {
	if offset+3 > len(data) {
		return MessageHeader{}, 0, chainerr.NewParseErrorAt(chainerr.TruncatedInput, offset, "truncated message header")
	}
	h := MessageHeader{
		NumRequiredSignatures:       data[offset],
		NumReadonlySignedAccounts:   data[offset+1],
		NumReadonlyUnsignedAccounts: data[offset+2],
	}
	return h, offset + 3, nil
}

func readPublicKeyArray(data []byte, offset int) ([]sollib.PublicKey, int, error) {
	count, n, err := readCompactU16(data, offset)
	if err != nil {
		return nil, 0, err
	}
	offset += n

	keys := make([]sollib.PublicKey, 0, count)
	for i := 0; i < count; i++ {
		if offset+pubkeyLen > len(data) {
			return nil, 0, chainerr.NewParseErrorAt(chainerr.TruncatedInput, offset, "truncated account key %d", i)
		}
		keys = append(keys, sollib.PublicKeyFromBytes(data[offset:offset+pubkeyLen]))
		offset += pubkeyLen
	}
	return keys, offset, nil
}

func readInstructions(data []byte, offset int) ([]CompiledInstruction, int, error) {
	count, n, err := readCompactU16(data, offset)
	if err != nil {
		return nil, 0, err
	}
	offset += n

	instructions := make([]CompiledInstruction, 0, count)
	for i := 0; i < count; i++ {
		if offset >= len(data) {
			return nil, 0, chainerr.NewParseErrorAt(chainerr.TruncatedInput, offset, "truncated instruction %d", i)
		}
		programIDIndex := int(data[offset])
		offset++

		acctCount, n, err := readCompactU16(data, offset)
		if err != nil {
			return nil, 0, err
		}
		offset += n

		accounts := make([]int, 0, acctCount)
		for j := 0; j < acctCount; j++ {
			if offset >= len(data) {
				return nil, 0, chainerr.NewParseErrorAt(chainerr.TruncatedInput, offset, "truncated instruction %d account index %d", i, j)
			}
			accounts = append(accounts, int(data[offset]))
			offset++
		}

		dataLen, n, err := readCompactU16(data, offset)
		if err != nil {
			return nil, 0, err
		}
		offset += n

		if offset+dataLen > len(data) {
			return nil, 0, chainerr.NewParseErrorAt(chainerr.TruncatedInput, offset, "truncated instruction %d data", i)
		}
		ixData := make([]byte, dataLen)
		copy(ixData, data[offset:offset+dataLen])
		offset += dataLen

		instructions = append(instructions, CompiledInstruction{
			ProgramIDIndex: programIDIndex,
			AccountIndexes: accounts,
			Data:           ixData,
		})
	}
	return instructions, offset, nil
}

func readAddressTableLookups(data []byte, offset int) ([]AddressTableLookup, int, error) {
	count, n, err := readCompactU16(data, offset)
	if err != nil {
		return nil, 0, err
	}
	offset += n

	lookups := make([]AddressTableLookup, 0, count)
	for i := 0; i < count; i++ {
		if offset+pubkeyLen > len(data) {
			return nil, 0, chainerr.NewParseErrorAt(chainerr.TruncatedInput, offset, "truncated lookup table key %d", i)
		}
		key := sollib.PublicKeyFromBytes(data[offset : offset+pubkeyLen])
		offset += pubkeyLen

		writable, n, err := readIndexArray(data, offset)
		if err != nil {
			return nil, 0, err
		}
		offset += n

		readonly, n, err := readIndexArray(data, offset)
		if err != nil {
			return nil, 0, err
		}
		offset += n

		lookups = append(lookups, AddressTableLookup{
			AccountKey:      key,
			WritableIndexes: writable,
			ReadonlyIndexes: readonly,
		})
	}
	return lookups, offset, nil
}

func readIndexArray(data []byte, offset int) ([]int, int, error) {
	count, n, err := readCompactU16(data, offset)
	if err != nil {
		return nil, 0, err
	}
	consumed := n
	offset += n

	indexes := make([]int, 0, count)
	for i := 0; i < count; i++ {
		if offset >= len(data) {
			return nil, 0, chainerr.NewParseErrorAt(chainerr.TruncatedInput, offset, "truncated index array entry %d", i)
		}
		indexes = append(indexes, int(data[offset]))
		offset++
		consumed++
	}
	return indexes, consumed, nil
}

