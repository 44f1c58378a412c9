package svm

import (
	"testing"

	sollib "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func compactU16(n int) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

func buildLegacyMessage(t *testing.T, keys []sollib.PublicKey, instrs []CompiledInstruction) []byte {
	t.Helper()
	var buf []byte
	buf = append(buf, 1, 0, 1) // 1 signer, 0 readonly signed, 1 readonly unsigned
	buf = append(buf, compactU16(len(keys))...)
	for _, k := range keys {
		buf = append(buf, k.Bytes()...)
	}
	buf = append(buf, make([]byte, 32)...) // recent_blockhash
	buf = append(buf, compactU16(len(instrs))...)
	for _, ix := range instrs {
		buf = append(buf, byte(ix.ProgramIDIndex))
		buf = append(buf, compactU16(len(ix.AccountIndexes))...)
		for _, a := range ix.AccountIndexes {
			buf = append(buf, byte(a))
		}
		buf = append(buf, compactU16(len(ix.Data))...)
		buf = append(buf, ix.Data...)
	}
	return buf
}

func TestDecodeMessage_Legacy_RoundTrips(t *testing.T) {
	t.Parallel()

	signer := sollib.PublicKeyFromBytes(make([]byte, 32))
	program := sollib.PublicKeyFromBytes(append(make([]byte, 31), 1))
	readonly := sollib.PublicKeyFromBytes(append(make([]byte, 31), 2))

	raw := buildLegacyMessage(t, []sollib.PublicKey{signer, program, readonly}, []CompiledInstruction{
		{ProgramIDIndex: 1, AccountIndexes: []int{0, 2}, Data: []byte{9, 9, 9}},
	})

	msg, err := DecodeMessage(raw)
	require.NoError(t, err)
	require.Equal(t, -1, msg.Version)
	require.Len(t, msg.StaticAccountKeys, 3)
	require.Len(t, msg.Instructions, 1)
	require.Equal(t, []byte{9, 9, 9}, msg.Instructions[0].Data)

	resolved, err := msg.ResolveAccounts(nil)
	require.NoError(t, err)
	require.Len(t, resolved, 3)
	require.True(t, resolved[0].Signer)
	require.True(t, resolved[0].Writable)
	require.False(t, resolved[2].Writable) // last key is readonly-unsigned
}

func TestDecodeMessage_V0_UnresolvedALT_DecodesButResolveFails(t *testing.T) {
	t.Parallel()

	signer := sollib.PublicKeyFromBytes(make([]byte, 32))
	program := sollib.PublicKeyFromBytes(append(make([]byte, 31), 1))

	legacyPart := buildLegacyMessage(t, []sollib.PublicKey{signer, program}, []CompiledInstruction{
		{ProgramIDIndex: 1, AccountIndexes: []int{0}, Data: []byte{1}},
	})

	lookupTable := sollib.PublicKeyFromBytes(append(make([]byte, 31), 3))
	var buf []byte
	buf = append(buf, 0x80) // version 0
	buf = append(buf, legacyPart...)
	buf = append(buf, compactU16(1)...) // one address table lookup
	buf = append(buf, lookupTable.Bytes()...)
	buf = append(buf, compactU16(1)...) // 1 writable index
	buf = append(buf, 0)
	buf = append(buf, compactU16(0)...) // 0 readonly indexes

	msg, err := DecodeMessage(buf)
	require.NoError(t, err)
	require.Equal(t, 0, msg.Version)
	require.Len(t, msg.AddressTableLookups, 1)

	_, err = msg.ResolveAccounts(nil)
	require.Error(t, err)

	resolved, err := msg.ResolveAccounts(map[string]LookupTableContent{
		lookupTable.String(): {Addresses: []sollib.PublicKey{program}},
	})
	require.NoError(t, err)
	require.Len(t, resolved, 3)
}
