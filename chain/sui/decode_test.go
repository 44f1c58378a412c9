package sui

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func uleb128(n int) []byte {
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

func addr32(seed byte) []byte {
	b := make([]byte, 32)
	b[31] = seed
	return b
}

func u64le(n uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)
	return b
}

func TestDecodeProgrammableTransaction_MoveCallWithTransfer(t *testing.T) {
	t.Parallel()

	var buf []byte

	// inputs: 1 Pure input carrying a u64 amount
	buf = append(buf, uleb128(1)...)
	buf = append(buf, byte(CallArgPure))
	amountBytes := u64le(1_000_000)
	buf = append(buf, uleb128(len(amountBytes))...)
	buf = append(buf, amountBytes...)

	// commands: MoveCall(package, "cetus", "swap", [], [Input(0)]) then TransferObjects([Result(0)], GasCoin)
	buf = append(buf, uleb128(2)...)

	buf = append(buf, byte(CommandMoveCall))
	buf = append(buf, addr32(7)...)
	buf = append(buf, uleb128(len("cetus"))...)
	buf = append(buf, []byte("cetus")...)
	buf = append(buf, uleb128(len("swap"))...)
	buf = append(buf, []byte("swap")...)
	buf = append(buf, uleb128(0)...) // 0 type args
	buf = append(buf, uleb128(1)...) // 1 argument
	buf = append(buf, byte(ArgumentInput))
	buf = append(buf, 0, 0) // input index 0 (u16 LE)

	buf = append(buf, byte(CommandTransferObjects))
	buf = append(buf, uleb128(1)...)
	buf = append(buf, byte(ArgumentResult))
	buf = append(buf, 0, 0) // result index 0
	buf = append(buf, byte(ArgumentGasCoin))

	ptb, err := DecodeProgrammableTransaction(buf)
	require.NoError(t, err)
	require.Len(t, ptb.Inputs, 1)
	require.Equal(t, CallArgPure, ptb.Inputs[0].Kind)
	require.Len(t, ptb.Commands, 2)
	require.Equal(t, CommandMoveCall, ptb.Commands[0].Kind)
	require.Equal(t, "cetus", ptb.Commands[0].MoveCall.Module)
	require.Equal(t, "swap", ptb.Commands[0].MoveCall.Function)
	require.Equal(t, CommandTransferObjects, ptb.Commands[1].Kind)
	require.Equal(t, ArgumentGasCoin, ptb.Commands[1].TransferRecipient.Kind)
}

func TestDecodeProgrammableTransaction_RejectsTrailingBytes(t *testing.T) {
	t.Parallel()

	buf := append(uleb128(0), uleb128(0)...)
	buf = append(buf, 0xff)

	_, err := DecodeProgrammableTransaction(buf)
	require.Error(t, err)
}

func TestRegistry_UnknownPackageDegrades(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	call := ProgrammableMoveCall{Package: ObjectID(addrArray(addr32(9))), Module: "m", Function: "f"}
	f := r.visualizeMoveCall(&ProgrammableTransaction{}, call)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Unrecognized Move Call", f.PreviewLayout.Title)
}

func addrArray(b []byte) [32]byte {
	var out [32]byte
	copy(out[:], b)
	return out
}
