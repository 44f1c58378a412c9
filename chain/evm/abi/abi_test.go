package abi

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const erc20ABI = `[
  {
    "type": "function",
    "name": "transfer",
    "inputs": [
      {"name": "to", "type": "address"},
      {"name": "amount", "type": "uint256"}
    ],
    "outputs": [{"name": "", "type": "bool"}]
  },
  {
    "type": "function",
    "name": "approve",
    "inputs": [
      {"name": "spender", "type": "address"},
      {"name": "amount", "type": "uint256"}
    ],
    "outputs": [{"name": "", "type": "bool"}]
  }
]`

func TestParseJSON_SelectorsMatchKeccak(t *testing.T) {
	t.Parallel()

	a, err := ParseJSON("ERC20", []byte(erc20ABI))
	require.NoError(t, err)
	require.Len(t, a.Functions, 2)

	fn, ok := a.FunctionBySelector([4]byte{0xa9, 0x05, 0x9c, 0xbb})
	require.True(t, ok)
	require.Equal(t, "transfer", fn.Name)
	require.Equal(t, "transfer(address,uint256)", fn.Signature())
}

func TestParseJSON_RejectsDuplicateSelectors(t *testing.T) {
	t.Parallel()

	dup := `[
		{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}]},
		{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}]}
	]`
	_, err := ParseJSON("dup", []byte(dup))
	require.Error(t, err)
}

func TestDecodeArgs_StaticAddressAndUint(t *testing.T) {
	t.Parallel()

	calldata, err := hex.DecodeString("a9059cbb000000000000000000000000123456789012345678901234567890123456789000000000000000000000000000000000000000000000000000000000000f4240")
	require.NoError(t, err)

	tail := calldata[4:]
	addrTy, err := ParseType("address", nil)
	require.NoError(t, err)
	uintTy, err := ParseType("uint256", nil)
	require.NoError(t, err)

	vals, err := DecodeArgs(tail, []Type{addrTy, uintTy})
	require.NoError(t, err)
	require.Len(t, vals, 2)
	require.Equal(t, "0x1234567890123456789012345678901234567890", vals[0].Addr.Hex())
	require.Equal(t, "1000000", vals[1].Int.String())
}

func TestDecodeArgs_DynamicBytesAndArray(t *testing.T) {
	t.Parallel()

	// encode a single `bytes` argument containing "hi" (2 bytes), hand-built
	// head (offset=0x20) + tail (length=2, data="hi" padded to 32 bytes).
	hexData := "0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000002" +
		"6869000000000000000000000000000000000000000000000000000000000000"
	data, err := hex.DecodeString(hexData)
	require.NoError(t, err)

	bytesTy, err := ParseType("bytes", nil)
	require.NoError(t, err)

	vals, err := DecodeArgs(data, []Type{bytesTy})
	require.NoError(t, err)
	require.Equal(t, []byte("hi"), vals[0].Bytes)
}

func TestDecodeArgs_OffsetOverflowDegrades(t *testing.T) {
	t.Parallel()

	bytesTy, err := ParseType("bytes", nil)
	require.NoError(t, err)

	// head word claims an offset far beyond the (empty) tail.
	badOffset := make([]byte, 32)
	badOffset[31] = 0xff
	_, err = DecodeArgs(badOffset, []Type{bytesTy})
	require.Error(t, err)
}

func TestType_CanonicalString_Tuple(t *testing.T) {
	t.Parallel()

	components := []Field{
		{Name: "a", Type: Type{Kind: KindAddress}},
		{Name: "b", Type: Type{Kind: KindUint, Bits: 256}},
	}
	tupleTy, err := ParseType("tuple", components)
	require.NoError(t, err)
	require.Equal(t, "(address,uint256)", tupleTy.CanonicalString())
	require.False(t, tupleTy.IsDynamic())
}

func TestRegistry_MapAddressRejectsUnregisteredAbi(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	a, err := ParseJSON("ERC20", []byte(erc20ABI))
	require.NoError(t, err)
	require.NoError(t, reg.RegisterAbi(a))

	var addr [20]byte
	addr[19] = 1
	require.Error(t, reg.MapAddress(1, addr, "NOT_REGISTERED"))
}
