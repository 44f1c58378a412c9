package morpho

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-parser/chain/evm"
	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

func word(n *big.Int) []byte {
	b := make([]byte, 32)
	nb := n.Bytes()
	copy(b[32-len(nb):], nb)
	return b
}

func wordUint(n uint64) []byte { return word(new(big.Int).SetUint64(n)) }

func wordAddr(a common.Address) []byte {
	b := make([]byte, 32)
	copy(b[12:], a.Bytes())
	return b
}

func wordBool(v bool) []byte {
	if v {
		return wordUint(1)
	}
	return wordUint(0)
}

func padTo32(b []byte) []byte {
	if rem := len(b) % 32; rem != 0 {
		b = append(b, make([]byte, 32-rem)...)
	}
	return b
}

func encodeBytes(b []byte) []byte {
	out := wordUint(uint64(len(b)))
	return append(out, padTo32(append([]byte{}, b...))...)
}

// encodeCall builds one Bundler Call tuple's encoding: {target, data, value,
// skipRevert, callbackHash}. data is the only dynamic component, so the
// tuple itself is dynamic and carries its own 5-word head plus a tail.
func encodeCall(target common.Address, data []byte, value *big.Int, skipRevert bool, callbackHash [32]byte) []byte {
	head := append([]byte{}, wordAddr(target)...)
	head = append(head, wordUint(5*32)...) // offset to data, relative to this tuple's own start
	head = append(head, word(value)...)
	head = append(head, wordBool(skipRevert)...)
	head = append(head, callbackHash[:]...)
	return append(head, encodeBytes(data)...)
}

// encodeCallArray encodes Call[]: a count word, n offset words (relative to
// the position right after the count word), then each tuple's own encoding.
func encodeCallArray(calls ...[]byte) []byte {
	base := uint64(32 * len(calls))
	var head, tail []byte
	for _, c := range calls {
		head = append(head, wordUint(base+uint64(len(tail)))...)
		tail = append(tail, c...)
	}
	out := wordUint(uint64(len(calls)))
	out = append(out, head...)
	return append(out, tail...)
}

// encodeMulticall builds calldata for multicall((address,bytes,uint256,bool,bytes32)[]):
// a single dynamic argument, so a 1-word head (offset 32) followed by the
// array's own encoding.
func encodeMulticall(calls ...[]byte) []byte {
	return append(wordUint(32), encodeCallArray(calls...)...)
}

func actionData(selector [4]byte, tail []byte) []byte {
	return append(append([]byte{}, selector[:]...), tail...)
}

func TestVisualize_MulticallWithRecognizedAndUnrecognizedAction(t *testing.T) {
	t.Parallel()

	morphoMarket := common.HexToAddress("0x00000000000000000000000000000000000bee")
	asset := common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	bundler := common.HexToAddress("0x4095F064B8d3c3548A3bebfd0Bbfd04750E30077")

	transferFromSel := abi.Selector4("erc20TransferFrom(address,uint256)")
	transferFromTail := append(wordAddr(asset), wordUint(1_000_000_000)...)
	recognizedCall := encodeCall(
		bundler,
		actionData(transferFromSel, transferFromTail),
		big.NewInt(0),
		false,
		[32]byte{},
	)

	unrecognizedCall := encodeCall(
		morphoMarket,
		[]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02},
		big.NewInt(0),
		false,
		[32]byte{},
	)

	calldata := encodeMulticall(recognizedCall, unrecognizedCall)

	ctx := evm.VisualizerContext{
		Selector:     MulticallSelector,
		CalldataTail: calldata,
		To:           bundler,
		Value:        big.NewInt(0),
		ChainID:      1,
	}

	f, err := Visualizer{}.Visualize(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Morpho Bundler", f.PreviewLayout.Title)
	require.Equal(t, "2 actions", f.PreviewLayout.Subtitle)
	require.Len(t, f.PreviewLayout.Expanded.Fields, 2)

	transferField := f.PreviewLayout.Expanded.Fields[0].Field
	require.Equal(t, "Transfer From", transferField.PreviewLayout.Title)
	require.Contains(t, transferField.PreviewLayout.Expanded.Fields[0].Field.AddressV2.Address, bundler.Hex())

	unknownField := f.PreviewLayout.Expanded.Fields[1].Field
	require.Equal(t, fields.TypeUnknown, unknownField.Type)
	require.Contains(t, unknownField.Unknown.Explanation, "Unrecognized bundler action")
}

func TestVisualize_UnrecognizedSelector(t *testing.T) {
	t.Parallel()

	ctx := evm.VisualizerContext{
		Selector:     [4]byte{0xAA, 0xBB, 0xCC, 0xDD},
		CalldataTail: nil,
		To:           common.HexToAddress("0x4095F064B8d3c3548A3bebfd0Bbfd04750E30077"),
		Value:        big.NewInt(0),
		ChainID:      1,
	}

	_, err := Visualizer{}.Visualize(ctx)
	require.Error(t, err)
}

func TestVisualizeAction_ShortDataDegrades(t *testing.T) {
	t.Parallel()

	f := visualizeAction(common.HexToAddress("0x00000000000000000000000000000000000bee"), []byte{0x01, 0x02})
	require.Equal(t, fields.TypeUnknown, f.Type)
	require.Contains(t, f.Unknown.Explanation, "shorter than a selector")
}
