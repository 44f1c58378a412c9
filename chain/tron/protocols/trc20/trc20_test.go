package trc20

import (
	"testing"

	"github.com/anchorageoss/visualsign-parser/chain/tron"
	"github.com/anchorageoss/visualsign-parser/registry"
	"github.com/stretchr/testify/require"
)

func encodeTransferCalldata(to [20]byte, amount int64) []byte {
	data := make([]byte, 4+32+32)
	sel := transferSelector
	copy(data[:4], sel[:])
	copy(data[4+12:4+32], to[:])
	b := big64(amount)
	copy(data[4+32+32-len(b):4+32+32], b)
	return data
}

func big64(n int64) []byte {
	out := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		out[i] = byte(n & 0xff)
		n >>= 8
	}
	return out
}

func TestVisualize_Transfer_ResolvesKnownContract(t *testing.T) {
	t.Parallel()

	contracts := registry.NewContractRegistry()
	v := NewVisualizer(contracts)

	var to [20]byte
	to[19] = 0x01
	data := encodeTransferCalldata(to, 2_000_000)

	f, err := v.Visualize(tron.CallContext{ContractAddress: "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", Data: data})
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Transfer USDT", f.PreviewLayout.Title)
}

func TestVisualize_UnrecognizedSelector(t *testing.T) {
	t.Parallel()

	v := NewVisualizer(registry.NewContractRegistry())
	_, err := v.Visualize(tron.CallContext{ContractAddress: "x", Data: []byte{0x01, 0x02, 0x03, 0x04}})
	require.Error(t, err)
}
