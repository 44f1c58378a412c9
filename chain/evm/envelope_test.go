package evm

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// legacyTransferHex is the well-known signed legacy transfer of 1 ether used
// throughout Ethereum tooling documentation: nonce=0, gasPrice=20 gwei,
// gasLimit=21000, to=0x3535...3535, value=1 ether, empty data, v=37 (chain
// id 1 under EIP-155). Used here only as a decoder fixture; this module
// never validates the signature it carries.
const legacyTransferHex = "f86c808504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbb6c45adf1ec1f78cb8977a36862b3bde45ef3dc7e44b0ce5eb6a72a4e618"

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	require.NoError(t, err)
	return b
}

func TestDecodeEnvelope_LegacyTransfer(t *testing.T) {
	t.Parallel()

	tx, err := DecodeEnvelope(decodeHex(t, legacyTransferHex))
	require.NoError(t, err)

	require.EqualValues(t, 0, tx.Nonce)
	require.EqualValues(t, 21000, tx.GasLimit)
	require.Equal(t, "20000000000", tx.GasPrice.String())
	require.Nil(t, tx.PriorityFee)
	require.NotNil(t, tx.To)
	require.Equal(t, "0x3535353535353535353535353535353535353535", tx.To.Hex())
	require.Equal(t, "1000000000000000000", tx.Value.String())
	require.Empty(t, tx.Input)
	require.False(t, tx.IsContractCreation())

	require.NotNil(t, tx.ChainID)
	require.EqualValues(t, 1, tx.ChainID.Uint64())
}

func TestDecodeEnvelope_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := DecodeEnvelope(nil)
	require.Error(t, err)
}

func TestDecodeEnvelope_UnsupportedType(t *testing.T) {
	t.Parallel()

	_, err := DecodeEnvelope([]byte{0x7f, 0x01, 0x02})
	require.Error(t, err)
}

func TestNetworkName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Ethereum Mainnet", NetworkName(1, true))
	require.Equal(t, "Unknown Network", NetworkName(0, false))
	require.Equal(t, "Unknown Network (Chain ID: 999999)", NetworkName(999999, true))
}
