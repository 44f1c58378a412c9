package dispatcher

import (
	"encoding/binary"
	"testing"

	"github.com/fbsobreira/gotron-sdk/pkg/proto/core"
	sollib "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/chain/svm/protocols/computebudget"
	"github.com/anchorageoss/visualsign-parser/chain/sui"
)

// legacyTransferHex is the well-known signed legacy transfer of 1 ether:
// nonce=0, gasPrice=20 gwei, gasLimit=21000, to=0x3535...3535, value=1
// ether, empty data, chain id 1 under EIP-155.
const legacyTransferHex = "f86c808504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbb6c45adf1ec1f78cb8977a36862b3bde45ef3dc7e44b0ce5eb6a72a4e618"

func TestParse_EVM_LegacyTransfer(t *testing.T) {
	t.Parallel()

	regs := NewRegistries(abi.NewRegistry())
	raw, err := DecodeTransactionBytes(legacyTransferHex)
	require.NoError(t, err)

	payload, err := regs.Parse(Request{Chain: ChainEVM, Payload: raw})
	require.NoError(t, err)
	require.Equal(t, "EthereumTx", payload.PayloadType)
	require.Equal(t, "Ethereum Transaction", payload.Title)
	require.NoError(t, payload.Validate())

	var sawTo, sawValue bool
	for _, f := range payload.Fields {
		if f.Label == "To" {
			sawTo = true
			require.Equal(t, "0x3535353535353535353535353535353535353535", f.AddressV2.Address)
		}
		if f.Label == "Value" {
			sawValue = true
			require.Equal(t, "1", f.AmountV2.Amount)
			require.Equal(t, "ETH", f.AmountV2.Abbreviation)
		}
	}
	require.True(t, sawTo)
	require.True(t, sawValue)
}

func TestParse_EVM_RejectsOversizedPayload(t *testing.T) {
	t.Parallel()

	regs := NewRegistries(abi.NewRegistry())
	_, err := regs.Parse(Request{Chain: ChainEVM, Payload: make([]byte, 2<<20)})
	require.Error(t, err)
}

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

func buildLegacySvmMessage(t *testing.T, keys []sollib.PublicKey, data []byte) []byte {
	t.Helper()
	var buf []byte
	buf = append(buf, 1, 0, 1) // 1 signer, 0 readonly signed, 1 readonly unsigned
	buf = append(buf, compactU16(len(keys))...)
	for _, k := range keys {
		buf = append(buf, k.Bytes()...)
	}
	buf = append(buf, make([]byte, 32)...) // recent_blockhash
	buf = append(buf, compactU16(1)...)    // one instruction
	buf = append(buf, 1)                   // program_id index (computebudget)
	buf = append(buf, compactU16(0)...)    // 0 accounts
	buf = append(buf, compactU16(len(data))...)
	buf = append(buf, data...)
	return buf
}

func TestParse_SVM_SingleInstruction(t *testing.T) {
	t.Parallel()

	regs := NewRegistries(abi.NewRegistry())
	signer := sollib.PublicKeyFromBytes(make([]byte, 32))
	raw := buildLegacySvmMessage(t, []sollib.PublicKey{signer, computebudget.ProgramID}, []byte{0x02, 0x40, 0x0d, 0x03, 0x00})

	payload, err := regs.Parse(Request{Chain: ChainSVM, Payload: raw, LookupTables: map[string]svm.LookupTableContent{}})
	require.NoError(t, err)
	require.Equal(t, "SolanaTx", payload.PayloadType)
	require.NoError(t, payload.Validate())

	var sawFeePayer bool
	for _, f := range payload.Fields {
		if f.Label == "Fee Payer" {
			sawFeePayer = true
		}
	}
	require.True(t, sawFeePayer)
}

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

func u16le(n uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, n)
	return b
}

func TestParse_Sui_BareGasCoinTransfer(t *testing.T) {
	t.Parallel()

	regs := NewRegistries(abi.NewRegistry())

	var buf []byte
	buf = append(buf, uleb128(0)...) // 0 inputs
	buf = append(buf, uleb128(1)...) // 1 command
	buf = append(buf, byte(sui.CommandTransferObjects))
	buf = append(buf, uleb128(1)...) // 1 object
	buf = append(buf, byte(sui.ArgumentGasCoin))
	buf = append(buf, byte(sui.ArgumentInput))
	buf = append(buf, u16le(0)...)

	payload, err := regs.Parse(Request{Chain: ChainSui, Payload: buf})
	require.NoError(t, err)
	require.Equal(t, "SuiTx", payload.PayloadType)
	require.Equal(t, "Send SUI", payload.Title)
	require.NoError(t, payload.Validate())
}

func buildTronTransferTx(t *testing.T, from, to []byte, amount int64) []byte {
	t.Helper()
	payload, err := anypb.New(&core.TransferContract{
		OwnerAddress: from,
		ToAddress:    to,
		Amount:       amount,
	})
	require.NoError(t, err)

	tx := &core.Transaction{
		RawData: &core.TransactionRaw{
			Contract: []*core.Transaction_Contract{
				{Type: core.Transaction_Contract_TransferContract, Parameter: payload},
			},
		},
	}
	raw, err := proto.Marshal(tx)
	require.NoError(t, err)
	return raw
}

func TestParse_Tron_Transfer(t *testing.T) {
	t.Parallel()

	regs := NewRegistries(abi.NewRegistry())
	raw := buildTronTransferTx(t, make([]byte, 21), make([]byte, 21), 1_000_000)

	payload, err := regs.Parse(Request{Chain: ChainTron, Payload: raw})
	require.NoError(t, err)
	require.Equal(t, "TronTx", payload.PayloadType)
	require.Equal(t, "Send TRX", payload.Title)
	require.NoError(t, payload.Validate())
}

func TestParse_UnrecognizedChain(t *testing.T) {
	t.Parallel()

	regs := NewRegistries(abi.NewRegistry())
	_, err := regs.Parse(Request{Chain: Chain("dogecoin"), Payload: []byte{0x01}})
	require.Error(t, err)
}

func TestDecodeTransactionBytes_HexAndBase64(t *testing.T) {
	t.Parallel()

	b, err := DecodeTransactionBytes("0x0102ff")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0xff}, b)

	b, err = DecodeTransactionBytes("AQL/")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0xff}, b)
}
