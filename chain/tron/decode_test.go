package tron

import (
	"testing"

	"github.com/fbsobreira/gotron-sdk/pkg/proto/core"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

func buildTransferTx(t *testing.T, from, to []byte, amount int64) []byte {
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

func TestDecodeTransaction_Transfer(t *testing.T) {
	t.Parallel()

	raw := buildTransferTx(t, make([]byte, 21), make([]byte, 21), 1_000_000)
	tx, err := DecodeTransaction(raw)
	require.NoError(t, err)
	contracts := Contracts(tx)
	require.Len(t, contracts, 1)
	require.Equal(t, core.Transaction_Contract_TransferContract, contracts[0].GetType())
}

func TestDecodeTransaction_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := DecodeTransaction(nil)
	require.Error(t, err)
}

func TestDecodeTransaction_RejectsGarbageRawData(t *testing.T) {
	t.Parallel()

	raw, err := proto.Marshal(&core.Transaction{})
	require.NoError(t, err)
	_, err = DecodeTransaction(raw)
	require.Error(t, err)
}
