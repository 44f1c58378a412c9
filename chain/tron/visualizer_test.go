package tron

import (
	"testing"

	"github.com/fbsobreira/gotron-sdk/pkg/proto/core"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/anypb"
)

func TestVisualizeContract_Transfer(t *testing.T) {
	t.Parallel()

	payload, err := anypb.New(&core.TransferContract{
		OwnerAddress: make([]byte, 21),
		ToAddress:    make([]byte, 21),
		Amount:       5_000_000,
	})
	require.NoError(t, err)

	r := NewRegistry()
	f, err := r.VisualizeContract(&core.Transaction_Contract{Type: core.Transaction_Contract_TransferContract, Parameter: payload})
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Send TRX", f.PreviewLayout.Title)
}

func TestVisualizeContract_UnregisteredTrigger_Degrades(t *testing.T) {
	t.Parallel()

	payload, err := anypb.New(&core.TriggerSmartContract{
		OwnerAddress:    make([]byte, 21),
		ContractAddress: make([]byte, 21),
		Data:            []byte{0xde, 0xad, 0xbe, 0xef},
	})
	require.NoError(t, err)

	r := NewRegistry()
	f, err := r.VisualizeContract(&core.Transaction_Contract{Type: core.Transaction_Contract_TriggerSmartContract, Parameter: payload})
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Contract Call", f.PreviewLayout.Title)
}
