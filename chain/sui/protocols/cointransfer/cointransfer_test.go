package cointransfer

import (
	"testing"

	"github.com/anchorageoss/visualsign-parser/chain/sui"
	"github.com/stretchr/testify/require"
)

func TestDescribe_SplitThenTransfer(t *testing.T) {
	t.Parallel()

	tx := &sui.ProgrammableTransaction{
		Commands: []sui.Command{
			{
				Kind:              sui.CommandSplitCoins,
				SplitCoinsCoin:    sui.Argument{Kind: sui.ArgumentGasCoin},
				SplitCoinsAmounts: []sui.Argument{{Kind: sui.ArgumentInput, InputIndex: 0}},
			},
			{
				Kind:              sui.CommandTransferObjects,
				TransferObjects:   []sui.Argument{{Kind: sui.ArgumentResult, ResultIndex: 0}},
				TransferRecipient: sui.Argument{Kind: sui.ArgumentInput, InputIndex: 1},
			},
		},
	}

	f, ok := Describe(tx)
	require.True(t, ok)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Send SUI", f.PreviewLayout.Title)
}

func TestDescribe_BareGasCoinTransfer(t *testing.T) {
	t.Parallel()

	tx := &sui.ProgrammableTransaction{
		Commands: []sui.Command{
			{
				Kind:              sui.CommandTransferObjects,
				TransferObjects:   []sui.Argument{{Kind: sui.ArgumentGasCoin}},
				TransferRecipient: sui.Argument{Kind: sui.ArgumentInput, InputIndex: 0},
			},
		},
	}

	f, ok := Describe(tx)
	require.True(t, ok)
	require.Equal(t, "Send SUI", f.PreviewLayout.Title)
}

func TestDescribe_MoveCallPresent_NotRecognized(t *testing.T) {
	t.Parallel()

	tx := &sui.ProgrammableTransaction{
		Commands: []sui.Command{
			{Kind: sui.CommandMoveCall, MoveCall: sui.ProgrammableMoveCall{Module: "m", Function: "f"}},
			{
				Kind:              sui.CommandTransferObjects,
				TransferObjects:   []sui.Argument{{Kind: sui.ArgumentResult, ResultIndex: 0}},
				TransferRecipient: sui.Argument{Kind: sui.ArgumentInput, InputIndex: 0},
			},
		},
	}

	_, ok := Describe(tx)
	require.False(t, ok)
}
