package staking

import (
	"testing"

	"github.com/anchorageoss/visualsign-parser/chain/sui"
	"github.com/stretchr/testify/require"
)

func TestVisualize_AddStake(t *testing.T) {
	t.Parallel()

	v := NewVisualizer()
	call := sui.ProgrammableMoveCall{Package: PackageID, Module: "sui_system", Function: "request_add_stake"}
	f, err := v.Visualize(sui.CommandContext{Call: call})
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Stake SUI", f.PreviewLayout.Title)
}

func TestVisualize_WithdrawStake(t *testing.T) {
	t.Parallel()

	v := NewVisualizer()
	call := sui.ProgrammableMoveCall{Package: PackageID, Module: "sui_system", Function: "request_withdraw_stake"}
	f, err := v.Visualize(sui.CommandContext{Call: call})
	require.NoError(t, err)
	require.Equal(t, "Unstake SUI", f.PreviewLayout.Title)
}
