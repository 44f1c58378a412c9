package momentum

import (
	"testing"

	"github.com/anchorageoss/visualsign-parser/chain/sui"
	"github.com/stretchr/testify/require"
)

func TestVisualize_Swap(t *testing.T) {
	t.Parallel()

	v := NewVisualizer()
	call := sui.ProgrammableMoveCall{Module: "router", Function: "swap_exact"}
	f, err := v.Visualize(sui.CommandContext{Call: call})
	require.NoError(t, err)
	require.Equal(t, "Momentum Swap", f.PreviewLayout.Title)
}

func TestVisualize_RemoveLiquidity(t *testing.T) {
	t.Parallel()

	v := NewVisualizer()
	call := sui.ProgrammableMoveCall{Module: "router", Function: "remove_liquidity"}
	f, err := v.Visualize(sui.CommandContext{Call: call})
	require.NoError(t, err)
	require.Equal(t, "Momentum Remove Liquidity", f.PreviewLayout.Title)
}
