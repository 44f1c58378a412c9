package aave

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-parser/chain/evm"
	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/registry"
)

func word(n *big.Int) []byte {
	b := make([]byte, 32)
	nb := n.Bytes()
	copy(b[32-len(nb):], nb)
	return b
}

func addrWord(a common.Address) []byte {
	b := make([]byte, 32)
	copy(b[12:], a.Bytes())
	return b
}

func TestVisualizeSupply_ScenarioFromSpec(t *testing.T) {
	t.Parallel()

	usdt := common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	onBehalfOf := common.HexToAddress("0xb6550000000000000000000000000000000000")
	amount := big.NewInt(110_000_000_000) // 110000 USDT at 6 decimals

	var tail []byte
	tail = append(tail, addrWord(usdt)...)
	tail = append(tail, word(amount)...)
	tail = append(tail, addrWord(onBehalfOf)...)
	tail = append(tail, word(big.NewInt(0))...) // referralCode

	contracts := registry.NewContractRegistry()
	ctx := evm.VisualizerContext{
		Selector:     abi.Selector4("supply(address,uint256,address,uint16)"),
		CalldataTail: tail,
		To:           common.HexToAddress("0x87870Bca3F3fD6335C3F4ce8392D69350B4fA4E2"),
		ChainID:      1,
		Contracts:    contracts,
	}

	f, err := Visualizer{}.Visualize(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Aave Supply", f.PreviewLayout.Title)
	require.Contains(t, f.PreviewLayout.Subtitle, onBehalfOf.Hex())
	require.Len(t, f.PreviewLayout.Expanded.Fields, 3)
}
