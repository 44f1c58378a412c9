package erc20

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-parser/chain/evm"
	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/registry"
)

func encodeTransfer(to common.Address, amount *big.Int) []byte {
	tail := make([]byte, 64)
	copy(tail[12:32], to.Bytes())
	amtBytes := amount.Bytes()
	copy(tail[64-len(amtBytes):64], amtBytes)
	return tail
}

func TestVisualizeTransfer_ResolvesKnownToken(t *testing.T) {
	t.Parallel()

	usdc := common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	to := common.HexToAddress("0x00000000000000000000000000000000000c0c")
	amount := big.NewInt(5_000_000) // 5 USDC at 6 decimals

	contracts := registry.NewContractRegistry()
	ctx := evm.VisualizerContext{
		Selector:     abi.Selector4("transfer(address,uint256)"),
		CalldataTail: encodeTransfer(to, amount),
		To:           usdc,
		ChainID:      1,
		Contracts:    contracts,
	}

	f, err := visualizeTransfer(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Transfer USDC", f.PreviewLayout.Title)
}

func TestVisualizeTransfer_UnknownTokenFallsBackToRawUnits(t *testing.T) {
	t.Parallel()

	unknown := common.HexToAddress("0x00000000000000000000000000000000000bad")
	to := common.HexToAddress("0x00000000000000000000000000000000000c0c")
	amount := big.NewInt(42)

	ctx := evm.VisualizerContext{
		Selector:     abi.Selector4("transfer(address,uint256)"),
		CalldataTail: encodeTransfer(to, amount),
		To:           unknown,
		ChainID:      1,
		Contracts:    registry.NewContractRegistry(),
	}

	f, err := visualizeTransfer(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Token Transfer", f.PreviewLayout.Title)
}

func TestSelectorsTable_HasCoreERC20AndNFTSelectors(t *testing.T) {
	t.Parallel()

	selectors := Selectors()
	require.Contains(t, selectors, abi.Selector4("transfer(address,uint256)"))
	require.Contains(t, selectors, abi.Selector4("transferFrom(address,address,uint256)"))
	require.Contains(t, selectors, abi.Selector4("approve(address,uint256)"))
	require.Contains(t, selectors, abi.Selector4("safeTransferFrom(address,address,uint256,uint256,bytes)"))
	require.Contains(t, selectors, abi.Selector4("setApprovalForAll(address,bool)"))
}
