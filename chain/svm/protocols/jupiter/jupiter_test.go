package jupiter

import (
	"encoding/binary"
	"testing"

	sollib "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/registry"
)

func routeAccounts(inMint, outMint sollib.PublicKey) []svm.ResolvedAccount {
	accounts := make([]svm.ResolvedAccount, 6)
	for i := range accounts {
		b := make([]byte, 32)
		b[31] = byte(i + 1)
		accounts[i] = svm.ResolvedAccount{Key: sollib.PublicKeyFromBytes(b)}
	}
	accounts[inputMintAccountIndex] = svm.ResolvedAccount{Key: inMint}
	accounts[outputMintAccountIndex] = svm.ResolvedAccount{Key: outMint}
	return accounts
}

func routeData(disc [8]byte, amount, quoted uint64, slippageBps uint16, platformFeeBps byte) []byte {
	var data []byte
	data = append(data, disc[:]...)
	data = append(data, make([]byte, 17)...) // stand-in route_plan bytes, never decoded

	amt := make([]byte, 8)
	binary.LittleEndian.PutUint64(amt, amount)
	qtd := make([]byte, 8)
	binary.LittleEndian.PutUint64(qtd, quoted)
	slip := make([]byte, 2)
	binary.LittleEndian.PutUint16(slip, slippageBps)

	data = append(data, amt...)
	data = append(data, qtd...)
	data = append(data, slip...)
	data = append(data, platformFeeBps)
	return data
}

func TestVisualizeRoute_DecodesSummaryFields(t *testing.T) {
	t.Parallel()

	data := routeData(discRoute, 1_000_000, 990_000, 50, 10)

	ctx := svm.InstructionContext{
		ProgramID: ProgramID,
		Data:      data,
		Accounts: []svm.ResolvedAccount{
			{Key: sollib.PublicKeyFromBytes(make([]byte, 32)), Signer: true},
		},
	}

	f, err := Visualizer{}.Visualize(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Jupiter Swap", f.PreviewLayout.Title)
}

func TestVisualizeRoute_RejectsUnrecognizedDiscriminator(t *testing.T) {
	t.Parallel()

	ctx := svm.InstructionContext{Data: make([]byte, 20)}
	_, err := Visualizer{}.Visualize(ctx)
	require.Error(t, err)
}

func TestVisualizeRoute_ResolvesMintSymbolsAndListsAccounts(t *testing.T) {
	t.Parallel()

	usdc := sollib.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	wsol := sollib.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	contracts := registry.NewContractRegistry()
	contracts.RegisterSVM(wsol.String(), registry.ContractInfo{Symbol: "SOL", Decimals: 9})
	contracts.RegisterSVM(usdc.String(), registry.ContractInfo{Symbol: "USDC", Decimals: 6})

	data := routeData(discRoute, 1_000_000_000, 990_000_000, 50, 10)

	ctx := svm.InstructionContext{
		ProgramID: ProgramID,
		Data:      data,
		Accounts:  routeAccounts(wsol, usdc),
	}

	f, err := Visualizer{Contracts: contracts}.Visualize(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))

	condensedText := f.PreviewLayout.Condensed.Fields[0].TextV2.Text
	require.Contains(t, condensedText, "SOL")
	require.Contains(t, condensedText, "USDC")
	require.Contains(t, condensedText, "→ min")

	rows := f.PreviewLayout.Expanded.Fields
	var sawInputMint, sawOutputMint bool
	for _, row := range rows {
		if row.AddressV2 == nil {
			continue
		}
		switch row.Label {
		case "Input Mint":
			sawInputMint = true
			require.Equal(t, wsol.String(), row.AddressV2.Address)
			require.Equal(t, "SOL", row.AddressV2.AssetLabel)
		case "Output Mint":
			sawOutputMint = true
			require.Equal(t, usdc.String(), row.AddressV2.Address)
			require.Equal(t, "USDC", row.AddressV2.AssetLabel)
		}
	}
	require.True(t, sawInputMint)
	require.True(t, sawOutputMint)
}
