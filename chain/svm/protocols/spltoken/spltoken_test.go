package spltoken

import (
	"encoding/binary"
	"testing"

	sollib "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/registry"
)

func acct(seed byte, signer, writable bool) svm.ResolvedAccount {
	b := make([]byte, 32)
	b[31] = seed
	return svm.ResolvedAccount{Key: sollib.PublicKeyFromBytes(b), Signer: signer, Writable: writable}
}

func TestVisualizeTransfer_ResolvesKnownMint(t *testing.T) {
	t.Parallel()

	usdc := "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	contracts := registry.NewContractRegistry()

	amount := make([]byte, 8)
	binary.LittleEndian.PutUint64(amount, 5_000_000)
	decimals := byte(6)
	const transferCheckedTag = 12 // SPL Token TransferChecked instruction tag
	data := append([]byte{transferCheckedTag}, amount...)
	data = append(data, decimals)

	mintKey := sollib.MustPublicKeyFromBase58(usdc)
	ctx := svm.InstructionContext{
		Data: data,
		Accounts: []svm.ResolvedAccount{
			acct(1, false, true),
			{Key: mintKey},
			acct(2, false, true),
			acct(3, true, false),
		},
	}

	f, err := Visualizer{Contracts: contracts}.Visualize(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Transfer USDC", f.PreviewLayout.Title)
}

func TestVisualizeTransfer_Unchecked_NoDecimals(t *testing.T) {
	t.Parallel()

	amount := make([]byte, 8)
	binary.LittleEndian.PutUint64(amount, 42)
	const transferTag = 3 // SPL Token Transfer instruction tag
	data := append([]byte{transferTag}, amount...)

	ctx := svm.InstructionContext{
		Data: data,
		Accounts: []svm.ResolvedAccount{
			acct(1, false, true),
			acct(2, false, true),
			acct(3, true, false),
		},
	}

	f, err := Visualizer{}.Visualize(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Token Transfer", f.PreviewLayout.Title)
}
