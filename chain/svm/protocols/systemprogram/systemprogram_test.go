package systemprogram

import (
	"encoding/binary"
	"testing"

	sollib "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-parser/chain/svm"
)

func acct(seed byte, signer, writable bool) svm.ResolvedAccount {
	b := make([]byte, 32)
	b[31] = seed
	return svm.ResolvedAccount{Key: sollib.PublicKeyFromBytes(b), Signer: signer, Writable: writable}
}

func TestVisualizeTransfer(t *testing.T) {
	t.Parallel()

	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], 2) // Transfer instruction index
	binary.LittleEndian.PutUint64(data[4:12], 1_500_000_000)

	ctx := svm.InstructionContext{
		ProgramID: ProgramID,
		Data:      data,
		Accounts: []svm.ResolvedAccount{
			acct(1, true, true),
			acct(2, false, true),
		},
	}

	f, err := Visualizer{}.Visualize(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "SOL Transfer", f.PreviewLayout.Title)
}

func TestVisualizeCreateAccount(t *testing.T) {
	t.Parallel()

	owner := sollib.MustPublicKeyFromBase58("11111111111111111111111111111111")
	data := make([]byte, 4+8+8+32)
	binary.LittleEndian.PutUint32(data[0:4], 0) // CreateAccount instruction index
	binary.LittleEndian.PutUint64(data[4:12], 890_880)
	binary.LittleEndian.PutUint64(data[12:20], 165)
	copy(data[20:52], owner[:])

	ctx := svm.InstructionContext{
		ProgramID: ProgramID,
		Data:      data,
		Accounts: []svm.ResolvedAccount{
			acct(1, true, true),
			acct(2, true, true),
		},
	}

	f, err := Visualizer{}.Visualize(ctx)
	require.NoError(t, err)
	require.NoError(t, f.Validate(0))
	require.Equal(t, "Create Account", f.PreviewLayout.Title)
}

func TestVisualize_UnrecognizedInstruction(t *testing.T) {
	t.Parallel()

	_, err := Visualizer{}.Visualize(svm.InstructionContext{Data: []byte{99, 0, 0, 0}})
	require.Error(t, err)
}
