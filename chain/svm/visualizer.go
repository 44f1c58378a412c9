package svm

import (
	sollib "github.com/gagliardetto/solana-go"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

// InstructionContext carries one compiled instruction's resolved inputs to
// a protocol visualizer: the program it targets, its resolved account
// list in instruction order, and its raw data.
type InstructionContext struct {
	ProgramID sollib.PublicKey
	Accounts  []ResolvedAccount
	Data      []byte
}

// Visualizer renders one Solana program's instructions into a field.
type Visualizer interface {
	Visualize(ctx InstructionContext) (fields.Field, error)
}

// VisualizerFunc adapts a plain function to the Visualizer interface.
type VisualizerFunc func(ctx InstructionContext) (fields.Field, error)

func (f VisualizerFunc) Visualize(ctx InstructionContext) (fields.Field, error) { return f(ctx) }

// Registry dispatches an instruction to a Visualizer by its program_id's
// base58 address. An unregistered program degrades to a generic
// unknown-program field carrying the raw instruction data and account
// list rather than failing the whole message.
type Registry struct {
	byProgram map[string]Visualizer
}

// NewRegistry returns an empty program registry.
func NewRegistry() *Registry {
	return &Registry{byProgram: make(map[string]Visualizer)}
}

// Register binds a Visualizer to a program_id, identified by its base58
// address.
func (r *Registry) Register(programID sollib.PublicKey, v Visualizer) {
	r.byProgram[programID.String()] = v
}

// Dispatch renders one compiled instruction, resolving its program_id and
// accounts against the message's resolved account list.
func (r *Registry) Dispatch(resolved []ResolvedAccount, ix CompiledInstruction) fields.Field {
	programAccount, err := Account(resolved, ix.ProgramIDIndex)
	if err != nil {
		return fields.NewUnknown("Instruction", ix.Data, err.Error())
	}

	accounts := make([]ResolvedAccount, 0, len(ix.AccountIndexes))
	for _, idx := range ix.AccountIndexes {
		acct, err := Account(resolved, idx)
		if err != nil {
			return fields.NewUnknown(programLabel(programAccount.Key), ix.Data, err.Error())
		}
		accounts = append(accounts, acct)
	}

	v, ok := r.byProgram[programAccount.Key.String()]
	if !ok {
		return unknownProgramField(programAccount.Key, accounts, ix.Data)
	}

	ctx := InstructionContext{ProgramID: programAccount.Key, Accounts: accounts, Data: ix.Data}
	f, err := v.Visualize(ctx)
	if err != nil {
		if chainerr.IsDegradable(err) {
			return fields.NewUnknown(programLabel(programAccount.Key), ix.Data, err.Error())
		}
		return fields.NewUnknown(programLabel(programAccount.Key), ix.Data, err.Error())
	}
	return f
}

func programLabel(programID sollib.PublicKey) string {
	return "Instruction (" + programID.String() + ")"
}

// unknownProgramField renders an instruction whose program_id carries no
// registered visualizer: the raw hex-encoded instruction data plus the
// resolved account list, so nothing is silently dropped.
func unknownProgramField(programID sollib.PublicKey, accounts []ResolvedAccount, data []byte) fields.Field {
	rows := make([]fields.AnnotatedField, 0, len(accounts)+1)
	rows = append(rows, fields.Plain(fields.NewAddressV2("Program", programID.String(), "", fields.AddressFieldOpts{})))
	for i, acct := range accounts {
		label := "Account " + itoa(i)
		if acct.Signer {
			label += " (signer)"
		}
		if acct.Writable {
			label += " (writable)"
		}
		rows = append(rows, fields.Plain(fields.NewAddressV2(label, acct.Key.String(), "", fields.AddressFieldOpts{})))
	}
	explanation := "Unrecognized program " + programID.String()
	unknown := fields.NewUnknown("Instruction", data, explanation)
	expanded := fields.NewListLayout(append(rows, fields.Plain(unknown))...)
	condensed := fields.NewListLayout(fields.Plain(unknown))
	return fields.NewPreviewLayout("Unknown Instruction", "Unknown Instruction", programID.String(), condensed, expanded)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
