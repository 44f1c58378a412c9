// Package systemprogram renders Solana's native System Program
// instructions: lamport transfers, account creation, ownership
// reassignment, and allocation.
package systemprogram

import (
	"math/big"

	sollib "github.com/gagliardetto/solana-go"
	system "github.com/gagliardetto/solana-go/programs/system"

	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/internal/numfmt"
)

// ProgramID is the native System Program address.
var ProgramID = system.ProgramID

// Visualizer renders System Program instructions. Decoding goes through
// solana-go's own system.DecodeInstruction rather than a hand-rolled tag
// table, the same delegation chain/svm/protocols/spltoken uses for
// token.DecodeInstruction.
type Visualizer struct{}

// NewVisualizer returns the System Program Visualizer for registration
// against svm.Registry.Register(ProgramID, ...).
func NewVisualizer() svm.Visualizer { return Visualizer{} }

func (Visualizer) Visualize(ctx svm.InstructionContext) (fields.Field, error) {
	metas := make([]*sollib.AccountMeta, len(ctx.Accounts))
	for i, a := range ctx.Accounts {
		metas[i] = &sollib.AccountMeta{PublicKey: a.Key, IsSigner: a.Signer, IsWritable: a.Writable}
	}

	inst, err := system.DecodeInstruction(metas, ctx.Data)
	if err != nil {
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound,
			"system program: %s", err.Error())
	}

	switch impl := inst.Impl.(type) {
	case *system.Transfer:
		return visualizeTransfer(impl.Lamports, impl.GetFundingAccount(), impl.GetRecipientAccount())
	case *system.TransferWithSeed:
		return visualizeTransfer(impl.Lamports, impl.GetFundingAccount(), impl.GetRecipientAccount())
	case *system.CreateAccount:
		return visualizeCreateAccount(impl.Lamports, impl.Space, impl.Owner, impl.GetFundingAccount(), impl.GetNewAccount())
	case *system.CreateAccountWithSeed:
		return visualizeCreateAccount(impl.Lamports, impl.Space, impl.Owner, impl.GetFundingAccount(), impl.GetCreatedAccount())
	case *system.Assign:
		return visualizeAssign(impl.Owner, impl.GetAssignedAccount())
	case *system.AssignWithSeed:
		return visualizeAssign(impl.Owner, impl.GetAssignedAccount())
	case *system.Allocate:
		return visualizeAllocate(impl.Space, impl.GetNewAccount())
	case *system.AllocateWithSeed:
		return visualizeAllocate(impl.Space, impl.GetAllocatedAccount())
	case *system.WithdrawNonceAccount:
		return visualizeTransfer(impl.Lamports, impl.GetNonceAccount(), impl.GetRecipientAccount())
	case *system.InitializeNonceAccount:
		return fields.NewTextV2("Action", "Initialize Nonce Account"), nil
	case *system.AdvanceNonceAccount:
		return fields.NewTextV2("Action", "Advance Nonce Account"), nil
	default:
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound,
			"system program: unrecognized instruction %T", impl)
	}
}

func visualizeTransfer(lamports *uint64, from, to *sollib.AccountMeta) (fields.Field, error) {
	if lamports == nil || from == nil || to == nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "transfer instruction missing lamports or accounts")
	}
	amountF := solAmountField("Amount", *lamports)
	condensed := fields.NewListLayout(fields.Plain(amountF))
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("From", from.PublicKey.String(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("To", to.PublicKey.String(), "", fields.AddressFieldOpts{})),
		fields.Plain(amountF),
	}
	return fields.NewPreviewLayout("SOL Transfer", "SOL Transfer", "", condensed, fields.NewListLayout(rows...)), nil
}

func visualizeCreateAccount(lamports *uint64, space *uint64, owner *sollib.PublicKey, funding, newAccount *sollib.AccountMeta) (fields.Field, error) {
	if funding == nil || newAccount == nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "create account instruction missing accounts")
	}
	lamportsVal := uint64(0)
	if lamports != nil {
		lamportsVal = *lamports
	}
	amountF := solAmountField("Funded With", lamportsVal)
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("Funding Account", funding.PublicKey.String(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("New Account", newAccount.PublicKey.String(), "", fields.AddressFieldOpts{})),
		fields.Plain(amountF),
	}
	if space != nil {
		rows = append(rows, fields.Plain(fields.NewNumber("Allocated Space", itoa(*space), itoa(*space)+" bytes")))
	}
	if owner != nil {
		rows = append(rows, fields.Plain(fields.NewAddressV2("Owner Program", owner.String(), "", fields.AddressFieldOpts{})))
	}
	title := "Create Account"
	return fields.NewPreviewLayout(title, title, "", fields.NewListLayout(rows[:2]...), fields.NewListLayout(rows...)), nil
}

func visualizeAssign(owner *sollib.PublicKey, account *sollib.AccountMeta) (fields.Field, error) {
	if owner == nil || account == nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "assign instruction missing owner or account")
	}
	title := "Reassign Account Owner"
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("Account", account.PublicKey.String(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("New Owner Program", owner.String(), "", fields.AddressFieldOpts{})),
	}
	return fields.NewPreviewLayout(title, title, "", fields.NewListLayout(rows...), fields.NewListLayout(rows...)), nil
}

func visualizeAllocate(space *uint64, account *sollib.AccountMeta) (fields.Field, error) {
	if account == nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "allocate instruction missing account")
	}
	spaceVal := uint64(0)
	if space != nil {
		spaceVal = *space
	}
	title := "Allocate Account Space"
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("Account", account.PublicKey.String(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewNumber("Space", itoa(spaceVal), itoa(spaceVal)+" bytes")),
	}
	return fields.NewPreviewLayout(title, title, "", fields.NewListLayout(rows...), fields.NewListLayout(rows...)), nil
}

// solAmountField renders a lamport amount the same way
// chain/svm/protocols/spltoken renders token amounts, at Solana's fixed
// 9-decimal SOL/lamport ratio.
func solAmountField(label string, lamports uint64) fields.Field {
	amount := numfmt.TokenAmount(new(big.Int).SetUint64(lamports), 9)
	return fields.NewAmountV2(label, amount, "SOL", amount+" SOL")
}

func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
