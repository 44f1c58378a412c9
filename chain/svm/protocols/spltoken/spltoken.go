// Package spltoken renders SPL Token and Token-2022 program instructions:
// transfers, approvals, mints, and burns, in both the legacy (implicit
// decimals) and *Checked (explicit decimals) forms.
package spltoken

import (
	"math/big"

	sollib "github.com/gagliardetto/solana-go"
	token "github.com/gagliardetto/solana-go/programs/token"

	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/internal/numfmt"
	"github.com/anchorageoss/visualsign-parser/registry"
)

// ProgramID is the original SPL Token program address.
var ProgramID = token.ProgramID

// Token2022ProgramID is the SPL Token-2022 program address; it shares the
// base instruction layout this visualizer understands.
var Token2022ProgramID = sollib.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

// AssociatedTokenAccountProgramID is the program that derives and creates
// a wallet's associated token account for a mint.
var AssociatedTokenAccountProgramID = sollib.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

// Visualizer renders SPL Token / Token-2022 instructions. Contracts
// resolves a mint's symbol and decimals the same way the EVM token
// visualizers resolve ERC-20 metadata.
type Visualizer struct {
	Contracts *registry.ContractRegistry
}

// NewVisualizer returns the SPL Token Visualizer, registered once for
// ProgramID and once more for Token2022ProgramID since both speak the same
// instruction layout.
func NewVisualizer(contracts *registry.ContractRegistry) svm.Visualizer {
	return Visualizer{Contracts: contracts}
}

// Visualize decodes an instruction through solana-go's own token.
// DecodeInstruction rather than this package's own tag/byte-offset table:
// the program's instruction layouts (account order, the amount/decimals
// trailer on the *Checked variants) are exactly what that decoder already
// knows, the same decoder experimental/analyzer's AnchorInstruction wrapper
// expects to receive a BaseVariant.Impl from for any Anchor-style Solana
// program.
func (v Visualizer) Visualize(ctx svm.InstructionContext) (fields.Field, error) {
	if len(ctx.Data) == 0 {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "spl-token instruction has no data")
	}

	metas := make([]*sollib.AccountMeta, len(ctx.Accounts))
	for i, a := range ctx.Accounts {
		metas[i] = &sollib.AccountMeta{PublicKey: a.Key, IsSigner: a.Signer, IsWritable: a.Writable}
	}

	inst, err := token.DecodeInstruction(metas, ctx.Data)
	if err != nil {
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound,
			"spl-token: %s", err.Error())
	}

	switch impl := inst.Impl.(type) {
	case *token.Transfer:
		return v.visualizeTransfer(impl.Amount, nil, impl.GetSourceAccount(), impl.GetDestinationAccount(), impl.GetOwnerAccount())
	case *token.TransferChecked:
		return v.visualizeTransfer(impl.Amount, impl.Decimals, impl.GetSourceAccount(), impl.GetDestinationAccount(), impl.GetOwnerAccount(), impl.GetMintAccount())
	case *token.Approve:
		return v.visualizeApprove(impl.Amount, nil, impl.GetSourceAccount(), impl.GetDelegateAccount())
	case *token.ApproveChecked:
		return v.visualizeApprove(impl.Amount, impl.Decimals, impl.GetSourceAccount(), impl.GetDelegateAccount(), impl.GetMintAccount())
	case *token.MintTo:
		return v.visualizeMintOrBurn("Mint To", impl.Amount, nil, impl.GetMintAccount(), impl.GetDestinationAccount())
	case *token.MintToChecked:
		return v.visualizeMintOrBurn("Mint To", impl.Amount, impl.Decimals, impl.GetMintAccount(), impl.GetDestinationAccount())
	case *token.Burn:
		return v.visualizeMintOrBurn("Burn", impl.Amount, nil, impl.GetMintAccount(), impl.GetSourceAccount())
	case *token.BurnChecked:
		return v.visualizeMintOrBurn("Burn", impl.Amount, impl.Decimals, impl.GetMintAccount(), impl.GetSourceAccount())
	case *token.Revoke:
		return fields.NewTextV2("Action", "Revoke Approval"), nil
	case *token.CloseAccount:
		return fields.NewTextV2("Action", "Close Token Account"), nil
	default:
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound,
			"spl-token: unrecognized instruction %T", impl)
	}
}

// visualizeTransfer covers both Transfer and TransferChecked; mint is nil
// for the legacy (implicit-decimals) variant.
func (v Visualizer) visualizeTransfer(amount *uint64, decimals *uint8, source, dest, owner *sollib.AccountMeta, mint ...*sollib.AccountMeta) (fields.Field, error) {
	if amount == nil || source == nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "transfer instruction missing amount or source account")
	}

	symbol, dispDecimals, hasDecimals := "", uint8(0), false
	if decimals != nil {
		dispDecimals, hasDecimals = *decimals, true
	}
	var mintMeta *sollib.AccountMeta
	if len(mint) > 0 {
		mintMeta = mint[0]
	}
	if v.Contracts != nil && mintMeta != nil {
		if info, ok := v.Contracts.LookupSVM(mintMeta.PublicKey.String()); ok {
			symbol = info.Symbol
			dispDecimals = info.Decimals
			hasDecimals = true
		}
	}

	title := "Token Transfer"
	if symbol != "" {
		title = "Transfer " + symbol
	}
	amountF := amountField("Amount", *amount, symbol, dispDecimals, hasDecimals)
	condensed := fields.NewListLayout(fields.Plain(amountF))
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("From", source.PublicKey.String(), "", fields.AddressFieldOpts{})),
		fields.Plain(amountF),
	}
	if dest != nil {
		rows = append(rows, fields.Plain(fields.NewAddressV2("To", dest.PublicKey.String(), "", fields.AddressFieldOpts{})))
	}
	if owner != nil {
		rows = append(rows, fields.Plain(fields.NewAddressV2("Authority", owner.PublicKey.String(), "", fields.AddressFieldOpts{})))
	}
	return fields.NewPreviewLayout(title, title, "", condensed, fields.NewListLayout(rows...)), nil
}

func (v Visualizer) visualizeApprove(amount *uint64, decimals *uint8, source, delegate *sollib.AccountMeta, mint ...*sollib.AccountMeta) (fields.Field, error) {
	if amount == nil || source == nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "approve instruction missing amount or source account")
	}
	dispDecimals, hasDecimals := uint8(0), false
	if decimals != nil {
		dispDecimals, hasDecimals = *decimals, true
	}

	title := "Token Approval"
	amountF := amountField("Amount", *amount, "", dispDecimals, hasDecimals)
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("Account", source.PublicKey.String(), "", fields.AddressFieldOpts{})),
		fields.Plain(amountF),
	}
	if delegate != nil {
		rows = append(rows, fields.Plain(fields.NewAddressV2("Delegate", delegate.PublicKey.String(), "", fields.AddressFieldOpts{})))
	}
	return fields.NewPreviewLayout(title, title, "", fields.NewListLayout(fields.Plain(amountF)), fields.NewListLayout(rows...)), nil
}

func (v Visualizer) visualizeMintOrBurn(verb string, amount *uint64, decimals *uint8, mint, target *sollib.AccountMeta) (fields.Field, error) {
	if amount == nil || mint == nil || target == nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "%s instruction missing amount, mint, or account", verb)
	}

	symbol, dispDecimals, hasDecimals := "", uint8(0), false
	if decimals != nil {
		dispDecimals, hasDecimals = *decimals, true
	}
	if v.Contracts != nil {
		if info, ok := v.Contracts.LookupSVM(mint.PublicKey.String()); ok {
			symbol = info.Symbol
			dispDecimals = info.Decimals
			hasDecimals = true
		}
	}

	amountF := amountField("Amount", *amount, symbol, dispDecimals, hasDecimals)
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("Mint", mint.PublicKey.String(), symbol, fields.AddressFieldOpts{})),
		fields.Plain(amountF),
		fields.Plain(fields.NewAddressV2("Account", target.PublicKey.String(), "", fields.AddressFieldOpts{})),
	}
	return fields.NewPreviewLayout(verb, verb, "", fields.NewListLayout(fields.Plain(amountF)), fields.NewListLayout(rows...)), nil
}

func amountField(label string, raw uint64, symbol string, decimals uint8, hasDecimals bool) fields.Field {
	if !hasDecimals {
		s := numfmt.RawUnits(bigFromUint64(raw))
		return fields.NewAmountV2(label, s, "", s+" (raw units)")
	}
	amount := numfmt.TokenAmount(bigFromUint64(raw), decimals)
	fallback := amount
	if symbol != "" {
		fallback = amount + " " + symbol
	}
	return fields.NewAmountV2(label, amount, symbol, fallback)
}

func bigFromUint64(n uint64) *big.Int {
	return new(big.Int).SetUint64(n)
}
