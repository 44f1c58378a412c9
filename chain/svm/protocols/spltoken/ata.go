package spltoken

import (
	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/registry"
)

// ATAVisualizer renders the Associated Token Account program's Create and
// CreateIdempotent instructions. Create carries no instruction data at
// all; CreateIdempotent is distinguished by a single 0x01 data byte.
type ATAVisualizer struct {
	Contracts *registry.ContractRegistry
}

// NewATAVisualizer returns the Visualizer for registration against
// svm.Registry.Register(AssociatedTokenAccountProgramID, ...).
func NewATAVisualizer(contracts *registry.ContractRegistry) svm.Visualizer {
	return ATAVisualizer{Contracts: contracts}
}

func (v ATAVisualizer) Visualize(ctx svm.InstructionContext) (fields.Field, error) {
	title := "Create Token Account"
	if len(ctx.Data) > 0 && ctx.Data[0] == 1 {
		title = "Create Token Account (Idempotent)"
	}

	// payer, associated_token_account, owner, mint, system_program, token_program
	rows := make([]fields.AnnotatedField, 0, len(ctx.Accounts))
	names := []string{"Payer", "Token Account", "Owner", "Mint", "System Program", "Token Program"}
	for i, acct := range ctx.Accounts {
		label := "Account " + itoa(uint64(i))
		if i < len(names) {
			label = names[i]
		}
		assetLabel := ""
		if label == "Mint" && v.Contracts != nil {
			if info, ok := v.Contracts.LookupSVM(acct.Key.String()); ok {
				assetLabel = info.Symbol
			}
		}
		rows = append(rows, fields.Plain(fields.NewAddressV2(label, acct.Key.String(), "", fields.AddressFieldOpts{AssetLabel: assetLabel})))
	}

	condensed := fields.NewListLayout(rows[:minInt(2, len(rows))]...)
	return fields.NewPreviewLayout(title, title, "", condensed, fields.NewListLayout(rows...)), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
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
