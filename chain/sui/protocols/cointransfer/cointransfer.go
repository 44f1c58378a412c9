// Package cointransfer recognizes the plain-coin-send idiom: a
// ProgrammableTransaction consisting only of a SplitCoins off the gas coin
// followed by a TransferObjects of that split result (or a bare
// TransferObjects of the gas coin itself), and renders it with a plain
// "Send SUI" preset instead of the generic command-by-command listing
// chain/sui's Registry falls back to for everything else. This mirrors the
// chain/evm/protocols/erc20 visualizer's role: a dedicated preset for the
// single most common transaction shape, layered above the generic
// structural renderer.
package cointransfer

import (
	"github.com/anchorageoss/visualsign-parser/chain/sui"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

// Describe recognizes a plain-coin-transfer transaction and renders it, or
// returns ok=false so the caller falls back to the generic per-command
// rendering.
func Describe(tx *sui.ProgrammableTransaction) (fields.Field, bool) {
	if tx == nil || len(tx.Commands) == 0 || len(tx.Commands) > 2 {
		return fields.Field{}, false
	}

	transfer := tx.Commands[len(tx.Commands)-1]
	if transfer.Kind != sui.CommandTransferObjects {
		return fields.Field{}, false
	}
	if len(transfer.TransferObjects) != 1 {
		return fields.Field{}, false
	}

	switch len(tx.Commands) {
	case 1:
		if transfer.TransferObjects[0].Kind != sui.ArgumentGasCoin {
			return fields.Field{}, false
		}
		return render(transfer), true
	case 2:
		split := tx.Commands[0]
		if split.Kind != sui.CommandSplitCoins {
			return fields.Field{}, false
		}
		if split.SplitCoinsCoin.Kind != sui.ArgumentGasCoin {
			return fields.Field{}, false
		}
		if transfer.TransferObjects[0].Kind != sui.ArgumentResult {
			return fields.Field{}, false
		}
		return render(transfer), true
	default:
		return fields.Field{}, false
	}
}

func render(transfer sui.Command) fields.Field {
	title := "Send SUI"
	recipient := fields.NewTextV2("Recipient", recipientLabel(transfer.TransferRecipient))
	condensed := fields.NewListLayout(fields.Plain(recipient))
	return fields.NewPreviewLayout(title, title, "", condensed, condensed)
}

func recipientLabel(a sui.Argument) string {
	switch a.Kind {
	case sui.ArgumentInput:
		return "input[" + itoa(int(a.InputIndex)) + "]"
	default:
		return "(argument)"
	}
}

func itoa(n int) string {
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
