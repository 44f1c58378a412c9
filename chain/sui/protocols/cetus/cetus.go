// Package cetus renders calls into the Cetus CLMM pool package: swaps and
// liquidity add/remove. Cetus's Move entry functions take typed Move
// arguments (pool object, amounts, sqrt-price limits) that this module
// cannot resolve without the pool's on-chain type layout, so arguments are
// listed positionally rather than claimed to be specific fields; this is
// the same "be honest about what can't be resolved offline" choice made
// everywhere else in this module (dynamic-ABI fallback, unknown-program
// SVM instructions).
package cetus

import (
	"github.com/anchorageoss/visualsign-parser/chain/sui"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

var swapFunctions = map[string]bool{
	"swap":       true,
	"flash_swap": true,
	"swap_a2b":   true,
	"swap_b2a":   true,
}

var liquidityFunctions = map[string]string{
	"add_liquidity":          "Add Liquidity",
	"add_liquidity_fix_coin": "Add Liquidity",
	"remove_liquidity":       "Remove Liquidity",
}

// Visualizer renders Cetus CLMM pool calls.
type Visualizer struct{}

// NewVisualizer returns the Cetus Visualizer for registration against
// sui.Registry.RegisterPackage with the deployment's Cetus pool package id.
func NewVisualizer() sui.Visualizer { return Visualizer{} }

func (Visualizer) Visualize(ctx sui.CommandContext) (fields.Field, error) {
	call := ctx.Call
	switch {
	case swapFunctions[call.Function]:
		return renderCall("Cetus Swap", call), nil
	default:
		if title, ok := liquidityFunctions[call.Function]; ok {
			return renderCall("Cetus "+title, call), nil
		}
		return renderCall("Cetus "+call.Function, call), nil
	}
}

func renderCall(title string, call sui.ProgrammableMoveCall) fields.Field {
	argCount := len(call.Arguments)
	condensed := fields.NewListLayout(fields.Plain(fields.NewNumber("Arguments", itoa(argCount), itoa(argCount)+" arguments")))
	pkg := fields.NewAddressV2("Package", call.Package.String(), "", fields.AddressFieldOpts{})
	fn := fields.NewTextV2("Function", call.Module+"::"+call.Function)
	expanded := fields.NewListLayout(
		fields.Plain(pkg),
		fields.Plain(fn),
		fields.Plain(fields.NewNumber("Arguments", itoa(argCount), itoa(argCount)+" arguments")),
	)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded)
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
