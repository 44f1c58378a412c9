// Package momentum renders calls into the Momentum CLMM router package.
// Momentum exposes the same swap/add-liquidity/remove-liquidity shape as
// Cetus (see chain/sui/protocols/cetus), so this visualizer follows the
// identical rendering approach: function-name-based titling, arguments
// listed positionally since the pool's typed Move layout isn't available
// offline.
package momentum

import (
	"github.com/anchorageoss/visualsign-parser/chain/sui"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

var swapFunctions = map[string]bool{
	"swap":        true,
	"swap_exact":  true,
	"exact_input": true,
}

var liquidityFunctions = map[string]string{
	"add_liquidity":    "Add Liquidity",
	"remove_liquidity": "Remove Liquidity",
}

// Visualizer renders Momentum router calls.
type Visualizer struct{}

// NewVisualizer returns the Momentum Visualizer for registration against
// sui.Registry.RegisterPackage with the deployment's Momentum package id.
func NewVisualizer() sui.Visualizer { return Visualizer{} }

func (Visualizer) Visualize(ctx sui.CommandContext) (fields.Field, error) {
	call := ctx.Call
	title := "Momentum " + call.Function
	switch {
	case swapFunctions[call.Function]:
		title = "Momentum Swap"
	default:
		if t, ok := liquidityFunctions[call.Function]; ok {
			title = "Momentum " + t
		}
	}
	argCount := len(call.Arguments)
	fn := fields.NewTextV2("Function", call.Module+"::"+call.Function)
	count := fields.NewNumber("Arguments", itoa(argCount), itoa(argCount)+" arguments")
	condensed := fields.NewListLayout(fields.Plain(count))
	expanded := fields.NewListLayout(fields.Plain(fn), fields.Plain(count))
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
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
