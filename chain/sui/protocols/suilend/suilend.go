// Package suilend renders calls into the Suilend lending-market package:
// deposit, withdraw, borrow, and repay, mirroring the deposit/withdraw/
// borrow/repay shape the Aave v3 Pool visualizer gives EVM (see
// chain/evm/protocols/aave), adapted to Move's package::module::function
// call shape instead of calldata selectors.
package suilend

import (
	"github.com/anchorageoss/visualsign-parser/chain/sui"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

var functionTitles = map[string]string{
	"deposit_liquidity_and_mint_ctokens": "Suilend Deposit",
	"deposit_ctokens_into_obligation":    "Suilend Deposit Collateral",
	"withdraw_ctokens":                   "Suilend Withdraw",
	"borrow":                             "Suilend Borrow",
	"repay":                              "Suilend Repay",
	"liquidate":                          "Suilend Liquidate",
}

// Visualizer renders Suilend lending-market calls.
type Visualizer struct{}

// NewVisualizer returns the Suilend Visualizer for registration against
// sui.Registry.RegisterPackage with the deployment's Suilend package id.
func NewVisualizer() sui.Visualizer { return Visualizer{} }

func (Visualizer) Visualize(ctx sui.CommandContext) (fields.Field, error) {
	call := ctx.Call
	title, ok := functionTitles[call.Function]
	if !ok {
		title = "Suilend " + call.Function
	}
	argCount := len(call.Arguments)
	market := fields.NewTextV2("Function", call.Module+"::"+call.Function)
	count := fields.NewNumber("Arguments", itoa(argCount), itoa(argCount)+" arguments")
	condensed := fields.NewListLayout(fields.Plain(count))
	expanded := fields.NewListLayout(fields.Plain(market), fields.Plain(count))
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
